package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dosanma1/bitforge/internal/artifact"
	"github.com/dosanma1/bitforge/internal/config"
	"github.com/dosanma1/bitforge/internal/ui"
)

var (
	cleanAll bool
	cleanYes bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove build state and exported artifacts",
	Long: `Remove every per-variant working directory and the artifact output
directory. A failed build may leave an incomplete working directory
behind; clean collects those too.

Use --all to also remove the cached IP build directory. Regenerating IP
takes a while, so --all asks for confirmation first.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Also remove the cached IP build directory")
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runClean(cmd *cobra.Command, args []string) error {
	repoRoot, err := findRepoRoot()
	if err != nil {
		return fmt.Errorf("failed to locate repository root: %w", err)
	}

	cfg, err := config.LoadOrDefault(repoRoot)
	if err != nil {
		return fmt.Errorf("failed to load device table: %w", err)
	}
	resolver := config.NewResolver(cfg)

	baseDir := resolver.BaseDir("")
	if !filepath.IsAbs(baseDir) {
		baseDir = filepath.Join(repoRoot, baseDir)
	}
	outputDir := resolver.OutputDir("")
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(repoRoot, outputDir)
	}

	var removed []string
	if cleanAll {
		if !cleanYes {
			ok, err := ui.Confirm("Remove the cached IP build directory as well")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled.")
				return nil
			}
		}
		removed, err = artifact.CleanAll(baseDir, cfg.Device.Name, outputDir, filepath.Join(repoRoot, cfg.Build.IPDir))
	} else {
		removed, err = artifact.Clean(baseDir, cfg.Device.Name, outputDir)
	}
	if err != nil {
		return err
	}

	for _, dir := range removed {
		fmt.Printf("🗑️  Removed %s\n", dir)
	}
	fmt.Println("✅ Clean completed successfully")
	return nil
}
