package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dosanma1/bitforge/internal/config"
	"github.com/dosanma1/bitforge/internal/dts"
)

var (
	dtsForce      bool
	dtsSourceDir  string
	dtsIncludeDir string
	dtsOutputDir  string
)

var dtsCmd = &cobra.Command{
	Use:   "dts [source...]",
	Short: "Compile device-tree sources",
	Long: `Preprocess device-tree sources with the C preprocessor and emit the
compiled <name>.dts files into the output directory.

A source is only recompiled when it, or any shared include, is newer
than the existing output, matching make pattern-rule semantics. Use
--force to rebuild everything.

Examples:
  bitforge dts                       # All sources under dts/
  bitforge dts dts/neon-e320.dtsi    # A single source
  bitforge dts --force               # Ignore timestamps`,
	RunE: runDTS,
}

func init() {
	rootCmd.AddCommand(dtsCmd)
	dtsCmd.Flags().BoolVar(&dtsForce, "force", false, "Recompile even when outputs are up to date")
	dtsCmd.Flags().StringVar(&dtsSourceDir, "source-dir", "dts", "Directory holding device-tree sources")
	dtsCmd.Flags().StringVar(&dtsIncludeDir, "include-dir", "", "Shared include directory (default <source-dir>/include)")
	dtsCmd.Flags().StringVar(&dtsOutputDir, "output-dir", "", "Output directory for compiled .dts files")
}

func runDTS(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	repoRoot, err := findRepoRoot()
	if err != nil {
		return fmt.Errorf("failed to locate repository root: %w", err)
	}

	cfg, err := config.LoadOrDefault(repoRoot)
	if err != nil {
		return fmt.Errorf("failed to load device table: %w", err)
	}
	resolver := config.NewResolver(cfg)

	sourceDir := dtsSourceDir
	if !filepath.IsAbs(sourceDir) {
		sourceDir = filepath.Join(repoRoot, sourceDir)
	}
	includeDir := dtsIncludeDir
	if includeDir == "" {
		includeDir = filepath.Join(sourceDir, "include")
	}
	outputDir := resolver.OutputDir(dtsOutputDir)
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(repoRoot, outputDir)
	}

	sources := args
	if len(sources) == 0 {
		sources, err = filepath.Glob(filepath.Join(sourceDir, "*.dtsi"))
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			return fmt.Errorf("no device-tree sources found in %s", sourceDir)
		}
	}

	compiler, err := dts.NewCompiler(includeDir)
	if err != nil {
		return err
	}

	compiled := 0
	for _, src := range sources {
		out := filepath.Join(outputDir, dts.OutputName(src))

		if !dtsForce {
			stale, err := compiler.Stale(src, out)
			if err != nil {
				return err
			}
			if !stale {
				continue
			}
		}

		fmt.Printf("🌳 %s -> %s\n", src, out)
		if err := compiler.Compile(ctx, src, out); err != nil {
			return fmt.Errorf("❌ %w", err)
		}
		compiled++
	}

	if compiled == 0 {
		fmt.Println("✅ Device trees are up to date")
	} else {
		fmt.Printf("✅ Compiled %d device tree(s)\n", compiled)
	}
	return nil
}
