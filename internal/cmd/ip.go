package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dosanma1/bitforge/internal/config"
	"github.com/dosanma1/bitforge/internal/image"
	"github.com/dosanma1/bitforge/internal/vivado"
)

var ipVerbose bool

var ipCmd = &cobra.Command{
	Use:   "ip",
	Short: "Generate the packaged IP cores only",
	Long: `Pre-build the packaged IP cores the image variants depend on.

IP output is cached in the IP build directory and shared by every
variant, so generating it once up front keeps the per-variant builds
incremental. Equivalent to 'bitforge build --ip-only' for the first
standard variant.`,
	Args: cobra.NoArgs,
	RunE: runIP,
}

func init() {
	rootCmd.AddCommand(ipCmd)
	ipCmd.Flags().BoolVarP(&ipVerbose, "verbose", "v", false, "Stream Vivado output instead of logging it")
}

func runIP(cmd *cobra.Command, args []string) error {
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

	v, err := cfg.Variant(cfg.Standard[0])
	if err != nil {
		return err
	}

	executor, err := vivado.NewExecutor(repoRoot, ipVerbose)
	if err != nil {
		return err
	}

	ipDir := filepath.Join(repoRoot, cfg.Build.IPDir)
	fmt.Printf("🔨 Generating IP for %s into %s\n", v.Device, ipDir)

	req := vivado.BuildRequest{
		Variant: v,
		Mode:    image.ModeIP,
		Defs:    image.ComposeDefs(v.Defs, resolver.Options(""), resolver.Seed(0, false)),
		Top:     v.Top,
		WorkDir: ipDir,
		IPDir:   ipDir,
	}

	if err := executor.Build(ctx, req); err != nil {
		return fmt.Errorf("❌ IP generation failed: %w", err)
	}

	fmt.Println("✅ IP generation completed successfully!")
	return nil
}
