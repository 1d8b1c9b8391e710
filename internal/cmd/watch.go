package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dosanma1/bitforge/internal/config"
	"github.com/dosanma1/bitforge/internal/image"
	"github.com/dosanma1/bitforge/internal/vivado"
	"github.com/dosanma1/bitforge/internal/watcher"
)

var (
	watchTop     string
	watchVerbose bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the syntax check on HDL source changes",
	Long: `Watch the HDL sources and re-run the syntax check whenever one
changes. A failing check is reported and watching continues, so the
edit loop never has to leave the editor.

Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchTop, "top", "", "Top module override for the syntax check")
	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "Stream Vivado output instead of logging it")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	executor, err := vivado.NewExecutor(repoRoot, watchVerbose)
	if err != nil {
		return err
	}

	w, err := watcher.New(watcher.DefaultConfig(repoRoot))
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Printf("👀 Watching %s for HDL changes (Ctrl+C to stop)\n", repoRoot)

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\n✅ Stopped watching")
			return nil
		case err := <-w.Errors():
			fmt.Printf("⚠️  Watch error: %v\n", err)
		case path := <-w.Changes():
			fmt.Printf("🔍 %s changed, checking...\n", path)

			req := vivado.BuildRequest{
				Variant: v,
				Mode:    image.ModeCheck,
				Defs:    image.ComposeDefs(v.Defs, resolver.Options(""), resolver.Seed(0, false)),
				Top:     resolver.Top(watchTop),
				WorkDir: filepath.Join(repoRoot, v.WorkDirName()),
				IPDir:   filepath.Join(repoRoot, cfg.Build.IPDir),
			}

			// Unlike a batch build, a failing check here must not end
			// the session.
			if err := executor.Build(ctx, req); err != nil {
				fmt.Printf("❌ Check failed: %v\n", err)
				continue
			}
			fmt.Println("✅ Check passed")
		}
	}
}
