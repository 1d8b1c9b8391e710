package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dosanma1/bitforge/internal/artifact"
	"github.com/dosanma1/bitforge/internal/config"
	"github.com/dosanma1/bitforge/internal/image"
	"github.com/dosanma1/bitforge/internal/vivado"
)

var (
	buildVerbose   bool
	buildCheck     bool
	buildSynth     bool
	buildIPOnly    bool
	buildGUI       bool
	buildProject   bool
	buildTop       string
	buildOptions   string
	buildOutputDir string
	buildBaseDir   string
	buildSeed      int
)

var buildCmd = &cobra.Command{
	Use:   "build [variant...]",
	Short: "Build FPGA image variants",
	Long: `Build one or more image variants of the configured device.

With no arguments the standard variants are built (1G and XG for the E320).
Mode flags narrow the flow; they follow a fixed priority so scripted builds
stay deterministic: --check > --synth > --ip-only > full bitstream.
The matching CHECK, SYNTH and IP_ONLY environment variables are honored
for make-style invocations.

Only a full-bitstream build exports artifacts. On success the bitstream
and build report land in the output directory as
usrp_<device>_fpga_<variant>.bit and .rpt.

Examples:
  bitforge build                  # Standard variants, full bitstream
  bitforge build 1G               # Single variant
  bitforge build XG AA            # Multiple variants
  bitforge build --check          # Syntax check only
  bitforge build 1G --seed 3      # Perturb place and route
  bitforge build 1G --options "DRAM_CH=2"
  bitforge build 1G --gui         # Open the flow in the Vivado GUI`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "Stream Vivado output instead of logging it")
	buildCmd.Flags().BoolVar(&buildCheck, "check", false, "Syntax-check the design only")
	buildCmd.Flags().BoolVar(&buildSynth, "synth", false, "Stop after synthesis")
	buildCmd.Flags().BoolVar(&buildIPOnly, "ip-only", false, "Generate the packaged IP only")
	buildCmd.Flags().BoolVar(&buildGUI, "gui", false, "Run Vivado interactively")
	buildCmd.Flags().BoolVar(&buildProject, "project", false, "Keep the Vivado project on disk")
	buildCmd.Flags().StringVar(&buildTop, "top", "", "Top module override for the syntax check")
	buildCmd.Flags().StringVar(&buildOptions, "options", "", "Extra macro definitions, e.g. \"DRAM_CH=2\"")
	buildCmd.Flags().StringVar(&buildOutputDir, "output-dir", "", "Artifact output directory")
	buildCmd.Flags().StringVar(&buildBaseDir, "base-dir", "", "Parent of the per-variant working directories")
	buildCmd.Flags().IntVar(&buildSeed, "seed", 0, "Build seed passed through to place and route")
}

func runBuild(cmd *cobra.Command, args []string) error {
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

	// Flags take priority over the make-style environment knobs, which
	// exist so CI recipes written against the old Makefile keep working.
	mode := image.ResolveMode(
		buildCheck || config.ModeFlag(config.EnvCheck),
		buildSynth || config.ModeFlag(config.EnvSynth),
		buildIPOnly || config.ModeFlag(config.EnvIPOnly),
	)

	gui := buildGUI || config.ModeFlag(config.EnvGUI)
	project := buildProject || config.ModeFlag(config.EnvProject)

	suffixes := args
	if len(suffixes) == 0 {
		suffixes = cfg.Standard
	}

	variants := make([]image.Variant, 0, len(suffixes))
	for _, suffix := range suffixes {
		v, err := cfg.Variant(suffix)
		if err != nil {
			return err
		}
		variants = append(variants, v)
	}

	executor, err := vivado.NewExecutor(repoRoot, buildVerbose)
	if err != nil {
		return err
	}

	outputDir := resolver.OutputDir(buildOutputDir)
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(repoRoot, outputDir)
	}
	baseDir := resolver.BaseDir(buildBaseDir)
	if !filepath.IsAbs(baseDir) {
		baseDir = filepath.Join(repoRoot, baseDir)
	}
	seed := resolver.Seed(buildSeed, cmd.Flags().Changed("seed"))
	options := resolver.Options(buildOptions)

	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Name()
	}
	fmt.Printf("🔨 Building %s [%s]\n", strings.Join(names, ", "), mode.Description())

	for _, v := range variants {
		top := v.Top
		if mode == image.ModeCheck {
			top = resolver.Top(buildTop)
		}

		req := vivado.BuildRequest{
			Variant: v,
			Mode:    mode,
			Defs:    image.ComposeDefs(v.Defs, options, seed),
			Top:     top,
			WorkDir: filepath.Join(baseDir, v.WorkDirName()),
			IPDir:   filepath.Join(repoRoot, cfg.Build.IPDir),
			GUI:     gui,
			Project: project,
		}

		// First failure aborts the whole invocation; remaining
		// variants are not attempted and nothing is exported.
		if err := executor.Build(ctx, req); err != nil {
			return fmt.Errorf("❌ %s build failed: %w", v.Name(), err)
		}

		if mode.ExportsArtifacts() {
			exporter := artifact.Exporter{OutputDir: outputDir}
			if err := exporter.Export(req.WorkDir, v); err != nil {
				return fmt.Errorf("❌ %s export failed: %w", v.Name(), err)
			}
			fmt.Printf("  📦 %s\n", filepath.Join(outputDir, artifact.Name(v.Device, v.Suffix, "bit")))
		}

		fmt.Printf("  ✅ %s done\n", v.Name())
	}

	fmt.Println("✅ Build completed successfully!")
	return nil
}
