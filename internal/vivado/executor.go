// Package vivado drives the Xilinx synthesis toolchain.
package vivado

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/dosanma1/bitforge/internal/image"
)

// BuildRequest carries the derived parameters for one Vivado
// invocation. It is assembled once per variant and not mutated by the
// executor.
type BuildRequest struct {
	// Variant being built
	Variant image.Variant

	// Mode is the target mode (rtl, synth, ip, bin).
	Mode image.Mode

	// Defs is the composed macro-definition string.
	Defs string

	// Top is the top module; may differ from the variant's for a
	// syntax check.
	Top string

	// WorkDir is the per-variant working directory. Created on demand.
	WorkDir string

	// IPDir is the cached IP build directory.
	IPDir string

	// GUI launches Vivado interactively instead of in batch mode.
	GUI bool

	// Project keeps the generated Vivado project on disk for later
	// inspection. Passed through opaquely.
	Project bool
}

// Executor handles Vivado command execution.
type Executor struct {
	repoRoot   string
	vivadoPath string
	verbose    bool
}

// NewExecutor creates a new Vivado executor.
func NewExecutor(repoRoot string, verbose bool) (*Executor, error) {
	vivadoPath, err := findVivado()
	if err != nil {
		return nil, fmt.Errorf("vivado not found: %w (source the Xilinx settings script or set XILINX_VIVADO)", err)
	}

	return &Executor{
		repoRoot:   repoRoot,
		vivadoPath: vivadoPath,
		verbose:    verbose,
	}, nil
}

// Build runs the synthesis flow for one request. The external tool's
// exit status is the only failure signal; a nonzero exit aborts the
// whole invocation and nothing is exported.
func (e *Executor) Build(ctx context.Context, req BuildRequest) error {
	if err := os.MkdirAll(req.WorkDir, 0755); err != nil {
		return fmt.Errorf("failed to create working directory: %w", err)
	}

	mode := "batch"
	if req.GUI {
		mode = "gui"
	}

	args := []string{
		"-mode", mode,
		"-source", filepath.Join(e.repoRoot, "tools", "scripts", "viv_build.tcl"),
		"-log", filepath.Join(req.WorkDir, "build.log"),
		"-journal", filepath.Join(req.WorkDir, "build.jou"),
	}

	cmd := exec.CommandContext(ctx, e.vivadoPath, args...)
	cmd.Dir = req.WorkDir
	cmd.Env = append(os.Environ(),
		"VIV_TARGET="+req.Mode.String(),
		"VIV_PART_ID="+req.Variant.Part,
		"VIV_DEVICE="+req.Variant.Device,
		"VIV_TOP="+req.Top,
		"VIV_DEFS="+req.Defs,
		"VIV_IP_DIR="+req.IPDir,
	)
	if req.Project {
		cmd.Env = append(cmd.Env, "VIV_PROJECT=1")
	}

	return e.execute(cmd, req.Variant.Name())
}

// execute runs a Vivado command with proper output handling. Verbose
// builds stream tool output; quiet builds keep it in the log file and
// show a spinner instead, since a bitstream run is quiet for an hour.
func (e *Executor) execute(cmd *exec.Cmd, name string) error {
	if e.verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("vivado failed: %w", err)
		}
		return nil
	}

	var output strings.Builder
	cmd.Stdout = &output
	cmd.Stderr = &output

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(fmt.Sprintf("Synthesizing %s", name)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(65*1000000), // 65ms
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSpinnerType(14),
	)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("vivado failed to start: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	for {
		select {
		case err := <-done:
			_ = bar.Finish()
			if err != nil {
				translator := NewErrorTranslator()
				return fmt.Errorf("vivado failed: %w\n%s", err, translator.Translate(output.String()))
			}
			return nil
		case <-time.After(100 * time.Millisecond):
			_ = bar.Add(1)
		}
	}
}

// Version returns the Vivado version banner.
func (e *Executor) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, e.vivadoPath, "-version")

	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(output)), nil
}

// findVivado locates the vivado binary.
func findVivado() (string, error) {
	if path, err := exec.LookPath("vivado"); err == nil {
		return path, nil
	}

	// Fall back to an explicit installation root
	if root := os.Getenv("XILINX_VIVADO"); root != "" {
		candidate := filepath.Join(root, "bin", "vivado")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("vivado not found in PATH or $XILINX_VIVADO/bin")
}
