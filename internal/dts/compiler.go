// Package dts preprocesses device-tree sources. The host OS consumes
// the result to enumerate on-board peripherals; the heavy lifting is a
// C-preprocessor macro expansion pass over shared include files.
package dts

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Compiler runs the C preprocessor over device-tree sources.
type Compiler struct {
	cppPath    string
	includeDir string
}

// NewCompiler creates a compiler using the first available preprocessor
// frontend. includeDir holds the shared .dtsi includes.
func NewCompiler(includeDir string) (*Compiler, error) {
	cppPath, err := findPreprocessor()
	if err != nil {
		return nil, err
	}

	return &Compiler{
		cppPath:    cppPath,
		includeDir: includeDir,
	}, nil
}

// Stale reports whether out needs to be rebuilt: missing, older than
// src, or older than any shared include. This mirrors a make pattern
// rule depending on the source and the include directory.
func (c *Compiler) Stale(src, out string) (bool, error) {
	outInfo, err := os.Stat(out)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, fmt.Errorf("device-tree source missing: %w", err)
	}
	if srcInfo.ModTime().After(outInfo.ModTime()) {
		return true, nil
	}

	entries, err := os.ReadDir(c.includeDir)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".dtsi") && !strings.HasSuffix(name, ".h") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return false, err
		}
		if info.ModTime().After(outInfo.ModTime()) {
			return true, nil
		}
	}

	return false, nil
}

// Compile expands src into out. The preprocessor's exit status is
// propagated unmodified; its stderr goes straight to the terminal.
func (c *Compiler) Compile(ctx context.Context, src, out string) error {
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	args := []string{
		"-E",
		"-I", c.includeDir,
		"-nostdinc",
		"-undef",
		"-x", "assembler-with-cpp",
		"-D__DTS__",
		"-o", out,
		src,
	}

	cmd := exec.CommandContext(ctx, c.cppPath, args...)
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("device-tree preprocessing failed for %s: %w", src, err)
	}

	return nil
}

// OutputName maps a source file to its compiled name: <name>.dts.
func OutputName(src string) string {
	base := filepath.Base(src)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + ".dts"
}

// findPreprocessor returns a cpp-compatible binary. cc -E behaves like
// cpp for our flag set, so either works.
func findPreprocessor() (string, error) {
	for _, name := range []string{"cpp", "gcc", "cc"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no C preprocessor found in PATH (need cpp, gcc, or cc)")
}
