// Configuration resolution with precedence handling.
package config

import (
	"os"
	"strconv"
)

// Environment variables recognized as overrides. They mirror the
// historical make-level knobs, so CI scripts keep working unchanged.
const (
	EnvOutputDir = "BUILD_OUTPUT_DIR"
	EnvBaseDir   = "BUILD_BASE_DIR"
	EnvSeed      = "BUILD_SEED"
	EnvCheck     = "CHECK"
	EnvSynth     = "SYNTH"
	EnvIPOnly    = "IP_ONLY"
	EnvTop       = "TOP"
	EnvGUI       = "GUI"
	EnvProject   = "PROJECT"
	EnvOptions   = "OPTIONS"
)

// Resolver handles configuration precedence: CLI flags > environment >
// bitforge.yaml > built-in defaults.
type Resolver struct {
	config *Config
}

// NewResolver creates a new configuration resolver.
func NewResolver(config *Config) *Resolver {
	return &Resolver{config: config}
}

// OutputDir resolves the canonical artifact output directory.
func (r *Resolver) OutputDir(cliValue string) string {
	if cliValue != "" {
		return cliValue
	}
	if env := os.Getenv(EnvOutputDir); env != "" {
		return env
	}
	return r.config.Build.OutputDir
}

// BaseDir resolves the parent of the per-variant working directories.
func (r *Resolver) BaseDir(cliValue string) string {
	if cliValue != "" {
		return cliValue
	}
	if env := os.Getenv(EnvBaseDir); env != "" {
		return env
	}
	return r.config.Build.BaseDir
}

// Seed resolves the build seed passed through to place and route.
// cliSet distinguishes an explicit --seed=0 from the flag being absent.
func (r *Resolver) Seed(cliValue int, cliSet bool) int {
	if cliSet {
		return cliValue
	}
	if env := os.Getenv(EnvSeed); env != "" {
		if n, err := strconv.Atoi(env); err == nil {
			return n
		}
	}
	return r.config.Build.Seed
}

// Top resolves the top-level module, used by the syntax-check mode.
func (r *Resolver) Top(cliValue string) string {
	if cliValue != "" {
		return cliValue
	}
	if env := os.Getenv(EnvTop); env != "" {
		return env
	}
	return r.config.Device.Top
}

// Options resolves the caller macro-definition override string.
func (r *Resolver) Options(cliValue string) string {
	if cliValue != "" {
		return cliValue
	}
	return os.Getenv(EnvOptions)
}

// ModeFlag reports whether a mode environment flag is set. Make-style
// semantics: any non-empty value counts as present.
func ModeFlag(name string) bool {
	return os.Getenv(name) != ""
}
