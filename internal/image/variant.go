// Package image models the FPGA image variants a device ships with and
// the build parameters derived from them.
package image

import (
	"fmt"
	"strings"
)

// Variant is a single (device, image-type) build configuration.
// It is resolved once per invocation from the device table and any
// environment overrides, and is immutable afterwards.
type Variant struct {
	// Device is the product name, e.g. "E320". Kept in its canonical
	// upper-case form; artifact names lower-case it.
	Device string

	// Suffix is the image-type suffix, e.g. "1G", "XG", "AA".
	Suffix string

	// Top is the top-level module handed to the synthesis flow.
	Top string

	// Part is the Xilinx part identifier, e.g. "xc7z045ffg900-3".
	Part string

	// Defs are the static macro definitions for this variant, e.g.
	// "SFP_1GBE=1". Caller overrides and the build seed are appended
	// at composition time, not stored here.
	Defs []string
}

// Name returns the canonical variant name, e.g. "E320_1G". Per-variant
// working directories and Vivado project names derive from it.
func (v Variant) Name() string {
	return v.Device + "_" + v.Suffix
}

// WorkDirName returns the name of the per-variant working directory the
// synthesis tool runs in, e.g. "build-E320_1G". Two builds of the same
// variant race on this directory; callers must serialize them.
func (v Variant) WorkDirName() string {
	return "build-" + v.Name()
}

// ComposeDefs builds the macro-definition string passed to the
// synthesis tool: the variant's static definitions, then the caller
// override, then the build seed. Later entries win when the tool
// resolves a conflicting key, so a caller override beats the static
// table and the seed always takes effect.
func ComposeDefs(static []string, override string, seed int) string {
	parts := make([]string, 0, len(static)+2)
	parts = append(parts, static...)
	if override = strings.TrimSpace(override); override != "" {
		parts = append(parts, override)
	}
	parts = append(parts, fmt.Sprintf("BUILD_SEED=%d", seed))
	return strings.Join(parts, " ")
}
