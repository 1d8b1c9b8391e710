// Package imagecore emits the generated image-core header consumed by
// the HDL compilation downstream.
package imagecore

import (
	"fmt"
	"strings"

	"github.com/dosanma1/bitforge/pkg/xos"
)

// Header describes the compile-time constants of the image core: the
// CHDR bus width and the RFNoC protocol version tuple.
type Header struct {
	ChdrWidth  int
	ProtoMajor int
	ProtoMinor int
}

// Default returns the constants for the current image core generation.
func Default() Header {
	return Header{
		ChdrWidth:  64,
		ProtoMajor: 1,
		ProtoMinor: 0,
	}
}

// Render produces the verilog header text. The protocol version is a
// {major, minor} byte tuple, matching how the transport negotiates it.
func (h Header) Render() []byte {
	var b strings.Builder
	b.WriteString("//\n")
	b.WriteString("// Generated by bitforge. Do not edit.\n")
	b.WriteString("//\n\n")
	fmt.Fprintf(&b, "`define CHDR_W          %d\n", h.ChdrWidth)
	fmt.Fprintf(&b, "`define RFNOC_PROTOVER  { 8'd%d, 8'd%d }\n", h.ProtoMajor, h.ProtoMinor)
	return []byte(b.String())
}

// WriteFile writes the header atomically so a concurrent HDL compile
// never reads a half-written file.
func (h Header) WriteFile(path string) error {
	if err := xos.WriteFile(path, h.Render(), 0644); err != nil {
		return fmt.Errorf("failed to write image-core header: %w", err)
	}
	return nil
}
