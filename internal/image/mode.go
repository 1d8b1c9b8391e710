package image

// Mode is the build target mode handed to the Vivado flow.
type Mode string

const (
	// ModeCheck elaborates the design for syntax errors only.
	ModeCheck Mode = "rtl"
	// ModeSynth runs synthesis but stops before place and route.
	ModeSynth Mode = "synth"
	// ModeIP generates the packaged IP cores only.
	ModeIP Mode = "ip"
	// ModeBin runs the full flow and produces a bitstream.
	ModeBin Mode = "bin"
)

// ResolveMode selects the target mode from the presence flags.
// Priority is fixed: check > synth > ip-only > full bitstream.
// Changing this order silently builds the wrong artifact, so it must
// mirror the documented precedence exactly.
func ResolveMode(check, synth, ipOnly bool) Mode {
	switch {
	case check:
		return ModeCheck
	case synth:
		return ModeSynth
	case ipOnly:
		return ModeIP
	default:
		return ModeBin
	}
}

// ExportsArtifacts reports whether a build in this mode publishes its
// bitstream and report into the canonical output directory.
func (m Mode) ExportsArtifacts() bool {
	return m == ModeBin
}

func (m Mode) String() string {
	return string(m)
}

// Description returns a user-facing label for status output.
func (m Mode) Description() string {
	switch m {
	case ModeCheck:
		return "syntax check"
	case ModeSynth:
		return "synthesis only"
	case ModeIP:
		return "IP generation"
	case ModeBin:
		return "full bitstream"
	default:
		return "unknown"
	}
}
