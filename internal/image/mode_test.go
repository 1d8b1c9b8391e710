package image

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name   string
		check  bool
		synth  bool
		ipOnly bool
		want   Mode
	}{
		{"default is full bitstream", false, false, false, ModeBin},
		{"check alone", true, false, false, ModeCheck},
		{"synth alone", false, true, false, ModeSynth},
		{"ip alone", false, false, true, ModeIP},
		{"check wins over synth", true, true, false, ModeCheck},
		{"check wins over ip", true, false, true, ModeCheck},
		{"check wins over everything", true, true, true, ModeCheck},
		{"synth wins over ip", false, true, true, ModeSynth},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ResolveMode(tc.check, tc.synth, tc.ipOnly))
		})
	}
}

func TestModeExportsArtifacts(t *testing.T) {
	require.True(t, ModeBin.ExportsArtifacts())
	for _, m := range []Mode{ModeCheck, ModeSynth, ModeIP} {
		require.False(t, m.ExportsArtifacts(), "mode %s must not export", m)
	}
}
