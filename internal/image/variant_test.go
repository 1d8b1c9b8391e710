package image

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVariantNames(t *testing.T) {
	v := Variant{Device: "E320", Suffix: "1G"}
	require.Equal(t, "E320_1G", v.Name())
	require.Equal(t, "build-E320_1G", v.WorkDirName())
}

func TestComposeDefs(t *testing.T) {
	tests := []struct {
		name     string
		static   []string
		override string
		seed     int
		want     string
	}{
		{
			name:   "static only",
			static: []string{"SFP_1GBE=1"},
			seed:   0,
			want:   "SFP_1GBE=1 BUILD_SEED=0",
		},
		{
			name:     "override appended after static",
			static:   []string{"SFP_10GBE=1"},
			override: "DRAM_CH=2",
			seed:     7,
			want:     "SFP_10GBE=1 DRAM_CH=2 BUILD_SEED=7",
		},
		{
			name:     "override whitespace trimmed",
			static:   []string{"SFP_AURORA=1"},
			override: "  ",
			seed:     1,
			want:     "SFP_AURORA=1 BUILD_SEED=1",
		},
		{
			name: "empty static still carries seed",
			seed: 42,
			want: "BUILD_SEED=42",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ComposeDefs(tc.static, tc.override, tc.seed))
		})
	}
}

func TestComposeDefsNoDuplication(t *testing.T) {
	got := ComposeDefs([]string{"SFP_1GBE=1", "DRAM_CH=1"}, "EXTRA=1", 3)
	for _, token := range strings.Fields(got) {
		require.Equal(t, 1, strings.Count(got, token), "token %q appears more than once", token)
	}
	// Seed appears exactly once, at the end.
	require.True(t, strings.HasSuffix(got, "BUILD_SEED=3"))
}
