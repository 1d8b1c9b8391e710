package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "E320", cfg.Device.Name)
	require.Equal(t, []string{"1G", "XG"}, cfg.Standard)
	require.Equal(t, "build", cfg.Build.OutputDir)
	require.Equal(t, "build-ip", cfg.Build.IPDir)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
device:
  name: E320
  part: xc7z045ffg900-3
  top: e320
variants:
  - suffix: 1G
    defs: [SFP_1GBE=1]
  - suffix: XG
    defs: [SFP_10GBE=1]
standard: [1G, XG]
build:
  output_dir: out
  seed: 3
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "out", cfg.Build.OutputDir)
	require.Equal(t, 3, cfg.Build.Seed)

	v, err := cfg.Variant("XG")
	require.NoError(t, err)
	require.Equal(t, "E320_XG", v.Name())
	require.Equal(t, "e320", v.Top)
	require.Equal(t, []string{"SFP_10GBE=1"}, v.Defs)

	_, err = cfg.Variant("ZZ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown variant")
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing part",
			yaml: "device:\n  name: E320\n  top: e320\nvariants:\n  - suffix: 1G\n",
			want: "device.part is required",
		},
		{
			name: "duplicate suffix",
			yaml: "device:\n  name: E320\n  part: p\n  top: e320\nvariants:\n  - suffix: 1G\n  - suffix: 1G\n",
			want: "duplicate variant suffix",
		},
		{
			name: "undefined standard variant",
			yaml: "device:\n  name: E320\n  part: p\n  top: e320\nvariants:\n  - suffix: 1G\nstandard: [XG]\n",
			want: "standard variant XG is not defined",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tc.yaml), 0644))
			_, err := Load(path)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	cfg, err := LoadOrDefault(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "E320", cfg.Device.Name)
}

func TestResolverPrecedence(t *testing.T) {
	cfg := Default()
	r := NewResolver(cfg)

	// Config default wins when nothing else is set.
	require.Equal(t, "build", r.OutputDir(""))

	// Environment beats the config file.
	t.Setenv(EnvOutputDir, "env-out")
	require.Equal(t, "env-out", r.OutputDir(""))

	// CLI flag beats the environment.
	require.Equal(t, "cli-out", r.OutputDir("cli-out"))
}

func TestResolverSeed(t *testing.T) {
	cfg := Default()
	cfg.Build.Seed = 9
	r := NewResolver(cfg)

	require.Equal(t, 9, r.Seed(0, false))

	t.Setenv(EnvSeed, "17")
	require.Equal(t, 17, r.Seed(0, false))

	// An explicit --seed=0 wins even over the environment.
	require.Equal(t, 0, r.Seed(0, true))
}

func TestModeFlag(t *testing.T) {
	require.False(t, ModeFlag("BITFORGE_TEST_UNSET_FLAG"))
	t.Setenv("BITFORGE_TEST_UNSET_FLAG", "1")
	require.True(t, ModeFlag("BITFORGE_TEST_UNSET_FLAG"))
}
