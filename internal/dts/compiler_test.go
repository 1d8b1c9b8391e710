package dts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOutputName(t *testing.T) {
	require.Equal(t, "neon-e320.dts", OutputName("dts/neon-e320.dtsi"))
	require.Equal(t, "overlay.dts", OutputName("overlay.in"))
}

func newTestCompiler(t *testing.T, includeDir string) *Compiler {
	t.Helper()
	// Staleness checks do not shell out, so a fake path is fine.
	return &Compiler{cppPath: "cpp", includeDir: includeDir}
}

func TestStaleMissingOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "neon-e320.dtsi")
	require.NoError(t, os.WriteFile(src, []byte("/dts-v1/;"), 0644))

	c := newTestCompiler(t, filepath.Join(dir, "include"))
	stale, err := c.Stale(src, filepath.Join(dir, "neon-e320.dts"))
	require.NoError(t, err)
	require.True(t, stale)
}

func TestStaleTracksSourceAndIncludes(t *testing.T) {
	dir := t.TempDir()
	incDir := filepath.Join(dir, "include")
	require.NoError(t, os.MkdirAll(incDir, 0755))

	src := filepath.Join(dir, "neon-e320.dtsi")
	out := filepath.Join(dir, "neon-e320.dts")
	inc := filepath.Join(incDir, "e320-pins.dtsi")

	base := time.Now().Add(-time.Hour)
	require.NoError(t, os.WriteFile(src, []byte("/dts-v1/;"), 0644))
	require.NoError(t, os.WriteFile(inc, []byte("// pins"), 0644))
	require.NoError(t, os.WriteFile(out, []byte("/dts-v1/;"), 0644))
	require.NoError(t, os.Chtimes(src, base, base))
	require.NoError(t, os.Chtimes(inc, base, base))
	require.NoError(t, os.Chtimes(out, base.Add(time.Minute), base.Add(time.Minute)))

	c := newTestCompiler(t, incDir)

	// Output newer than source and includes: up to date.
	stale, err := c.Stale(src, out)
	require.NoError(t, err)
	require.False(t, stale)

	// Touching the source forces a rebuild.
	now := time.Now()
	require.NoError(t, os.Chtimes(src, now, now))
	stale, err = c.Stale(src, out)
	require.NoError(t, err)
	require.True(t, stale)

	// Reset the source; touching a shared include also forces one.
	require.NoError(t, os.Chtimes(src, base, base))
	require.NoError(t, os.Chtimes(inc, now, now))
	stale, err = c.Stale(src, out)
	require.NoError(t, err)
	require.True(t, stale)
}

func TestStaleIgnoresUnrelatedIncludes(t *testing.T) {
	dir := t.TempDir()
	incDir := filepath.Join(dir, "include")
	require.NoError(t, os.MkdirAll(incDir, 0755))

	src := filepath.Join(dir, "a.dtsi")
	out := filepath.Join(dir, "a.dts")
	base := time.Now().Add(-time.Hour)
	require.NoError(t, os.WriteFile(src, nil, 0644))
	require.NoError(t, os.WriteFile(out, nil, 0644))
	require.NoError(t, os.Chtimes(src, base, base))
	require.NoError(t, os.Chtimes(out, base.Add(time.Minute), base.Add(time.Minute)))

	// A fresh file that is not an include must not trigger a rebuild.
	require.NoError(t, os.WriteFile(filepath.Join(incDir, "README.md"), []byte("x"), 0644))

	c := newTestCompiler(t, incDir)
	stale, err := c.Stale(src, out)
	require.NoError(t, err)
	require.False(t, stale)
}
