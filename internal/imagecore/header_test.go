package imagecore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	got := string(Default().Render())
	require.Contains(t, got, "`define CHDR_W          64\n")
	require.Contains(t, got, "`define RFNOC_PROTOVER  { 8'd1, 8'd0 }\n")
	require.Contains(t, got, "Do not edit")
}

func TestRenderCustomWidth(t *testing.T) {
	h := Header{ChdrWidth: 128, ProtoMajor: 2, ProtoMinor: 3}
	got := string(h.Render())
	require.Contains(t, got, "`define CHDR_W          128\n")
	require.Contains(t, got, "{ 8'd2, 8'd3 }")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rfnoc_image_core.vh")
	require.NoError(t, Default().WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, Default().Render(), data)
}
