package vivado

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslateSynthError(t *testing.T) {
	log := `INFO: [Synth 8-638] synthesizing module 'e320'
ERROR: [Synth 8-2715] syntax error near endmodule [e320_clocking.v:42]
INFO: [Common 17-206] Exiting Vivado`

	tr := NewErrorTranslator()
	got := tr.Translate(log)
	require.Contains(t, got, "Synthesis failed")
	require.Contains(t, got, "e320_clocking.v:42")
}

func TestTranslateTimingFailure(t *testing.T) {
	log := "CRITICAL WARNING: [Timing 38-282] The design failed to meet the timing requirements."
	got := NewErrorTranslator().Translate(log)
	require.Contains(t, got, "BUILD_SEED")
}

func TestTranslateLicenseFailure(t *testing.T) {
	log := "ERROR: [Common 17-349] Got license checkout error."
	got := NewErrorTranslator().Translate(log)
	require.Contains(t, got, "license")
}

func TestTranslateCapsErrorCascade(t *testing.T) {
	log := ""
	for i := 0; i < 10; i++ {
		log += "ERROR: [Place 30-99] cell placement failed\n"
	}
	got := NewErrorTranslator().Translate(log)
	require.Contains(t, got, "Placement failed")
	require.Contains(t, got, "build.log")
}

func TestTranslateFallsBackToLogPointer(t *testing.T) {
	got := NewErrorTranslator().Translate("nothing useful here")
	require.Contains(t, got, "build.log")
}
