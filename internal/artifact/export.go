// Package artifact stages synthesis outputs into the canonical output
// directory and removes build state.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dosanma1/bitforge/internal/image"
	"github.com/dosanma1/bitforge/pkg/xos"
)

// report file name the Vivado flow leaves in the working directory
const reportFile = "build.rpt"

// Name returns the canonical artifact name for a variant:
// usrp_<device-lowercase>_fpga_<suffix>.<ext>. The device identifier is
// case-normalized, the image-type suffix is not.
func Name(device, suffix, ext string) string {
	return fmt.Sprintf("usrp_%s_fpga_%s.%s", strings.ToLower(device), suffix, ext)
}

// Exporter copies finished build products into the output directory.
type Exporter struct {
	// OutputDir is the canonical output directory; created on demand.
	OutputDir string
}

// Export copies the bitstream and build report for a variant out of its
// working directory under their normalized names. Copies are atomic, so
// a download of a previous image never sees a half-written file.
// Callers only invoke this for full-bitstream builds.
func (e Exporter) Export(workDir string, v image.Variant) error {
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	bit := filepath.Join(workDir, v.Top+".bit")
	if err := xos.CopyFile(bit, filepath.Join(e.OutputDir, Name(v.Device, v.Suffix, "bit")), 0644); err != nil {
		return fmt.Errorf("failed to export bitstream: %w", err)
	}

	rpt := filepath.Join(workDir, reportFile)
	if err := xos.CopyFile(rpt, filepath.Join(e.OutputDir, Name(v.Device, v.Suffix, "rpt")), 0644); err != nil {
		return fmt.Errorf("failed to export build report: %w", err)
	}

	return nil
}
