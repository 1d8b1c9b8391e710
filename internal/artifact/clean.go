package artifact

import (
	"fmt"
	"os"
	"path/filepath"
)

// Clean removes every per-variant working directory for the device
// (the build-<DEVICE>_* pattern under baseDir) plus the canonical
// output directory. It is idempotent: a tree with nothing to remove is
// not an error. A failed build may leave an incomplete working
// directory behind; this is how it gets collected.
func Clean(baseDir, device, outputDir string) ([]string, error) {
	pattern := filepath.Join(baseDir, "build-"+device+"_*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad working directory pattern: %w", err)
	}

	var removed []string
	for _, dir := range matches {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", dir, err)
		}
		removed = append(removed, dir)
	}

	if _, err := os.Stat(outputDir); err == nil {
		if err := os.RemoveAll(outputDir); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", outputDir, err)
		}
		removed = append(removed, outputDir)
	}

	return removed, nil
}

// CleanAll is Clean plus the cached IP build directory.
func CleanAll(baseDir, device, outputDir, ipDir string) ([]string, error) {
	removed, err := Clean(baseDir, device, outputDir)
	if err != nil {
		return removed, err
	}

	if _, err := os.Stat(ipDir); err == nil {
		if err := os.RemoveAll(ipDir); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", ipDir, err)
		}
		removed = append(removed, ipDir)
	}

	return removed, nil
}
