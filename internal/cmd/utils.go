package cmd

import (
	"os"
	"path/filepath"

	"github.com/dosanma1/bitforge/internal/config"
)

// findRepoRoot walks up from the current directory looking for a
// bitforge.yaml. With no config file anywhere, the current directory is
// the root and the built-in device table applies.
func findRepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	start := dir

	for {
		if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return start, nil
}
