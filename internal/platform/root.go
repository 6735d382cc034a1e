package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jotterhq/jotter/pkg/config"
)

// FindRoot recursively looks upwards for a vault root indicator.
// The indicator is the catalog file (jotter.yaml), which `jotter init`
// always writes. Returns the absolute path to the root when found.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, config.DefaultFile) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("vault root not found")
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
