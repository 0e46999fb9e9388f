package environment

import (
	"os"
	"path/filepath"
)

const (
	KeyRuntimeDir = "GM65D_RUNTIME_DIR"
	KeyConfigDir  = "GM65D_CONFIG_DIR"
)

// GetEnvPath joins elem to the directory found in the environment key, or to fallback when unset.
func GetEnvPath(key, fallback string, elem ...string) (v string) {
	v = os.Getenv(key)
	if v == "" {
		v = fallback
	}

	return filepath.Join(append([]string{v}, elem...)...)
}
