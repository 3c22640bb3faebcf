// Package resource resolves bundled asset paths for both packaged and
// development execution.
package resource

import (
	"os"
	"path/filepath"
)

// EnvVar overrides the asset base directory when set.
const EnvVar = "MIA_RESOURCE_PATH"

// BaseDir returns the directory asset paths are resolved against.
// Priority: MIA_RESOURCE_PATH, then the executable's directory (packaged
// builds ship assets next to the binary), then the working directory.
func BaseDir() string {
	if dir := os.Getenv(EnvVar); dir != "" {
		return dir
	}
	if exe, err := os.Executable(); err == nil {
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Path resolves a relative asset path against the base directory.
// Absolute paths pass through unchanged.
func Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(BaseDir(), rel)
}
