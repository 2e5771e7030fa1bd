package fileurl

import (
	"os"
	"path/filepath"
	"strings"
)

// IsExist checks whether the given path exists.
func IsExist(path string) bool {
	_, err := os.Stat(path)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates the parent directory chain for the given file path.
func CreatePath(path string, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if IsExist(dir) {
		return nil
	}
	return os.MkdirAll(dir, perm)
}

// GetExePath returns the directory containing the running executable.
func GetExePath() string {
	exe, err := os.Executable()
	if err != nil {
		dir, _ := os.Getwd()
		return dir
	}
	return filepath.Dir(exe)
}

// PathSuffixCheckAdd appends suffix to path unless it is already present.
// An empty path stays empty so that keys without a custom prefix are unchanged.
func PathSuffixCheckAdd(path string, suffix string) string {
	if path == "" {
		return ""
	}
	if strings.HasSuffix(path, suffix) {
		return path
	}
	return path + suffix
}
