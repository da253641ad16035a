package storage

import (
	"os"
	"path/filepath"
)

// rootMarkers identify the top directory of a workspace
var rootMarkers = []string{"go.work", "go.mod", ".git", ".codenav"}

// FindRoot returns the workspace root of a source file: the closest
// ancestor directory holding a root marker, or the file's directory when
// there is none. go.work wins over go.mod further down.
func FindRoot(filePath string) string {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return filepath.Dir(filePath)
	}
	start := filepath.Dir(abs)

	found := ""
	for dir := start; ; dir = filepath.Dir(dir) {
		if exists(filepath.Join(dir, "go.work")) {
			return dir
		}
		if found == "" {
			for _, marker := range rootMarkers[1:] {
				if exists(filepath.Join(dir, marker)) {
					found = dir
					break
				}
			}
		}
		if parent := filepath.Dir(dir); parent == dir {
			break
		}
	}
	if found != "" {
		return found
	}
	return start
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// OpenForFile opens the store of the workspace filePath belongs to. An
// empty path selects the default location inside the workspace root.
func OpenForFile(backend, path, filePath string) (Store, error) {
	if path == "" {
		path = DefaultPath(FindRoot(filePath), backend)
	}
	return Open(backend, path)
}
