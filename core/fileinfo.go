package core

import "path/filepath"

// FileInfo records the identity of the file backing a document, if any.
type FileInfo struct {
	path string
}

func (f FileInfo) HasPath() bool {
	return f.path != ""
}

func (f FileInfo) Path() string {
	return f.path
}

// DisplayName is the base name shown in the status bar, or a placeholder when
// no file is associated.
func (f FileInfo) DisplayName() string {
	if f.path == "" {
		return "[No Name]"
	}
	return filepath.Base(f.path)
}
