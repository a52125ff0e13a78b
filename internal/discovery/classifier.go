package discovery

import (
	"path/filepath"
	"strings"
)

// ClassifyFile determines whether a file is a SQL script based on its extension
func ClassifyFile(filename string) FileType {
	if strings.HasSuffix(strings.ToLower(filename), ".sql") {
		return FileTypeInput
	}
	return FileTypeOther
}

// ClassifyPath determines file type from a full path
func ClassifyPath(path string) FileType {
	return ClassifyFile(filepath.Base(path))
}

// IsInputFile returns true if the file is a SQL script
func IsInputFile(filename string) bool {
	return ClassifyFile(filename) == FileTypeInput
}
