package discovery

import "time"

// DiscoveredFile represents an input file resolved from the command line
type DiscoveredFile struct {
	Path         string    // Absolute path to file
	RelativePath string    // Path relative to the argument it was found under
	Type         FileType  // Input or Other
	ModTime      time.Time // Last modification time
}

// FileType indicates whether a file looks like a SQL script
type FileType int

const (
	FileTypeInput FileType = iota // Matches *.sql
	FileTypeOther                 // Anything else
)

// String returns a string representation of FileType
func (ft FileType) String() string {
	switch ft {
	case FileTypeInput:
		return "input"
	case FileTypeOther:
		return "other"
	default:
		return "unknown"
	}
}
