package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystem is the set of file operations the conversion pipeline needs.
// Implementations must be safe for concurrent use.
type FileSystem interface {
	// ReadFile reads the whole file at path.
	ReadFile(path string) ([]byte, error)

	// WriteFile creates or truncates path and writes data to it.
	WriteFile(path string, data []byte) error

	// MkdirTemp creates a new uniquely named directory inside dir and returns
	// its path. An empty dir means the implementation's temporary root.
	MkdirTemp(dir, pattern string) (string, error)

	// RemoveAll deletes path and everything below it. A missing path is not an error.
	RemoveAll(path string) error

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)
}
