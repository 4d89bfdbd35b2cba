// Package filesystem provides file system abstractions, the host implementation, and extension policies.
package filesystem

import (
	"context"
	"fmt"
)

var (
	ErrFileNotFound error = fmt.Errorf("file not found")
)

// ReadOnlyFileSystem is a basic interface for reading files
type ReadOnlyFileSystem interface {
	// Read reads the full content of a file at the given path as text
	Read(ctx context.Context, path string) (string, error)

	// FileExists returns true if the file at the given path exists, false otherwise. An error is returned only when
	// existence cannot be determined, e.g. a parent directory is not searchable
	FileExists(ctx context.Context, path string) (bool, error)
}

// FileSystem is a basic interface for reading and writing files
type FileSystem interface {
	ReadOnlyFileSystem

	// Write writes the content to a file at the given path, creating the file if it doesn't exist and truncating it if
	// it does
	Write(ctx context.Context, path string, content string) error
}
