package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"unicode/utf8"
)

var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// OSFileSystem is a FileSystem backed by the host operating system. It holds no handles between calls; every
// operation opens, acts and closes within a single call
type OSFileSystem struct {
	perm os.FileMode
}

// NewOSFileSystem creates a host file system that creates new files with mode 0644
func NewOSFileSystem() OSFileSystem {
	return OSFileSystem{perm: 0o644}
}

func (ofs OSFileSystem) Read(_ context.Context, path string) (string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %w", ErrFileNotFound, err)
	} else if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

// FileExists reports whether path names an existing file or directory. Paths that cannot exist, such as one routed
// through a regular file or one whose name exceeds the OS limit, are reported as absent rather than as errors
func (ofs OSFileSystem) FileExists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) || errors.Is(err, syscall.ENAMETOOLONG) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

func (ofs OSFileSystem) Write(_ context.Context, path string, content string) error {
	return os.WriteFile(path, []byte(content), ofs.perm)
}
