// Package fileaccess implements the validated read and write operations exposed to the front end. Each operation is a
// self-contained transaction: validate the path, act on the file system, map the failure.
package fileaccess

import (
	"context"

	"go.uber.org/zap"

	"github.com/cchalm/svgtsx/internal/filesystem"
	"github.com/cchalm/svgtsx/internal/logging"
)

const (
	msgOnlySVG      = "Only SVG files are allowed"
	msgTSXExtension = "File must have .tsx extension"
	msgNotFound     = "File not found"
	msgReadFailed   = "Failed to read file"
	msgWriteFailed  = "Failed to write file"
)

// Service performs validated file access against a file system
type Service struct {
	fs filesystem.FileSystem
}

// New creates a Service on top of fs
func New(fs filesystem.FileSystem) *Service {
	return &Service{fs: fs}
}

// ReadFile returns the content of an SVG file verbatim.
//
// The existence check is advisory. A file removed between the check and the read is reported as an I/O failure, not
// as not found.
func (s *Service) ReadFile(ctx context.Context, path string) (string, error) {
	if err := filesystem.SVGPolicy.Check(path); err != nil {
		return "", newError(KindInvalidExtension, msgOnlySVG, err)
	}

	exists, err := s.fs.FileExists(ctx, path)
	if err != nil {
		return "", newError(KindIoFailure, msgReadFailed, err)
	}
	if !exists {
		return "", newError(KindNotFound, msgNotFound, filesystem.ErrFileNotFound)
	}

	content, err := s.fs.Read(ctx, path)
	if err != nil {
		return "", newError(KindIoFailure, msgReadFailed, err)
	}

	logging.Logger().Debug("read file", zap.String("path", path), zap.Int("bytes", len(content)))
	return content, nil
}

// WriteFile writes content to a TSX file, creating or truncating it. There is no backup and no atomic rename; a crash
// mid-write can leave a partial file
func (s *Service) WriteFile(ctx context.Context, path string, content string) error {
	if err := filesystem.TSXPolicy.Check(path); err != nil {
		return newError(KindInvalidExtension, msgTSXExtension, err)
	}

	if err := s.fs.Write(ctx, path, content); err != nil {
		return newError(KindIoFailure, msgWriteFailed, err)
	}

	logging.Logger().Debug("wrote file", zap.String("path", path), zap.Int("bytes", len(content)))
	return nil
}
