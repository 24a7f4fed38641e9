// Package docstore persists rendered documents on the local filesystem
// under a configured document root.
package docstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shopinvoice/internal/core/apperror"
	"shopinvoice/internal/domain/invoice"
)

// Store writes documents below a fixed root directory, creating
// subdirectories on demand. File writes are not transactional with the
// database; callers persist records only after a successful write.
type Store struct {
	root string
}

var _ invoice.DocumentStore = (*Store)(nil)

// New validates the document root up front. A missing or non-directory
// root is fatal at construction time, not recoverable per-call.
func New(root string) (*Store, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, apperror.NewStorageUnavailable(root, err)
	}
	if !info.IsDir() {
		return nil, apperror.NewStorageUnavailable(root, fmt.Errorf("not a directory"))
	}

	return &Store{root: root}, nil
}

// Write stores data under the relative path.
func (s *Store) Write(ctx context.Context, relPath string, data []byte) error {
	abs, err := s.resolve(relPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	return nil
}

// AbsolutePath resolves a stored relative path against the root.
func (s *Store) AbsolutePath(relPath string) string {
	return filepath.Join(s.root, filepath.FromSlash(relPath))
}

// resolve rejects paths that would escape the document root.
func (s *Store) resolve(relPath string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))
	if cleaned == "." || filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", apperror.NewValidation("invalid document path").
			WithDetail("path", relPath)
	}
	return filepath.Join(s.root, cleaned), nil
}
