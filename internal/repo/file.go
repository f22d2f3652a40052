// Package repo contains the persistence layer for the Study Time Tracker.
// Storage is a single JSON file holding the whole session collection; every
// load reads and decodes the full file, every save encodes and rewrites it.
// No business logic lives here, only file I/O and codec calls.
package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dnwood/study-time-tracker/internal/codec"
	"github.com/dnwood/study-time-tracker/internal/domain"
)

// SessionStore defines the persistence operations for the session collection.
// The service layer depends on this interface, not the concrete file
// implementation, which allows the service to be unit-tested with an
// in-memory double.
//
// The store provides no isolation between concurrent load/mutate/save
// sequences; callers must serialize their own cycles.
type SessionStore interface {
	// Load reads the whole backing store and returns the decoded sessions.
	// A missing store is not an error: it yields an empty list.
	Load(ctx context.Context) ([]domain.Session, error)

	// Save encodes the sessions and rewrites the whole backing store.
	Save(ctx context.Context, sessions []domain.Session) error
}

// FileStore is the file-backed implementation of SessionStore.
type FileStore struct {
	path string
	log  *slog.Logger
}

// NewFileStore constructs a FileStore writing to path, creating the parent
// directory if necessary. Pass nil for log to use slog.Default().
func NewFileStore(path string, log *slog.Logger) (*FileStore, error) {
	if log == nil {
		log = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("repo.NewFileStore: create data directory: %w", err)
		}
	}
	return &FileStore{path: path, log: log}, nil
}

// Load reads and decodes the whole file. A file that does not exist yet
// decodes to an empty list. Records that fail to decode are dropped by the
// codec; the drop count is logged here so the loss is visible in operation.
func (s *FileStore) Load(ctx context.Context) ([]domain.Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repo.FileStore.Load: %w", err)
	}

	sessions, skipped, err := codec.DecodeSessions(string(data))
	if err != nil {
		return nil, fmt.Errorf("repo.FileStore.Load: %w", err)
	}
	if skipped > 0 {
		s.log.WarnContext(ctx, "skipped undecodable session records",
			"count", skipped,
			"path", s.path,
		)
	}
	return sessions, nil
}

// Save encodes the sessions and rewrites the whole file.
func (s *FileStore) Save(ctx context.Context, sessions []domain.Session) error {
	if err := os.WriteFile(s.path, []byte(codec.EncodeSessions(sessions)), 0o644); err != nil {
		return fmt.Errorf("repo.FileStore.Save: %w", err)
	}
	return nil
}

// Exists reports whether the backing file has been written yet.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Remove deletes the backing file. Removing a file that does not exist is a
// no-op, matching Load's missing-file tolerance.
func (s *FileStore) Remove() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("repo.FileStore.Remove: %w", err)
	}
	return nil
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// compile-time check: FileStore must satisfy SessionStore.
var _ SessionStore = (*FileStore)(nil)
