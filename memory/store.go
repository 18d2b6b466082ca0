// Package memory persists per-user conversation history. Each identity owns
// exactly one record file; a save is a full overwrite of that record. The
// store offers no delete or enumeration beyond the zip export.
package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidIdentity indicates an identity that has no safe representation
// as a record name. Such identities are rejected, never sanitized.
var ErrInvalidIdentity = errors.New("memory: invalid identity")

// Store keeps one JSON record file per identity under a single directory.
//
// Concurrent writers for the same identity are last-writer-wins; callers
// that need stronger guarantees must serialize externally.
type Store struct {
	dir string
}

// NewStore creates the record directory if needed and returns a store over it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating record directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// ValidateIdentity reports whether identity can name a record file.
func ValidateIdentity(identity string) error {
	if identity == "" {
		return fmt.Errorf("%w: empty", ErrInvalidIdentity)
	}
	if strings.ContainsAny(identity, "/\\\x00") || strings.Contains(identity, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidIdentity, identity)
	}
	return nil
}

// Load returns the persisted history for identity. A first-time identity has
// no record; that is an empty history, not an error.
func (s *Store) Load(identity string) ([]Turn, error) {
	path, err := s.recordPath(identity)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []Turn{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading record for %s: %w", identity, err)
	}

	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("parsing record for %s: %w", identity, err)
	}
	return turns, nil
}

// Save fully replaces the record for identity. The write goes to a temporary
// file in the same directory and is renamed into place, so a concurrent
// reader never observes a partially written record.
func (s *Store) Save(identity string, turns []Turn) error {
	path, err := s.recordPath(identity)
	if err != nil {
		return err
	}

	data, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("encoding record for %s: %w", identity, err)
	}

	tmp, err := os.CreateTemp(s.dir, "record-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp record: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp record: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing record for %s: %w", identity, err)
	}
	return nil
}

// recordPath derives the record file name deterministically from identity.
func (s *Store) recordPath(identity string) (string, error) {
	if err := ValidateIdentity(identity); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, identity+".json"), nil
}
