// Package artifacts stores synthesized audio files on disk, keyed by
// generated identifier.
package artifacts

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Extension is the fixed encoding for all synthesized artifacts.
const Extension = ".mp3"

// ErrNotFound is returned when a requested artifact does not exist.
var ErrNotFound = errors.New("artifact not found")

// Store is a write-once-per-identifier file store. Identifiers are
// freshly generated per artifact, so no locking is needed beyond the
// atomicity of a single rename.
type Store struct {
	dir    string
	logger zerolog.Logger
}

// NewStore creates the artifact directory if needed.
func NewStore(dir string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &Store{
		dir:    dir,
		logger: logger.With().Str("component", "artifacts").Logger(),
	}, nil
}

// NewID returns a fresh high-entropy artifact identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "") + Extension
}

// Save durably writes content under id. The artifact is written to a
// temp file and renamed so a partially written file is never visible.
func (s *Store) Save(id string, content []byte) error {
	if err := validName(id); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("save artifact: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("save artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, id)); err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}

	s.logger.Debug().Str("artifactId", id).Int("bytes", len(content)).Msg("Artifact stored")
	return nil
}

// Path resolves id to a file path, or ErrNotFound.
func (s *Store) Path(id string) (string, error) {
	if err := validName(id); err != nil {
		return "", ErrNotFound
	}
	p := filepath.Join(s.dir, id)
	if _, err := os.Stat(p); err != nil {
		return "", ErrNotFound
	}
	return p, nil
}

// Spool writes an uploaded file into the store directory under its
// original (sanitized) name and returns the temp path. The caller is
// responsible for removing it.
func (s *Store) Spool(filename string, r io.Reader) (string, error) {
	name := filepath.Base(filename)
	if err := validName(name); err != nil {
		return "", err
	}

	p := filepath.Join(s.dir, name)
	f, err := os.Create(p)
	if err != nil {
		return "", fmt.Errorf("spool upload: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(p)
		return "", fmt.Errorf("spool upload: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(p)
		return "", fmt.Errorf("spool upload: %w", err)
	}
	return p, nil
}

// Sweep removes artifacts older than ttl. A non-positive ttl keeps
// everything forever.
func (s *Store) Sweep(ttl time.Duration) (int, error) {
	if ttl <= 0 {
		return 0, nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("sweep artifacts: %w", err)
	}

	cutoff := time.Now().Add(-ttl)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err == nil {
				removed++
			}
		}
	}

	if removed > 0 {
		s.logger.Info().Int("removed", removed).Dur("ttl", ttl).Msg("Artifact sweep completed")
	}
	return removed, nil
}

func validName(id string) error {
	if id == "" || id != filepath.Base(id) || strings.Contains(id, "..") {
		return fmt.Errorf("invalid artifact name %q", id)
	}
	return nil
}
