package envstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Store reads and merges key-value pairs into a single dotenv file.
type Store struct {
	path string
}

// New creates a store over the given backing file path.
// The file does not need to exist yet; the first Update creates it.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the backing file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the backing file into a map.
// A missing file yields an empty map, not an error: absent keys are treated
// as unset.
func (s *Store) Load() (map[string]string, error) {
	if !s.Exists() {
		return map[string]string{}, nil
	}
	env, err := godotenv.Read(s.path)
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", s.path, err)
	}
	return env, nil
}

// Update merges updates into the backing file, preserving every key not
// present in updates. The write is atomic (temp file + rename).
//
// Returns an error on any I/O failure; callers decide how to surface it.
func (s *Store) Update(updates map[string]string) error {
	current, err := s.Load()
	if err != nil {
		return fmt.Errorf("update env file: %w", err)
	}

	for k, v := range updates {
		current[k] = v
	}

	content, err := godotenv.Marshal(current)
	if err != nil {
		return fmt.Errorf("marshal env file: %w", err)
	}

	return s.writeAtomic(content + "\n")
}

// Reload re-reads the backing file and mirrors every key into the process
// environment. Workflows call this after writing new values so that
// collaborators reading os.Getenv observe exactly what was just persisted.
func (s *Store) Reload() (map[string]string, error) {
	env, err := s.Load()
	if err != nil {
		return nil, err
	}
	for k, v := range env {
		if err := os.Setenv(k, v); err != nil {
			return nil, fmt.Errorf("set %s in process environment: %w", k, err)
		}
	}
	return env, nil
}

// writeAtomic writes content to a temp file in the backing file's directory
// and renames it into place.
func (s *Store) writeAtomic(content string) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".env-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp env file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp env file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp env file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp env file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace env file %s: %w", s.path, err)
	}
	return nil
}
