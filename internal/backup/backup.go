package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"
)

// ErrSourceMissing is returned when the file to back up does not exist.
// Callers must treat this as fatal for the current workflow: with no backup
// possible, no mutation may proceed.
var ErrSourceMissing = errors.New("backup source does not exist")

// DefaultMaxBackups is the retention cap applied when none is configured.
const DefaultMaxBackups = 10

// nameTimeLayout is the timestamp part of a backup name. Nanosecond
// resolution, no colons (Windows), lexicographic order equals time order.
const nameTimeLayout = "20060102T150405.000000000"

// maxNameRetries bounds how often a colliding backup name is re-derived
// before the write is reported as failed.
const maxNameRetries = 100

// seq disambiguates backups created within the same timestamp tick.
var seq atomic.Int64

// Manager performs backups into a single directory with retention.
type Manager struct {
	dir    string
	suffix string
	max    int
	now    func() time.Time
}

// NewManager creates a backup manager.
// An empty suffix or non-positive max falls back to ".env" / DefaultMaxBackups.
func NewManager(dir, suffix string, max int) *Manager {
	if suffix == "" {
		suffix = ".env"
	}
	if max <= 0 {
		max = DefaultMaxBackups
	}
	return &Manager{dir: dir, suffix: suffix, max: max, now: time.Now}
}

// Dir returns the backup directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Backup copies source into the backup directory and enforces retention.
//
// Preconditions: source must exist, else ErrSourceMissing is returned and no
// entry is created. On success the directory contains at most max entries,
// the most recent by creation order.
func (m *Manager) Backup(source string) error {
	if _, err := os.Stat(source); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrSourceMissing, source)
		}
		return fmt.Errorf("stat backup source %s: %w", source, err)
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("create backup dir %s: %w", m.dir, err)
	}

	for attempt := 0; ; attempt++ {
		name := fmt.Sprintf("%s-%06d%s",
			m.now().UTC().Format(nameTimeLayout),
			seq.Add(1),
			m.suffix,
		)
		dest := filepath.Join(m.dir, name)

		err := copyFile(source, dest)
		if err == nil {
			break
		}
		// The sequence restarts with the process, so the derived name can
		// collide with a backup left by an earlier run. Bump and retry.
		if os.IsExist(err) && attempt < maxNameRetries {
			continue
		}
		return fmt.Errorf("copy %s to %s: %w", source, dest, err)
	}

	if err := m.rotate(); err != nil {
		return fmt.Errorf("rotate backups in %s: %w", m.dir, err)
	}
	return nil
}

// Entries returns the backup file names in creation order, oldest first.
func (m *Manager) Entries() ([]string, error) {
	dirEntries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup dir %s: %w", m.dir, err)
	}

	var names []string
	for _, e := range dirEntries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), m.suffix) {
			continue
		}
		names = append(names, e.Name())
	}
	// Names embed timestamp+seq, so lexicographic order is creation order.
	sort.Strings(names)
	return names, nil
}

// rotate deletes the oldest surplus entries beyond the retention cap.
// Deletion stops at the first failure so no more than necessary is removed.
func (m *Manager) rotate() error {
	names, err := m.Entries()
	if err != nil {
		return err
	}
	if len(names) <= m.max {
		return nil
	}
	for _, name := range names[:len(names)-m.max] {
		if err := os.Remove(filepath.Join(m.dir, name)); err != nil {
			return fmt.Errorf("delete old backup %s: %w", name, err)
		}
	}
	return nil
}

// copyFile copies src to dest, removing a partial dest on failure.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return err
	}
	return nil
}
