package cursor

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"

	"github.com/kto/cursorctl/internal/result"
)

// telemetryKeys are the machine/installation identifiers the editor stores
// in its storage.json.
var telemetryKeys = []string{
	"telemetry.machineId",
	"telemetry.macMachineId",
	"telemetry.devDeviceId",
	"telemetry.sqmId",
}

// Resetter rewrites the editor's machine identifiers with fresh values.
type Resetter struct {
	storagePath string
}

// NewResetter creates a resetter over the editor's storage.json.
// An empty path falls back to the per-OS default location.
func NewResetter(storagePath string) *Resetter {
	if storagePath == "" {
		storagePath = DefaultStoragePath()
	}
	return &Resetter{storagePath: storagePath}
}

// DefaultStoragePath returns the editor's storage.json location for the
// current OS.
func DefaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return filepath.Join(appdata, "Cursor", "User", "globalStorage", "storage.json")
		}
		return filepath.Join(home, "AppData", "Roaming", "Cursor", "User", "globalStorage", "storage.json")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Cursor", "User", "globalStorage", "storage.json")
	default:
		return filepath.Join(home, ".config", "Cursor", "User", "globalStorage", "storage.json")
	}
}

// ResetID replaces every telemetry identifier in storage.json with a fresh
// random value. A missing storage file is a failed envelope with a
// human-readable message; I/O and JSON errors are returned as errors.
func (r *Resetter) ResetID(ctx context.Context) (result.Result, error) {
	data, err := os.ReadFile(r.storagePath)
	if err != nil {
		if os.IsNotExist(err) {
			return result.Fail(fmt.Sprintf("storage.json not found: %s", r.storagePath)), nil
		}
		return result.Result{}, fmt.Errorf("read %s: %w", r.storagePath, err)
	}

	var storage map[string]any
	if err := json.Unmarshal(data, &storage); err != nil {
		return result.Result{}, fmt.Errorf("parse %s: %w", r.storagePath, err)
	}

	for _, key := range telemetryKeys {
		value, err := freshIdentifier(key)
		if err != nil {
			return result.Result{}, fmt.Errorf("generate identifier for %s: %w", key, err)
		}
		storage[key] = value
	}

	out, err := json.MarshalIndent(storage, "", "    ")
	if err != nil {
		return result.Result{}, fmt.Errorf("encode %s: %w", r.storagePath, err)
	}
	if err := writeAtomic(r.storagePath, out); err != nil {
		return result.Result{}, err
	}

	return result.Ok("machine identifiers reset"), nil
}

// freshIdentifier produces a new identifier in the same format the editor
// uses for each telemetry key: 64 hex chars for machine IDs, a UUID for the
// device ID, and a braced upper-case UUID for the SQM ID.
func freshIdentifier(key string) (string, error) {
	switch key {
	case "telemetry.devDeviceId":
		return uuid.NewString(), nil
	case "telemetry.sqmId":
		return "{" + strings.ToUpper(uuid.NewString()) + "}", nil
	default:
		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			return "", err
		}
		return hex.EncodeToString(raw), nil
	}
}

// writeAtomic writes data to path via a temp file and rename.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".storage-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
