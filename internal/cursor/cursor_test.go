package cursor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kto/cursorctl/internal/envstore"
	"github.com/kto/cursorctl/internal/result"
)

func newStore(t *testing.T) *envstore.Store {
	t.Helper()
	return envstore.New(filepath.Join(t.TempDir(), ".env"))
}

func TestGenerator_ProducesCredentialsUnderDomain(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Update(map[string]string{"DOMAIN": "example.com"}))

	raw, err := NewGenerator(store).GenerateAccount(context.Background())
	require.NoError(t, err)

	res, err := result.Normalize(raw)
	require.NoError(t, err)
	email, password, err := res.Credentials()
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(email, "@example.com"), "email %q must use the persisted domain", email)
	local := strings.TrimSuffix(email, "@example.com")
	assert.Len(t, local, localPartLength)
	assert.Len(t, password, passwordLength)
}

func TestGenerator_RandomizesBetweenCalls(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Update(map[string]string{"DOMAIN": "example.com"}))
	gen := NewGenerator(store)

	first, err := gen.GenerateAccount(context.Background())
	require.NoError(t, err)
	second, err := gen.GenerateAccount(context.Background())
	require.NoError(t, err)

	r1, _ := result.Normalize(first)
	r2, _ := result.Normalize(second)
	assert.NotEqual(t, r1.Payload, r2.Payload)
}

func TestGenerator_MissingDomainFailsEnvelope(t *testing.T) {
	raw, err := NewGenerator(newStore(t)).GenerateAccount(context.Background())
	require.NoError(t, err)

	res, err := result.Normalize(raw)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "DOMAIN")
}

func TestResetter_RewritesTelemetryIdentifiers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	original := map[string]any{
		"telemetry.machineId":    "old-machine",
		"telemetry.macMachineId": "old-mac",
		"telemetry.devDeviceId":  "old-dev",
		"telemetry.sqmId":        "old-sqm",
		"workbench.colorTheme":   "dark",
	}
	data, err := json.Marshal(original)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	res, err := NewResetter(path).ResetID(context.Background())
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, "machine identifiers reset", res.Message)

	updated, err := os.ReadFile(path)
	require.NoError(t, err)
	var storage map[string]any
	require.NoError(t, json.Unmarshal(updated, &storage))

	for _, key := range telemetryKeys {
		assert.NotEqual(t, original[key], storage[key], "%s must be rewritten", key)
		assert.NotEmpty(t, storage[key])
	}
	// Unrelated keys are preserved.
	assert.Equal(t, "dark", storage["workbench.colorTheme"])

	// Identifier formats match what the editor writes.
	machineID := storage["telemetry.machineId"].(string)
	assert.Len(t, machineID, 64)
	sqmID := storage["telemetry.sqmId"].(string)
	assert.True(t, strings.HasPrefix(sqmID, "{") && strings.HasSuffix(sqmID, "}"))
	assert.Equal(t, strings.ToUpper(sqmID), sqmID)
}

func TestResetter_MissingStorageFailsEnvelope(t *testing.T) {
	res, err := NewResetter(filepath.Join(t.TempDir(), "nope.json")).ResetID(context.Background())
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "storage.json not found")
}

func TestResetter_MalformedStorageIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewResetter(path).ResetID(context.Background())
	require.Error(t, err)
}

func TestCookieUpdater_PersistsToken(t *testing.T) {
	store := newStore(t)

	res, err := NewCookieUpdater(store).ProcessCookie(context.Background(),
		"WorkosCursorSessionToken=abc123; other=x")
	require.NoError(t, err)
	assert.True(t, res.OK)

	env, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "WorkosCursorSessionToken=abc123", env["COOKIE"])
}

func TestCookieUpdater_MissingTokenFailsEnvelope(t *testing.T) {
	store := newStore(t)

	res, err := NewCookieUpdater(store).ProcessCookie(context.Background(), "other=x")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.False(t, store.Exists(), "nothing may be persisted on failure")
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		want   string
	}{
		{"bare", "WorkosCursorSessionToken=abc123", "abc123"},
		{"with trailing pairs", "WorkosCursorSessionToken=abc123; theme=dark", "abc123"},
		{"with leading pairs", "theme=dark; WorkosCursorSessionToken=abc123", "abc123"},
		{"absent", "theme=dark", ""},
		{"empty value", "WorkosCursorSessionToken=", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractToken(tt.cookie))
		})
	}
}
