package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvCommandGolden(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "work.env")
	require.NoError(t, os.WriteFile(envPath,
		[]byte("DOMAIN=example.com\nEMAIL=user@example.com\n"), 0o644))

	cmd, out, _ := newTestShell(t)
	opts := &EnvOptions{
		RootOptions: &RootOptions{Format: "text", EnvFile: envPath},
	}

	require.NoError(t, runEnv(opts, cmd))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "env_output", out.Bytes())
}

func TestEnvCommandJSON(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "work.env")
	require.NoError(t, os.WriteFile(envPath, []byte("DOMAIN=example.com\n"), 0o644))

	cmd, out, _ := newTestShell(t)
	opts := &EnvOptions{
		RootOptions: &RootOptions{Format: "json", EnvFile: envPath},
	}

	require.NoError(t, runEnv(opts, cmd))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "example.com", data["DOMAIN"])
	assert.Equal(t, "", data["EMAIL"])
}

func TestEnvCommandMissingFile(t *testing.T) {
	cmd, out, _ := newTestShell(t)
	opts := &EnvOptions{
		RootOptions: &RootOptions{Format: "text", EnvFile: filepath.Join(t.TempDir(), "none.env")},
	}

	// A missing env file renders every variable as unset.
	require.NoError(t, runEnv(opts, cmd))
	assert.Contains(t, out.String(), "DOMAIN): (unset)")
}
