package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kto/cursorctl/internal/envstore"
	"github.com/kto/cursorctl/internal/orchestrator"
	"github.com/kto/cursorctl/internal/result"
	"github.com/kto/cursorctl/internal/testutil"
)

// newTestShell returns a bare command with captured stdout/stderr, suitable
// for driving the run* helpers directly.
func newTestShell(t *testing.T) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errBuf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetIn(strings.NewReader(""))
	return cmd, &out, &errBuf
}

func TestGenerateCommandSuccess(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte("DOMAIN=example.com\n"), 0o644))

	cmd, out, _ := newTestShell(t)
	opts := &GenerateOptions{
		RootOptions: &RootOptions{Format: "text"},
		Generator: &testutil.StubGenerator{
			Raw: result.Ok("account generated", "user@example.com", "hunter2secret"),
		},
	}

	require.NoError(t, runGenerate(opts, cmd))

	assert.Contains(t, out.String(), "OK: account generated")
	assert.Contains(t, out.String(), "EMAIL: user@example.com")
	assert.Contains(t, out.String(), "PASSWORD: hunter2secret")

	vars, err := envstore.New(".env").Load()
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", vars["EMAIL"])
	assert.Equal(t, "hunter2secret", vars["PASSWORD"])
	assert.Equal(t, "example.com", vars["DOMAIN"])

	// One backup was taken before mutation.
	entries, err := os.ReadDir("env_backups")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGenerateCommandDomainFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte("DOMAIN=old.example\n"), 0o644))

	cmd, _, _ := newTestShell(t)
	opts := &GenerateOptions{
		RootOptions: &RootOptions{Format: "text"},
		Domain:      "fresh.example",
		Generator: &testutil.StubGenerator{
			Raw: result.Ok("account generated", "a@fresh.example", "pw"),
		},
	}

	require.NoError(t, runGenerate(opts, cmd))

	vars, err := envstore.New(".env").Load()
	require.NoError(t, err)
	assert.Equal(t, "fresh.example", vars["DOMAIN"])
}

func TestGenerateCommandJSON(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte("DOMAIN=example.com\n"), 0o644))

	cmd, out, errBuf := newTestShell(t)
	opts := &GenerateOptions{
		RootOptions: &RootOptions{Format: "json"},
		Generator: &testutil.StubGenerator{
			Raw: result.Ok("account generated", "user@example.com", "pw"),
		},
	}

	require.NoError(t, runGenerate(opts, cmd))

	// stdout carries exactly one JSON document; notifications went to stderr.
	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "user@example.com", data["email"])
	assert.Contains(t, errBuf.String(), "OK: account generated")
}

func TestGenerateCommandMissingEnvFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd, _, errBuf := newTestShell(t)
	gen := &testutil.StubGenerator{Raw: result.Ok("account generated", "a@b.c", "pw")}
	opts := &GenerateOptions{
		RootOptions: &RootOptions{Format: "text"},
		Generator:   gen,
	}

	err := runGenerate(opts, cmd)
	require.Error(t, err)
	assert.True(t, orchestrator.IsPreconditionError(err))
	assert.Contains(t, errBuf.String(), "ERROR:")
	assert.Zero(t, gen.Calls, "generator must not run without a backup")

	assert.True(t, Reported(err))
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestGenerateCommandOperationFailure(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte("DOMAIN=example.com\n"), 0o644))

	cmd, _, errBuf := newTestShell(t)
	opts := &GenerateOptions{
		RootOptions: &RootOptions{Format: "text"},
		Generator:   &testutil.StubGenerator{Raw: result.Fail("quota exceeded")},
	}

	err := runGenerate(opts, cmd)
	require.Error(t, err)
	assert.Contains(t, errBuf.String(), "ERROR: quota exceeded")
}
