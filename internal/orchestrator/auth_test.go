package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kto/cursorctl/internal/result"
)

func TestUpdateAuth_EmptyCookieShortCircuits(t *testing.T) {
	f := newFixture(t)
	f.seedEnv(t, map[string]string{"DOMAIN": "example.com"})

	err := f.orch.UpdateAuth(context.Background())
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	// Validation runs before any side effect.
	assert.Equal(t, 0, f.backupCount(t))
	assert.Equal(t, 0, f.cookies.Calls)
	require.Len(t, f.notifier.Warnings, 1)
}

func TestUpdateAuth_MalformedCookieShortCircuits(t *testing.T) {
	f := newFixture(t)
	f.seedEnv(t, map[string]string{"DOMAIN": "example.com"})
	f.fields["cookie"] = "SomeOtherCookie=abc123"

	err := f.orch.UpdateAuth(context.Background())
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "WorkosCursorSessionToken")

	assert.Equal(t, 0, f.backupCount(t))
	assert.Equal(t, 0, f.cookies.Calls)
}

func TestUpdateAuth_Success(t *testing.T) {
	f := newFixture(t)
	f.seedEnv(t, map[string]string{"DOMAIN": "example.com"})
	f.fields["cookie"] = "WorkosCursorSessionToken=abc123"
	f.fields["EMAIL"] = "visible@example.com"
	f.cookies.Res = result.Ok("auth cookie updated")

	require.NoError(t, f.orch.UpdateAuth(context.Background()))

	// The validated cookie string is handed to the processor.
	assert.Equal(t, "WorkosCursorSessionToken=abc123", f.cookies.LastCookie)
	// Cookie field is cleared, visible fields persisted.
	assert.Equal(t, "", f.fields["cookie"])
	env, err := f.store.Load()
	require.NoError(t, err)
	assert.Equal(t, "visible@example.com", env["EMAIL"])

	assert.Equal(t, 1, f.backupCount(t))
	assert.Equal(t, []string{"auth cookie updated"}, f.notifier.Successes)
}

func TestUpdateAuth_NormalizesDecomposedCookie(t *testing.T) {
	f := newFixture(t)
	f.seedEnv(t, map[string]string{"DOMAIN": "example.com"})
	// Pasted cookie with "é" in decomposed form (e + combining acute).
	f.fields["cookie"] = "WorkosCursorSessionToken=séance; theme=dark"
	f.cookies.Res = result.Ok("auth cookie updated")

	require.NoError(t, f.orch.UpdateAuth(context.Background()))

	// The processor sees the composed form, so the persisted token does not
	// depend on which unicode form the paste arrived in.
	assert.Equal(t, "WorkosCursorSessionToken=séance; theme=dark", f.cookies.LastCookie)
}

func TestUpdateAuth_ProcessorFailureAbortsWithMessage(t *testing.T) {
	f := newFixture(t)
	f.seedEnv(t, map[string]string{"DOMAIN": "example.com"})
	f.fields["cookie"] = "WorkosCursorSessionToken=abc123"
	f.cookies.Res = result.Fail("token rejected")

	err := f.orch.UpdateAuth(context.Background())
	require.Error(t, err)

	var we *WorkflowError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, ErrCodeOperation, we.Code)
	assert.Equal(t, "token rejected", we.Message)

	// The cookie field is left as-is on failure.
	assert.Equal(t, "WorkosCursorSessionToken=abc123", f.fields["cookie"])
	// Backup was taken before the operation ran.
	assert.Equal(t, 1, f.backupCount(t))
}

func TestUpdateAuth_MissingEnvFileIsPreconditionFailure(t *testing.T) {
	f := newFixture(t)
	f.fields["cookie"] = "WorkosCursorSessionToken=abc123"

	err := f.orch.UpdateAuth(context.Background())
	require.Error(t, err)
	assert.True(t, IsPreconditionError(err))
	assert.Equal(t, 0, f.cookies.Calls)
}
