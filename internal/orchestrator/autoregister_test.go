package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kto/cursorctl/internal/ops"
	"github.com/kto/cursorctl/internal/register"
)

func TestAutoRegister_TokenFillsCookieField(t *testing.T) {
	f := newFixture(t)
	f.registrar.Token = "tok-123"

	require.NoError(t, f.orch.AutoRegister(context.Background()))

	assert.Equal(t, "WorkosCursorSessionToken=tok-123", f.fields["cookie"])
	require.Len(t, f.notifier.Successes, 1)
	assert.Equal(t, 1, f.registrar.CloseCalls)

	// Both checkpoints were presented, in order.
	assert.Equal(t,
		[]string{register.ConfirmFormMessage, register.ConfirmVerifyMessage},
		f.confirmer.Messages)
}

func TestAutoRegister_EmptyTokenWarnsAndStillTearsDown(t *testing.T) {
	f := newFixture(t)
	f.registrar.Token = ""

	// Absence of a token is a reported outcome, not an abort.
	require.NoError(t, f.orch.AutoRegister(context.Background()))

	require.Len(t, f.notifier.Warnings, 1)
	assert.Empty(t, f.notifier.Errors)
	assert.Equal(t, 1, f.registrar.CloseCalls, "browser teardown must run exactly once")
	assert.NotContains(t, f.fields, "cookie")
}

func TestAutoRegister_StepFailureAbortsButTearsDown(t *testing.T) {
	f := newFixture(t)
	f.registrar.FormErr = assert.AnError

	err := f.orch.AutoRegister(context.Background())
	require.Error(t, err)

	var we *WorkflowError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, ErrCodeOperation, we.Code)
	assert.Equal(t, 1, f.registrar.CloseCalls)
	// The failed step stops the sequence before any confirmation.
	assert.Empty(t, f.confirmer.Messages)
}

func TestAutoRegister_PersistsVisibleFieldsFirst(t *testing.T) {
	f := newFixture(t)
	f.fields["DOMAIN"] = "example.com"
	f.registrar.Token = "tok"

	require.NoError(t, f.orch.AutoRegister(context.Background()))

	env, err := f.store.Load()
	require.NoError(t, err)
	assert.Equal(t, "example.com", env["DOMAIN"])
}

func TestAutoRegister_FactoryFailure(t *testing.T) {
	f := newFixture(t)
	calls := 0
	f.orch.registrar = func(ctx context.Context) (ops.Registrar, error) {
		calls++
		return nil, assert.AnError
	}

	err := f.orch.AutoRegister(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, f.registrar.CloseCalls, "no handle was created, nothing to tear down")
}

func TestAutoRegister_NoDriverConfigured(t *testing.T) {
	f := newFixture(t)
	f.orch.registrar = nil

	err := f.orch.AutoRegister(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no browser driver")
}

func TestAutoRegister_CancelledConfirmationStillTearsDown(t *testing.T) {
	f := newFixture(t)
	f.confirmer.Err = context.Canceled

	err := f.orch.AutoRegister(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, f.registrar.CloseCalls)
}
