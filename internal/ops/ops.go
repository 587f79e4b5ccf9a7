// Package ops declares the external operations and presentation-side
// collaborators consumed by the workflow orchestrator.
//
// The three account operations (generation, ID reset, cookie processing) are
// black boxes: the orchestrator sequences them, validates their envelopes,
// and persists their outcomes, but never looks inside. The Registrar is the
// browser-automation handle driven by the auto-register sequencer. Notifier
// and Confirmer are the only two ways control flows back to the presentation
// layer.
package ops

import (
	"context"

	"github.com/kto/cursorctl/internal/result"
)

// AccountGenerator produces fresh credentials for the editor service.
//
// The return value is deliberately untyped: current implementations return a
// result.Result envelope, legacy ones a bare (email, password) tuple. The
// orchestrator normalizes both via result.Normalize before inspecting
// anything. Generators read their inputs (notably DOMAIN) from the already
// persisted environment.
type AccountGenerator interface {
	GenerateAccount(ctx context.Context) (any, error)
}

// IDResetter resets the local machine/installation identifier.
type IDResetter interface {
	ResetID(ctx context.Context) (result.Result, error)
}

// CookieProcessor consumes a raw cookie string and refreshes the stored
// authentication token.
type CookieProcessor interface {
	ProcessCookie(ctx context.Context, cookie string) (result.Result, error)
}

// Registrar is the browser-automation handle used by auto-registration.
//
// Lifecycle: InitBrowser first, Close always once a handle exists - the
// orchestrator guarantees Close runs regardless of how the workflow ends.
// GetToken may return an empty string; that is a reported outcome, not an
// error.
type Registrar interface {
	InitBrowser(ctx context.Context) error
	FillRegistrationForm(ctx context.Context) error
	FillPassword(ctx context.Context) error
	GetUserInfo(ctx context.Context) error
	GetToken(ctx context.Context) (string, error)
	Close() error
}

// Notifier renders workflow outcomes to the user. Warnings mark recoverable
// input problems, errors mark operation-level failures, successes get a
// distinct confirmation.
type Notifier interface {
	Success(message string)
	Warning(message string)
	Error(message string)
}

// Confirmer is the blocking user-confirmation channel: present a message,
// wait for exactly one acknowledgment, resume. No timeout is applied; the
// context is cancelled only when the whole application shuts down.
type Confirmer interface {
	Confirm(ctx context.Context, message string) error
}

// Fields exposes the currently visible input fields (the recognized
// environment variables plus the cookie input) to the orchestrator, which
// both reads them for persistence and overwrites them with results.
type Fields interface {
	Get(name string) string
	Set(name, value string)
}
