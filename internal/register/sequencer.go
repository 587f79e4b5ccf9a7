package register

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kto/cursorctl/internal/ops"
)

// State identifies the sequencer's position in the registration flow.
type State int

const (
	// StateInit means the sequencer has not started yet.
	StateInit State = iota
	// StateFormFilled means the registration form has been submitted.
	StateFormFilled
	// StatePasswordFilled means the password step has been completed.
	StatePasswordFilled
	// StateInfoRetrieved means account info has been read back.
	StateInfoRetrieved
	// StateTokenRetrieved means the session token fetch has run
	// (the token itself may still be empty).
	StateTokenRetrieved
	// StateDone means the sequencer terminated normally.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateFormFilled:
		return "form_filled"
	case StatePasswordFilled:
		return "password_filled"
	case StateInfoRetrieved:
		return "info_retrieved"
	case StateTokenRetrieved:
		return "token_retrieved"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Messages shown at the two confirmation checkpoints.
const (
	ConfirmFormMessage   = "Complete the check in the browser, then continue."
	ConfirmVerifyMessage = "Finish registration and the verification code in the browser, then continue."
)

// Sequencer drives one registration session. It is single-use: create a new
// Sequencer per Run.
type Sequencer struct {
	registrar ops.Registrar
	confirm   ops.Confirmer
	state     State
}

// NewSequencer creates a sequencer over a registrar handle and the blocking
// user-confirmation channel.
func NewSequencer(registrar ops.Registrar, confirm ops.Confirmer) *Sequencer {
	return &Sequencer{registrar: registrar, confirm: confirm, state: StateInit}
}

// State returns the sequencer's current state.
func (s *Sequencer) State() State {
	return s.state
}

// Run executes the registration flow and returns the retrieved token, which
// may be empty. Any step failure aborts the flow; the caller owns browser
// teardown regardless of outcome.
func (s *Sequencer) Run(ctx context.Context) (string, error) {
	if err := s.registrar.InitBrowser(ctx); err != nil {
		return "", fmt.Errorf("init browser: %w", err)
	}
	if err := s.registrar.FillRegistrationForm(ctx); err != nil {
		return "", fmt.Errorf("fill registration form: %w", err)
	}
	s.transition(StateFormFilled)

	if err := s.confirm.Confirm(ctx, ConfirmFormMessage); err != nil {
		return "", fmt.Errorf("await form confirmation: %w", err)
	}

	if err := s.registrar.FillPassword(ctx); err != nil {
		return "", fmt.Errorf("fill password: %w", err)
	}
	s.transition(StatePasswordFilled)

	if err := s.confirm.Confirm(ctx, ConfirmVerifyMessage); err != nil {
		return "", fmt.Errorf("await verification confirmation: %w", err)
	}

	if err := s.registrar.GetUserInfo(ctx); err != nil {
		return "", fmt.Errorf("get user info: %w", err)
	}
	s.transition(StateInfoRetrieved)

	token, err := s.registrar.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("get token: %w", err)
	}
	s.transition(StateTokenRetrieved)

	s.transition(StateDone)
	return token, nil
}

func (s *Sequencer) transition(next State) {
	slog.Debug("registration state transition", "from", s.state.String(), "to", next.String())
	s.state = next
}
