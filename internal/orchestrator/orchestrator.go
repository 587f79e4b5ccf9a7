package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kto/cursorctl/internal/backup"
	"github.com/kto/cursorctl/internal/config"
	"github.com/kto/cursorctl/internal/envstore"
	"github.com/kto/cursorctl/internal/ops"
)

// RegistrarFactory creates a fresh browser-automation handle for one
// auto-register session.
type RegistrarFactory func(ctx context.Context) (ops.Registrar, error)

// Config holds the collaborators for creating an Orchestrator.
type Config struct {
	// Store is the persisted key-value environment store.
	Store *envstore.Store

	// Backups manages the rotating backups taken before destructive writes.
	Backups *backup.Manager

	// Generator, Resetter and Cookies are the external black-box operations.
	Generator ops.AccountGenerator
	Resetter  ops.IDResetter
	Cookies   ops.CookieProcessor

	// NewRegistrar creates the browser handle for auto-registration.
	// Only required if AutoRegister is invoked.
	NewRegistrar RegistrarFactory

	// Fields is the presentation layer's view of the visible input fields.
	Fields ops.Fields

	// Notifier renders outcomes; Confirmer blocks at the two
	// auto-registration checkpoints.
	Notifier  ops.Notifier
	Confirmer ops.Confirmer

	// Vars lists the recognized environment variables, in declaration order.
	// Defaults to config.Default().Vars when empty.
	Vars []config.Var

	// Tokens generates workflow correlation tokens.
	// Defaults to UUIDv7Generator.
	Tokens TokenGenerator
}

// Orchestrator coordinates the four account-lifecycle workflows.
type Orchestrator struct {
	store     *envstore.Store
	backups   *backup.Manager
	generator ops.AccountGenerator
	resetter  ops.IDResetter
	cookies   ops.CookieProcessor
	registrar RegistrarFactory
	fields    ops.Fields
	notifier  ops.Notifier
	confirmer ops.Confirmer
	vars      []config.Var
	tokens    TokenGenerator
}

// New creates an Orchestrator with the given collaborators.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("env store is required")
	}
	if cfg.Backups == nil {
		return nil, fmt.Errorf("backup manager is required")
	}
	if cfg.Fields == nil {
		return nil, fmt.Errorf("fields view is required")
	}
	if cfg.Notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}

	vars := cfg.Vars
	if len(vars) == 0 {
		vars = config.Default().Vars
	}
	tokens := cfg.Tokens
	if tokens == nil {
		tokens = UUIDv7Generator{}
	}

	return &Orchestrator{
		store:     cfg.Store,
		backups:   cfg.Backups,
		generator: cfg.Generator,
		resetter:  cfg.Resetter,
		cookies:   cfg.Cookies,
		registrar: cfg.NewRegistrar,
		fields:    cfg.Fields,
		notifier:  cfg.Notifier,
		confirmer: cfg.Confirmer,
		vars:      vars,
		tokens:    tokens,
	}, nil
}

// guard is the uniform error boundary wrapping every workflow entry point.
//
// It stamps the invocation with a correlation token, converts panics into
// internal errors, classifies the outcome, and reports it through the
// notifier: validation failures as warnings, everything else as errors.
// The classified error is also returned so the caller can set an exit code.
// No failure is silently swallowed.
func (o *Orchestrator) guard(ctx context.Context, workflow string, fn func(ctx context.Context) error) error {
	token := o.tokens.Generate()
	slog.Info("workflow starting", "workflow", workflow, "token", token)

	err := o.recovering(ctx, workflow, fn)
	if err == nil {
		slog.Info("workflow finished", "workflow", workflow, "token", token)
		return nil
	}

	we := classify(workflow, err)
	if we.Code == ErrCodeValidation {
		slog.Warn("workflow rejected input",
			"workflow", workflow,
			"token", token,
			"reason", we.Message,
		)
		o.notifier.Warning(we.Message)
		return we
	}

	slog.Error("workflow failed",
		"workflow", workflow,
		"token", token,
		"code", string(we.Code),
		"error", we,
	)
	o.notifier.Error(we.Message)
	return we
}

// recovering runs fn, converting a panic into an error instead of letting it
// escape to the presentation layer.
func (o *Orchestrator) recovering(ctx context.Context, workflow string, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &WorkflowError{
				Code:     ErrCodeInternal,
				Message:  fmt.Sprintf("unexpected failure: %v", r),
				Workflow: workflow,
			}
		}
	}()
	return fn(ctx)
}

// classify wraps an arbitrary error into a WorkflowError, defaulting
// unclassified errors to the internal category.
func classify(workflow string, err error) *WorkflowError {
	var we *WorkflowError
	if errors.As(err, &we) {
		return we
	}
	return &WorkflowError{
		Code:     ErrCodeInternal,
		Message:  err.Error(),
		Workflow: workflow,
		Err:      err,
	}
}

// backupEnv copies the backing file into the backup directory before a
// destructive write. A missing backing file is a precondition failure: with
// no backup possible, the workflow must not proceed to mutate state.
func (o *Orchestrator) backupEnv(workflow string) error {
	err := o.backups.Backup(o.store.Path())
	if err == nil {
		slog.Debug("env file backed up", "workflow", workflow, "dir", o.backups.Dir())
		return nil
	}
	if errors.Is(err, backup.ErrSourceMissing) {
		return NewPreconditionError(workflow,
			fmt.Sprintf("env file not found: %s", o.store.Path()), err)
	}
	return NewIOError(workflow, "failed to back up env file", err)
}

// saveVisibleFields persists the non-empty recognized fields as currently
// displayed. This flush is intentionally generic - several workflows share
// it, including ones whose operation did not touch those fields.
//
// A write failure here is surfaced as a warning rather than an abort: the
// operation itself already succeeded, only the flush of display state failed.
func (o *Orchestrator) saveVisibleFields() {
	updates := make(map[string]string, len(o.vars))
	for _, v := range o.vars {
		if value := strings.TrimSpace(o.fields.Get(v.Name)); value != "" {
			updates[v.Name] = value
		}
	}
	if len(updates) == 0 {
		return
	}
	if err := o.store.Update(updates); err != nil {
		slog.Warn("failed to save environment variables", "error", err)
		o.notifier.Warning("failed to save environment variables")
	}
}

// reloadEnv re-reads the store so collaborators observe just-written values.
func (o *Orchestrator) reloadEnv(workflow string) error {
	if _, err := o.store.Reload(); err != nil {
		return NewIOError(workflow, "failed to reload environment", err)
	}
	return nil
}
