// Package testutil provides deterministic stand-ins for the external
// operations and presentation collaborators, so workflow tests can script
// outcomes and record side effects.
package testutil

import (
	"context"
	"sync"

	"github.com/kto/cursorctl/internal/result"
)

// StubGenerator returns a scripted raw value (envelope or legacy tuple) from
// GenerateAccount and counts invocations.
type StubGenerator struct {
	Raw   any
	Err   error
	Calls int
}

func (g *StubGenerator) GenerateAccount(ctx context.Context) (any, error) {
	g.Calls++
	return g.Raw, g.Err
}

// StubResetter returns a scripted envelope from ResetID.
type StubResetter struct {
	Res   result.Result
	Err   error
	Calls int
}

func (r *StubResetter) ResetID(ctx context.Context) (result.Result, error) {
	r.Calls++
	return r.Res, r.Err
}

// StubCookieProcessor returns a scripted envelope from ProcessCookie and
// records the last cookie it was handed.
type StubCookieProcessor struct {
	Res        result.Result
	Err        error
	Calls      int
	LastCookie string
}

func (p *StubCookieProcessor) ProcessCookie(ctx context.Context, cookie string) (result.Result, error) {
	p.Calls++
	p.LastCookie = cookie
	return p.Res, p.Err
}

// ScriptedRegistrar is a browser-automation stub. Each step can be scripted
// to fail; Steps records the invocation order and CloseCalls counts
// teardowns.
type ScriptedRegistrar struct {
	Token       string
	InitErr     error
	FormErr     error
	PasswordErr error
	InfoErr     error
	TokenErr    error

	Steps      []string
	CloseCalls int
}

func (r *ScriptedRegistrar) step(name string) {
	r.Steps = append(r.Steps, name)
}

func (r *ScriptedRegistrar) InitBrowser(ctx context.Context) error {
	r.step("init")
	return r.InitErr
}

func (r *ScriptedRegistrar) FillRegistrationForm(ctx context.Context) error {
	r.step("form")
	return r.FormErr
}

func (r *ScriptedRegistrar) FillPassword(ctx context.Context) error {
	r.step("password")
	return r.PasswordErr
}

func (r *ScriptedRegistrar) GetUserInfo(ctx context.Context) error {
	r.step("info")
	return r.InfoErr
}

func (r *ScriptedRegistrar) GetToken(ctx context.Context) (string, error) {
	r.step("token")
	return r.Token, r.TokenErr
}

func (r *ScriptedRegistrar) Close() error {
	r.CloseCalls++
	return nil
}

// RecordingNotifier accumulates notifications by severity.
type RecordingNotifier struct {
	mu        sync.Mutex
	Successes []string
	Warnings  []string
	Errors    []string
}

func (n *RecordingNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Successes = append(n.Successes, message)
}

func (n *RecordingNotifier) Warning(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Warnings = append(n.Warnings, message)
}

func (n *RecordingNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Errors = append(n.Errors, message)
}

// AutoConfirmer acknowledges every checkpoint immediately, recording the
// messages presented. Err, if set, is returned from every Confirm call.
type AutoConfirmer struct {
	Messages []string
	Err      error
}

func (c *AutoConfirmer) Confirm(ctx context.Context, message string) error {
	c.Messages = append(c.Messages, message)
	if c.Err != nil {
		return c.Err
	}
	return ctx.Err()
}

// MapFields is an in-memory Fields view.
type MapFields map[string]string

func (f MapFields) Get(name string) string {
	return f[name]
}

func (f MapFields) Set(name, value string) {
	f[name] = value
}
