// Package result defines the uniform success/failure envelope returned by
// every external account operation (generation, ID reset, cookie processing).
//
// Some legacy integrations return a bare (email, password) tuple instead of
// an envelope. Normalize accepts both shapes and produces a single Result,
// so the orchestrator never inspects raw operation output directly.
package result

import "fmt"

// Result is the uniform outcome wrapper for external operations.
//
// INVARIANTS:
//   - Message is non-empty whenever OK is false.
//   - Payload is present only when OK is true and the operation defines one
//     (account generation yields [email, password]; reset and cookie
//     processing yield no payload).
type Result struct {
	OK      bool
	Payload []string
	Message string
}

// Ok constructs a successful Result with an optional payload.
func Ok(message string, payload ...string) Result {
	return Result{OK: true, Payload: payload, Message: message}
}

// Fail constructs a failed Result. An empty message is replaced with a
// generic one to preserve the non-empty-message invariant.
func Fail(message string) Result {
	if message == "" {
		message = "operation failed"
	}
	return Result{OK: false, Message: message}
}

// Credentials extracts the (email, password) payload from an account
// generation result. Returns an error if the result is not a success or the
// payload does not carry exactly two values.
func (r Result) Credentials() (email, password string, err error) {
	if !r.OK {
		return "", "", fmt.Errorf("result is not a success: %s", r.Message)
	}
	if len(r.Payload) != 2 {
		return "", "", fmt.Errorf("expected 2 payload values (email, password), got %d", len(r.Payload))
	}
	return r.Payload[0], r.Payload[1], nil
}

// Normalize converts an operation's raw return value into a Result.
//
// Accepted shapes:
//   - Result / *Result: returned as-is (nil pointer is an error)
//   - [2]string or []string of length 2: legacy (email, password) tuple,
//     normalized into a successful Result with the tuple as payload
//
// Any other shape is an error: the orchestrator must never guess at the
// meaning of an unknown result type.
func Normalize(v any) (Result, error) {
	switch r := v.(type) {
	case Result:
		return ensureMessage(r), nil
	case *Result:
		if r == nil {
			return Result{}, fmt.Errorf("nil result")
		}
		return ensureMessage(*r), nil
	case [2]string:
		return Ok("account generated", r[0], r[1]), nil
	case []string:
		if len(r) != 2 {
			return Result{}, fmt.Errorf("legacy tuple must have 2 elements, got %d", len(r))
		}
		return Ok("account generated", r[0], r[1]), nil
	default:
		return Result{}, fmt.Errorf("unsupported result shape %T", v)
	}
}

// ensureMessage repairs a failed Result that arrived without a message.
func ensureMessage(r Result) Result {
	if !r.OK && r.Message == "" {
		r.Message = "operation failed"
	}
	return r
}
