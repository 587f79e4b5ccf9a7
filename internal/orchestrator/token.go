package orchestrator

import "github.com/google/uuid"

// TokenGenerator generates correlation tokens stamped on each workflow
// invocation. Every log line of a workflow carries its token, so a single
// invocation can be traced end to end.
//
// Implemented by UUIDv7Generator (production) and testutil.StaticTokenGenerator.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 workflow tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, making tokens
// sortable by creation time, which is helpful when reading logs.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
