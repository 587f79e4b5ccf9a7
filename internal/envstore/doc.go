// Package envstore provides the persisted key-value store backing the
// account lifecycle workflows.
//
// The store is a flat KEY=value file (a standard dotenv file). Updates are
// merges: keys absent from an update are preserved, never clobbered. Writes
// are atomic - the new content is written to a temp file in the same
// directory and renamed over the backing file, so no reader ever observes a
// half-written store.
//
// CONCURRENCY: the backing file is a single-writer resource. Workflows are
// never entered concurrently (one CLI invocation at a time), so no
// file-level locking is implemented. This is a documented assumption, not a
// guarantee enforced here.
package envstore
