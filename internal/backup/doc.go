// Package backup copies the backing env file into a rotating backup
// directory before any destructive workflow write.
//
// Backup names embed a nanosecond-resolution UTC timestamp plus a
// monotonically increasing sequence number, so lexicographic order equals
// creation order. The sequence restarts with the process; a name collision
// with a backup left by an earlier process is resolved by bumping the
// sequence and retrying. Retention is enforced after every backup: once the
// directory holds more than the configured maximum, the oldest surplus
// entries are deleted - and never more than necessary to reach the cap.
//
// Backups are never mutated after creation and are only deleted by rotation.
// Single-writer assumption: concurrent Backup calls from multiple processes
// are not coordinated.
package backup
