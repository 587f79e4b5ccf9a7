// Package orchestrator implements the account-lifecycle workflows.
//
// The Orchestrator is the operation facade between the presentation layer
// and everything that mutates persisted state. It exposes four workflows -
// GenerateAccount, ResetID, UpdateAuth, AutoRegister - each composing the
// backup manager, the env store, and one external black-box operation.
//
// # Failure contract
//
// Every workflow runs inside a uniform boundary: each step either succeeds
// and proceeds, or produces an error that aborts the remainder of the
// workflow and surfaces as exactly one user-visible notification. Validation
// failures are warnings (no state touched); everything else is an error. No
// workflow performs compensating rollback - backups exist precisely so a
// human can roll back manually.
//
// # Concurrency
//
// Workflows are single-flight by construction: one invocation at a time,
// driven synchronously by the presentation layer. The store and backup
// directory are single-writer resources with no file locking.
package orchestrator
