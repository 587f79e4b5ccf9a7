// Package register implements the auto-registration state sequencer.
//
// The sequencer drives a browser-automation handle through the registration
// steps as a strictly linear state machine:
//
//	Init -> FormFilled -> [wait: user confirms form]
//	     -> PasswordFilled -> [wait: user confirms verification]
//	     -> InfoRetrieved -> TokenRetrieved -> Done
//
// The two waits are deliberate blocking points: the workflow suspends until
// the user issues a single "continue" acknowledgment, with no timeout. The
// only way out of a wait besides acknowledging is cancelling the context
// (application shutdown), in which case the orchestrator still tears the
// browser down.
//
// An empty token at the end is NOT a failure: the sequencer terminates
// normally and the caller reports the absence as a warning.
package register
