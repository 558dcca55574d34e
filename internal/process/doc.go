// Package process executes external commands with consistent lifecycle
// handling: process-group isolation, SIGTERM with a grace period before
// SIGKILL, captured or redirected output, and exit-code reporting.
//
// Run blocks until the child exits and captures its output; this is how
// the reset orchestrator invokes the migration runner and the reference
// data loader. RunAttached streams the child's output to the parent's
// terminal, used for long-running commands like terraform. Start returns
// a Proc handle for children whose lifetime outlives the call, used by
// the dev stack supervisor.
package process
