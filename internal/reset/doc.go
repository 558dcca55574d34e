// Package reset drives a database environment reset: drop the schema,
// re-run migrations and the reference data loader as child processes,
// optionally provision the test fixture, then report row counts. The
// run is strictly sequential with no retry and no rollback; a failed
// run is resolved by running again from scratch or resuming past the
// destructive steps with the skip-drop option.
package reset
