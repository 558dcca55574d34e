// Package logger provides structured logging for the alexops CLIs
// using zerolog.
//
// Output defaults to stderr so that tool stdout stays reserved for
// machine-readable lines (the instrument loader's summary line is
// scanned by the reset orchestrator).
//
// # Usage
//
//	log := logger.NewFromEnv("reset-db").WithComponent("teardown")
//	log.Info("Dropped table", logger.Fields("table", "positions"))
package logger
