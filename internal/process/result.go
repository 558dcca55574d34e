package process

import "time"

// Result holds the output and status of a completed subprocess.
type Result struct {
	// Stdout is the captured standard output. Empty when Command.Stdout
	// redirected the stream.
	Stdout []byte
	// Stderr is the captured standard error. Empty when Command.Stderr
	// redirected the stream.
	Stderr []byte
	// ExitCode is the process exit code. -1 if the process was killed
	// or never started.
	ExitCode int
	// Duration is how long the process ran.
	Duration time.Duration
}
