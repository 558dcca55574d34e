// Package version provides build version information for the alexops
// command-line tools.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/alexops/internal/version.Version=1.0.0"
//
// When ldflags are absent, the VCS stamp embedded by the Go toolchain
// fills in what it can.
package version
