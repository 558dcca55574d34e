package reset

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	apperrors "github.com/kbukum/alexops/internal/errors"
	"github.com/kbukum/alexops/internal/fixture"
	"github.com/kbukum/alexops/internal/logger"
	"github.com/kbukum/alexops/internal/process"
)

// DefaultMigrateBinary and DefaultSeedBinary name the collaborator
// binaries a reset run invokes. They are resolved next to the reset-db
// executable first, then on PATH.
const (
	DefaultMigrateBinary = "migrate"
	DefaultSeedBinary    = "seed-instruments"
)

var sentinelPattern = regexp.MustCompile(`(\d+)/(\d+) instruments loaded`)

// Options control a reset run.
type Options struct {
	// WithTestData provisions the fixture identity after seeding.
	WithTestData bool
	// SkipDrop skips teardown and migrations, resuming at the loader.
	SkipDrop bool
	// MigrateBinary is the resolved migration runner binary.
	MigrateBinary string
	// SeedBinary is the resolved reference data loader binary.
	SeedBinary string
}

// Invoker runs a blocking child process to completion and returns its
// captured output. process.Run in production, a fake in tests.
type Invoker func(ctx context.Context, cmd process.Command) (*process.Result, error)

// FixtureProvisioner seeds the deterministic test dataset.
type FixtureProvisioner interface {
	Provision(ctx context.Context) error
}

// Deps are the runner's collaborators.
type Deps struct {
	Execer  Execer
	Counter Counter
	Invoke  Invoker
	Fixture FixtureProvisioner
	Log     *logger.Logger
	Out     io.Writer
	ErrOut  io.Writer
}

// Runner drives one reset run through its state machine. It is single
// use: create a Runner per run.
type Runner struct {
	opts Options
	deps Deps

	// State is the phase the run has reached, observable after Run
	// returns. Failed means the run aborted and the environment may be
	// half reset.
	State State
}

// NewRunner creates a reset runner. Nil writers are discarded.
func NewRunner(opts Options, deps Deps) *Runner {
	if opts.MigrateBinary == "" {
		opts.MigrateBinary = DefaultMigrateBinary
	}
	if opts.SeedBinary == "" {
		opts.SeedBinary = DefaultSeedBinary
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	if deps.ErrOut == nil {
		deps.ErrOut = io.Discard
	}
	return &Runner{opts: opts, deps: deps, State: StateNotStarted}
}

// Run executes the reset sequence: teardown, migrations, reference
// data, optional fixture, verification. Steps run strictly in order;
// a failed child process aborts the run with its stderr echoed to the
// operator. There is no retry and no rollback.
func (r *Runner) Run(ctx context.Context) error {
	out := r.deps.Out
	r.deps.Log.Info("Reset run started", map[string]interface{}{
		"skip_drop":      r.opts.SkipDrop,
		"with_test_data": r.opts.WithTestData,
	})

	fmt.Fprintln(out, "Database Reset")
	fmt.Fprintln(out, strings.Repeat("=", 50))

	if r.opts.SkipDrop {
		fmt.Fprintln(out, "Skipping teardown and migrations (--skip-drop)")
	} else {
		NewTeardown(r.deps.Execer, r.deps.Log, out).Drop(ctx)
		r.State = StateDropped

		fmt.Fprintln(out, "\nRunning migrations...")
		if _, err := r.invokeChild(ctx, r.opts.MigrateBinary); err != nil {
			r.State = StateFailed
			return err
		}
		fmt.Fprintln(out, "   migrations completed")
		r.State = StateMigrated
	}

	fmt.Fprintln(out, "\nLoading reference data...")
	res, err := r.invokeChild(ctx, r.opts.SeedBinary)
	if err != nil {
		r.State = StateFailed
		return err
	}
	if n, total, ok := scanSentinel(res.Stdout); ok {
		fmt.Fprintf(out, "   loaded %s/%s instruments\n", n, total)
	} else {
		fmt.Fprintln(out, "   reference data loaded")
	}
	r.State = StateSeeded

	if r.opts.WithTestData {
		fmt.Fprintln(out, "\nCreating test user and portfolio...")
		if err := r.deps.Fixture.Provision(ctx); err != nil {
			r.State = StateFailed
			return err
		}
		r.State = StateFixtureLoaded
	}

	fmt.Fprintln(out)
	NewVerifier(r.deps.Counter, r.deps.Log, out).Report(ctx)
	r.State = StateVerified

	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintln(out, "Database reset complete")
	if r.opts.WithTestData {
		fmt.Fprintf(out, "Test user: %s (3 accounts, 5 positions in the first)\n", fixture.ClerkUserID)
	}
	r.deps.Log.Info("Reset run finished", map[string]interface{}{"state": string(r.State)})
	return nil
}

// invokeChild runs a collaborator binary to completion. On a non-zero
// exit the child's captured stderr is echoed verbatim to the operator
// and the returned error carries the exit code and stderr.
func (r *Runner) invokeChild(ctx context.Context, binary string) (*process.Result, error) {
	name := filepath.Base(binary)
	r.deps.Log.Debug("Invoking child process", map[string]interface{}{"binary": binary})

	res, err := r.deps.Invoke(ctx, process.Command{Binary: binary})
	if err != nil {
		exitCode := -1
		stderr := ""
		if res != nil {
			exitCode = res.ExitCode
			stderr = string(res.Stderr)
		}
		if stderr != "" {
			fmt.Fprint(r.deps.ErrOut, stderr)
		}
		return nil, apperrors.ProcessFailed(name, exitCode, stderr).WithCause(err)
	}
	return res, nil
}

// scanSentinel performs the lenient scan of the loader's stdout for the
// "<n>/<total> instruments loaded" line. Absence is not an error, the
// summary just stays generic.
func scanSentinel(stdout []byte) (n, total string, ok bool) {
	m := sentinelPattern.FindSubmatch(stdout)
	if m == nil {
		return "", "", false
	}
	return string(m[1]), string(m[2]), true
}
