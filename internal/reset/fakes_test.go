package reset

import (
	"context"
	"strings"

	"github.com/kbukum/alexops/internal/process"
)

// fakeExecer records every statement and can fail statements matching a
// substring.
type fakeExecer struct {
	statements []string
	failOn     map[string]error
}

func (f *fakeExecer) Exec(_ context.Context, sql string, _ ...interface{}) error {
	f.statements = append(f.statements, sql)
	for pattern, err := range f.failOn {
		if strings.Contains(sql, pattern) {
			return err
		}
	}
	return nil
}

// fakeCounter returns canned counts per table and records query order.
type fakeCounter struct {
	counts map[string]int64
	errOn  map[string]error
	asked  []string
}

func (f *fakeCounter) CountTable(_ context.Context, table string) (int64, error) {
	f.asked = append(f.asked, table)
	if err, ok := f.errOn[table]; ok {
		return 0, err
	}
	return f.counts[table], nil
}

type invokeOutcome struct {
	res *process.Result
	err error
}

// fakeInvoker returns canned outcomes per binary and records call order.
type fakeInvoker struct {
	calls    []string
	outcomes map[string]invokeOutcome
}

func (f *fakeInvoker) invoke(_ context.Context, cmd process.Command) (*process.Result, error) {
	f.calls = append(f.calls, cmd.Binary)
	if out, ok := f.outcomes[cmd.Binary]; ok {
		return out.res, out.err
	}
	return &process.Result{ExitCode: 0}, nil
}

// fakeFixture counts Provision calls and can fail.
type fakeFixture struct {
	calls int
	err   error
}

func (f *fakeFixture) Provision(context.Context) error {
	f.calls++
	return f.err
}
