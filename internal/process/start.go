package process

import (
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"
)

// Proc is a started subprocess running in its own process group.
// It is returned by Start for children whose lifetime outlives the call,
// such as the dev stack's backend and frontend processes.
type Proc struct {
	cmd     *exec.Cmd
	name    string
	done    chan struct{}
	waitErr error
}

// Start launches a subprocess without waiting for it. The child runs in
// its own process group so Terminate can signal the whole tree.
func Start(cmd Command) (*Proc, error) {
	if cmd.Binary == "" {
		return nil, fmt.Errorf("process: binary is required")
	}

	c := exec.Command(cmd.Binary, cmd.Args...) //nolint:gosec // dynamic args are the purpose of this package
	c.Dir = cmd.Dir
	c.Env = mergeEnv(cmd.Env)
	c.Stdin = cmd.Stdin
	c.Stdout = cmd.Stdout
	c.Stderr = cmd.Stderr
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := c.Start(); err != nil {
		return nil, fmt.Errorf("process: start %s: %w", cmd.Binary, err)
	}

	p := &Proc{cmd: c, name: cmd.Binary, done: make(chan struct{})}
	go func() {
		p.waitErr = c.Wait()
		close(p.done)
	}()
	return p, nil
}

// Name returns the binary the process was started with.
func (p *Proc) Name() string { return p.name }

// PID returns the process ID.
func (p *Proc) PID() int { return p.cmd.Process.Pid }

// Done returns a channel closed when the process exits.
func (p *Proc) Done() <-chan struct{} { return p.done }

// Wait blocks until the process exits and returns its wait error.
func (p *Proc) Wait() error {
	<-p.done
	return p.waitErr
}

// ExitCode returns the exit code after the process has exited, -1 otherwise.
func (p *Proc) ExitCode() int {
	select {
	case <-p.done:
		return p.cmd.ProcessState.ExitCode()
	default:
		return -1
	}
}

// Signal sends a signal to the process group.
func (p *Proc) Signal(sig syscall.Signal) error {
	return syscall.Kill(-p.cmd.Process.Pid, sig)
}

// Terminate sends SIGTERM to the process group, waits up to grace for it
// to exit, then escalates to SIGKILL. It returns once the process has
// exited. A process that already exited is not an error.
func (p *Proc) Terminate(grace time.Duration) error {
	select {
	case <-p.done:
		return nil
	default:
	}

	if err := p.Signal(syscall.SIGTERM); err != nil {
		if errors.Is(err, syscall.ESRCH) {
			<-p.done
			return nil
		}
		return fmt.Errorf("process: signal %s: %w", p.name, err)
	}

	select {
	case <-p.done:
		return nil
	case <-time.After(grace):
	}

	if err := p.Signal(syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		return fmt.Errorf("process: kill %s: %w", p.name, err)
	}
	<-p.done
	return nil
}
