package supervisor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/kbukum/alexops/internal/logger"
	"github.com/kbukum/alexops/internal/process"
	"github.com/kbukum/alexops/internal/resilience"
)

const (
	// DefaultGracePeriod is how long Shutdown waits between SIGTERM and
	// SIGKILL for each child.
	DefaultGracePeriod = 5 * time.Second

	// DefaultHealthTimeout bounds a readiness poll for one service.
	DefaultHealthTimeout = 30 * time.Second

	healthPollInterval = time.Second
)

// Service describes one child of the dev stack.
type Service struct {
	Name      string
	Binary    string
	Args      []string
	Dir       string
	Env       []string
	Stdout    io.Writer
	Stderr    io.Writer
	HealthURL string // optional readiness endpoint polled by AwaitHealthy
	URL       string // operator-facing address shown in the startup summary
}

// Exit reports a supervised child exiting on its own.
type Exit struct {
	Name string
	Code int
}

// Supervisor starts services and tracks them in an owned collection.
// Callers watch Exits for children dying on their own and call Shutdown
// to stop everything in reverse start order.
type Supervisor struct {
	log   *logger.Logger
	out   io.Writer
	grace time.Duration

	mu       sync.Mutex
	children []*child
	exits    chan Exit
}

type child struct {
	svc  Service
	proc *process.Proc
}

// New creates a supervisor. A zero grace period falls back to
// DefaultGracePeriod.
func New(log *logger.Logger, out io.Writer, grace time.Duration) *Supervisor {
	if out == nil {
		out = io.Discard
	}
	if grace <= 0 {
		grace = DefaultGracePeriod
	}
	return &Supervisor{
		log:   log.WithComponent("supervisor"),
		out:   out,
		grace: grace,
		// Buffered so exit notifiers never block once the caller has
		// stopped reading during shutdown.
		exits: make(chan Exit, 16),
	}
}

// Start launches a service and begins supervising it. The child runs in
// its own process group with the service's stdio wiring.
func (s *Supervisor) Start(svc Service) error {
	proc, err := process.Start(process.Command{
		Binary: svc.Binary,
		Args:   svc.Args,
		Dir:    svc.Dir,
		Env:    svc.Env,
		Stdout: svc.Stdout,
		Stderr: svc.Stderr,
	})
	if err != nil {
		return fmt.Errorf("supervisor: start %s: %w", svc.Name, err)
	}

	c := &child{svc: svc, proc: proc}
	s.mu.Lock()
	s.children = append(s.children, c)
	s.mu.Unlock()

	go func() {
		<-proc.Done()
		s.exits <- Exit{Name: svc.Name, Code: proc.ExitCode()}
	}()

	s.log.Info("Service started", map[string]interface{}{
		"service": svc.Name,
		"pid":     proc.PID(),
	})
	return nil
}

// AwaitHealthy polls the service's health URL once per second until it
// answers or the timeout lapses. Any HTTP response counts as up; the
// poll only establishes that the service is listening. Services without
// a health URL are considered ready immediately.
func (s *Supervisor) AwaitHealthy(ctx context.Context, svc Service, timeout time.Duration) error {
	if svc.HealthURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultHealthTimeout
	}

	client := &http.Client{Timeout: 2 * time.Second}
	err := resilience.WaitUntil(ctx, timeout, healthPollInterval, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, svc.HealthURL, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		resp.Body.Close()
		return nil
	})
	if err != nil {
		return fmt.Errorf("supervisor: %s not ready at %s: %w", svc.Name, svc.HealthURL, err)
	}

	s.log.Info("Service ready", map[string]interface{}{
		"service": svc.Name,
		"url":     svc.HealthURL,
	})
	return nil
}

// Exits delivers a notification each time a supervised child exits on
// its own, including children stopped by Shutdown.
func (s *Supervisor) Exits() <-chan Exit { return s.exits }

// Running reports how many supervised children are still alive.
func (s *Supervisor) Running() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	alive := 0
	for _, c := range s.children {
		select {
		case <-c.proc.Done():
		default:
			alive++
		}
	}
	return alive
}

// Shutdown terminates every tracked child in reverse start order, each
// with the configured grace period between SIGTERM and SIGKILL. Children
// that already exited are skipped. Calling Shutdown again is a no-op.
func (s *Supervisor) Shutdown() {
	s.mu.Lock()
	children := s.children
	s.children = nil
	s.mu.Unlock()

	if len(children) == 0 {
		return
	}
	fmt.Fprintln(s.out, "\nShutting down services...")

	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]

		select {
		case <-c.proc.Done():
			continue
		default:
		}

		s.log.Info("Stopping service", map[string]interface{}{
			"service": c.svc.Name,
			"pid":     c.proc.PID(),
		})
		if err := c.proc.Terminate(s.grace); err != nil {
			s.log.Warn("Failed to stop service", map[string]interface{}{
				"service": c.svc.Name,
				"error":   err.Error(),
			})
			fmt.Fprintf(s.out, "   error stopping %s: %v\n", c.svc.Name, err)
			continue
		}
		fmt.Fprintf(s.out, "   stopped %s\n", c.svc.Name)
	}
}
