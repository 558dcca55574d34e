package supervisor_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/alexops/internal/logger"
	"github.com/kbukum/alexops/internal/supervisor"
)

func testLogger() *logger.Logger {
	return logger.New(&logger.Config{Level: "error", Format: "console"}, "supervisor-test")
}

func waitExit(t *testing.T, s *supervisor.Supervisor) supervisor.Exit {
	t.Helper()
	select {
	case exit := <-s.Exits():
		return exit
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for child exit")
		return supervisor.Exit{}
	}
}

func TestStartDeliversExit(t *testing.T) {
	s := supervisor.New(testLogger(), nil, time.Second)

	err := s.Start(supervisor.Service{
		Name:   "backend",
		Binary: "sh",
		Args:   []string{"-c", "exit 7"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exit := waitExit(t, s)
	if exit.Name != "backend" {
		t.Errorf("expected exit from backend, got %q", exit.Name)
	}
	if exit.Code != 7 {
		t.Errorf("expected exit code 7, got %d", exit.Code)
	}
}

func TestStartWiresChildStdio(t *testing.T) {
	var stdout bytes.Buffer
	s := supervisor.New(testLogger(), nil, time.Second)

	err := s.Start(supervisor.Service{
		Name:   "backend",
		Binary: "sh",
		Args:   []string{"-c", "echo ready"},
		Stdout: &stdout,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	waitExit(t, s)
	if !strings.Contains(stdout.String(), "ready") {
		t.Errorf("expected child stdout to be captured, got %q", stdout.String())
	}
}

func TestStartMissingBinary(t *testing.T) {
	s := supervisor.New(testLogger(), nil, time.Second)

	err := s.Start(supervisor.Service{
		Name:   "backend",
		Binary: "/nonexistent/binary-12345",
	})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if s.Running() != 0 {
		t.Errorf("expected no running children, got %d", s.Running())
	}
}

func TestRunningCountsLiveChildren(t *testing.T) {
	s := supervisor.New(testLogger(), nil, time.Second)
	defer s.Shutdown()

	for _, name := range []string{"backend", "frontend"} {
		err := s.Start(supervisor.Service{
			Name:   name,
			Binary: "sleep",
			Args:   []string{"30"},
		})
		if err != nil {
			t.Fatalf("failed to start %s: %v", name, err)
		}
	}

	if s.Running() != 2 {
		t.Fatalf("expected 2 running children, got %d", s.Running())
	}

	s.Shutdown()
	if s.Running() != 0 {
		t.Errorf("expected 0 running children after shutdown, got %d", s.Running())
	}
}

func TestShutdownStopsInReverseOrder(t *testing.T) {
	var out bytes.Buffer
	s := supervisor.New(testLogger(), &out, time.Second)

	for _, name := range []string{"backend", "frontend"} {
		err := s.Start(supervisor.Service{
			Name:   name,
			Binary: "sleep",
			Args:   []string{"30"},
		})
		if err != nil {
			t.Fatalf("failed to start %s: %v", name, err)
		}
	}

	s.Shutdown()

	text := out.String()
	frontend := strings.Index(text, "stopped frontend")
	backend := strings.Index(text, "stopped backend")
	if frontend < 0 || backend < 0 {
		t.Fatalf("expected both stop lines, got %q", text)
	}
	if frontend > backend {
		t.Errorf("expected frontend stopped before backend, got %q", text)
	}
}

func TestShutdownNotifiesExit(t *testing.T) {
	s := supervisor.New(testLogger(), nil, time.Second)

	err := s.Start(supervisor.Service{
		Name:   "backend",
		Binary: "sleep",
		Args:   []string{"30"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Shutdown()

	exit := waitExit(t, s)
	if exit.Name != "backend" {
		t.Errorf("expected exit from backend, got %q", exit.Name)
	}
	if exit.Code != -1 {
		t.Errorf("expected -1 for a signaled child, got %d", exit.Code)
	}
}

func TestShutdownSkipsExitedChildren(t *testing.T) {
	var out bytes.Buffer
	s := supervisor.New(testLogger(), &out, time.Second)

	if err := s.Start(supervisor.Service{Name: "backend", Binary: "true"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitExit(t, s)

	s.Shutdown()
	if strings.Contains(out.String(), "stopped backend") {
		t.Errorf("expected no stop line for an exited child, got %q", out.String())
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	var out bytes.Buffer
	s := supervisor.New(testLogger(), &out, time.Second)

	err := s.Start(supervisor.Service{
		Name:   "backend",
		Binary: "sleep",
		Args:   []string{"30"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Shutdown()
	first := out.String()
	s.Shutdown()

	if out.String() != first {
		t.Errorf("second shutdown produced output: %q", out.String())
	}
}

func TestAwaitHealthyWithoutURL(t *testing.T) {
	s := supervisor.New(testLogger(), nil, time.Second)

	err := s.AwaitHealthy(context.Background(), supervisor.Service{Name: "backend"}, time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAwaitHealthySucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := supervisor.New(testLogger(), nil, time.Second)
	svc := supervisor.Service{Name: "backend", HealthURL: srv.URL}

	if err := s.AwaitHealthy(context.Background(), svc, 5*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAwaitHealthyAnyResponseCounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := supervisor.New(testLogger(), nil, time.Second)
	svc := supervisor.Service{Name: "frontend", HealthURL: srv.URL}

	if err := s.AwaitHealthy(context.Background(), svc, 5*time.Second); err != nil {
		t.Fatalf("expected any response to count as ready, got %v", err)
	}
}

func TestAwaitHealthyTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	s := supervisor.New(testLogger(), nil, time.Second)
	svc := supervisor.Service{Name: "backend", HealthURL: url}

	err := s.AwaitHealthy(context.Background(), svc, 150*time.Millisecond)
	if err == nil {
		t.Fatal("expected error for unreachable service")
	}
	if !strings.Contains(err.Error(), "backend not ready") {
		t.Errorf("expected service name in error, got %v", err)
	}
}
