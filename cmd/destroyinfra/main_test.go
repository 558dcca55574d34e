package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunVersionFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"--version"}, strings.NewReader(""), &out, &errOut)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, errOut.String())
	}
	if !strings.Contains(out.String(), "destroy-infra") {
		t.Errorf("expected tool name in version output, got %q", out.String())
	}
}

func TestRunUnknownFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"--definitely-not-a-flag"}, strings.NewReader(""), &out, &errOut)
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
}

func TestRunDeclinedConfirmationExitsClean(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run(nil, strings.NewReader("no\n"), &out, &errOut)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, errOut.String())
	}
	if !strings.Contains(out.String(), "Destruction cancelled") {
		t.Errorf("expected cancellation message, got %q", out.String())
	}
}

func TestRunEmptyStdinExitsClean(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run(nil, strings.NewReader(""), &out, &errOut)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, errOut.String())
	}
	if !strings.Contains(out.String(), "Destruction cancelled") {
		t.Errorf("expected cancellation message, got %q", out.String())
	}
}
