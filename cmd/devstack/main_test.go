package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestRunVersionFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"--version"}, &out, &errOut); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, errOut.String())
	}
	if !strings.Contains(out.String(), "devstack") {
		t.Errorf("expected tool name in version output, got %q", out.String())
	}
}

func TestRunUnknownFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"--definitely-not-a-flag"}, &out, &errOut); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
}

func TestRunMissingPrerequisite(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yml")
	writeFile(t, cfgPath, `
prerequisites: ["definitely-not-a-real-binary-12345"]
env_files: [".env"]
services:
  - name: demo
    binary: sh
    args: ["-c", "exit 0"]
`)

	var out, errOut bytes.Buffer
	code := run([]string{"--config", cfgPath, "--root", dir}, &out, &errOut)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(errOut.String(), "missing prerequisites") {
		t.Errorf("expected prerequisite error, got %q", errOut.String())
	}
}

func TestRunMissingEnvFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yml")
	writeFile(t, cfgPath, `
prerequisites: ["sh"]
env_files: [".env"]
services:
  - name: demo
    binary: sh
    args: ["-c", "exit 0"]
`)

	var out, errOut bytes.Buffer
	code := run([]string{"--config", cfgPath, "--root", dir}, &out, &errOut)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(errOut.String(), "missing environment files") {
		t.Errorf("expected env file error, got %q", errOut.String())
	}
}

func TestRunReportsChildExit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "DATABASE_URL=postgres://localhost/dev\n")
	cfgPath := filepath.Join(dir, "config.yml")
	writeFile(t, cfgPath, `
prerequisites: ["sh"]
env_files: [".env"]
services:
  - name: demo
    binary: sh
    args: ["-c", "exit 5"]
`)

	var out, errOut bytes.Buffer
	code := run([]string{"--config", cfgPath, "--root", dir}, &out, &errOut)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d (stderr: %s)", code, errOut.String())
	}
	if !strings.Contains(out.String(), "Starting demo...") {
		t.Errorf("expected start line, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Dev stack is running") {
		t.Errorf("expected summary, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "demo exited unexpectedly with code 5") {
		t.Errorf("expected exit report, got %q", errOut.String())
	}
}
