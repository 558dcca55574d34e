package process

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ResolveBinary resolves a tool name to an executable path. Names with a
// path separator are used as-is. Bare names first look for a sibling of
// the current executable, so a deployed bin/ directory of alexops tools
// finds its peers without PATH setup, then fall back to PATH lookup.
func ResolveBinary(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("process: binary name is required")
	}

	if strings.ContainsRune(name, os.PathSeparator) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("process: resolve %s: %w", name, err)
		}
		return name, nil
	}

	if exe, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(exe), name)
		if info, err := os.Stat(sibling); err == nil && !info.IsDir() && info.Mode()&0o111 != 0 {
			return sibling, nil
		}
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("process: resolve %s: %w", name, err)
	}
	return path, nil
}
