//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// TestMain builds cmd/typeahead once into a scratch directory and runs the
// PTY tests against it. The help pager is pinned to the built-in ov viewer
// so a developer's TYPEAHEAD_PAGER cannot change what the tests see.
func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	binDir, err := os.MkdirTemp("", "typeahead-e2e-")
	if err != nil {
		fmt.Printf("Failed to create build directory: %v\n", err)
		return 1
	}
	defer os.RemoveAll(binDir)
	binPath = filepath.Join(binDir, "typeahead")

	if err := os.Unsetenv("TYPEAHEAD_PAGER"); err != nil {
		fmt.Printf("Failed to reset pager: %v\n", err)
		return 1
	}

	fmt.Println("Building typeahead picker...")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/typeahead")
	cmd.Dir = ".." // module root
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	if out, err := cmd.CombinedOutput(); err != nil {
		fmt.Printf("Failed to build typeahead: %v\n%s", err, out)
		return 1
	}

	return m.Run()
}
