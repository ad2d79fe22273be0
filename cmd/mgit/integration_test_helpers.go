//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"mgit/internal/config"
	"mgit/internal/log"
	"mgit/internal/output"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// testContext builds a command context with a quiet logger and a
// buffer-backed printer. The returned buffer collects stdout output.
func testContext(t *testing.T, workDir string) (context.Context, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	c := config.Default()

	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(os.Stderr, false, true))
	ctx = output.WithPrinter(ctx, &buf)
	ctx = config.WithConfig(ctx, &c)
	ctx = config.WithWorkDir(ctx, workDir)
	return ctx, &buf
}

// gitIn runs a git command in dir, failing the test on error.
func gitIn(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to run git %v: %v\n%s", args, err, out)
	}
}

// gitOut runs a git command in dir and returns its trimmed output.
func gitOut(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run git %v: %v\n%s", args, err, out)
	}
	return string(bytes.TrimSpace(out))
}

// setupTestRepo creates a git repo with an initial commit in dir/name.
// Returns the absolute path to the created repo (with symlinks resolved).
func setupTestRepo(t *testing.T, dir, name string) string {
	t.Helper()

	dir = resolvePath(t, dir)

	repoPath := filepath.Join(dir, name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	gitIn(t, repoPath, "init")
	gitIn(t, repoPath, "config", "user.email", "test@test.com")
	gitIn(t, repoPath, "config", "user.name", "Test User")
	gitIn(t, repoPath, "config", "commit.gpgsign", "false")

	readmePath := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readmePath, []byte("# "+name+"\n"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}

	gitIn(t, repoPath, "add", "README.md")
	gitIn(t, repoPath, "commit", "-m", "Initial commit")

	return repoPath
}

// writeFile writes content to repo/name, failing the test on error.
func writeFile(t *testing.T, repo, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(repo, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}
