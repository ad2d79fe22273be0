package git

import (
	"context"

	"mgit/internal/cmdexec"
)

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// runGit executes a git command with context support and verbose logging.
func runGit(ctx context.Context, dir string, args ...string) error {
	return cmdexec.RunContext(ctx, "", "git", gitArgs(dir, args)...)
}

// outputGit executes a git command with context support and verbose
// logging, returning stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmdexec.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
}

// combinedGit executes a git command returning merged stdout+stderr
// and the exit code. Git writes most diagnostics, including fatal
// repository errors, to stderr; batch processing needs both streams
// in one capture.
func combinedGit(ctx context.Context, dir string, args ...string) ([]byte, int, error) {
	return cmdexec.CombinedContext(ctx, "", "git", gitArgs(dir, args)...)
}

// RunGit executes a git command in dir. Exported for commands that
// need a one-off invocation outside the batch applier.
func RunGit(ctx context.Context, dir string, args ...string) error {
	return runGit(ctx, dir, args...)
}

// OutputGit executes a git command in dir and returns stdout.
func OutputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return outputGit(ctx, dir, args...)
}
