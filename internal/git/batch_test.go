package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestApply_OneResultPerRepo(t *testing.T) {
	t.Parallel()

	repos := []string{"/r/one", "/r/two", "/r/three"}
	runner := func(ctx context.Context, dir string, args ...string) ([]byte, int, error) {
		switch dir {
		case "/r/two":
			return []byte("fatal: unable to access remote\n"), 128, nil
		default:
			return []byte("Already up to date.\n"), 0, nil
		}
	}

	results, err := Apply(context.Background(), repos, CommandSpec{Subcommand: "pull"}, ApplyOptions{Runner: runner})
	if err != nil {
		t.Fatalf("Apply = %v, want nil", err)
	}
	if len(results) != len(repos) {
		t.Fatalf("Apply returned %d results, want %d", len(results), len(repos))
	}
	for i, res := range results {
		if res.Repo != repos[i] {
			t.Errorf("result %d repo = %q, want %q (input order preserved)", i, res.Repo, repos[i])
		}
	}
	if !results[0].OK() || !results[2].OK() {
		t.Errorf("repos one and three should succeed: %+v", results)
	}
	if results[1].Outcome != OutcomeGitError {
		t.Errorf("repo two outcome = %v, want git error", results[1].Outcome)
	}
	if results[1].ExitCode != 128 {
		t.Errorf("repo two exit code = %d, want 128", results[1].ExitCode)
	}
	if !strings.Contains(results[1].Output, "fatal: unable to access") {
		t.Errorf("repo two output = %q, want captured stderr", results[1].Output)
	}
}

func TestApply_ExecErrorDoesNotAbortBatch(t *testing.T) {
	t.Parallel()

	repos := []string{"/r/a", "/r/b", "/r/c"}
	runner := func(ctx context.Context, dir string, args ...string) ([]byte, int, error) {
		if dir == "/r/b" {
			return nil, -1, errors.New("process could not be started")
		}
		return []byte("ok\n"), 0, nil
	}

	results, err := Apply(context.Background(), repos, CommandSpec{Subcommand: "status"}, ApplyOptions{Runner: runner})
	if err != nil {
		t.Fatalf("Apply = %v, want nil", err)
	}
	if len(results) != 3 {
		t.Fatalf("Apply returned %d results, want 3 (no repo silently dropped)", len(results))
	}
	if results[1].Outcome != OutcomeExecError || results[1].Err == nil {
		t.Errorf("repo b result = %+v, want exec error", results[1])
	}
	if !results[2].OK() {
		t.Errorf("repo c should still be processed after repo b failed: %+v", results[2])
	}
}

func TestApply_WorkingDirectoryUntouched(t *testing.T) {
	before, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	runner := func(ctx context.Context, dir string, args ...string) ([]byte, int, error) {
		return nil, -1, errors.New("boom")
	}
	if _, err := Apply(context.Background(), []string{"/r/x", "/r/y"}, CommandSpec{Subcommand: "pull"}, ApplyOptions{Runner: runner}); err != nil {
		t.Fatalf("Apply = %v, want nil", err)
	}

	after, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if before != after {
		t.Errorf("working directory changed: %q -> %q", before, after)
	}
}

func TestApply_ConfirmPerRepo(t *testing.T) {
	t.Parallel()

	var asked []string
	confirm := func(repo string) (bool, error) {
		asked = append(asked, repo)
		return repo != "/r/skip", nil
	}
	var ran []string
	runner := func(ctx context.Context, dir string, args ...string) ([]byte, int, error) {
		ran = append(ran, dir)
		return []byte("done\n"), 0, nil
	}

	repos := []string{"/r/go", "/r/skip", "/r/also"}
	spec := CommandSpec{Subcommand: "commit", Args: []string{"-m", "msg"}, Mutating: true}
	results, err := Apply(context.Background(), repos, spec, ApplyOptions{Runner: runner, Confirm: confirm})
	if err != nil {
		t.Fatalf("Apply = %v, want nil", err)
	}

	if !reflect.DeepEqual(asked, repos) {
		t.Errorf("confirm asked for %v, want every repo", asked)
	}
	if !reflect.DeepEqual(ran, []string{"/r/go", "/r/also"}) {
		t.Errorf("runner ran in %v, want declined repo skipped only", ran)
	}
	if results[1].Outcome != OutcomeCancelled {
		t.Errorf("declined repo outcome = %v, want cancelled", results[1].Outcome)
	}
	if len(results) != 3 {
		t.Errorf("Apply returned %d results, want 3", len(results))
	}
}

func TestApply_NonMutatingSkipsConfirm(t *testing.T) {
	t.Parallel()

	confirm := func(repo string) (bool, error) {
		return false, errors.New("should not be asked")
	}
	runner := func(ctx context.Context, dir string, args ...string) ([]byte, int, error) {
		return []byte("ok\n"), 0, nil
	}

	results, err := Apply(context.Background(), []string{"/r/a"}, CommandSpec{Subcommand: "status"}, ApplyOptions{Runner: runner, Confirm: confirm})
	if err != nil {
		t.Fatalf("Apply = %v, want nil", err)
	}
	if !results[0].OK() {
		t.Errorf("non-mutating command was blocked by confirmation: %+v", results[0])
	}
}

func TestApply_MalformedSpec(t *testing.T) {
	t.Parallel()

	called := false
	runner := func(ctx context.Context, dir string, args ...string) ([]byte, int, error) {
		called = true
		return nil, 0, nil
	}
	_, err := Apply(context.Background(), []string{"/r/a"}, CommandSpec{}, ApplyOptions{Runner: runner})
	if err == nil {
		t.Fatal("Apply with empty spec = nil, want error")
	}
	if called {
		t.Error("runner was invoked for a malformed spec")
	}
}

func TestApply_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	runner := func(ctx context.Context, dir string, args ...string) ([]byte, int, error) {
		cancel() // cancelled mid-batch
		return []byte("ok\n"), 0, nil
	}

	results, err := Apply(ctx, []string{"/r/a", "/r/b", "/r/c"}, CommandSpec{Subcommand: "pull"}, ApplyOptions{Runner: runner})
	if err != context.Canceled {
		t.Errorf("Apply = %v, want context.Canceled", err)
	}
	if len(results) >= 3 {
		t.Errorf("Apply processed %d repos after cancellation, want early stop", len(results))
	}
}

func TestApply_ProgressCallback(t *testing.T) {
	t.Parallel()

	var seen []string
	progress := func(i, n int, repo string) {
		seen = append(seen, fmt.Sprintf("%d/%d %s", i+1, n, repo))
	}
	runner := func(ctx context.Context, dir string, args ...string) ([]byte, int, error) {
		return nil, 0, nil
	}

	_, err := Apply(context.Background(), []string{"/r/a", "/r/b"}, CommandSpec{Subcommand: "fetch"}, ApplyOptions{Runner: runner, Progress: progress})
	if err != nil {
		t.Fatalf("Apply = %v, want nil", err)
	}
	want := []string{"1/2 /r/a", "2/2 /r/b"}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("progress = %v, want %v", seen, want)
	}
}

func TestCommandSpec(t *testing.T) {
	t.Parallel()

	spec := CommandSpec{Subcommand: "commit", Args: []string{"-m", "a message with spaces"}}
	want := []string{"commit", "-m", "a message with spaces"}
	if got := spec.Argv(); !reflect.DeepEqual(got, want) {
		t.Errorf("Argv = %v, want %v (arguments stay discrete, no shell quoting)", got, want)
	}
	if got := spec.String(); got != "git commit -m a message with spaces" {
		t.Errorf("String = %q", got)
	}
}

func TestResultSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		res  Result
		want string
	}{
		{"first non-empty line", Result{Output: "\n\nAlready up to date.\nmore"}, "Already up to date."},
		{"falls back to error", Result{Err: errors.New("spawn failed")}, "spawn failed"},
		{"empty", Result{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.res.Summary(); got != tt.want {
				t.Errorf("Summary = %q, want %q", got, tt.want)
			}
		})
	}
}
