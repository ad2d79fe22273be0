package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"mgit/internal/config"
	"mgit/internal/git"
	"mgit/internal/log"
	"mgit/internal/output"
	"mgit/internal/ui"
	"mgit/internal/ui/progress"
	"mgit/internal/ui/prompt"
)

// usageError marks errors caused by invalid arguments or paths so
// Execute exits with status 2 instead of the generic 1.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// scanFlags are the discovery flags shared by every repository
// command.
type scanFlags struct {
	recurse bool
	depth   int
	repos   []string
}

func addScanFlags(cmd *cobra.Command, f *scanFlags) {
	cmd.Flags().BoolVar(&f.recurse, "recurse", false, "Search for repositories recursively")
	cmd.Flags().IntVar(&f.depth, "depth", 0, fmt.Sprintf("Maximum recursion depth (default %d)", git.DefaultMaxDepth))
	cmd.Flags().StringSliceVarP(&f.repos, "repo", "r", nil, "Only include repositories with these names")
}

// resolveRepos turns path arguments (or the configured default) into
// the list of repository roots a command operates on. Invalid input
// paths are reported but do not abort discovery of the remaining
// roots.
func resolveRepos(ctx context.Context, args []string, f *scanFlags) ([]string, error) {
	cfg := config.FromContext(ctx)
	l := log.FromContext(ctx)

	roots := args
	if len(roots) == 0 {
		if cfg.ScanDir != "" {
			roots = []string{cfg.ScanDir}
		} else {
			roots = []string{config.WorkDirFromContext(ctx)}
		}
	}

	opts := git.DiscoverOptions{
		Recurse:  f.recurse || cfg.Recurse,
		MaxDepth: f.depth,
		SkipDirs: cfg.SkipDirs,
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = cfg.MaxDepth
	}

	repos, problems := git.Discover(roots, opts)
	invalid := 0
	for _, p := range problems {
		if p.Warning {
			l.Printf("Warning: %v\n", p.Err)
		} else {
			invalid++
			l.Printf("Error: %v\n", p.Err)
		}
	}
	if len(repos) == 0 && invalid > 0 {
		return nil, usagef("no repositories found (%d invalid path(s))", invalid)
	}

	if len(f.repos) > 0 {
		filtered := git.FilterByName(repos, f.repos)
		if len(filtered) == 0 {
			msg := fmt.Sprintf("no repository matches %s", strings.Join(f.repos, ", "))
			if suggestions := git.SuggestNames(repos, f.repos[0]); len(suggestions) > 0 {
				msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
			}
			return nil, usagef("%s", msg)
		}
		repos = filtered
	}

	return repos, nil
}

func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func stderrIsTerminal() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// confirmFunc builds the per-repository confirmation callback for a
// mutating command. --yes skips prompting; without a terminal on
// stdin the command refuses to guess and asks for --yes instead.
func confirmFunc(assumeYes bool, action string) (func(string) (bool, error), error) {
	if assumeYes {
		return nil, nil
	}
	if !stdinIsTerminal() {
		return nil, usagef("stdin is not a terminal; pass --yes to run '%s' without prompting", action)
	}
	return func(repo string) (bool, error) {
		res, err := prompt.Confirmf("Apply '%s' to %s?", action, filepath.Base(repo))
		if err != nil {
			return false, err
		}
		return res.Confirmed && !res.Cancelled, nil
	}, nil
}

// newProgress returns a Progress callback backed by a spinner, plus a
// stop function. Nil callback when stderr is not a terminal, or when
// verbose tracing is on and would fight the spinner for the stream.
func newProgress(l *log.Logger, action string) (func(int, int, string), func()) {
	if !stderrIsTerminal() || l.IsVerbose() {
		return nil, func() {}
	}
	sp := progress.NewSpinner(action)
	sp.Start()
	update := func(i, n int, repo string) {
		sp.UpdateMessage(fmt.Sprintf("%s: %s (%d/%d)", action, filepath.Base(repo), i+1, n))
	}
	return update, sp.Stop
}

// reportResults prints batch results as a table or JSON. Returns an
// error when any repository failed so the process exits non-zero;
// declined confirmations do not count as failures.
func reportResults(ctx context.Context, results []git.Result, jsonOutput bool) error {
	out := output.FromContext(ctx)

	if jsonOutput {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		out.Println(string(data))
	} else {
		rows := make([][]string, 0, len(results))
		for _, res := range results {
			rows = append(rows, []string{res.Repo, res.Outcome.String(), res.Summary()})
		}
		out.Print(ui.RenderTable([]string{"REPOSITORY", "RESULT", "SUMMARY"}, rows))
	}

	failed := 0
	for _, res := range results {
		if !res.OK() && res.Outcome != git.OutcomeCancelled {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d repositories failed", failed, len(results))
	}
	return nil
}

// runBatch applies spec to the repositories resolved from args and
// reports the results. The shared path for pull, push and set-email.
func runBatch(ctx context.Context, args []string, f *scanFlags, spec git.CommandSpec, assumeYes, jsonOutput bool) error {
	l := log.FromContext(ctx)

	repos, err := resolveRepos(ctx, args, f)
	if err != nil {
		return err
	}
	if len(repos) == 0 {
		l.Println("No repositories found")
		return nil
	}

	var confirm func(string) (bool, error)
	if spec.Mutating {
		confirm, err = confirmFunc(assumeYes, spec.String())
		if err != nil {
			return err
		}
	}

	update, stopProgress := newProgress(l, spec.String())
	results, err := git.Apply(ctx, repos, spec, git.ApplyOptions{
		Confirm:  confirm,
		Progress: update,
	})
	stopProgress()
	if err != nil {
		return err
	}

	return reportResults(ctx, results, jsonOutput)
}
