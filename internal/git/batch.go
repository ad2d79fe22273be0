package git

import (
	"context"
	"fmt"
	"strings"
)

// CommandSpec describes a git subcommand as pure data. The argument
// vector goes straight to the process API; commands are never
// assembled into shell strings.
type CommandSpec struct {
	// Subcommand is the git subcommand, e.g. "pull".
	Subcommand string
	// Args are the subcommand's arguments.
	Args []string
	// Mutating marks commands that change repository state and
	// therefore go through per-repository confirmation.
	Mutating bool
}

// Argv returns the full argument vector after the git binary name.
func (s CommandSpec) Argv() []string {
	return append([]string{s.Subcommand}, s.Args...)
}

func (s CommandSpec) String() string {
	return "git " + strings.Join(s.Argv(), " ")
}

func (s CommandSpec) validate() error {
	if s.Subcommand == "" {
		return fmt.Errorf("command spec has no subcommand")
	}
	return nil
}

// Outcome classifies how processing one repository ended.
type Outcome int

const (
	// OutcomeOK means git ran and exited zero.
	OutcomeOK Outcome = iota
	// OutcomeGitError means git ran but exited non-zero; the captured
	// output holds git's own report.
	OutcomeGitError
	// OutcomeExecError means the git process could not be started.
	OutcomeExecError
	// OutcomeCancelled means the per-repository confirmation was
	// declined.
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeGitError:
		return "failed"
	case OutcomeExecError:
		return "exec error"
	case OutcomeCancelled:
		return "cancelled"
	}
	return "unknown"
}

// MarshalText makes outcomes readable in JSON output.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result is the record produced for one repository. Every repository
// submitted to Apply yields exactly one Result, failures included.
type Result struct {
	Repo     string  `json:"repo"`
	Output   string  `json:"output"`
	ExitCode int     `json:"exit_code"`
	Outcome  Outcome `json:"outcome"`
	Err      error   `json:"-"`
}

// OK reports whether the invocation completed with exit code zero.
func (r Result) OK() bool {
	return r.Outcome == OutcomeOK
}

// Summary returns the first non-empty output line, or the error
// message when there was no output.
func (r Result) Summary() string {
	for _, line := range strings.Split(r.Output, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	if r.Err != nil {
		return r.Err.Error()
	}
	return ""
}

// Runner invokes git in dir with the given arguments, returning
// combined output and the exit code. Tests inject fakes here.
type Runner func(ctx context.Context, dir string, args ...string) ([]byte, int, error)

// ApplyOptions tunes batch application.
type ApplyOptions struct {
	// Confirm, if set, is asked before running a mutating spec in each
	// repository. Declining records a cancelled Result for that
	// repository only.
	Confirm func(repo string) (bool, error)
	// Runner overrides the real git invocation. Nil means git.
	Runner Runner
	// Progress, if set, is called before each repository is processed.
	Progress func(index, total int, repo string)
}

func gitRunner(ctx context.Context, dir string, args ...string) ([]byte, int, error) {
	return combinedGit(ctx, dir, args...)
}

// Apply runs spec in each repository, strictly in input order, and
// returns one Result per repository. A failure in one repository
// never aborts the rest; only a malformed spec (checked before any
// repository is touched), a failing confirmation prompt, or context
// cancellation stops the batch early.
func Apply(ctx context.Context, repos []string, spec CommandSpec, opts ApplyOptions) ([]Result, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	runner := opts.Runner
	if runner == nil {
		runner = gitRunner
	}

	results := make([]Result, 0, len(repos))
	for i, repo := range repos {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if opts.Progress != nil {
			opts.Progress(i, len(repos), repo)
		}

		if spec.Mutating && opts.Confirm != nil {
			ok, err := opts.Confirm(repo)
			if err != nil {
				return results, fmt.Errorf("confirmation failed: %w", err)
			}
			if !ok {
				results = append(results, Result{Repo: repo, Outcome: OutcomeCancelled})
				continue
			}
		}

		out, code, err := runner(ctx, repo, spec.Argv()...)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return results, ctxErr
		}

		res := Result{Repo: repo, Output: string(out), ExitCode: code}
		switch {
		case err != nil:
			res.Outcome = OutcomeExecError
			res.Err = err
		case code != 0:
			res.Outcome = OutcomeGitError
			res.Err = fmt.Errorf("git %s exited with code %d", spec.Subcommand, code)
		default:
			res.Outcome = OutcomeOK
		}
		results = append(results, res)
	}
	return results, nil
}
