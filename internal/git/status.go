package git

import (
	"context"
	"strings"
)

// PendingUpdates is a coarse classification of a repository's status
// block. It is lossy by design: a repository can have staged and
// untracked changes at once, and only the first matching marker in
// priority order is reported. The raw status text is always kept
// alongside.
type PendingUpdates int

const (
	PendingUnknown PendingUpdates = iota
	PendingClean
	PendingUncommitted
	PendingNotStaged
	PendingUntracked
)

func (p PendingUpdates) String() string {
	switch p {
	case PendingClean:
		return "Clean"
	case PendingUncommitted:
		return "Uncommitted"
	case PendingNotStaged:
		return "NotStaged"
	case PendingUntracked:
		return "Untracked"
	}
	return "Unknown"
}

// MarshalText makes the classification readable in JSON output.
func (p PendingUpdates) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// statusMarkers is the fixed classification priority: first match
// wins. Invocations pin LC_ALL=C, so the English phrases are stable.
var statusMarkers = []struct {
	phrase string
	state  PendingUpdates
}{
	{"nothing to commit", PendingClean},
	{"working tree clean", PendingClean},
	{"changes to be committed", PendingUncommitted},
	{"changes not staged for commit", PendingNotStaged},
	{"untracked files", PendingUntracked},
}

// ClassifyStatus maps a `git status` text block to its primary
// classification. Unexpected output classifies as Unknown; the caller
// keeps the raw block as ground truth.
func ClassifyStatus(text string) PendingUpdates {
	lower := strings.ToLower(text)
	for _, m := range statusMarkers {
		if strings.Contains(lower, m.phrase) {
			return m.state
		}
	}
	return PendingUnknown
}

// StatusReport is the normalized status record for one repository.
type StatusReport struct {
	Path    string         `json:"path"`
	Branch  string         `json:"branch"`
	Pending PendingUpdates `json:"pending"`
	Dirty   bool           `json:"dirty"`
	Message string         `json:"message"`
}

// CurrentBranch returns the current branch name for the repository at
// path. Returns "(detached)" for detached HEAD state.
func CurrentBranch(ctx context.Context, path string) (string, error) {
	out, err := outputGit(ctx, path, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	branch := strings.TrimSpace(string(out))
	if branch == "" {
		return "(detached)", nil
	}
	return branch, nil
}

// IsDirty returns true if the working tree has uncommitted changes or
// untracked files. Porcelain output is stable across locales and git
// versions, unlike the human status block.
func IsDirty(ctx context.Context, path string) bool {
	out, err := outputGit(ctx, path, "status", "--porcelain")
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) != ""
}
