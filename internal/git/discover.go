package git

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// DefaultMaxDepth bounds recursive discovery when no explicit depth
// is configured.
const DefaultMaxDepth = 5

// defaultSkipDirs are directory names never worth descending into.
var defaultSkipDirs = []string{
	"node_modules", ".npm", "vendor", ".cache",
	"dist", "build", "target", ".gradle",
	"__pycache__", ".pytest_cache", ".tox",
	"venv", ".venv",
}

// DiscoverOptions controls repository discovery.
type DiscoverOptions struct {
	// Recurse walks the whole subtree under each root instead of only
	// checking the root itself.
	Recurse bool
	// MaxDepth bounds the recursive walk. Zero means DefaultMaxDepth.
	MaxDepth int
	// SkipDirs are directory names skipped in addition to the
	// built-in list.
	SkipDirs []string
}

// Problem reports a per-root discovery issue. Warnings ("no
// repositories under this root") are expected outcomes; non-warnings
// are invalid inputs (missing path, not a directory).
type Problem struct {
	Root    string
	Err     error
	Warning bool
}

// Discover locates git repository roots under the given starting
// paths. A repository root is the parent of a directory named .git;
// .git files (worktree and submodule pointers) are not recognized.
// A bad input path yields a Problem and the remaining roots are still
// searched. The returned paths are absolute, deduplicated and sorted.
func Discover(roots []string, opts DiscoverOptions) ([]string, []Problem) {
	skip := make(map[string]bool, len(defaultSkipDirs)+len(opts.SkipDirs))
	for _, d := range defaultSkipDirs {
		skip[d] = true
	}
	for _, d := range opts.SkipDirs {
		skip[d] = true
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	seen := make(map[string]bool)
	var repos []string
	var problems []Problem

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			problems = append(problems, Problem{Root: root, Err: err})
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			problems = append(problems, Problem{Root: root, Err: fmt.Errorf("path does not exist: %s", root)})
			continue
		}
		if !info.IsDir() {
			problems = append(problems, Problem{Root: root, Err: fmt.Errorf("not a directory: %s", root)})
			continue
		}

		var found []string
		if opts.Recurse {
			found = walkForRepos(abs, maxDepth, skip)
		} else if IsRepoRoot(abs) {
			found = []string{abs}
		}

		if len(found) == 0 {
			problems = append(problems, Problem{
				Root:    root,
				Err:     fmt.Errorf("no git repositories found under %s", abs),
				Warning: true,
			})
			continue
		}
		for _, repo := range found {
			if !seen[repo] {
				seen[repo] = true
				repos = append(repos, repo)
			}
		}
	}

	sort.Strings(repos)
	return repos, problems
}

// walkForRepos walks the subtree rooted at root looking for .git
// directories, bounded by maxDepth. Unreadable entries are skipped;
// partial results beat aborting the whole scan.
func walkForRepos(root string, maxDepth int, skip map[string]bool) []string {
	var repos []string

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		name := d.Name()
		if strings.EqualFold(name, ".git") {
			// IsRepoRoot decides whether this spelling counts as a
			// marker, so recursive and non-recursive discovery agree
			// on any filesystem.
			if parent := filepath.Dir(path); IsRepoRoot(parent) {
				repos = append(repos, parent)
			}
			return fs.SkipDir
		}

		if path != root {
			// Hidden directories and the skip list are never repo
			// containers worth descending into.
			if strings.HasPrefix(name, ".") || skip[name] {
				return fs.SkipDir
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr == nil {
				depth := strings.Count(rel, string(filepath.Separator)) + 1
				if depth > maxDepth {
					return fs.SkipDir
				}
			}
		}
		return nil
	})

	return repos
}

// IsRepoRoot reports whether path is the top of a git working tree,
// i.e. it directly contains a .git directory.
func IsRepoRoot(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// FilterByName keeps the repos whose base name matches one of the
// given names (case-insensitive).
func FilterByName(repos, names []string) []string {
	if len(names) == 0 {
		return repos
	}
	var kept []string
	for _, repo := range repos {
		base := filepath.Base(repo)
		for _, name := range names {
			if strings.EqualFold(base, name) {
				kept = append(kept, repo)
				break
			}
		}
	}
	return kept
}

// SuggestNames fuzzy-matches query against the base names of repos,
// for "did you mean" hints when a name filter matches nothing.
func SuggestNames(repos []string, query string) []string {
	bases := make([]string, len(repos))
	for i, repo := range repos {
		bases[i] = filepath.Base(repo)
	}
	matches := fuzzy.Find(query, bases)
	var names []string
	for _, m := range matches {
		names = append(names, bases[m.Index])
	}
	return names
}
