package git

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// mkRepo creates dir with a .git subdirectory underneath root.
func mkRepo(t *testing.T, root string, dir string) string {
	t.Helper()
	path := filepath.Join(root, dir)
	if err := os.MkdirAll(filepath.Join(path, ".git"), 0755); err != nil {
		t.Fatalf("mkRepo %s: %v", dir, err)
	}
	return path
}

func mkDir(t *testing.T, root, dir string) string {
	t.Helper()
	path := filepath.Join(root, dir)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("mkDir %s: %v", dir, err)
	}
	return path
}

func TestDiscover_Recursive(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	a := mkRepo(t, root, "a")
	bsub := mkRepo(t, root, filepath.Join("b", "sub"))
	mkDir(t, root, "c") // no repo

	repos, problems := Discover([]string{root}, DiscoverOptions{Recurse: true})

	want := []string{a, bsub}
	if !reflect.DeepEqual(repos, want) {
		t.Errorf("Discover = %v, want %v", repos, want)
	}
	if len(problems) != 0 {
		t.Errorf("Discover problems = %v, want none", problems)
	}
}

func TestDiscover_NonRecursive(t *testing.T) {
	t.Parallel()

	t.Run("root is a repo", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		mkRepo(t, root, ".")
		repos, problems := Discover([]string{root}, DiscoverOptions{})
		if len(repos) != 1 || repos[0] != root {
			t.Errorf("Discover = %v, want [%s]", repos, root)
		}
		if len(problems) != 0 {
			t.Errorf("Discover problems = %v, want none", problems)
		}
	})

	t.Run("nested repo not found without recurse", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		mkRepo(t, root, "nested")
		repos, problems := Discover([]string{root}, DiscoverOptions{})
		if len(repos) != 0 {
			t.Errorf("Discover = %v, want none", repos)
		}
		if len(problems) != 1 || !problems[0].Warning {
			t.Errorf("Discover problems = %v, want one warning", problems)
		}
	})
}

func TestDiscover_InvalidInputs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := mkRepo(t, root, "good")
	file := filepath.Join(root, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(root, "does-not-exist")

	// One bad input never aborts the others.
	repos, problems := Discover([]string{missing, file, repo}, DiscoverOptions{Recurse: true})

	if len(repos) != 1 || repos[0] != repo {
		t.Errorf("Discover = %v, want [%s]", repos, repo)
	}
	if len(problems) != 2 {
		t.Fatalf("Discover problems = %v, want 2", problems)
	}
	for _, p := range problems {
		if p.Warning {
			t.Errorf("problem %v classified as warning, want invalid input", p)
		}
	}
}

func TestDiscover_NoRepoIsWarning(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkDir(t, root, "empty")

	repos, problems := Discover([]string{root}, DiscoverOptions{Recurse: true})
	if len(repos) != 0 {
		t.Errorf("Discover = %v, want none", repos)
	}
	if len(problems) != 1 {
		t.Fatalf("Discover problems = %v, want 1", problems)
	}
	if !problems[0].Warning {
		t.Errorf("empty tree problem = %v, want warning", problems[0])
	}
}

func TestDiscover_DedupeOverlappingRoots(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := mkRepo(t, root, "a")

	repos, _ := Discover([]string{root, repo, root}, DiscoverOptions{Recurse: true})
	if len(repos) != 1 || repos[0] != repo {
		t.Errorf("Discover overlapping roots = %v, want [%s]", repos, repo)
	}
}

func TestDiscover_DepthLimit(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	shallow := mkRepo(t, root, "one")
	mkRepo(t, root, filepath.Join("d1", "d2", "d3", "deep"))

	repos, _ := Discover([]string{root}, DiscoverOptions{Recurse: true, MaxDepth: 2})
	if len(repos) != 1 || repos[0] != shallow {
		t.Errorf("Discover with depth 2 = %v, want [%s]", repos, shallow)
	}

	repos, _ = Discover([]string{root}, DiscoverOptions{Recurse: true})
	if len(repos) != 2 {
		t.Errorf("Discover with default depth = %v, want 2 repos", repos)
	}
}

func TestDiscover_SkipsHiddenAndSkipDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkRepo(t, root, filepath.Join("node_modules", "dep"))
	mkRepo(t, root, filepath.Join(".hidden", "repo"))
	mkRepo(t, root, filepath.Join("custom", "repo"))

	repos, _ := Discover([]string{root}, DiscoverOptions{Recurse: true, SkipDirs: []string{"custom"}})
	if len(repos) != 0 {
		t.Errorf("Discover = %v, want skipped dirs pruned", repos)
	}
}

func TestDiscover_GitFileIsNotARepo(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	wt := mkDir(t, root, "worktree")
	if err := os.WriteFile(filepath.Join(wt, ".git"), []byte("gitdir: /elsewhere\n"), 0644); err != nil {
		t.Fatal(err)
	}

	repos, _ := Discover([]string{root}, DiscoverOptions{Recurse: true})
	if len(repos) != 0 {
		t.Errorf("Discover = %v, want .git files ignored", repos)
	}
}

func TestDiscover_UppercaseMarkerMatchesNonRecursiveRule(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := mkDir(t, root, "shouty")
	if err := os.Mkdir(filepath.Join(dir, ".GIT"), 0755); err != nil {
		t.Fatal(err)
	}

	// Whether .GIT spells a repo marker depends on the filesystem's
	// case sensitivity; recursive and non-recursive discovery must
	// give the same answer either way.
	repos, _ := Discover([]string{root}, DiscoverOptions{Recurse: true})
	found := false
	for _, r := range repos {
		if r == dir {
			found = true
		}
	}
	if found != IsRepoRoot(dir) {
		t.Errorf("recursive discovery found = %v, IsRepoRoot = %v; want agreement", found, IsRepoRoot(dir))
	}
}

func TestDiscover_Deterministic(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkRepo(t, root, "b")
	mkRepo(t, root, "a")
	mkRepo(t, root, filepath.Join("c", "nested"))

	first, _ := Discover([]string{root}, DiscoverOptions{Recurse: true})
	second, _ := Discover([]string{root}, DiscoverOptions{Recurse: true})
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Discover not idempotent: %v vs %v", first, second)
	}
	if !sortedStrings(first) {
		t.Errorf("Discover result not sorted: %v", first)
	}
}

func sortedStrings(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}

func TestIsRepoRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := mkRepo(t, root, "repo")
	plain := mkDir(t, root, "plain")

	if !IsRepoRoot(repo) {
		t.Errorf("IsRepoRoot(%s) = false, want true", repo)
	}
	if IsRepoRoot(plain) {
		t.Errorf("IsRepoRoot(%s) = true, want false", plain)
	}
}

func TestFilterByName(t *testing.T) {
	t.Parallel()

	repos := []string{"/src/alpha", "/src/beta", "/src/Gamma"}

	t.Run("empty filter keeps all", func(t *testing.T) {
		t.Parallel()
		if got := FilterByName(repos, nil); !reflect.DeepEqual(got, repos) {
			t.Errorf("FilterByName = %v, want all", got)
		}
	})

	t.Run("case-insensitive match", func(t *testing.T) {
		t.Parallel()
		got := FilterByName(repos, []string{"gamma", "alpha"})
		want := []string{"/src/alpha", "/src/Gamma"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("FilterByName = %v, want %v", got, want)
		}
	})
}

func TestSuggestNames(t *testing.T) {
	t.Parallel()

	repos := []string{"/src/frontend", "/src/backend", "/src/tools"}
	got := SuggestNames(repos, "bakend")
	if len(got) == 0 || got[0] != "backend" {
		t.Errorf("SuggestNames(bakend) = %v, want backend first", got)
	}
}
