package git

import (
	"reflect"
	"testing"
)

const remoteShowSample = `* remote origin
  Fetch URL: git@github.com:acme/widgets.git
  Push  URL: git@github.com:acme/widgets.git
  HEAD branch: main
  Remote branches:
    main    tracked
    develop tracked
  Local branch configured for 'git pull':
    main merges with remote main
  Local ref configured for 'git push':
    main pushes to main (up to date)
`

func TestParseRemoteShow(t *testing.T) {
	t.Parallel()

	fields := ParseRemoteShow(remoteShowSample)

	wantLabels := []string{
		"Fetch URL",
		"Push  URL",
		"HEAD branch",
		"Remote branches",
		"Local branch configured for 'git pull'",
		"Local ref configured for 'git push'",
	}
	var labels []string
	for _, f := range fields {
		labels = append(labels, f.Label)
	}
	if !reflect.DeepEqual(labels, wantLabels) {
		t.Errorf("labels = %v, want %v", labels, wantLabels)
	}

	info := RemoteInfo{Fields: fields}
	if got := info.Get("Fetch URL"); got != "git@github.com:acme/widgets.git" {
		t.Errorf("Fetch URL = %q (value keeps its own colons)", got)
	}
	if got := info.Get("HEAD branch"); got != "main" {
		t.Errorf("HEAD branch = %q, want main", got)
	}
	if got := info.Get("Remote branches"); got != "main    tracked, develop tracked" {
		t.Errorf("Remote branches = %q, want accumulated continuations", got)
	}
	if got := info.Get("Local branch configured for 'git pull'"); got != "main merges with remote main" {
		t.Errorf("git pull config = %q", got)
	}
}

func TestParseRemoteShow_Hostile(t *testing.T) {
	t.Parallel()

	t.Run("continuation before any label dropped", func(t *testing.T) {
		t.Parallel()
		fields := ParseRemoteShow("loose text\nmore loose text\n")
		if len(fields) != 0 {
			t.Errorf("fields = %+v, want none", fields)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		if fields := ParseRemoteShow(""); len(fields) != 0 {
			t.Errorf("fields = %+v, want none", fields)
		}
	})

	t.Run("banner line skipped", func(t *testing.T) {
		t.Parallel()
		fields := ParseRemoteShow("* remote origin\n  HEAD branch: main\n")
		if len(fields) != 1 || fields[0].Label != "HEAD branch" {
			t.Errorf("fields = %+v, want only HEAD branch", fields)
		}
	})
}

func TestRemoteInfoGet(t *testing.T) {
	t.Parallel()

	info := RemoteInfo{Fields: []RemoteField{{Label: "HEAD branch", Value: "main"}}}
	if got := info.Get("head branch"); got != "main" {
		t.Errorf("Get is case-insensitive, got %q", got)
	}
	if got := info.Get("missing"); got != "" {
		t.Errorf("Get(missing) = %q, want empty", got)
	}
}
