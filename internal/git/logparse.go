package git

import (
	"strings"
	"time"
)

// logFieldSep separates commit header fields. The unit separator
// cannot appear in commit subjects or author names, unlike | or tabs.
const logFieldSep = "\x1f"

// LogFormat is the --format argument matching ParseLog: committer
// date (strict ISO 8601), subject, abbreviated hash, author,
// committer, separated by %x1f.
const LogFormat = "--format=%cI%x1f%s%x1f%h%x1f%an%x1f%cn"

// FileAction classifies one changed file in a commit.
type FileAction string

const (
	ActionAdded    FileAction = "Added"
	ActionModified FileAction = "Modified"
	ActionDeleted  FileAction = "Deleted"
	ActionRenamed  FileAction = "Renamed"
	ActionUnknown  FileAction = "Unknown"
)

// classifyAction maps a --name-status action code to a FileAction.
// Rename codes carry a similarity score suffix (R100) which is
// stripped and ignored.
func classifyAction(code string) FileAction {
	switch code {
	case "A":
		return ActionAdded
	case "M":
		return ActionModified
	case "D":
		return ActionDeleted
	case "??":
		return ActionUnknown
	}
	if len(code) > 1 && code[0] == 'R' && isDigits(code[1:]) {
		return ActionRenamed
	}
	return ActionUnknown
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// FileChange is one changed file within a commit. Renames carry both
// names as "old=>new".
type FileChange struct {
	Action FileAction `json:"action"`
	File   string     `json:"file"`
}

// CommitRecord is one normalized commit from `git log` with
// --name-status file details.
type CommitRecord struct {
	Repo      string       `json:"repo"`
	Hash      string       `json:"hash"`
	Date      time.Time    `json:"date"`
	Message   string       `json:"message"`
	Author    string       `json:"author"`
	Committer string       `json:"committer"`
	Files     []FileChange `json:"files,omitempty"`
}

// FilesByAction groups the commit's changed files per action type.
func (c *CommitRecord) FilesByAction() map[FileAction][]string {
	grouped := make(map[FileAction][]string)
	for _, f := range c.Files {
		grouped[f.Action] = append(grouped[f.Action], f.File)
	}
	return grouped
}

// ParseLog parses `git log` output produced with LogFormat and
// --name-status into commit records. Header lines are recognized by
// the field separator; lines with a leading action code and tab
// attach file changes to the current commit. Unrecognized lines are
// skipped, never fatal.
func ParseLog(repo, text string) []CommitRecord {
	var commits []CommitRecord

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.Contains(line, logFieldSep) {
			fields := strings.Split(line, logFieldSep)
			if len(fields) != 5 {
				continue
			}
			rec := CommitRecord{
				Repo:      repo,
				Message:   fields[1],
				Hash:      fields[2],
				Author:    fields[3],
				Committer: fields[4],
			}
			if date, err := time.Parse(time.RFC3339, fields[0]); err == nil {
				rec.Date = date
			}
			commits = append(commits, rec)
			continue
		}

		if len(commits) == 0 {
			continue
		}
		code, rest, found := strings.Cut(line, "\t")
		if !found {
			continue
		}
		change := FileChange{Action: classifyAction(code)}
		if change.Action == ActionRenamed {
			old, renamed, ok := strings.Cut(rest, "\t")
			if ok {
				change.File = old + "=>" + renamed
			} else {
				change.File = rest
			}
		} else {
			change.File = rest
		}
		last := &commits[len(commits)-1]
		last.Files = append(last.Files, change)
	}

	return commits
}
