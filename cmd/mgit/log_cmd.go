package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"mgit/internal/git"
	"mgit/internal/log"
	"mgit/internal/output"
	"mgit/internal/ui"
)

func newLogCmd() *cobra.Command {
	var (
		f          scanFlags
		count      int
		since      string
		expand     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "log [path...]",
		Short:   "Show recent commits across repositories",
		GroupID: GroupInspect,
		Long: `Collects recent commits from every discovered repository, including
which files each commit touched. Commits are merged and sorted by
date, newest first.

--expand-actions lists the touched files grouped by action (added,
modified, deleted, renamed) instead of a file count.`,
		Example: `  mgit log --recurse ~/src
  mgit log --count 5 --since "2 weeks ago"
  mgit log --expand-actions
  mgit log --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if count < 1 {
				return usagef("--count must be at least 1")
			}

			repos, err := resolveRepos(ctx, args, &f)
			if err != nil {
				return err
			}
			if len(repos) == 0 {
				l.Println("No repositories found")
				return nil
			}

			logArgs := []string{git.LogFormat, "--name-status", fmt.Sprintf("--max-count=%d", count)}
			if since != "" {
				logArgs = append(logArgs, "--since="+since)
			}

			update, stopProgress := newProgress(l, "git log")
			results, err := git.Apply(ctx, repos, git.CommandSpec{Subcommand: "log", Args: logArgs}, git.ApplyOptions{Progress: update})
			stopProgress()
			if err != nil {
				return err
			}

			failed := 0
			var commits []git.CommitRecord
			for _, res := range results {
				if res.OK() {
					commits = append(commits, git.ParseLog(res.Repo, res.Output)...)
					continue
				}
				// A repository without commits yet fails "git log";
				// that is an empty result, not a batch failure.
				if strings.Contains(res.Output, "does not have any commits") {
					continue
				}
				failed++
				l.Printf("Warning: %s: %s\n", res.Repo, res.Summary())
			}

			sort.SliceStable(commits, func(i, j int) bool {
				return commits[i].Date.After(commits[j].Date)
			})

			if jsonOutput {
				var data []byte
				if expand {
					type expandedCommit struct {
						git.CommitRecord
						Actions map[git.FileAction][]string `json:"actions"`
					}
					expanded := make([]expandedCommit, 0, len(commits))
					for i := range commits {
						expanded = append(expanded, expandedCommit{commits[i], commits[i].FilesByAction()})
					}
					data, err = json.MarshalIndent(expanded, "", "  ")
				} else {
					data, err = json.MarshalIndent(commits, "", "  ")
				}
				if err != nil {
					return fmt.Errorf("marshal commits: %w", err)
				}
				out.Println(string(data))
			} else if len(commits) == 0 {
				l.Println("No commits found")
			} else {
				rows := make([][]string, 0, len(commits))
				for i := range commits {
					c := &commits[i]
					changes := fmt.Sprintf("%d file(s)", len(c.Files))
					if expand {
						changes = describeActions(c.FilesByAction())
					}
					rows = append(rows, []string{
						filepath.Base(c.Repo),
						c.Hash,
						c.Date.Format("2006-01-02"),
						c.Author,
						c.Message,
						changes,
					})
				}
				out.Print(ui.RenderTable([]string{"REPOSITORY", "HASH", "DATE", "AUTHOR", "MESSAGE", "CHANGES"}, rows))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d repositories failed", failed, len(repos))
			}
			return nil
		},
	}

	addScanFlags(cmd, &f)
	cmd.Flags().IntVar(&count, "count", 10, "Number of commits per repository")
	cmd.Flags().StringVar(&since, "since", "", "Only commits after this date (passed to git log --since)")
	cmd.Flags().BoolVar(&expand, "expand-actions", false, "List touched files grouped by action")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// describeActions renders "Added: a.go, b.go; Deleted: c.go".
func describeActions(actions map[git.FileAction][]string) string {
	var parts []string
	for _, action := range []git.FileAction{git.ActionAdded, git.ActionModified, git.ActionDeleted, git.ActionRenamed, git.ActionUnknown} {
		files := actions[action]
		if len(files) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", action, strings.Join(files, ", ")))
	}
	return strings.Join(parts, "; ")
}
