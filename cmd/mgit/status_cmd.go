package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"mgit/internal/git"
	"mgit/internal/log"
	"mgit/internal/output"
	"mgit/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var (
		f          scanFlags
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "status [path...]",
		Short:   "Show working tree status for each repository",
		Aliases: []string{"st"},
		GroupID: GroupInspect,
		Long: `Runs "git status" in every discovered repository and classifies the
result: clean, staged changes, unstaged changes, or untracked files.
When several apply, the most committed state wins (staged beats
unstaged beats untracked).

Branch and dirty state come from "git branch --show-current" and
"git status --porcelain".`,
		Example: `  mgit status                  # Current directory
  mgit status --recurse ~/src  # Every repository under ~/src
  mgit status -r backend       # Only repositories named backend
  mgit status --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			repos, err := resolveRepos(ctx, args, &f)
			if err != nil {
				return err
			}
			if len(repos) == 0 {
				l.Println("No repositories found")
				return nil
			}

			update, stopProgress := newProgress(l, "git status")
			results, err := git.Apply(ctx, repos, git.CommandSpec{Subcommand: "status"}, git.ApplyOptions{Progress: update})
			stopProgress()
			if err != nil {
				return err
			}

			failed := 0
			reports := make([]git.StatusReport, 0, len(results))
			for _, res := range results {
				// The raw capture stays intact; the classification is
				// lossy and the message field is the ground truth.
				report := git.StatusReport{Path: res.Repo, Message: res.Output}
				if res.OK() {
					report.Pending = git.ClassifyStatus(res.Output)
					report.Dirty = git.IsDirty(ctx, res.Repo)
					if branch, err := git.CurrentBranch(ctx, res.Repo); err == nil {
						report.Branch = branch
					}
				} else {
					failed++
				}
				reports = append(reports, report)
			}

			if jsonOutput {
				data, err := json.MarshalIndent(reports, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal reports: %w", err)
				}
				out.Println(string(data))
			} else {
				rows := make([][]string, 0, len(reports))
				for _, rep := range reports {
					dirty := ""
					if rep.Dirty {
						dirty = "*"
					}
					rows = append(rows, []string{rep.Path, rep.Branch, rep.Pending.String(), dirty})
				}
				out.Print(ui.RenderTable([]string{"REPOSITORY", "BRANCH", "STATUS", "DIRTY"}, rows))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d repositories failed", failed, len(repos))
			}
			return nil
		},
	}

	addScanFlags(cmd, &f)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
