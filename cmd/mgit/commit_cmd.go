package main

import (
	"strings"

	"github.com/spf13/cobra"

	"mgit/internal/git"
	"mgit/internal/log"
)

func newCommitCmd() *cobra.Command {
	var (
		f          scanFlags
		message    string
		stageAll   bool
		push       bool
		assumeYes  bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "commit [path...]",
		Short:   "Commit staged changes in every repository",
		GroupID: GroupBatch,
		Long: `Runs "git commit -m <message>" in every discovered repository.

--all stages everything first (including untracked files); --push
pushes each repository after a successful commit. Confirmation is
asked once per repository, before anything is staged.`,
		Example: `  mgit commit -m "update deps" --all
  mgit commit -m "fix config" --push --yes
  mgit commit -m "bump version" -r backend -r frontend`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			if strings.TrimSpace(message) == "" {
				return usagef("commit message must not be empty")
			}

			repos, err := resolveRepos(ctx, args, &f)
			if err != nil {
				return err
			}
			if len(repos) == 0 {
				l.Println("No repositories found")
				return nil
			}

			action := "git commit"
			if stageAll {
				action = "git add -A && git commit"
			}
			confirm, err := confirmFunc(assumeYes, action)
			if err != nil {
				return err
			}

			// One final Result per repository, in discovery order,
			// regardless of which pass produced it.
			final := make(map[string]git.Result, len(repos))
			active := repos

			if stageAll {
				update, stopProgress := newProgress(l, "git add -A")
				stageResults, err := git.Apply(ctx, active, git.CommandSpec{Subcommand: "add", Args: []string{"-A"}, Mutating: true}, git.ApplyOptions{Confirm: confirm, Progress: update})
				stopProgress()
				if err != nil {
					return err
				}
				// Staging already asked; do not ask again on commit.
				confirm = nil

				next := make([]string, 0, len(stageResults))
				for _, res := range stageResults {
					if res.OK() {
						next = append(next, res.Repo)
					} else {
						final[res.Repo] = res
					}
				}
				active = next
			}

			update, stopProgress := newProgress(l, "git commit")
			commitResults, err := git.Apply(ctx, active, git.CommandSpec{Subcommand: "commit", Args: []string{"-m", message}, Mutating: true}, git.ApplyOptions{Confirm: confirm, Progress: update})
			stopProgress()
			if err != nil {
				return err
			}

			var committed []string
			for _, res := range commitResults {
				if res.OK() {
					committed = append(committed, res.Repo)
				}
				final[res.Repo] = res
			}

			if push && len(committed) > 0 {
				update, stopProgress := newProgress(l, "git push")
				pushResults, err := git.Apply(ctx, committed, git.CommandSpec{Subcommand: "push", Mutating: true}, git.ApplyOptions{Progress: update})
				stopProgress()
				if err != nil {
					return err
				}
				for _, res := range pushResults {
					// A failed push replaces the commit result so the
					// summary shows what actually needs attention.
					if !res.OK() {
						final[res.Repo] = res
					}
				}
			}

			results := make([]git.Result, 0, len(repos))
			for _, repo := range repos {
				results = append(results, final[repo])
			}
			return reportResults(ctx, results, jsonOutput)
		},
	}

	addScanFlags(cmd, &f)
	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message (required)")
	cmd.Flags().BoolVarP(&stageAll, "all", "a", false, "Stage all changes, including untracked files, before committing")
	cmd.Flags().BoolVar(&push, "push", false, "Push each repository after a successful commit")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not prompt for confirmation")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}
