package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mgit/internal/config"
	"mgit/internal/git"
	"mgit/internal/log"
)

func newUndoCmd() *cobra.Command {
	var (
		count     int
		hard      bool
		assumeYes bool
	)

	cmd := &cobra.Command{
		Use:     "undo [path]",
		Short:   "Undo the last commit(s) in a repository",
		GroupID: GroupBatch,
		Args:    cobra.MaximumNArgs(1),
		Long: `Resets the repository back by the given number of commits. Without
--hard the undone changes stay in the working tree (a mixed reset);
with --hard they are discarded.

Operates on a single repository: the given path, or the current
directory.`,
		Example: `  mgit undo                  # Undo the last commit, keep the changes
  mgit undo --count 2
  mgit undo --hard --yes ~/src/app`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			if count < 1 {
				return usagef("--count must be at least 1")
			}

			dir := config.WorkDirFromContext(ctx)
			if len(args) == 1 {
				dir = args[0]
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return usagef("resolve %s: %v", dir, err)
			}
			if !git.IsRepoRoot(abs) {
				return usagef("%s is not a git repository root", abs)
			}

			var resetArgs []string
			if hard {
				resetArgs = append(resetArgs, "--hard")
			}
			resetArgs = append(resetArgs, fmt.Sprintf("HEAD~%d", count))

			action := "git reset " + strings.Join(resetArgs, " ")
			confirm, err := confirmFunc(assumeYes, action)
			if err != nil {
				return err
			}

			results, err := git.Apply(ctx, []string{abs}, git.CommandSpec{Subcommand: "reset", Args: resetArgs, Mutating: true}, git.ApplyOptions{Confirm: confirm})
			if err != nil {
				return err
			}

			res := results[0]
			switch res.Outcome {
			case git.OutcomeCancelled:
				l.Println("Aborted")
				return nil
			case git.OutcomeOK:
				l.Printf("Reset %s by %d commit(s)\n", abs, count)
				return nil
			default:
				return fmt.Errorf("%s: %s", abs, res.Summary())
			}
		},
	}

	cmd.Flags().IntVar(&count, "count", 1, "Number of commits to undo")
	cmd.Flags().BoolVar(&hard, "hard", false, "Discard the undone changes")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not prompt for confirmation")

	return cmd
}
