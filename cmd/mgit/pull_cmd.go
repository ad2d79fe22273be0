package main

import (
	"github.com/spf13/cobra"

	"mgit/internal/git"
)

func newPullCmd() *cobra.Command {
	var (
		f          scanFlags
		rebase     bool
		assumeYes  bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "pull [path...]",
		Short:   "Pull every repository from its upstream",
		GroupID: GroupBatch,
		Long: `Runs "git pull" in every discovered repository. Each repository is
confirmed individually unless --yes is given; a failing pull in one
repository does not stop the others.`,
		Example: `  mgit pull --recurse ~/src
  mgit pull --yes
  mgit pull --rebase -r backend`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := git.CommandSpec{Subcommand: "pull", Mutating: true}
			if rebase {
				spec.Args = append(spec.Args, "--rebase")
			}
			return runBatch(cmd.Context(), args, &f, spec, assumeYes, jsonOutput)
		},
	}

	addScanFlags(cmd, &f)
	cmd.Flags().BoolVar(&rebase, "rebase", false, "Pull with --rebase")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not prompt for confirmation")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}
