package main

import (
	"github.com/spf13/cobra"

	"mgit/internal/git"
)

func newPushCmd() *cobra.Command {
	var (
		f          scanFlags
		tags       bool
		forceLease bool
		assumeYes  bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "push [path...]",
		Short:   "Push every repository to its upstream",
		GroupID: GroupBatch,
		Long: `Runs "git push" in every discovered repository. Each repository is
confirmed individually unless --yes is given; a failing push in one
repository does not stop the others.`,
		Example: `  mgit push --recurse ~/src
  mgit push --yes --tags
  mgit push --force-with-lease -r backend`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := git.CommandSpec{Subcommand: "push", Mutating: true}
			if tags {
				spec.Args = append(spec.Args, "--tags")
			}
			if forceLease {
				spec.Args = append(spec.Args, "--force-with-lease")
			}
			return runBatch(cmd.Context(), args, &f, spec, assumeYes, jsonOutput)
		},
	}

	addScanFlags(cmd, &f)
	cmd.Flags().BoolVar(&tags, "tags", false, "Push tags as well")
	cmd.Flags().BoolVar(&forceLease, "force-with-lease", false, "Force push, refusing to overwrite unseen work")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not prompt for confirmation")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}
