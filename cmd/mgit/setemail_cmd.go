package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mgit/internal/config"
	"mgit/internal/git"
	"mgit/internal/log"
)

func newSetEmailCmd() *cobra.Command {
	var (
		f          scanFlags
		global     bool
		assumeYes  bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "set-email [email] [path...]",
		Short:   "Set the git user.email across repositories",
		GroupID: GroupBatch,
		Long: `Sets user.email in every discovered repository, or globally with
--global. Without an email argument the address comes from the
"email" setting in the mgit configuration file.`,
		Example: `  mgit set-email jane@example.com --recurse ~/src
  mgit set-email --global jane@example.com
  mgit set-email             # Uses email from ~/.config/mgit/config.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)

			email := cfg.Email
			paths := args
			if len(args) > 0 && strings.Contains(args[0], "@") {
				email = args[0]
				paths = args[1:]
			}
			if email == "" {
				return usagef("no email given and none configured (pass one or set email in the config file)")
			}
			if !strings.Contains(email, "@") {
				return usagef("%q does not look like an email address", email)
			}

			if global {
				if err := git.RunGit(ctx, config.WorkDirFromContext(ctx), "config", "--global", "user.email", email); err != nil {
					return fmt.Errorf("set global user.email: %w", err)
				}
				l.Printf("Set global user.email to %s\n", email)
				return nil
			}

			spec := git.CommandSpec{Subcommand: "config", Args: []string{"user.email", email}, Mutating: true}
			return runBatch(ctx, paths, &f, spec, assumeYes, jsonOutput)
		},
	}

	addScanFlags(cmd, &f)
	cmd.Flags().BoolVar(&global, "global", false, "Set the global user.email instead of per-repository")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not prompt for confirmation")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}
