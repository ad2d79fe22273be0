package main

import (
	"github.com/spf13/cobra"

	"mgit/internal/config"
	"mgit/internal/log"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Write a default configuration file",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Writes a commented default configuration to
~/.config/mgit/config.toml. An existing file is kept unless --force
is given.`,
		Example: `  mgit init
  mgit init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := log.FromContext(cmd.Context())

			path, err := config.Init(force)
			if err != nil {
				return err
			}

			l.Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	return cmd
}
