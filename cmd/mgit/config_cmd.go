package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"mgit/internal/config"
	"mgit/internal/git"
	"mgit/internal/log"
	"mgit/internal/output"
	"mgit/internal/ui"
)

func newConfigCmd() *cobra.Command {
	var (
		scope      string
		file       string
		showOrigin bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "config [path]",
		Short:   "List git configuration as structured entries",
		GroupID: GroupInspect,
		Args:    cobra.MaximumNArgs(1),
		Long: `Lists git configuration entries split into scope, category, name and
value. The category is everything before the first dot of the key;
the value keeps every "=" after the first, so aliases survive intact.

--scope limits the listing to local, global or system configuration;
--file reads a specific configuration file instead.`,
		Example: `  mgit config                   # Effective config of this repository
  mgit config --scope global
  mgit config --file ./.gitconfig --show-origin
  mgit config --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			dir := config.WorkDirFromContext(ctx)
			if len(args) == 1 {
				abs, err := filepath.Abs(args[0])
				if err != nil {
					return usagef("resolve %s: %v", args[0], err)
				}
				dir = abs
			}

			listArgs := []string{"config", "--list"}
			entryScope := "all"
			switch scope {
			case "":
			case "local", "global", "system":
				listArgs = append(listArgs, "--"+scope)
				entryScope = scope
			default:
				return usagef("invalid --scope %q (want local, global or system)", scope)
			}
			if file != "" {
				if scope != "" {
					return usagef("--scope and --file are mutually exclusive")
				}
				listArgs = append(listArgs, "--file", file)
				entryScope = "file"
			}
			if showOrigin {
				listArgs = append(listArgs, "--show-origin")
			}

			raw, err := git.OutputGit(ctx, dir, listArgs...)
			if err != nil {
				return fmt.Errorf("git config --list: %w", err)
			}

			entries, skipped := git.ParseConfigList(string(raw), entryScope, showOrigin)
			for _, line := range skipped {
				l.Debug("skipped malformed config line", "line", line)
			}

			if jsonOutput {
				data, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal entries: %w", err)
				}
				out.Println(string(data))
				return nil
			}

			headers := []string{"SCOPE", "CATEGORY", "NAME", "VALUE"}
			if showOrigin {
				headers = append(headers, "FILE")
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				row := []string{e.Scope, e.Category, e.Name, e.Setting}
				if showOrigin {
					row = append(row, e.SourceFile)
				}
				rows = append(rows, row)
			}
			out.Print(ui.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "Limit to one scope: local, global or system")
	cmd.Flags().StringVar(&file, "file", "", "Read this configuration file instead")
	cmd.Flags().BoolVar(&showOrigin, "show-origin", false, "Include the file each entry comes from")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
