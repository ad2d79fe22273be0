package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"mgit/internal/log"
	"mgit/internal/output"
)

func newFindCmd() *cobra.Command {
	var (
		f          scanFlags
		jsonOutput bool
		copyPaths  bool
	)

	cmd := &cobra.Command{
		Use:     "find [path...]",
		Short:   "Find git repositories under the given paths",
		Aliases: []string{"ls"},
		GroupID: GroupInspect,
		Long: `Finds git repository roots under the given paths (or the configured
scan directory). A repository root is a directory containing .git.

Without --recurse only the paths themselves are checked; with it the
whole subtree is walked, bounded by --depth. Hidden directories and
common dependency directories (node_modules, vendor, ...) are
skipped.`,
		Example: `  mgit find                  # Check the current directory
  mgit find --recurse ~/src  # Walk ~/src for repositories
  mgit find -r backend       # Only repositories named backend
  mgit find --recurse --copy # Copy the paths to the clipboard`,
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

			if jsonOutput {
				data, err := json.MarshalIndent(repos, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal repositories: %w", err)
				}
				out.Println(string(data))
			} else {
				for _, repo := range repos {
					out.Println(repo)
				}
			}

			if copyPaths {
				if err := clipboard.WriteAll(strings.Join(repos, "\n")); err != nil {
					l.Printf("Warning: copy to clipboard failed: %v\n", err)
				} else {
					l.Printf("Copied %d path(s) to clipboard\n", len(repos))
				}
			}

			return nil
		},
	}

	addScanFlags(cmd, &f)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&copyPaths, "copy", false, "Copy the discovered paths to the clipboard")

	return cmd
}
