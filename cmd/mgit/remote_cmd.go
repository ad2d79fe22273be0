package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"mgit/internal/git"
	"mgit/internal/log"
	"mgit/internal/output"
	"mgit/internal/ui"
)

func newRemoteCmd() *cobra.Command {
	var (
		f          scanFlags
		remoteName string
		noQuery    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "remote [path...]",
		Short:   "Show remote details for each repository",
		GroupID: GroupInspect,
		Long: `Runs "git remote show" in every discovered repository and parses the
answer into labelled fields: fetch and push URLs, HEAD branch,
tracked branches.

--no-query skips contacting the remote and reports cached data only.`,
		Example: `  mgit remote --recurse ~/src
  mgit remote --name upstream
  mgit remote --no-query --json`,
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

			showArgs := []string{"show"}
			if noQuery {
				showArgs = append(showArgs, "-n")
			}
			showArgs = append(showArgs, remoteName)

			update, stopProgress := newProgress(l, "git remote show")
			results, err := git.Apply(ctx, repos, git.CommandSpec{Subcommand: "remote", Args: showArgs}, git.ApplyOptions{Progress: update})
			stopProgress()
			if err != nil {
				return err
			}

			failed := 0
			infos := make([]git.RemoteInfo, 0, len(results))
			for _, res := range results {
				if !res.OK() {
					failed++
					l.Printf("Warning: %s: %s\n", res.Repo, res.Summary())
					continue
				}
				infos = append(infos, git.RemoteInfo{Repo: res.Repo, Fields: git.ParseRemoteShow(res.Output)})
			}

			if jsonOutput {
				data, err := json.MarshalIndent(infos, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal remotes: %w", err)
				}
				out.Println(string(data))
			} else {
				rows := make([][]string, 0, len(infos))
				for _, info := range infos {
					rows = append(rows, []string{
						filepath.Base(info.Repo),
						info.Get("Fetch URL"),
						info.Get("HEAD branch"),
					})
				}
				out.Print(ui.RenderTable([]string{"REPOSITORY", "FETCH URL", "HEAD BRANCH"}, rows))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d repositories failed", failed, len(repos))
			}
			return nil
		},
	}

	addScanFlags(cmd, &f)
	cmd.Flags().StringVar(&remoteName, "name", "origin", "Remote to show")
	cmd.Flags().BoolVar(&noQuery, "no-query", false, "Do not contact the remote (cached info only)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
