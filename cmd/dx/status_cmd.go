package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dxcli/dx/internal/config"
	"github.com/dxcli/dx/internal/git"
	"github.com/dxcli/dx/internal/log"
	"github.com/dxcli/dx/internal/output"
	"github.com/dxcli/dx/internal/pool"
	"github.com/dxcli/dx/internal/ui"
)

// RepoStatusDisplay holds repo status for JSON output
type RepoStatusDisplay struct {
	Name        string `json:"name"`
	Branch      string `json:"branch"`
	Dirty       bool   `json:"dirty"`
	Ahead       int    `json:"ahead,omitempty"`
	Behind      int    `json:"behind,omitempty"`
	HasUpstream bool   `json:"has_upstream"`
	LastCommit  string `json:"last_commit,omitempty"`
	LastAge     string `json:"last_age,omitempty"`
	Error       string `json:"error,omitempty"`
}

func newStatusCmd() *cobra.Command {
	var (
		dir        string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show a status dashboard for your repositories",
		GroupID: GroupGit,
		Args:    cobra.NoArgs,
		Long: `Show branch, dirty state, ahead/behind counts and last commit for every
repository under the configured repo directory.

Without a configured repo_dir (and without --dir) only the current
repository is shown. Repositories are inspected in parallel.`,
		Example: `  dx status                   # All repos under repo_dir, or the current one
  dx status --dir ~/src        # Scan a specific directory
  dx status --json             # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			scanDir := dir
			if scanDir == "" {
				scanDir = cfg.RepoDir
			}

			var repos []string
			if scanDir != "" {
				expanded, err := config.ExpandPath(scanDir)
				if err != nil {
					return err
				}
				repos, err = git.DiscoverRepos(expanded)
				if err != nil {
					return fmt.Errorf("scan %s: %w", expanded, err)
				}
				if len(repos) == 0 {
					return fmt.Errorf("no git repositories found under %s", expanded)
				}
			} else {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				if !git.IsInsideRepo(ctx, wd) {
					return fmt.Errorf("not inside a git repository (set repo_dir in the config or pass --dir)")
				}
				repos = []string{wd}
			}

			l.Debug("inspecting repos", "count", len(repos))

			statuses := collectStatuses(ctx, repos)

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(toDisplay(statuses))
			}

			if isatty.IsTerminal(os.Stdout.Fd()) {
				out.Print(ui.FormatStatusTable(statuses))
			} else {
				out.Print(formatStatusPlain(statuses))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory to scan for repositories (default: repo_dir from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// collectStatuses inspects repos in parallel through the task pool.
// Order of the result matches the input order.
func collectStatuses(ctx context.Context, repos []string) []git.RepoStatus {
	statuses := make([]git.RepoStatus, len(repos))
	index := make(map[string]int, len(repos))
	tasks := make([]*pool.Task, len(repos))
	for i, path := range repos {
		index[path] = i
		tasks[i] = pool.NewTask(path, "")
	}

	pool.Run(ctx, tasks, config.DefaultConcurrency, func(ctx context.Context, t *pool.Task) ([]byte, error) {
		st := git.Status(ctx, t.File)
		statuses[index[t.File]] = st
		return nil, st.Err
	}, nil)

	return statuses
}

func toDisplay(statuses []git.RepoStatus) []RepoStatusDisplay {
	displays := make([]RepoStatusDisplay, len(statuses))
	for i, st := range statuses {
		d := RepoStatusDisplay{
			Name:        st.Name,
			Branch:      st.Branch,
			Dirty:       st.Dirty,
			Ahead:       st.Ahead,
			Behind:      st.Behind,
			HasUpstream: st.HasUpstream,
			LastCommit:  st.LastCommit,
			LastAge:     st.LastAge,
		}
		if st.Err != nil {
			d.Error = st.Err.Error()
		}
		displays[i] = d
	}
	return displays
}

// formatStatusPlain renders a tab-separated dashboard for non-TTY output.
func formatStatusPlain(statuses []git.RepoStatus) string {
	var sb strings.Builder
	for _, st := range statuses {
		if st.Err != nil {
			fmt.Fprintf(&sb, "%s\terror\t%v\n", st.Name, st.Err)
			continue
		}
		dirty := "clean"
		if st.Dirty {
			dirty = "dirty"
		}
		sync := "-"
		if st.HasUpstream {
			sync = fmt.Sprintf("+%d/-%d", st.Ahead, st.Behind)
		}
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\t%s\n", st.Name, st.Branch, dirty, sync, st.LastAge)
	}
	return sb.String()
}
