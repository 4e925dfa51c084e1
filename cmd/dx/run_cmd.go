package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dxcli/dx/internal/agent"
	"github.com/dxcli/dx/internal/log"
	"github.com/dxcli/dx/internal/output"
	"github.com/dxcli/dx/internal/pool"
	"github.com/dxcli/dx/internal/ui"
)

func newRunCmd() *cobra.Command {
	var (
		concurrency int
		interactive bool
	)

	cmd := &cobra.Command{
		Use:     "run <glob> <prompt>",
		Short:   "Run the coding agent over many files in parallel",
		GroupID: GroupAgent,
		Args:    cobra.ExactArgs(2),
		Long: `Invoke the coding-agent CLI once per file matching a glob pattern,
with a bounded number of concurrent invocations.

The prompt is a template; every occurrence of {file} is replaced with
the file's path. Each invocation is independent: a failing file never
stops the others. After all files finish a summary is printed and,
when some failed, you are offered a retry of just the failed subset.`,
		Example: `  dx run 'src/*.cs' 'Add XML doc comments to {file}'
  dx run '*.md' 'Fix typos in {file}' -c 3
  dx run 'internal/*.go' 'Translate comments in {file} to English' -i`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			pattern, template := args[0], args[1]

			if !strings.Contains(template, agent.PromptToken) {
				l.Printf("Warning: prompt contains no %s token, every invocation gets the same prompt\n", agent.PromptToken)
			}

			ag := agent.New(cfg.Agent)
			if err := ag.Check(); err != nil {
				return err
			}

			files, err := filepath.Glob(pattern)
			if err != nil {
				return fmt.Errorf("bad glob %q: %w", pattern, err)
			}
			if len(files) == 0 {
				return fmt.Errorf("no files match %q", pattern)
			}

			if interactive {
				res, err := ui.MultiSelect(fmt.Sprintf("Select files (%d matched)", len(files)), files)
				if err != nil {
					return err
				}
				if res.Cancelled {
					return fmt.Errorf("cancelled")
				}
				if len(res.Selected) == 0 {
					return fmt.Errorf("no files selected")
				}
				files = res.Selected
			}

			tasks := buildTasks(files, template)
			l.Debug("starting fan-out", "files", len(tasks), "concurrency", concurrency)

			runner := func(ctx context.Context, t *pool.Task) ([]byte, error) {
				return ag.RunQuiet(ctx, ".", t.Prompt)
			}

			summary := runTasks(ctx, tasks, concurrency, runner)
			out.Print(formatSummary(summary))

			// Retry loop over the failed subset
			for summary.Failed > 0 && isatty.IsTerminal(os.Stdin.Fd()) {
				res, err := ui.Confirm(fmt.Sprintf("Retry %d failed files?", summary.Failed))
				if err != nil || !res.Confirmed {
					break
				}

				retry := summary.FailedTasks
				for _, t := range retry {
					t.Reset()
				}
				runTasks(ctx, retry, concurrency, runner)
				summary = pool.Summarize(tasks)
				out.Print(formatSummary(summary))
			}

			if summary.Failed > 0 {
				return &exitError{
					code: exitTasksFailed,
					err:  fmt.Errorf("%d of %d files failed", summary.Failed, summary.Total),
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "Maximum concurrent agent invocations (default: agent.concurrency from config)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick a subset of the matched files")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if concurrency < 1 {
			concurrency = cfg.Agent.Concurrency
		}
	}

	return cmd
}

// buildTasks creates one pool task per file with the rendered prompt.
func buildTasks(files []string, template string) []*pool.Task {
	tasks := make([]*pool.Task, len(files))
	for i, f := range files {
		tasks[i] = pool.NewTask(f, agent.RenderPrompt(template, f))
	}
	return tasks
}

// runTasks runs tasks through the pool with a progress bar on a TTY.
func runTasks(ctx context.Context, tasks []*pool.Task, limit int, run pool.Runner) pool.Summary {
	l := log.FromContext(ctx)

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return pool.Run(ctx, tasks, limit, run, func(t *pool.Task) {
			l.Printf("%s: %s\n", t.File, t.Status())
		})
	}

	bar := ui.NewProgressBar(len(tasks), "")
	bar.Start()
	defer bar.Stop()

	done := 0
	return pool.Run(ctx, tasks, limit, run, func(t *pool.Task) {
		done++
		bar.SetProgress(done, t.File)
	})
}

// formatSummary renders the end-of-run report.
func formatSummary(s pool.Summary) string {
	var sb strings.Builder
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Total:   %d\n", s.Total)
	fmt.Fprintf(&sb, "Success: %s\n", ui.Success(fmt.Sprintf("%d", s.Succeeded)))
	fmt.Fprintf(&sb, "Failed:  %s\n", ui.Error(fmt.Sprintf("%d", s.Failed)))

	for _, t := range s.FailedTasks {
		fmt.Fprintf(&sb, "  %s: %s\n", t.File, ui.Error(failReason(t)))
	}
	return sb.String()
}

// failReason picks the most useful single line to show for a failed task.
func failReason(t *pool.Task) string {
	if out := strings.TrimSpace(t.Output()); out != "" {
		lines := strings.Split(out, "\n")
		return strings.TrimSpace(lines[len(lines)-1])
	}
	if err := t.Err(); err != nil {
		return err.Error()
	}
	return "unknown error"
}
