package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/dxcli/dx/internal/git"
	"github.com/dxcli/dx/internal/github"
	"github.com/dxcli/dx/internal/llm"
	"github.com/dxcli/dx/internal/log"
	"github.com/dxcli/dx/internal/output"
	"github.com/dxcli/dx/internal/ui"
)

func newPrCmd() *cobra.Command {
	var (
		base  string
		title string
		draft bool
		fill  bool
	)

	cmd := &cobra.Command{
		Use:     "pr",
		Short:   "Create a pull request with a generated description",
		GroupID: GroupGitHub,
		Args:    cobra.NoArgs,
		Long: `Create a pull request for the current branch via gh.

The diff against the base branch and the branch's commit log are sent
to the configured chat-completion endpoint, and the generated title and
body are used for the PR. Use --fill to skip generation and let gh
derive title and body from the commits. The PR URL is copied to the
clipboard.`,
		Example: `  dx pr                        # Generate title/body, open against default branch
  dx pr --base develop --draft
  dx pr --fill                 # No LLM call, gh --fill`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if err := github.CheckGH(); err != nil {
				return err
			}

			branch, err := git.CurrentBranch(ctx, ".")
			if err != nil {
				return err
			}
			if existing, err := github.GetPRForBranch(ctx, ".", branch); err == nil && existing != nil {
				return fmt.Errorf("branch %s already has an open PR: %s", branch, existing.URL)
			}

			params := github.PRParams{Base: base, Draft: draft}

			if fill {
				params.Fill = true
			} else {
				prTitle, prBody, err := generatePRDescription(cmd, base, title)
				if err != nil {
					return err
				}
				params.Title = prTitle
				params.Body = prBody
			}

			url, err := github.CreatePR(ctx, ".", params)
			if err != nil {
				return err
			}

			if err := clipboard.WriteAll(url); err != nil {
				l.Debug("clipboard write failed", "error", err)
			}

			out.Println(ui.Success("Created " + url) + ui.Muted(" (copied to clipboard)"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&base, "base", "B", "", "Base branch (default: repo default branch)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "PR title (body is still generated)")
	cmd.Flags().BoolVarP(&draft, "draft", "d", false, "Create as draft")
	cmd.Flags().BoolVar(&fill, "fill", false, "Let gh fill title/body from commits instead of generating them")

	return cmd
}

// generatePRDescription builds a title and body from the branch diff via the
// LLM endpoint. A title passed on the command line wins over the generated one.
func generatePRDescription(cmd *cobra.Command, base, title string) (string, string, error) {
	ctx := cmd.Context()
	l := log.FromContext(ctx)

	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return "", "", err
	}

	if base == "" {
		base = git.DefaultBranch(ctx, ".")
	}

	diff, err := git.DiffAgainst(ctx, ".", base)
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(diff) == "" {
		return "", "", fmt.Errorf("no changes against %s", base)
	}
	commits, err := git.CommitLog(ctx, ".", base)
	if err != nil {
		return "", "", err
	}

	l.Debug("generating PR description", "base", base, "commits", len(commits))

	spin := ui.NewSpinner("Generating PR description...")
	spin.Start()
	system, user := llm.PRDescriptionPrompt(diff, commits)
	text, err := client.Complete(ctx, system, user)
	spin.Stop()
	if err != nil {
		return "", "", fmt.Errorf("generate description: %w", err)
	}

	genTitle, body := llm.SplitTitleBody(text)
	if title != "" {
		genTitle = title
	}
	return genTitle, body, nil
}
