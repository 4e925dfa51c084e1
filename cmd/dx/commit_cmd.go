package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dxcli/dx/internal/git"
	"github.com/dxcli/dx/internal/llm"
	"github.com/dxcli/dx/internal/output"
	"github.com/dxcli/dx/internal/ui"
)

func newCommitCmd() *cobra.Command {
	var amend bool

	cmd := &cobra.Command{
		Use:     "commit",
		Short:   "Commit staged changes with a generated message",
		GroupID: GroupGit,
		Args:    cobra.NoArgs,
		Long: `Send the staged diff to the configured chat-completion endpoint, show
the proposed commit message, and commit with it after confirmation.`,
		Example: `  git add -p && dx commit
  dx commit --amend`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			client, err := llm.NewClient(cfg.LLM)
			if err != nil {
				return err
			}

			diff, err := git.StagedDiff(ctx, ".")
			if err != nil {
				return err
			}
			if strings.TrimSpace(diff) == "" {
				return fmt.Errorf("nothing staged: stage changes with git add first")
			}

			spin := ui.NewSpinner("Generating commit message...")
			spin.Start()
			system, user := llm.CommitMessagePrompt(diff)
			message, err := client.Complete(ctx, system, user)
			spin.Stop()
			if err != nil {
				return fmt.Errorf("generate message: %w", err)
			}
			message = strings.TrimSpace(message)
			if message == "" {
				return fmt.Errorf("endpoint returned an empty message")
			}

			out.Println(message)
			out.Println()

			res, err := ui.Confirm("Commit with this message?")
			if err != nil {
				return err
			}
			if !res.Confirmed {
				return fmt.Errorf("aborted")
			}

			if err := git.Commit(ctx, ".", message, amend); err != nil {
				return err
			}
			out.Println(ui.Success("Committed"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&amend, "amend", false, "Amend the previous commit instead of creating a new one")

	return cmd
}
