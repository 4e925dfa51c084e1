package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/dxcli/dx/internal/github"
	"github.com/dxcli/dx/internal/log"
	"github.com/dxcli/dx/internal/output"
	"github.com/dxcli/dx/internal/screenshot"
	"github.com/dxcli/dx/internal/ui"
)

func newIssueCmd() *cobra.Command {
	var (
		body     string
		labels   []string
		withShot bool
	)

	cmd := &cobra.Command{
		Use:     "issue <title>",
		Short:   "Create a GitHub issue, optionally with a clipboard screenshot",
		GroupID: GroupGitHub,
		Args:    cobra.ExactArgs(1),
		Long: `Create an issue in the current repository via gh.

With --screenshot the image currently on the OS clipboard is saved to a
temp file, uploaded as a gist, and embedded at the end of the issue
body. The created issue URL is copied to the clipboard.`,
		Example: `  dx issue "Login fails on Safari"
  dx issue "Crash on startup" -b "Stack trace attached" --screenshot
  dx issue "Flaky test" -l bug -l ci`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if err := github.CheckGH(); err != nil {
				return err
			}

			title := args[0]

			if withShot {
				embed, err := uploadClipboardScreenshot(cmd, title)
				if err != nil {
					return err
				}
				if body != "" {
					body += "\n\n"
				}
				body += embed
			}

			url, err := github.CreateIssue(ctx, ".", github.IssueParams{
				Title:  title,
				Body:   body,
				Labels: labels,
			})
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

	cmd.Flags().StringVarP(&body, "body", "b", "", "Issue body")
	cmd.Flags().StringSliceVarP(&labels, "label", "l", nil, "Label to apply (repeatable)")
	cmd.Flags().BoolVarP(&withShot, "screenshot", "s", false, "Attach the image on the clipboard")

	return cmd
}

// uploadClipboardScreenshot saves the clipboard image, uploads it as a gist
// and returns a Markdown image embed for the raw file URL.
func uploadClipboardScreenshot(cmd *cobra.Command, description string) (string, error) {
	ctx := cmd.Context()
	l := log.FromContext(ctx)

	path := screenshot.TempPath()
	if err := screenshot.FromClipboard(ctx, path); err != nil {
		return "", err
	}
	defer os.Remove(path)

	l.Debug("captured clipboard image", "path", path)

	gistURL, err := github.UploadGist(ctx, path, description)
	if err != nil {
		return "", fmt.Errorf("upload screenshot: %w", err)
	}

	raw := github.GistRawURL(gistURL, filepath.Base(path))
	return fmt.Sprintf("![screenshot](%s)", raw), nil
}
