package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dxcli/dx/internal/git"
	"github.com/dxcli/dx/internal/github"
	"github.com/dxcli/dx/internal/log"
	"github.com/dxcli/dx/internal/output"
	"github.com/dxcli/dx/internal/ui"
)

func newReleaseCmd() *cobra.Command {
	var (
		title      string
		notesFile  string
		prerelease bool
	)

	cmd := &cobra.Command{
		Use:     "release <version>",
		Short:   "Tag a release and publish it on GitHub",
		GroupID: GroupGitHub,
		Args:    cobra.ExactArgs(1),
		Long: `Create an annotated tag for a version, push it, and create a GitHub
release for it.

The version must be of the form vMAJOR.MINOR.PATCH. The command refuses
to run on a dirty worktree or when the tag already exists. Release
notes are generated by GitHub unless --notes-file is given.`,
		Example: `  dx release v1.4.0
  dx release v2.0.0 --prerelease
  dx release v1.4.1 --notes-file CHANGES.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			tag := args[0]
			if !git.ValidVersion(tag) {
				return fmt.Errorf("invalid version %q: expected vMAJOR.MINOR.PATCH (e.g. v1.2.3)", tag)
			}

			if err := github.CheckGH(); err != nil {
				return err
			}

			dirty, err := git.IsDirty(ctx, ".")
			if err != nil {
				return err
			}
			if dirty {
				return fmt.Errorf("worktree has uncommitted changes, commit or stash them first")
			}
			if git.TagExists(ctx, ".", tag) {
				return fmt.Errorf("tag %s already exists", tag)
			}

			if err := git.CreateTag(ctx, ".", tag, "Release "+tag); err != nil {
				return err
			}
			l.Printf("Tagged %s\n", tag)

			if err := git.PushTag(ctx, ".", tag); err != nil {
				return err
			}
			l.Printf("Pushed %s\n", tag)

			releaseTitle := title
			if releaseTitle == "" {
				releaseTitle = tag
			}
			url, err := github.CreateRelease(ctx, ".", github.ReleaseParams{
				Tag:           tag,
				Title:         releaseTitle,
				NotesFile:     notesFile,
				GenerateNotes: notesFile == "",
				Prerelease:    prerelease,
			})
			if err != nil {
				return err
			}

			out.Println(ui.Success("Released " + url))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Release title (default: the tag)")
	cmd.Flags().StringVar(&notesFile, "notes-file", "", "Read release notes from a file instead of generating them")
	cmd.Flags().BoolVar(&prerelease, "prerelease", false, "Mark the release as a prerelease")

	return cmd
}
