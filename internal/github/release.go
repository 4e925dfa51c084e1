package github

import (
	"context"
	"fmt"

	"github.com/dxcli/dx/internal/cmd"
)

// ReleaseParams contains parameters for creating a GitHub release.
type ReleaseParams struct {
	Tag           string
	Title         string
	NotesFile     string // path to a notes file; empty with GenerateNotes set lets gh write them
	GenerateNotes bool
	Prerelease    bool
}

// CreateRelease creates a release for an existing tag and returns its URL.
func CreateRelease(ctx context.Context, dir string, params ReleaseParams) (string, error) {
	if params.Tag == "" {
		return "", fmt.Errorf("release tag must not be empty")
	}

	args := []string{"release", "create", params.Tag}
	if params.Title != "" {
		args = append(args, "--title", params.Title)
	}
	if params.NotesFile != "" {
		args = append(args, "--notes-file", params.NotesFile)
	} else if params.GenerateNotes {
		args = append(args, "--generate-notes")
	}
	if params.Prerelease {
		args = append(args, "--prerelease")
	}

	out, err := cmd.OutputContext(ctx, dir, "gh", args...)
	if err != nil {
		return "", fmt.Errorf("gh release create: %w", err)
	}

	url := lastLine(string(out))
	if url == "" {
		return "", fmt.Errorf("gh release create returned no URL")
	}
	return url, nil
}
