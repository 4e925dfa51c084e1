package github

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dxcli/dx/internal/cmd"
)

// UploadGist uploads a file as a secret gist and returns the gist URL.
func UploadGist(ctx context.Context, path, description string) (string, error) {
	args := []string{"gist", "create", path}
	if description != "" {
		args = append(args, "--desc", description)
	}

	out, err := cmd.OutputContext(ctx, "", "gh", args...)
	if err != nil {
		return "", fmt.Errorf("gh gist create: %w", err)
	}

	url := lastLine(string(out))
	if url == "" {
		return "", fmt.Errorf("gh gist create returned no URL")
	}
	return url, nil
}

// GistRawURL converts a gist page URL into the raw content URL for one of
// its files, suitable for embedding in Markdown.
// https://gist.github.com/user/id + shot.png →
// https://gist.githubusercontent.com/user/id/raw/shot.png
func GistRawURL(gistURL, filename string) string {
	raw := strings.Replace(gistURL, "gist.github.com", "gist.githubusercontent.com", 1)
	return raw + "/raw/" + filepath.Base(filename)
}
