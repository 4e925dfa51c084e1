package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/dxcli/dx/internal/cmd"
)

// IssueParams contains parameters for creating an issue.
type IssueParams struct {
	Title  string
	Body   string
	Labels []string
}

// CreateIssue creates an issue in the repository the current directory
// belongs to and returns its URL.
func CreateIssue(ctx context.Context, dir string, params IssueParams) (string, error) {
	if params.Title == "" {
		return "", fmt.Errorf("issue title must not be empty")
	}

	args := []string{"issue", "create", "--title", params.Title, "--body", params.Body}
	for _, label := range params.Labels {
		args = append(args, "--label", label)
	}

	// gh prints the created issue URL on stdout
	out, err := cmd.OutputContext(ctx, dir, "gh", args...)
	if err != nil {
		return "", fmt.Errorf("gh issue create: %w", err)
	}

	url := lastLine(string(out))
	if url == "" {
		return "", fmt.Errorf("gh issue create returned no URL")
	}
	return url, nil
}

// lastLine returns the last non-empty line of s.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
