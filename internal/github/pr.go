package github

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dxcli/dx/internal/cmd"
)

// PRParams contains parameters for creating a pull request.
type PRParams struct {
	Title string
	Body  string
	Base  string // base branch (empty = repo default)
	Draft bool
	Fill  bool // let gh derive title/body from commits
}

// CreatePR creates a pull request for the current branch and returns its URL.
func CreatePR(ctx context.Context, dir string, params PRParams) (string, error) {
	args := []string{"pr", "create"}
	if params.Fill {
		args = append(args, "--fill")
	} else {
		if params.Title == "" {
			return "", fmt.Errorf("PR title must not be empty")
		}
		args = append(args, "--title", params.Title, "--body", params.Body)
	}
	if params.Base != "" {
		args = append(args, "--base", params.Base)
	}
	if params.Draft {
		args = append(args, "--draft")
	}

	out, err := cmd.OutputContext(ctx, dir, "gh", args...)
	if err != nil {
		return "", fmt.Errorf("gh pr create: %w", err)
	}

	url := lastLine(string(out))
	if url == "" {
		return "", fmt.Errorf("gh pr create returned no URL")
	}
	return url, nil
}

// PRForBranch holds the fields dx cares about when checking for an
// existing PR.
type PRForBranch struct {
	Number int    `json:"number"`
	State  string `json:"state"` // OPEN, MERGED, CLOSED
	URL    string `json:"url"`
}

// GetPRForBranch fetches PR info for a branch. Returns nil when the branch
// has no PR.
func GetPRForBranch(ctx context.Context, dir, branch string) (*PRForBranch, error) {
	out, err := cmd.OutputContext(ctx, dir, "gh", "pr", "list",
		"--head", branch,
		"--state", "all",
		"--json", "number,state,url",
		"--limit", "1")
	if err != nil {
		return nil, fmt.Errorf("gh pr list: %w", err)
	}

	var prs []PRForBranch
	if err := json.Unmarshal(out, &prs); err != nil {
		return nil, fmt.Errorf("failed to parse gh output: %w", err)
	}
	if len(prs) == 0 {
		return nil, nil
	}
	return &prs[0], nil
}
