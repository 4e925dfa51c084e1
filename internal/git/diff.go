package git

import (
	"context"
	"fmt"
	"strings"
)

// StagedDiff returns the diff of the index against HEAD.
func StagedDiff(ctx context.Context, repoPath string) (string, error) {
	out, err := outputGit(ctx, repoPath, "diff", "--cached")
	if err != nil {
		return "", fmt.Errorf("get staged diff: %w", err)
	}
	return string(out), nil
}

// DiffAgainst returns the diff of HEAD against the merge base with base,
// i.e. the changes this branch introduces.
func DiffAgainst(ctx context.Context, repoPath, base string) (string, error) {
	out, err := outputGit(ctx, repoPath, "diff", base+"...HEAD")
	if err != nil {
		return "", fmt.Errorf("get diff against %s: %w", base, err)
	}
	return string(out), nil
}

// CommitLog returns the one-line commit subjects on HEAD that are not on base,
// newest first.
func CommitLog(ctx context.Context, repoPath, base string) ([]string, error) {
	out, err := outputGit(ctx, repoPath, "log", "--format=%s", base+"..HEAD")
	if err != nil {
		return nil, fmt.Errorf("get commit log: %w", err)
	}
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// Commit creates a commit with the given message. Amend replaces the
// previous commit instead.
func Commit(ctx context.Context, repoPath, message string, amend bool) error {
	args := []string{"commit", "-m", message}
	if amend {
		args = append(args, "--amend")
	}
	if err := runGit(ctx, repoPath, args...); err != nil {
		return fmt.Errorf("git commit: %w", err)
	}
	return nil
}

// DefaultBranch returns the default branch of origin (usually main or master).
// Falls back to "main" when origin/HEAD is not set.
func DefaultBranch(ctx context.Context, repoPath string) string {
	out, err := outputGit(ctx, repoPath, "symbolic-ref", "refs/remotes/origin/HEAD", "--short")
	if err != nil {
		return "main"
	}
	ref := strings.TrimSpace(string(out))
	return strings.TrimPrefix(ref, "origin/")
}
