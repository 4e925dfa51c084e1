package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// RepoStatus is one row of the status dashboard.
type RepoStatus struct {
	Name        string
	Path        string
	Branch      string
	Dirty       bool
	Ahead       int
	Behind      int
	HasUpstream bool
	LastCommit  string // subject of HEAD commit
	LastAge     string // relative age, e.g. "2 days ago"
	Err         error  // set when the repo could not be inspected
}

// DiscoverRepos returns the git repositories directly under dir,
// sorted by name. A repository is a directory containing .git
// (directory or worktree/submodule file).
func DiscoverRepos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read repo dir: %w", err)
	}

	var repos []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
			repos = append(repos, path)
		}
	}
	sort.Strings(repos)
	return repos, nil
}

// Status inspects a repository and returns its dashboard row.
func Status(ctx context.Context, repoPath string) RepoStatus {
	st := RepoStatus{
		Name: filepath.Base(repoPath),
		Path: repoPath,
	}

	branch, err := CurrentBranch(ctx, repoPath)
	if err != nil {
		st.Err = err
		return st
	}
	st.Branch = branch

	dirty, err := IsDirty(ctx, repoPath)
	if err != nil {
		st.Err = err
		return st
	}
	st.Dirty = dirty

	ahead, behind, hasUpstream := aheadBehind(ctx, repoPath)
	st.Ahead = ahead
	st.Behind = behind
	st.HasUpstream = hasUpstream

	out, err := outputGit(ctx, repoPath, "log", "-1", "--format=%s%x00%cr")
	if err == nil {
		parts := strings.SplitN(strings.TrimRight(string(out), "\n"), "\x00", 2)
		st.LastCommit = parts[0]
		if len(parts) == 2 {
			st.LastAge = parts[1]
		}
	}

	return st
}

// CurrentBranch returns the checked-out branch name, or "HEAD" when detached.
func CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	out, err := outputGit(ctx, repoPath, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("get current branch: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsDirty reports whether the worktree has uncommitted changes
// (staged, unstaged, or untracked).
func IsDirty(ctx context.Context, repoPath string) (bool, error) {
	out, err := outputGit(ctx, repoPath, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("get status: %w", err)
	}
	return len(strings.TrimSpace(string(out))) > 0, nil
}

// aheadBehind returns the commit counts relative to the upstream branch.
// hasUpstream is false when no upstream is configured.
func aheadBehind(ctx context.Context, repoPath string) (ahead, behind int, hasUpstream bool) {
	out, err := outputGit(ctx, repoPath, "rev-list", "--left-right", "--count", "@{upstream}...HEAD")
	if err != nil {
		return 0, 0, false
	}
	fields := strings.Fields(string(out))
	if len(fields) != 2 {
		return 0, 0, false
	}
	behind, _ = strconv.Atoi(fields[0])
	ahead, _ = strconv.Atoi(fields[1])
	return ahead, behind, true
}

// GetOriginURL returns the origin remote URL for a repository.
func GetOriginURL(ctx context.Context, repoPath string) (string, error) {
	out, err := outputGit(ctx, repoPath, "remote", "get-url", "origin")
	if err != nil {
		return "", fmt.Errorf("get origin URL: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
