//go:build integration

package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/dxcli/dx/internal/log"
)

func logCtx() context.Context {
	l := log.New(&bytes.Buffer{}, false, false)
	return log.WithLogger(context.Background(), l)
}

// setupTestRepo creates a git repo with an initial commit in dir/name.
func setupTestRepo(t *testing.T, dir, name string) string {
	t.Helper()

	repoPath := filepath.Join(dir, name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	cmds := [][]string{
		{"git", "init"},
		{"git", "config", "user.email", "test@test.com"},
		{"git", "config", "user.name", "Test User"},
		{"git", "config", "commit.gpgsign", "false"},
	}
	for _, args := range cmds {
		c := exec.Command(args[0], args[1:]...)
		c.Dir = repoPath
		if out, err := c.CombinedOutput(); err != nil {
			t.Fatalf("failed to run %v: %v\n%s", args, err, out)
		}
	}

	readmePath := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readmePath, []byte("# "+name+"\n"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}

	cmds = [][]string{
		{"git", "add", "README.md"},
		{"git", "commit", "-m", "Initial commit"},
	}
	for _, args := range cmds {
		c := exec.Command(args[0], args[1:]...)
		c.Dir = repoPath
		if out, err := c.CombinedOutput(); err != nil {
			t.Fatalf("failed to run %v: %v\n%s", args, err, out)
		}
	}

	return repoPath
}

func TestStatus(t *testing.T) {
	ctx := logCtx()
	repo := setupTestRepo(t, t.TempDir(), "myrepo")

	st := Status(ctx, repo)
	if st.Err != nil {
		t.Fatalf("Status error = %v", st.Err)
	}
	if st.Name != "myrepo" {
		t.Errorf("Name = %q, want myrepo", st.Name)
	}
	if st.Dirty {
		t.Error("fresh repo reported dirty")
	}
	if st.LastCommit != "Initial commit" {
		t.Errorf("LastCommit = %q, want %q", st.LastCommit, "Initial commit")
	}
	if st.HasUpstream {
		t.Error("repo without remote reported an upstream")
	}
}

func TestIsDirty(t *testing.T) {
	ctx := logCtx()
	repo := setupTestRepo(t, t.TempDir(), "dirtyrepo")

	dirty, err := IsDirty(ctx, repo)
	if err != nil {
		t.Fatalf("IsDirty error = %v", err)
	}
	if dirty {
		t.Error("clean repo reported dirty")
	}

	if err := os.WriteFile(filepath.Join(repo, "new.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	dirty, err = IsDirty(ctx, repo)
	if err != nil {
		t.Fatalf("IsDirty error = %v", err)
	}
	if !dirty {
		t.Error("repo with untracked file reported clean")
	}
}

func TestDiscoverRepos(t *testing.T) {
	dir := t.TempDir()
	setupTestRepo(t, dir, "beta")
	setupTestRepo(t, dir, "alpha")
	if err := os.MkdirAll(filepath.Join(dir, "not-a-repo"), 0755); err != nil {
		t.Fatal(err)
	}

	repos, err := DiscoverRepos(dir)
	if err != nil {
		t.Fatalf("DiscoverRepos error = %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("DiscoverRepos returned %d repos, want 2: %v", len(repos), repos)
	}
	if filepath.Base(repos[0]) != "alpha" || filepath.Base(repos[1]) != "beta" {
		t.Errorf("repos not sorted by name: %v", repos)
	}
}

func TestTagLifecycle(t *testing.T) {
	ctx := logCtx()
	repo := setupTestRepo(t, t.TempDir(), "tagrepo")

	if TagExists(ctx, repo, "v1.0.0") {
		t.Error("TagExists = true before tag created")
	}
	if err := CreateTag(ctx, repo, "v1.0.0", "release v1.0.0"); err != nil {
		t.Fatalf("CreateTag error = %v", err)
	}
	if !TagExists(ctx, repo, "v1.0.0") {
		t.Error("TagExists = false after tag created")
	}
}

func TestStagedDiffAndCommit(t *testing.T) {
	ctx := logCtx()
	repo := setupTestRepo(t, t.TempDir(), "diffrepo")

	if err := os.WriteFile(filepath.Join(repo, "a.txt"), []byte("hello\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c := exec.Command("git", "add", "a.txt")
	c.Dir = repo
	if out, err := c.CombinedOutput(); err != nil {
		t.Fatalf("git add: %v\n%s", err, out)
	}

	diff, err := StagedDiff(ctx, repo)
	if err != nil {
		t.Fatalf("StagedDiff error = %v", err)
	}
	if diff == "" {
		t.Fatal("StagedDiff returned empty diff for staged file")
	}

	if err := Commit(ctx, repo, "add a.txt", false); err != nil {
		t.Fatalf("Commit error = %v", err)
	}

	diff, err = StagedDiff(ctx, repo)
	if err != nil {
		t.Fatalf("StagedDiff error = %v", err)
	}
	if diff != "" {
		t.Errorf("StagedDiff after commit = %q, want empty", diff)
	}
}
