package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/dxcli/dx/internal/git"
)

func TestFormatStatusTable(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		if got := FormatStatusTable(nil); got != "" {
			t.Errorf("FormatStatusTable(nil) = %q, want empty", got)
		}
	})

	t.Run("rows rendered", func(t *testing.T) {
		t.Parallel()
		out := FormatStatusTable([]git.RepoStatus{
			{Name: "api", Branch: "main", Dirty: true, HasUpstream: true, Ahead: 2, LastCommit: "fix handler", LastAge: "2 days ago"},
			{Name: "web", Branch: "feature/login", HasUpstream: true, LastCommit: "add form"},
		})
		for _, want := range []string{"REPO", "api", "web", "dirty", "clean", "↑2", "fix handler"} {
			if !strings.Contains(out, want) {
				t.Errorf("table output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("error row", func(t *testing.T) {
		t.Parallel()
		out := FormatStatusTable([]git.RepoStatus{
			{Name: "broken", Err: errors.New("not a git repository")},
		})
		if !strings.Contains(out, "error") {
			t.Errorf("table output missing error state:\n%s", out)
		}
	})
}

func TestFormatSync(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		st   git.RepoStatus
		want string
	}{
		{"no upstream", git.RepoStatus{}, "-"},
		{"in sync", git.RepoStatus{HasUpstream: true}, "ok"},
		{"ahead", git.RepoStatus{HasUpstream: true, Ahead: 3}, "↑3"},
		{"behind", git.RepoStatus{HasUpstream: true, Behind: 2}, "↓2"},
		{"diverged", git.RepoStatus{HasUpstream: true, Ahead: 1, Behind: 4}, "↑1 ↓4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := formatSync(tt.st); got != tt.want {
				t.Errorf("formatSync = %q, want %q", got, tt.want)
			}
		})
	}
}
