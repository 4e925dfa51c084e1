package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/dxcli/dx/internal/git"
)

// FormatStatusTable renders the status dashboard rows as a table.
func FormatStatusTable(statuses []git.RepoStatus) string {
	if len(statuses) == 0 {
		return ""
	}

	maxRepoWidth := len("REPO")
	maxBranchWidth := len("BRANCH")
	maxStateWidth := len("STATE")
	maxSyncWidth := len("SYNC")
	maxCommitWidth := len("LAST COMMIT")

	type rowData struct {
		repo   string
		branch string
		state  string
		sync   string
		commit string
	}
	var rowsData []rowData

	for _, st := range statuses {
		if st.Err != nil {
			rowsData = append(rowsData, rowData{
				repo:  st.Name,
				state: "error",
				sync:  "-",
			})
			continue
		}

		state := "clean"
		if st.Dirty {
			state = "dirty"
		}

		sync := formatSync(st)

		commit := st.LastCommit
		const maxCommitLen = 50
		if len(commit) > maxCommitLen {
			commit = commit[:maxCommitLen-3] + "..."
		}
		if st.LastAge != "" {
			commit = fmt.Sprintf("%s (%s)", commit, st.LastAge)
		}

		rowsData = append(rowsData, rowData{
			repo:   st.Name,
			branch: st.Branch,
			state:  state,
			sync:   sync,
			commit: commit,
		})
	}

	for _, rd := range rowsData {
		if len(rd.repo) > maxRepoWidth {
			maxRepoWidth = len(rd.repo)
		}
		if len(rd.branch) > maxBranchWidth {
			maxBranchWidth = len(rd.branch)
		}
		if len(rd.state) > maxStateWidth {
			maxStateWidth = len(rd.state)
		}
		if len(rd.sync) > maxSyncWidth {
			maxSyncWidth = len(rd.sync)
		}
		if len(rd.commit) > maxCommitWidth {
			maxCommitWidth = len(rd.commit)
		}
	}

	columns := []table.Column{
		{Title: "REPO", Width: maxRepoWidth + 2},
		{Title: "BRANCH", Width: maxBranchWidth + 2},
		{Title: "STATE", Width: maxStateWidth + 2},
		{Title: "SYNC", Width: maxSyncWidth + 2},
		{Title: "LAST COMMIT", Width: maxCommitWidth},
	}

	var rows []table.Row
	for _, rd := range rowsData {
		rows = append(rows, table.Row{rd.repo, rd.branch, rd.state, rd.sync, rd.commit})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Padding(0)
	s.Cell = lipgloss.NewStyle().Padding(0)
	s.Selected = lipgloss.NewStyle().Padding(0)
	t.SetStyles(s)

	var output strings.Builder
	output.WriteString(t.View())
	output.WriteString("\n")
	return output.String()
}

// formatSync renders the ahead/behind column.
func formatSync(st git.RepoStatus) string {
	if !st.HasUpstream {
		return "-"
	}
	if st.Ahead == 0 && st.Behind == 0 {
		return "ok"
	}
	var parts []string
	if st.Ahead > 0 {
		parts = append(parts, fmt.Sprintf("↑%d", st.Ahead))
	}
	if st.Behind > 0 {
		parts = append(parts, fmt.Sprintf("↓%d", st.Behind))
	}
	return strings.Join(parts, " ")
}
