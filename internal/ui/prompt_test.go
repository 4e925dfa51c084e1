package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyPress(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+a":
		return tea.KeyMsg{Type: tea.KeyCtrlA}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func TestConfirmModel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key           string
		wantConfirmed bool
		wantCancelled bool
	}{
		{"y", true, false},
		{"Y", true, false},
		{"n", false, false},
		{"N", false, false},
		{"enter", false, false}, // default is no
		{"esc", false, true},
		{"q", false, true},
		{"ctrl+c", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			m := confirmModel{prompt: "Retry failed tasks?"}
			updated, _ := m.Update(keyPress(tt.key))
			got := updated.(confirmModel)
			if !got.done {
				t.Fatalf("key %q did not finish the prompt", tt.key)
			}
			if got.confirmed != tt.wantConfirmed {
				t.Errorf("confirmed = %v, want %v", got.confirmed, tt.wantConfirmed)
			}
			if got.cancelled != tt.wantCancelled {
				t.Errorf("cancelled = %v, want %v", got.cancelled, tt.wantCancelled)
			}
		})
	}
}

func TestConfirmModel_ViewHiddenWhenDone(t *testing.T) {
	t.Parallel()

	m := confirmModel{prompt: "go?", done: true}
	if got := m.View(); got != "" {
		t.Errorf("View after done = %q, want empty", got)
	}
}
