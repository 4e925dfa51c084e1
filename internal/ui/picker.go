package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// MultiSelectResult contains the outcome of a multi-select picker.
type MultiSelectResult struct {
	Selected  []string
	Cancelled bool
}

type pickerModel struct {
	title     string
	options   []string
	filtered  []int // indices into options currently visible
	selected  map[int]bool
	textInput textinput.Model
	cursor    int
	maxHeight int
	done      bool
	cancelled bool
}

func newPickerModel(title string, options []string) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40
	ti.PromptStyle = cursorStyle

	filtered := make([]int, len(options))
	selected := make(map[int]bool, len(options))
	for i := range options {
		filtered[i] = i
		selected[i] = true // everything selected by default
	}

	return pickerModel{
		title:     title,
		options:   options,
		filtered:  filtered,
		selected:  selected,
		textInput: ti,
		maxHeight: 12,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit

		case "enter":
			m.done = true
			return m, tea.Quit

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil

		case "tab":
			if m.cursor < len(m.filtered) {
				idx := m.filtered[m.cursor]
				m.selected[idx] = !m.selected[idx]
			}
			return m, nil

		case "ctrl+a":
			// Toggle all visible: select all unless all are selected
			all := true
			for _, idx := range m.filtered {
				if !m.selected[idx] {
					all = false
					break
				}
			}
			for _, idx := range m.filtered {
				m.selected[idx] = !all
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.filtered = m.filterOptions(m.textInput.Value())
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	return m, cmd
}

func (m pickerModel) filterOptions(query string) []int {
	if query == "" {
		all := make([]int, len(m.options))
		for i := range m.options {
			all[i] = i
		}
		return all
	}
	matches := fuzzy.Find(query, m.options)
	filtered := make([]int, len(matches))
	for i, match := range matches {
		filtered[i] = match.Index
	}
	return filtered
}

func (m pickerModel) View() string {
	if m.done {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.title)
	sb.WriteString("\n")
	sb.WriteString(m.textInput.View())
	sb.WriteString("\n\n")

	if len(m.filtered) == 0 {
		sb.WriteString(mutedStyle.Render("  No matches found"))
		sb.WriteString("\n")
	} else {
		start := 0
		end := len(m.filtered)
		if end > m.maxHeight {
			halfHeight := m.maxHeight / 2
			start = m.cursor - halfHeight
			if start < 0 {
				start = 0
			}
			end = start + m.maxHeight
			if end > len(m.filtered) {
				end = len(m.filtered)
				start = max(0, end-m.maxHeight)
			}
		}

		for i := start; i < end; i++ {
			idx := m.filtered[i]
			mark := "[ ]"
			if m.selected[idx] {
				mark = "[x]"
			}
			line := fmt.Sprintf("%s %s", mark, m.options[idx])

			if i == m.cursor {
				sb.WriteString(cursorStyle.Render("> "))
				sb.WriteString(selectedItem.Render(line))
			} else {
				sb.WriteString("  ")
				sb.WriteString(normalItem.Render(line))
			}
			sb.WriteString("\n")
		}

		if len(m.filtered) > m.maxHeight {
			sb.WriteString(mutedStyle.Render(fmt.Sprintf("\n  %d/%d", m.cursor+1, len(m.filtered))))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render("↑/↓ navigate • tab toggle • ctrl+a toggle all • enter confirm • esc cancel"))
	return sb.String()
}

// selectedOptions returns the chosen options in their original order.
func (m pickerModel) selectedOptions() []string {
	var out []string
	for i, opt := range m.options {
		if m.selected[i] {
			out = append(out, opt)
		}
	}
	return out
}

// MultiSelect shows a fuzzy-filterable multi-select picker. All options
// start selected; tab toggles the highlighted one.
func MultiSelect(title string, options []string) (MultiSelectResult, error) {
	if len(options) == 0 {
		return MultiSelectResult{}, nil
	}

	p := tea.NewProgram(newPickerModel(title, options))
	finalModel, err := p.Run()
	if err != nil {
		return MultiSelectResult{}, err
	}
	m := finalModel.(pickerModel)
	if m.cancelled {
		return MultiSelectResult{Cancelled: true}, nil
	}
	return MultiSelectResult{Selected: m.selectedOptions()}, nil
}
