package ui

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// progressMsg updates the progress bar state.
type progressMsg struct {
	current int
	message string
}

// progressDoneMsg stops the program.
type progressDoneMsg struct{}

// ProgressBar wraps a Bubbletea progress bar for simple non-interactive use.
// Use this for determinate operations where the total count is known, like
// the fan-out runner.
type ProgressBar struct {
	program   *tea.Program
	mu        sync.Mutex
	isRunning bool
	total     int
	current   int
	message   string
}

type progressModel struct {
	bar     progress.Model
	total   int
	current int
	message string
	done    bool
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.current = msg.current
		if msg.message != "" {
			m.message = msg.message
		}
		return m, nil
	case progressDoneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.current) / float64(m.total)
	}
	return fmt.Sprintf("%s %d/%d %s", m.bar.ViewAs(pct), m.current, m.total, m.message)
}

// NewProgressBar creates a progress bar for total steps.
func NewProgressBar(total int, message string) *ProgressBar {
	return &ProgressBar{
		total:   total,
		message: message,
	}
}

// Total returns the configured step count.
func (p *ProgressBar) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// Start begins rendering the bar.
func (p *ProgressBar) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isRunning {
		return
	}
	model := progressModel{
		bar:     progress.New(progress.WithDefaultGradient()),
		total:   p.total,
		current: p.current,
		message: p.message,
	}
	p.program = tea.NewProgram(model)
	p.isRunning = true
	go p.program.Run()
}

// SetProgress updates the completed count and message.
// Safe to call before Start and from multiple goroutines.
func (p *ProgressBar) SetProgress(current int, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = current
	p.message = message
	if p.program != nil {
		p.program.Send(progressMsg{current: current, message: message})
	}
}

// Stop stops rendering and clears the bar.
func (p *ProgressBar) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.program != nil {
		p.program.Send(progressDoneMsg{})
		p.program.Quit()
	}
	p.isRunning = false
}
