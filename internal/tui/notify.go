package tui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	noticeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	progressTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	progressText  = lipgloss.NewStyle().Faint(true)
)

// Notifier prints short one-line notices for the user.
type Notifier struct {
	W io.Writer
}

// Notify writes message on its own line.
func (n *Notifier) Notify(message string) {
	fmt.Fprintln(n.W, noticeStyle.Render(message))
}

// Progress prints the phases of a running prompt. It cannot be cancelled
// from the terminal; interrupting the process cancels the request instead.
type Progress struct {
	W io.Writer

	mu    sync.Mutex
	title string
}

// Start sets the title shown with each phase.
func (p *Progress) Start(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.title = title
}

// Report writes the current phase, e.g. "Running...".
func (p *Progress) Report(message string) {
	p.mu.Lock()
	title := p.title
	p.mu.Unlock()

	if title == "" {
		fmt.Fprintln(p.W, progressText.Render(message))
		return
	}
	fmt.Fprintln(p.W, progressTitle.Render(title)+" "+progressText.Render(message))
}
