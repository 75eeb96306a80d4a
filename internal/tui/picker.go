// Package tui provides the terminal surfaces of the prompt runner: a prompt
// picker, user notices, and progress lines.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PickerPlaceholder is shown above the prompt titles.
const PickerPlaceholder = "Select a prompt to run"

const (
	pickerWidth     = 60
	pickerMaxHeight = 20
)

// titleItem adapts a prompt title to list.Item
type titleItem string

func (i titleItem) Title() string       { return string(i) }
func (i titleItem) Description() string { return "" }
func (i titleItem) FilterValue() string { return string(i) }

// pickerModel is the bubbletea model behind Picker.
type pickerModel struct {
	list   list.Model
	choice string
}

func newPickerModel(titles []string) pickerModel {
	items := make([]list.Item, len(titles))
	for i, title := range titles {
		items[i] = titleItem(title)
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(items, delegate, pickerWidth, min(len(titles)+6, pickerMaxHeight))
	l.Title = PickerPlaceholder
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	return pickerModel{list: l}
}

// Init initializes the model.
func (m pickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(min(msg.Width, pickerWidth), min(msg.Height, pickerMaxHeight))
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(titleItem); ok {
				m.choice = string(item)
			}
			return m, tea.Quit
		case "esc", "q", "ctrl+c":
			m.choice = ""
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list.
func (m pickerModel) View() string {
	return m.list.View()
}

// Picker asks the user to choose a prompt title in the terminal.
type Picker struct {
	In  io.Reader // Defaults to os.Stdin
	Out io.Writer // Defaults to os.Stderr so stdout stays free for results
}

// Pick shows titles in order and returns the chosen one, or "" if the user cancelled.
func (p *Picker) Pick(ctx context.Context, titles []string) (string, error) {
	if len(titles) == 0 {
		return "", nil
	}

	in, out := p.In, p.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}

	program := tea.NewProgram(newPickerModel(titles),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := program.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, tea.ErrProgramKilled) {
			return "", ctxErr
		}
		return "", fmt.Errorf("prompt picker failed: %w", err)
	}

	m, ok := final.(pickerModel)
	if !ok {
		return "", nil
	}
	return m.choice, nil
}
