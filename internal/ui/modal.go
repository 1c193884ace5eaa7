package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/redirectctl/internal/redirect"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

type submitFunc func(redirect.Redirect) tea.Cmd

// addModal collects a source and destination path for a new redirect.
type addModal struct {
	inputs [2]textinput.Model
	focus  int
	err    string
	submit submitFunc
}

func newAddModal(submit submitFunc) addModal {
	from := textinput.New()
	from.Prompt = "From "
	from.Placeholder = "/economy/old-path"
	from.CharLimit = 1024
	from.Width = 40
	from.Focus()

	to := textinput.New()
	to.Prompt = "To   "
	to.Placeholder = "/economy/new-path"
	to.CharLimit = 1024
	to.Width = 40

	return addModal{inputs: [2]textinput.Model{from, to}, submit: submit}
}

func (m addModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Cancel):
			return m, nil, true
		case key.Matches(k, keys.Next):
			return m, m.cycle(), false
		case key.Matches(k, keys.Confirm):
			if m.focus == 0 {
				return m, m.cycle(), false
			}
			payload := redirect.Redirect{
				From: strings.TrimSpace(m.inputs[0].Value()),
				To:   strings.TrimSpace(m.inputs[1].Value()),
			}
			if payload.From == "" || payload.To == "" {
				m.err = "both paths are required"
				return m, nil, false
			}
			return m, m.submit(payload), true
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd, false
}

func (m *addModal) cycle() tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m addModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Add redirect"))
	b.WriteString("\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("tab next field · enter save · esc cancel"))

	return placeModal(theme, width, height, b.String())
}

// confirmModal asks before deleting a redirect.
type confirmModal struct {
	target redirect.Redirect
	submit submitFunc
}

func (m confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}
	switch {
	case key.Matches(k, keys.Accept), key.Matches(k, keys.Confirm):
		return m, m.submit(m.target), true
	case key.Matches(k, keys.Decline), key.Matches(k, keys.Cancel):
		return m, nil, true
	}
	return m, nil, false
}

func (m confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Delete redirect?"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(truncate(m.target.From, 50)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("→ " + truncate(m.target.To, 48)))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("y delete · n keep"))

	return placeModal(theme, width, height, b.String())
}

func placeModal(theme Theme, width, height int, content string) string {
	box := theme.Styles().Modal.Width(56).Render(content)
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
