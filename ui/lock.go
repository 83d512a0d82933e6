package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type lockState struct {
	input   textinput.Model
	lastErr error
	busy    bool
}

func newLockState() lockState {
	in := textinput.New()
	in.Placeholder = "passphrase"
	in.EchoMode = textinput.EchoPassword
	in.CharLimit = 128
	in.Focus()
	return lockState{input: in}
}

func (m *model) updateLockKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := &m.lockUI

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		if l.busy {
			return m, nil
		}
		attempt := l.input.Value()
		l.input.SetValue("")
		l.busy = true
		return m, func() tea.Msg {
			return unlockResultMsg{err: m.sess.TryPassphrase(attempt)}
		}
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return m, cmd
}

func (m *model) updateLock(msg unlockResultMsg) (tea.Model, tea.Cmd) {
	l := &m.lockUI
	l.busy = false
	// A failed attempt keeps the session locked; only the error line
	// changes.
	l.lastErr = msg.err
	return m, nil
}

func (m *model) viewLock() string {
	l := &m.lockUI

	var b strings.Builder
	b.WriteString(titleStyle.Render("botdeck"))
	b.WriteString("\n\n")
	b.WriteString(flatStyle.Render("  Locked"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Enter your passphrase to view the dashboard"))
	b.WriteString("\n\n  ")
	b.WriteString(l.input.View())
	b.WriteString("\n")
	if l.lastErr != nil {
		b.WriteString(lossStyle.Render("  ✗ wrong passphrase"))
		b.WriteString("\n")
	}
	return panelStyle.Render(b.String())
}
