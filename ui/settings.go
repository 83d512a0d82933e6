package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rustyeddy/botdeck/config"
)

// settingsField maps one editable row to its config getter and
// write-through setter.
type settingsField struct {
	label  string
	secret bool
	get    func(config.Config) string
	set    func(*config.Store, string) error
}

var settingsFields = []settingsField{
	{"Server URL", false,
		func(c config.Config) string { return c.ServerURL },
		(*config.Store).SetServerURL},
	{"Username", true,
		func(c config.Config) string { return c.Username },
		(*config.Store).SetUsername},
	{"Password", true,
		func(c config.Config) string { return c.Password },
		(*config.Store).SetPassword},
	{"SSH host", false,
		func(c config.Config) string { return c.SSHHost },
		(*config.Store).SetSSHHost},
	{"SSH port", false,
		func(c config.Config) string { return c.SSHPort },
		(*config.Store).SetSSHPort},
	{"SSH user", false,
		func(c config.Config) string { return c.SSHUser },
		(*config.Store).SetSSHUser},
	{"SSH password", true,
		func(c config.Config) string { return c.SSHPassword },
		(*config.Store).SetSSHPassword},
}

type settingsState struct {
	selected int
	editing  bool
	input    textinput.Model
	saveErr  error
}

func newSettingsState() settingsState {
	return settingsState{}
}

func (m *model) updateSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.settingsUI

	if s.editing {
		switch msg.String() {
		case "esc":
			s.editing = false
			return m, nil
		case "enter":
			s.editing = false
			s.saveErr = settingsFields[s.selected].set(m.store, s.input.Value())
			return m, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(settingsFields)-1 {
			s.selected++
		}
	case "enter":
		field := settingsFields[s.selected]
		s.input = textinput.New()
		s.input.SetValue(field.get(m.store.Snapshot()))
		if field.secret {
			s.input.EchoMode = textinput.EchoPassword
		}
		s.input.Focus()
		s.editing = true
		s.saveErr = nil
	}
	return m, nil
}

func (m *model) viewSettings() string {
	s := &m.settingsUI
	cfg := m.store.Snapshot()

	var b strings.Builder
	for i, field := range settingsFields {
		cursor := "  "
		if i == s.selected {
			cursor = lipglossCursor
		}
		value := field.get(cfg)
		if field.secret && value != "" {
			value = strings.Repeat("•", 8)
		}
		if value == "" {
			value = dimStyle.Render("(not set)")
		}

		if s.editing && i == s.selected {
			b.WriteString(cursor + flatStyle.Render(field.label) + "  " + s.input.View())
		} else {
			b.WriteString(cursor + flatStyle.Render(field.label) + "  " + value)
		}
		b.WriteString("\n")
	}

	if base := cfg.BaseURL(); base != nil {
		b.WriteString(dimStyle.Render("\n  effective base URL: " + base.String()))
		b.WriteString("\n")
	} else if cfg.ServerURL != "" {
		b.WriteString(netErrStyle.Render("\n  server URL does not parse"))
		b.WriteString("\n")
	}

	if s.saveErr != nil {
		b.WriteString(netErrStyle.Render("  ✗ " + s.saveErr.Error()))
		b.WriteString("\n")
	}

	lockLine := "  Session lock: "
	if m.sess.Enabled() {
		lockLine += gainStyle.Render("enabled")
	} else {
		lockLine += dimStyle.Render("disabled")
	}
	lockLine += dimStyle.Render("  (manage with `botdeck lock`)")
	b.WriteString(lockLine)
	b.WriteString("\n")

	return panelStyle.Render(b.String())
}
