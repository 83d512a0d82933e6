// Package ui is the terminal dashboard: overview, capital and settings
// screens over the polling controllers, gated by the session lock.
package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rustyeddy/botdeck/api"
	"github.com/rustyeddy/botdeck/config"
	"github.com/rustyeddy/botdeck/logger"
	"github.com/rustyeddy/botdeck/poll"
	"github.com/rustyeddy/botdeck/session"
)

const (
	overviewInterval = 5 * time.Second
	capitalInterval  = 10 * time.Second
	transfersLimit   = 20
)

type screen int

const (
	screenOverview screen = iota
	screenCapital
	screenSettings
)

// capitalData bundles the two fetches the capital screen shows, so one
// poller replaces both wholesale together.
type capitalData struct {
	Snapshot  api.CapitalSnapshot
	Transfers []api.Transfer
}

// redrawMsg drives a re-render so poller state and relative timestamps stay
// fresh; the pollers themselves run on their own cadence.
type redrawMsg time.Time

// actionResultMsg reports the outcome of an allocate/transfer/remove call.
type actionResultMsg struct {
	err error
}

// unlockResultMsg reports a lock-screen passphrase attempt.
type unlockResultMsg struct {
	err error
}

// Run starts the dashboard and blocks until the user quits.
func Run(ctx context.Context, store *config.Store, client *api.Client, sess *session.Controller, log *logger.Logger) error {
	m := newModel(ctx, store, client, sess, log)

	go sess.Run(ctx)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	m.overview.Stop()
	m.capital.Stop()
	return err
}

type model struct {
	ctx    context.Context
	store  *config.Store
	client *api.Client
	sess   *session.Controller
	log    *logger.Logger

	overview *poll.Poller[api.Overview]
	capital  *poll.Poller[capitalData]

	active screen
	width  int
	height int

	capitalUI  capitalState
	settingsUI settingsState
	lockUI     lockState
}

func newModel(ctx context.Context, store *config.Store, client *api.Client, sess *session.Controller, log *logger.Logger) *model {
	m := &model{
		ctx:    ctx,
		store:  store,
		client: client,
		sess:   sess,
		log:    log,
	}

	m.overview = poll.New("overview", overviewInterval, client.FetchOverview, log)
	m.capital = poll.New("capital", capitalInterval, func(ctx context.Context) (capitalData, error) {
		snap, err := client.FetchCapital(ctx)
		if err != nil {
			return capitalData{}, err
		}
		transfers, err := client.FetchTransfers(ctx, transfersLimit)
		if err != nil {
			return capitalData{}, err
		}
		return capitalData{Snapshot: snap, Transfers: transfers}, nil
	}, log)

	m.capitalUI = newCapitalState()
	m.settingsUI = newSettingsState()
	m.lockUI = newLockState()

	return m
}

func (m *model) Init() tea.Cmd {
	m.overview.Start(m.ctx)
	m.capital.Start(m.ctx)
	return redrawTick()
}

func redrawTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return redrawMsg(t) })
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case redrawMsg:
		// Foreground-equivalent idle check; redundant with the controller's
		// ticker and deliberately so.
		m.sess.CheckIdle()
		return m, redrawTick()

	case unlockResultMsg:
		return m.updateLock(msg)

	case actionResultMsg:
		return m.updateCapitalResult(msg)

	case tea.KeyMsg:
		m.sess.RecordActivity()

		if m.sess.Locked() {
			return m.updateLockKey(msg)
		}

		// Screen-local modes (forms, field editing) eat keys first.
		if m.active == screenCapital && m.capitalUI.mode != capModeBrowse {
			return m.updateCapitalKey(msg)
		}
		if m.active == screenSettings && m.settingsUI.editing {
			return m.updateSettingsKey(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1":
			m.active = screenOverview
			return m, nil
		case "2":
			m.active = screenCapital
			return m, nil
		case "3":
			m.active = screenSettings
			return m, nil
		case "tab":
			m.active = (m.active + 1) % 3
			return m, nil
		case "r":
			return m, m.refreshActive()
		case "L":
			m.sess.Lock()
			return m, nil
		}

		switch m.active {
		case screenCapital:
			return m.updateCapitalKey(msg)
		case screenSettings:
			return m.updateSettingsKey(msg)
		}
	}
	return m, nil
}

// refreshActive triggers an immediate fetch for the visible screen without
// touching the poll timer.
func (m *model) refreshActive() tea.Cmd {
	switch m.active {
	case screenOverview:
		return func() tea.Msg {
			m.overview.RefreshNow(m.ctx)
			return nil
		}
	case screenCapital:
		return func() tea.Msg {
			m.capital.RefreshNow(m.ctx)
			return nil
		}
	}
	return nil
}

func (m *model) View() string {
	if m.sess.Locked() {
		return m.viewLock()
	}

	header := m.viewTabs()
	var body string
	switch m.active {
	case screenOverview:
		body = m.viewOverview()
	case screenCapital:
		body = m.viewCapital()
	case screenSettings:
		body = m.viewSettings()
	}
	return header + "\n" + body + "\n" + m.viewHelp()
}

func (m *model) viewTabs() string {
	tabs := []struct {
		s     screen
		label string
	}{
		{screenOverview, "1:Overview"},
		{screenCapital, "2:Capital"},
		{screenSettings, "3:Settings"},
	}
	out := titleStyle.Render("botdeck")
	for _, t := range tabs {
		if t.s == m.active {
			out += tabActiveStyle.Render(t.label)
		} else {
			out += tabStyle.Render(t.label)
		}
	}
	return out
}

func (m *model) viewHelp() string {
	base := "tab/1-3 switch · r refresh · L lock · q quit"
	if m.active == screenCapital {
		base = "a allocate · t transfer · x remove · ↑/↓ select · " + base
	}
	if m.active == screenSettings {
		base = "↑/↓ select · enter edit · " + base
	}
	return helpStyle.Render(base)
}
