package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/botdeck/api"
	"github.com/rustyeddy/botdeck/money"
)

type capMode int

const (
	capModeBrowse capMode = iota
	capModeAllocate
	capModeTransfer
	capModeConfirmRemove
)

type capitalState struct {
	mode     capMode
	selected int

	inputs []textinput.Model
	field  int

	// actionErr is surfaced inline next to the triggering control, not as a
	// global banner.
	actionErr error
	busy      bool
}

func newCapitalState() capitalState {
	return capitalState{}
}

func (m *model) updateCapitalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := &m.capitalUI
	snap := m.capital.State()

	switch c.mode {
	case capModeBrowse:
		switch msg.String() {
		case "up", "k":
			if c.selected > 0 {
				c.selected--
			}
		case "down", "j":
			if c.selected < len(snap.Data.Snapshot.Accounts)-1 {
				c.selected++
			}
		case "a":
			c.openForm(capModeAllocate, m.selectedAccountID(), "", "")
		case "t":
			c.openForm(capModeTransfer, api.UnallocatedPool, m.selectedAccountID(), "")
		case "x":
			if m.selectedAccountID() != "" {
				c.mode = capModeConfirmRemove
				c.actionErr = nil
			}
		}
		return m, nil

	case capModeConfirmRemove:
		switch msg.String() {
		case "y":
			botID := m.selectedAccountID()
			c.mode = capModeBrowse
			c.busy = true
			return m, m.runAction(func() error {
				return m.client.RemoveAllocation(m.ctx, botID)
			})
		case "n", "esc":
			c.mode = capModeBrowse
		}
		return m, nil

	default: // a form is open
		switch msg.String() {
		case "esc":
			c.mode = capModeBrowse
			c.actionErr = nil
			return m, nil
		case "tab", "enter":
			if msg.String() == "enter" && c.field == len(c.inputs)-1 {
				return m.submitCapitalForm()
			}
			c.inputs[c.field].Blur()
			c.field = (c.field + 1) % len(c.inputs)
			c.inputs[c.field].Focus()
			return m, nil
		case "shift+tab":
			c.inputs[c.field].Blur()
			c.field = (c.field + len(c.inputs) - 1) % len(c.inputs)
			c.inputs[c.field].Focus()
			return m, nil
		}
		var cmd tea.Cmd
		c.inputs[c.field], cmd = c.inputs[c.field].Update(msg)
		return m, cmd
	}
}

func (c *capitalState) openForm(mode capMode, first, second, third string) {
	c.mode = mode
	c.actionErr = nil
	c.field = 0

	labels := []string{"bot id", "label", "amount $"}
	values := []string{first, second, third}
	if mode == capModeTransfer {
		labels = []string{"from", "to", "amount $"}
	}

	c.inputs = make([]textinput.Model, 3)
	for i := range c.inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.SetValue(values[i])
		in.CharLimit = 64
		c.inputs[i] = in
	}
	c.inputs[0].Focus()
}

func (m *model) submitCapitalForm() (tea.Model, tea.Cmd) {
	c := &m.capitalUI

	amount, err := decimal.NewFromString(strings.TrimSpace(c.inputs[2].Value()))
	if err != nil || !amount.IsPositive() {
		c.actionErr = fmt.Errorf("amount must be a positive dollar value")
		return m, nil
	}
	first := strings.TrimSpace(c.inputs[0].Value())
	second := strings.TrimSpace(c.inputs[1].Value())
	if first == "" || second == "" {
		c.actionErr = fmt.Errorf("all fields are required")
		return m, nil
	}

	mode := c.mode
	c.mode = capModeBrowse
	c.busy = true
	return m, m.runAction(func() error {
		if mode == capModeTransfer {
			return m.client.TransferCapital(m.ctx, first, second, amount)
		}
		return m.client.AllocateCapital(m.ctx, first, second, amount)
	})
}

// runAction executes a mutation off the UI loop and reports its outcome.
func (m *model) runAction(action func() error) tea.Cmd {
	return func() tea.Msg {
		return actionResultMsg{err: action()}
	}
}

func (m *model) updateCapitalResult(msg actionResultMsg) (tea.Model, tea.Cmd) {
	c := &m.capitalUI
	c.busy = false
	c.actionErr = msg.err
	if msg.err != nil {
		return m, nil
	}
	// Mutation landed: re-fetch so the screen reflects it immediately.
	return m, func() tea.Msg {
		m.capital.RefreshNow(m.ctx)
		return nil
	}
}

func (m *model) selectedAccountID() string {
	snap := m.capital.State()
	accounts := snap.Data.Snapshot.Accounts
	if !snap.HasData || len(accounts) == 0 {
		return ""
	}
	idx := m.capitalUI.selected
	if idx >= len(accounts) {
		idx = len(accounts) - 1
	}
	return accounts[idx].ID
}

func (m *model) viewCapital() string {
	c := &m.capitalUI
	snap := m.capital.State()

	var b strings.Builder

	if snap.HasData {
		data := snap.Data.Snapshot
		head := dimStyle.Render("Allocated ") + flatStyle.Render(money.Dollars(data.TotalAllocated))
		if data.Unallocated != nil {
			head += dimStyle.Render("   Unallocated ") + flatStyle.Render(money.Dollars(*data.Unallocated))
		}
		if data.RealBalance != nil {
			head += dimStyle.Render("   Balance ") + flatStyle.Render(money.Dollars(*data.RealBalance))
		}
		b.WriteString(panelStyle.Render(head))
		b.WriteString("\n")

		for i, acct := range data.Accounts {
			b.WriteString(m.viewAccountRow(acct, i == c.selected))
			b.WriteString("\n")
		}

		if len(snap.Data.Transfers) > 0 {
			b.WriteString(m.viewTransfers(snap.Data.Transfers))
		}
	} else if snap.Err == nil {
		b.WriteString(dimStyle.Render("  loading…"))
		b.WriteString("\n")
	}

	if snap.Err != nil {
		b.WriteString(errorBanner(snap.Err))
		b.WriteString("\n")
	}

	switch c.mode {
	case capModeAllocate:
		b.WriteString(m.viewCapitalForm("Allocate capital"))
	case capModeTransfer:
		b.WriteString(m.viewCapitalForm("Transfer capital"))
	case capModeConfirmRemove:
		b.WriteString(panelStyle.Render("Remove allocation for " +
			flatStyle.Render(m.selectedAccountID()) + "? (y/n)"))
		b.WriteString("\n")
	}

	if c.busy {
		b.WriteString(dimStyle.Render("  working…"))
		b.WriteString("\n")
	}
	if c.actionErr != nil && c.mode == capModeBrowse {
		b.WriteString(netErrStyle.Render("  ✗ " + c.actionErr.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *model) viewAccountRow(acct api.CapitalAccount, selected bool) string {
	cursor := "  "
	if selected {
		cursor = lipglossCursor
	}
	row := fmt.Sprintf("%s%-14s %10s  P&L %s  eff %s", cursor, acct.Label,
		money.Dollars(acct.Allocation),
		pnlStyle(money.SignOfCents(acct.Pnl)).Render(money.SignedDollars(acct.Pnl)),
		money.Dollars(acct.Effective))
	return panelStyle.Render(row)
}

func (m *model) viewTransfers(transfers []api.Transfer) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("  Recent transfers"))
	b.WriteString("\n")
	for _, t := range transfers {
		line := fmt.Sprintf("  %s → %s  %s  %s", t.From, t.To,
			money.Dollars(t.Amount), dimStyle.Render(money.Timestamp(t.TS)))
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *model) viewCapitalForm(title string) string {
	c := &m.capitalUI
	var rows []string
	rows = append(rows, flatStyle.Render(title))
	for i := range c.inputs {
		rows = append(rows, c.inputs[i].View())
	}
	if c.actionErr != nil {
		rows = append(rows, netErrStyle.Render("✗ "+c.actionErr.Error()))
	}
	rows = append(rows, dimStyle.Render("enter submit · esc cancel"))
	return panelStyle.Render(strings.Join(rows, "\n")) + "\n"
}

var lipglossCursor = gainStyle.Render("> ")
