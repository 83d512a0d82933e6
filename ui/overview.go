package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rustyeddy/botdeck/api"
	"github.com/rustyeddy/botdeck/money"
)

func (m *model) viewOverview() string {
	snap := m.overview.State()

	var b strings.Builder

	if snap.HasData {
		total := money.Pnl(snap.Data.TotalPnl)
		b.WriteString(panelStyle.Render(
			dimStyle.Render("Total P&L  ") +
				pnlStyle(money.SignOf(snap.Data.TotalPnl)).Render(total) +
				dimStyle.Render("  updated "+money.RelativeTime(snap.Updated))))
		b.WriteString("\n")

		for _, bot := range sortedBots(snap.Data.Bots) {
			b.WriteString(m.viewBotCard(bot))
			b.WriteString("\n")
		}
	} else if snap.Err == nil {
		b.WriteString(dimStyle.Render("  loading…"))
		b.WriteString("\n")
	}

	// A transient failure keeps the cards above; the banner just reports it.
	if snap.Err != nil {
		b.WriteString(errorBanner(snap.Err))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *model) viewBotCard(bot api.BotStatus) string {
	dot := unhealthyDot
	if bot.Healthy {
		dot = healthyDot
	}

	line := fmt.Sprintf("%s %-18s %-10s %s", dot, bot.Name,
		dimStyle.Render(bot.Mode),
		pnlStyle(money.SignOf(bot.Pnl)).Render(money.Pnl(bot.Pnl)))

	var extras []string
	if bot.WinRate != nil {
		extras = append(extras, fmt.Sprintf("win %.1f%%", *bot.WinRate))
	}
	if bot.Completed != nil {
		extras = append(extras, fmt.Sprintf("%d trades", *bot.Completed))
	}
	if bot.OpenPositions != nil {
		extras = append(extras, fmt.Sprintf("%d open", *bot.OpenPositions))
	}
	if bot.DailyTrades != nil {
		extras = append(extras, fmt.Sprintf("%d today", *bot.DailyTrades))
	}
	if bot.Running != nil && !*bot.Running {
		extras = append(extras, "stopped")
	}
	if bot.RealizedPnl != nil {
		extras = append(extras, "realized "+money.Pnl(*bot.RealizedPnl))
	}
	if len(extras) > 0 {
		line += "\n  " + dimStyle.Render(strings.Join(extras, " · "))
	}
	if bot.Error != nil && *bot.Error != "" {
		line += "\n  " + lossStyle.Render(*bot.Error)
	}

	return panelStyle.Render(line)
}

// sortedBots orders the map by bot id for a stable screen.
func sortedBots(bots map[string]api.BotStatus) []api.BotStatus {
	out := make([]api.BotStatus, 0, len(bots))
	for _, bot := range bots {
		out = append(out, bot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// errorBanner renders a poll failure. Decode errors mean a version
// mismatch where retrying won't help, so they look different from
// connectivity problems, which do carry a retry hint.
func errorBanner(err error) string {
	switch {
	case api.IsDecodeError(err):
		return decodeErrStyle.Render("⚠ " + err.Error() + " (client/server mismatch)")
	case api.IsUnauthorized(err):
		return netErrStyle.Render("⚠ " + err.Error())
	default:
		return netErrStyle.Render("⚠ " + err.Error() + " (press r to retry)")
	}
}
