package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rustyeddy/botdeck/money"
)

var (
	colorPanel  = lipgloss.Color("#111A22")
	colorBorder = lipgloss.Color("#24384A")
	colorAccent = lipgloss.Color("#4DD8A6")
	colorGain   = lipgloss.Color("#4DD8A6")
	colorLoss   = lipgloss.Color("#F2555A")
	colorDim    = lipgloss.Color("#7C8F9E")
	colorWarn   = lipgloss.Color("#F6AE2D")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Background(colorPanel).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().Foreground(colorDim)

	gainStyle = lipgloss.NewStyle().Foreground(colorGain).Bold(true)
	lossStyle = lipgloss.NewStyle().Foreground(colorLoss).Bold(true)
	flatStyle = lipgloss.NewStyle().Foreground(colorDim).Bold(true)

	// Connectivity problems and bad payloads get visually distinct
	// treatments: retrying helps with one and not the other.
	netErrStyle    = lipgloss.NewStyle().Foreground(colorWarn)
	decodeErrStyle = lipgloss.NewStyle().Foreground(colorLoss).Bold(true)

	helpStyle = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)

	healthyDot   = lipgloss.NewStyle().Foreground(colorGain).Render("●")
	unhealthyDot = lipgloss.NewStyle().Foreground(colorLoss).Render("●")
)

// pnlStyle picks the gain/flat/loss style for a money sign.
func pnlStyle(s money.Sign) lipgloss.Style {
	switch s {
	case money.Gain:
		return gainStyle
	case money.Loss:
		return lossStyle
	default:
		return flatStyle
	}
}
