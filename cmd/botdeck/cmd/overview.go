package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/botdeck/money"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Print a one-shot status snapshot of every bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireUnlocked(cmd.Context()); err != nil {
			return err
		}

		ov, err := a.client.FetchOverview(cmd.Context())
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(ov.Bots))
		for id := range ov.Bots {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			bot := ov.Bots[id]
			health := "down"
			if bot.Healthy {
				health = "ok"
			}
			fmt.Printf("%-10s %-18s %-8s %-6s %10s", id, bot.Name, bot.Mode, health, money.Pnl(bot.Pnl))
			if bot.Error != nil && *bot.Error != "" {
				fmt.Printf("  (%s)", *bot.Error)
			}
			fmt.Println()
		}
		fmt.Printf("\ntotal P&L: %s\n", money.Pnl(ov.TotalPnl))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}
