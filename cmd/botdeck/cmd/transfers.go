package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/botdeck/money"
)

var transfersLimit int

var transfersCmd = &cobra.Command{
	Use:   "transfers",
	Short: "Print recent capital transfers",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireUnlocked(cmd.Context()); err != nil {
			return err
		}

		transfers, err := a.client.FetchTransfers(cmd.Context(), transfersLimit)
		if err != nil {
			return err
		}
		for _, t := range transfers {
			fmt.Printf("%-22s %-12s → %-12s %10s\n",
				money.Timestamp(t.TS), t.From, t.To, money.Dollars(t.Amount))
		}
		return nil
	},
}

func init() {
	transfersCmd.Flags().IntVar(&transfersLimit, "limit", 20, "number of transfers to fetch")
	rootCmd.AddCommand(transfersCmd)
}
