package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/botdeck/money"
)

var limitCmd = &cobra.Command{
	Use:   "limit <bot-id>",
	Short: "Print a bot's current capital allocation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireUnlocked(cmd.Context()); err != nil {
			return err
		}

		limit, err := a.client.FetchBotCapitalLimit(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if limit.AllocationCents == nil {
			fmt.Printf("%s has no allocation\n", args[0])
			return nil
		}
		fmt.Printf("%s allocation: %s\n", args[0], money.Dollars(*limit.AllocationCents))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(limitCmd)
}
