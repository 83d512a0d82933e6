package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/botdeck/api"
)

var transferCmd = &cobra.Command{
	Use:   "transfer <from> <to> <amount-dollars>",
	Short: "Move capital between accounts",
	Long: fmt.Sprintf(`Moves capital between two accounts. Use %q as either endpoint to move
capital in or out of the uncommitted pool. The amount is in dollars.`, api.UnallocatedPool),
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(args[2])
		if err != nil || !amount.IsPositive() {
			return fmt.Errorf("amount must be a positive dollar value, got %q", args[2])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireUnlocked(cmd.Context()); err != nil {
			return err
		}

		if err := a.client.TransferCapital(cmd.Context(), args[0], args[1], amount); err != nil {
			return err
		}
		fmt.Printf("transferred $%s from %s to %s\n", amount.StringFixed(2), args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)
}
