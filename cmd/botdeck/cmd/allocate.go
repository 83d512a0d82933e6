package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate <bot-id> <label> <amount-dollars>",
	Short: "Allocate capital to a bot",
	Long: `Assigns capital from the unallocated pool to a bot. The amount is in
dollars (e.g. 250 or 99.50); the server keeps its own books in cents.`,
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

		if err := a.client.AllocateCapital(cmd.Context(), args[0], args[1], amount); err != nil {
			return err
		}
		fmt.Printf("allocated $%s to %s\n", amount.StringFixed(2), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(allocateCmd)
}
