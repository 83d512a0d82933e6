package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/botdeck/money"
)

var capitalCmd = &cobra.Command{
	Use:   "capital",
	Short: "Print the current capital allocation",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireUnlocked(cmd.Context()); err != nil {
			return err
		}

		snap, err := a.client.FetchCapital(cmd.Context())
		if err != nil {
			return err
		}

		for _, acct := range snap.Accounts {
			fmt.Printf("%-10s %-16s alloc %10s  pnl %10s  effective %10s\n",
				acct.ID, acct.Label,
				money.Dollars(acct.Allocation),
				money.SignedDollars(acct.Pnl),
				money.Dollars(acct.Effective))
		}

		fmt.Printf("\ntotal allocated: %s\n", money.Dollars(snap.TotalAllocated))
		if snap.Unallocated != nil {
			fmt.Printf("unallocated:     %s\n", money.Dollars(*snap.Unallocated))
		}
		if snap.RealBalance != nil {
			fmt.Printf("real balance:    %s\n", money.Dollars(*snap.RealBalance))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(capitalCmd)
}
