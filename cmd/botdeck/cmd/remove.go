package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <bot-id>",
	Short: "Remove a bot's capital allocation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireUnlocked(cmd.Context()); err != nil {
			return err
		}

		if err := a.client.RemoveAllocation(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("removed allocation for %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
