package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rustyeddy/botdeck/ui"
)

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Open the interactive dashboard",
	Long: `Opens the full-screen dashboard: bot overview polling every 5 seconds,
capital and transfers every 10, with allocate/transfer/remove actions inline.
When the session lock is enabled the dashboard starts locked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return ui.Run(cmd.Context(), a.store, a.client, a.sess, a.log)
	},
}

func init() {
	rootCmd.AddCommand(dashCmd)
}
