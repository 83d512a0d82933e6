package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rustyeddy/botdeck/term"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Open an SSH terminal on the bot host",
	Long: `Opens an interactive SSH session using the host, port, user and password
from settings. The host key is pinned on first connect.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireUnlocked(cmd.Context()); err != nil {
			return err
		}
		return term.Run(cmd.Context(), a.store.Snapshot(), a.home, a.log)
	},
}

func init() {
	rootCmd.AddCommand(termCmd)
}
