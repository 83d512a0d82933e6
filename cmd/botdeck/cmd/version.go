package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the botdeck CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("botdeck version %s\n", version)
		fmt.Println("Terminal dashboard for your remote trading bots")
		fmt.Println("https://github.com/rustyeddy/botdeck")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
