package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/botdeck/config"
)

// configSetters maps CLI field names to write-through store setters. Secret
// fields route to the vault automatically inside the store.
var configSetters = map[string]func(*config.Store, string) error{
	"server-url":   (*config.Store).SetServerURL,
	"username":     (*config.Store).SetUsername,
	"password":     (*config.Store).SetPassword,
	"ssh-host":     (*config.Store).SetSSHHost,
	"ssh-port":     (*config.Store).SetSSHPort,
	"ssh-user":     (*config.Store).SetSSHUser,
	"ssh-password": (*config.Store).SetSSHPassword,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit connection settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print current settings (secrets masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		cfg := a.store.Snapshot()

		fmt.Printf("server-url:   %s\n", cfg.ServerURL)
		if base := cfg.BaseURL(); base != nil {
			fmt.Printf("base-url:     %s\n", base.String())
		} else {
			fmt.Printf("base-url:     (not configured)\n")
		}
		fmt.Printf("username:     %s\n", mask(cfg.Username))
		fmt.Printf("password:     %s\n", mask(cfg.Password))
		fmt.Printf("ssh-host:     %s\n", cfg.SSHHost)
		fmt.Printf("ssh-port:     %s\n", cfg.SSHPort)
		fmt.Printf("ssh-user:     %s\n", cfg.SSHUser)
		fmt.Printf("ssh-password: %s\n", mask(cfg.SSHPassword))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set one settings field",
	Long: "Sets one field and persists it immediately. Fields: " +
		strings.Join(sortedFieldNames(), ", ") + ".",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, ok := configSetters[args[0]]
		if !ok {
			return fmt.Errorf("unknown field %q (fields: %s)", args[0], strings.Join(sortedFieldNames(), ", "))
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		return set(a.store, args[1])
	},
}

func mask(v string) string {
	if v == "" {
		return "(not set)"
	}
	return strings.Repeat("•", 8)
}

func sortedFieldNames() []string {
	return []string{"server-url", "username", "password", "ssh-host", "ssh-port", "ssh-user", "ssh-password"}
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
