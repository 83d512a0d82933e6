package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Manage the session lock",
}

var lockStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the session lock is enabled",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if a.sess.Enabled() {
			fmt.Println("session lock: enabled")
		} else {
			fmt.Println("session lock: disabled")
		}
		return nil
	},
}

var lockEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Turn the session lock on",
	Long: `Turns the session lock on. You are challenged for the passphrase first;
the setting only sticks when the challenge succeeds. Set a passphrase with
"botdeck lock passphrase" before enabling.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.sess.Enable(cmd.Context()); err != nil {
			return fmt.Errorf("lock not enabled: %w", err)
		}
		fmt.Println("session lock enabled")
		return nil
	},
}

var lockDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Turn the session lock off",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		// Disabling is itself a privileged action when currently locked.
		if err := a.requireUnlocked(cmd.Context()); err != nil {
			return err
		}
		if err := a.sess.Disable(); err != nil {
			return err
		}
		fmt.Println("session lock disabled")
		return nil
	},
}

var lockPassphraseCmd = &cobra.Command{
	Use:   "passphrase",
	Short: "Set or change the lock passphrase",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		// Changing the passphrase requires passing the current challenge.
		if err := a.requireUnlocked(cmd.Context()); err != nil {
			return err
		}

		first, err := promptPassphrase(cmd.Context(), "choose a new passphrase")
		if err != nil {
			return err
		}
		second, err := promptPassphrase(cmd.Context(), "repeat it")
		if err != nil {
			return err
		}
		if first != second {
			return fmt.Errorf("passphrases do not match")
		}
		if first == "" {
			return fmt.Errorf("passphrase must not be empty")
		}
		if err := a.sess.SetPassphrase(first); err != nil {
			return err
		}
		fmt.Println("passphrase updated")
		return nil
	},
}

func init() {
	lockCmd.AddCommand(lockStatusCmd)
	lockCmd.AddCommand(lockEnableCmd)
	lockCmd.AddCommand(lockDisableCmd)
	lockCmd.AddCommand(lockPassphraseCmd)
	rootCmd.AddCommand(lockCmd)
}
