package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/botdeck/webproxy"
)

var webAddr string

var webCmd = &cobra.Command{
	Use:   "web [bot-id]",
	Short: "Serve the remote web dashboards through a local auth-injecting proxy",
	Long: `Starts a loopback proxy in front of the bot server's web surfaces and
prints the local URLs to open in a browser. The stored credentials ride
along on every forwarded request, so the browser never prompts for them.
Runs until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireUnlocked(ctx); err != nil {
			return err
		}

		proxy := webproxy.New(a.store, webAddr, a.log)
		bound, err := proxy.Start(ctx)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			fmt.Printf("bot dashboard: http://%s%s\n", bound, webproxy.BotDashboardPath(args[0]))
		} else {
			fmt.Printf("bot dashboards: http://%s/bot/<bot-id>/\n", bound)
		}
		fmt.Printf("terminal:       http://%s/terminal\n", bound)

		<-ctx.Done()
		return nil
	},
}

func init() {
	webCmd.Flags().StringVar(&webAddr, "addr", "127.0.0.1:0", "local address to bind")
	rootCmd.AddCommand(webCmd)
}
