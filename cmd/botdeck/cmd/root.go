package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rustyeddy/botdeck/api"
	"github.com/rustyeddy/botdeck/config"
	"github.com/rustyeddy/botdeck/logger"
	"github.com/rustyeddy/botdeck/session"
	"github.com/rustyeddy/botdeck/vault"
)

var (
	flagHome     string
	flagLogLevel string
	flagLogFile  string
)

var rootCmd = &cobra.Command{
	Use:   "botdeck",
	Short: "Terminal dashboard for your remote trading bots",
	Long: `Botdeck is a client for a remote trading-bot server: live status and
P&L for every bot, capital allocation and transfers, the web dashboards
behind a credential-injecting local proxy, and an SSH terminal, all from
one place.

It owns no trading logic and stores no financial state; everything shown is
polled fresh from the server you point it at.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagHome, "home", "", "app home directory (default $HOME/.botdeck)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "log file (default stderr)")
}

// app bundles the wired-up core components every command needs.
type app struct {
	home   string
	log    *logger.Logger
	store  *config.Store
	client *api.Client
	sess   *session.Controller
}

func newApp() (*app, error) {
	home := flagHome
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home: %w", err)
		}
		home = filepath.Join(userHome, ".botdeck")
	}
	if err := os.MkdirAll(home, 0700); err != nil {
		return nil, fmt.Errorf("create home: %w", err)
	}

	log := logger.New(logger.Config{
		Level:      flagLogLevel,
		File:       flagLogFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     14,
	})

	v, err := vault.Open(home)
	if err != nil {
		return nil, err
	}
	store, err := config.Open(home, v, log)
	if err != nil {
		return nil, err
	}

	auth := &session.PassphraseAuthenticator{
		Hashes: store,
		Prompt: promptPassphrase,
	}
	sess := session.New(store, auth, log)

	return &app{
		home:   home,
		log:    log,
		store:  store,
		client: api.New(store, log),
		sess:   sess,
	}, nil
}

// requireUnlocked runs the lock challenge before a command that shows
// financial data. No-op when the lock feature is off.
func (a *app) requireUnlocked(ctx context.Context) error {
	if !a.sess.Locked() {
		return nil
	}
	return a.sess.Authenticate(ctx)
}

func promptPassphrase(_ context.Context, reason string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s\npassphrase: ", reason)
	defer fmt.Fprintln(os.Stderr)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
