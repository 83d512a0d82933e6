// Package term opens the interactive SSH session that replaces the
// server's embedded web terminal, using the credentials from the config
// store. Host keys are pinned on first use under the app home directory.
package term

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
	"golang.org/x/term"

	"github.com/rustyeddy/botdeck/config"
	"github.com/rustyeddy/botdeck/logger"
)

// ErrNotConfigured means the SSH host or user is missing from settings.
var ErrNotConfigured = errors.New("SSH host not configured")

// Run dials the configured SSH host, requests a PTY matching the local
// terminal and wires the shell to stdin/stdout until the remote side exits
// or ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, home string, log *logger.Logger) error {
	if cfg.SSHHost == "" || cfg.SSHUser == "" {
		return ErrNotConfigured
	}
	port := cfg.SSHPort
	if port == "" {
		port = "22"
	}
	addr := net.JoinHostPort(cfg.SSHHost, port)

	hostKeys, err := trustOnFirstUse(filepath.Join(home, "known_hosts"), log)
	if err != nil {
		return err
	}

	clientCfg := &ssh.ClientConfig{
		User:            cfg.SSHUser,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.SSHPassword)},
		HostKeyCallback: hostKeys,
		Timeout:         10 * time.Second,
	}

	log.WithComponent("term").Info("connecting to " + addr)
	client, err := ssh.Dial("tcp", addr, clientCfg)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer client.Close()

	sess, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer sess.Close()

	fd := int(os.Stdin.Fd())
	width, height := 80, 24
	if term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
		state, err := term.MakeRaw(fd)
		if err == nil {
			defer term.Restore(fd, state)
		}
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          1,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	if err := sess.RequestPty("xterm-256color", height, width, modes); err != nil {
		return fmt.Errorf("request pty: %w", err)
	}

	sess.Stdin = os.Stdin
	sess.Stdout = os.Stdout
	sess.Stderr = os.Stderr

	if err := sess.Shell(); err != nil {
		return fmt.Errorf("start shell: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- sess.Wait() }()
	select {
	case <-ctx.Done():
		sess.Close()
		return ctx.Err()
	case err := <-done:
		var exit *ssh.ExitError
		if errors.As(err, &exit) {
			return fmt.Errorf("remote shell exited with status %d", exit.ExitStatus())
		}
		return err
	}
}

// trustOnFirstUse pins the host key: unknown hosts are recorded on first
// connect, and any later mismatch is a hard failure.
func trustOnFirstUse(path string, log *logger.Logger) (ssh.HostKeyCallback, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(path, nil, 0600); err != nil {
			return nil, fmt.Errorf("create known_hosts: %w", err)
		}
	}
	check, err := knownhosts.New(path)
	if err != nil {
		return nil, fmt.Errorf("load known_hosts: %w", err)
	}

	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		err := check(hostname, remote, key)
		if err == nil {
			return nil
		}
		var keyErr *knownhosts.KeyError
		if errors.As(err, &keyErr) && len(keyErr.Want) == 0 {
			// First contact: pin the key.
			f, ferr := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
			if ferr != nil {
				return ferr
			}
			defer f.Close()
			line := knownhosts.Line([]string{knownhosts.Normalize(hostname)}, key)
			if _, ferr := f.WriteString(line + "\n"); ferr != nil {
				return ferr
			}
			log.WithComponent("term").Warn("pinned new host key for " + hostname)
			return nil
		}
		return err
	}, nil
}
