package session

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

// HashSource exposes the stored passphrase hash. Settings satisfies it.
type HashSource interface {
	LockPassphraseHash() string
}

// PassphraseAuthenticator challenges with the lock passphrase. Prompt
// collects the attempt: from the terminal for CLI commands, from the lock
// screen input for the dashboard.
type PassphraseAuthenticator struct {
	Hashes HashSource
	Prompt func(ctx context.Context, reason string) (string, error)
}

func (a *PassphraseAuthenticator) Authenticate(ctx context.Context, reason string) error {
	hash := a.Hashes.LockPassphraseHash()
	if hash == "" {
		return ErrUnavailable
	}

	attempt, err := a.Prompt(ctx, reason)
	if err != nil {
		return ErrDenied
	}
	return VerifyPassphrase(hash, attempt)
}

// HashPassphrase returns the bcrypt hash to persist for a new passphrase.
func HashPassphrase(passphrase string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// VerifyPassphrase checks an attempt against the stored hash, returning
// ErrDenied on mismatch.
func VerifyPassphrase(hash, attempt string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(attempt)); err != nil {
		return ErrDenied
	}
	return nil
}

// SetPassphrase hashes and persists a new lock passphrase.
func (c *Controller) SetPassphrase(passphrase string) error {
	hash, err := HashPassphrase(passphrase)
	if err != nil {
		return err
	}
	return c.settings.SetLockPassphraseHash(hash)
}

// TryPassphrase verifies an attempt directly against the stored hash and
// unlocks on success. The dashboard's lock screen drives this path; the
// same fail-open rule applies when no passphrase was ever set.
func (c *Controller) TryPassphrase(attempt string) error {
	hash := c.settings.LockPassphraseHash()
	if hash == "" {
		c.log.WithComponent("session").Warn("no passphrase configured, failing open")
		c.unlock()
		return nil
	}
	if err := VerifyPassphrase(hash, attempt); err != nil {
		// Stay locked.
		return err
	}
	c.unlock()
	return nil
}
