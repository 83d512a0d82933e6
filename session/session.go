// Package session gates the dashboard behind a lock when the user enables
// it, and re-locks after idle time or whenever the app loses focus.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rustyeddy/botdeck/logger"
)

const (
	// idleTimeout is how long without activity before an unlocked, enabled
	// session re-locks.
	idleTimeout = 5 * time.Minute

	// idleCheckInterval is how often the background ticker re-evaluates the
	// idle condition. The check is idempotent, so the explicit
	// foreground-resume check may run redundantly alongside it.
	idleCheckInterval = time.Minute
)

var (
	// ErrDenied means the challenge ran and the user failed or cancelled it.
	// The session stays locked; that rule has no exceptions.
	ErrDenied = errors.New("authentication denied")

	// ErrUnavailable means no authenticator is set up at all (no passphrase
	// was ever configured).
	ErrUnavailable = errors.New("no authenticator configured")
)

// Authenticator runs the unlock challenge.
type Authenticator interface {
	// Authenticate returns nil on success, ErrDenied on failure or cancel,
	// ErrUnavailable when the challenge cannot be run at all.
	Authenticate(ctx context.Context, reason string) error
}

// Settings is the slice of the config store the controller persists through.
type Settings interface {
	LockEnabled() bool
	SetLockEnabled(bool) error
	LockPassphraseHash() string
	SetLockPassphraseHash(string) error
}

// Controller is the lock state machine. All transitions happen under one
// mutex; the challenge itself runs outside it since it can block on the
// user indefinitely.
type Controller struct {
	settings Settings
	auth     Authenticator
	log      *logger.Logger

	// now is swappable for tests.
	now func() time.Time

	mu           sync.Mutex
	locked       bool
	lastActivity time.Time
}

// New builds a controller. Initial state is Locked exactly when the lock
// was enabled at last run.
func New(settings Settings, auth Authenticator, log *logger.Logger) *Controller {
	c := &Controller{
		settings: settings,
		auth:     auth,
		log:      log,
		now:      time.Now,
	}
	c.locked = settings.LockEnabled()
	c.lastActivity = c.now()
	return c
}

// Locked reports the current state.
func (c *Controller) Locked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked
}

// Enabled reports whether the lock feature is turned on.
func (c *Controller) Enabled() bool {
	return c.settings.LockEnabled()
}

// Enable turns the lock on. The challenge runs first and the flag persists
// only when it succeeds; on failure or cancel the toggle stays off rather
// than claiming a protection that was never verified.
func (c *Controller) Enable(ctx context.Context) error {
	if err := c.auth.Authenticate(ctx, "confirm passphrase to enable the session lock"); err != nil {
		c.log.WithComponent("session").WithError(err).Warn("enable rejected, leaving lock off")
		return err
	}
	return c.settings.SetLockEnabled(true)
}

// Disable turns the lock off and unlocks.
func (c *Controller) Disable() error {
	if err := c.settings.SetLockEnabled(false); err != nil {
		return err
	}
	c.mu.Lock()
	c.locked = false
	c.mu.Unlock()
	return nil
}

// Lock transitions to Locked. No-op while the feature is disabled, so a
// disabled session can never end up locked.
func (c *Controller) Lock() {
	if !c.settings.LockEnabled() {
		return
	}
	c.mu.Lock()
	c.locked = true
	c.mu.Unlock()
}

// Authenticate runs the unlock challenge. Success unlocks and resets the
// activity clock. Failure leaves the session locked. The one exception: if
// no authenticator exists on this machine at all, the session fails open so
// the user is not permanently stranded. Logged loudly, never silent.
func (c *Controller) Authenticate(ctx context.Context) error {
	if !c.Locked() {
		return nil
	}

	err := c.auth.Authenticate(ctx, "unlock your trading dashboard")
	switch {
	case err == nil:
		c.unlock()
		return nil
	case errors.Is(err, ErrUnavailable):
		c.log.WithComponent("session").Warn("no authenticator configured, failing open")
		c.unlock()
		return nil
	default:
		// Stay locked.
		return err
	}
}

func (c *Controller) unlock() {
	c.mu.Lock()
	c.locked = false
	c.lastActivity = c.now()
	c.mu.Unlock()
}

// RecordActivity resets the idle clock. Called on meaningful interaction.
func (c *Controller) RecordActivity() {
	c.mu.Lock()
	c.lastActivity = c.now()
	c.mu.Unlock()
}

// CheckIdle re-locks when the session has been idle past the timeout.
// Idempotent; the ticker and the foreground-resume path both call it.
func (c *Controller) CheckIdle() {
	if !c.settings.LockEnabled() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked {
		return
	}
	if c.now().Sub(c.lastActivity) >= idleTimeout {
		c.locked = true
		c.log.WithComponent("session").Info("idle timeout, locking")
	}
}

// Run drives the periodic idle check until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(idleCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.CheckIdle()
		}
	}
}
