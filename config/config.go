// Package config owns the server connection settings: where the bot server
// lives, how to authenticate against it, and the SSH credentials for the
// terminal session. Non-secret fields persist to a YAML file, secrets to the
// vault. Writes are write-through so nothing is lost on a crash.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/botdeck/logger"
	"github.com/rustyeddy/botdeck/vault"
)

// Vault secret names.
const (
	secretUsername       = "portal_username"
	secretPassword       = "portal_password"
	secretSSHPassword    = "ssh_password"
	secretLockEnabled    = "lock_enabled"
	secretLockPassphrase = "lock_passphrase_hash"
)

// Config is a consistent snapshot of every connection setting. API requests
// capture one snapshot up front rather than re-reading field by field, so a
// concurrent settings edit can never produce a torn base-URL/credential pair.
type Config struct {
	ServerURL   string
	Username    string
	Password    string
	SSHHost     string
	SSHPort     string
	SSHUser     string
	SSHPassword string
}

// fileConfig is the on-disk YAML shape. The secret fields are legacy: early
// versions kept credentials in the plain file, and Open migrates them into
// the vault on first sight.
type fileConfig struct {
	ServerURL string `yaml:"server_url"`
	SSHHost   string `yaml:"ssh_host,omitempty"`
	SSHPort   string `yaml:"ssh_port,omitempty"`
	SSHUser   string `yaml:"ssh_user,omitempty"`

	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	SSHPassword string `yaml:"ssh_password,omitempty"`
}

// Store is the shared settings object. Screens read snapshots from it and
// subscribe for change notifications; the settings UI writes through it.
type Store struct {
	mu    sync.RWMutex
	path  string
	vault *vault.Vault
	log   *logger.Logger

	cfg          Config
	lockEnabled  bool
	lockPassHash string

	subs []chan struct{}
}

// Open loads config.yaml from home (creating an empty config when missing),
// migrates any legacy plain-file secrets into the vault, and pulls the
// current secrets out of the vault.
func Open(home string, v *vault.Vault, log *logger.Logger) (*Store, error) {
	s := &Store{
		path:  filepath.Join(home, "config.yaml"),
		vault: v,
		log:   log,
	}

	fc := fileConfig{}
	raw, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := s.migrateLegacySecrets(&fc); err != nil {
		return nil, err
	}

	s.cfg = Config{
		ServerURL: fc.ServerURL,
		SSHHost:   fc.SSHHost,
		SSHPort:   fc.SSHPort,
		SSHUser:   fc.SSHUser,
	}
	s.cfg.Username = s.secret(secretUsername)
	s.cfg.Password = s.secret(secretPassword)
	s.cfg.SSHPassword = s.secret(secretSSHPassword)
	s.lockEnabled = s.secret(secretLockEnabled) == "1"
	s.lockPassHash = s.secret(secretLockPassphrase)

	return s, nil
}

// migrateLegacySecrets moves credentials found in the plain YAML file into
// the vault and strips them from the file. Idempotent: once moved, the
// fields are empty on every later run.
func (s *Store) migrateLegacySecrets(fc *fileConfig) error {
	moved := false
	for _, m := range []struct {
		val  *string
		name string
	}{
		{&fc.Username, secretUsername},
		{&fc.Password, secretPassword},
		{&fc.SSHPassword, secretSSHPassword},
	} {
		if *m.val == "" {
			continue
		}
		if err := s.vault.Set(m.name, *m.val); err != nil {
			return fmt.Errorf("migrate %s: %w", m.name, err)
		}
		*m.val = ""
		moved = true
	}
	if !moved {
		return nil
	}
	s.log.WithComponent("config").Info("migrated plain-file credentials into the vault")
	return s.writeFile(*fc)
}

func (s *Store) secret(name string) string {
	val, err := s.vault.Get(name)
	if err != nil {
		if !errors.Is(err, vault.ErrNotFound) {
			s.log.WithComponent("config").WithError(err).Error("read secret " + name)
		}
		return ""
	}
	return val
}

// Snapshot returns a copy of all connection settings.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Subscribe returns a channel that receives a notification after every
// settings change. Notifications are coalesced; receivers re-read via
// Snapshot.
func (s *Store) Subscribe() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{}, 1)
	s.subs = append(s.subs, ch)
	return ch
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := s.subs
	s.mu.RUnlock()
	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Plain-file setters.

func (s *Store) SetServerURL(v string) error {
	return s.setPlain(func(c *Config) { c.ServerURL = v })
}

func (s *Store) SetSSHHost(v string) error {
	return s.setPlain(func(c *Config) { c.SSHHost = v })
}

func (s *Store) SetSSHPort(v string) error {
	return s.setPlain(func(c *Config) { c.SSHPort = v })
}

func (s *Store) SetSSHUser(v string) error {
	return s.setPlain(func(c *Config) { c.SSHUser = v })
}

func (s *Store) setPlain(apply func(*Config)) error {
	s.mu.Lock()
	apply(&s.cfg)
	fc := fileConfig{
		ServerURL: s.cfg.ServerURL,
		SSHHost:   s.cfg.SSHHost,
		SSHPort:   s.cfg.SSHPort,
		SSHUser:   s.cfg.SSHUser,
	}
	err := s.writeFile(fc)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *Store) writeFile(fc fileConfig) error {
	data, err := yaml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Secret setters.

func (s *Store) SetUsername(v string) error {
	return s.setSecret(secretUsername, v, func(c *Config) { c.Username = v })
}

func (s *Store) SetPassword(v string) error {
	return s.setSecret(secretPassword, v, func(c *Config) { c.Password = v })
}

func (s *Store) SetSSHPassword(v string) error {
	return s.setSecret(secretSSHPassword, v, func(c *Config) { c.SSHPassword = v })
}

func (s *Store) setSecret(name, val string, apply func(*Config)) error {
	if err := s.vault.Set(name, val); err != nil {
		return err
	}
	s.mu.Lock()
	apply(&s.cfg)
	s.mu.Unlock()
	s.notify()
	return nil
}

// Session lock settings. The enabled flag and passphrase hash live in the
// vault alongside the other secrets.

func (s *Store) LockEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lockEnabled
}

func (s *Store) SetLockEnabled(enabled bool) error {
	val := "0"
	if enabled {
		val = "1"
	}
	if err := s.vault.Set(secretLockEnabled, val); err != nil {
		return err
	}
	s.mu.Lock()
	s.lockEnabled = enabled
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Store) LockPassphraseHash() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lockPassHash
}

func (s *Store) SetLockPassphraseHash(hash string) error {
	if err := s.vault.Set(secretLockPassphrase, hash); err != nil {
		return err
	}
	s.mu.Lock()
	s.lockPassHash = hash
	s.mu.Unlock()
	return nil
}
