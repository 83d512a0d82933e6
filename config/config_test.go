package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/botdeck/logger"
	"github.com/rustyeddy/botdeck/vault"
)

func openTestStore(t *testing.T, home string) *Store {
	t.Helper()
	v, err := vault.Open(home)
	require.NoError(t, err)
	s, err := Open(home, v, logger.Discard())
	require.NoError(t, err)
	return s
}

func TestStore_WriteThrough(t *testing.T) {
	home := t.TempDir()

	s := openTestStore(t, home)
	require.NoError(t, s.SetServerURL("https://bots.example.com"))
	require.NoError(t, s.SetUsername("admin"))
	require.NoError(t, s.SetPassword("hunter2"))
	require.NoError(t, s.SetSSHHost("bots.example.com"))
	require.NoError(t, s.SetSSHPort("2222"))

	// A fresh store over the same home sees everything: each Set persisted
	// immediately, no flush step.
	s2 := openTestStore(t, home)
	cfg := s2.Snapshot()
	assert.Equal(t, "https://bots.example.com", cfg.ServerURL)
	assert.Equal(t, "admin", cfg.Username)
	assert.Equal(t, "hunter2", cfg.Password)
	assert.Equal(t, "bots.example.com", cfg.SSHHost)
	assert.Equal(t, "2222", cfg.SSHPort)
}

func TestStore_SecretsNotInPlainFile(t *testing.T) {
	home := t.TempDir()

	s := openTestStore(t, home)
	require.NoError(t, s.SetPassword("hunter2"))
	require.NoError(t, s.SetUsername("admin"))

	raw, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	if err == nil {
		assert.NotContains(t, string(raw), "hunter2")
		assert.NotContains(t, string(raw), "admin")
	}
}

func TestStore_LegacyMigration(t *testing.T) {
	home := t.TempDir()

	// Simulate an old install that kept credentials in the plain file.
	legacy := "server_url: https://bots.example.com\nusername: olduser\npassword: oldpass\nssh_password: sshpass\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(legacy), 0600))

	s := openTestStore(t, home)
	cfg := s.Snapshot()
	assert.Equal(t, "olduser", cfg.Username)
	assert.Equal(t, "oldpass", cfg.Password)
	assert.Equal(t, "sshpass", cfg.SSHPassword)

	// The plain copies are gone.
	raw, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "oldpass")
	assert.NotContains(t, string(raw), "olduser")
	assert.NotContains(t, string(raw), "sshpass")

	// Second open is a no-op and the secrets survive.
	s2 := openTestStore(t, home)
	assert.Equal(t, "oldpass", s2.Snapshot().Password)
}

func TestStore_Subscribe(t *testing.T) {
	home := t.TempDir()
	s := openTestStore(t, home)

	ch := s.Subscribe()
	require.NoError(t, s.SetServerURL("https://bots.example.com"))

	select {
	case <-ch:
	default:
		t.Fatal("expected a change notification")
	}
}

func TestStore_LockSettings(t *testing.T) {
	home := t.TempDir()
	s := openTestStore(t, home)

	assert.False(t, s.LockEnabled())
	require.NoError(t, s.SetLockEnabled(true))
	require.NoError(t, s.SetLockPassphraseHash("some-hash"))

	s2 := openTestStore(t, home)
	assert.True(t, s2.LockEnabled())
	assert.Equal(t, "some-hash", s2.LockPassphraseHash())
}
