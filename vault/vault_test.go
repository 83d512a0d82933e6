package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVault_Roundtrip(t *testing.T) {
	dir := t.TempDir()

	v, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, v.Set("portal_password", "hunter2"))
	got, err := v.Get("portal_password")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)

	// Survives reopening with the same master key.
	v2, err := Open(dir)
	require.NoError(t, err)
	got, err = v2.Get("portal_password")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
}

func TestVault_Missing(t *testing.T) {
	v, err := Open(t.TempDir())
	require.NoError(t, err)

	_, err = v.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVault_Delete(t *testing.T) {
	v, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, v.Set("k", "v"))
	require.NoError(t, v.Delete("k"))
	_, err = v.Get("k")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is fine.
	require.NoError(t, v.Delete("k"))
}

func TestVault_SecretsNotPlaintextOnDisk(t *testing.T) {
	dir := t.TempDir()
	v, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, v.Set("portal_password", "very-secret-value"))

	raw, err := os.ReadFile(filepath.Join(dir, "secrets.bin"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "very-secret-value")
}

func TestVault_TamperDetection(t *testing.T) {
	dir := t.TempDir()
	v, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, v.Set("k", "v"))

	path := filepath.Join(dir, "secrets.bin")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(path, raw, 0600))

	_, err = v.Get("k")
	assert.Error(t, err)
}
