package tokenstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowneywebster/joyful-cargoparcels/pkg/authapi"
)

func sampleCreds() Credentials {
	return Credentials{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().Add(time.Hour).UnixMilli(),
		User: authapi.User{
			ID:    1,
			Name:  "Jane Wanjiru",
			Email: "jane@example.com",
			Role:  authapi.RoleAdmin,
		},
	}
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	creds := sampleCreds()
	require.NoError(t, store.Save(creds))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, creds, got)
}

func TestFileStore_LoadMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_Permissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(sampleCreds()))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_SaveReplaces(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	first := sampleCreds()
	require.NoError(t, store.Save(first))

	second := first
	second.AccessToken = "rotated-access"
	second.RefreshToken = "rotated-refresh"
	require.NoError(t, store.Save(second))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "rotated-access", got.AccessToken)
	assert.Equal(t, "rotated-refresh", got.RefreshToken)
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "credentials.json"), []byte("{not json"), 0o600))

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFileStore_LoadMissingTokensIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	// Valid JSON but a torn record without tokens.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "credentials.json"), []byte(`{"expires_at": 123}`), 0o600))

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFileStore_ClearRemovesEverything(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(sampleCreds()))

	require.NoError(t, store.Clear())

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNotFound)
	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileStore_ClearEmpty(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, store.Clear())
}

func TestMemStore(t *testing.T) {
	store := NewMemStore()

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNotFound)

	creds := sampleCreds()
	require.NoError(t, store.Save(creds))
	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, creds, got)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCredentials_Expired(t *testing.T) {
	now := time.Now()
	creds := Credentials{ExpiresAt: now.UnixMilli()}

	assert.True(t, creds.Expired(now), "expiry instant counts as expired")
	assert.True(t, creds.Expired(now.Add(time.Second)))
	assert.False(t, creds.Expired(now.Add(-time.Second)))
}

func TestCredentials_ExpiresAtTime(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	creds := Credentials{ExpiresAt: at.UnixMilli()}
	assert.True(t, creds.ExpiresAtTime().Equal(at))
}

func TestErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, ErrCorrupt))
	assert.False(t, errors.Is(ErrCorrupt, ErrNotFound))
}
