package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingCredentialFileIsNotAnError(t *testing.T) {
	store, err := NewCredentialStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, err)
	assert.Empty(t, store.Token())
}

func TestSavePersistsAndRestricts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds", "token")

	store, err := NewCredentialStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save("sess_abc"))
	assert.Equal(t, "sess_abc", store.Token())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// A fresh store loads the persisted token
	reloaded, err := NewCredentialStore(path)
	require.NoError(t, err)
	assert.Equal(t, "sess_abc", reloaded.Token())
}

func TestClearIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	store, err := NewCredentialStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save("sess_abc"))

	require.NoError(t, store.Clear())
	assert.Empty(t, store.Token())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing again succeeds even though the file is gone
	require.NoError(t, store.Clear())
}
