package filerepo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-admin-gate/credentials"
	"github.com/jrsteele09/go-admin-gate/credentials/filerepo"
	gateerrors "github.com/jrsteele09/go-admin-gate/internal/errors"
)

func TestGetBeforeAnyWrite(t *testing.T) {
	store, err := filerepo.New(t.TempDir())
	require.NoError(t, err)

	record, err := store.Get()
	require.NoError(t, err)
	require.False(t, record.Exists())
}

func TestSetThenGet(t *testing.T) {
	store, err := filerepo.New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(credentials.Record{PasswordHash: "hash-1"}))

	record, err := store.Get()
	require.NoError(t, err)
	require.True(t, record.Exists())
	require.Equal(t, "hash-1", record.PasswordHash)
}

func TestLastWriteWins(t *testing.T) {
	store, err := filerepo.New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(credentials.Record{PasswordHash: "hash-1"}))
	require.NoError(t, store.Set(credentials.Record{PasswordHash: "hash-2"}))

	record, err := store.Get()
	require.NoError(t, err)
	require.Equal(t, "hash-2", record.PasswordHash)
}

func TestSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := filerepo.New(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(credentials.Record{PasswordHash: "hash-1"}))

	reopened, err := filerepo.New(dir)
	require.NoError(t, err)

	record, err := reopened.Get()
	require.NoError(t, err)
	require.Equal(t, "hash-1", record.PasswordHash)
}

func TestCorruptFileReportsStoreUnavailable(t *testing.T) {
	dir := t.TempDir()

	store, err := filerepo.New(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte("{not json"), 0o600))

	_, err = store.Get()
	require.ErrorIs(t, err, gateerrors.ErrStoreUnavailable)
}

func TestNewRequiresDataFolder(t *testing.T) {
	_, err := filerepo.New("")
	require.Error(t, err)
}
