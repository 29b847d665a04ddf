package kvstore_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/needhomes/needhomes-go/kvstore"
)

func TestSQLiteSetGetDelete(t *testing.T) {
	repo, err := kvstore.NewSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	defer repo.Close()

	_, ok, err := repo.Get("user")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Set("user", []byte(`{"id":"user-1"}`)))

	value, ok, err := repo.Get("user")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"id":"user-1"}`, string(value))

	// Overwrite
	require.NoError(t, repo.Set("user", []byte(`{"id":"user-2"}`)))
	value, ok, err = repo.Get("user")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"id":"user-2"}`, string(value))

	require.NoError(t, repo.Delete("user"))
	require.NoError(t, repo.Delete("user")) // absent key is not an error

	_, ok, err = repo.Get("user")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")

	repo, err := kvstore.NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, repo.Set("kyc", []byte(`{"status":"PENDING"}`)))
	require.NoError(t, repo.Close())

	reopened, err := kvstore.NewSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get("kyc")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"status":"PENDING"}`, string(value))
}
