package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/octabyte/bm-social/errs"
	"github.com/octabyte/bm-social/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSession = models.Session{
	Token:     "header.payload.signature",
	UserID:    "42",
	Email:     "ana@example.com",
	FirstName: "Ana",
	LastName:  "Silva",
}

func localStores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "nested", "session.json")),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range localStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Load(ctx)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Save(ctx, testSession))

			loaded, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, testSession, loaded)

			require.NoError(t, store.Clear(ctx))
			_, err = store.Load(ctx)
			assert.ErrorIs(t, err, ErrNotFound)

			// Clearing twice is fine.
			assert.NoError(t, store.Clear(ctx))
		})
	}
}

func TestStoreSaveReplacesWholeSession(t *testing.T) {
	for name, store := range localStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Save(ctx, testSession))
			require.NoError(t, store.Save(ctx, models.Session{Token: "other"}))

			loaded, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, models.Session{Token: "other"}, loaded)
		})
	}
}

func TestFileStoreLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save(context.Background(), testSession))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"token": "header.payload.signature",
		"userId": "42",
		"email": "ana@example.com",
		"firstName": "Ana",
		"lastName": "Silva"
	}`, string(data))
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	sc := NewContext(NewMemoryStore())

	_, err := sc.Token(ctx)
	assert.ErrorIs(t, err, errs.ErrNoSession)
	_, err = sc.Current(ctx)
	assert.ErrorIs(t, err, errs.ErrNoSession)

	require.NoError(t, sc.Save(ctx, testSession))
	token, err := sc.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, testSession.Token, token)

	require.NoError(t, sc.Save(ctx, models.Session{Email: "no-token@example.com"}))
	_, err = sc.Token(ctx)
	assert.ErrorIs(t, err, errs.ErrNoSession)

	require.NoError(t, sc.Clear(ctx))
	_, err = sc.Current(ctx)
	assert.ErrorIs(t, err, errs.ErrNoSession)
}
