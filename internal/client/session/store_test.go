package session

import (
	"context"
	"database/sql"
	"testing"

	"github.com/learnlink/learnlink/internal/client/repositories/metadata"
	"github.com/learnlink/learnlink/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) *metadata.SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	return metadata.NewSQLiteRepository(db)
}

func stores(t *testing.T) map[string]TokenStore {
	return map[string]TokenStore{
		"memory":   NewMemoryTokenStore(),
		"metadata": NewMetadataTokenStore(setupRepo(t)),
	}
}

func TestTokenStore_SetGet(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			got, err := st.Get(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)

			require.NoError(t, st.Set(ctx, "tok-1"))
			require.NoError(t, st.Set(ctx, "tok-2"))

			got, err = st.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, "tok-2", got, "last writer wins")
		})
	}
}

func TestTokenStore_SetEmptyIsNoop(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, st.Set(ctx, "tok"))
			require.NoError(t, st.Set(ctx, ""))

			got, err := st.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, "tok", got)
		})
	}
}

func TestTokenStore_DoubleClear(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, st.Set(ctx, "tok"))

			for i := 0; i < 2; i++ {
				require.NoError(t, st.Clear(ctx), "clear #%d", i+1)
				got, err := st.Get(ctx)
				require.NoError(t, err)
				assert.Empty(t, got, "storage must be empty after clear #%d", i+1)
			}
		})
	}
}

func TestSession_ClearTokenTwice(t *testing.T) {
	repo := setupRepo(t)
	s := newSession(NewMetadataTokenStore(repo))
	ctx := context.Background()

	require.NoError(t, s.SetToken(ctx, "x.y.z"))
	require.NoError(t, s.ClearToken(ctx))
	require.NoError(t, s.ClearToken(ctx))

	v, err := repo.Get(ctx, common.TokenKey)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestMetadataTokenStore_UsesFixedKey(t *testing.T) {
	repo := setupRepo(t)
	st := NewMetadataTokenStore(repo)
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "abc"))

	v, err := repo.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), v)
}
