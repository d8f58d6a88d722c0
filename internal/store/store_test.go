package store

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendFactory func(t *testing.T) Store

func backends() map[string]backendFactory {
	return map[string]backendFactory{
		"memory": func(t *testing.T) Store {
			return NewMemoryStore()
		},
		"prefs": func(t *testing.T) Store {
			return NewPrefsStore(test.NewApp().Preferences())
		},
		"file": func(t *testing.T) Store {
			s, err := NewFileStore(filepath.Join(t.TempDir(), "store.json"), zerolog.Nop())
			require.NoError(t, err)
			return s
		},
		"sqlite": func(t *testing.T) Store {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"), DefaultSQLiteConfig())
			require.NoError(t, err)
			return s
		},
		"badger": func(t *testing.T) Store {
			s, err := OpenBadgerStore("")
			require.NoError(t, err)
			return s
		},
		"redis": func(t *testing.T) Store {
			mr := miniredis.RunT(t)
			s, err := NewRedisStore(RedisConfig{Addr: mr.Addr()}, zerolog.Nop())
			require.NoError(t, err)
			return s
		},
	}
}

func TestStoreContract(t *testing.T) {
	for name, factory := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory(t)
			defer func() { _ = s.Close() }()

			_, ok, err := s.Get(ctx, KeyHistory)
			require.NoError(t, err)
			assert.False(t, ok, "missing key should be absent")

			require.NoError(t, s.Put(ctx, KeyHistory, `[{"id":"a"}]`))
			v, ok, err := s.Get(ctx, KeyHistory)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[{"id":"a"}]`, v)

			// Last write wins
			require.NoError(t, s.Put(ctx, KeyHistory, `[]`))
			v, _, err = s.Get(ctx, KeyHistory)
			require.NoError(t, err)
			assert.Equal(t, `[]`, v)

			// Keys are independent
			require.NoError(t, s.Put(ctx, PositionKey("M7lc1UVf-VE"), "42"))
			v, _, err = s.Get(ctx, KeyHistory)
			require.NoError(t, err)
			assert.Equal(t, `[]`, v)

			require.NoError(t, s.Delete(ctx, KeyHistory))
			_, ok, err = s.Get(ctx, KeyHistory)
			require.NoError(t, err)
			assert.False(t, ok, "deleted key should be absent")

			// Deleting an absent key is not an error
			require.NoError(t, s.Delete(ctx, "never-written"))
		})
	}
}

func TestPositionKey(t *testing.T) {
	assert.Equal(t, "pos_M7lc1UVf-VE", PositionKey("M7lc1UVf-VE"))
}

func TestMemoryStore_Closed(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Close())

	_, _, err := s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Put(context.Background(), "k", "v"), ErrClosed)
}

func TestSQLiteStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persist.db")

	s, err := NewSQLiteStore(path, DefaultSQLiteConfig())
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, KeySession, "state"))
	require.NoError(t, s.Close())

	// Reopen runs the migration again as a no-op
	s, err = NewSQLiteStore(path, DefaultSQLiteConfig())
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	v, ok, err := s.Get(ctx, KeySession)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "state", v)

	var version int
	require.NoError(t, s.DB.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, sqliteSchemaVersion, version)
}

func TestBadgerStore_Persists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := OpenBadgerStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, KeyFavorites, "favs"))
	require.NoError(t, s.Close())

	s, err = OpenBadgerStore(dir)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	v, ok, err := s.Get(ctx, KeyFavorites)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "favs", v)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(RedisConfig{Addr: mr.Addr(), Prefix: "dev1:"}, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.Put(context.Background(), KeyHistory, "h"))

	got, err := mr.Get("dev1:" + KeyHistory)
	require.NoError(t, err)
	assert.Equal(t, "h", got)
	assert.False(t, mr.Exists(KeyHistory), "unprefixed key must not be written")
}

func TestRedisStore_DefaultPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(RedisConfig{Addr: mr.Addr()}, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.Put(context.Background(), KeySession, "x"))
	assert.True(t, mr.Exists(DefaultRedisPrefix+KeySession))
}

func TestRedisStore_ConnectionFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStore(RedisConfig{Addr: addr}, zerolog.Nop())
	assert.Error(t, err)
}

type intBox struct{ N int }

func encodeBox(b intBox) (string, error) { return strconv.Itoa(b.N), nil }

func decodeBox(s string) (intBox, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return intBox{}, errors.New("not a number")
	}
	return intBox{N: n}, nil
}

func TestRepository(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	repo := NewRepository(s, "box", encodeBox, decodeBox)
	assert.Equal(t, "box", repo.Key())

	_, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Save(ctx, intBox{N: 7}))
	got, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, got.N)

	require.NoError(t, s.Put(ctx, "box", "seven"))
	_, ok, err = repo.Load(ctx)
	assert.Error(t, err)
	assert.False(t, ok)
}
