package store

import (
	"context"
	"errors"
)

// Keys used by the catalog and session
const (
	KeyFavorites      = "my_playlist"
	KeyHistory        = "my_history"
	KeySession        = "last_playback_state"
	PositionKeyPrefix = "pos_"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store closed")

// Store is a string-keyed blob store. There are no guarantees across keys;
// the last write to a key wins.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// PositionKey returns the per-video resume position key.
func PositionKey(videoID string) string {
	return PositionKeyPrefix + videoID
}

// Repository binds one key to an encode/decode pair so callers load and save
// typed values instead of raw strings.
type Repository[T any] struct {
	store  Store
	key    string
	encode func(T) (string, error)
	decode func(string) (T, error)
}

// NewRepository creates a typed view over key in s.
func NewRepository[T any](s Store, key string, encode func(T) (string, error), decode func(string) (T, error)) *Repository[T] {
	return &Repository[T]{store: s, key: key, encode: encode, decode: decode}
}

// Key returns the key the repository reads and writes.
func (r *Repository[T]) Key() string {
	return r.key
}

// Load reads and decodes the value. A missing key returns ok=false and no
// error; a value that does not decode returns the decode error.
func (r *Repository[T]) Load(ctx context.Context) (T, bool, error) {
	var zero T
	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil || !ok {
		return zero, false, err
	}
	v, err := r.decode(raw)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Save encodes and writes the value.
func (r *Repository[T]) Save(ctx context.Context, v T) error {
	raw, err := r.encode(v)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, r.key, raw)
}
