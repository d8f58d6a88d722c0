package model

import "errors"

var (
	// ErrFormat marks persisted or imported data that does not decode.
	ErrFormat = errors.New("malformed data")
	// ErrAlreadyExists marks a duplicate favorite.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotFound marks an update or removal referencing an absent entry.
	ErrNotFound = errors.New("not found")
	// ErrInvalidVideoID marks input that does not resolve to a video id.
	ErrInvalidVideoID = errors.New("invalid video id")
)
