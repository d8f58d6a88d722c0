package store

import (
	"context"

	"fyne.io/fyne/v2"
)

// PrefsStore keeps values in the platform preference store exposed by
// fyne.App.Preferences(). An empty string reads as absent because the
// preference API has no existence check and persisted values are never empty.
type PrefsStore struct {
	prefs fyne.Preferences
}

// NewPrefsStore wraps the given preferences.
func NewPrefsStore(prefs fyne.Preferences) *PrefsStore {
	return &PrefsStore{prefs: prefs}
}

func (s *PrefsStore) Get(ctx context.Context, key string) (string, bool, error) {
	v := s.prefs.String(key)
	if v == "" {
		return "", false, nil
	}
	return v, true, nil
}

func (s *PrefsStore) Put(ctx context.Context, key, value string) error {
	s.prefs.SetString(key, value)
	return nil
}

func (s *PrefsStore) Delete(ctx context.Context, key string) error {
	s.prefs.RemoveValue(key)
	return nil
}

// Close is a no-op; the app owns the preference file.
func (s *PrefsStore) Close() error {
	return nil
}
