package session

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/ytget/yt-player/internal/codec"
	"github.com/ytget/yt-player/internal/model"
	"github.com/ytget/yt-player/internal/store"
)

// DefaultRestoreWindow is how long a saved session stays eligible for the
// resume prompt.
const DefaultRestoreWindow = 24 * time.Hour

// Session owns the singleton last-playback state and the per-video resume
// positions.
type Session struct {
	mu            sync.Mutex
	store         store.Store
	repo          *store.Repository[model.SessionState]
	now           func() time.Time
	restoreWindow time.Duration
	logger        zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithRestoreWindow overrides DefaultRestoreWindow.
func WithRestoreWindow(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.restoreWindow = d
		}
	}
}

// New creates a Session persisted in st.
func New(st store.Store, logger zerolog.Logger, opts ...Option) *Session {
	s := &Session{
		store:         st,
		repo:          store.NewRepository(st, store.KeySession, codec.EncodeSession, codec.DecodeSession),
		now:           time.Now,
		restoreWindow: DefaultRestoreWindow,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RestoreWindow returns the configured restore window.
func (s *Session) RestoreWindow() time.Duration {
	return s.restoreWindow
}

// Save overwrites the last playback state with SavedAt set to now. The rate
// is clamped to the supported range. Write failures are logged.
func (s *Session) Save(ctx context.Context, ref model.VideoRef, position int, rate float64) model.SessionState {
	state := model.SessionState{
		Ref:          ref,
		Position:     max(position, 0),
		PlaybackRate: model.ClampRate(rate),
		SavedAt:      s.now().Truncate(time.Millisecond),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Save(ctx, state); err != nil {
		s.logger.Warn().Err(err).Str("video_id", ref.ID).Msg("failed to save playback state")
	}
	return state
}

// LoadForRestorePrompt returns the saved state while it is younger than the
// restore window. It never modifies the stored record.
func (s *Session) LoadForRestorePrompt(ctx context.Context) (model.SessionState, bool) {
	s.mu.Lock()
	state, ok, err := s.repo.Load(ctx)
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn().Err(err).Msg("ignoring unreadable playback state")
		return model.SessionState{}, false
	}
	if !ok {
		return model.SessionState{}, false
	}
	if age := state.Age(s.now()); age >= s.restoreWindow {
		s.logger.Debug().Dur("age", age).Msg("playback state too old to restore")
		return model.SessionState{}, false
	}
	return state, true
}

// SavePosition stores the resume position for one video.
func (s *Session) SavePosition(ctx context.Context, id string, seconds int) {
	if id == "" {
		return
	}
	if err := s.store.Put(ctx, store.PositionKey(id), strconv.Itoa(max(seconds, 0))); err != nil {
		s.logger.Warn().Err(err).Str("video_id", id).Msg("failed to save position")
	}
}

// Position returns the stored resume position for id, or 0.
func (s *Session) Position(ctx context.Context, id string) int {
	raw, ok, err := s.store.Get(ctx, store.PositionKey(id))
	if err != nil || !ok {
		if err != nil {
			s.logger.Warn().Err(err).Str("video_id", id).Msg("failed to read position")
		}
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// Older builds stored fractional seconds
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			s.logger.Warn().Err(errors.Join(err, ferr)).Str("video_id", id).Msg("ignoring unreadable position")
			return 0
		}
		n = int(f)
	}
	return max(n, 0)
}

// ClearPosition forgets the resume position for id.
func (s *Session) ClearPosition(ctx context.Context, id string) {
	if err := s.store.Delete(ctx, store.PositionKey(id)); err != nil {
		s.logger.Warn().Err(err).Str("video_id", id).Msg("failed to clear position")
	}
}
