package session

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/ytget/yt-player/internal/model"
)

// DefaultAutosaveInterval is the tick period while playback is active.
const DefaultAutosaveInterval = 5 * time.Second

// Snapshot is what the playback surface reports at a save point.
type Snapshot struct {
	Ref      model.VideoRef
	Position int // seconds
	Rate     float64
	Status   model.PlaybackStatus
}

// Probe asks the playback surface for a Snapshot. The answer may arrive on
// another goroutine and after the triggering call returned; done is called
// at most once.
type Probe interface {
	Snapshot(ctx context.Context, done func(Snapshot))
}

// ProgressRecorder receives the position for the history entry of a video.
type ProgressRecorder interface {
	UpdateProgress(ctx context.Context, id string, position int, title string) error
}

// Autosaver periodically writes the playback state, the history progress and
// the per-video position.
type Autosaver struct {
	session  *Session
	history  ProgressRecorder
	probe    Probe
	interval time.Duration
	logger   zerolog.Logger
}

// NewAutosaver creates an autosaver. A non-positive interval uses
// DefaultAutosaveInterval.
func NewAutosaver(s *Session, history ProgressRecorder, probe Probe, interval time.Duration, logger zerolog.Logger) *Autosaver {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	return &Autosaver{
		session:  s,
		history:  history,
		probe:    probe,
		interval: interval,
		logger:   logger,
	}
}

// Interval returns the tick period.
func (a *Autosaver) Interval() time.Duration {
	return a.interval
}

// Run saves on every tick while playback is active. It returns when ctx is
// cancelled.
func (a *Autosaver) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.logger.Debug().Dur("interval", a.interval).Msg("autosave started")
	for {
		select {
		case <-ctx.Done():
			a.logger.Debug().Msg("autosave stopped")
			return nil
		case <-ticker.C:
			a.probe.Snapshot(ctx, func(snap Snapshot) {
				if !snap.Status.IsActive() {
					return
				}
				// A late answer still saves, with whatever now is current.
				a.save(context.WithoutCancel(ctx), snap)
			})
		}
	}
}

// Flush performs one save regardless of status, for pause, stop and
// shutdown edges. It waits for the probe to answer or ctx to end.
func (a *Autosaver) Flush(ctx context.Context) error {
	done := make(chan struct{})
	a.probe.Snapshot(ctx, func(snap Snapshot) {
		defer close(done)
		a.save(context.WithoutCancel(ctx), snap)
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SaveSnapshot writes snap directly, for callers that already know the state.
func (a *Autosaver) SaveSnapshot(ctx context.Context, snap Snapshot) {
	a.save(ctx, snap)
}

func (a *Autosaver) save(ctx context.Context, snap Snapshot) {
	if snap.Ref.ID == "" {
		return
	}
	a.session.Save(ctx, snap.Ref, snap.Position, snap.Rate)
	a.session.SavePosition(ctx, snap.Ref.ID, snap.Position)
	if a.history == nil {
		return
	}
	if err := a.history.UpdateProgress(ctx, snap.Ref.ID, snap.Position, snap.Ref.Title); err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Warn().Err(err).Str("video_id", snap.Ref.ID).Msg("failed to update history progress")
	}
}
