package player

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/ytget/yt-player/internal/model"
	"github.com/ytget/yt-player/internal/session"
)

// Chrome actions
const (
	RewindSeconds  = 15
	ForwardSeconds = 30
	RateStep       = 0.025
)

// queryTimeout bounds surface queries made on behalf of the autosaver.
const queryTimeout = 3 * time.Second

// PlayRecorder records that a video started playing.
type PlayRecorder interface {
	RecordPlay(ctx context.Context, ref model.VideoRef)
}

// PositionStore returns the stored resume position of a video.
type PositionStore interface {
	Position(ctx context.Context, id string) int
}

// SnapshotSaver persists a snapshot at pause and stop edges.
type SnapshotSaver interface {
	SaveSnapshot(ctx context.Context, snap session.Snapshot)
}

// State is what the chrome renders.
type State struct {
	Ref    model.VideoRef
	Status model.PlaybackStatus
	Rate   float64
}

// Controller implements the player chrome over a Surface.
type Controller struct {
	surface   Surface
	history   PlayRecorder
	positions PositionStore
	logger    zerolog.Logger

	mu       sync.Mutex
	current  model.VideoRef
	status   model.PlaybackStatus
	rate     float64
	saver    SnapshotSaver
	onChange func(State)
}

// NewController creates a controller. history and positions may be nil.
func NewController(surface Surface, history PlayRecorder, positions PositionStore, logger zerolog.Logger) *Controller {
	return &Controller{
		surface:   surface,
		history:   history,
		positions: positions,
		logger:    logger,
		status:    model.PlaybackIdle,
		rate:      model.DefaultPlaybackRate,
	}
}

// SetSaver installs the saver used on pause and stop.
func (c *Controller) SetSaver(saver SnapshotSaver) {
	c.mu.Lock()
	c.saver = saver
	c.mu.Unlock()
}

// OnChange registers a callback for state changes. It runs on the caller's
// goroutine after the lock is released.
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Ref: c.current, Status: c.status, Rate: c.rate}
}

// LoadVideo records ref in history and starts it at its stored position.
func (c *Controller) LoadVideo(ctx context.Context, ref model.VideoRef) error {
	start := 0
	if c.positions != nil {
		start = c.positions.Position(ctx, ref.ID)
	}
	return c.load(ctx, ref, start, 0)
}

// Restore resumes a saved session at its position and rate.
func (c *Controller) Restore(ctx context.Context, state model.SessionState) error {
	return c.load(ctx, state.Ref, state.Position, state.PlaybackRate)
}

func (c *Controller) load(ctx context.Context, ref model.VideoRef, start int, rate float64) error {
	if !model.IsValidVideoID(ref.ID) {
		return fmt.Errorf("load %q: %w", ref.ID, model.ErrInvalidVideoID)
	}

	c.setState(func() {
		c.current = ref
		c.status = model.PlaybackLoading
	})

	if err := c.surface.Load(ctx, ref.ID, start); err != nil {
		c.setState(func() { c.status = model.PlaybackIdle })
		return fmt.Errorf("load %s: %w", ref.ID, err)
	}
	if c.history != nil {
		c.history.RecordPlay(ctx, ref)
	}
	if rate > 0 {
		if err := c.SetRate(ctx, rate); err != nil {
			c.logger.Warn().Err(err).Msg("failed to apply restored rate")
		}
	} else {
		// The page starts at normal speed
		c.setState(func() { c.rate = model.DefaultPlaybackRate })
	}

	c.logger.Info().Str("video_id", ref.ID).Int("start", start).Msg("video loaded")
	c.setState(func() { c.status = model.PlaybackPlaying })
	return nil
}

// TogglePlayPause pauses active playback and resumes anything else.
func (c *Controller) TogglePlayPause(ctx context.Context) error {
	if c.State().Status.IsActive() {
		return c.Pause(ctx)
	}
	return c.Play(ctx)
}

func (c *Controller) Play(ctx context.Context) error {
	if err := c.surface.Play(ctx); err != nil {
		return err
	}
	c.setState(func() { c.status = model.PlaybackPlaying })
	return nil
}

// Pause pauses and saves the playback state.
func (c *Controller) Pause(ctx context.Context) error {
	if err := c.surface.Pause(ctx); err != nil {
		return err
	}
	c.setState(func() { c.status = model.PlaybackPaused })
	c.saveNow(ctx)
	return nil
}

// Stop pauses, saves and marks playback stopped.
func (c *Controller) Stop(ctx context.Context) error {
	if c.State().Status == model.PlaybackIdle {
		return nil
	}
	if err := c.surface.Pause(ctx); err != nil {
		return err
	}
	c.setState(func() { c.status = model.PlaybackStopped })
	c.saveNow(ctx)
	return nil
}

// Rewind jumps back RewindSeconds.
func (c *Controller) Rewind(ctx context.Context) error {
	return c.surface.SeekBy(ctx, -RewindSeconds)
}

// Forward jumps ahead ForwardSeconds.
func (c *Controller) Forward(ctx context.Context) error {
	return c.surface.SeekBy(ctx, ForwardSeconds)
}

// SeekTo jumps to an absolute position.
func (c *Controller) SeekTo(ctx context.Context, seconds int) error {
	return c.surface.Seek(ctx, seconds)
}

// SpeedUp raises the rate by RateStep.
func (c *Controller) SpeedUp(ctx context.Context) error {
	return c.SetRate(ctx, c.State().Rate+RateStep)
}

// SpeedDown lowers the rate by RateStep.
func (c *Controller) SpeedDown(ctx context.Context) error {
	return c.SetRate(ctx, c.State().Rate-RateStep)
}

// SetRate applies rate clamped to the supported range.
func (c *Controller) SetRate(ctx context.Context, rate float64) error {
	rate = model.ClampRate(math.Round(rate*1000) / 1000)
	if err := c.surface.SetRate(ctx, rate); err != nil {
		return err
	}
	c.setState(func() { c.rate = rate })
	return nil
}

// Snapshot implements session.Probe. The surface is queried on its own
// goroutine so a slow page never blocks the caller.
func (c *Controller) Snapshot(ctx context.Context, done func(session.Snapshot)) {
	st := c.State()
	go func() {
		qctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), queryTimeout)
		defer cancel()
		done(c.snapshot(qctx, st))
	}()
}

func (c *Controller) snapshot(ctx context.Context, st State) session.Snapshot {
	snap := session.Snapshot{Ref: st.Ref, Rate: st.Rate, Status: st.Status}
	if st.Ref.ID == "" {
		return snap
	}
	if t, err := c.surface.CurrentTime(ctx); err == nil {
		snap.Position = int(t)
	} else {
		c.logger.Debug().Err(err).Msg("position query failed")
	}
	if title, err := c.surface.CurrentTitle(ctx); err == nil && title != "" {
		snap.Ref.Title = title
		c.mu.Lock()
		if c.current.ID == st.Ref.ID {
			c.current.Title = title
		}
		c.mu.Unlock()
	}
	return snap
}

func (c *Controller) saveNow(ctx context.Context) {
	c.mu.Lock()
	saver := c.saver
	st := State{Ref: c.current, Status: c.status, Rate: c.rate}
	c.mu.Unlock()
	if saver == nil || st.Ref.ID == "" {
		return
	}
	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	saver.SaveSnapshot(ctx, c.snapshot(qctx, st))
}

func (c *Controller) setState(mutate func()) {
	c.mu.Lock()
	mutate()
	st := State{Ref: c.current, Status: c.status, Rate: c.rate}
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}
