package player

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/ytget/yt-player/internal/model"
	"github.com/ytget/yt-player/internal/session"
)

// fakeSurface records commands and reports a fixed position.
type fakeSurface struct {
	mu       sync.Mutex
	loaded   string
	start    int
	seeks    []int
	rate     float64
	playing  bool
	position float64
	title    string
	loadErr  error
}

func (f *fakeSurface) Load(ctx context.Context, id string, start int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return f.loadErr
	}
	f.loaded, f.start, f.playing = id, start, true
	return nil
}

func (f *fakeSurface) Play(ctx context.Context) error {
	f.mu.Lock()
	f.playing = true
	f.mu.Unlock()
	return nil
}

func (f *fakeSurface) Pause(ctx context.Context) error {
	f.mu.Lock()
	f.playing = false
	f.mu.Unlock()
	return nil
}

func (f *fakeSurface) Seek(ctx context.Context, s int) error { return f.SeekBy(ctx, s) }

func (f *fakeSurface) SeekBy(ctx context.Context, d int) error {
	f.mu.Lock()
	f.seeks = append(f.seeks, d)
	f.mu.Unlock()
	return nil
}

func (f *fakeSurface) SetRate(ctx context.Context, r float64) error {
	f.mu.Lock()
	f.rate = r
	f.mu.Unlock()
	return nil
}

func (f *fakeSurface) CurrentTime(ctx context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position, nil
}

func (f *fakeSurface) CurrentTitle(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.title, nil
}

type playLog struct {
	mu    sync.Mutex
	plays []model.VideoRef
}

func (p *playLog) RecordPlay(ctx context.Context, ref model.VideoRef) {
	p.mu.Lock()
	p.plays = append(p.plays, ref)
	p.mu.Unlock()
}

type positions map[string]int

func (p positions) Position(ctx context.Context, id string) int { return p[id] }

type saverLog struct {
	mu    sync.Mutex
	snaps []session.Snapshot
}

func (s *saverLog) SaveSnapshot(ctx context.Context, snap session.Snapshot) {
	s.mu.Lock()
	s.snaps = append(s.snaps, snap)
	s.mu.Unlock()
}

var demo = model.VideoRef{ID: "M7lc1UVf-VE", Title: "Demo"}

func TestController_LoadVideo(t *testing.T) {
	ctx := context.Background()
	surface := &fakeSurface{}
	plays := &playLog{}
	c := NewController(surface, plays, positions{demo.ID: 75}, zerolog.Nop())

	var states []model.PlaybackStatus
	c.OnChange(func(s State) { states = append(states, s.Status) })

	if err := c.LoadVideo(ctx, demo); err != nil {
		t.Fatal(err)
	}
	if surface.loaded != demo.ID || surface.start != 75 {
		t.Errorf("surface loaded %q at %d", surface.loaded, surface.start)
	}
	if len(plays.plays) != 1 || plays.plays[0] != demo {
		t.Errorf("history plays = %v", plays.plays)
	}
	st := c.State()
	if st.Status != model.PlaybackPlaying || st.Ref != demo || st.Rate != model.DefaultPlaybackRate {
		t.Errorf("state = %+v", st)
	}
	if len(states) == 0 || states[0] != model.PlaybackLoading || states[len(states)-1] != model.PlaybackPlaying {
		t.Errorf("state transitions = %v", states)
	}
}

func TestController_LoadRejectsBadID(t *testing.T) {
	c := NewController(&fakeSurface{}, nil, nil, zerolog.Nop())
	if err := c.LoadVideo(context.Background(), model.VideoRef{ID: "nope"}); !errors.Is(err, model.ErrInvalidVideoID) {
		t.Errorf("expected ErrInvalidVideoID, got %v", err)
	}
	if c.State().Status != model.PlaybackIdle {
		t.Error("status changed on invalid load")
	}
}

func TestController_LoadFailureReturnsToIdle(t *testing.T) {
	boom := errors.New("renderer crashed")
	plays := &playLog{}
	c := NewController(&fakeSurface{loadErr: boom}, plays, nil, zerolog.Nop())
	if err := c.LoadVideo(context.Background(), demo); !errors.Is(err, boom) {
		t.Errorf("expected load error, got %v", err)
	}
	if c.State().Status != model.PlaybackIdle {
		t.Errorf("status = %s", c.State().Status)
	}
	if len(plays.plays) != 0 {
		t.Error("failed load must not enter history")
	}
}

func TestController_Restore(t *testing.T) {
	surface := &fakeSurface{}
	c := NewController(surface, nil, nil, zerolog.Nop())

	err := c.Restore(context.Background(), model.SessionState{Ref: demo, Position: 300, PlaybackRate: 1.5})
	if err != nil {
		t.Fatal(err)
	}
	if surface.start != 300 || surface.rate != 1.5 || c.State().Rate != 1.5 {
		t.Errorf("restore applied start=%d rate=%v state=%+v", surface.start, surface.rate, c.State())
	}
}

func TestController_PlayPauseSaves(t *testing.T) {
	ctx := context.Background()
	surface := &fakeSurface{position: 42.9, title: "Page Title"}
	saver := &saverLog{}
	c := NewController(surface, nil, nil, zerolog.Nop())
	c.SetSaver(saver)
	_ = c.LoadVideo(ctx, demo)

	if err := c.TogglePlayPause(ctx); err != nil {
		t.Fatal(err)
	}
	if c.State().Status != model.PlaybackPaused || surface.playing {
		t.Errorf("toggle did not pause: %+v", c.State())
	}
	if len(saver.snaps) != 1 {
		t.Fatalf("pause saved %d snapshots", len(saver.snaps))
	}
	snap := saver.snaps[0]
	if snap.Position != 42 || snap.Ref.Title != "Page Title" || snap.Status != model.PlaybackPaused {
		t.Errorf("snapshot = %+v", snap)
	}
	if c.State().Ref.Title != "Page Title" {
		t.Error("page title not adopted")
	}

	_ = c.TogglePlayPause(ctx)
	if c.State().Status != model.PlaybackPlaying || !surface.playing {
		t.Error("toggle did not resume")
	}

	_ = c.Stop(ctx)
	if c.State().Status != model.PlaybackStopped || len(saver.snaps) != 2 {
		t.Errorf("stop: state=%+v saves=%d", c.State(), len(saver.snaps))
	}
}

func TestController_StopWhenIdleIsNoop(t *testing.T) {
	saver := &saverLog{}
	c := NewController(&fakeSurface{}, nil, nil, zerolog.Nop())
	c.SetSaver(saver)
	if err := c.Stop(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(saver.snaps) != 0 {
		t.Error("idle stop saved a snapshot")
	}
}

func TestController_SeekAndSpeed(t *testing.T) {
	ctx := context.Background()
	surface := &fakeSurface{}
	c := NewController(surface, nil, nil, zerolog.Nop())
	_ = c.LoadVideo(ctx, demo)

	_ = c.Rewind(ctx)
	_ = c.Forward(ctx)
	if len(surface.seeks) != 2 || surface.seeks[0] != -15 || surface.seeks[1] != 30 {
		t.Errorf("seeks = %v", surface.seeks)
	}

	_ = c.SpeedUp(ctx)
	if c.State().Rate != 1.025 {
		t.Errorf("rate after SpeedUp = %v", c.State().Rate)
	}
	_ = c.SpeedDown(ctx)
	_ = c.SpeedDown(ctx)
	if c.State().Rate != 0.975 {
		t.Errorf("rate after SpeedDown = %v", c.State().Rate)
	}

	_ = c.SetRate(ctx, 0.26)
	_ = c.SpeedDown(ctx)
	if c.State().Rate != model.MinPlaybackRate {
		t.Errorf("rate should clamp to %v, got %v", model.MinPlaybackRate, c.State().Rate)
	}
	_ = c.SetRate(ctx, 3.99)
	_ = c.SpeedUp(ctx)
	if c.State().Rate != model.MaxPlaybackRate || surface.rate != model.MaxPlaybackRate {
		t.Errorf("rate should clamp to %v, got %v", model.MaxPlaybackRate, c.State().Rate)
	}
}

func TestController_SnapshotIsAsync(t *testing.T) {
	surface := &fakeSurface{position: 12}
	c := NewController(surface, nil, nil, zerolog.Nop())
	_ = c.LoadVideo(context.Background(), demo)

	got := make(chan session.Snapshot, 1)
	c.Snapshot(context.Background(), func(s session.Snapshot) { got <- s })

	select {
	case s := <-got:
		if s.Position != 12 || s.Status != model.PlaybackPlaying || s.Ref.ID != demo.ID {
			t.Errorf("snapshot = %+v", s)
		}
	case <-time.After(time.Second):
		t.Fatal("snapshot callback never ran")
	}
}
