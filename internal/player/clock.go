package player

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/ytget/yt-player/internal/model"
	"github.com/ytget/yt-player/internal/platform"
)

// URLOpener opens a URL outside the app, e.g. fyne's App.OpenURL.
type URLOpener func(u *url.URL) error

// ClockSurface plays in an external browser and estimates the position from
// the wall clock and the rate. Seeks and rate changes reopen the watch page
// at the new offset.
type ClockSurface struct {
	open URLOpener
	now  func() time.Time

	mu      sync.Mutex
	videoID string
	base    float64 // position at anchor
	anchor  time.Time
	playing bool
	rate    float64
}

// NewClockSurface creates a surface that opens pages with open.
func NewClockSurface(open URLOpener) *ClockSurface {
	return &ClockSurface{open: open, now: time.Now, rate: model.DefaultPlaybackRate}
}

func (c *ClockSurface) Load(ctx context.Context, videoID string, startSeconds int) error {
	c.mu.Lock()
	c.videoID = videoID
	c.base = float64(max(startSeconds, 0))
	c.anchor = c.now()
	c.playing = true
	c.mu.Unlock()
	return c.reopen()
}

func (c *ClockSurface) Play(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.videoID == "" {
		return ErrNoVideo
	}
	if !c.playing {
		c.anchor = c.now()
		c.playing = true
	}
	return nil
}

func (c *ClockSurface) Pause(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.videoID == "" {
		return ErrNoVideo
	}
	if c.playing {
		c.base = c.positionLocked()
		c.playing = false
	}
	return nil
}

func (c *ClockSurface) Seek(ctx context.Context, seconds int) error {
	c.mu.Lock()
	if c.videoID == "" {
		c.mu.Unlock()
		return ErrNoVideo
	}
	c.base = float64(max(seconds, 0))
	c.anchor = c.now()
	c.mu.Unlock()
	return c.reopen()
}

func (c *ClockSurface) SeekBy(ctx context.Context, deltaSeconds int) error {
	c.mu.Lock()
	if c.videoID == "" {
		c.mu.Unlock()
		return ErrNoVideo
	}
	target := int(c.positionLocked()) + deltaSeconds
	c.mu.Unlock()
	return c.Seek(ctx, target)
}

// SetRate changes how fast the estimate advances. The external page keeps
// its own speed control.
func (c *ClockSurface) SetRate(ctx context.Context, rate float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = c.positionLocked()
	c.anchor = c.now()
	c.rate = model.ClampRate(rate)
	return nil
}

func (c *ClockSurface) CurrentTime(ctx context.Context) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.videoID == "" {
		return 0, ErrNoVideo
	}
	return c.positionLocked(), nil
}

// CurrentTitle is unknown for an external page.
func (c *ClockSurface) CurrentTitle(ctx context.Context) (string, error) {
	return "", nil
}

func (c *ClockSurface) positionLocked() float64 {
	if !c.playing {
		return c.base
	}
	return c.base + c.now().Sub(c.anchor).Seconds()*c.rate
}

func (c *ClockSurface) reopen() error {
	c.mu.Lock()
	id, start := c.videoID, int(c.base)
	c.mu.Unlock()

	u, err := url.Parse(platform.VideoURL(id))
	if err != nil {
		return err
	}
	if start > 0 {
		q := u.Query()
		q.Set("t", fmt.Sprintf("%ds", start))
		u.RawQuery = q.Encode()
	}
	if c.open == nil {
		return nil
	}
	return c.open(u)
}
