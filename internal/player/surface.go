package player

import (
	"context"
	"errors"
)

// ErrNoVideo is returned by surfaces asked about playback before Load.
var ErrNoVideo = errors.New("no video loaded")

// Surface is the element that actually plays video. Queries may block until
// the element answers; implementations must honor ctx.
type Surface interface {
	Load(ctx context.Context, videoID string, startSeconds int) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Seek(ctx context.Context, seconds int) error
	SeekBy(ctx context.Context, deltaSeconds int) error
	SetRate(ctx context.Context, rate float64) error
	CurrentTime(ctx context.Context) (float64, error)
	CurrentTitle(ctx context.Context) (string, error)
}
