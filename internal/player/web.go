package player

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ytget/yt-player/internal/platform"
)

// Scripts evaluated against the watch page
const (
	videoElement = "document.getElementsByTagName('video')[0]"

	// HideChromeScript removes page furniture around the player.
	HideChromeScript = `(function() {
	var style = document.createElement('style');
	style.textContent = 'header, #header-bar, .ytd-masthead, #masthead-container, #related, #comments { display: none !important; }';
	document.head.appendChild(style);
})()`

	titleScript = `(function() {
	var t = document.title || '';
	return t.replace(/ - YouTube$/, '');
})()`
)

// DefaultStartSeekDelay is how long after navigation the start position is
// applied; the video element does not exist before the page has loaded.
const DefaultStartSeekDelay = 2 * time.Second

// Evaluator is the embedded browser. Evaluate runs script in the page and
// delivers the JSON-encoded result to result, which may be nil, possibly on
// another goroutine.
type Evaluator interface {
	Navigate(url string)
	Evaluate(script string, result func(string))
}

// WebSurface controls the video element of a YouTube watch page through
// script evaluation. It needs a host that embeds a webview; the desktop
// binaries use ClockSurface instead.
type WebSurface struct {
	eval           Evaluator
	startSeekDelay time.Duration

	mu      sync.Mutex
	videoID string
	seekTmr *time.Timer
}

// NewWebSurface creates a surface over eval.
func NewWebSurface(eval Evaluator) *WebSurface {
	return &WebSurface{eval: eval, startSeekDelay: DefaultStartSeekDelay}
}

// SetStartSeekDelay overrides DefaultStartSeekDelay.
func (w *WebSurface) SetStartSeekDelay(d time.Duration) {
	w.mu.Lock()
	w.startSeekDelay = d
	w.mu.Unlock()
}

// Load navigates to the watch page and seeks to startSeconds once the page
// had time to create its video element.
func (w *WebSurface) Load(ctx context.Context, videoID string, startSeconds int) error {
	w.mu.Lock()
	if w.seekTmr != nil {
		w.seekTmr.Stop()
		w.seekTmr = nil
	}
	w.videoID = videoID
	delay := w.startSeekDelay
	if startSeconds > 0 {
		w.seekTmr = time.AfterFunc(delay, func() {
			w.eval.Evaluate(seekScript(startSeconds), nil)
		})
	}
	w.mu.Unlock()

	w.eval.Navigate(platform.VideoURL(videoID))
	return nil
}

// PageLoaded must be called by the host when navigation finishes.
func (w *WebSurface) PageLoaded() {
	w.eval.Evaluate(HideChromeScript, nil)
}

func (w *WebSurface) Play(ctx context.Context) error {
	return w.run(videoElement + ".play()")
}

func (w *WebSurface) Pause(ctx context.Context) error {
	return w.run(videoElement + ".pause()")
}

func (w *WebSurface) Seek(ctx context.Context, seconds int) error {
	return w.run(seekScript(max(seconds, 0)))
}

func (w *WebSurface) SeekBy(ctx context.Context, deltaSeconds int) error {
	op := "+="
	if deltaSeconds < 0 {
		op, deltaSeconds = "-=", -deltaSeconds
	}
	return w.run(fmt.Sprintf("%s.currentTime %s %d", videoElement, op, deltaSeconds))
}

func (w *WebSurface) SetRate(ctx context.Context, rate float64) error {
	return w.run(fmt.Sprintf("%s.playbackRate = %s", videoElement, strconv.FormatFloat(rate, 'f', -1, 64)))
}

// CurrentTime asks the page for the video position.
func (w *WebSurface) CurrentTime(ctx context.Context) (float64, error) {
	raw, err := w.query(ctx, videoElement+".currentTime")
	if err != nil {
		return 0, err
	}
	return parseTime(raw)
}

// CurrentTitle asks the page for its title without the site suffix.
func (w *WebSurface) CurrentTitle(ctx context.Context) (string, error) {
	raw, err := w.query(ctx, titleScript)
	if err != nil {
		return "", err
	}
	var title string
	if err := json.Unmarshal([]byte(raw), &title); err != nil {
		return "", fmt.Errorf("unexpected title result %q: %w", raw, err)
	}
	return strings.TrimSpace(title), nil
}

func (w *WebSurface) run(script string) error {
	if !w.loaded() {
		return ErrNoVideo
	}
	w.eval.Evaluate(script, nil)
	return nil
}

func (w *WebSurface) query(ctx context.Context, script string) (string, error) {
	if !w.loaded() {
		return "", ErrNoVideo
	}
	ch := make(chan string, 1)
	w.eval.Evaluate(script, func(result string) {
		select {
		case ch <- result:
		default:
		}
	})
	select {
	case res := <-ch:
		return res, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (w *WebSurface) loaded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.videoID != ""
}

func seekScript(seconds int) string {
	return fmt.Sprintf("%s.currentTime = %d", videoElement, seconds)
}

// parseTime reads a JSON number result; the page answers "null" while the
// video element is missing.
func parseTime(raw string) (float64, error) {
	raw = strings.Trim(strings.TrimSpace(raw), `"`)
	if raw == "" || raw == "null" || raw == "undefined" {
		return 0, ErrNoVideo
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected time result %q: %w", raw, err)
	}
	if v < 0 {
		v = 0
	}
	return v, nil
}
