package player

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeEvaluator records scripts and answers queries from a table.
type fakeEvaluator struct {
	mu        sync.Mutex
	navigated []string
	scripts   []string
	answers   map[string]string
	silent    bool
}

func (f *fakeEvaluator) Navigate(url string) {
	f.mu.Lock()
	f.navigated = append(f.navigated, url)
	f.mu.Unlock()
}

func (f *fakeEvaluator) Evaluate(script string, result func(string)) {
	f.mu.Lock()
	f.scripts = append(f.scripts, script)
	answer, silent := f.answers[script], f.silent
	f.mu.Unlock()
	if result != nil && !silent {
		go result(answer)
	}
}

func (f *fakeEvaluator) lastScript() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.scripts) == 0 {
		return ""
	}
	return f.scripts[len(f.scripts)-1]
}

func (f *fakeEvaluator) allScripts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.scripts...)
}

func TestWebSurface_RequiresLoad(t *testing.T) {
	w := NewWebSurface(&fakeEvaluator{})
	if err := w.Play(context.Background()); !errors.Is(err, ErrNoVideo) {
		t.Errorf("Play before Load = %v", err)
	}
	if _, err := w.CurrentTime(context.Background()); !errors.Is(err, ErrNoVideo) {
		t.Errorf("CurrentTime before Load = %v", err)
	}
}

func TestWebSurface_Commands(t *testing.T) {
	ctx := context.Background()
	eval := &fakeEvaluator{}
	w := NewWebSurface(eval)
	if err := w.Load(ctx, "M7lc1UVf-VE", 0); err != nil {
		t.Fatal(err)
	}
	if len(eval.navigated) != 1 || eval.navigated[0] != "https://www.youtube.com/watch?v=M7lc1UVf-VE" {
		t.Errorf("navigated = %v", eval.navigated)
	}

	tests := []struct {
		name   string
		call   func() error
		script string
	}{
		{"play", func() error { return w.Play(ctx) }, "document.getElementsByTagName('video')[0].play()"},
		{"pause", func() error { return w.Pause(ctx) }, "document.getElementsByTagName('video')[0].pause()"},
		{"seek", func() error { return w.Seek(ctx, 90) }, "document.getElementsByTagName('video')[0].currentTime = 90"},
		{"rewind", func() error { return w.SeekBy(ctx, -15) }, "document.getElementsByTagName('video')[0].currentTime -= 15"},
		{"forward", func() error { return w.SeekBy(ctx, 30) }, "document.getElementsByTagName('video')[0].currentTime += 30"},
		{"rate", func() error { return w.SetRate(ctx, 1.275) }, "document.getElementsByTagName('video')[0].playbackRate = 1.275"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err != nil {
				t.Fatal(err)
			}
			if got := eval.lastScript(); got != tt.script {
				t.Errorf("script = %q, expected %q", got, tt.script)
			}
		})
	}
}

func TestWebSurface_LoadSeeksAfterDelay(t *testing.T) {
	eval := &fakeEvaluator{}
	w := NewWebSurface(eval)
	w.SetStartSeekDelay(10 * time.Millisecond)

	if err := w.Load(context.Background(), "M7lc1UVf-VE", 120); err != nil {
		t.Fatal(err)
	}

	want := "document.getElementsByTagName('video')[0].currentTime = 120"
	deadline := time.Now().Add(time.Second)
	for eval.lastScript() != want {
		if time.Now().After(deadline) {
			t.Fatalf("start seek never ran, scripts: %v", eval.allScripts())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWebSurface_ReloadCancelsPendingSeek(t *testing.T) {
	eval := &fakeEvaluator{}
	w := NewWebSurface(eval)
	w.SetStartSeekDelay(30 * time.Millisecond)

	_ = w.Load(context.Background(), "M7lc1UVf-VE", 120)
	_ = w.Load(context.Background(), "dQw4w9WgXcQ", 0)
	time.Sleep(80 * time.Millisecond)

	for _, s := range eval.allScripts() {
		if strings.Contains(s, "= 120") {
			t.Errorf("stale seek ran: %q", s)
		}
	}
}

func TestWebSurface_Queries(t *testing.T) {
	ctx := context.Background()
	eval := &fakeEvaluator{answers: map[string]string{
		videoElement + ".currentTime": "93.4",
		titleScript:                   `"Lecture 3 "`,
	}}
	w := NewWebSurface(eval)
	_ = w.Load(ctx, "M7lc1UVf-VE", 0)

	pos, err := w.CurrentTime(ctx)
	if err != nil || pos != 93.4 {
		t.Errorf("CurrentTime() = %v, %v", pos, err)
	}
	title, err := w.CurrentTitle(ctx)
	if err != nil || title != "Lecture 3" {
		t.Errorf("CurrentTitle() = %q, %v", title, err)
	}
}

func TestWebSurface_QueryHonorsContext(t *testing.T) {
	eval := &fakeEvaluator{silent: true}
	w := NewWebSurface(eval)
	_ = w.Load(context.Background(), "M7lc1UVf-VE", 0)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := w.CurrentTime(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestWebSurface_PageLoadedHidesChrome(t *testing.T) {
	eval := &fakeEvaluator{}
	NewWebSurface(eval).PageLoaded()
	if eval.lastScript() != HideChromeScript {
		t.Error("PageLoaded did not inject the chrome script")
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"12.5", 12.5, false},
		{`"7"`, 7, false},
		{"-3", 0, false},
		{"null", 0, true},
		{"", 0, true},
		{"NaN?", 0, true},
	}
	for _, tt := range tests {
		got, err := parseTime(tt.raw)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseTime(%q) = %v, %v", tt.raw, got, err)
		}
	}
}
