package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
)

func TestClassifyGesture(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float32
		held   time.Duration
		want   GestureType
	}{
		{"tap", 2, 3, 100 * time.Millisecond, GestureTap},
		{"long press", 5, -5, 800 * time.Millisecond, GestureLongPress},
		{"swipe right", 120, 10, 200 * time.Millisecond, GestureSwipeRight},
		{"swipe left", -120, 30, 200 * time.Millisecond, GestureSwipeLeft},
		{"swipe up", 10, -90, 200 * time.Millisecond, GestureSwipeUp},
		{"swipe down", -20, 90, 200 * time.Millisecond, GestureSwipeDown},
		{"slow swipe is still a swipe", 200, 0, 2 * time.Second, GestureSwipeRight},
		{"diagonal just under threshold", 35, 35, 100 * time.Millisecond, GestureTap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyGesture(tt.dx, tt.dy, tt.held, DefaultSwipeThreshold, DefaultLongPressDuration)
			if got != tt.want {
				t.Errorf("ClassifyGesture(%v, %v, %v) = %s, want %s", tt.dx, tt.dy, tt.held, got, tt.want)
			}
		})
	}
}

func TestGestureHandlerTouchSequence(t *testing.T) {
	var got []GestureType
	h := NewGestureHandler(func(g GestureType) { got = append(got, g) })
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }

	touch := func(x, y float32) *mobile.TouchEvent {
		return &mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
	}

	h.TouchDown(touch(100, 100))
	now = now.Add(150 * time.Millisecond)
	h.TouchUp(touch(20, 110))

	h.TouchDown(touch(50, 50))
	now = now.Add(time.Second)
	h.TouchUp(touch(52, 51))

	h.TouchDown(touch(0, 0))
	h.TouchCancel(touch(0, 0))
	h.TouchUp(touch(300, 0))

	want := []GestureType{GestureSwipeLeft, GestureLongPress}
	if len(got) != len(want) {
		t.Fatalf("gestures = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("gesture %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestGesturePadDrag(t *testing.T) {
	var got GestureType
	pad := NewGesturePad(nil, func(g GestureType) { got = g })

	pad.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(60, 10)},
		Dragged:    fyne.NewDelta(10, 0),
	})
	pad.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(130, 12)},
		Dragged:    fyne.NewDelta(70, 2),
	})
	pad.DragEnd()

	if got != GestureSwipeRight {
		t.Errorf("gesture = %s, want swipe-right", got)
	}
}
