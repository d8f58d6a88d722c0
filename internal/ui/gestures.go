package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// GestureType represents different types of gestures
type GestureType int

const (
	GestureNone GestureType = iota
	GestureTap
	GestureSwipeLeft
	GestureSwipeRight
	GestureSwipeUp
	GestureSwipeDown
	GestureLongPress
)

func (g GestureType) String() string {
	switch g {
	case GestureTap:
		return "tap"
	case GestureSwipeLeft:
		return "swipe-left"
	case GestureSwipeRight:
		return "swipe-right"
	case GestureSwipeUp:
		return "swipe-up"
	case GestureSwipeDown:
		return "swipe-down"
	case GestureLongPress:
		return "long-press"
	default:
		return "none"
	}
}

// Gesture thresholds constants
const (
	DefaultSwipeThreshold    float32 = 50.0
	DefaultLongPressDuration         = 500 * time.Millisecond
)

// ClassifyGesture maps a pointer movement of (dx, dy) held for the given
// duration to a gesture. A swipe needs to travel at least threshold in its
// dominant axis; a long press is a hold without travel.
func ClassifyGesture(dx, dy float32, held time.Duration, threshold float32, longPress time.Duration) GestureType {
	if dx*dx+dy*dy < threshold*threshold {
		if held >= longPress {
			return GestureLongPress
		}
		return GestureTap
	}

	absDx, absDy := dx, dy
	if absDx < 0 {
		absDx = -absDx
	}
	if absDy < 0 {
		absDy = -absDy
	}

	if absDx > absDy {
		if dx > 0 {
			return GestureSwipeRight
		}
		return GestureSwipeLeft
	}
	if dy > 0 {
		return GestureSwipeDown
	}
	return GestureSwipeUp
}

// GestureHandler turns touch down/up pairs into gestures
type GestureHandler struct {
	onGesture func(GestureType)
	now       func() time.Time

	touchStartTime time.Time
	touchStartPos  fyne.Position

	swipeThreshold    float32
	longPressDuration time.Duration
}

// NewGestureHandler creates a new gesture handler
func NewGestureHandler(onGesture func(GestureType)) *GestureHandler {
	return &GestureHandler{
		onGesture:         onGesture,
		now:               time.Now,
		swipeThreshold:    DefaultSwipeThreshold,
		longPressDuration: DefaultLongPressDuration,
	}
}

// Begin records where and when a touch started
func (gh *GestureHandler) Begin(pos fyne.Position) {
	gh.touchStartTime = gh.now()
	gh.touchStartPos = pos
}

// End classifies the touch that started at Begin and fires the callback
func (gh *GestureHandler) End(pos fyne.Position) GestureType {
	if gh.touchStartTime.IsZero() {
		return GestureNone
	}
	held := gh.now().Sub(gh.touchStartTime)
	gh.touchStartTime = time.Time{}

	g := ClassifyGesture(pos.X-gh.touchStartPos.X, pos.Y-gh.touchStartPos.Y, held, gh.swipeThreshold, gh.longPressDuration)
	if gh.onGesture != nil {
		gh.onGesture(g)
	}
	return g
}

// Cancel drops the touch in progress
func (gh *GestureHandler) Cancel() {
	gh.touchStartTime = time.Time{}
}

func (gh *GestureHandler) TouchDown(event *mobile.TouchEvent) {
	gh.Begin(event.Position)
}

func (gh *GestureHandler) TouchUp(event *mobile.TouchEvent) {
	gh.End(event.Position)
}

func (gh *GestureHandler) TouchCancel(event *mobile.TouchEvent) {
	gh.Cancel()
}

// GesturePad is a transparent area over the player status that turns taps,
// swipes and long presses into player commands. Touch input arrives through
// mobile.Touchable; mouse drags on desktop go through fyne.Draggable.
type GesturePad struct {
	widget.BaseWidget
	handler  *GestureHandler
	content  fyne.CanvasObject
	dragFrom fyne.Position
	dragged  fyne.Delta
	dragging bool
}

// NewGesturePad wraps content in a gesture-sensitive area
func NewGesturePad(content fyne.CanvasObject, onGesture func(GestureType)) *GesturePad {
	p := &GesturePad{handler: NewGestureHandler(onGesture), content: content}
	p.ExtendBaseWidget(p)
	return p
}

func (p *GesturePad) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.Transparent)
	bg.SetMinSize(fyne.NewSize(MinTouchTargetSize, MinTouchTargetSize))
	objects := []fyne.CanvasObject{bg}
	if p.content != nil {
		objects = append(objects, p.content)
	}
	return widget.NewSimpleRenderer(container.NewStack(objects...))
}

func (p *GesturePad) TouchDown(event *mobile.TouchEvent) { p.handler.TouchDown(event) }

func (p *GesturePad) TouchUp(event *mobile.TouchEvent) { p.handler.TouchUp(event) }

func (p *GesturePad) TouchCancel(event *mobile.TouchEvent) { p.handler.TouchCancel(event) }

// Tapped handles mouse clicks, which never produce a touch pair.
func (p *GesturePad) Tapped(ev *fyne.PointEvent) {
	if p.dragging {
		return
	}
	p.handler.Begin(ev.Position)
	p.handler.End(ev.Position)
}

func (p *GesturePad) Dragged(ev *fyne.DragEvent) {
	if !p.dragging {
		p.dragging = true
		p.dragFrom = ev.Position.Subtract(ev.Dragged)
		p.dragged = fyne.Delta{}
		p.handler.Begin(p.dragFrom)
	}
	p.dragged.DX += ev.Dragged.DX
	p.dragged.DY += ev.Dragged.DY
}

func (p *GesturePad) DragEnd() {
	if !p.dragging {
		return
	}
	p.dragging = false
	p.handler.End(p.dragFrom.Add(p.dragged))
}
