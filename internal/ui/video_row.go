package ui

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// RowData is what a VideoRow shows. Detail is the secondary line, e.g. the
// resume position and when the video was last played.
type RowData struct {
	Index  int
	ID     string
	Title  string
	Detail string
	Badge  string
}

// VideoRow is a compact row for history and favorites lists
type VideoRow struct {
	widget.BaseWidget

	data         RowData
	localization *Localization

	titleLabel  *widget.Label
	detailLabel *widget.Label
	badgeLabel  *widget.Label

	playBtn   *widget.Button
	removeBtn *widget.Button

	onPlay   func(index int)
	onRemove func(index int)
}

// NewVideoRow creates a new row widget
func NewVideoRow(localization *Localization) *VideoRow {
	r := &VideoRow{localization: localization}
	r.ExtendBaseWidget(r)
	r.createUI()
	return r
}

// SetCallbacks sets the action callbacks. Either may be nil, which hides the
// matching button.
func (r *VideoRow) SetCallbacks(onPlay, onRemove func(index int)) {
	r.onPlay = onPlay
	r.onRemove = onRemove
	if onPlay == nil {
		r.playBtn.Hide()
	} else {
		r.playBtn.Show()
	}
	if onRemove == nil {
		r.removeBtn.Hide()
	} else {
		r.removeBtn.Show()
	}
}

// Update shows data in the row
func (r *VideoRow) Update(data RowData) {
	r.data = data
	title := strings.TrimSpace(strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(data.Title))
	if title == "" {
		title = data.ID
	}
	r.titleLabel.SetText(title)
	r.detailLabel.SetText(data.Detail)
	r.badgeLabel.SetText(data.Badge)
	if data.Badge == "" {
		r.badgeLabel.Hide()
	} else {
		r.badgeLabel.Show()
	}
	r.Refresh()
}

// Data returns what the row currently shows
func (r *VideoRow) Data() RowData {
	return r.data
}

func (r *VideoRow) createUI() {
	r.titleLabel = widget.NewLabel("")
	r.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	r.titleLabel.Truncation = fyne.TextTruncateEllipsis

	r.detailLabel = widget.NewLabel("")
	r.detailLabel.TextStyle = fyne.TextStyle{Monospace: true}

	r.badgeLabel = widget.NewLabel("")
	r.badgeLabel.Alignment = fyne.TextAlignTrailing
	r.badgeLabel.Hide()

	r.playBtn = widget.NewButton(IconResume, func() {
		if r.onPlay != nil {
			r.onPlay(r.data.Index)
		}
	})
	r.playBtn.Importance = widget.HighImportance

	r.removeBtn = widget.NewButton(IconDelete, func() {
		if r.onRemove != nil {
			r.onRemove(r.data.Index)
		}
	})
	r.removeBtn.Importance = widget.LowImportance
}

func (r *VideoRow) CreateRenderer() fyne.WidgetRenderer {
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	text := container.NewVBox(r.titleLabel, r.detailLabel)
	actions := container.NewHBox(fixedWidth(RateLabelWidth, r.badgeLabel), r.playBtn, r.removeBtn)
	main := container.NewBorder(nil, nil, nil, actions, text)
	return &videoRowRenderer{row: r, layout: container.NewVBox(main, widget.NewSeparator())}
}

type videoRowRenderer struct {
	row    *VideoRow
	layout *fyne.Container
}

func (vr *videoRowRenderer) Layout(size fyne.Size) {
	size.Width = max(size.Width, RowMinWidth)
	size.Height = max(size.Height, RowMinHeight)
	vr.layout.Resize(size)
}

func (vr *videoRowRenderer) MinSize() fyne.Size {
	ms := vr.layout.MinSize()
	return fyne.NewSize(max(ms.Width, RowMinWidth), max(ms.Height, RowMinHeight))
}

func (vr *videoRowRenderer) Refresh() {
	vr.layout.Refresh()
}

func (vr *videoRowRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{vr.layout}
}

func (vr *videoRowRenderer) Destroy() {}
