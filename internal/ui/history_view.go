package ui

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-player/internal/catalog"
	"github.com/ytget/yt-player/internal/model"
)

// HistoryView lists watched videos, most recent first
type HistoryView struct {
	history      *catalog.History
	localization *Localization
	logger       zerolog.Logger
	now          func() time.Time

	entries   []model.HistoryEntry
	list      *widget.List
	clearBtn  *widget.Button
	container *fyne.Container

	onPlay func(model.VideoRef)
}

// NewHistoryView creates the view
func NewHistoryView(history *catalog.History, localization *Localization, logger zerolog.Logger, onPlay func(model.VideoRef)) *HistoryView {
	hv := &HistoryView{
		history:      history,
		localization: localization,
		logger:       logger,
		now:          time.Now,
		onPlay:       onPlay,
	}
	hv.createUI()
	hv.Reload()
	return hv
}

func (hv *HistoryView) createUI() {
	hv.list = widget.NewList(
		func() int { return len(hv.entries) },
		func() fyne.CanvasObject {
			row := NewVideoRow(hv.localization)
			row.SetCallbacks(hv.play, hv.remove)
			return row
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(hv.entries) {
				return
			}
			obj.(*VideoRow).Update(historyRow(id, hv.entries[id], hv.now()))
		},
	)

	hv.clearBtn = widget.NewButton(hv.localization.GetText(KeyClearHistory), func() {
		hv.history.Clear(context.Background())
		hv.Reload()
	})
	hv.clearBtn.Importance = widget.DangerImportance

	hv.container = container.NewBorder(nil, container.NewHBox(hv.clearBtn), nil, nil, hv.list)
}

func historyRow(index int, e model.HistoryEntry, now time.Time) RowData {
	return RowData{
		Index:  index,
		ID:     e.Ref.ID,
		Title:  e.Ref.DisplayTitle(),
		Detail: model.FormatPosition(e.LastPosition) + MiddleDotSeparator + model.TimeAgo(e.LastPlayedAt, now),
	}
}

// Reload re-reads the history
func (hv *HistoryView) Reload() {
	hv.entries = hv.history.Entries()
	if len(hv.entries) == 0 {
		hv.clearBtn.Disable()
	} else {
		hv.clearBtn.Enable()
	}
	hv.list.Refresh()
}

// Container returns the view's root object
func (hv *HistoryView) Container() *fyne.Container {
	return hv.container
}

// Len reports how many rows are shown
func (hv *HistoryView) Len() int {
	return len(hv.entries)
}

func (hv *HistoryView) play(index int) {
	if index < 0 || index >= len(hv.entries) || hv.onPlay == nil {
		return
	}
	hv.onPlay(hv.entries[index].Ref)
}

func (hv *HistoryView) remove(index int) {
	if err := hv.history.RemoveAt(context.Background(), index); err != nil {
		hv.logger.Warn().Err(err).Int("index", index).Msg("remove history entry failed")
	}
	hv.Reload()
}
