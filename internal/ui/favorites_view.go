package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-player/internal/catalog"
	"github.com/ytget/yt-player/internal/model"
)

// allCategories is the filter entry that shows every favorite.
const allCategories = "*"

// FavoritesView lists favorites grouped by a category filter
type FavoritesView struct {
	favorites    *catalog.Favorites
	localization *Localization
	logger       zerolog.Logger

	category string
	visible  []model.FavoriteEntry

	filter    *widget.Select
	list      *widget.List
	removeCat *widget.Button
	container *fyne.Container

	onPlay func(model.VideoRef)
}

// NewFavoritesView creates the view. onPlay runs when a row's play button is
// tapped.
func NewFavoritesView(favorites *catalog.Favorites, localization *Localization, logger zerolog.Logger, onPlay func(model.VideoRef)) *FavoritesView {
	fv := &FavoritesView{
		favorites:    favorites,
		localization: localization,
		logger:       logger,
		category:     allCategories,
		onPlay:       onPlay,
	}
	fv.createUI()
	fv.Reload()
	return fv
}

func (fv *FavoritesView) createUI() {
	fv.list = widget.NewList(
		func() int { return len(fv.visible) },
		func() fyne.CanvasObject {
			row := NewVideoRow(fv.localization)
			row.SetCallbacks(fv.play, fv.remove)
			return row
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(fv.visible) {
				return
			}
			e := fv.visible[id]
			obj.(*VideoRow).Update(RowData{Index: id, ID: e.Ref.ID, Title: e.Ref.DisplayTitle(), Detail: e.Ref.ID, Badge: e.Category})
		},
	)

	fv.filter = widget.NewSelect(nil, func(selected string) {
		if selected == fv.localization.GetText(KeyFavorites) {
			selected = allCategories
		}
		fv.category = selected
		fv.refreshVisible()
	})

	fv.removeCat = widget.NewButton(fv.localization.GetText(KeyRemoveCategory), func() {
		if fv.category == allCategories {
			return
		}
		n := fv.favorites.RemoveCategory(context.Background(), fv.category)
		fv.logger.Info().Str("category", fv.category).Int("removed", n).Msg("category removed")
		fv.category = allCategories
		fv.Reload()
	})
	fv.removeCat.Importance = widget.DangerImportance

	top := container.NewBorder(nil, nil, nil, fv.removeCat, fv.filter)
	fv.container = container.NewBorder(top, nil, nil, nil, fv.list)
}

// Reload rebuilds the category filter and the list from the catalog
func (fv *FavoritesView) Reload() {
	all := fv.localization.GetText(KeyFavorites)
	options := append([]string{all}, fv.favorites.Categories()...)
	fv.filter.Options = options

	found := fv.category == allCategories
	for _, c := range options[1:] {
		if c == fv.category {
			found = true
		}
	}
	if !found {
		fv.category = allCategories
	}
	if fv.category == allCategories {
		fv.filter.SetSelected(all)
	} else {
		fv.filter.SetSelected(fv.category)
	}
	fv.refreshVisible()
}

func (fv *FavoritesView) refreshVisible() {
	if fv.category == allCategories {
		fv.visible = fv.favorites.Entries()
		fv.removeCat.Disable()
	} else {
		fv.visible = fv.favorites.ByCategory(fv.category)
		fv.removeCat.Enable()
	}
	fv.list.Refresh()
}

// Container returns the view's root object
func (fv *FavoritesView) Container() *fyne.Container {
	return fv.container
}

// Len reports how many rows are shown
func (fv *FavoritesView) Len() int {
	return len(fv.visible)
}

func (fv *FavoritesView) play(index int) {
	if index < 0 || index >= len(fv.visible) || fv.onPlay == nil {
		return
	}
	fv.onPlay(fv.visible[index].Ref)
}

func (fv *FavoritesView) remove(index int) {
	if index < 0 || index >= len(fv.visible) {
		return
	}
	e := fv.visible[index]
	if err := fv.favorites.Remove(context.Background(), e.Ref.ID, e.Category); err != nil {
		fv.logger.Warn().Err(err).Str("video_id", e.Ref.ID).Msg("remove favorite failed")
	}
	fv.Reload()
}
