package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PlayerTheme is a compact theme with a dark-leaning palette so the chrome
// recedes next to the video.
type PlayerTheme struct{}

// NewPlayerTheme creates the player theme
func NewPlayerTheme() fyne.Theme {
	return &PlayerTheme{}
}

var (
	colorAccent     = color.RGBA{R: 229, G: 45, B: 39, A: 255}
	colorFavorite   = color.RGBA{R: 255, G: 193, B: 7, A: 255}
	colorErrorRed   = color.RGBA{R: 183, G: 28, B: 28, A: 255}
	colorSurfaceDk  = color.RGBA{R: 15, G: 15, B: 15, A: 255}
	colorSurfaceLt  = color.RGBA{R: 249, G: 249, B: 249, A: 255}
	colorTextDark   = color.RGBA{R: 241, G: 241, B: 241, A: 255}
	colorTextLight  = color.RGBA{R: 15, G: 15, B: 15, A: 255}
	colorButtonDark = color.RGBA{R: 39, G: 39, B: 39, A: 255}
)

// Color returns theme colors
func (t *PlayerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	dark := variant == theme.VariantDark
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return colorAccent
	case theme.ColorNameWarning:
		return colorFavorite
	case theme.ColorNameError:
		return colorErrorRed
	case theme.ColorNameBackground:
		if dark {
			return colorSurfaceDk
		}
		return colorSurfaceLt
	case theme.ColorNameForeground:
		if dark {
			return colorTextDark
		}
		return colorTextLight
	case theme.ColorNameButton:
		if dark {
			return colorButtonDark
		}
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (t *PlayerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *PlayerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size trims padding and text so the transport row fits on a phone.
func (t *PlayerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 10
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 17
	case theme.SizeNameSubHeadingText:
		return 14
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 4
	case theme.SizeNameSelectionRadius:
		return 2
	}
	return theme.DefaultTheme().Size(name)
}
