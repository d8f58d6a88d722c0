package ui

import (
	"fyne.io/fyne/v2"
)

const (
	AppIcon = "yt-player.png"
)

// LoadLogoResource loads the logo from the working directory. Callers fall
// back to a text-only header when it is missing.
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}
