package ui

import "time"

// Chrome icons
const (
	IconSettings  = "⚙"
	IconPlay      = "▶"
	IconPause     = "⏸"
	IconStop      = "⏹"
	IconRewind    = "⟲ 15"
	IconForward   = "30 ⟳"
	IconSlower    = "−"
	IconFaster    = "+"
	IconFavorite  = "★"
	IconHistory   = "🕘"
	IconFavorites = "📑"
	IconClose     = "×"
	IconDelete    = "🗑️"
	IconResume    = "▶️"
	IconExport    = "⬆"
	IconImport    = "⬇"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Layout sizing for history and favorite rows
const (
	RowMinWidth  float32 = 360
	RowMinHeight float32 = 56

	PositionLabelWidth float32 = 72
	AgoLabelWidth      float32 = 110
	RateLabelWidth     float32 = 64

	// Touch target minimum sizes (iOS/Android guidelines)
	MinTouchTargetSize float32 = 44
	MobileButtonHeight float32 = 48
	MobileButtonWidth  float32 = 60
)

// Dialog sizes
const (
	ListDialogWidth      float32 = 560
	ListDialogHeight     float32 = 460
	SettingsDialogWidth  float32 = 480
	SettingsDialogHeight float32 = 460
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 96
	ToastMargin   float32 = 20
	ToastAutoHide         = 4 * time.Second
)

// Delays
const (
	RestorePromptDelay = 300 * time.Millisecond
	PlaylistFetchLimit = 2 * time.Minute
)
