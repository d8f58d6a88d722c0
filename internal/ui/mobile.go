package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MobileUI adapts the chrome to phones: larger touch targets and a stacked
// control layout in portrait.
type MobileUI struct {
	isMobile    func() bool
	orientation func() fyne.DeviceOrientation
}

// NewMobileUI creates a helper bound to the current device
func NewMobileUI() *MobileUI {
	return &MobileUI{
		isMobile:    func() bool { return fyne.CurrentDevice().IsMobile() },
		orientation: func() fyne.DeviceOrientation { return fyne.CurrentDevice().Orientation() },
	}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return m.isMobile()
}

// IsPortrait returns true if a mobile device is held upright
func (m *MobileUI) IsPortrait() bool {
	if !m.IsMobileDevice() {
		return false
	}
	o := m.orientation()
	return o == fyne.OrientationVertical || o == fyne.OrientationVerticalUpsideDown
}

// Button creates a button sized for touch on mobile
func (m *MobileUI) Button(text string, onTapped func()) fyne.CanvasObject {
	btn := widget.NewButton(text, onTapped)
	if !m.IsMobileDevice() {
		return btn
	}
	return container.NewGridWrap(fyne.NewSize(MobileButtonWidth, MobileButtonHeight), btn)
}

// ControlRows lays out transport and speed controls: one row on desktop or
// in landscape, two stacked rows in portrait.
func (m *MobileUI) ControlRows(transport, speed []fyne.CanvasObject) fyne.CanvasObject {
	if m.IsPortrait() {
		return container.NewVBox(
			container.NewGridWithColumns(len(transport), transport...),
			container.NewGridWithColumns(len(speed), speed...),
		)
	}
	all := append(append([]fyne.CanvasObject{}, transport...), speed...)
	return container.NewHBox(all...)
}
