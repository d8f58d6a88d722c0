// Package ui contains the Fyne player chrome: the URL bar, transport and
// speed controls, the favorites and history dialogs, the resume prompt and
// settings. Playback itself goes through player.Controller, and all
// persistence through library.Library. All UI strings are localized via
// Localization.
package ui
