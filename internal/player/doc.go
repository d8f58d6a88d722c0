package player

// Package player drives a playback surface: an embedded web view that
// evaluates scripts, or an external browser tracked by wall clock. The
// Controller layers the player chrome actions on top and reports snapshots to
// the autosaver.
