package session

// Package session keeps the last playback state for the resume prompt and
// runs the periodic autosave that feeds it.
