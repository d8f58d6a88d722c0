package model

// Package model defines the domain values shared across the app: video
// references, history and favorite entries, the last playback session, and
// playback status enums. Values are plain structs so catalog, session and UI
// code can copy them freely.
