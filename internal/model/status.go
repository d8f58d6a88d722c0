package model

// PlaybackStatus represents the state of the playback surface
type PlaybackStatus string

const (
	// PlaybackIdle means nothing has been loaded yet
	PlaybackIdle PlaybackStatus = "Idle"

	// PlaybackLoading means a video was requested and the surface is loading it
	PlaybackLoading PlaybackStatus = "Loading"

	// PlaybackPlaying means the video is playing
	PlaybackPlaying PlaybackStatus = "Playing"

	// PlaybackPaused means the user paused the video
	PlaybackPaused PlaybackStatus = "Paused"

	// PlaybackStopped means the screen went away and playback ended
	PlaybackStopped PlaybackStatus = "Stopped"
)

// String returns the string representation of PlaybackStatus
func (ps PlaybackStatus) String() string {
	return string(ps)
}

// IsActive returns true while the autosave loop should keep saving
func (ps PlaybackStatus) IsActive() bool {
	return ps == PlaybackLoading || ps == PlaybackPlaying
}

// IsFinished returns true if playback is paused or stopped
func (ps PlaybackStatus) IsFinished() bool {
	return ps == PlaybackPaused || ps == PlaybackStopped
}
