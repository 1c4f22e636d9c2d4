package platform

// PlaybackState represents the current state of an animation's playback.
// Errors are delivered through the error handler rather than as a playback
// state.
type PlaybackState int

const (
	// PlaybackStateIdle indicates playback has not been started.
	PlaybackStateIdle PlaybackState = iota

	// PlaybackStatePlaying indicates frames are being requested and shown.
	PlaybackStatePlaying

	// PlaybackStatePaused indicates playback was started but is held back,
	// usually because the content is not visible.
	PlaybackStatePaused

	// PlaybackStateReleased indicates the player's resources were released
	// and it cannot play again.
	PlaybackStateReleased
)

// String returns a human-readable label for the playback state.
func (s PlaybackState) String() string {
	switch s {
	case PlaybackStateIdle:
		return "Idle"
	case PlaybackStatePlaying:
		return "Playing"
	case PlaybackStatePaused:
		return "Paused"
	case PlaybackStateReleased:
		return "Released"
	default:
		return "Unknown"
	}
}
