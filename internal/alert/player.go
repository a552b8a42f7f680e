package alert

// Player plays a completion sound. Playback is fire-and-forget: failures
// are reported to the caller for logging and must never reach timer logic.
type Player interface {
	Play(filePath string, volume int) error
}

// NewPlayer returns a platform-specific audio player.
func NewPlayer() Player {
	return newPlayer()
}
