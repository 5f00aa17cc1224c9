//go:build !oto && !ebiten

package playback

// Backend names the compiled-in audio backend.
const Backend = "discard"

// New returns a Discard player; this build has no audio device.
func New(sampleRate int) (Player, error) {
	return NewDiscard(), nil
}
