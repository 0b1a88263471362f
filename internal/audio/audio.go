// Package audio turns synthesized audio bytes into playable handles.
//
// A Handle owns a temporary resource that must be released exactly once, on
// whichever of natural completion, playback failure or Stop happens first.
package audio

// Player creates playable handles from raw audio bytes.
type Player interface {
	NewHandle(data []byte) (Handle, error)
}

// Handle is a single playable piece of audio.
type Handle interface {
	// Play starts playback and returns immediately. Exactly one of the
	// callbacks fires when playback finishes: onEnded on natural
	// completion, onError when playback itself fails. Neither fires after
	// Stop.
	Play(onEnded func(), onError func(error)) error

	// Stop halts playback and releases the handle's resources. Safe to
	// call more than once, before Play, and after completion.
	Stop()
}
