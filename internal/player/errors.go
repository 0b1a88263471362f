package player

// Error is a user-visible player error; the string is rendered inline as-is.
type Error string

func (e Error) Error() string { return string(e) }

// Inline error messages. Recovery is always user-initiated: re-edit or
// trigger playback again.
const (
	ErrEmptyText  = Error("Please enter some text")
	ErrGeneration = Error("Failed to generate speech. Please try again.")
	ErrPlayback   = Error("Failed to play audio")
)
