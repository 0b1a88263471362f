package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
)

var errValidation = errors.New("Text and language are required")

type speechRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// handleSpeech forwards a synthesis request upstream and streams the audio
// bytes back verbatim. No transcoding, no caching.
//
// The language field is deliberately not validated against the player's
// language set: the upstream accepts more codes than the player offers, and
// adding one stays a client-side change.
func (r *Router) handleSpeech(w http.ResponseWriter, req *http.Request) {
	var body speechRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		r.writeError(w, req, err)
		return
	}

	if body.Text == "" || body.Language == "" {
		r.writeError(w, req, errValidation)
		return
	}

	r.logger.Printf("speech: fetching audio, language=%s textLength=%d", body.Language, len(body.Text))

	audio, err := r.synth.Synthesize(req.Context(), body.Text, body.Language)
	if err != nil {
		r.writeError(w, req, err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

// writeError logs the failure detail server-side and reports the message to
// the caller. Every failure class uses a 500 here; existing callers key off
// the body message, not the status.
func (r *Router) writeError(w http.ResponseWriter, req *http.Request, err error) {
	r.logger.Printf("speech: error: %v", err)
	if !errors.Is(err, errValidation) {
		captureError(req, err, "speech synthesis failed")
	}

	msg := "Unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msg})
}
