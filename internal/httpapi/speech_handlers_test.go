package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mkolarik/sayso/internal/tts"
)

type stubSynth struct {
	mu    sync.Mutex
	calls int
	text  string
	lang  string
	audio []byte
	err   error
}

func (s *stubSynth) Synthesize(_ context.Context, text, language string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.text = text
	s.lang = language
	if s.err != nil {
		return nil, s.err
	}
	return s.audio, nil
}

func newTestRouter(cfg RouterConfig, synth tts.Client) http.Handler {
	return NewRouter(cfg, log.New(io.Discard, "", 0), synth)
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	return body["error"]
}

func TestHandleSpeechMissingLanguage(t *testing.T) {
	synth := &stubSynth{audio: []byte("audio")}
	h := newTestRouter(RouterConfig{}, synth)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text": "hello"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if msg := decodeErrorBody(t, rec); msg != "Text and language are required" {
		t.Errorf("error = %q, want %q", msg, "Text and language are required")
	}
	if synth.calls != 0 {
		t.Errorf("upstream called %d times, want 0", synth.calls)
	}
}

func TestHandleSpeechMissingText(t *testing.T) {
	synth := &stubSynth{audio: []byte("audio")}
	h := newTestRouter(RouterConfig{}, synth)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"language": "ja"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if synth.calls != 0 {
		t.Errorf("upstream called %d times, want 0", synth.calls)
	}
}

func TestHandleSpeechUpstreamFailure(t *testing.T) {
	synth := &stubSynth{err: &tts.UpstreamError{Status: http.StatusServiceUnavailable}}
	h := newTestRouter(RouterConfig{}, synth)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text": "hello", "language": "en"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if msg := decodeErrorBody(t, rec); !strings.Contains(msg, "503") {
		t.Errorf("error = %q, want it to contain the upstream status 503", msg)
	}
}

func TestHandleSpeechSuccess(t *testing.T) {
	audio := []byte{0xff, 0xfb, 0x90, 0x00, 0x01, 0x02}
	synth := &stubSynth{audio: audio}
	h := newTestRouter(RouterConfig{}, synth)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text": "こんにちは", "language": "ja"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/mpeg" {
		t.Errorf("Content-Type = %q, want %q", ct, "audio/mpeg")
	}
	if !bytes.Equal(rec.Body.Bytes(), audio) {
		t.Errorf("body = %v, want %v", rec.Body.Bytes(), audio)
	}
	if synth.text != "こんにちは" || synth.lang != "ja" {
		t.Errorf("upstream got (%q, %q), want (%q, %q)", synth.text, synth.lang, "こんにちは", "ja")
	}
	if synth.calls != 1 {
		t.Errorf("upstream called %d times, want 1", synth.calls)
	}
}

func TestHandleSpeechBadJSON(t *testing.T) {
	synth := &stubSynth{}
	h := newTestRouter(RouterConfig{}, synth)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if msg := decodeErrorBody(t, rec); msg == "" {
		t.Error("error message is empty, want the decode failure message")
	}
	if synth.calls != 0 {
		t.Errorf("upstream called %d times, want 0", synth.calls)
	}
}

func TestOptionsPreflight(t *testing.T) {
	h := newTestRouter(RouterConfig{}, &stubSynth{})

	for _, path := range []string{"/", "/healthz"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("OPTIONS %s status = %d, want %d", path, rec.Code, http.StatusOK)
		}
		if rec.Body.Len() != 0 {
			t.Errorf("OPTIONS %s body = %q, want empty", path, rec.Body.String())
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "*")
		}
		if got := rec.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "X-Client-Info") {
			t.Errorf("Access-Control-Allow-Headers = %q, want it to include X-Client-Info", got)
		}
	}
}

func TestCORSHeadersOnPost(t *testing.T) {
	synth := &stubSynth{audio: []byte("a")}
	h := newTestRouter(RouterConfig{}, synth)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text": "hi", "language": "en"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "*")
	}
}

func TestHandleHealthz(t *testing.T) {
	h := newTestRouter(RouterConfig{}, &stubSynth{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "ok")
	}
}
