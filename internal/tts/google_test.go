package tts

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGoogleTranslateClientRequestShape(t *testing.T) {
	var gotQuery map[string]string
	var gotUserAgent string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer upstream.Close()

	client := NewGoogleTranslateClient(GoogleTranslateConfig{BaseURL: upstream.URL})

	audio, err := client.Synthesize(context.Background(), "hello world", "zh-CN")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !bytes.Equal(audio, []byte("mp3-bytes")) {
		t.Errorf("audio = %q, want %q", audio, "mp3-bytes")
	}

	want := map[string]string{
		"ie":     "UTF-8",
		"tl":     "zh-CN",
		"client": "tw-ob",
		"q":      "hello world",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query[%q] = %q, want %q", k, gotQuery[k], v)
		}
	}

	if gotUserAgent != defaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}
}

func TestGoogleTranslateClientUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	client := NewGoogleTranslateClient(GoogleTranslateConfig{BaseURL: upstream.URL})

	_, err := client.Synthesize(context.Background(), "hello", "en")
	if err == nil {
		t.Fatal("Synthesize() error = nil, want upstream error")
	}

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("error = %v, want *UpstreamError", err)
	}
	if upErr.Status != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want %d", upErr.Status, http.StatusServiceUnavailable)
	}
}

func TestGoogleTranslateClientDefaults(t *testing.T) {
	client := NewGoogleTranslateClient(GoogleTranslateConfig{})

	if client.baseURL != googleTranslateTTSURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, googleTranslateTTSURL)
	}
	if client.userAgent != defaultUserAgent {
		t.Errorf("userAgent = %q, want %q", client.userAgent, defaultUserAgent)
	}
	if client.httpClient == nil {
		t.Error("httpClient is nil")
	}
}

func TestCustomUserAgent(t *testing.T) {
	var gotUserAgent string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
	}))
	defer upstream.Close()

	client := NewGoogleTranslateClient(GoogleTranslateConfig{
		BaseURL:   upstream.URL,
		UserAgent: "custom-agent/1.0",
	})

	if _, err := client.Synthesize(context.Background(), "hi", "ja"); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if gotUserAgent != "custom-agent/1.0" {
		t.Errorf("User-Agent = %q, want %q", gotUserAgent, "custom-agent/1.0")
	}
}
