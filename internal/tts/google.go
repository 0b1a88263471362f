package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const googleTranslateTTSURL = "https://translate.google.com/translate_tts"

// Google rejects requests lacking a recognizable browser signature.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// GoogleTranslateClient implements the Client interface against the Google
// Translate TTS endpoint. The endpoint takes no credentials; it is a plain
// GET with the language code and percent-encoded text as query parameters.
type GoogleTranslateClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// GoogleTranslateConfig holds configuration for the Google Translate client.
type GoogleTranslateConfig struct {
	BaseURL    string // endpoint override, defaults to the public URL
	UserAgent  string
	HTTPClient *http.Client // shared pooled client; defaults to a fresh one
}

// NewGoogleTranslateClient creates a new Google Translate TTS client.
func NewGoogleTranslateClient(cfg GoogleTranslateConfig) *GoogleTranslateClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = googleTranslateTTSURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &GoogleTranslateClient{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// Synthesize fetches MP3 audio for text in the given language. The language
// code is forwarded as-is; Google accepts more codes than the player offers.
func (c *GoogleTranslateClient) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("tl", language)
	q.Set("client", "tw-ob")
	q.Set("q", text)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	return io.ReadAll(resp.Body)
}
