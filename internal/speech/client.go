// Package speech is the player's client for the speech proxy service.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client issues synthesis requests against the proxy and returns the audio
// bytes. It satisfies the tts.Client interface the controller consumes.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Config holds configuration for the proxy client.
type Config struct {
	BaseURL    string // proxy endpoint, e.g. http://localhost:8080
	Token      string // static bearer credential; empty sends no header
	HTTPClient *http.Client
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		httpClient: httpClient,
	}
}

type synthesisRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Synthesize posts text and language to the proxy and returns the audio
// payload. Any non-200 answer is a failure; the body is carried into the
// error for diagnostics only.
func (c *Client) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	body, err := json.Marshal(synthesisRequest{Text: text, Language: language})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("speech service error: %s - %s", resp.Status, string(respBody))
	}

	return io.ReadAll(resp.Body)
}
