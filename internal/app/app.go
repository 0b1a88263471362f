package app

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/mkolarik/sayso/internal/httpapi"
	"github.com/mkolarik/sayso/internal/tts"
)

type App struct {
	cfg        Config
	logger     *log.Logger
	httpClient *http.Client // Shared HTTP client with connection pooling for TTS
}

func New(cfg Config, logger *log.Logger) (*App, error) {
	if cfg.UpstreamURL != "" {
		if _, err := url.Parse(cfg.UpstreamURL); err != nil {
			return nil, fmt.Errorf("invalid TTS_UPSTREAM_URL: %w", err)
		}
	}

	// Shared HTTP client with connection pooling for TTS.
	// Keeps TCP connections alive to reduce latency for repeated calls;
	// the upstream is a single host.
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   5 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		httpClient: httpClient,
	}, nil
}

func (a *App) Router() http.Handler {
	synth := tts.NewGoogleTranslateClient(tts.GoogleTranslateConfig{
		BaseURL:    a.cfg.UpstreamURL,
		UserAgent:  a.cfg.UpstreamUserAgent,
		HTTPClient: a.httpClient,
	})
	return httpapi.NewRouter(httpapi.RouterConfig{
		AuthToken:     a.cfg.AuthToken,
		AuthJWTSecret: a.cfg.AuthJWTSecret,
	}, a.logger, synth)
}
