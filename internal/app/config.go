package app

import "os"

type Config struct {
	HTTPAddr  string
	SentryDSN string

	// Upstream synthesis endpoint (empty means the public Google Translate
	// endpoint) and the browser-like User-Agent sent with each request.
	UpstreamURL       string
	UpstreamUserAgent string

	// Inbound authorization. AuthToken enables a static bearer check;
	// AuthJWTSecret enables HS256 JWT verification instead. Both empty
	// leaves the endpoint open, matching deployments where the hosting
	// platform enforces authorization upstream.
	AuthToken     string
	AuthJWTSecret string
}

func LoadConfigFromEnv() Config {
	return Config{
		HTTPAddr:  getenv("HTTP_ADDR", ":8080"),
		SentryDSN: os.Getenv("SENTRY_DSN"),

		UpstreamURL:       os.Getenv("TTS_UPSTREAM_URL"),
		UpstreamUserAgent: os.Getenv("TTS_UPSTREAM_USER_AGENT"),

		AuthToken:     os.Getenv("AUTH_TOKEN"),
		AuthJWTSecret: os.Getenv("AUTH_JWT_SECRET"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
