package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ClientID    string // Optional: OAuth client ID registered with Spotify
	RedirectURI string // Optional: redirect URI registered for the client (default: https://www.spotify.com)

	TokenFile    string        // Optional: path to the cached credential file (default: ./spotify_token.json)
	DatabaseFile string        // Optional: path to SQLite link-history file (default: ./sharelinks.db)
	LinkTarget   string        // Optional: where resolved links point (web, app) (default: web)
	AuthWait     time.Duration // Optional: how long to wait for the user to authorize (default: 60s)
	PollInterval time.Duration // Optional: side channel poll interval (default: 1s)
	HistoryKeep  int           // Optional: resolved links retained in history (default: 50)

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: text)
}

func LoadConfig() Config {
	cfg := Config{
		ClientID:     getEnvOrDefault("SHARELINKS_CLIENT_ID", "818391e132f94352828d0de03d7dcdfd"),
		RedirectURI:  getEnvOrDefault("SHARELINKS_REDIRECT_URI", "https://www.spotify.com"),
		TokenFile:    getEnvOrDefault("SHARELINKS_TOKEN_FILE", "spotify_token.json"),
		DatabaseFile: getEnvOrDefault("SHARELINKS_DATABASE_FILE", "sharelinks.db"),
		LinkTarget:   getEnvOrDefault("SHARELINKS_LINK_TARGET", "web"),
		AuthWait:     getEnvDurationOrDefault("SHARELINKS_AUTH_WAIT", 60*time.Second),
		PollInterval: getEnvDurationOrDefault("SHARELINKS_POLL_INTERVAL", time.Second),
		HistoryKeep:  getEnvIntOrDefault("SHARELINKS_HISTORY_KEEP", 50),
		Env:          getEnvOrDefault("ENV", "dev"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:    getEnvOrDefault("LOG_FORMAT", "text"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
