// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr      string
	WebhookSecret   string
	GitHubToken     string
	TracURL         string
	DBPath          string
	ExternalTimeout time.Duration
	AliasesPath     string
}

// Load reads configuration from environment variables and returns a
// validated Config. Required: HOOKS_WEBHOOK_SECRET (webhook HMAC secret),
// HOOKS_GITHUB_TOKEN (PAT for label writes), HOOKS_TRAC_URL (Trac XML-RPC
// login URL). Optional with defaults: HOOKS_LISTEN_ADDR (127.0.0.1:8080),
// HOOKS_DB_PATH (hooks.db), HOOKS_EXTERNAL_TIMEOUT (10s, per external
// call), HOOKS_AUTHOR_ALIASES (path to a canonical,alias file; empty
// disables canonicalization).
func Load() (*Config, error) {
	secret := os.Getenv("HOOKS_WEBHOOK_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("HOOKS_WEBHOOK_SECRET is required")
	}

	token := os.Getenv("HOOKS_GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("HOOKS_GITHUB_TOKEN is required")
	}

	tracURL := os.Getenv("HOOKS_TRAC_URL")
	if tracURL == "" {
		return nil, fmt.Errorf("HOOKS_TRAC_URL is required")
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("HOOKS_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "hooks.db"
	if v, ok := os.LookupEnv("HOOKS_DB_PATH"); ok {
		dbPath = v
	}

	externalTimeout := 10 * time.Second
	if v, ok := os.LookupEnv("HOOKS_EXTERNAL_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("HOOKS_EXTERNAL_TIMEOUT has invalid duration %q: %w", v, err)
		}
		externalTimeout = parsed
	}

	return &Config{
		ListenAddr:      listenAddr,
		WebhookSecret:   secret,
		GitHubToken:     token,
		TracURL:         tracURL,
		DBPath:          dbPath,
		ExternalTimeout: externalTimeout,
		AliasesPath:     os.Getenv("HOOKS_AUTHOR_ALIASES"),
	}, nil
}
