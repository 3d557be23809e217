package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"asn2ip/internal/validation"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Upstream lookup services
	BGPViewURL     string        // ASN search service base URL
	RIPEStatURL    string        // announced-prefixes service base URL
	LookupTimeout  time.Duration // per-request timeout for upstream calls
	UserAgent      string
	DefaultOrgName string // prefilled organization in the lookup form

	// Output artifact, overwritten on every run
	OutputFile string

	// Database (optional, enables run history)
	DatabaseURL      string
	HistoryRetention time.Duration // runs older than this are pruned

	// Redis (optional, backs the request limiter)
	RedisURL     string
	RateLimitMax int // requests per minute per IP

	// OIDC (optional, gates the UI and API behind login)
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // text or json

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "ASN-2-IP"
	SiteTagline string // env: SITE_TAGLINE, default: "IP Range Finder"
	SiteFooter  string // env: SITE_FOOTER
}

// DefaultUserAgent mirrors a desktop browser; the BGPView API rejects
// requests without a browser-like agent.
const DefaultUserAgent = "mozilla/5.0 (windows nt 10.0; win64; x64) applewebkit/537.36 (khtml, like gecko) chrome/112.0.0.0 safari/537.36 edg/112.0.1722.48"

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:              getEnv("ENV", "development"),
		ServerAddr:       getEnv("SERVER_ADDR", ":3000"),
		BaseURL:          getEnv("BASE_URL", "http://localhost:3000"),
		BGPViewURL:       getEnv("BGPVIEW_URL", "https://api.bgpview.io"),
		RIPEStatURL:      getEnv("RIPESTAT_URL", "https://stat.ripe.net"),
		LookupTimeout:    getDuration("LOOKUP_TIMEOUT", 30*time.Second),
		UserAgent:        getEnv("USER_AGENT", DefaultUserAgent),
		DefaultOrgName:   getEnv("DEFAULT_ORGANIZATION", "microsoft"),
		OutputFile:       getEnv("OUTPUT_FILE", "asn_ip_ranges.txt"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		HistoryRetention: getDuration("HISTORY_RETENTION", 30*24*time.Hour),
		RedisURL:         getEnv("REDIS_URL", ""),
		RateLimitMax:     getInt("RATE_LIMIT_MAX", 30),
		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),
		SessionSecret:    getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),

		SiteTitle:   getEnv("SITE_TITLE", "ASN-2-IP"),
		SiteTagline: getEnv("SITE_TAGLINE", "IP Range Finder"),
		SiteFooter:  getEnv("SITE_FOOTER", "ASN-2-IP - map an organization's announced IP ranges"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// AuthEnabled reports whether OIDC login is configured.
func (c *Config) AuthEnabled() bool {
	return c.OIDCIssuer != ""
}

// HistoryEnabled reports whether a database is configured for run history.
func (c *Config) HistoryEnabled() bool {
	return c.DatabaseURL != ""
}

// Validate checks settings that cannot fall back to a default.
func (c *Config) Validate() error {
	if err := c.ValidateUpstreams(); err != nil {
		return err
	}
	if c.AuthEnabled() && c.OIDCClientID == "" {
		return fmt.Errorf("OIDC_CLIENT_ID is required when OIDC_ISSUER is set")
	}
	if !c.IsDev() && len(c.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters")
	}
	return nil
}

// ValidateUpstreams checks the lookup service base URLs.
func (c *Config) ValidateUpstreams() error {
	for name, u := range map[string]string{
		"BGPVIEW_URL":  c.BGPViewURL,
		"RIPESTAT_URL": c.RIPEStatURL,
	} {
		if ok, msg := validation.ValidateURL(u); !ok {
			return fmt.Errorf("%s: %s", name, msg)
		}
	}
	return nil
}
