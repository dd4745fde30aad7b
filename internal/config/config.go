// Package config loads service configuration from the environment. Missing
// required settings fail at startup, never as a nil dereference inside a
// request handler.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds everything the handlers need. It is constructed once in main
// and passed into each handler constructor — no package-level mutable state.
type Config struct {
	// IdentityURL is the base URL of the managed identity provider
	// (e.g. https://xyz.supabase.co).
	IdentityURL string
	// IdentityKey is the provider's service/anon API key.
	IdentityKey string
	// SiteURL is the public base URL used to build share links.
	SiteURL string
	// OGBaseURL is the base URL for Open-Graph preview images. Optional;
	// empty produces root-relative image paths.
	OGBaseURL string

	// DBPath is the SQLite database file path.
	DBPath string
	// CatalogPath points at an optional genres.yaml; empty means defaults only.
	CatalogPath string
	// AdminPassword guards the setup endpoint via basic auth when set.
	AdminPassword string

	Host string
	Port string
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		IdentityURL:   strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		IdentityKey:   os.Getenv("SUPABASE_KEY"),
		SiteURL:       strings.TrimRight(os.Getenv("SITE_URL"), "/"),
		OGBaseURL:     strings.TrimRight(os.Getenv("OG_BASE_URL"), "/"),
		DBPath:        os.Getenv("QUIZHUB_DB"),
		CatalogPath:   os.Getenv("GENRE_CATALOG"),
		AdminPassword: os.Getenv("QUIZHUB_ADMIN_PASSWORD"),
		Host:          os.Getenv("HOST"),
		Port:          os.Getenv("PORT"),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = "quizhub.db"
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1" // set HOST=0.0.0.0 for LAN access
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	var missing []string
	if c.IdentityURL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if c.IdentityKey == "" {
		missing = append(missing, "SUPABASE_KEY")
	}
	if c.SiteURL == "" {
		missing = append(missing, "SITE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Addr returns the host:port the HTTP server should bind.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// ShareURL builds the public share link for a token.
func (c *Config) ShareURL(token string) string {
	return fmt.Sprintf("%s/share/%s", c.SiteURL, token)
}
