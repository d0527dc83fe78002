// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// GitHub content repository (remote system of record). All three of
	// Owner/Repo/Token must be set for remote mode; otherwise the local
	// data files are used directly.
	GitHubOwner  string
	GitHubRepo   string
	GitHubToken  string
	GitHubBranch string

	// Local data files. In remote mode these double as the disaster-recovery
	// fallback copies.
	DataFile       string
	SiteConfigFile string
	PublicDir      string

	// Admin authentication
	JWTSecret   string
	AdminEmails []string

	// SMTP delivery for verification codes and contact messages
	SMTPHost    string
	SMTPPort    string
	SMTPUser    string
	SMTPPass    string
	ContactTo   string
	ContactFrom string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		GitHubOwner:  os.Getenv("GITHUB_CONTENT_OWNER"),
		GitHubRepo:   os.Getenv("GITHUB_CONTENT_REPO"),
		GitHubToken:  os.Getenv("GITHUB_CONTENT_TOKEN"),
		GitHubBranch: envOrDefault("GITHUB_CONTENT_BRANCH", "main"),

		DataFile:       envOrDefault("DATA_FILE", "data/projects.ts"),
		SiteConfigFile: envOrDefault("SITE_CONFIG_FILE", "data/site-config.ts"),
		PublicDir:      envOrDefault("PUBLIC_DIR", "public"),

		JWTSecret:   envOrDefault("JWT_SECRET", "dev-secret-change-in-production"),
		AdminEmails: splitList(os.Getenv("ADMIN_EMAILS")),

		SMTPHost:    os.Getenv("SMTP_HOST"),
		SMTPPort:    envOrDefault("SMTP_PORT", "587"),
		SMTPUser:    os.Getenv("SMTP_USER"),
		SMTPPass:    os.Getenv("SMTP_PASS"),
		ContactTo:   os.Getenv("CONTACT_TO"),
		ContactFrom: os.Getenv("CONTACT_FROM"),
	}

	if cfg.Env == "production" {
		if cfg.JWTSecret == "dev-secret-change-in-production" {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		if len(cfg.AdminEmails) == 0 {
			return nil, fmt.Errorf("ADMIN_EMAILS must be set in production")
		}
	}

	return cfg, nil
}

// GitHubEnabled reports whether the remote content repository is fully
// configured. Absence of any credential disables remote mode entirely;
// it is feature-detected, not an error.
func (c *Config) GitHubEnabled() bool {
	return c.GitHubOwner != "" && c.GitHubRepo != "" && c.GitHubToken != ""
}

// SMTPEnabled reports whether outgoing mail is fully configured.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != "" &&
		c.ContactTo != "" && c.ContactFrom != ""
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList parses a comma-separated list, trimming whitespace and
// lowercasing entries. Empty entries are dropped.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.ToLower(strings.TrimSpace(part)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
