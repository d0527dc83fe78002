package config

import "testing"

// clearEnv blanks the variables that would leak host configuration into
// the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_HOST", "APP_PORT", "APP_ENV",
		"GITHUB_CONTENT_OWNER", "GITHUB_CONTENT_REPO", "GITHUB_CONTENT_TOKEN", "GITHUB_CONTENT_BRANCH",
		"DATA_FILE", "SITE_CONFIG_FILE", "PUBLIC_DIR",
		"JWT_SECRET", "ADMIN_EMAILS",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "CONTACT_TO", "CONTACT_FROM",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if !cfg.IsDev() {
		t.Error("default env is not development")
	}
	if cfg.DataFile != "data/projects.ts" {
		t.Errorf("DataFile = %q", cfg.DataFile)
	}
	if cfg.GitHubEnabled() {
		t.Error("GitHub enabled without credentials")
	}
	if cfg.SMTPEnabled() {
		t.Error("SMTP enabled without credentials")
	}
}

func TestGitHubEnabledRequiresAllCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_CONTENT_OWNER", "acme")
	t.Setenv("GITHUB_CONTENT_REPO", "site-content")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GitHubEnabled() {
		t.Error("GitHub enabled with missing token")
	}

	t.Setenv("GITHUB_CONTENT_TOKEN", "ghp_x")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.GitHubEnabled() {
		t.Error("GitHub disabled with full credentials")
	}
	if cfg.GitHubBranch != "main" {
		t.Errorf("default branch = %q", cfg.GitHubBranch)
	}
}

func TestProductionGuards(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("production boot accepted the default JWT secret")
	}

	t.Setenv("JWT_SECRET", "real-secret")
	if _, err := Load(); err == nil {
		t.Fatal("production boot accepted an empty admin list")
	}

	t.Setenv("ADMIN_EMAILS", "a@example.com")
	if _, err := Load(); err != nil {
		t.Fatalf("fully configured production boot failed: %v", err)
	}
}

func TestAdminEmailsParsing(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADMIN_EMAILS", " Admin@Example.com, second@example.com ,, ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"admin@example.com", "second@example.com"}
	if len(cfg.AdminEmails) != len(want) {
		t.Fatalf("got %v, want %v", cfg.AdminEmails, want)
	}
	for i := range want {
		if cfg.AdminEmails[i] != want[i] {
			t.Errorf("AdminEmails[%d] = %q, want %q", i, cfg.AdminEmails[i], want[i])
		}
	}
}
