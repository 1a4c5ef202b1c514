package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-checkout/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checkout.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Environment != "development" || cfg.Currency != "USD" || cfg.DefaultQuantity != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Production() {
		t.Fatal("expected development defaults")
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
environment: Production
currency: eur
default_quantity: 2
verification:
  enabled: true
  site_key: site-123
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Production() {
		t.Fatal("expected production environment")
	}
	if cfg.Currency != "EUR" {
		t.Fatalf("expected currency EUR, got %q", cfg.Currency)
	}
	if cfg.DefaultQuantity != 2 {
		t.Fatalf("expected quantity 2, got %d", cfg.DefaultQuantity)
	}
	if !cfg.Verification.Enabled || cfg.Verification.SiteKey != "site-123" {
		t.Fatalf("unexpected verification config: %+v", cfg.Verification)
	}
}

func TestLoadRejectsBadCurrency(t *testing.T) {
	path := writeConfig(t, "currency: EURO\n")
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected an error for a non-ISO currency")
	}
}

func TestLoadRejectsVerificationWithoutSiteKey(t *testing.T) {
	path := writeConfig(t, "verification:\n  enabled: true\n")
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected an error when verification has no site key")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "currency: [oops\n")
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
