package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.MaxBodyBytes != 256<<10 {
		t.Errorf("expected default body limit 256KB, got %d", cfg.MaxBodyBytes)
	}
	if cfg.StoreTimeout != 5*time.Second {
		t.Errorf("expected default store timeout 5s, got %s", cfg.StoreTimeout)
	}
	if cfg.NotifyFromName != "Lead Intake" {
		t.Errorf("unexpected default from name: %s", cfg.NotifyFromName)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://example.it, *.example.it ,")
	t.Setenv("MAX_BODY_BYTES", "204800")
	t.Setenv("STORE_TIMEOUT", "2s")
	t.Setenv("USE_MEMORY_STORE", "true")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.AllowedOrigins[0] != "https://example.it" || cfg.AllowedOrigins[1] != "*.example.it" {
		t.Errorf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.MaxBodyBytes != 204800 {
		t.Errorf("expected body limit 204800, got %d", cfg.MaxBodyBytes)
	}
	if cfg.StoreTimeout != 2*time.Second {
		t.Errorf("expected store timeout 2s, got %s", cfg.StoreTimeout)
	}
	if !cfg.UseMemoryStore {
		t.Error("expected memory store enabled")
	}
}

func TestValidateMissingDatabase(t *testing.T) {
	cfg := &Config{MaxBodyBytes: 1}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}

	cfg.UseMemoryStore = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("memory store should not require DATABASE_URL: %v", err)
	}
}

func TestValidateNotifierRequiresAddresses(t *testing.T) {
	cfg := &Config{
		UseMemoryStore: true,
		MaxBodyBytes:   1,
		SendGridAPIKey: "SG.key",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when notify addresses are missing")
	}

	cfg.NotifyFrom = "noreply@example.it"
	cfg.NotifyTo = "sales@example.it"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateProductionRequiresSendGridKey(t *testing.T) {
	cfg := &Config{
		Env:            "production",
		UseMemoryStore: true,
		MaxBodyBytes:   1,
		NotifyFrom:     "noreply@example.it",
		NotifyTo:       "sales@example.it",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for production notification without SENDGRID_API_KEY")
	}

	cfg.SendGridAPIKey = "SG.key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Without a recipient the stub sender is an acceptable production setup.
	cfg.SendGridAPIKey = ""
	cfg.NotifyFrom = ""
	cfg.NotifyTo = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIsProduction(t *testing.T) {
	cfg := &Config{Env: "Production"}
	if !cfg.IsProduction() {
		t.Error("expected production profile")
	}
	cfg.Env = "development"
	if cfg.IsProduction() {
		t.Error("did not expect production profile")
	}
}
