package internal

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if got := cfg.App.HTTP.Address(); got != ":8080" {
		t.Errorf("address = %q", got)
	}
	if cfg.Auth.AuthEnabled() {
		t.Error("auth enabled by default")
	}
}

func TestHTTPConfigPortBounds(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := NewDefaultConfig()
		cfg.App.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d accepted", port)
		}
	}
}

func TestCatalogPathRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Catalog.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty catalog path accepted")
	}
}

func TestRenderConfigBounds(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Render.MaxVisible = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero max_visible accepted")
	}

	cfg = NewDefaultConfig()
	cfg.Render.ViewportMargin = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative viewport_margin accepted")
	}
}

func TestAuthConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = AuthModeToken
	if err := cfg.Validate(); err == nil {
		t.Error("token mode without token accepted")
	}

	cfg.Auth.Token = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("token mode with token rejected: %v", err)
	}
	if !cfg.Auth.AuthEnabled() {
		t.Error("token mode not reported enabled")
	}

	cfg = NewDefaultConfig()
	cfg.Auth.Mode = "oauth"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown auth mode accepted")
	}

	// Empty mode normalises to disabled.
	cfg = NewDefaultConfig()
	cfg.Auth.Mode = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty mode rejected: %v", err)
	}
	if cfg.Auth.Mode != AuthModeDisabled {
		t.Errorf("mode = %q after validation", cfg.Auth.Mode)
	}
}
