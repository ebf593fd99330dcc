package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("SITE_URL", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Upstream.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", cfg.Upstream.BaseURL)
	}
	if cfg.Server.SiteURL != "http://localhost:4321" {
		t.Errorf("SiteURL = %q", cfg.Server.SiteURL)
	}
	if cfg.Server.ListenAddr != ":4321" {
		t.Errorf("ListenAddr = %q", cfg.Server.ListenAddr)
	}
	if cfg.Server.Production {
		t.Error("Production = true outside production")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoad_StripsTrailingSlashes(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.mancafe.id/")
	t.Setenv("SITE_URL", "https://mancafe.id/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Upstream.BaseURL != "https://api.mancafe.id" {
		t.Errorf("BaseURL = %q", cfg.Upstream.BaseURL)
	}
	if cfg.Server.SiteURL != "https://mancafe.id" {
		t.Errorf("SiteURL = %q", cfg.Server.SiteURL)
	}
}

func TestLoad_ProductionFlag(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"production", true},
		{"Production", true},
		{"development", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("ENV", tt.env)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Server.Production != tt.want {
				t.Errorf("Production = %v, want %v", cfg.Server.Production, tt.want)
			}
		})
	}
}
