package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultPath)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Engine.Mode != EngineExternal || cfg.Engine.Binary != "xray-core" || cfg.Engine.StopTimeout != 5*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg.Engine)
	}
	if cfg.SocksPort() != nil || cfg.HTTPPort() != nil {
		t.Error("no inbounds expected by default")
	}
	if cfg.Check {
		t.Error("check should be off by default")
	}
	if cfg.Scan.Timeout != 30*time.Second || cfg.Scan.Proxy != "" {
		t.Errorf("unexpected scan defaults: %+v", cfg.Scan)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load() error = %v, want not-exist", err)
	}
}

func TestLoadDefaultFileFromWorkingDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "inbounds:\n  socks_port: 1080\n")
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p := cfg.SocksPort(); p == nil || *p != 1080 {
		t.Errorf("SocksPort() = %v, want 1080", p)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
engine:
  mode: embedded
  stop_timeout: 2s
inbounds:
  socks_port: 10808
  http_port: 10809
check: true
scan:
  proxy: socks5://127.0.0.1:1080
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Engine.Mode != EngineEmbedded {
		t.Errorf("Mode = %q", cfg.Engine.Mode)
	}
	// Unset keys keep their defaults
	if cfg.Engine.Binary != "xray-core" {
		t.Errorf("Binary = %q", cfg.Engine.Binary)
	}
	if cfg.Engine.StopTimeout != 2*time.Second {
		t.Errorf("StopTimeout = %v", cfg.Engine.StopTimeout)
	}
	if p := cfg.SocksPort(); p == nil || *p != 10808 {
		t.Errorf("SocksPort() = %v", p)
	}
	if p := cfg.HTTPPort(); p == nil || *p != 10809 {
		t.Errorf("HTTPPort() = %v", p)
	}
	if !cfg.Check {
		t.Error("Check = false")
	}
	if cfg.Scan.Proxy != "socks5://127.0.0.1:1080" || cfg.Scan.Timeout != 30*time.Second {
		t.Errorf("Scan = %+v", cfg.Scan)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "engine: [unclosed")
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantPaths []string
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:      "unknown mode",
			mutate:    func(c *Config) { c.Engine.Mode = "docker" },
			wantPaths: []string{"engine.mode"},
		},
		{
			name:      "external without binary",
			mutate:    func(c *Config) { c.Engine.Binary = "" },
			wantPaths: []string{"engine.binary"},
		},
		{
			name: "embedded without binary",
			mutate: func(c *Config) {
				c.Engine.Mode = EngineEmbedded
				c.Engine.Binary = ""
			},
		},
		{
			name:      "negative stop timeout",
			mutate:    func(c *Config) { c.Engine.StopTimeout = -time.Second },
			wantPaths: []string{"engine.stop_timeout"},
		},
		{
			name: "same port twice",
			mutate: func(c *Config) {
				c.Inbounds.SocksPort = 1080
				c.Inbounds.HTTPPort = 1080
			},
			wantPaths: []string{"inbounds.http_port"},
		},
		{
			name:      "proxy not a url",
			mutate:    func(c *Config) { c.Scan.Proxy = "localhost" },
			wantPaths: []string{"scan.proxy"},
		},
		{
			name:      "missing geoip database",
			mutate:    func(c *Config) { c.Scan.GeoIPCountry = "/nonexistent/country.mmdb" },
			wantPaths: []string{"scan.geoip_country"},
		},
		{
			name: "several problems reported together",
			mutate: func(c *Config) {
				c.Engine.Mode = "docker"
				c.Engine.StopTimeout = -1
			},
			wantPaths: []string{"engine.mode", "engine.stop_timeout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if len(tt.wantPaths) == 0 {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() error = %v, want ValidationErrors", err)
			}
			if len(verrs) != len(tt.wantPaths) {
				t.Fatalf("got %d errors (%v), want %d", len(verrs), verrs, len(tt.wantPaths))
			}
			for i, want := range tt.wantPaths {
				if verrs[i].FieldPath != want {
					t.Errorf("[%d] FieldPath = %q, want %q", i, verrs[i].FieldPath, want)
				}
				if verrs[i].Message == "" {
					t.Errorf("[%d] empty message", i)
				}
			}
		})
	}
}
