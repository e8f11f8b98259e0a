package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "v2parser.yaml"

const (
	EngineExternal = "external"
	EngineEmbedded = "embedded"
)

type Config struct {
	Engine   EngineConfig  `yaml:"engine"`
	Inbounds InboundConfig `yaml:"inbounds"`
	Scan     ScanConfig    `yaml:"scan"`
	// Check builds the generated config through xray-core before it is printed or run.
	Check bool `yaml:"check"`
}

type EngineConfig struct {
	Mode        string        `yaml:"mode" validate:"oneof=external embedded"`
	Binary      string        `yaml:"binary" validate:"required_if=Mode external"`
	StopTimeout time.Duration `yaml:"stop_timeout" validate:"min=0"`
}

// InboundConfig holds the default local listener ports. Zero means no listener.
type InboundConfig struct {
	SocksPort uint16 `yaml:"socks_port"`
	HTTPPort  uint16 `yaml:"http_port" validate:"omitempty,nefield=SocksPort"`
}

// ScanConfig controls how the scan command reaches remote subscriptions.
type ScanConfig struct {
	Timeout time.Duration `yaml:"timeout" validate:"min=0"`
	Proxy   string        `yaml:"proxy" validate:"omitempty,url"`
	// Optional MaxMind databases; IP-literal servers get country and ISP tags.
	GeoIPASN     string `yaml:"geoip_asn" validate:"omitempty,file"`
	GeoIPCountry string `yaml:"geoip_country" validate:"omitempty,file"`
}

func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Mode:        EngineExternal,
			Binary:      "xray-core",
			StopTimeout: 5 * time.Second,
		},
		Scan: ScanConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// Load reads the settings file at path. An empty path falls back to DefaultPath,
// which is allowed to be missing; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SocksPort returns the configured SOCKS inbound port, or nil when disabled.
func (c *Config) SocksPort() *uint16 {
	return portOrNil(c.Inbounds.SocksPort)
}

// HTTPPort returns the configured HTTP inbound port, or nil when disabled.
func (c *Config) HTTPPort() *uint16 {
	return portOrNil(c.Inbounds.HTTPPort)
}

func portOrNil(p uint16) *uint16 {
	if p == 0 {
		return nil
	}
	return &p
}
