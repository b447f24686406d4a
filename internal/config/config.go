// Package config loads the endpoint and logging configuration for a run.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dm/mistinfo/internal/client"
)

// Config is the on-disk configuration. The same keys are accepted in JSON
// and YAML files.
type Config struct {
	Token              string        `json:"token" yaml:"token" validate:"required"`
	MistURL            string        `json:"mist_url" yaml:"mist_url" validate:"required,http_url"`
	SiteID             string        `json:"site_id" yaml:"site_id" validate:"required"`
	RequestTimeout     Duration      `json:"request_timeout" yaml:"request_timeout"`
	InsecureSkipVerify bool          `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	Sequential         bool          `json:"sequential" yaml:"sequential"`
	Logging            LoggingConfig `json:"logging" yaml:"logging"`
}

type LoggingConfig struct {
	Level  string `json:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `json:"format" yaml:"format" validate:"omitempty,oneof=text json"`
	File   string `json:"file" yaml:"file"`
}

// Duration is a time.Duration written as a Go duration string ("30s").
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"30s\": %w", err)
	}
	return d.set(s)
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.set(s)
}

func (d *Duration) set(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Load reads a JSON or YAML config file, applies MIST_* environment
// overrides, normalizes it and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	Normalize(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Parse decodes config bytes. A document starting with '{' is treated as
// JSON, anything else as YAML.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty config")
	}
	if trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(trimmed))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides checks for environment variables with the MIST_ prefix.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MIST_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("MIST_URL"); v != "" {
		cfg.MistURL = v
	}
	if v := os.Getenv("MIST_SITE_ID"); v != "" {
		cfg.SiteID = v
	}
	if v := os.Getenv("MIST_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// ClientConfig converts the loaded configuration into client settings.
func (c *Config) ClientConfig() client.ClientConfig {
	return client.ClientConfig{
		BaseURL:            c.MistURL,
		Token:              c.Token,
		SiteID:             c.SiteID,
		InsecureSkipVerify: c.InsecureSkipVerify,
		RequestTimeout:     time.Duration(c.RequestTimeout),
	}
}
