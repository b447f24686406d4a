package config

import "strings"

// Normalize trims whitespace, makes MistURL end in "/" so that
// "sites/<id>/..." can be appended directly, and fills logging defaults.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Token = strings.TrimSpace(cfg.Token)
	cfg.SiteID = strings.TrimSpace(cfg.SiteID)
	cfg.MistURL = strings.TrimSpace(cfg.MistURL)
	if cfg.MistURL != "" && !strings.HasSuffix(cfg.MistURL, "/") {
		cfg.MistURL += "/"
	}

	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}
