package config

import (
	"strings"

	"dial-cli/internal/logger"
)

var log = logger.Named("config")

// ApplyKVOverrides applies free-form -c key=value overrides. Only the three
// persisted keys (url, token, model) exist; anything else is ignored with a
// warning so a typo like -c ulr=... doesn't fail silently.
func ApplyKVOverrides(cfg Config, overrides []string) Config {
	if len(overrides) == 0 {
		return cfg
	}
	for _, raw := range overrides {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			log.Warnf("ignoring malformed config override %q (want key=value)", raw)
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		switch key {
		case "url":
			cfg.URL = val
		case "token":
			cfg.Token = val
		case "model":
			cfg.Model = val
		default:
			log.Warnf("ignoring unknown config override key %q", key)
		}
	}
	return cfg
}
