package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// LoadConfig loads configuration with priority: CLI flags > Config file > Defaults
//
// fs must have been populated by AddFlags and parsed; args are the
// positional arguments, the first of which is the video URL or ID.
func LoadConfig(fs *pflag.FlagSet, args []string) (*Config, error) {
	// 1. Start with defaults
	cfg := DefaultConfig()

	// 2. Use --config if given, otherwise search standard locations
	configPath, err := fs.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to read flags: %w", err)
	}
	if configPath == "" {
		configPath = FindConfigFile()
	}

	if configPath != "" {
		fileCfg, err := LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg = fileCfg
	}

	// 3. Merge CLI flags (highest priority, overwrites everything)
	if err := cfg.MergeFromFlags(fs); err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Input = strings.TrimSpace(args[0])
	}
	cfg.Languages = NormalizeLanguages(cfg.Languages)

	// Validate final configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NormalizeLanguages splits comma separated entries, trims them and drops
// empty ones. An empty result becomes ["en"].
func NormalizeLanguages(languages []string) []string {
	var out []string
	for _, entry := range languages {
		for _, code := range strings.Split(entry, ",") {
			if code = strings.TrimSpace(code); code != "" {
				out = append(out, code)
			}
		}
	}
	if len(out) == 0 {
		return []string{"en"}
	}
	return out
}
