package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"ytt/chunker"
	"ytt/selector"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	// Required fields
	if strings.TrimSpace(c.Input) == "" {
		errors = append(errors, "video URL or ID is required")
	}

	// Validate languages
	if len(c.Languages) == 0 {
		errors = append(errors, "at least one language is required")
	}
	for _, code := range c.Languages {
		if _, err := language.Parse(code); err != nil {
			errors = append(errors, fmt.Sprintf("invalid language code '%s'", code))
		}
	}

	// Validate fallback policy
	if _, err := selector.ParseFallbackPolicy(c.Fallback); err != nil {
		errors = append(errors, err.Error())
	}

	// Validate chunk size (0 disables chunking)
	if c.ChunkSize < 0 {
		errors = append(errors, "chunk size cannot be negative (use 0 to disable chunking)")
	} else if c.ChunkSize > chunker.MaxChunkSize {
		errors = append(errors, fmt.Sprintf("chunk size cannot exceed %d characters", chunker.MaxChunkSize))
	}

	// Validate provider
	if !IsValidProvider(c.Provider) {
		errors = append(errors, fmt.Sprintf("invalid provider '%s', must be one of: %s",
			c.Provider, strings.Join(ProviderValues(), ", ")))
	}

	if err := c.HTTP.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("http config: %v", err))
	}

	if c.Provider == ProviderYtDlp && strings.TrimSpace(c.YtDlp.Path) == "" {
		errors = append(errors, "yt-dlp path is required for the yt-dlp provider")
	}

	if err := c.Log.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("log config: %v", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// Validate checks if HTTP configuration is valid
func (hc *HTTPConfig) Validate() error {
	if hc.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// Validate checks if logging configuration is valid
func (lc *LogConfig) Validate() error {
	var errors []string

	if _, err := zerolog.ParseLevel(strings.ToLower(lc.Level)); err != nil || lc.Level == "" {
		errors = append(errors, fmt.Sprintf("invalid level '%s'", lc.Level))
	}

	if !isValidLogFormat(lc.Format) {
		errors = append(errors, fmt.Sprintf("invalid format '%s', must be one of: %s",
			lc.Format, strings.Join(LogFormatValues(), ", ")))
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, ", "))
	}

	return nil
}

func isValidLogFormat(format string) bool {
	for _, valid := range LogFormatValues() {
		if strings.EqualFold(format, valid) {
			return true
		}
	}
	return false
}
