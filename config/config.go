package config

import (
	"slices"
	"time"
)

// Config holds all extraction options
type Config struct {
	// Video URL or ID, taken from the command line
	Input string `yaml:"-"`

	// Selection settings
	Languages []string `yaml:"languages"` // Preferred language codes, in order
	Fallback  string   `yaml:"fallback"`  // "none" or "first"

	// Output settings
	Output       string `yaml:"output"`        // "" = derived from video ID, "-" = stdout
	NoTimestamps bool   `yaml:"no_timestamps"` // Plain text instead of "[MM:SS] text" lines
	ChunkSize    int    `yaml:"chunk_size"`    // 0 = no chunking
	SingleFile   bool   `yaml:"single_file"`   // Keep chunks in one file

	// Provider settings
	Provider string         `yaml:"provider"` // "web" or "yt-dlp"
	HTTP     HTTPConfig     `yaml:"http"`
	YtDlp    YtDlpConfig    `yaml:"yt_dlp"`
	Log      LogConfig      `yaml:"log"`
	Captions CaptionsConfig `yaml:"captions"`

	// Behavioral flags
	Info    bool `yaml:"-"`       // List tracks instead of extracting
	Verbose bool `yaml:"verbose"` // Debug logging
	DryRun  bool `yaml:"dry_run"` // Show config without extracting
}

// HTTPConfig holds settings of the web provider
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout"`    // Per-request timeout, e.g. "30s"
	UserAgent string        `yaml:"user_agent"` // Empty = built-in browser user agent
}

// YtDlpConfig holds settings of the yt-dlp provider
type YtDlpConfig struct {
	Path string `yaml:"path"` // yt-dlp executable
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
	Output string `yaml:"output"` // stderr, stdout, file path
}

// CaptionsConfig holds caption text settings
type CaptionsConfig struct {
	PreserveFormatting bool `yaml:"preserve_formatting"` // Keep <b>, <i>, ... tags
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Input: "",

		// Selection defaults
		Languages: []string{"en"},
		Fallback:  "none", // Fail when no preferred language has a track

		// Output defaults
		Output:       "",    // youtube_transcript_<ID>_<timestamp>.txt
		NoTimestamps: false, // Timestamped lines
		ChunkSize:    0,     // One piece
		SingleFile:   false, // One file per chunk

		// Provider defaults
		Provider: ProviderWeb,
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "",
		},
		YtDlp: YtDlpConfig{
			Path: "yt-dlp",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		Captions: CaptionsConfig{
			PreserveFormatting: false,
		},

		// Behavioral defaults
		Info:    false,
		Verbose: false,
		DryRun:  false,
	}
}

// Copy creates a deep copy of the config
func (c *Config) Copy() *Config {
	copy := *c
	copy.Languages = slices.Clone(c.Languages)
	return &copy
}

// IncludeTimestamps reports whether output is rendered with timestamps.
func (c *Config) IncludeTimestamps() bool {
	return !c.NoTimestamps
}

// Providers accepted by Config.Provider.
const (
	ProviderWeb   = "web"
	ProviderYtDlp = "yt-dlp"
)

// ProviderValues returns valid provider values
func ProviderValues() []string {
	return []string{ProviderWeb, ProviderYtDlp}
}

// IsValidProvider checks if provider is valid
func IsValidProvider(provider string) bool {
	return slices.Contains(ProviderValues(), provider)
}

// LogFormatValues returns valid log format values
func LogFormatValues() []string {
	return []string{"console", "json"}
}
