package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// AddFlags registers the command-line flags on fs. Defaults shown in help
// are taken from DefaultConfig; MergeFromFlags only applies flags that were
// set explicitly, so config file values are not overwritten by defaults.
func AddFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()

	// Config file override (handled by LoadConfig before flags are merged)
	fs.String("config", "", "Path to config file (default: search ./ytt.yaml, ~/.ytt/config.yaml, /etc/ytt/config.yaml)")

	// Selection
	fs.StringSliceP("languages", "l", d.Languages, "Preferred language codes in order, comma separated or repeated")
	fs.String("fallback", d.Fallback, "When no preferred language matches: none (fail) or first (first available track)")

	// Output
	fs.StringP("output", "o", d.Output, "Output file, - for stdout (default: youtube_transcript_<ID>_<timestamp>.txt)")
	fs.Bool("no-timestamps", d.NoTimestamps, "Write plain text without [MM:SS] timestamps")
	fs.Int("chunk-size", d.ChunkSize, "Split the transcript into chunks of at most N characters (0 = no chunking)")
	fs.Bool("single-file", d.SingleFile, "Write all chunks into one file instead of one file per chunk")

	// Provider
	fs.String("provider", d.Provider, "Caption source: web or yt-dlp")
	fs.Duration("timeout", d.HTTP.Timeout, "HTTP request timeout")
	fs.String("user-agent", d.HTTP.UserAgent, "HTTP User-Agent header (default: built-in browser user agent)")
	fs.String("yt-dlp-path", d.YtDlp.Path, "Path to the yt-dlp executable")
	fs.Bool("preserve-formatting", d.Captions.PreserveFormatting, "Keep HTML formatting tags such as <b> and <i> in caption text")

	// Logging
	fs.String("log-level", d.Log.Level, "Log level: debug, info, warn, error")
	fs.String("log-format", d.Log.Format, "Log format: console or json")
	fs.String("log-output", d.Log.Output, "Log destination: stderr, stdout or a file path")

	// Behavioral flags
	fs.Bool("info", d.Info, "List available caption tracks and exit")
	fs.BoolP("verbose", "v", d.Verbose, "Enable debug logging")
	fs.Bool("dry-run", d.DryRun, "Show effective configuration without extracting")
}

// MergeFromFlags overrides config values with flags that were set on the
// command line. fs must have been populated by AddFlags and parsed.
func (c *Config) MergeFromFlags(fs *pflag.FlagSet) error {
	var err error
	changed := func(name string) bool {
		return err == nil && fs.Changed(name)
	}

	// Selection
	if changed("languages") {
		c.Languages, err = fs.GetStringSlice("languages")
	}
	if changed("fallback") {
		c.Fallback, err = fs.GetString("fallback")
	}

	// Output
	if changed("output") {
		c.Output, err = fs.GetString("output")
	}
	if changed("no-timestamps") {
		c.NoTimestamps, err = fs.GetBool("no-timestamps")
	}
	if changed("chunk-size") {
		c.ChunkSize, err = fs.GetInt("chunk-size")
	}
	if changed("single-file") {
		c.SingleFile, err = fs.GetBool("single-file")
	}

	// Provider
	if changed("provider") {
		c.Provider, err = fs.GetString("provider")
	}
	if changed("timeout") {
		c.HTTP.Timeout, err = fs.GetDuration("timeout")
	}
	if changed("user-agent") {
		c.HTTP.UserAgent, err = fs.GetString("user-agent")
	}
	if changed("yt-dlp-path") {
		c.YtDlp.Path, err = fs.GetString("yt-dlp-path")
	}
	if changed("preserve-formatting") {
		c.Captions.PreserveFormatting, err = fs.GetBool("preserve-formatting")
	}

	// Logging
	if changed("log-level") {
		c.Log.Level, err = fs.GetString("log-level")
	}
	if changed("log-format") {
		c.Log.Format, err = fs.GetString("log-format")
	}
	if changed("log-output") {
		c.Log.Output, err = fs.GetString("log-output")
	}

	// Behavioral flags
	if changed("info") {
		c.Info, err = fs.GetBool("info")
	}
	if changed("verbose") {
		c.Verbose, err = fs.GetBool("verbose")
	}
	if changed("dry-run") {
		c.DryRun, err = fs.GetBool("dry-run")
	}

	if err != nil {
		return fmt.Errorf("failed to read flags: %w", err)
	}

	if c.Verbose {
		c.Log.Level = "debug"
	}

	return nil
}

// PrintConfig prints the effective configuration
func (c *Config) PrintConfig(w io.Writer) {
	output := c.Output
	switch output {
	case "":
		output = "(derived from video ID)"
	case "-":
		output = "(stdout)"
	}
	chunking := "off"
	if c.ChunkSize > 0 {
		chunking = fmt.Sprintf("%d characters", c.ChunkSize)
	}

	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(w, "                 Effective Configuration                  ")
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintf(w, "Input:          %s\n", c.Input)
	fmt.Fprintf(w, "Languages:      %s\n", strings.Join(c.Languages, ", "))
	fmt.Fprintf(w, "Fallback:       %s\n", c.Fallback)
	fmt.Fprintf(w, "Output:         %s\n", output)
	fmt.Fprintf(w, "Timestamps:     %v\n", c.IncludeTimestamps())
	fmt.Fprintf(w, "Chunk Size:     %s\n", chunking)
	if c.ChunkSize > 0 {
		fmt.Fprintf(w, "Single File:    %v\n", c.SingleFile)
	}

	fmt.Fprintln(w, "\nProvider Settings:")
	fmt.Fprintf(w, "  Provider:     %s\n", c.Provider)
	if c.Provider == ProviderYtDlp {
		fmt.Fprintf(w, "  yt-dlp:       %s\n", c.YtDlp.Path)
	}
	fmt.Fprintf(w, "  Timeout:      %s\n", c.HTTP.Timeout)
	if c.HTTP.UserAgent != "" {
		fmt.Fprintf(w, "  User Agent:   %s\n", c.HTTP.UserAgent)
	}
	fmt.Fprintf(w, "  Formatting:   %v\n", c.Captions.PreserveFormatting)

	fmt.Fprintln(w, "\nLogging:")
	fmt.Fprintf(w, "  Level:        %s\n", c.Log.Level)
	fmt.Fprintf(w, "  Format:       %s\n", c.Log.Format)
	fmt.Fprintf(w, "  Output:       %s\n", c.Log.Output)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
}
