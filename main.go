package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"ytt/captions"
	"ytt/config"
	"ytt/logging"
	"ytt/models"
	"ytt/output"
	"ytt/selector"
	"ytt/transcript"
	"ytt/youtube"
	"ytt/ytdlp"
)

func main() {
	// Set up context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Register signal handlers (Ctrl+C, SIGTERM)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\n⚠️  Interrupt received, stopping...")
		cancel()
	}()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			fmt.Fprintln(os.Stderr, "⚠️  Extraction cancelled by user")
			os.Exit(130) // Standard exit code for SIGINT
		}
		fmt.Fprintf(os.Stderr, "\n❌ Error: %v\n", err)
		if h := hint(err); h != "" {
			fmt.Fprintf(os.Stderr, "💡 %s\n", h)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ytt URL_OR_ID",
		Short: "Extract transcripts from YouTube videos",
		Long: `ytt downloads the captions of a YouTube video and writes them as
plain or timestamped text, optionally split into chunks.

Config files are searched in order:
  1. ./ytt.yaml
  2. ~/.ytt/config.yaml
  3. /etc/ytt/config.yaml

Priority: CLI flags > Config file > Defaults`,
		Example: `  ytt https://www.youtube.com/watch?v=dQw4w9WgXcQ
  ytt dQw4w9WgXcQ -l de,en --no-timestamps -o transcript.txt
  ytt https://youtu.be/dQw4w9WgXcQ --chunk-size 4000 --single-file
  ytt dQw4w9WgXcQ --info
  ytt dQw4w9WgXcQ -o - | less`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cmd.Flags(), args)
			if err != nil {
				return err
			}

			if _, err := logging.New(logging.Config{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				Output: cfg.Log.Output,
			}); err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}

			stdout := cmd.OutOrStdout()
			if cfg.DryRun {
				fmt.Fprintln(stdout, "═══════════════════════════════════════════════════════════")
				fmt.Fprintln(stdout, "                      DRY RUN MODE")
				cfg.PrintConfig(stdout)
				fmt.Fprintln(stdout, "\n✓ Configuration is valid. Nothing will be downloaded.")
				return nil
			}

			return runPipeline(cmd.Context(), cfg, newProvider(cfg), stdout, cmd.ErrOrStderr())
		},
	}

	config.AddFlags(cmd.Flags())
	return cmd
}

// newProvider builds the captions provider selected by cfg.
func newProvider(cfg *config.Config) captions.Provider {
	opts := []youtube.Option{
		youtube.WithTimeout(cfg.HTTP.Timeout),
		youtube.WithPreserveFormatting(cfg.Captions.PreserveFormatting),
	}
	if cfg.HTTP.UserAgent != "" {
		opts = append(opts, youtube.WithUserAgent(cfg.HTTP.UserAgent))
	}
	client := youtube.NewClient(opts...)

	if cfg.Provider == config.ProviderYtDlp {
		return ytdlp.NewProber(client).SetBinary(cfg.YtDlp.Path)
	}
	return client
}

// runPipeline extracts, chunks and writes one transcript. Status lines go
// to stdout unless the transcript itself is written there.
func runPipeline(ctx context.Context, cfg *config.Config, provider captions.Provider, stdout, stderr io.Writer) error {
	startTime := time.Now()

	status := stdout
	if cfg.Output == output.Stdout {
		status = stderr
	}

	policy, err := selector.ParseFallbackPolicy(cfg.Fallback)
	if err != nil {
		return err
	}
	extractor := transcript.NewExtractor(
		transcript.WithProvider(provider),
		transcript.WithFallbackPolicy(policy),
	)

	if cfg.Info {
		return printInfo(ctx, extractor, cfg.Input, stdout)
	}

	fmt.Fprintln(status, "╔════════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(status, "║                 YOUTUBE TRANSCRIPT EXTRACTOR                   ║")
	fmt.Fprintln(status, "╚════════════════════════════════════════════════════════════════╝")
	fmt.Fprintf(status, "Input:      %s\n", cfg.Input)
	fmt.Fprintf(status, "Languages:  %v\n", cfg.Languages)
	fmt.Fprintf(status, "Provider:   %s\n", cfg.Provider)
	fmt.Fprintln(status)

	// Phase 1: Fetch
	fmt.Fprintln(status, "📥 Fetching transcript")
	fmt.Fprintln(status, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	result, err := extractor.Extract(ctx, cfg.Input, cfg.Languages, cfg.IncludeTimestamps())
	if err != nil {
		return err
	}

	if result.Title != "" {
		fmt.Fprintf(status, "  Title:      %s\n", result.Title)
	}
	fmt.Fprintf(status, "  Video ID:   %s\n", result.VideoID)
	fmt.Fprintf(status, "  Language:   %s (%s)\n", result.Language, result.LanguageCode)
	fmt.Fprintf(status, "  Origin:     %s\n", describeOrigin(result))
	fmt.Fprintf(status, "  Segments:   %d (%.0fs)\n", len(result.Segments), result.Duration())
	fmt.Fprintln(status)

	// Phase 2: Chunking
	chunks, err := buildChunks(result, cfg)
	if err != nil {
		return err
	}
	if cfg.ChunkSize > 0 {
		fmt.Fprintln(status, "✂️  Chunking")
		fmt.Fprintln(status, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		fmt.Fprintf(status, "  Created:    %d chunks (max %d characters)\n", len(chunks), cfg.ChunkSize)
		fmt.Fprintln(status)
	}

	// Phase 3: Output
	path := cfg.Output
	if path == "" {
		path = output.DefaultFilename(result.VideoID, time.Now())
	}

	files, err := output.NewWriter(cfg.SingleFile).SetStdout(stdout).Write(path, chunks)
	if err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}

	log.Debug().Strs("files", files).Dur("elapsed", time.Since(startTime)).Msg("transcript written")

	if path == output.Stdout {
		return nil
	}

	fmt.Fprintln(status, "📝 Preview")
	fmt.Fprintln(status, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(status, output.Preview(result.Text, output.PreviewLength))
	fmt.Fprintln(status)

	fmt.Fprintln(status, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(status, "                     ✅ SUCCESS!")
	fmt.Fprintln(status, "═══════════════════════════════════════════════════════════")
	for _, f := range files {
		fmt.Fprintf(status, "  Saved:       %s\n", f)
	}
	fmt.Fprintf(status, "  Characters:  %d\n", len([]rune(result.Text)))
	fmt.Fprintf(status, "  Total time:  %.2fs\n", time.Since(startTime).Seconds())
	fmt.Fprintln(status, "═══════════════════════════════════════════════════════════")

	return nil
}

// buildChunks returns the transcript as chunks; without chunking the whole
// text is a single chunk.
func buildChunks(result *models.TranscriptResult, cfg *config.Config) ([]*models.TextChunk, error) {
	if cfg.ChunkSize <= 0 {
		chunk, err := models.NewTextChunk(1, result.Text)
		if err != nil {
			return nil, fmt.Errorf("transcript is empty: %w", err)
		}
		return []*models.TextChunk{chunk}, nil
	}
	return transcript.Chunks(result, cfg.IncludeTimestamps(), cfg.ChunkSize)
}

// printInfo lists the caption tracks of a video.
func printInfo(ctx context.Context, extractor *transcript.Extractor, input string, w io.Writer) error {
	info, err := extractor.Info(ctx, input)
	if err != nil {
		return err
	}

	title := ""
	if info.Title != "" {
		title = " (" + info.Title + ")"
	}
	fmt.Fprintf(w, "Available transcripts for %s%s:\n", info.VideoID, title)
	for _, track := range info.Tracks {
		fmt.Fprintf(w, "  - %s\n", track)
	}
	return nil
}

func describeOrigin(result *models.TranscriptResult) string {
	switch result.Origin {
	case models.OriginFallback:
		kind := "manual"
		if result.Generated {
			kind = "auto-generated"
		}
		return fmt.Sprintf("fallback (%s, no preferred language available)", kind)
	default:
		return string(result.Origin)
	}
}

// hint suggests a next step for errors users can act on.
func hint(err error) string {
	switch {
	case errors.Is(err, captions.ErrNoTranscript):
		return "Run with --info to list available languages, or use --fallback first."
	case errors.Is(err, captions.ErrTooManyRequests):
		return "YouTube is rate limiting requests from this IP. Wait a while or try --provider yt-dlp."
	case errors.Is(err, captions.ErrInvalidInput):
		return "Pass a YouTube URL (watch, youtu.be, shorts, embed) or an 11-character video ID."
	case errors.Is(err, captions.ErrAgeRestricted):
		return "Age-restricted videos require a signed-in session, which is not supported."
	}
	return ""
}
