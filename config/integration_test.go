package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate makes sure no config file from the machine running the tests is
// picked up.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	testChdir(t, tmpDir)
	t.Setenv("HOME", tmpDir)
	if _, err := os.Stat("/etc/ytt"); err == nil {
		t.Skip("system config directory present")
	}
	return tmpDir
}

func TestLoadConfig_AllLayersPriority(t *testing.T) {
	tmpDir := isolate(t)
	configPath := filepath.Join(tmpDir, "custom.yaml")

	configContent := `languages: [de]
chunk_size: 1500
fallback: first
http:
  timeout: 10s
log:
  format: json
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create temp config: %v", err)
	}

	fs := parseFlags(t,
		"--config", configPath,
		"-l", "fr,en",
		"--timeout", "1m",
	)

	cfg, err := LoadConfig(fs, []string{"https://youtu.be/dQw4w9WgXcQ"})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// Verify priority: CLI > File > Defaults
	if strings.Join(cfg.Languages, ",") != "fr,en" {
		t.Errorf("Expected languages fr,en (from CLI), got %v", cfg.Languages)
	}
	if cfg.HTTP.Timeout != time.Minute {
		t.Errorf("Expected timeout 1m (from CLI), got %s", cfg.HTTP.Timeout)
	}
	if cfg.ChunkSize != 1500 {
		t.Errorf("Expected chunk size 1500 (from file), got %d", cfg.ChunkSize)
	}
	if cfg.Fallback != "first" {
		t.Errorf("Expected fallback 'first' (from file), got '%s'", cfg.Fallback)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Expected log format 'json' (from file), got '%s'", cfg.Log.Format)
	}
	if cfg.Provider != ProviderWeb {
		t.Errorf("Expected provider 'web' (default), got '%s'", cfg.Provider)
	}
	if cfg.Input != "https://youtu.be/dQw4w9WgXcQ" {
		t.Errorf("Expected input from args, got '%s'", cfg.Input)
	}
}

func TestLoadConfig_DefaultsOnly(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig(parseFlags(t), []string{"dQw4w9WgXcQ"})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	defaults := DefaultConfig()
	if cfg.Provider != defaults.Provider {
		t.Errorf("Expected default provider, got '%s'", cfg.Provider)
	}
	if strings.Join(cfg.Languages, ",") != "en" {
		t.Errorf("Expected default languages [en], got %v", cfg.Languages)
	}
	if cfg.HTTP.Timeout != defaults.HTTP.Timeout {
		t.Errorf("Expected default timeout, got %s", cfg.HTTP.Timeout)
	}
}

func TestLoadConfig_DiscoveredConfigFile(t *testing.T) {
	isolate(t)

	if err := os.WriteFile("ytt.yaml", []byte("no_timestamps: true\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(parseFlags(t), []string{"dQw4w9WgXcQ"})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.IncludeTimestamps() {
		t.Error("Expected timestamps disabled by ./ytt.yaml")
	}
}

func TestLoadConfig_NormalizesLanguages(t *testing.T) {
	isolate(t)

	if err := os.WriteFile("ytt.yaml", []byte("languages: [\"de, fr\", \" \"]\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(parseFlags(t), []string{"dQw4w9WgXcQ"})
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if strings.Join(cfg.Languages, ",") != "de,fr" {
		t.Errorf("Expected languages de,fr, got %v", cfg.Languages)
	}
}

func TestLoadConfig_MissingInput(t *testing.T) {
	isolate(t)

	_, err := LoadConfig(parseFlags(t), nil)
	if err == nil {
		t.Fatal("Expected validation error for missing input")
	}
	if !strings.Contains(err.Error(), "video URL or ID is required") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoadConfig_InvalidFlagValue(t *testing.T) {
	isolate(t)

	_, err := LoadConfig(parseFlags(t, "--fallback", "random"), []string{"dQw4w9WgXcQ"})
	if err == nil {
		t.Fatal("Expected validation error for invalid fallback")
	}
	if !strings.Contains(err.Error(), "invalid fallback policy 'random'") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoadConfig_InvalidConfigFile(t *testing.T) {
	tmpDir := isolate(t)
	configPath := filepath.Join(tmpDir, "bad.yaml")

	if err := os.WriteFile(configPath, []byte("chunk_size: [not a number\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := LoadConfig(parseFlags(t, "--config", configPath), []string{"dQw4w9WgXcQ"})
	if err == nil {
		t.Fatal("Expected error for invalid config file")
	}
	if !strings.Contains(err.Error(), "failed to load config file") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoadConfig_MissingConfigFile(t *testing.T) {
	isolate(t)

	_, err := LoadConfig(parseFlags(t, "--config", "/nonexistent/ytt.yaml"), []string{"dQw4w9WgXcQ"})
	if err == nil {
		t.Fatal("Expected error for missing config file")
	}
}
