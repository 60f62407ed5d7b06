package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/castfetch/castfetch/download"
)

func TestResolveSettings_DefaultsWithoutConfig(t *testing.T) {
	settings, err := resolveSettings("", flagOverrides{set: map[string]bool{}})
	if err != nil {
		t.Fatalf("resolveSettings() error = %v", err)
	}
	if settings.OutputDir != "." || settings.Format != "audio" || settings.YtDlpPath != "yt-dlp" {
		t.Errorf("settings = %+v", settings)
	}
}

func TestResolveSettings_FlagsOverrideConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configYAML := "output_dir: /from/config\nformat: audio\n"
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := resolveSettings(configPath, flagOverrides{
		set:    map[string]bool{"output": true, "format": true},
		output: "/from/flag",
		format: "video",
	})
	if err != nil {
		t.Fatalf("resolveSettings() error = %v", err)
	}
	if settings.OutputDir != "/from/flag" {
		t.Errorf("OutputDir = %q, want flag value", settings.OutputDir)
	}
	if settings.Format != "video" {
		t.Errorf("Format = %q, want video", settings.Format)
	}
	// Untouched values keep the config/default ones.
	if settings.YtDlpPath != "yt-dlp" {
		t.Errorf("YtDlpPath = %q, want yt-dlp", settings.YtDlpPath)
	}
}

func TestResolveSettings_InvalidFormatFlag(t *testing.T) {
	_, err := resolveSettings("", flagOverrides{
		set:    map[string]bool{"format": true},
		format: "flac",
	})
	if err == nil {
		t.Fatal("resolveSettings() expected error for unsupported format")
	}
}

func TestPromptURL(t *testing.T) {
	var out strings.Builder
	got, err := promptURL(strings.NewReader("  https://open.spotify.com/show/abc  \n"), &out)
	if err != nil {
		t.Fatalf("promptURL() error = %v", err)
	}
	if got != "https://open.spotify.com/show/abc" {
		t.Errorf("promptURL() = %q", got)
	}
	if !strings.Contains(out.String(), "Enter a Spotify") {
		t.Errorf("prompt text = %q", out.String())
	}
}

func TestPromptURL_NoTrailingNewline(t *testing.T) {
	var out strings.Builder
	got, err := promptURL(strings.NewReader("https://youtu.be/x"), &out)
	if err != nil {
		t.Fatalf("promptURL() error = %v", err)
	}
	if got != "https://youtu.be/x" {
		t.Errorf("promptURL() = %q", got)
	}
}

func TestSummary(t *testing.T) {
	stats := &download.Stats{Succeeded: 3, Skipped: 2, Failed: 1}
	got := summary(stats)

	for _, want := range []string{
		"Successfully downloaded: 3",
		"Skipped (already downloaded): 2",
		"Failed downloads: 1",
		"Total tasks processed: 6",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Processing stopped") {
		t.Error("summary mentions missing binary without the flag set")
	}
}

func TestSummary_BinaryMissing(t *testing.T) {
	stats := &download.Stats{Succeeded: 1, BinaryMissing: true}
	got := summary(stats)
	if !strings.Contains(got, "Processing stopped: yt-dlp executable not found.") {
		t.Errorf("summary = %q", got)
	}
}

func TestRun_UnrecognizedURL(t *testing.T) {
	settings, err := resolveSettings("", flagOverrides{
		set:    map[string]bool{"output": true},
		output: t.TempDir(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if code := run(settings, "https://example.com/nothing"); code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
}
