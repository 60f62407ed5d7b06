// Package config holds the runtime settings for a download run and the
// optional YAML settings file that feeds them.
package config

import (
	"fmt"
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Settings holds one run's configuration. Flag values override anything read
// from the settings file.
type Settings struct {
	// Where media and the ledger land.
	OutputDir string `yaml:"output_dir"`

	// "audio" or "video".
	Format string `yaml:"format"`

	// yt-dlp executable; resolved through PATH when not absolute.
	YtDlpPath string `yaml:"ytdlp_path"`

	// Ledger file name, relative to OutputDir.
	LedgerFile string `yaml:"ledger_file"`

	// Browser whose cookies the retry attempt borrows.
	CookiesBrowser string `yaml:"cookies_browser"`

	// JSON log file path. Empty means <output_dir>/castfetch.log.
	LogPath string `yaml:"log_path"`
}

// SetDefaults fills zero-valued fields.
func (s *Settings) SetDefaults() {
	if s.OutputDir == "" {
		s.OutputDir = "."
	}
	if s.Format == "" {
		s.Format = "audio"
	}
	if s.YtDlpPath == "" {
		s.YtDlpPath = "yt-dlp"
	}
	if s.LedgerFile == "" {
		s.LedgerFile = "downloaded_media.log"
	}
	if s.CookiesBrowser == "" {
		s.CookiesBrowser = "firefox"
	}
}

// Validate checks the settings after defaults are applied.
func (s *Settings) Validate() error {
	if s.Format != "audio" && s.Format != "video" {
		return &ConfigError{
			Message: fmt.Sprintf("Invalid format: %s. Must be one of: audio, video", s.Format),
		}
	}
	if s.LedgerFile == "" {
		return &ConfigError{Message: "ledger_file must not be empty"}
	}
	return nil
}
