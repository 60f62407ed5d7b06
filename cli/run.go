package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/castfetch/castfetch/download"
	"github.com/castfetch/castfetch/download/classify"
	"github.com/castfetch/castfetch/download/config"
	"github.com/castfetch/castfetch/download/ledger"
	"github.com/castfetch/castfetch/download/logging"
	"github.com/castfetch/castfetch/download/spotify"
	"github.com/castfetch/castfetch/download/tasks"
	"github.com/castfetch/castfetch/download/ytdlp"
)

// flagOverrides carries the flag values that were explicitly set on the
// command line; those win over the settings file.
type flagOverrides struct {
	set       map[string]bool
	output    string
	format    string
	ytdlpPath string
	logPath   string
}

// resolveSettings loads the settings file when given, applies defaults, and
// lays explicit flag values on top.
func resolveSettings(configPath string, overrides flagOverrides) (*config.Settings, error) {
	var settings *config.Settings
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		settings = loaded
	} else {
		settings = &config.Settings{}
		settings.SetDefaults()
	}

	if overrides.set["output"] {
		settings.OutputDir = overrides.output
	}
	if overrides.set["format"] {
		settings.Format = overrides.format
	}
	if overrides.set["ytdlp"] {
		settings.YtDlpPath = overrides.ytdlpPath
	}
	if overrides.set["log-path"] {
		settings.LogPath = overrides.logPath
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// promptURL asks for a URL on stdin when none was passed as an argument.
func promptURL(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter a Spotify playlist/show URL or a YouTube playlist URL: ")
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// run executes one archival pass and returns the process exit code.
func run(settings *config.Settings, rawURL string) int {
	ctx := context.Background()

	ref, ok := classify.Classify(rawURL)
	if !ok {
		log.Printf("ERROR: unrecognized_url url=%s", rawURL)
		fmt.Fprintf(os.Stderr, "Unrecognized URL: %s\nExpected a Spotify playlist/show URL or a YouTube playlist URL.\n", rawURL)
		return 1
	}

	if err := os.MkdirAll(settings.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory %s: %v\n", settings.OutputDir, err)
		return 1
	}

	logPath := settings.LogPath
	if logPath == "" {
		logPath = filepath.Join(settings.OutputDir, "castfetch.log")
	}
	logger, err := logging.NewLogger(logPath, "castfetch")
	if err != nil {
		// The run log is an extra; the run proceeds without it.
		log.Printf("WARN: log_file_unavailable path=%s error=%v", logPath, err)
		logger = nil
	}
	defer func() { _ = logger.Close() }()
	logger.Infof("run", "started source=%s url=%s format=%s", ref.Source, rawURL, settings.Format)

	runner := ytdlp.NewRunner(settings.YtDlpPath)

	taskList, code := buildTaskList(ctx, ref, runner, logger)
	if code != 0 {
		return code
	}
	if len(taskList) == 0 {
		fmt.Println("No download tasks generated. Nothing to do.")
		logger.Info("run", "no tasks generated")
		return 0
	}
	log.Printf("INFO: tasks_generated count=%d source=%s", len(taskList), ref.Source)

	led, err := ledger.Open(filepath.Join(settings.OutputDir, settings.LedgerFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open ledger: %v\n", err)
		logger.Error("ledger", "failed to open", err)
		return 1
	}
	log.Printf("INFO: ledger_loaded entries=%d", led.Len())

	attempts := []ytdlp.Attempt{
		{Name: "standard"},
		{Name: "browser cookies", CookiesFromBrowser: settings.CookiesBrowser},
	}
	dispatcher := download.NewDispatcher(runner, led, logger, settings.OutputDir, ytdlp.Format(settings.Format), attempts)

	stats := dispatcher.Run(ctx, taskList)
	fmt.Print(summary(stats))
	logger.Infof("run", "finished succeeded=%d skipped=%d failed=%d binary_missing=%v",
		stats.Succeeded, stats.Skipped, stats.Failed, stats.BinaryMissing)
	return 0
}

// buildTaskList resolves the classified container into a flat task list. A
// non-zero code means the fetch failed and the run must stop.
func buildTaskList(ctx context.Context, ref classify.ContainerRef, runner *ytdlp.Runner, logger *logging.Logger) ([]tasks.Task, int) {
	switch ref.Source {
	case classify.SourceYouTubePlaylist:
		items, err := runner.ListPlaylist(ctx, ref.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list playlist: %v\n", err)
			logger.Error("fetch", "playlist listing failed", err)
			return nil, 1
		}
		return tasks.FromPlaylistItems(items), 0

	case classify.SourceSpotifyPlaylist, classify.SourceSpotifyShow:
		creds, err := config.LoadCredentials()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return nil, 1
		}
		client, err := spotify.NewClient(ctx, &spotify.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Spotify authentication failed: %v\n", err)
			logger.Error("fetch", "authentication failed", err)
			return nil, 1
		}

		var episodes []spotify.Episode
		if ref.Source == classify.SourceSpotifyPlaylist {
			episodes, err = tasks.CollectPlaylistEpisodes(ctx, client, ref.ID)
		} else {
			episodes, err = tasks.CollectShowEpisodes(ctx, client, ref.ID)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fetch episodes: %v\n", err)
			logger.Error("fetch", "episode fetch failed", err)
			return nil, 1
		}
		log.Printf("INFO: episodes_fetched count=%d source=%s id=%s", len(episodes), ref.Source, ref.ID)
		return tasks.BuildTasks(episodes), 0
	}

	fmt.Fprintf(os.Stderr, "Unsupported source: %s\n", ref.Source)
	return nil, 1
}

// summary renders the end-of-run report.
func summary(stats *download.Stats) string {
	var b strings.Builder
	b.WriteString("\n--- Run Summary ---\n")
	if stats.BinaryMissing {
		b.WriteString("Processing stopped: yt-dlp executable not found.\n")
	}
	fmt.Fprintf(&b, "Successfully downloaded: %d\n", stats.Succeeded)
	fmt.Fprintf(&b, "Skipped (already downloaded): %d\n", stats.Skipped)
	fmt.Fprintf(&b, "Failed downloads: %d\n", stats.Failed)
	fmt.Fprintf(&b, "Total tasks processed: %d\n", stats.Total())
	return b.String()
}
