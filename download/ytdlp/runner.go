// Package ytdlp drives the yt-dlp executable for playlist listing and media
// downloads.
package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"strings"
)

// Format selects what yt-dlp produces for each task.
type Format string

const (
	FormatAudio Format = "audio"
	FormatVideo Format = "video"
)

// videoFormatSelector prefers an AVC video stream with an m4a audio stream so
// the merged mp4 plays everywhere, falling back to whatever is available.
const videoFormatSelector = "bestvideo[vcodec^=avc1]+bestaudio[ext=m4a]/bestvideo+bestaudio/best"

// printTemplate yields one semicolon-delimited line per playlist entry.
const printTemplate = "%(id)s;%(title)s;%(webpage_url)s"

// Attempt describes one download strategy. An empty CookiesFromBrowser runs
// yt-dlp without browser cookies.
type Attempt struct {
	Name               string
	CookiesFromBrowser string
}

// DefaultAttempts is the ordered retry policy: a plain invocation first, then
// a retry that borrows browser cookies for age- or region-gated media.
var DefaultAttempts = []Attempt{
	{Name: "standard"},
	{Name: "browser cookies", CookiesFromBrowser: "firefox"},
}

// PlaylistItem is one entry of a flat playlist listing.
type PlaylistItem struct {
	ID    string
	Title string
	URL   string
}

// Runner invokes a yt-dlp executable.
type Runner struct {
	Executable string
}

// NewRunner returns a runner for the given executable path. An empty path
// resolves "yt-dlp" through PATH.
func NewRunner(executable string) *Runner {
	if executable == "" {
		executable = "yt-dlp"
	}
	return &Runner{Executable: executable}
}

// ListPlaylist enumerates a playlist without downloading anything. A missing
// executable surfaces as ErrExecutableNotFound; any other failure is a
// MetadataError. An empty listing with a clean exit is a valid empty playlist.
func (r *Runner) ListPlaylist(ctx context.Context, playlistURL string) ([]PlaylistItem, error) {
	args := []string{"--flat-playlist", "--print", printTemplate, playlistURL}

	cmd := exec.CommandContext(ctx, r.Executable, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if isExecNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrExecutableNotFound, r.Executable)
		}
		return nil, &MetadataError{
			Message:  fmt.Sprintf("playlist listing failed: %s", excerpt(stderr.String())),
			Original: err,
		}
	}

	return parsePlaylistOutput(stdout.String()), nil
}

// parsePlaylistOutput splits the flat-playlist print output into items. Lines
// that do not carry exactly three fields are logged and skipped.
func parsePlaylistOutput(output string) []PlaylistItem {
	var items []PlaylistItem
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, ";", 3)
		if len(fields) != 3 {
			log.Printf("WARN: malformed_playlist_line line=%q", line)
			continue
		}
		items = append(items, PlaylistItem{
			ID:    fields[0],
			Title: fields[1],
			URL:   fields[2],
		})
	}
	return items
}

// Download fetches one link into the output template using the given attempt
// strategy. A missing executable surfaces as ErrExecutableNotFound; any other
// failure is a DownloadError carrying the stderr excerpt.
func (r *Runner) Download(ctx context.Context, link, outputTemplate string, format Format, attempt Attempt) error {
	args := downloadArgs(link, outputTemplate, format, attempt)

	cmd := exec.CommandContext(ctx, r.Executable, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if isExecNotFound(err) {
			return fmt.Errorf("%w: %s", ErrExecutableNotFound, r.Executable)
		}
		return &DownloadError{
			Message:  fmt.Sprintf("yt-dlp exited with an error: %s", excerpt(stderr.String())),
			Original: err,
		}
	}
	return nil
}

// downloadArgs builds the argument list for one download invocation.
func downloadArgs(link, outputTemplate string, format Format, attempt Attempt) []string {
	var args []string
	if attempt.CookiesFromBrowser != "" {
		args = append(args, "--cookies-from-browser", attempt.CookiesFromBrowser)
	}
	switch format {
	case FormatVideo:
		args = append(args, "-f", videoFormatSelector, "--merge-output-format", "mp4")
	default:
		args = append(args, "-x", "--audio-format", "mp3", "--audio-quality", "0")
	}
	return append(args, "-o", outputTemplate, link)
}

// excerpt trims stderr output to a size fit for an error message.
func excerpt(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 500 {
		s = s[:500]
	}
	if s == "" {
		return "(no stderr output)"
	}
	return s
}
