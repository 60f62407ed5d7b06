package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

var (
	// Version is set at build time via ldflags
	// Example: go build -ldflags="-X main.Version=v1.2.3"
	Version = "dev"
)

func main() {
	flag.Usage = printUsage
	output := flag.String("output", "", "Output directory for media and the ledger")
	format := flag.String("format", "", "Download format: audio or video")
	ytdlpPath := flag.String("ytdlp", "", "Path to the yt-dlp executable")
	configPath := flag.String("config", "", "Path to an optional YAML settings file")
	logPath := flag.String("log-path", "", "Path to the JSON log file")
	version := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *version {
		fmt.Printf("castfetch version %s\n", Version)
		os.Exit(0)
	}

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	settings, err := resolveSettings(*configPath, flagOverrides{
		set:       explicit,
		output:    *output,
		format:    *format,
		ytdlpPath: *ytdlpPath,
		logPath:   *logPath,
	})
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	rawURL := flag.Arg(0)
	if rawURL == "" {
		rawURL, err = promptURL(os.Stdin, os.Stdout)
		if err != nil {
			log.Fatalf("Failed to read URL: %v", err)
		}
	}

	os.Exit(run(settings, rawURL))
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `castfetch - Archive a playlist or show as local media files

USAGE:
    castfetch [flags] [URL]

The URL may be a Spotify playlist, a Spotify show, or a YouTube playlist.
When omitted, castfetch prompts for it. Spotify inputs need SPOTIPY_CLIENT_ID
and SPOTIPY_CLIENT_SECRET in the environment or a .env file.

FLAGS:
    -output DIR     Output directory for media and the ledger (default ".")
    -format MODE    audio or video (default "audio")
    -ytdlp PATH     yt-dlp executable (default "yt-dlp" via PATH)
    -config FILE    Optional YAML settings file
    -log-path FILE  JSON log file (default <output>/castfetch.log)
    -version        Show version information

EXAMPLES:
    castfetch https://open.spotify.com/show/4rOoJ6Egrf8K2IrywzwOMk
    castfetch -format video -output ~/videos "https://www.youtube.com/playlist?list=PLabc"
`)
}
