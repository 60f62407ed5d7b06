// Package classify turns an input URL into a container reference and scans
// free text for embedded YouTube links.
package classify

import (
	"net/url"
	"strings"
)

// Source identifies the kind of container a URL points at.
type Source string

const (
	SourceSpotifyPlaylist Source = "spotify_playlist"
	SourceSpotifyShow     Source = "spotify_show"
	SourceYouTubePlaylist Source = "youtube_playlist"
)

// ContainerRef is the classified form of an input URL. For Spotify sources ID
// holds the opaque catalog id; for YouTube playlists ID holds the full original
// URL, since yt-dlp flattens playlist membership from the URL itself.
type ContainerRef struct {
	Source Source
	ID     string
}

var spotifyHosts = map[string]bool{
	"open.spotify.com": true,
	"spotify.com":      true,
}

var youtubeHosts = map[string]bool{
	"www.youtube.com":   true,
	"youtube.com":       true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
}

// Classify parses rawURL and determines its container category. The second
// return value is false when the URL is malformed or not a supported container;
// the caller decides whether that is fatal.
func Classify(rawURL string) (ContainerRef, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ContainerRef{}, false
	}

	host := strings.ToLower(parsed.Host)

	if spotifyHosts[host] {
		segments := splitPath(parsed.Path)
		// "playlist" wins over "show" if both somehow appear.
		if id, ok := segmentAfter(segments, "playlist"); ok {
			return ContainerRef{Source: SourceSpotifyPlaylist, ID: id}, true
		}
		if id, ok := segmentAfter(segments, "show"); ok {
			return ContainerRef{Source: SourceSpotifyShow, ID: id}, true
		}
		return ContainerRef{}, false
	}

	if youtubeHosts[host] {
		if list := parsed.Query().Get("list"); list != "" {
			return ContainerRef{Source: SourceYouTubePlaylist, ID: rawURL}, true
		}
		return ContainerRef{}, false
	}

	return ContainerRef{}, false
}

// splitPath breaks a URL path into its non-empty segments.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// segmentAfter returns the path segment immediately following token, with any
// trailing query-string artifact stripped. Fails when the token is absent or is
// the last segment.
func segmentAfter(segments []string, token string) (string, bool) {
	for i, segment := range segments {
		if segment != token {
			continue
		}
		if i+1 >= len(segments) {
			return "", false
		}
		id := segments[i+1]
		if q := strings.Index(id, "?"); q >= 0 {
			id = id[:q]
		}
		if id == "" {
			return "", false
		}
		return id, true
	}
	return "", false
}
