// Package tasks builds the flat download work list from catalog episodes and
// flat playlist listings.
package tasks

import (
	"context"
	"strings"

	"github.com/castfetch/castfetch/download/classify"
	"github.com/castfetch/castfetch/download/spotify"
	"github.com/castfetch/castfetch/download/ytdlp"
)

// UnknownTrackingID marks a task whose source item carried no catalog id.
const UnknownTrackingID = "UnknownID"

// pageSize is the page size used for every paged catalog fetch.
const pageSize = 50

// Task is one unit of download work.
type Task struct {
	Link       string
	Name       string
	TrackingID string
}

// EpisodeSource is the paged catalog surface the collectors drive. Implemented
// by spotify.Client.
type EpisodeSource interface {
	PlaylistEpisodes(ctx context.Context, playlistID string, limit, offset int) (*spotify.Page, error)
	ShowEpisodes(ctx context.Context, showID string, limit, offset int) (*spotify.Page, error)
}

// CollectPlaylistEpisodes pages through a playlist's episode-typed items until
// the catalog is exhausted. Any page error aborts the whole collection.
func CollectPlaylistEpisodes(ctx context.Context, source EpisodeSource, playlistID string) ([]spotify.Episode, error) {
	return collect(func(offset int) (*spotify.Page, error) {
		return source.PlaylistEpisodes(ctx, playlistID, pageSize, offset)
	})
}

// CollectShowEpisodes pages through a show's full episode list. Any page error
// aborts the whole collection.
func CollectShowEpisodes(ctx context.Context, source EpisodeSource, showID string) ([]spotify.Episode, error) {
	return collect(func(offset int) (*spotify.Page, error) {
		return source.ShowEpisodes(ctx, showID, pageSize, offset)
	})
}

// collect drives the offset loop. The offset advances by the raw item count of
// each page, not by the number of episodes kept, so filtered playlist pages
// still walk the catalog correctly.
func collect(fetch func(offset int) (*spotify.Page, error)) ([]spotify.Episode, error) {
	var episodes []spotify.Episode
	offset := 0
	for {
		page, err := fetch(offset)
		if err != nil {
			return nil, err
		}
		if page.Fetched == 0 {
			return episodes, nil
		}
		episodes = append(episodes, page.Episodes...)
		if !page.Next {
			return episodes, nil
		}
		offset += page.Fetched
	}
}

// BuildTasks scans each episode's description for YouTube links and emits one
// task per distinct link per episode. Episodes with empty descriptions are
// skipped. The seen set is per episode, so two episodes that reference the
// same link each produce a task.
func BuildTasks(episodes []spotify.Episode) []Task {
	var out []Task
	for _, episode := range episodes {
		if episode.Description == "" {
			continue
		}
		trackingID := episode.ID
		if trackingID == "" {
			trackingID = UnknownTrackingID
		}
		seen := make(map[string]bool)
		for _, link := range classify.YouTubeLinks(episode.Description) {
			link = strings.TrimSpace(link)
			if link == "" || seen[link] {
				continue
			}
			seen[link] = true
			out = append(out, Task{
				Link:       link,
				Name:       episode.Name,
				TrackingID: trackingID,
			})
		}
	}
	return out
}

// FromPlaylistItems converts a flat YouTube playlist listing into tasks,
// preserving order.
func FromPlaylistItems(items []ytdlp.PlaylistItem) []Task {
	out := make([]Task, 0, len(items))
	for _, item := range items {
		trackingID := item.ID
		if trackingID == "" {
			trackingID = UnknownTrackingID
		}
		out = append(out, Task{
			Link:       item.URL,
			Name:       item.Title,
			TrackingID: trackingID,
		})
	}
	return out
}
