// Package spotify is a thin typed client for the two Spotify Web API calls the
// pipeline needs: playlist items (episode-typed) and show episodes, both paged.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/oauth2/clientcredentials"
)

const (
	defaultTokenURL   = "https://accounts.spotify.com/api/token"
	defaultAPIBaseURL = "https://api.spotify.com/v1"
)

// Config holds configuration for the Spotify client.
type Config struct {
	// Spotify API credentials
	ClientID     string
	ClientSecret string

	// Endpoint overrides, used in tests. Empty means production endpoints.
	TokenURL   string
	APIBaseURL string
}

// Episode is one episode as the catalog reports it. Description may be empty.
type Episode struct {
	Name        string
	ID          string
	Description string
}

// Page is one page of episode results. Fetched counts the raw items the API
// returned (episode-typed or not) so the caller can advance its offset the way
// the API expects; Next reports whether the API signaled a further page.
type Page struct {
	Episodes []Episode
	Fetched  int
	Next     bool
}

// Client calls the Spotify Web API with a client-credentials token.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient performs the client-credential handshake and returns a client whose
// requests carry (and transparently refresh) the resulting token.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, &APIError{Message: "missing client credentials"}
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}

	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
	}

	// Authenticate once up front so a bad credential fails the run before any
	// fetching starts.
	if _, err := creds.Token(ctx); err != nil {
		return nil, &APIError{Message: "client credential handshake failed", Original: err}
	}

	return &Client{
		httpClient: creds.Client(ctx),
		baseURL:    baseURL,
	}, nil
}

// playlistItemsResponse mirrors the fields requested from the playlist-items
// endpoint. Track is null for items Spotify cannot resolve.
type playlistItemsResponse struct {
	Items []struct {
		Track *struct {
			Name        string `json:"name"`
			ID          string `json:"id"`
			Type        string `json:"type"`
			Description string `json:"description"`
		} `json:"track"`
	} `json:"items"`
	Next *string `json:"next"`
}

type showEpisodesResponse struct {
	Items []struct {
		Name        string `json:"name"`
		ID          string `json:"id"`
		Description string `json:"description"`
	} `json:"items"`
	Next *string `json:"next"`
}

// PlaylistEpisodes fetches one page of a playlist's items, keeping only
// episode-typed entries.
func (c *Client) PlaylistEpisodes(ctx context.Context, playlistID string, limit, offset int) (*Page, error) {
	query := url.Values{}
	query.Set("additional_types", "episode")
	query.Set("fields", "items(track(name,id,type,description)),next")
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	endpoint := fmt.Sprintf("%s/playlists/%s/tracks?%s", c.baseURL, url.PathEscape(playlistID), query.Encode())

	var decoded playlistItemsResponse
	if err := c.getJSON(ctx, endpoint, &decoded); err != nil {
		return nil, err
	}

	page := &Page{
		Fetched: len(decoded.Items),
		Next:    decoded.Next != nil,
	}
	for _, item := range decoded.Items {
		if item.Track == nil || item.Track.Type != "episode" {
			continue
		}
		page.Episodes = append(page.Episodes, Episode{
			Name:        item.Track.Name,
			ID:          item.Track.ID,
			Description: item.Track.Description,
		})
	}
	return page, nil
}

// ShowEpisodes fetches one page of a show's episodes. Every item is an episode
// by construction, so no type filtering happens here.
func (c *Client) ShowEpisodes(ctx context.Context, showID string, limit, offset int) (*Page, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	endpoint := fmt.Sprintf("%s/shows/%s/episodes?%s", c.baseURL, url.PathEscape(showID), query.Encode())

	var decoded showEpisodesResponse
	if err := c.getJSON(ctx, endpoint, &decoded); err != nil {
		return nil, err
	}

	page := &Page{
		Fetched: len(decoded.Items),
		Next:    decoded.Next != nil,
	}
	for _, item := range decoded.Items {
		page.Episodes = append(page.Episodes, Episode{
			Name:        item.Name,
			ID:          item.ID,
			Description: item.Description,
		})
	}
	return page, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &APIError{Message: "failed to build request", Original: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: "request failed", Original: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{
			Message: fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &APIError{Message: "failed to decode response", Original: err}
	}
	return nil
}
