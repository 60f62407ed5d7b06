package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestServer serves a client-credentials token endpoint plus the given API
// handler, and returns a client wired to it.
func newTestServer(t *testing.T, apiHandler http.HandlerFunc) *Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/v1/", apiHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), &Config{
		ClientID:     "id",
		ClientSecret: "secret",
		TokenURL:     server.URL + "/api/token",
		APIBaseURL:   server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestNewClient_MissingCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{})
	if err == nil {
		t.Fatal("NewClient() expected error for missing credentials")
	}
}

func TestNewClient_HandshakeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := NewClient(context.Background(), &Config{
		ClientID:     "id",
		ClientSecret: "bad",
		TokenURL:     server.URL + "/api/token",
	})
	if err == nil {
		t.Fatal("NewClient() expected error for failed handshake")
	}
}

func TestPlaylistEpisodes_FiltersNonEpisodes(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("additional_types"); got != "episode" {
			t.Errorf("additional_types = %q, want episode", got)
		}
		fmt.Fprint(w, `{
			"items": [
				{"track": {"name": "Ep One", "id": "e1", "type": "episode", "description": "first"}},
				{"track": {"name": "Some Song", "id": "t1", "type": "track", "description": ""}},
				{"track": null},
				{"track": {"name": "Ep Two", "id": "e2", "type": "episode", "description": ""}}
			],
			"next": null
		}`)
	})

	page, err := client.PlaylistEpisodes(context.Background(), "pl1", 50, 0)
	if err != nil {
		t.Fatalf("PlaylistEpisodes() error = %v", err)
	}
	if page.Fetched != 4 {
		t.Errorf("Fetched = %d, want 4 (raw item count)", page.Fetched)
	}
	if page.Next {
		t.Error("Next = true, want false")
	}
	if len(page.Episodes) != 2 {
		t.Fatalf("Episodes length = %d, want 2", len(page.Episodes))
	}
	if page.Episodes[0].ID != "e1" || page.Episodes[0].Description != "first" {
		t.Errorf("Episodes[0] = %+v", page.Episodes[0])
	}
	if page.Episodes[1].ID != "e2" {
		t.Errorf("Episodes[1] = %+v", page.Episodes[1])
	}
}

func TestShowEpisodes_Pagination(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		offset := r.URL.Query().Get("offset")
		switch offset {
		case "0":
			fmt.Fprint(w, `{"items": [{"name": "A", "id": "a", "description": ""}], "next": "https://api/next"}`)
		case "1":
			fmt.Fprint(w, `{"items": [{"name": "B", "id": "b", "description": "desc"}], "next": null}`)
		default:
			t.Errorf("unexpected offset %q", offset)
			fmt.Fprint(w, `{"items": [], "next": null}`)
		}
	})

	first, err := client.ShowEpisodes(context.Background(), "sh1", 50, 0)
	if err != nil {
		t.Fatalf("ShowEpisodes(offset 0) error = %v", err)
	}
	if !first.Next || first.Fetched != 1 || first.Episodes[0].ID != "a" {
		t.Errorf("first page = %+v", first)
	}

	second, err := client.ShowEpisodes(context.Background(), "sh1", 50, 1)
	if err != nil {
		t.Fatalf("ShowEpisodes(offset 1) error = %v", err)
	}
	if second.Next || second.Episodes[0].ID != "b" || second.Episodes[0].Description != "desc" {
		t.Errorf("second page = %+v", second)
	}
}

func TestShowEpisodes_APIError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": {"status": 404, "message": "not found"}}`)
	})

	_, err := client.ShowEpisodes(context.Background(), "missing", 50, 0)
	if err == nil {
		t.Fatal("ShowEpisodes() expected error for 404")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
}
