package spotify

import "fmt"

// APIError represents a Spotify Web API error.
type APIError struct {
	Message  string
	Original error
}

func (e *APIError) Error() string {
	if e.Original != nil {
		return fmt.Sprintf("Spotify API error: %s: %v", e.Message, e.Original)
	}
	return fmt.Sprintf("Spotify API error: %s", e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Original
}
