package metadata

import "fmt"

// TagError represents a metadata tagging error.
type TagError struct {
	Message  string
	Original error
}

func (e *TagError) Error() string {
	if e.Original != nil {
		return fmt.Sprintf("metadata error: %s: %v", e.Message, e.Original)
	}
	return fmt.Sprintf("metadata error: %s", e.Message)
}

func (e *TagError) Unwrap() error {
	return e.Original
}
