package ytdlp

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrExecutableNotFound reports that the yt-dlp binary could not be located.
// Callers treat it as unrecoverable for the rest of the run, unlike an
// ordinary failed invocation.
var ErrExecutableNotFound = errors.New("yt-dlp executable not found")

// DownloadError represents a failed media download invocation.
type DownloadError struct {
	Message  string
	Original error
}

func (e *DownloadError) Error() string {
	if e.Original != nil {
		return fmt.Sprintf("download error: %s: %v", e.Message, e.Original)
	}
	return fmt.Sprintf("download error: %s", e.Message)
}

func (e *DownloadError) Unwrap() error {
	return e.Original
}

// MetadataError represents a failed playlist listing invocation.
type MetadataError struct {
	Message  string
	Original error
}

func (e *MetadataError) Error() string {
	if e.Original != nil {
		return fmt.Sprintf("metadata error: %s: %v", e.Message, e.Original)
	}
	return fmt.Sprintf("metadata error: %s", e.Message)
}

func (e *MetadataError) Unwrap() error {
	return e.Original
}

// isExecNotFound reports whether err means the executable itself is missing,
// as opposed to the executable running and failing.
func isExecNotFound(err error) bool {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return errors.Is(execErr.Err, exec.ErrNotFound)
	}
	return false
}
