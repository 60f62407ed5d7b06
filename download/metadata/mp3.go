// Package metadata tags downloaded MP3 files with the episode title and the
// source link. Tagging is best effort; failures never change a run's outcome.
package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// FindDownloaded locates the file a download produced, by the bracketed
// tracking-id marker the output template embeds in the name. Returns "" when
// no file matches. The first match wins; the template makes collisions for
// one tracking id impossible within a run.
func FindDownloaded(dir, trackingID string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	marker := "[" + trackingID + "]"
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.Contains(entry.Name(), marker) {
			return filepath.Join(dir, entry.Name())
		}
	}
	return ""
}

// TagMP3 writes the title and source-URL frames into filePath. Files without
// an existing tag get a fresh one.
func TagMP3(filePath, title, sourceURL string) error {
	tag, err := id3v2.Open(filePath, id3v2.Options{Parse: true})
	if err != nil {
		tag, err = id3v2.Open(filePath, id3v2.Options{Parse: false})
		if err != nil {
			return &TagError{
				Message:  fmt.Sprintf("Failed to open MP3 file: %s", filePath),
				Original: err,
			}
		}
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(title)
	if sourceURL != "" {
		tag.AddTextFrame(tag.CommonID("WOAS"), id3v2.EncodingUTF8, sourceURL)
	}

	if err := tag.Save(); err != nil {
		return &TagError{
			Message:  fmt.Sprintf("Failed to save MP3 metadata: %s", filePath),
			Original: err,
		}
	}
	return nil
}
