package classify

import "regexp"

// youtubeLinkPattern matches absolute YouTube watch/embed URLs and youtu.be
// short links, optionally followed by a query string, terminated at whitespace
// or an angle bracket.
var youtubeLinkPattern = regexp.MustCompile(
	`https?://(?:www\.)?(?:youtube\.com/(?:watch\?v=|embed/)|youtu\.be/)[\w-]+(?:\?[^\s<]*)?`,
)

// YouTubeLinks returns every YouTube link embedded in text, in insertion order,
// without deduplication. Empty text yields an empty slice.
func YouTubeLinks(text string) []string {
	if text == "" {
		return nil
	}
	return youtubeLinkPattern.FindAllString(text, -1)
}
