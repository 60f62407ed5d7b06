package download

import (
	"regexp"
	"strings"
)

// maxNameLength bounds the sanitized name so the full output path stays well
// under common filesystem limits.
const maxNameLength = 150

var (
	// Letters and digits in any script stay; so do whitespace, underscore,
	// period, and hyphen. Everything else becomes an underscore.
	unsafeChars    = regexp.MustCompile(`[^\p{L}\p{N}\s_.-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// SanitizeName makes an episode or video title safe for use in a file name.
// Unsafe characters become underscores, whitespace runs collapse to a single
// space, and the result is trimmed and truncated. A name that sanitizes to
// nothing becomes "Untitled". Idempotent: sanitizing twice changes nothing.
func SanitizeName(name string) string {
	name = unsafeChars.ReplaceAllString(name, "_")
	name = whitespaceRuns.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	if runes := []rune(name); len(runes) > maxNameLength {
		name = strings.TrimSpace(string(runes[:maxNameLength]))
	}

	if name == "" {
		return "Untitled"
	}
	return name
}
