package processing

import (
	"crypto/sha1"
	"encoding/hex"
	"html"
	"regexp"
	"strings"

	"github.com/story-radar/backend/internal/models"
)

var (
	urlRegex   = regexp.MustCompile(`https?://[^\s]+`)
	tagRegex   = regexp.MustCompile(`<[^>]*>`)
	whitespace = regexp.MustCompile(`\s+`)
)

// BuildArticleID derives the deterministic article identifier from country
// and source URL. The same (country, url) pair always hashes to the same ID,
// which is what makes re-ingestion of a feed a no-op.
func BuildArticleID(country models.Country, url string) string {
	s := sha1.Sum([]byte(string(country) + ":" + url))
	return hex.EncodeToString(s[:])
}

// CleanSummary normalizes an RSS summary for storage: HTML entities decoded,
// markup and URLs stripped, whitespace squeezed.
func CleanSummary(input string) string {
	if input == "" {
		return ""
	}
	decoded := html.UnescapeString(input)
	decoded = tagRegex.ReplaceAllString(decoded, " ")
	decoded = urlRegex.ReplaceAllString(decoded, " ")
	decoded = whitespace.ReplaceAllString(decoded, " ")
	return strings.TrimSpace(decoded)
}

// Snippet returns a rune-safe prefix of text for story payloads.
func Snippet(text string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes])
}
