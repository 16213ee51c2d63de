package detect

import (
	"context"
	"fmt"
	"regexp"

	"github.com/story-radar/backend/internal/models"
	"github.com/story-radar/backend/internal/processing"
	"github.com/story-radar/backend/internal/taxonomy"
)

// recordPatterns is the fixed, ordered pattern list for record-ish claims.
// The first matching pattern claims the article; later patterns are not
// consulted for it.
var recordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+(?:,\d{3})*(?:\.\d+)?)\s*(million|billion|thousand)?\s*(?:people|deaths|jobs|homes)`),
	regexp.MustCompile(`(?i)highest\s+(?:in|since)`),
	regexp.MustCompile(`(?i)lowest\s+(?:in|since)`),
	regexp.MustCompile(`(?i)record\s+(?:high|low)`),
	regexp.MustCompile(`(?i)(\d+)%\s+(?:increase|decrease|rise|fall)`),
}

const (
	recordMinViral   = 10
	recordPayloadCap = 5
	snippetRunes     = 200
)

// RecordItem is one collected record-breaking article.
type RecordItem struct {
	Headline   string  `json:"headline"`
	Source     string  `json:"source"`
	ViralScore float64 `json:"viral_score"`
	Snippet    string  `json:"snippet"`
}

// RecordPayload keeps up to five items; Matches is the full match count the
// virality score is derived from.
type RecordPayload struct {
	Items   []RecordItem `json:"items"`
	Matches int          `json:"matches"`
}

// RecordAlert scans the last two days of high-engagement articles for
// record-breaking numeric claims.
func RecordAlert(ctx context.Context, src ArticleSource, reg *taxonomy.Registry, p Params) (models.Story, error) {
	start, end := currentWindow(p.Now, recordDays)

	articles, err := src.SearchArticles(ctx, models.ArticleQuery{
		Start:         &start,
		End:           &end,
		Country:       p.Country,
		MinViralScore: f64(recordMinViral),
	})
	if err != nil {
		return models.Story{}, fmt.Errorf("record alert window: %w", err)
	}

	matches := 0
	var items []RecordItem
	for _, a := range articles {
		text := a.Text()
		for _, pattern := range recordPatterns {
			if !pattern.MatchString(text) {
				continue
			}
			matches++
			if len(items) < recordPayloadCap {
				items = append(items, RecordItem{
					Headline:   a.Headline,
					Source:     a.Source,
					ViralScore: a.ViralScore,
					Snippet:    processing.Snippet(text, snippetRunes),
				})
			}
			break
		}
	}

	if matches == 0 {
		return models.NullStory(models.StoryRecord), nil
	}

	return models.Story{
		Type:          models.StoryRecord,
		Headline:      fmt.Sprintf("%s %d record-breaking stories this week", reg.Flag(p.Country), matches),
		VizType:       models.VizHighlightNumbers,
		Payload:       RecordPayload{Items: items, Matches: matches},
		ViralityScore: capScore(float64(matches)*2, 20),
		Country:       p.Country,
	}, nil
}
