package detect

import (
	"context"
	"fmt"
	"sort"

	"github.com/story-radar/backend/internal/models"
	"github.com/story-radar/backend/internal/taxonomy"
	"github.com/story-radar/backend/internal/viral"
)

// mediaFocusScore is intentionally constant: the insight is the comparison
// itself, not any measurable spike, so the story always competes at the same
// strength.
const mediaFocusScore = 8

// OutletFocus is one outlet's most-covered topic this week.
type OutletFocus struct {
	Source string `json:"source"`
	Topic  string `json:"topic"`
	Count  int    `json:"count"`
}

// MediaFocusPayload lists every outlet's top topic, sources ordered by name.
type MediaFocusPayload struct {
	Outlets []OutletFocus `json:"outlets"`
}

// MediaFocus reports what each outlet spent its engaging coverage on:
// per source, the topic with the highest article count over the last week.
func MediaFocus(ctx context.Context, src ArticleSource, reg *taxonomy.Registry, p Params) (models.Story, error) {
	start, end := currentWindow(p.Now, weekDays)

	articles, err := src.SearchArticles(ctx, models.ArticleQuery{
		Start:         &start,
		End:           &end,
		Country:       p.Country,
		MinViralScore: f64(viral.PostThreshold),
		Annotated:     boolPtr(true),
	})
	if err != nil {
		return models.Story{}, fmt.Errorf("media focus window: %w", err)
	}
	if len(articles) == 0 {
		return models.NullStory(models.StoryMediaBias), nil
	}

	// count per (source, topic)
	bySource := map[string]map[string]int{}
	for _, a := range articles {
		if bySource[a.Source] == nil {
			bySource[a.Source] = map[string]int{}
		}
		bySource[a.Source][a.Topic]++
	}

	outlets := make([]OutletFocus, 0, len(bySource))
	for source, topics := range bySource {
		best := OutletFocus{Source: source}
		for topic, count := range topics {
			// argmax with ties broken by topic name
			if best.Topic == "" || count > best.Count || (count == best.Count && topic < best.Topic) {
				best.Topic = topic
				best.Count = count
			}
		}
		outlets = append(outlets, best)
	}

	sort.Slice(outlets, func(i, j int) bool {
		return outlets[i].Source < outlets[j].Source
	})

	return models.Story{
		Type:          models.StoryMediaBias,
		Headline:      fmt.Sprintf("%s What %s outlets are REALLY covering this week", reg.Flag(p.Country), reg.CountryName(p.Country)),
		VizType:       models.VizSourceComparison,
		Payload:       MediaFocusPayload{Outlets: outlets},
		ViralityScore: mediaFocusScore,
		Country:       p.Country,
	}, nil
}
