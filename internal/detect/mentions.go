package detect

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/story-radar/backend/internal/models"
	"github.com/story-radar/backend/internal/taxonomy"
	"github.com/story-radar/backend/internal/viral"
)

// EntityCount is one row of a scorecard payload.
type EntityCount struct {
	Name     string `json:"name"`
	Mentions int    `json:"mentions"`
}

// ScorecardPayload carries the ranked mention counts and the leader ratio.
type ScorecardPayload struct {
	Entities []EntityCount `json:"entities"`
	Ratio    float64       `json:"ratio"`
}

// Mentions builds the tracked-people scorecard: who dominated the week's
// engaging coverage. An entity's count is the number of distinct articles
// whose text contains any of its aliases; multiple aliases inside one
// article still count once. Fewer than two entities with mentions yields a
// null story; a leaderboard of one is not a race.
func Mentions(ctx context.Context, src ArticleSource, reg *taxonomy.Registry, p Params) (models.Story, error) {
	start, end := currentWindow(p.Now, weekDays)

	articles, err := src.SearchArticles(ctx, models.ArticleQuery{
		Start:         &start,
		End:           &end,
		Country:       p.Country,
		MinViralScore: f64(viral.PostThreshold),
	})
	if err != nil {
		return models.Story{}, fmt.Errorf("mentions window: %w", err)
	}
	if len(articles) == 0 {
		return models.NullStory(models.StoryScorecard), nil
	}

	entities := reg.TrackedEntities(p.Country)

	counts := make([]EntityCount, 0, len(entities))
	for _, entity := range entities {
		n := 0
		for _, a := range articles {
			text := strings.ToLower(a.Text())
			for _, alias := range entity.Aliases {
				if strings.Contains(text, alias) {
					n++
					break
				}
			}
		}
		if n > 0 {
			counts = append(counts, EntityCount{Name: entity.Name, Mentions: n})
		}
	}

	if len(counts) < 2 {
		return models.NullStory(models.StoryScorecard), nil
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Mentions != counts[j].Mentions {
			return counts[i].Mentions > counts[j].Mentions
		}
		return counts[i].Name < counts[j].Name
	})

	leader, runnerUp := counts[0], counts[1]
	denominator := runnerUp.Mentions
	if denominator < 1 {
		denominator = 1
	}
	ratio := float64(leader.Mentions) / float64(denominator)

	return models.Story{
		Type:     models.StoryScorecard,
		Headline: fmt.Sprintf("%s %s mentioned %.1fx more than %s this week", reg.Flag(p.Country), leader.Name, ratio, runnerUp.Name),
		VizType:  models.VizRaceChart,
		Payload:  ScorecardPayload{Entities: counts, Ratio: ratio},
		// Ratio 2.5 or below lands under the ranking threshold of 5 and
		// the story is dropped downstream.
		ViralityScore: capScore(ratio*2, 20),
		Country:       p.Country,
	}, nil
}
