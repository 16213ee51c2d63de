package detect

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/story-radar/backend/internal/models"
	"github.com/story-radar/backend/internal/taxonomy"
)

const (
	globalMinViral     = 10
	globalMinCountries = 2
	globalMaxStories   = 3
)

// GlobalTopicPayload describes one topic trending across countries.
type GlobalTopicPayload struct {
	Topic     string `json:"topic"`
	Countries int    `json:"countries"`
	Articles  int    `json:"articles"`
}

// GlobalStories finds topics that resonate across markets: GLOBAL-scope,
// high-engagement coverage from the last week grouped by topic, kept when at
// least two distinct countries contribute. Runs only in the global pass;
// a per-country run has nothing to aggregate across.
func GlobalStories(ctx context.Context, src ArticleSource, reg *taxonomy.Registry, now time.Time) ([]models.Story, error) {
	start, end := currentWindow(now, weekDays)

	articles, err := src.SearchArticles(ctx, models.ArticleQuery{
		Start:         &start,
		End:           &end,
		Scope:         models.ScopeGlobal,
		MinViralScore: f64(globalMinViral),
	})
	if err != nil {
		return nil, fmt.Errorf("global stories window: %w", err)
	}

	type group struct {
		countries map[models.Country]bool
		total     int
	}
	byTopic := map[string]*group{}
	for _, a := range articles {
		g := byTopic[a.Topic]
		if g == nil {
			g = &group{countries: map[models.Country]bool{}}
			byTopic[a.Topic] = g
		}
		g.countries[a.Country] = true
		g.total++
	}

	rows := make([]GlobalTopicPayload, 0, len(byTopic))
	for topic, g := range byTopic {
		if len(g.countries) < globalMinCountries {
			continue
		}
		rows = append(rows, GlobalTopicPayload{
			Topic:     topic,
			Countries: len(g.countries),
			Articles:  g.total,
		})
	}
	if len(rows) == 0 {
		return nil, nil
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Articles != rows[j].Articles {
			return rows[i].Articles > rows[j].Articles
		}
		return rows[i].Topic < rows[j].Topic
	})
	if len(rows) > globalMaxStories {
		rows = rows[:globalMaxStories]
	}

	stories := make([]models.Story, 0, len(rows))
	for _, row := range rows {
		stories = append(stories, models.Story{
			Type:          models.StoryGlobal,
			Headline:      fmt.Sprintf("%s %s trending in %d countries", taxonomy.GlobalFlag, row.Topic, row.Countries),
			VizType:       models.VizGlobalComparison,
			Payload:       row,
			ViralityScore: capScore(float64(row.Countries)*5, 20),
		})
	}
	return stories, nil
}
