package detect

import (
	"context"
	"fmt"
	"sort"

	"github.com/story-radar/backend/internal/models"
	"github.com/story-radar/backend/internal/taxonomy"
	"github.com/story-radar/backend/internal/viral"
)

// TopicChange is one row of a surge payload.
type TopicChange struct {
	Topic     string  `json:"topic"`
	Current   int     `json:"current"`
	Prior     int     `json:"prior"`
	PctChange float64 `json:"pct_change"`
}

// SurgePayload carries all joined topic rows, biggest change first.
type SurgePayload struct {
	Topics []TopicChange `json:"topics"`
}

// Surge finds the topic whose coverage exploded week over week.
//
// The current window (last 7 days) only counts rows with viral score >= 5;
// the prior window (8-14 days ago) is unfiltered by score. That asymmetry is
// deliberate: it compares this week's engaging coverage against last week's
// full baseline. A topic absent from the prior window gets a prior count of
// 1, not 0, so the percent change stays finite.
func Surge(ctx context.Context, src ArticleSource, reg *taxonomy.Registry, p Params) (models.Story, error) {
	curStart, curEnd := currentWindow(p.Now, weekDays)
	priStart, priEnd := priorWindow(p.Now)

	current, err := src.SearchArticles(ctx, models.ArticleQuery{
		Start:         &curStart,
		End:           &curEnd,
		Country:       p.Country,
		MinViralScore: f64(viral.PostThreshold),
		Annotated:     boolPtr(true),
	})
	if err != nil {
		return models.Story{}, fmt.Errorf("surge current window: %w", err)
	}

	prior, err := src.SearchArticles(ctx, models.ArticleQuery{
		Start:     &priStart,
		End:       &priEnd,
		Country:   p.Country,
		Annotated: boolPtr(true),
	})
	if err != nil {
		return models.Story{}, fmt.Errorf("surge prior window: %w", err)
	}

	if len(current) == 0 || len(prior) == 0 {
		return models.NullStory(models.StorySurge), nil
	}

	currentCounts := countByTopic(current)
	priorCounts := countByTopic(prior)

	rows := make([]TopicChange, 0, len(currentCounts))
	for topic, cur := range currentCounts {
		before := priorCounts[topic]
		if before == 0 {
			before = 1
		}
		rows = append(rows, TopicChange{
			Topic:     topic,
			Current:   cur,
			Prior:     before,
			PctChange: float64(cur-before) / float64(before) * 100,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].PctChange != rows[j].PctChange {
			return rows[i].PctChange > rows[j].PctChange
		}
		if rows[i].Current != rows[j].Current {
			return rows[i].Current > rows[j].Current
		}
		return rows[i].Topic < rows[j].Topic
	})

	top := rows[0]
	direction := "UP"
	if top.PctChange < 0 {
		direction = "DOWN"
	}
	pct := top.PctChange
	if pct < 0 {
		pct = -pct
	}

	return models.Story{
		Type:          models.StorySurge,
		Headline:      fmt.Sprintf("%s %s news %s %.0f%% this week", reg.Flag(p.Country), top.Topic, direction, pct),
		VizType:       models.VizComparisonBars,
		Payload:       SurgePayload{Topics: rows},
		ViralityScore: capScore(pct/10, 20),
		Country:       p.Country,
	}, nil
}

func countByTopic(articles []models.Article) map[string]int {
	counts := map[string]int{}
	for _, a := range articles {
		counts[a.Topic]++
	}
	return counts
}
