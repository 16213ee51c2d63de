// Package detect turns windowed, annotated article data into candidate
// stories. Each detector is a read-and-compute function: it queries the
// article source, aggregates in memory and returns one candidate story.
// Insufficient data yields a null story, never an error; only store
// failures propagate.
package detect

import (
	"context"
	"time"

	"github.com/story-radar/backend/internal/models"
)

// ArticleSource is the read side of the article store.
type ArticleSource interface {
	SearchArticles(ctx context.Context, q models.ArticleQuery) ([]models.Article, error)
}

// Params configure one detector invocation. An empty Country runs the
// detector without a country filter (the global pass). Now anchors the
// rolling windows; windows snap to absolute day boundaries.
type Params struct {
	Country models.Country
	Now     time.Time
}

// Window lengths in days.
const (
	weekDays   = 7
	recordDays = 2
)

// currentWindow covers the last `days` full days up to and including today.
func currentWindow(now time.Time, days int) (start, end time.Time) {
	today := now.UTC().Truncate(24 * time.Hour)
	return today.AddDate(0, 0, -days), today.AddDate(0, 0, 1)
}

// priorWindow covers the week before the current week.
func priorWindow(now time.Time) (start, end time.Time) {
	today := now.UTC().Truncate(24 * time.Hour)
	return today.AddDate(0, 0, -2*weekDays), today.AddDate(0, 0, -weekDays)
}

func f64(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

func capScore(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}
