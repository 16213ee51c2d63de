package detect_test

import (
	"context"
	"time"

	"github.com/story-radar/backend/internal/models"
)

// anchor keeps every window computation in the tests deterministic.
var anchor = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

// stubSource serves canned articles through the same filter semantics the
// real store applies.
type stubSource struct {
	articles []models.Article
	err      error
}

func (s *stubSource) SearchArticles(_ context.Context, q models.ArticleQuery) ([]models.Article, error) {
	if s.err != nil {
		return nil, s.err
	}

	var out []models.Article
	for _, a := range s.articles {
		if q.Start != nil && a.FetchedAt.Before(*q.Start) {
			continue
		}
		if q.End != nil && !a.FetchedAt.Before(*q.End) {
			continue
		}
		if q.Country != "" && a.Country != q.Country {
			continue
		}
		if q.Scope != "" && a.Scope != q.Scope {
			continue
		}
		if q.MinViralScore != nil && a.ViralScore < *q.MinViralScore {
			continue
		}
		if q.Annotated != nil && a.Annotated() != *q.Annotated {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type fixture struct {
	headline string
	topic    string
	source   string
	country  models.Country
	scope    models.Scope
	daysAgo  int
	viral    float64
	polarity float64
}

func annotated(f fixture) models.Article {
	score := f.polarity
	if f.source == "" {
		f.source = "Wire"
	}
	return models.Article{
		ID:             f.headline,
		Headline:       f.headline,
		Source:         f.source,
		Country:        f.country,
		Scope:          f.scope,
		Topic:          f.topic,
		Sentiment:      "neutral",
		SentimentScore: &score,
		ViralScore:     f.viral,
		FetchedAt:      anchor.AddDate(0, 0, -f.daysAgo),
	}
}

func manyAnnotated(n int, f fixture) []models.Article {
	out := make([]models.Article, 0, n)
	for i := 0; i < n; i++ {
		a := annotated(f)
		out = append(out, a)
	}
	return out
}
