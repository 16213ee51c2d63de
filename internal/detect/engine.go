package detect

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/story-radar/backend/internal/models"
	"github.com/story-radar/backend/internal/taxonomy"
)

// Engine runs every detector over one country (or the global pass) and
// ranks the candidates.
type Engine struct {
	src ArticleSource
	reg *taxonomy.Registry
	log *slog.Logger
}

// NewEngine wires the detector suite to an article source and registry.
func NewEngine(src ArticleSource, reg *taxonomy.Registry, log *slog.Logger) *Engine {
	return &Engine{src: src, reg: reg, log: log}
}

type detectorFunc func(context.Context, ArticleSource, *taxonomy.Registry, Params) (models.Story, error)

// Detectors run in a fixed order; ties in the ranking keep this order.
var detectors = []detectorFunc{
	Surge,
	Mentions,
	SentimentShift,
	RecordAlert,
	MediaFocus,
}

// Run executes one detection pass. An empty country is the global pass and
// additionally aggregates cross-country stories. Only store failures abort
// the run; detectors with nothing to report contribute null stories that
// the ranker drops.
func (e *Engine) Run(ctx context.Context, country models.Country, now time.Time, limit int) ([]models.Story, error) {
	p := Params{Country: country, Now: now}

	var candidates []models.Story
	for _, run := range detectors {
		story, err := run(ctx, e.src, e.reg, p)
		if err != nil {
			return nil, fmt.Errorf("detection run: %w", err)
		}
		if story.Null() {
			e.log.Debug("detector produced no story",
				slog.String("type", string(story.Type)),
				slog.String("country", string(country)),
			)
		}
		candidates = append(candidates, story)
	}

	if country == "" {
		global, err := GlobalStories(ctx, e.src, e.reg, now)
		if err != nil {
			return nil, fmt.Errorf("detection run: %w", err)
		}
		candidates = append(candidates, global...)
	}

	return Rank(candidates, limit), nil
}
