// Package annotate enriches raw articles with topic, scope, sentiment and
// viral score. Annotation is idempotent: the store query only returns rows
// without a topic, so re-running a pass never touches finished articles.
package annotate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/story-radar/backend/internal/classify"
	"github.com/story-radar/backend/internal/models"
	"github.com/story-radar/backend/internal/sentiment"
	"github.com/story-radar/backend/internal/taxonomy"
	"github.com/story-radar/backend/internal/viral"
)

// Store is the slice of the article store annotation needs.
type Store interface {
	SearchArticles(ctx context.Context, q models.ArticleQuery) ([]models.Article, error)
	UpdateAnnotation(ctx context.Context, id string, ann models.Annotation) error
}

// Annotator runs classification, sentiment and scoring over unannotated
// articles in batches.
type Annotator struct {
	store     Store
	provider  sentiment.Provider
	reg       *taxonomy.Registry
	batchSize int
	log       *slog.Logger
}

// New wires an Annotator. batchSize bounds one store query; Run loops until
// the store has nothing left.
func New(store Store, provider sentiment.Provider, reg *taxonomy.Registry, batchSize int, log *slog.Logger) *Annotator {
	return &Annotator{
		store:     store,
		provider:  provider,
		reg:       reg,
		batchSize: batchSize,
		log:       log,
	}
}

// Annotate computes the full annotation for one article. A sentiment provider
// failure degrades to a neutral label instead of blocking the pipeline.
func (a *Annotator) Annotate(ctx context.Context, article models.Article) models.Annotation {
	text := article.Text()

	polarity, err := a.provider.Polarity(ctx, text)
	if err != nil {
		a.log.Warn("sentiment provider failed, defaulting to neutral",
			slog.String("article_id", article.ID),
			slog.String("error", err.Error()),
		)
		polarity = 0
	}

	return models.Annotation{
		Topic:          classify.Topic(text, article.Country, a.reg),
		Scope:          classify.Scope(text, a.reg),
		Sentiment:      sentiment.Normalize(polarity),
		SentimentScore: polarity,
		ViralScore:     viral.Score(article.Headline, article.Summary),
	}
}

// Run annotates every unannotated article currently in the store. It returns
// the number of articles annotated. Store write failures for single articles
// are logged and skipped; only read failures abort the pass.
func (a *Annotator) Run(ctx context.Context) (int, error) {
	annotated := 0
	for {
		batch, err := a.store.SearchArticles(ctx, models.ArticleQuery{
			Annotated: ptrFalse(),
			Size:      a.batchSize,
		})
		if err != nil {
			return annotated, fmt.Errorf("fetch unannotated batch: %w", err)
		}
		if len(batch) == 0 {
			return annotated, nil
		}

		wrote := 0
		for _, article := range batch {
			if err := ctx.Err(); err != nil {
				return annotated, err
			}

			ann := a.Annotate(ctx, article)
			if err := a.store.UpdateAnnotation(ctx, article.ID, ann); err != nil {
				a.log.Error("annotation write failed",
					slog.String("article_id", article.ID),
					slog.String("error", err.Error()),
				)
				continue
			}
			annotated++
			wrote++
		}

		// Every write in the batch failed; bail instead of refetching the
		// same rows forever.
		if wrote == 0 {
			return annotated, fmt.Errorf("annotation pass stalled: %d writes failed", len(batch))
		}
		if len(batch) < a.batchSize {
			return annotated, nil
		}
	}
}

func ptrFalse() *bool {
	v := false
	return &v
}
