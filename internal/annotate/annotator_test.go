package annotate_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/story-radar/backend/internal/annotate"
	"github.com/story-radar/backend/internal/models"
	"github.com/story-radar/backend/internal/taxonomy"
)

type stubStore struct {
	pending   []models.Article
	updates   map[string]models.Annotation
	searchErr error
	updateErr error
	batchSize int
}

func (s *stubStore) SearchArticles(_ context.Context, q models.ArticleQuery) ([]models.Article, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	s.batchSize = q.Size

	var out []models.Article
	for _, a := range s.pending {
		if _, done := s.updates[a.ID]; done {
			continue
		}
		out = append(out, a)
		if q.Size > 0 && len(out) == q.Size {
			break
		}
	}
	return out, nil
}

func (s *stubStore) UpdateAnnotation(_ context.Context, id string, ann models.Annotation) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if s.updates == nil {
		s.updates = map[string]models.Annotation{}
	}
	s.updates[id] = ann
	return nil
}

type stubProvider struct {
	polarity float64
	err      error
}

func (p stubProvider) Polarity(context.Context, string) (float64, error) {
	return p.polarity, p.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnnotateFillsEveryField(t *testing.T) {
	reg := taxonomy.Default()
	a := annotate.New(&stubStore{}, stubProvider{polarity: 0.4}, &reg, 10, testLogger())

	article := models.Article{
		ID:       "a1",
		Headline: "Families shocked as record high energy bills hit millions",
		Country:  models.CountryUK,
	}

	ann := a.Annotate(context.Background(), article)
	require.Equal(t, "Cost of Living", ann.Topic)
	require.Equal(t, models.ScopeLocal, ann.Scope)
	require.Equal(t, models.SentimentPositive, ann.Sentiment)
	require.InDelta(t, 0.4, ann.SentimentScore, 1e-9)
	require.Greater(t, ann.ViralScore, 0.0)
}

func TestAnnotateProviderFailureDefaultsNeutral(t *testing.T) {
	reg := taxonomy.Default()
	a := annotate.New(&stubStore{}, stubProvider{err: errors.New("timeout")}, &reg, 10, testLogger())

	ann := a.Annotate(context.Background(), models.Article{ID: "a1", Headline: "quiet news day"})
	require.Equal(t, models.SentimentNeutral, ann.Sentiment)
	require.Zero(t, ann.SentimentScore)
}

func TestRunAnnotatesAllPending(t *testing.T) {
	reg := taxonomy.Default()
	store := &stubStore{pending: []models.Article{
		{ID: "a1", Headline: "energy bills rise again", Country: models.CountryUK},
		{ID: "a2", Headline: "premier league title race", Country: models.CountryUK},
		{ID: "a3", Headline: "senate passes budget", Country: models.CountryUS},
	}}

	a := annotate.New(store, stubProvider{polarity: -0.3}, &reg, 2, testLogger())

	n, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Len(t, store.updates, 3)
	require.Equal(t, 2, store.batchSize)

	for id, ann := range store.updates {
		require.NotEmpty(t, ann.Topic, id)
		require.Equal(t, models.SentimentNegative, ann.Sentiment)
	}
}

func TestRunEmptyStore(t *testing.T) {
	reg := taxonomy.Default()
	a := annotate.New(&stubStore{}, stubProvider{}, &reg, 10, testLogger())

	n, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestRunSearchFailureAborts(t *testing.T) {
	reg := taxonomy.Default()
	store := &stubStore{searchErr: errors.New("search down")}
	a := annotate.New(store, stubProvider{}, &reg, 10, testLogger())

	_, err := a.Run(context.Background())
	require.Error(t, err)
}

func TestRunStalledWritesAbort(t *testing.T) {
	reg := taxonomy.Default()
	store := &stubStore{
		pending:   []models.Article{{ID: "a1", Headline: "energy bills rise"}},
		updateErr: errors.New("write rejected"),
	}
	a := annotate.New(store, stubProvider{}, &reg, 10, testLogger())

	n, err := a.Run(context.Background())
	require.Error(t, err)
	require.Zero(t, n)
}
