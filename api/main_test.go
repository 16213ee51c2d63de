package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/story-radar/backend/internal/config"
	"github.com/story-radar/backend/internal/elasticsearch"
	"github.com/story-radar/backend/internal/models"
)

type stubStore struct {
	stories     []elasticsearch.StoredStory
	articles    []models.Article
	gotCountry  models.Country
	gotLimit    int
	gotQuery    models.ArticleQuery
	healthErr   error
	storiesErr  error
	articlesErr error
}

func (s *stubStore) Health(context.Context) error { return s.healthErr }

func (s *stubStore) LatestStories(_ context.Context, country models.Country, limit int) ([]elasticsearch.StoredStory, error) {
	s.gotCountry = country
	s.gotLimit = limit
	return s.stories, s.storiesErr
}

func (s *stubStore) SearchArticles(_ context.Context, q models.ArticleQuery) ([]models.Article, error) {
	s.gotQuery = q
	return s.articles, s.articlesErr
}

func newTestServer(store *stubStore) *server {
	return &server{
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		cfg:   &config.API{DefaultPage: 20, MaxPage: 100},
		store: store,
	}
}

func TestHandleStories(t *testing.T) {
	store := &stubStore{stories: []elasticsearch.StoredStory{
		{Type: models.StorySurge, Headline: "NHS news UP 120% this week", Rank: 0},
	}}
	srv := newTestServer(store)

	rec := httptest.NewRecorder()
	srv.handleStories(rec, httptest.NewRequest("GET", "/stories?country=uk&limit=3", nil))

	require.Equal(t, 200, rec.Code)
	require.Equal(t, models.CountryUK, store.gotCountry)
	require.Equal(t, 3, store.gotLimit)

	var body struct {
		Stories []elasticsearch.StoredStory `json:"stories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Stories, 1)
	require.Equal(t, models.StorySurge, body.Stories[0].Type)
}

func TestHandleStoriesGlobalByDefault(t *testing.T) {
	store := &stubStore{}
	srv := newTestServer(store)

	rec := httptest.NewRecorder()
	srv.handleStories(rec, httptest.NewRequest("GET", "/stories", nil))

	require.Equal(t, 200, rec.Code)
	require.Empty(t, store.gotCountry)
	require.Equal(t, 20, store.gotLimit)
}

func TestHandleStoriesRejectsUnknownCountry(t *testing.T) {
	srv := newTestServer(&stubStore{})

	rec := httptest.NewRecorder()
	srv.handleStories(rec, httptest.NewRequest("GET", "/stories?country=FR", nil))

	require.Equal(t, 400, rec.Code)
}

func TestHandleArticlesBuildsQuery(t *testing.T) {
	store := &stubStore{}
	srv := newTestServer(store)

	rec := httptest.NewRecorder()
	srv.handleArticles(rec, httptest.NewRequest(
		"GET", "/articles?country=US&scope=global&min_viral=10&annotated=true&size=500", nil))

	require.Equal(t, 200, rec.Code)
	require.Equal(t, models.CountryUS, store.gotQuery.Country)
	require.Equal(t, models.ScopeGlobal, store.gotQuery.Scope)
	require.NotNil(t, store.gotQuery.MinViralScore)
	require.InDelta(t, 10, *store.gotQuery.MinViralScore, 1e-9)
	require.NotNil(t, store.gotQuery.Annotated)
	require.True(t, *store.gotQuery.Annotated)
	// size clamps to the configured maximum
	require.Equal(t, 100, store.gotQuery.Size)
}

func TestHandleArticlesRejectsBadScope(t *testing.T) {
	srv := newTestServer(&stubStore{})

	rec := httptest.NewRecorder()
	srv.handleArticles(rec, httptest.NewRequest("GET", "/articles?scope=planetary", nil))

	require.Equal(t, 400, rec.Code)
}
