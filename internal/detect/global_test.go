package detect_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/story-radar/backend/internal/detect"
	"github.com/story-radar/backend/internal/models"
	"github.com/story-radar/backend/internal/taxonomy"
)

func globalArticle(topic string, country models.Country, n int) []models.Article {
	out := make([]models.Article, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, annotated(fixture{
			headline: fmt.Sprintf("%s coverage %d", topic, i),
			topic:    topic,
			country:  country,
			scope:    models.ScopeGlobal,
			daysAgo:  2,
			viral:    12,
		}))
	}
	return out
}

func TestGlobalStoriesCrossCountryTopics(t *testing.T) {
	reg := taxonomy.Default()

	src := &stubSource{}
	src.articles = append(src.articles, globalArticle("AI Wars", models.CountryUK, 2)...)
	src.articles = append(src.articles, globalArticle("AI Wars", models.CountryUS, 3)...)
	// single-country topic, dropped
	src.articles = append(src.articles, globalArticle("Climate Crisis", models.CountryUK, 4)...)

	stories, err := detect.GlobalStories(context.Background(), src, &reg, anchor)
	require.NoError(t, err)
	require.Len(t, stories, 1)

	story := stories[0]
	require.Equal(t, models.StoryGlobal, story.Type)
	require.InDelta(t, 10, story.ViralityScore, 1e-9)
	require.Empty(t, story.Country)

	payload, ok := story.Payload.(detect.GlobalTopicPayload)
	require.True(t, ok)
	require.Equal(t, "AI Wars", payload.Topic)
	require.Equal(t, 2, payload.Countries)
	require.Equal(t, 5, payload.Articles)
}

func TestGlobalStoriesKeepsTopThree(t *testing.T) {
	reg := taxonomy.Default()

	src := &stubSource{}
	for i, topic := range []string{"AI Wars", "Climate Crisis", "Space Race", "Trade War"} {
		per := 4 - i
		src.articles = append(src.articles, globalArticle(topic, models.CountryUK, per)...)
		src.articles = append(src.articles, globalArticle(topic, models.CountryUS, per)...)
	}

	stories, err := detect.GlobalStories(context.Background(), src, &reg, anchor)
	require.NoError(t, err)
	require.Len(t, stories, 3)

	first := stories[0].Payload.(detect.GlobalTopicPayload)
	require.Equal(t, "AI Wars", first.Topic)
	require.Equal(t, 8, first.Articles)
}

func TestGlobalStoriesEmptyWithoutData(t *testing.T) {
	reg := taxonomy.Default()

	stories, err := detect.GlobalStories(context.Background(), &stubSource{}, &reg, anchor)
	require.NoError(t, err)
	require.Empty(t, stories)
}
