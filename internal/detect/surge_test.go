package detect_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/story-radar/backend/internal/detect"
	"github.com/story-radar/backend/internal/models"
	"github.com/story-radar/backend/internal/taxonomy"
)

func TestSurgeDoubledCoverage(t *testing.T) {
	reg := taxonomy.Default()

	src := &stubSource{}
	src.articles = append(src.articles, manyAnnotated(20, fixture{
		headline: "nhs waiting lists grow",
		topic:    "NHS & Health",
		country:  models.CountryUK,
		daysAgo:  2,
		viral:    6,
	})...)
	src.articles = append(src.articles, manyAnnotated(10, fixture{
		headline: "nhs funding debate",
		topic:    "NHS & Health",
		country:  models.CountryUK,
		daysAgo:  10,
		viral:    2,
	})...)
	// under the engagement floor, must not count toward the current window
	src.articles = append(src.articles, annotated(fixture{
		headline: "minor nhs update",
		topic:    "NHS & Health",
		country:  models.CountryUK,
		daysAgo:  1,
		viral:    3,
	}))

	story, err := detect.Surge(context.Background(), src, &reg, detect.Params{Country: models.CountryUK, Now: anchor})
	require.NoError(t, err)
	require.False(t, story.Null())

	payload, ok := story.Payload.(detect.SurgePayload)
	require.True(t, ok)
	require.Len(t, payload.Topics, 1)

	top := payload.Topics[0]
	require.Equal(t, 20, top.Current)
	require.Equal(t, 10, top.Prior)
	require.InDelta(t, 100, top.PctChange, 1e-9)
	require.InDelta(t, 10, story.ViralityScore, 1e-9)
	require.Contains(t, story.Headline, "UP 100%")
	require.Equal(t, models.CountryUK, story.Country)
}

func TestSurgeNewTopicDefaultsPriorToOne(t *testing.T) {
	reg := taxonomy.Default()

	src := &stubSource{}
	src.articles = append(src.articles, manyAnnotated(5, fixture{
		headline: "transfer window frenzy",
		topic:    "Sport",
		country:  models.CountryUK,
		daysAgo:  1,
		viral:    7,
	})...)
	src.articles = append(src.articles, annotated(fixture{
		headline: "hospital trust report",
		topic:    "NHS & Health",
		country:  models.CountryUK,
		daysAgo:  9,
		viral:    1,
	}))

	story, err := detect.Surge(context.Background(), src, &reg, detect.Params{Country: models.CountryUK, Now: anchor})
	require.NoError(t, err)
	require.False(t, story.Null())

	payload := story.Payload.(detect.SurgePayload)
	require.Len(t, payload.Topics, 1)
	require.Equal(t, 1, payload.Topics[0].Prior)
	require.InDelta(t, 400, payload.Topics[0].PctChange, 1e-9)
	require.InDelta(t, 20, story.ViralityScore, 1e-9)
}

func TestSurgeNullWithoutPriorBaseline(t *testing.T) {
	reg := taxonomy.Default()

	src := &stubSource{articles: manyAnnotated(6, fixture{
		headline: "crime wave coverage",
		topic:    "Crime",
		country:  models.CountryUK,
		daysAgo:  3,
		viral:    8,
	})}

	story, err := detect.Surge(context.Background(), src, &reg, detect.Params{Country: models.CountryUK, Now: anchor})
	require.NoError(t, err)
	require.True(t, story.Null())
	require.Zero(t, story.ViralityScore)
}

func TestSurgeIgnoresOtherCountries(t *testing.T) {
	reg := taxonomy.Default()

	src := &stubSource{}
	src.articles = append(src.articles, manyAnnotated(4, fixture{
		headline: "election season heats up",
		topic:    "Politics",
		country:  models.CountryUS,
		daysAgo:  2,
		viral:    9,
	})...)
	src.articles = append(src.articles, manyAnnotated(2, fixture{
		headline: "election retrospective",
		topic:    "Politics",
		country:  models.CountryUS,
		daysAgo:  11,
		viral:    9,
	})...)

	story, err := detect.Surge(context.Background(), src, &reg, detect.Params{Country: models.CountryUK, Now: anchor})
	require.NoError(t, err)
	require.True(t, story.Null())
}
