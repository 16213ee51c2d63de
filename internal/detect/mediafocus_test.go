package detect_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/story-radar/backend/internal/detect"
	"github.com/story-radar/backend/internal/models"
	"github.com/story-radar/backend/internal/taxonomy"
)

func TestMediaFocusPerOutletTopTopic(t *testing.T) {
	reg := taxonomy.Default()

	src := &stubSource{}
	src.articles = append(src.articles, manyAnnotated(3, fixture{
		headline: "chip stocks rally",
		topic:    "Science & Tech",
		source:   "Herald",
		country:  models.CountryUK,
		daysAgo:  2,
		viral:    6,
	})...)
	src.articles = append(src.articles, annotated(fixture{
		headline: "flood warnings in place",
		topic:    "Weather",
		source:   "Herald",
		country:  models.CountryUK,
		daysAgo:  1,
		viral:    6,
	}))
	src.articles = append(src.articles, manyAnnotated(2, fixture{
		headline: "storm season outlook",
		topic:    "Weather",
		source:   "Courier",
		country:  models.CountryUK,
		daysAgo:  3,
		viral:    6,
	})...)

	story, err := detect.MediaFocus(context.Background(), src, &reg, detect.Params{Country: models.CountryUK, Now: anchor})
	require.NoError(t, err)
	require.False(t, story.Null())
	require.InDelta(t, 8, story.ViralityScore, 1e-9)

	payload, ok := story.Payload.(detect.MediaFocusPayload)
	require.True(t, ok)
	require.Equal(t, []detect.OutletFocus{
		{Source: "Courier", Topic: "Weather", Count: 2},
		{Source: "Herald", Topic: "Science & Tech", Count: 3},
	}, payload.Outlets)
}

func TestMediaFocusTieBreaksByTopicName(t *testing.T) {
	reg := taxonomy.Default()

	src := &stubSource{}
	src.articles = append(src.articles, manyAnnotated(2, fixture{
		headline: "court backlog grows",
		topic:    "Crime",
		source:   "Wire",
		country:  models.CountryUK,
		daysAgo:  1,
		viral:    6,
	})...)
	src.articles = append(src.articles, manyAnnotated(2, fixture{
		headline: "gp shortage worsens",
		topic:    "NHS & Health",
		source:   "Wire",
		country:  models.CountryUK,
		daysAgo:  1,
		viral:    6,
	})...)

	story, err := detect.MediaFocus(context.Background(), src, &reg, detect.Params{Country: models.CountryUK, Now: anchor})
	require.NoError(t, err)

	payload := story.Payload.(detect.MediaFocusPayload)
	require.Len(t, payload.Outlets, 1)
	require.Equal(t, "Crime", payload.Outlets[0].Topic)
}

func TestMediaFocusNullWithoutCoverage(t *testing.T) {
	reg := taxonomy.Default()

	story, err := detect.MediaFocus(context.Background(), &stubSource{}, &reg, detect.Params{Country: models.CountryUK, Now: anchor})
	require.NoError(t, err)
	require.True(t, story.Null())
}
