package processing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/story-radar/backend/internal/models"
	"github.com/story-radar/backend/internal/processing"
)

func TestBuildArticleID(t *testing.T) {
	id1 := processing.BuildArticleID(models.CountryUK, "https://example.com/story")
	id2 := processing.BuildArticleID(models.CountryUK, "https://example.com/story")
	require.NotEmpty(t, id1)
	require.Equal(t, id1, id2)

	// Same URL under a different country is a different article.
	id3 := processing.BuildArticleID(models.CountryUS, "https://example.com/story")
	require.NotEqual(t, id1, id3)
}

func TestCleanSummary(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "entities decoded", input: "Fish &amp; chips up 12%", want: "Fish & chips up 12%"},
		{name: "tags stripped", input: "<p>Energy bills <b>soar</b></p>", want: "Energy bills soar"},
		{name: "urls removed", input: "Read more at https://example.com/a today", want: "Read more at today"},
		{name: "whitespace squeezed", input: "one\n\ntwo\t three", want: "one two three"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, processing.CleanSummary(tt.input))
		})
	}
}

func TestSnippet(t *testing.T) {
	require.Equal(t, "", processing.Snippet("anything", 0))
	require.Equal(t, "short", processing.Snippet("short", 200))
	require.Equal(t, "abc", processing.Snippet("abcdef", 3))
	// Multi-byte runes are never split.
	require.Equal(t, "héll", processing.Snippet("héllo", 4))
}
