package models

// StoryType tags which detector produced a story.
type StoryType string

const (
	StorySurge     StoryType = "SURGE_ALERT"
	StoryScorecard StoryType = "VIRAL_PEOPLE_SCORECARD"
	StoryShift     StoryType = "SENTIMENT_SHIFT"
	StoryRecord    StoryType = "RECORD_ALERT"
	StoryMediaBias StoryType = "MEDIA_BIAS"
	StoryGlobal    StoryType = "GLOBAL_STORY"
)

// Visualization hints consumed by the rendering collaborator.
const (
	VizComparisonBars   = "comparison_bars"
	VizRaceChart        = "race_chart"
	VizSentimentChart   = "sentiment_chart"
	VizHighlightNumbers = "highlight_numbers"
	VizSourceComparison = "source_comparison"
	VizGlobalComparison = "global_comparison"
)

// Story is a single ranked insight handed to the renderer.
//
// ViralityScore scales are detector-local (each capped at 20) and only
// comparable inside one ranking pass. An empty Country means the story is
// cross-country/global.
type Story struct {
	Type          StoryType `json:"type"`
	Headline      string    `json:"headline,omitempty"`
	VizType       string    `json:"viz_type,omitempty"`
	Payload       any       `json:"payload,omitempty"`
	ViralityScore float64   `json:"virality_score"`
	Country       Country   `json:"country,omitempty"`
}

// NullStory is what a detector returns when it has nothing to say.
// Absence of data is never an error.
func NullStory(t StoryType) Story {
	return Story{Type: t}
}

// Null reports whether the story carries no usable insight.
func (s Story) Null() bool {
	return s.Payload == nil
}
