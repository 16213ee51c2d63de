package models

import (
	"fmt"
	"strings"
	"time"
)

// Country is the closed set of markets the pipeline tracks. Adding a country
// means adding a constant here plus its entry in the taxonomy registry.
type Country string

const (
	CountryUK Country = "UK"
	CountryUS Country = "US"
)

// ParseCountry validates a raw country code from an ingestion payload.
func ParseCountry(raw string) (Country, error) {
	switch Country(strings.ToUpper(strings.TrimSpace(raw))) {
	case CountryUK:
		return CountryUK, nil
	case CountryUS:
		return CountryUS, nil
	default:
		return "", fmt.Errorf("unsupported country code %q", raw)
	}
}

// Scope classifies the likely audience relevance of an article.
type Scope string

const (
	ScopeLocal  Scope = "LOCAL"
	ScopeGlobal Scope = "GLOBAL"
)

// Sentiment is the categorical label derived from a polarity value.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Article is one ingested news record as stored in Elasticsearch.
//
// The collector writes only the raw fields; the annotation pass later fills
// topic, scope, sentiment, sentiment_score and viral_score in a single
// update. Annotation fields use omitempty so an Elasticsearch exists query
// can tell annotated rows from raw ones.
type Article struct {
	ID          string    `json:"id"`
	Headline    string    `json:"headline"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	FetchedAt   time.Time `json:"fetched_at"`
	Country     Country   `json:"country"`

	Scope          Scope     `json:"scope,omitempty"`
	Topic          string    `json:"topic,omitempty"`
	Sentiment      Sentiment `json:"sentiment,omitempty"`
	SentimentScore *float64  `json:"sentiment_score,omitempty"`
	ViralScore     float64   `json:"viral_score"`
}

// Text is the concatenated headline+summary the classifiers and detectors
// match keywords against.
func (a Article) Text() string {
	return a.Headline + " " + a.Summary
}

// Annotated reports whether the annotation pass has processed this row.
// Annotation fields are always written together, so topic alone decides.
func (a Article) Annotated() bool {
	return a.Topic != ""
}

// Annotation is the field set written back to an article exactly once.
type Annotation struct {
	Topic          string    `json:"topic"`
	Scope          Scope     `json:"scope"`
	Sentiment      Sentiment `json:"sentiment"`
	SentimentScore float64   `json:"sentiment_score"`
	ViralScore     float64   `json:"viral_score"`
}
