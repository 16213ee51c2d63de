// Package sentiment consumes an externally supplied polarity value and maps
// it to a categorical label. The polarity analysis itself happens in a
// separate service; the engine treats the float as opaque.
package sentiment

import (
	"context"

	"github.com/story-radar/backend/internal/models"
)

// Polarity thresholds for the categorical labels.
const (
	PositiveThreshold = 0.1
	NegativeThreshold = -0.1
)

// Provider supplies a polarity in [-1, 1] for a piece of text.
type Provider interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

// Normalize maps a polarity value to its categorical label.
func Normalize(polarity float64) models.Sentiment {
	switch {
	case polarity > PositiveThreshold:
		return models.SentimentPositive
	case polarity < NegativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
