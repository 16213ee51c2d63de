package detect

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/story-radar/backend/internal/models"
	"github.com/story-radar/backend/internal/taxonomy"
)

// MinSentimentShift is the smallest mean-sentiment change that counts as a
// mood swing worth reporting.
const MinSentimentShift = 0.1

// SentimentChange is one row of a shift payload.
type SentimentChange struct {
	Topic  string  `json:"topic"`
	Now    float64 `json:"now"`
	Before float64 `json:"before"`
	Change float64 `json:"change"`
}

// ShiftPayload carries the joined per-topic rows, biggest swing first.
type ShiftPayload struct {
	Topics []SentimentChange `json:"topics"`
}

// SentimentShift compares mean sentiment per topic between the current and
// prior week. Topics missing from either window are dropped (inner join);
// no viral-score prefilter applies because mood is read from all annotated
// coverage, not just the engaging slice.
func SentimentShift(ctx context.Context, src ArticleSource, reg *taxonomy.Registry, p Params) (models.Story, error) {
	curStart, curEnd := currentWindow(p.Now, weekDays)
	priStart, priEnd := priorWindow(p.Now)

	current, err := src.SearchArticles(ctx, models.ArticleQuery{
		Start:     &curStart,
		End:       &curEnd,
		Country:   p.Country,
		Annotated: boolPtr(true),
	})
	if err != nil {
		return models.Story{}, fmt.Errorf("sentiment shift current window: %w", err)
	}

	prior, err := src.SearchArticles(ctx, models.ArticleQuery{
		Start:     &priStart,
		End:       &priEnd,
		Country:   p.Country,
		Annotated: boolPtr(true),
	})
	if err != nil {
		return models.Story{}, fmt.Errorf("sentiment shift prior window: %w", err)
	}

	if len(current) == 0 || len(prior) == 0 {
		return models.NullStory(models.StoryShift), nil
	}

	currentMeans := meanSentimentByTopic(current)
	priorMeans := meanSentimentByTopic(prior)

	rows := make([]SentimentChange, 0, len(currentMeans))
	for topic, now := range currentMeans {
		before, ok := priorMeans[topic]
		if !ok {
			continue
		}
		rows = append(rows, SentimentChange{
			Topic:  topic,
			Now:    now,
			Before: before,
			Change: now - before,
		})
	}

	if len(rows) == 0 {
		return models.NullStory(models.StoryShift), nil
	}

	sort.Slice(rows, func(i, j int) bool {
		ai, aj := math.Abs(rows[i].Change), math.Abs(rows[j].Change)
		if ai != aj {
			return ai > aj
		}
		return rows[i].Topic < rows[j].Topic
	})

	top := rows[0]
	if math.Abs(top.Change) < MinSentimentShift {
		return models.NullStory(models.StoryShift), nil
	}

	direction := "more positive"
	if top.Change < 0 {
		direction = "more negative"
	}

	return models.Story{
		Type:          models.StoryShift,
		Headline:      fmt.Sprintf("%s %s coverage turned %s this week", reg.Flag(p.Country), top.Topic, direction),
		VizType:       models.VizSentimentChart,
		Payload:       ShiftPayload{Topics: rows},
		ViralityScore: capScore(math.Abs(top.Change)*20, 20),
		Country:       p.Country,
	}, nil
}

func meanSentimentByTopic(articles []models.Article) map[string]float64 {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, a := range articles {
		if a.SentimentScore == nil {
			continue
		}
		sums[a.Topic] += *a.SentimentScore
		counts[a.Topic]++
	}

	means := make(map[string]float64, len(sums))
	for topic, sum := range sums {
		means[topic] = sum / float64(counts[topic])
	}
	return means
}
