package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"

	"github.com/story-radar/backend/internal/models"
)

// Client wraps go-elasticsearch with helpers for the article and story
// indices.
type Client struct {
	es           *elasticsearch.Client
	articleIndex string
	storyIndex   string
	log          *slog.Logger
}

// StoredStory is a story document as persisted per detection run.
type StoredStory struct {
	ID            string           `json:"id"`
	RunID         string           `json:"run_id"`
	RunAt         time.Time        `json:"run_at"`
	Rank          int              `json:"rank"`
	Type          models.StoryType `json:"type"`
	Headline      string           `json:"headline"`
	VizType       string           `json:"viz_type"`
	Payload       json.RawMessage  `json:"payload,omitempty"`
	ViralityScore float64          `json:"virality_score"`
	Country       models.Country   `json:"country,omitempty"`
}

// New instantiates the Elasticsearch client.
func New(addr, articleIndex, storyIndex string, logger *slog.Logger) (*Client, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{addr},
	}

	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{es: es, articleIndex: articleIndex, storyIndex: storyIndex, log: logger}, nil
}

// Ping checks if Elasticsearch is available.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ping elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping failed: %s", res.Status())
	}

	return nil
}

// Health pings the cluster to ensure connectivity.
func (c *Client) Health(ctx context.Context) error {
	res, err := c.es.Cluster.Health(c.es.Cluster.Health.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(res.Body)
		return fmt.Errorf("cluster health bad: %s", strings.TrimSpace(string(data)))
	}
	return nil
}

// IndexArticle writes a raw article document. The deterministic article ID
// makes re-ingestion of the same (country, url) pair overwrite in place.
func (c *Client) IndexArticle(ctx context.Context, article models.Article) error {
	payload, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("marshal article: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      c.articleIndex,
		DocumentID: article.ID,
		Body:       bytes.NewReader(payload),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("index article: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("index article failed: %s", strings.TrimSpace(string(body)))
	}

	return nil
}

// SearchArticles executes a bool query built from the ArticleQuery filters.
func (c *Client) SearchArticles(ctx context.Context, q models.ArticleQuery) ([]models.Article, error) {
	if q.Size <= 0 {
		q.Size = 1000
	}
	if q.Size > 10000 {
		q.Size = 10000
	}

	filters := make([]map[string]any, 0, 4)
	var mustNot []map[string]any

	if q.Start != nil || q.End != nil {
		rangeQuery := map[string]any{}
		if q.Start != nil {
			rangeQuery["gte"] = q.Start.UTC().Format(time.RFC3339)
		}
		if q.End != nil {
			rangeQuery["lt"] = q.End.UTC().Format(time.RFC3339)
		}
		filters = append(filters, map[string]any{
			"range": map[string]any{"fetched_at": rangeQuery},
		})
	}

	if q.Country != "" {
		filters = append(filters, map[string]any{
			"term": map[string]any{"country": q.Country},
		})
	}

	if q.Scope != "" {
		filters = append(filters, map[string]any{
			"term": map[string]any{"scope": q.Scope},
		})
	}

	if q.MinViralScore != nil {
		filters = append(filters, map[string]any{
			"range": map[string]any{"viral_score": map[string]any{"gte": *q.MinViralScore}},
		})
	}

	if q.Annotated != nil {
		exists := map[string]any{"exists": map[string]any{"field": "topic"}}
		if *q.Annotated {
			filters = append(filters, exists)
		} else {
			mustNot = append(mustNot, exists)
		}
	}

	boolQuery := map[string]any{}
	if len(filters) > 0 {
		boolQuery["filter"] = filters
	}
	if len(mustNot) > 0 {
		boolQuery["must_not"] = mustNot
	}
	if len(filters) == 0 && len(mustNot) == 0 {
		boolQuery["must"] = []map[string]any{
			{"match_all": map[string]any{}},
		}
	}

	body := map[string]any{
		"size":             q.Size,
		"track_total_hits": false,
		"query":            map[string]any{"bool": boolQuery},
		"sort": []map[string]any{
			{"fetched_at": map[string]any{"order": "desc"}},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.articleIndex),
		c.es.Search.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		data, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search articles failed: %s", strings.TrimSpace(string(data)))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source models.Article `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	items := make([]models.Article, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		items = append(items, hit.Source)
	}

	return items, nil
}

// UpdateAnnotation writes the full annotation field set onto one article.
// All five fields land in a single update, so a row is either fully
// annotated or untouched.
func (c *Client) UpdateAnnotation(ctx context.Context, id string, ann models.Annotation) error {
	doc := map[string]any{
		"doc": map[string]any{
			"topic":           ann.Topic,
			"scope":           ann.Scope,
			"sentiment":       ann.Sentiment,
			"sentiment_score": ann.SentimentScore,
			"viral_score":     ann.ViralScore,
		},
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal annotation: %w", err)
	}

	req := esapi.UpdateRequest{
		Index:      c.articleIndex,
		DocumentID: id,
		Body:       bytes.NewReader(payload),
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("update annotation %s: %w", id, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("update annotation %s failed: %s", id, strings.TrimSpace(string(body)))
	}

	return nil
}

// IndexStories persists one detection run's ranked story list. Rank keeps
// the ranking order for readers.
func (c *Client) IndexStories(ctx context.Context, runID string, runAt time.Time, stories []models.Story) error {
	for rank, story := range stories {
		raw, err := json.Marshal(story.Payload)
		if err != nil {
			return fmt.Errorf("marshal story payload: %w", err)
		}

		doc := StoredStory{
			ID:            uuid.NewString(),
			RunID:         runID,
			RunAt:         runAt.UTC(),
			Rank:          rank,
			Type:          story.Type,
			Headline:      story.Headline,
			VizType:       story.VizType,
			Payload:       raw,
			ViralityScore: story.ViralityScore,
			Country:       story.Country,
		}

		payload, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal story: %w", err)
		}

		req := esapi.IndexRequest{
			Index:      c.storyIndex,
			DocumentID: doc.ID,
			Body:       bytes.NewReader(payload),
			Refresh:    "false",
		}

		res, err := req.Do(ctx, c.es)
		if err != nil {
			return fmt.Errorf("index story: %w", err)
		}
		if res.IsError() {
			body, _ := io.ReadAll(res.Body)
			res.Body.Close()
			return fmt.Errorf("index story failed: %s", strings.TrimSpace(string(body)))
		}
		res.Body.Close()
	}

	return nil
}

// LatestStories returns the ranked stories of the most recent run matching
// the optional country filter ("" selects the global run).
func (c *Client) LatestStories(ctx context.Context, country models.Country, limit int) ([]StoredStory, error) {
	if limit <= 0 {
		limit = 4
	}

	countryFilter := map[string]any{
		"bool": map[string]any{
			"must_not": []map[string]any{
				{"exists": map[string]any{"field": "country"}},
			},
		},
	}
	if country != "" {
		countryFilter = map[string]any{
			"term": map[string]any{"country": country},
		}
	}

	latest, err := c.searchStories(ctx, map[string]any{
		"size":  1,
		"query": map[string]any{"bool": map[string]any{"filter": []map[string]any{countryFilter}}},
		"sort": []map[string]any{
			{"run_at": map[string]any{"order": "desc"}},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(latest) == 0 {
		return nil, nil
	}

	return c.searchStories(ctx, map[string]any{
		"size": limit,
		"query": map[string]any{
			"bool": map[string]any{
				"filter": []map[string]any{
					{"term": map[string]any{"run_id": latest[0].RunID}},
					countryFilter,
				},
			},
		},
		"sort": []map[string]any{
			{"rank": map[string]any{"order": "asc"}},
		},
	})
}

func (c *Client) searchStories(ctx context.Context, body map[string]any) ([]StoredStory, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal story search body: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.storyIndex),
		c.es.Search.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		return nil, fmt.Errorf("search stories: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		data, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search stories failed: %s", strings.TrimSpace(string(data)))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source StoredStory `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode story response: %w", err)
	}

	items := make([]StoredStory, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		items = append(items, hit.Source)
	}

	return items, nil
}

// DeleteArticlesOlderThan removes article documents past the retention age.
func (c *Client) DeleteArticlesOlderThan(ctx context.Context, maxAge time.Duration, batchSize int) (int64, error) {
	return c.deleteOlderThan(ctx, c.articleIndex, "fetched_at", maxAge, batchSize)
}

// DeleteStoriesOlderThan removes story documents past the retention age.
func (c *Client) DeleteStoriesOlderThan(ctx context.Context, maxAge time.Duration, batchSize int) (int64, error) {
	return c.deleteOlderThan(ctx, c.storyIndex, "run_at", maxAge, batchSize)
}

// deleteOlderThan removes documents older than maxAge using batched
// delete-by-query, looping until a batch deletes fewer than batchSize.
func (c *Client) deleteOlderThan(ctx context.Context, index, field string, maxAge time.Duration, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = 1000
	}

	cutoff := time.Now().Add(-maxAge).UTC().Format(time.RFC3339)
	totalDeleted := int64(0)

	for {
		body := map[string]any{
			"query": map[string]any{
				"range": map[string]any{
					field: map[string]any{"lte": cutoff},
				},
			},
		}

		payload, err := json.Marshal(body)
		if err != nil {
			return totalDeleted, fmt.Errorf("marshal delete body: %w", err)
		}

		res, err := c.es.DeleteByQuery(
			[]string{index},
			bytes.NewReader(payload),
			c.es.DeleteByQuery.WithContext(ctx),
			c.es.DeleteByQuery.WithWaitForCompletion(true),
			c.es.DeleteByQuery.WithConflicts("proceed"),
			c.es.DeleteByQuery.WithScrollSize(batchSize),
		)
		if err != nil {
			return totalDeleted, fmt.Errorf("delete by query: %w", err)
		}

		if res.IsError() {
			data, _ := io.ReadAll(res.Body)
			res.Body.Close()
			return totalDeleted, fmt.Errorf("delete by query failed: %s", strings.TrimSpace(string(data)))
		}

		var parsed struct {
			Deleted int64 `json:"deleted"`
		}
		if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
			res.Body.Close()
			return totalDeleted, fmt.Errorf("decode delete response: %w", err)
		}
		res.Body.Close()

		totalDeleted += parsed.Deleted

		if parsed.Deleted < int64(batchSize) {
			break
		}
	}

	return totalDeleted, nil
}
