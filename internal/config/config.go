package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Common contains Elasticsearch parameters shared by every service.
type Common struct {
	ElasticsearchAddr string
	ArticleIndex      string
	StoryIndex        string
}

// Worker holds configuration for the Kafka -> Elasticsearch ingestion worker.
type Worker struct {
	Common
	KafkaBrokers   []string
	KafkaTopic     string
	KafkaConsumer  string
	DedupeCapacity int
	DedupeTTL      time.Duration
	BatchSize      int
	CommitInterval time.Duration
}

// Analyzer configures the annotation and detection loop.
type Analyzer struct {
	Common
	Interval      time.Duration
	KafkaBrokers  []string
	StoriesTopic  string
	SentimentAddr string
	RegistryPath  string
	StoryLimit    int
	AnnotateBatch int
}

// API describes HTTP-layer configuration.
type API struct {
	Common
	BindAddr    string
	DefaultPage int
	MaxPage     int
}

// Retention configures the cleanup loop.
type Retention struct {
	Common
	Interval      time.Duration
	ArticleMaxAge time.Duration
	StoryMaxAge   time.Duration
	BatchSize     int
}

func loadCommon() Common {
	return Common{
		ElasticsearchAddr: getEnv("ELASTICSEARCH_ADDR", "http://elasticsearch:9200"),
		ArticleIndex:      getEnv("ARTICLE_INDEX", "articles"),
		StoryIndex:        getEnv("STORY_INDEX", "stories"),
	}
}

// LoadWorker builds a Worker config from environment variables.
func LoadWorker() (*Worker, error) {
	c := &Worker{
		Common:         loadCommon(),
		KafkaBrokers:   splitAndTrim(getEnv("KAFKA_BROKERS", "kafka:9092")),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "articles_raw"),
		KafkaConsumer:  getEnv("KAFKA_CONSUMER_GROUP", "article-worker"),
		DedupeCapacity: getInt("WORKER_DEDUPE_CAPACITY", 20000),
		DedupeTTL:      getDuration("WORKER_DEDUPE_TTL", "24h"),
		BatchSize:      getInt("WORKER_BATCH_SIZE", 10),
		CommitInterval: getDuration("WORKER_COMMIT_INTERVAL", "2s"),
	}

	if len(c.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS must contain at least one broker")
	}
	if c.BatchSize <= 0 {
		return nil, fmt.Errorf("WORKER_BATCH_SIZE must be positive")
	}
	if c.DedupeCapacity <= 0 {
		return nil, fmt.Errorf("WORKER_DEDUPE_CAPACITY must be positive")
	}

	return c, nil
}

// LoadAnalyzer builds an Analyzer config from environment variables.
func LoadAnalyzer() (*Analyzer, error) {
	c := &Analyzer{
		Common:        loadCommon(),
		Interval:      getDuration("ANALYZER_INTERVAL", "1h"),
		KafkaBrokers:  splitAndTrim(getEnv("KAFKA_BROKERS", "kafka:9092")),
		StoriesTopic:  getEnv("KAFKA_STORIES_TOPIC", "stories_ranked"),
		SentimentAddr: getEnv("SENTIMENT_ADDR", "http://sentiment:5000"),
		RegistryPath:  getEnv("REGISTRY_PATH", ""),
		StoryLimit:    getInt("ANALYZER_STORY_LIMIT", 4),
		AnnotateBatch: getInt("ANALYZER_ANNOTATE_BATCH", 200),
	}

	if c.Interval <= 0 {
		return nil, fmt.Errorf("ANALYZER_INTERVAL must be positive")
	}
	if len(c.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS must contain at least one broker")
	}
	if c.StoryLimit <= 0 {
		return nil, fmt.Errorf("ANALYZER_STORY_LIMIT must be positive")
	}
	if c.AnnotateBatch <= 0 {
		return nil, fmt.Errorf("ANALYZER_ANNOTATE_BATCH must be positive")
	}

	return c, nil
}

// LoadAPI builds an API config from environment variables.
func LoadAPI() (*API, error) {
	c := &API{
		Common:      loadCommon(),
		BindAddr:    getEnv("API_BIND_ADDR", "0.0.0.0:8080"),
		DefaultPage: getInt("API_PAGE_SIZE", 20),
		MaxPage:     getInt("API_MAX_PAGE_SIZE", 100),
	}

	if c.DefaultPage <= 0 {
		return nil, fmt.Errorf("API_PAGE_SIZE must be positive")
	}
	if c.MaxPage <= 0 {
		return nil, fmt.Errorf("API_MAX_PAGE_SIZE must be positive")
	}
	if c.DefaultPage > c.MaxPage {
		return nil, fmt.Errorf("API_PAGE_SIZE cannot exceed API_MAX_PAGE_SIZE")
	}

	return c, nil
}

// LoadRetention builds a Retention config from environment variables.
func LoadRetention() (*Retention, error) {
	c := &Retention{
		Common:        loadCommon(),
		Interval:      getDuration("RETENTION_CRON", "24h"),
		ArticleMaxAge: getDuration("RETENTION_ARTICLE_MAX_AGE", "720h"),
		StoryMaxAge:   getDuration("RETENTION_STORY_MAX_AGE", "2160h"),
		BatchSize:     getInt("RETENTION_BATCH_SIZE", 500),
	}

	if c.Interval <= 0 {
		return nil, fmt.Errorf("RETENTION_CRON must be positive")
	}
	if c.ArticleMaxAge <= 0 {
		return nil, fmt.Errorf("RETENTION_ARTICLE_MAX_AGE must be positive")
	}
	if c.StoryMaxAge <= 0 {
		return nil, fmt.Errorf("RETENTION_STORY_MAX_AGE must be positive")
	}
	if c.BatchSize <= 0 {
		return nil, fmt.Errorf("RETENTION_BATCH_SIZE must be positive")
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
