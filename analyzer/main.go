package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/story-radar/backend/internal/annotate"
	"github.com/story-radar/backend/internal/config"
	"github.com/story-radar/backend/internal/detect"
	"github.com/story-radar/backend/internal/elasticsearch"
	"github.com/story-radar/backend/internal/logger"
	"github.com/story-radar/backend/internal/models"
	"github.com/story-radar/backend/internal/sentiment"
	"github.com/story-radar/backend/internal/taxonomy"
)

// rankedStory is the message published for each ranked story. Downstream
// renderers consume these instead of querying Elasticsearch directly.
type rankedStory struct {
	RunID         string         `json:"run_id"`
	RunAt         time.Time      `json:"run_at"`
	Rank          int            `json:"rank"`
	Type          string         `json:"type"`
	Headline      string         `json:"headline"`
	VizType       string         `json:"viz_type"`
	Payload       any            `json:"payload"`
	ViralityScore float64        `json:"virality_score"`
	Country       models.Country `json:"country,omitempty"`
}

func main() {
	log := logger.New("analyzer")
	cfg, err := config.LoadAnalyzer()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	reg, err := taxonomy.Load(cfg.RegistryPath)
	if err != nil {
		log.Error("load registry", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Retry Elasticsearch connection with backoff
	var esClient *elasticsearch.Client
	maxRetries := 10
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		esClient, err = elasticsearch.New(cfg.ElasticsearchAddr, cfg.ArticleIndex, cfg.StoryIndex, log)
		if err != nil {
			log.Warn("failed to create elasticsearch client, retrying",
				slog.Any("err", err),
				slog.Int("attempt", i+1),
				slog.Int("max_retries", maxRetries),
			)
		} else {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			if pingErr := esClient.Ping(pingCtx); pingErr == nil {
				cancel()
				break
			} else {
				log.Warn("elasticsearch ping failed, retrying",
					slog.Any("err", pingErr),
					slog.Int("attempt", i+1),
					slog.Int("max_retries", maxRetries),
					slog.Duration("retry_in", retryDelay),
				)
			}
			cancel()
		}

		select {
		case <-time.After(retryDelay):
		case <-ctx.Done():
			log.Info("shutdown signal received during startup")
			os.Exit(0)
		}
		retryDelay *= 2
		if retryDelay > 30*time.Second {
			retryDelay = 30 * time.Second
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if esClient == nil || esClient.Ping(pingCtx) != nil {
		log.Error("failed to connect to elasticsearch after retries")
		os.Exit(1)
	}

	log.Info("connected to elasticsearch")

	storyWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.StoriesTopic,
		MaxAttempts: 3,
	})
	defer storyWriter.Close()

	annotator := annotate.New(esClient, sentiment.NewClient(cfg.SentimentAddr), &reg, cfg.AnnotateBatch, log)
	engine := detect.NewEngine(esClient, &reg, log)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	log.Info("analyzer running",
		slog.Duration("interval", cfg.Interval),
		slog.Int("story_limit", cfg.StoryLimit),
		slog.String("stories_topic", cfg.StoriesTopic),
	)

	// Run immediately on start, then on every tick
	runOnce(ctx, log, cfg, &reg, annotator, engine, esClient, storyWriter)

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received")
			return
		case <-ticker.C:
			runOnce(ctx, log, cfg, &reg, annotator, engine, esClient, storyWriter)
		}
	}
}

func runOnce(
	ctx context.Context,
	log *slog.Logger,
	cfg *config.Analyzer,
	reg *taxonomy.Registry,
	annotator *annotate.Annotator,
	engine *detect.Engine,
	esClient *elasticsearch.Client,
	storyWriter *kafka.Writer,
) {
	subCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	annotated, err := annotator.Run(subCtx)
	if err != nil {
		log.Warn("annotation pass failed (will retry on next interval)", slog.Any("err", err))
		return
	}
	log.Info("annotation pass completed", slog.Int("annotated", annotated))

	now := time.Now().UTC()

	// Per-country passes plus the cross-country global pass.
	passes := make([]models.Country, 0, len(reg.Active)+1)
	passes = append(passes, reg.Active...)
	passes = append(passes, "")

	var stories []models.Story
	for _, country := range passes {
		ranked, err := engine.Run(subCtx, country, now, cfg.StoryLimit)
		if err != nil {
			log.Warn("detection pass failed (will retry on next interval)",
				slog.Any("err", err),
				slog.String("country", string(country)),
			)
			return
		}
		log.Info("detection pass completed",
			slog.String("country", string(country)),
			slog.Int("stories", len(ranked)),
		)
		stories = append(stories, ranked...)
	}

	if len(stories) == 0 {
		log.Info("no stories cleared the posting threshold this run")
		return
	}

	runID := uuid.NewString()
	if err := esClient.IndexStories(subCtx, runID, now, stories); err != nil {
		log.Warn("story indexing failed (will retry on next interval)", slog.Any("err", err))
		return
	}

	if err := publishStories(subCtx, storyWriter, runID, now, stories); err != nil {
		log.Warn("story publish failed, stories remain queryable via the API", slog.Any("err", err))
		return
	}

	log.Info("analysis run completed",
		slog.String("run_id", runID),
		slog.Int("stories", len(stories)),
	)
}

func publishStories(ctx context.Context, writer *kafka.Writer, runID string, runAt time.Time, stories []models.Story) error {
	msgs := make([]kafka.Message, 0, len(stories))
	for i, s := range stories {
		value, err := json.Marshal(rankedStory{
			RunID:         runID,
			RunAt:         runAt,
			Rank:          i,
			Type:          string(s.Type),
			Headline:      s.Headline,
			VizType:       s.VizType,
			Payload:       s.Payload,
			ViralityScore: s.ViralityScore,
			Country:       s.Country,
		})
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(runID),
			Value: value,
		})
	}
	return writer.WriteMessages(ctx, msgs...)
}
