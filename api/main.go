package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/story-radar/backend/internal/config"
	"github.com/story-radar/backend/internal/elasticsearch"
	"github.com/story-radar/backend/internal/logger"
	"github.com/story-radar/backend/internal/models"
)

func main() {
	log := logger.New("api")
	cfg, err := config.LoadAPI()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	esClient, err := elasticsearch.New(cfg.ElasticsearchAddr, cfg.ArticleIndex, cfg.StoryIndex, log)
	if err != nil {
		log.Error("init elasticsearch", slog.Any("err", err))
		os.Exit(1)
	}

	srv := &server{log: log, cfg: cfg, store: esClient}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)
	r.Get("/stories", srv.handleStories)
	r.Get("/articles", srv.handleArticles)

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		log.Info("api server starting", slog.String("addr", cfg.BindAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}

// storyStore is the read surface the handlers need from Elasticsearch.
type storyStore interface {
	Health(ctx context.Context) error
	LatestStories(ctx context.Context, country models.Country, limit int) ([]elasticsearch.StoredStory, error)
	SearchArticles(ctx context.Context, q models.ArticleQuery) ([]models.Article, error)
}

type server struct {
	log   *slog.Logger
	cfg   *config.API
	store storyStore
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Health(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStories returns the latest ranked run for one country, or the global
// run when no country is given.
func (s *server) handleStories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var country models.Country
	if raw := strings.TrimSpace(r.URL.Query().Get("country")); raw != "" {
		parsed, err := models.ParseCountry(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		country = parsed
	}

	limit := clampInt(r.URL.Query().Get("limit"), s.cfg.DefaultPage, s.cfg.MaxPage)

	stories, err := s.store.LatestStories(ctx, country, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"stories": stories})
}

func (s *server) handleArticles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := models.ArticleQuery{
		Start: parseTime(r.URL.Query().Get("start")),
		End:   parseTime(r.URL.Query().Get("end")),
		Size:  clampInt(r.URL.Query().Get("size"), s.cfg.DefaultPage, s.cfg.MaxPage),
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("country")); raw != "" {
		country, err := models.ParseCountry(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		q.Country = country
	}

	switch strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("scope"))) {
	case "":
	case string(models.ScopeLocal):
		q.Scope = models.ScopeLocal
	case string(models.ScopeGlobal):
		q.Scope = models.ScopeGlobal
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "scope must be LOCAL or GLOBAL"})
		return
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("min_viral")); raw != "" {
		minViral, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "min_viral must be a number"})
			return
		}
		q.MinViralScore = &minViral
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("annotated")); raw != "" {
		annotated, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "annotated must be a boolean"})
			return
		}
		q.Annotated = &annotated
	}

	articles, err := s.store.SearchArticles(ctx, q)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"articles": articles})
}

func parseTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return &ts
	}
	return nil
}

func clampInt(raw string, fallback, max int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if value <= 0 {
		return fallback
	}
	if value > max {
		return max
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// nothing better to do
	}
}
