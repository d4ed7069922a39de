package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/levelup-labs/jobscout/internal/ai"
	"github.com/levelup-labs/jobscout/internal/ai/gemini"
	"github.com/levelup-labs/jobscout/internal/jobs"
	"github.com/levelup-labs/jobscout/internal/search"
	"github.com/levelup-labs/jobscout/internal/search/tavily"
	"github.com/levelup-labs/jobscout/internal/secrets"
	"github.com/levelup-labs/jobscout/internal/session"
)

const defaultSessionTTL = 30 * time.Minute

func newSearcher(cfg *SearchConfig, logger *zap.Logger) (search.Searcher, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "tavily" {
		return nil, fmt.Errorf("unsupported search provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "tavily api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   "TAVILY_API_KEY",
	})
	if err != nil {
		return nil, err
	}

	return tavily.New(apiKey, logger), nil
}

func newGenerator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Generator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, err
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Gemini.Model),
	)

	return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
}

func newPipeline(config *Config, searcher search.Searcher, generator ai.Generator, logger *zap.Logger) *jobs.Pipeline {
	var enricher jobs.Enricher = jobs.TemplateEnricher{}
	if config.AI.Summaries {
		enricher = jobs.NewGenerativeEnricher(generator, logger)
	}

	return &jobs.Pipeline{
		Searcher:   searcher,
		Enricher:   enricher,
		MaxResults: config.Search.MaxResults,
		Topic:      config.Search.Topic,
		Timeout:    time.Duration(config.Search.TimeoutSec) * time.Second,
		MaxRetries: config.Search.MaxRetries,
		Logger:     logger,
	}
}

func newSessionStore(ctx context.Context, cfg *SessionConfig) (session.Store, error) {
	ttl := defaultSessionTTL
	if cfg.TTLMinutes > 0 {
		ttl = time.Duration(cfg.TTLMinutes) * time.Minute
	}

	storeType := session.StoreType(strings.TrimSpace(strings.ToLower(cfg.Store)))
	if storeType == "" {
		storeType = session.InMemoryStore
	}

	var redisOpts *session.RedisOptions
	if cfg.Redis != nil {
		redisOpts = &session.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
	}

	return session.NewStore(ctx, storeType, ttl, redisOpts)
}

func sessionSecret(cfg *SessionConfig) (string, error) {
	return secrets.Load(secrets.Source{
		Name:  "session secret",
		Value: cfg.Secret,
		File:  cfg.SecretFile,
		Env:   "SESSION_SECRET",
	})
}
