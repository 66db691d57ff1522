package main

import (
	"context"
	"fmt"

	"github.com/jonathan/skill-extractor/internal/cache"
	"github.com/jonathan/skill-extractor/internal/config"
	"github.com/jonathan/skill-extractor/internal/db"
	"github.com/jonathan/skill-extractor/internal/extraction"
	"github.com/jonathan/skill-extractor/internal/knowledge"
	"github.com/jonathan/skill-extractor/internal/llm"
	"github.com/jonathan/skill-extractor/internal/logger"
	"go.uber.org/zap"
)

// app holds the components shared by the commands.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	source  knowledge.Source
	store   *knowledge.Store
	engine  *extraction.Engine
	closers []func()
}

// loadConfig reads the config file and environment and applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if debugLogs {
		cfg.Log.Debug = true
	}
	if jsonLogs {
		cfg.Log.JSON = true
	}
	return cfg, nil
}

// newApp wires the knowledge source, AI client and engine from cfg.
func newApp(ctx context.Context, cfg *config.Config) (_ *app, err error) {
	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{cfg: cfg, log: log}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	if a.source, err = a.knowledgeSource(ctx); err != nil {
		return nil, err
	}
	snapshot, err := a.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge from %s: %w", a.source.Name(), err)
	}
	a.store = knowledge.NewStore(snapshot)

	client, err := a.aiClient(ctx)
	if err != nil {
		return nil, err
	}

	engineLog := log
	if client != nil {
		engineLog = logger.WithAI(log, cfg.LLM.Provider, client.GetModel(cfg.ModelTier()))
	}
	a.engine, err = extraction.NewEngine(a.store, extraction.Config{
		ConfidenceThreshold: cfg.Extraction.ConfidenceThreshold,
		ContextWindowSize:   cfg.Extraction.ContextWindowSize,
		AITimeout:           cfg.Extraction.AITimeout,
		Tier:                cfg.ModelTier(),
	}, client, engineLog)
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction engine: %w", err)
	}

	log.Debug("extractor ready",
		zap.String(logger.FieldKnowledge, snapshot.Version),
		zap.String("knowledge_source", a.source.Name()),
		zap.Bool("ai_enabled", a.engine.AIEnabled()),
	)
	return a, nil
}

// knowledgeSource picks the database when configured, otherwise files or
// the embedded defaults.
func (a *app) knowledgeSource(ctx context.Context) (knowledge.Source, error) {
	if a.cfg.Knowledge.DatabaseURL == "" {
		return &knowledge.FileSource{
			OntologyFile: a.cfg.Knowledge.OntologyFile,
			TrendingFile: a.cfg.Knowledge.TrendingFile,
		}, nil
	}

	database, err := db.Connect(ctx, a.cfg.Knowledge.DatabaseURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, database.Close)
	return &knowledge.DBSource{DB: database}, nil
}

// aiClient returns the cached AI client, or nil when the AI signal is off.
func (a *app) aiClient(ctx context.Context) (llm.Client, error) {
	if !a.cfg.AIActive() {
		return nil, nil
	}

	llmCfg, err := a.cfg.LLMClientConfig()
	if err != nil {
		return nil, err
	}
	client, err := llm.NewClient(ctx, llmCfg, a.cfg.LLM.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	replies := cache.New(ctx, cache.Options{
		RedisURL:   a.cfg.Cache.RedisURL,
		TTL:        a.cfg.Cache.TTL,
		MaxEntries: a.cfg.Cache.MaxEntries,
	}, a.log)

	cached := llm.NewCachedClient(client, replies)
	a.closers = append(a.closers, func() {
		_ = cached.Close()
		_ = replies.Close()
	})
	return cached, nil
}

// Close releases everything newApp opened, most recent first.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	if a.log != nil {
		_ = a.log.Sync()
	}
}
