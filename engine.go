// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package scout

import (
	"context"
	"log/slog"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/ai/openai"
	"github.com/poiesic/scout/classify"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/enrich"
	"github.com/poiesic/scout/provider"
	"github.com/poiesic/scout/race"
	"github.com/poiesic/scout/search"
	"github.com/poiesic/scout/storage"
	"github.com/poiesic/scout/storage/badger"
)

// Engine wires the full search stack: BadgerDB-backed history, AI provider,
// provider adapters, race, enrichment and the orchestrator.
type Engine struct {
	backend      *badger.Backend
	history      storage.HistoryRepository
	aiProvider   ai.AIProvider
	race         *race.Race
	enricher     *enrich.Enricher
	orchestrator *search.Orchestrator
	logger       *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig    *ai.Config
	gnewsAPIKey string
	inMemory    bool
	source      string
	adapters    *race.AdapterSet
	concurrency int
}

// WithAIConfig sets the AI service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(cfg *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithGNewsAPIKey enables the GNews adapter. Without a key, news queries
// race the remaining providers.
func WithGNewsAPIKey(key string) EngineOption {
	return func(o *engineOptions) {
		o.gnewsAPIKey = key
	}
}

// WithInMemoryStorage keeps the search history in memory instead of on disk,
// mainly for tests.
func WithInMemoryStorage() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// WithSource labels history records with their origin, e.g. "api" or "cli".
func WithSource(source string) EngineOption {
	return func(o *engineOptions) {
		o.source = source
	}
}

// WithAdapters replaces the default provider adapters, mainly for tests.
func WithAdapters(adapters *race.AdapterSet) EngineOption {
	return func(o *engineOptions) {
		o.adapters = adapters
	}
}

// WithEnrichmentConcurrency sets the per-item enrichment worker count.
// Default is 5.
func WithEnrichmentConcurrency(n int) EngineOption {
	return func(o *engineOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// NewEngine creates a fully wired search engine. filePath is the BadgerDB
// directory for the search history; it is ignored with WithInMemoryStorage.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	// Apply options
	options := &engineOptions{
		aiConfig:    ai.DefaultConfig(), // Default if not provided
		source:      "core",
		concurrency: 5,
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create history repository
	history, err := badger.NewHistoryRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	aiProvider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		history.Close()
		backend.Close()
		return nil, err
	}

	classifier, err := classify.NewClassifier(aiProvider.Inference())
	if err != nil {
		aiProvider.Close()
		history.Close()
		backend.Close()
		return nil, err
	}

	adapters := options.adapters
	if adapters == nil {
		adapters = &race.AdapterSet{
			News:       provider.NewGNews(options.gnewsAPIKey),
			Google:     provider.NewGoogle(),
			Bing:       provider.NewBing(),
			DuckDuckGo: provider.NewDuckDuckGo(),
			Wikipedia:  provider.NewWikipedia(),
		}
	}

	providerRace, err := race.New()
	if err != nil {
		aiProvider.Close()
		history.Close()
		backend.Close()
		return nil, err
	}

	enricher, err := enrich.New(aiProvider.Inference(), aiProvider.Scorer(),
		enrich.WithConcurrency(options.concurrency))
	if err != nil {
		providerRace.Release()
		aiProvider.Close()
		history.Close()
		backend.Close()
		return nil, err
	}

	orchestrator, err := search.NewOrchestrator(classifier, adapters, providerRace, enricher,
		search.WithHistory(history),
		search.WithInference(aiProvider.Inference()),
		search.WithSource(options.source))
	if err != nil {
		enricher.Release()
		providerRace.Release()
		aiProvider.Close()
		history.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:      backend,
		history:      history,
		aiProvider:   aiProvider,
		race:         providerRace,
		enricher:     enricher,
		orchestrator: orchestrator,
		logger:       slog.Default(),
	}, nil
}

// Search runs the full pipeline for one query.
func (e *Engine) Search(ctx context.Context, query, searchType string, limit int, criteria core.FilterCriteria) (*core.SearchOutcome, error) {
	return e.orchestrator.Execute(ctx, query, searchType, limit, criteria)
}

// SearchWithMonitor runs the full pipeline with stage callbacks.
func (e *Engine) SearchWithMonitor(ctx context.Context, query, searchType string, limit int, criteria core.FilterCriteria, monitor search.SearchMonitor) (*core.SearchOutcome, error) {
	return e.orchestrator.ExecuteWithMonitor(ctx, query, searchType, limit, criteria, monitor)
}

// Suggest returns query completions for a prefix, merging history and AI.
func (e *Engine) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	return e.orchestrator.Suggest(ctx, prefix, limit)
}

// RecentSearches returns the most recent history records.
func (e *Engine) RecentSearches(ctx context.Context, limit int) ([]*core.SearchRecord, error) {
	return e.history.RecentSearches(ctx, limit)
}

// PopularSearches returns the most searched queries over the past days.
func (e *Engine) PopularSearches(ctx context.Context, days, limit int) ([]core.PopularQuery, error) {
	return e.history.PopularSearches(ctx, days, limit)
}

// SearchTrends returns zero-filled per-day search counts for the past days.
func (e *Engine) SearchTrends(ctx context.Context, days int) ([]core.TrendPoint, error) {
	return e.history.SearchTrends(ctx, days)
}

// History exposes the underlying history repository.
func (e *Engine) History() storage.HistoryRepository {
	return e.history
}

// Close releases every resource the engine owns.
func (e *Engine) Close() error {
	e.enricher.Release()
	e.race.Release()

	if err := e.aiProvider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}
	if err := e.history.Close(); err != nil {
		e.logger.Error("error closing history repository", "err", err)
		return err
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
