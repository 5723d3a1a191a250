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


package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/classify"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/enrich"
	"github.com/poiesic/scout/filter"
	"github.com/poiesic/scout/race"
	"github.com/poiesic/scout/storage"
)

// Orchestrator sequences the search pipeline: classification, provider race,
// filtering, enrichment. It holds no per-call state, so a single instance is
// safe to use from concurrent searches.
type Orchestrator struct {
	classifier *classify.Classifier
	adapters   *race.AdapterSet
	race       *race.Race
	enricher   *enrich.Enricher
	history    storage.HistoryRepository
	inference  ai.Inference
	source     string
	logger     *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithHistory enables search history recording. Without it the pipeline runs
// statelessly.
func WithHistory(history storage.HistoryRepository) Option {
	return func(o *Orchestrator) error {
		o.history = history
		return nil
	}
}

// WithInference enables AI-backed suggestions in Suggest.
func WithInference(inference ai.Inference) Option {
	return func(o *Orchestrator) error {
		o.inference = inference
		return nil
	}
}

// WithSource labels history records with where searches come from, e.g.
// "api" or "cli". Default is "core".
func WithSource(source string) Option {
	return func(o *Orchestrator) error {
		if source != "" {
			o.source = source
		}
		return nil
	}
}

// NewOrchestrator creates a search orchestrator.
func NewOrchestrator(
	classifier *classify.Classifier,
	adapters *race.AdapterSet,
	providerRace *race.Race,
	enricher *enrich.Enricher,
	opts ...Option,
) (*Orchestrator, error) {
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if adapters == nil {
		return nil, ErrAdapterSetRequired
	}
	if providerRace == nil {
		return nil, ErrRaceRequired
	}
	if enricher == nil {
		return nil, ErrEnricherRequired
	}

	o := &Orchestrator{
		classifier: classifier,
		adapters:   adapters,
		race:       providerRace,
		enricher:   enricher,
		source:     "core",
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Execute runs the full pipeline for one query and returns the outcome.
func (o *Orchestrator) Execute(ctx context.Context, rawQuery, searchType string, limit int, criteria core.FilterCriteria) (*core.SearchOutcome, error) {
	return o.ExecuteWithMonitor(ctx, rawQuery, searchType, limit, criteria, nil)
}

// ExecuteWithMonitor runs the full pipeline with stage callbacks.
//
// The search is recorded in history before the pipeline runs; on success the
// record gets its result count, on failure it is deleted so no dangling entry
// points at a search that never answered.
func (o *Orchestrator) ExecuteWithMonitor(ctx context.Context, rawQuery, searchType string, limit int, criteria core.FilterCriteria, monitor SearchMonitor) (*core.SearchOutcome, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if err := core.ValidateQueryText(rawQuery); err != nil {
		return nil, err
	}
	limit = core.ClampLimit(limit)
	criteria = core.NormalizeFilters(criteria)
	monitor.Start(rawQuery)

	query, err := o.classifier.Classify(ctx, rawQuery, criteria.Language)
	if err != nil {
		return nil, fmt.Errorf("classifying query: %w", err)
	}
	monitor.AfterClassification(query)

	recordID := o.recordStart(ctx, rawQuery, searchType, criteria)

	// An explicit news search wants the news candidate set regardless of
	// how the query text classified.
	intent := query.Intent
	if searchType == "news" {
		intent = core.IntentNews
	}
	category := criteria.Category
	if category == "" {
		category = classify.NewsCategory(query.Normalized)
	}
	candidates := o.adapters.Candidates(intent, category)

	raw := o.race.Run(ctx, candidates, query.Normalized, limit, query.Language)
	monitor.AfterRace(raw)

	filtered := filter.Apply(raw, criteria)
	monitor.AfterFilter(filtered)

	enriched, err := o.enricher.Enrich(ctx, query, filtered)
	if err != nil {
		o.rollback(recordID)
		return nil, fmt.Errorf("enriching results: %w", err)
	}

	outcome := &core.SearchOutcome{
		Query:   query,
		Filters: criteria,
		Results: enriched,
		Count:   len(enriched),
	}
	o.recordFinish(ctx, recordID, outcome.Count)
	monitor.Finish(outcome)
	return outcome, nil
}

// Suggest merges past queries matching the prefix with AI completions,
// deduplicated case-insensitively, history first. Either source failing is
// logged and skipped, so suggestions degrade instead of erroring.
func (o *Orchestrator) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit < 1 {
		limit = core.DefaultLimit
	}

	seen := make(map[string]bool)
	suggestions := make([]string, 0, limit)
	appendDistinct := func(candidates []string) {
		for _, c := range candidates {
			c = strings.TrimSpace(c)
			key := strings.ToLower(c)
			if c == "" || seen[key] || len(suggestions) == limit {
				continue
			}
			seen[key] = true
			suggestions = append(suggestions, c)
		}
	}

	if o.history != nil {
		fromHistory, err := o.history.Suggestions(ctx, prefix, limit)
		if err != nil {
			o.logger.Warn("history suggestions failed", "err", err)
		} else {
			appendDistinct(fromHistory)
		}
	}

	if o.inference != nil && len(suggestions) < limit {
		fromAI, err := o.inference.Suggest(ctx, prefix, limit-len(suggestions))
		if err != nil {
			o.logger.Warn("AI suggestions failed", "err", err)
		} else {
			appendDistinct(fromAI)
		}
	}

	return suggestions, nil
}

// recordStart inserts the in-flight history record. A persistence failure is
// logged, not fatal: the search still runs, it just leaves no trace.
func (o *Orchestrator) recordStart(ctx context.Context, rawQuery, searchType string, criteria core.FilterCriteria) core.ID {
	if o.history == nil {
		return 0
	}
	if searchType == "" {
		searchType = "text"
	}

	id, err := o.history.StartSearch(ctx, &core.SearchRecord{
		Query:      rawQuery,
		SearchType: searchType,
		Source:     o.source,
		Filters:    criteria,
		Timestamp:  time.Now().UTC(),
	})
	if err != nil {
		o.logger.Warn("failed to record search start", "query", rawQuery, "err", err)
		return 0
	}
	return id
}

func (o *Orchestrator) recordFinish(ctx context.Context, id core.ID, count int) {
	if o.history == nil || id == 0 {
		return
	}
	if err := o.history.FinishSearch(ctx, id, count); err != nil {
		o.logger.Warn("failed to record search outcome", "id", id, "err", err)
	}
}

// rollback deletes the in-flight record after a pipeline failure. Uses a
// fresh context: the search context is usually already dead at this point.
func (o *Orchestrator) rollback(id core.ID) {
	if o.history == nil || id == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := o.history.DeleteSearch(ctx, id); err != nil {
		o.logger.Error("failed to roll back search record", "id", id, "err", err)
	}
}
