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


package enrich

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
)

const (
	// MaxSnippetLength bounds the text handed to the model per item.
	MaxSnippetLength = 512

	// DefaultScore is the neutral relevance assigned when inference is
	// skipped or fails for an item.
	DefaultScore = 5.0

	defaultMaxAttempts = 3
	defaultBaseDelay   = 1 * time.Second
	defaultMaxDelay    = 4 * time.Second
)

// Enricher attaches AI-derived summary, relevance score and topics to raw
// results. Failure isolation runs at two levels: a single item's inference
// failure substitutes neutral defaults and processing continues, while a
// systemic fault (cancelled context) aborts the batch and is retried with
// backoff before surfacing.
type Enricher struct {
	inference ai.Inference
	scorer    ai.Scorer
	pool      *ants.Pool
	logger    *slog.Logger

	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

// Option configures an Enricher.
type Option func(*Enricher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enricher) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithConcurrency enriches items on a worker pool of the given size instead
// of sequentially. Input order is preserved regardless.
func WithConcurrency(size int) Option {
	return func(e *Enricher) error {
		if size < 1 {
			size = 1
		}
		if e.pool != nil {
			e.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// WithRetryPolicy overrides the batch retry budget.
// Defaults are 3 attempts, 1s base delay, 4s cap.
func WithRetryPolicy(maxAttempts int, baseDelay, maxDelay time.Duration) Option {
	return func(e *Enricher) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		e.maxAttempts = maxAttempts
		e.baseDelay = baseDelay
		e.maxDelay = maxDelay
		return nil
	}
}

// New creates an enrichment stage. Both collaborators may be nil: a nil
// inference disables the stage entirely, a nil scorer leaves every score at
// the neutral default.
func New(inference ai.Inference, scorer ai.Scorer, opts ...Option) (*Enricher, error) {
	e := &Enricher{
		inference:   inference,
		scorer:      scorer,
		logger:      slog.Default(),
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		maxDelay:    defaultMaxDelay,
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			e.Release()
			return nil, err
		}
	}

	return e, nil
}

// Release releases the worker pool, if any.
func (e *Enricher) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// Enrich processes the batch and returns it stable-sorted by relevance,
// descending. The output always has the same length as the input: every item
// carries either real or default enrichment. An empty input or a missing
// inference collaborator yields an empty output without error.
func (e *Enricher) Enrich(ctx context.Context, query core.Query, results []core.RawResult) ([]core.EnrichedResult, error) {
	if len(results) == 0 || e.inference == nil {
		return []core.EnrichedResult{}, nil
	}

	var enriched []core.EnrichedResult
	batch := func() error {
		out, err := e.enrichBatch(ctx, query, results)
		if err != nil {
			return err
		}
		enriched = out
		return nil
	}

	if err := RetryWithBackoff(ctx, batch, e.maxAttempts, e.baseDelay, e.maxDelay); err != nil {
		return nil, err
	}

	sort.SliceStable(enriched, func(i, j int) bool {
		return enriched[i].RelevanceScore > enriched[j].RelevanceScore
	})
	return enriched, nil
}

func (e *Enricher) enrichBatch(ctx context.Context, query core.Query, results []core.RawResult) ([]core.EnrichedResult, error) {
	out := make([]core.EnrichedResult, len(results))

	if e.pool == nil {
		for i, r := range results {
			item, err := e.enrichOne(ctx, query, r)
			if err != nil {
				return nil, err
			}
			out[i] = item
		}
		return out, nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		batchErr error
	)
	for i, r := range results {
		i, r := i, r
		wg.Add(1)
		submitErr := e.pool.Submit(func() {
			defer wg.Done()
			item, err := e.enrichOne(ctx, query, r)
			if err != nil {
				mu.Lock()
				if batchErr == nil {
					batchErr = err
				}
				mu.Unlock()
				return
			}
			out[i] = item
		})
		if submitErr != nil {
			wg.Done()
			return nil, submitErr
		}
	}
	wg.Wait()

	if batchErr != nil {
		return nil, batchErr
	}
	return out, nil
}

// enrichOne enriches a single result. Inference failures substitute the
// neutral defaults and return no error; only a dead context propagates, since
// that is a batch-level fault and not this item's.
func (e *Enricher) enrichOne(ctx context.Context, query core.Query, r core.RawResult) (core.EnrichedResult, error) {
	defaults := core.EnrichedResult{
		RawResult:      r,
		Summary:        defaultSummary(r.Language),
		RelevanceScore: DefaultScore,
	}

	snippet := truncateSnippet(r.Snippet)
	if snippet == "" {
		return defaults, nil
	}

	summary, err := e.inference.Summarize(ctx, snippet)
	if err != nil {
		if ctx.Err() != nil {
			return defaults, ctx.Err()
		}
		e.logger.Warn("summarization failed, using defaults", "url", r.URL, "err", err)
		return defaults, nil
	}

	score := DefaultScore
	if e.scorer != nil {
		raw, err := e.scorer.Relevance(ctx, query.Normalized, snippet)
		if err != nil {
			if ctx.Err() != nil {
				return defaults, ctx.Err()
			}
			e.logger.Warn("relevance scoring failed, using defaults", "url", r.URL, "err", err)
			return defaults, nil
		}
		score = core.ClampScore(raw)
	}

	return core.EnrichedResult{
		RawResult:      r,
		Summary:        summary,
		RelevanceScore: score,
		Topics:         Topics(snippet, MaxTopics),
		Enriched:       true,
	}, nil
}

func truncateSnippet(snippet string) string {
	snippet = strings.TrimSpace(snippet)
	if len(snippet) > MaxSnippetLength {
		cut := MaxSnippetLength
		// Back off to a rune boundary so accented text is never split
		for cut > 0 && !utf8.RuneStart(snippet[cut]) {
			cut--
		}
		snippet = snippet[:cut]
	}
	return snippet
}

func defaultSummary(lang string) string {
	if lang == "fr" || lang == "" {
		return "Résumé indisponible"
	}
	return "summary unavailable"
}
