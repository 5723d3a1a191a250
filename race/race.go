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


package race

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/provider"
)

const (
	// DefaultTimeout bounds each candidate's fetch call.
	DefaultTimeout = 10 * time.Second

	// DefaultPoolSize caps concurrent candidate fetches.
	DefaultPoolSize = 5
)

// Race obtains a usable result set from several candidate providers with
// minimal latency and full fault tolerance. All candidates are invoked
// concurrently; the first to complete with a non-empty result set wins, in
// completion order, not priority order. Stragglers are cancelled and their
// late results discarded. When every candidate comes back empty, errors or
// times out, the race manufactures a single synthetic fallback result so the
// pipeline never returns a totally empty answer.
type Race struct {
	pool    *ants.Pool
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Race.
type Option func(*Race) error

// WithTimeout sets the per-candidate fetch timeout.
// Default is DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Race) error {
		if timeout > 0 {
			r.timeout = timeout
		}
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent candidate fetches.
// Default is DefaultPoolSize.
func WithPoolSize(size int) Option {
	return func(r *Race) error {
		if size < 1 {
			size = 1
		}
		if r.pool != nil {
			r.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Race) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// New creates a provider race with a bounded worker pool.
func New(opts ...Option) (*Race, error) {
	pool, err := ants.NewPool(DefaultPoolSize)
	if err != nil {
		return nil, err
	}

	r := &Race{
		pool:    pool,
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			r.Release()
			return nil, err
		}
	}

	return r, nil
}

// completion is one candidate's finished contribution.
type completion struct {
	name    string
	results []core.RawResult
}

// Run races the candidates for the query and returns the winning result set,
// truncated to limit. It never returns an empty slice: total exhaustion
// yields the synthetic fallback. Run is safe for concurrent use.
func (r *Race) Run(ctx context.Context, candidates []provider.Adapter, query string, limit int, lang string) []core.RawResult {
	if limit < 1 {
		limit = core.DefaultLimit
	}
	if len(candidates) == 0 {
		r.logger.Warn("no candidates selected, falling back", "query", query)
		return []core.RawResult{SyntheticFallback(query, lang)}
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered to candidate count so abandoned candidates never block on
	// send and every worker slot is released.
	completions := make(chan completion, len(candidates))

	for _, candidate := range candidates {
		r.submit(raceCtx, candidate, query, limit, lang, completions)
	}

	for range candidates {
		c := <-completions
		if len(c.results) == 0 {
			continue
		}
		r.logger.Debug("candidate won the race", "provider", c.name, "results", len(c.results))
		if len(c.results) > limit {
			c.results = c.results[:limit]
		}
		return c.results
	}

	r.logger.Info("all providers exhausted, returning synthetic fallback", "query", query)
	return []core.RawResult{SyntheticFallback(query, lang)}
}

// submit schedules one candidate fetch on the pool. A candidate that errors,
// panics or is rejected by the pool contributes an empty completion; a single
// provider's failure must never fail the overall search.
func (r *Race) submit(ctx context.Context, candidate provider.Adapter, query string, limit int, lang string, completions chan<- completion) {
	name := candidate.Name()
	err := r.pool.Submit(func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("provider panicked", "provider", name, "panic", rec)
				completions <- completion{name: name}
			}
		}()

		fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		results, err := candidate.Fetch(fetchCtx, query, limit, lang)
		if err != nil {
			r.logger.Warn("provider failed", "provider", name, "err", err)
			completions <- completion{name: name}
			return
		}
		completions <- completion{name: name, results: results}
	})
	if err != nil {
		r.logger.Error("failed to submit provider fetch", "provider", name, "err", err)
		completions <- completion{name: name}
	}
}

// Release releases the worker pool.
// The race should not be used after calling Release.
func (r *Race) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// SyntheticFallback manufactures the single result returned when every
// provider fails, so the caller still receives an answer shaped like a
// search hit.
func SyntheticFallback(query, lang string) core.RawResult {
	if lang == "" || lang == "any" {
		lang = "fr"
	}
	trimmed := strings.TrimSpace(query)
	capitalized := trimmed
	if capitalized != "" {
		capitalized = strings.ToUpper(capitalized[:1]) + capitalized[1:]
	}

	return core.RawResult{
		Title:    fmt.Sprintf("Définition de %s", trimmed),
		URL:      fmt.Sprintf("https://%s.wikipedia.org/wiki/%s", lang, url.PathEscape(strings.ReplaceAll(trimmed, " ", "_"))),
		Snippet:  fmt.Sprintf("%s est un concept dont la définition peut varier selon le contexte.", capitalized),
		Source:   "fallback",
		Language: lang,
	}
}
