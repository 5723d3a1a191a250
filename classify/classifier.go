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


package classify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
)

// DefaultLanguage is used when neither detection nor the caller supplies one.
const DefaultLanguage = "fr"

// Classifier turns raw query text into a classified core.Query: normalized
// text, intent category and language. Language detection is delegated to the
// ai collaborator and is advisory only; a detection failure falls back to the
// declared or default language instead of erroring.
type Classifier struct {
	inference       ai.Inference
	defaultLanguage string
	logger          *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithDefaultLanguage sets the language used when detection fails and the
// caller declared none. Default is "fr".
func WithDefaultLanguage(lang string) Option {
	return func(c *Classifier) error {
		if lang != "" {
			c.defaultLanguage = lang
		}
		return nil
	}
}

// NewClassifier creates a new query classifier. The inference service may be
// nil, in which case language detection is skipped and the declared or
// default language is used directly.
func NewClassifier(inference ai.Inference, opts ...Option) (*Classifier, error) {
	c := &Classifier{
		inference:       inference,
		defaultLanguage: DefaultLanguage,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Classify analyzes the raw query and returns an immutable core.Query.
// declaredLang is the caller's language hint and may be empty.
func (c *Classifier) Classify(ctx context.Context, raw, declaredLang string) (core.Query, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return core.Query{}, core.ErrEmptyQuery
	}

	query := core.Query{
		Raw:        trimmed,
		Normalized: Normalize(trimmed),
		Language:   c.detectLanguage(ctx, trimmed, declaredLang),
		Intent:     ClassifyIntent(trimmed),
	}
	c.logger.Debug("classified query",
		"intent", query.Intent,
		"language", query.Language,
		"normalized", query.Normalized)
	return query, nil
}

// detectLanguage asks the inference collaborator for the query language.
// Failures never propagate; the declared or default language wins.
func (c *Classifier) detectLanguage(ctx context.Context, text, declaredLang string) string {
	fallback := declaredLang
	if fallback == "" {
		fallback = c.defaultLanguage
	}

	if c.inference == nil {
		return fallback
	}

	lang, err := c.inference.DetectLanguage(ctx, text)
	if err != nil || lang == "" {
		c.logger.Warn("language detection failed, using fallback",
			"fallback", fallback, "err", err)
		return fallback
	}
	return lang
}

// ClassifyIntent tests the trimmed, lower-cased query against the intent
// marker tables. Definition markers win over the other question markers so
// "qu'est-ce que X ?" classifies as definition, not fact.
func ClassifyIntent(query string) core.IntentType {
	lower := strings.ToLower(strings.TrimSpace(query))

	for _, marker := range definitionMarkers {
		if strings.Contains(lower, marker) {
			return core.IntentDefinition
		}
	}
	for _, marker := range newsMarkers {
		if strings.Contains(lower, marker) {
			return core.IntentNews
		}
	}
	for _, marker := range howMarkers {
		if strings.Contains(lower, marker) {
			return core.IntentHow
		}
	}
	if strings.HasSuffix(lower, "?") {
		return core.IntentFact
	}
	for _, marker := range factMarkers {
		if strings.HasPrefix(lower, marker+" ") {
			return core.IntentFact
		}
	}
	return core.IntentGeneral
}

// Normalize strips interrogative filler phrases and punctuation so providers
// receive only the subject of the query. Never returns an empty string: if
// stripping empties the result, the trimmed original is returned instead.
func Normalize(query string) string {
	trimmed := strings.TrimSpace(query)
	cleaned := strings.ToLower(trimmed)

	for _, pattern := range fillerPatterns {
		cleaned = pattern.ReplaceAllString(cleaned, " ")
	}
	cleaned = nonWordChars.ReplaceAllString(cleaned, "")
	cleaned = multiSpace.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return trimmed
	}
	return cleaned
}

// NewsCategory maps a query onto a news topic by keyword, or "" when no
// category applies.
func NewsCategory(query string) string {
	lower := strings.ToLower(query)
	for _, category := range newsCategories {
		for _, kw := range category.keywords {
			if strings.Contains(lower, kw) {
				return category.name
			}
		}
	}
	return ""
}
