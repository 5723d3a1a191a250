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


package openai

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/poiesic/scout/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrEmptyEmbedding indicates the embedding service returned no vectors.
var ErrEmptyEmbedding = errors.New("embedder returned empty result")

// Scorer implements ai.Scorer using OpenAI-compatible embedding APIs.
// Relevance is the cosine similarity between the query and text embeddings,
// scaled to the 0-10 range the pipeline ranks by.
type Scorer struct {
	embedder embeddings.Embedder
	logger   *slog.Logger
}

// newScorer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newScorer(config *ai.Config) (*Scorer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for embeddings
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	// Wrap in langchaingo embedder
	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Scorer{
		embedder: embedder,
		logger:   slog.Default().With("component", "openai-scorer"),
	}, nil
}

// NewScorer creates a new relevance scorer using the provided configuration.
//
// Returns ai.Scorer interface to enforce abstraction.
func NewScorer(config *ai.Config) (ai.Scorer, error) {
	return newScorer(config)
}

// Relevance embeds the query and text and returns their cosine similarity
// scaled to [0, 10]. Negative similarities clamp to 0.
func (s *Scorer) Relevance(ctx context.Context, query, text string) (float64, error) {
	vectors, err := s.embedder.EmbedDocuments(ctx, []string{query, text})
	if err != nil {
		s.logger.Error("failed to embed for relevance", "err", err)
		return 0, err
	}
	if len(vectors) < 2 {
		s.logger.Warn("embedder returned too few vectors", "count", len(vectors))
		return 0, ErrEmptyEmbedding
	}

	similarity := cosineSimilarity(vectors[0], vectors[1])
	score := math.Round(similarity * 10)
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}
	return score, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 for zero-length or mismatched vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
