package mock

import (
	"context"
	"strings"
	"sync/atomic"
)

// MockScorer is a test double for ai.Scorer.
// It allows custom behavior injection via function fields.
type MockScorer struct {
	// RelevanceFunc is called by Relevance if set.
	// If nil, uses default word-overlap scoring.
	RelevanceFunc func(ctx context.Context, query, text string) (float64, error)

	// Atomic: the enrichment stage scores items from concurrent workers.
	callCount atomic.Int64
}

// NewMockScorer creates a mock scorer with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via GetMockScorer().
func NewMockScorer() *MockScorer {
	return &MockScorer{}
}

// Relevance scores by the fraction of query words present in the text,
// scaled to 0-10. Deterministic for a given input pair.
func (m *MockScorer) Relevance(ctx context.Context, query, text string) (float64, error) {
	m.callCount.Add(1)

	if m.RelevanceFunc != nil {
		return m.RelevanceFunc(ctx, query, text)
	}

	queryWords := strings.Fields(strings.ToLower(query))
	if len(queryWords) == 0 {
		return 0, nil
	}

	lowerText := strings.ToLower(text)
	matched := 0
	for _, w := range queryWords {
		if strings.Contains(lowerText, w) {
			matched++
		}
	}
	return float64(matched) / float64(len(queryWords)) * 10, nil
}

// CallCount returns the number of times Relevance was called.
func (m *MockScorer) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and injected behavior.
func (m *MockScorer) Reset() {
	m.callCount.Store(0)
	m.RelevanceFunc = nil
}
