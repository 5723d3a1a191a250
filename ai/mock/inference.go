package mock

import (
	"context"
	"strings"
	"sync/atomic"
)

// MockInference is a test double for ai.Inference.
// It allows custom behavior injection via function fields.
type MockInference struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, uses default truncation behavior.
	SummarizeFunc func(ctx context.Context, text string) (string, error)

	// DetectLanguageFunc is called by DetectLanguage if set.
	// If nil, uses a crude keyword heuristic.
	DetectLanguageFunc func(ctx context.Context, text string) (string, error)

	// TranslateFunc is called by Translate if set.
	// If nil, returns the input text unchanged.
	TranslateFunc func(ctx context.Context, text, targetLang string) (string, error)

	// SuggestFunc is called by Suggest if set.
	// If nil, appends common completion words to the prefix.
	SuggestFunc func(ctx context.Context, prefix string, limit int) ([]string, error)

	// Atomic: the enrichment stage calls inference from concurrent workers.
	callCount atomic.Int64
}

// NewMockInference creates a mock inference service with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockInference().
func NewMockInference() *MockInference {
	return &MockInference{}
}

// Summarize returns the first few words of the text.
func (m *MockInference) Summarize(ctx context.Context, text string) (string, error) {
	m.callCount.Add(1)

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, text)
	}

	words := strings.Fields(text)
	if len(words) > 10 {
		words = words[:10]
	}
	return strings.Join(words, " "), nil
}

// DetectLanguage guesses "fr" when common French words appear, else "en".
func (m *MockInference) DetectLanguage(ctx context.Context, text string) (string, error) {
	m.callCount.Add(1)

	if m.DetectLanguageFunc != nil {
		return m.DetectLanguageFunc(ctx, text)
	}

	lower := " " + strings.ToLower(text) + " "
	for _, marker := range []string{" le ", " la ", " les ", " est ", " une ", " quoi ", " qu'est-ce "} {
		if strings.Contains(lower, marker) {
			return "fr", nil
		}
	}
	return "en", nil
}

// Translate returns the input unchanged.
func (m *MockInference) Translate(ctx context.Context, text, targetLang string) (string, error) {
	m.callCount.Add(1)

	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text, targetLang)
	}
	return text, nil
}

// Suggest appends common completion words to the prefix.
func (m *MockInference) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	m.callCount.Add(1)

	if m.SuggestFunc != nil {
		return m.SuggestFunc(ctx, prefix, limit)
	}

	completions := []string{"definition", "news", "meaning", "examples", "history"}
	suggestions := make([]string, 0, limit)
	for _, c := range completions {
		if len(suggestions) == limit {
			break
		}
		suggestions = append(suggestions, strings.TrimSpace(prefix)+" "+c)
	}
	return suggestions, nil
}

// CallCount returns the number of times any method was called.
func (m *MockInference) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and injected behavior.
func (m *MockInference) Reset() {
	m.callCount.Store(0)
	m.SummarizeFunc = nil
	m.DetectLanguageFunc = nil
	m.TranslateFunc = nil
	m.SuggestFunc = nil
}
