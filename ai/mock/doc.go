// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Inference, ai.Scorer and
// ai.AIProvider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	summary, err := mockProvider.Inference().Summarize(ctx, "test")
//
//	// Custom behavior injection
//	mockScorer := mock.NewMockScorer()
//	mockScorer.RelevanceFunc = func(ctx context.Context, query, text string) (float64, error) {
//	    return 7, nil
//	}
//
//	// Check call counts
//	count := mockScorer.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockInference: Truncating summaries, keyword language detection,
//     identity translation, fixed-word query completions
//   - MockScorer: Word-overlap relevance scaled to 0-10
//   - MockProvider: Aggregates mock inference and scorer
package mock
