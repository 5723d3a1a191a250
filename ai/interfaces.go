package ai

import "context"

// Inference provides language-model text operations used by the search
// pipeline. Implementations must be thread-safe for concurrent use.
type Inference interface {
	// Summarize produces a short summary of the given text.
	// Returns an error if generation fails.
	Summarize(ctx context.Context, text string) (string, error)

	// DetectLanguage returns the ISO 639-1 language code of the text,
	// e.g. "fr" or "en". Returns an error if detection fails; callers
	// treat detection as advisory and fall back to a default language.
	DetectLanguage(ctx context.Context, text string) (string, error)

	// Translate translates text into the target language.
	// Returns an error if translation fails.
	Translate(ctx context.Context, text, targetLang string) (string, error)

	// Suggest completes a query prefix into up to limit full query
	// suggestions. Returns an empty slice if no suggestion is produced.
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)
}

// Scorer computes how relevant a piece of text is to a query.
// Implementations must be thread-safe for concurrent use.
type Scorer interface {
	// Relevance returns a score in [0, 10] where 10 means the text fully
	// answers the query. The scoring mechanism is implementation-internal;
	// callers substitute the neutral midpoint 5 when scoring fails.
	Relevance(ctx context.Context, query, text string) (float64, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Inference and Scorer instances, ensuring they
// share configuration and resources appropriately.
type AIProvider interface {
	// Inference returns the text inference service.
	// The returned Inference is safe for concurrent use.
	Inference() Inference

	// Scorer returns the relevance scoring service.
	// The returned Scorer is safe for concurrent use.
	Scorer() Scorer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
