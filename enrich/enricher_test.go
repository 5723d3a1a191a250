package enrich

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/scout/ai/mock"
	"github.com/poiesic/scout/core"
)

func testQuery() core.Query {
	return core.Query{
		Raw:        "réchauffement climatique",
		Normalized: "réchauffement climatique",
		Language:   "fr",
		Intent:     core.IntentGeneral,
	}
}

func rawResult(url, snippet string) core.RawResult {
	return core.RawResult{
		Title:    "Result",
		URL:      url,
		Snippet:  snippet,
		Source:   "google",
		Language: "fr",
	}
}

func newTestEnricher(t *testing.T, inference *mock.MockInference, scorer *mock.MockScorer, opts ...Option) *Enricher {
	t.Helper()
	opts = append([]Option{WithRetryPolicy(1, time.Millisecond, time.Millisecond)}, opts...)
	var e *Enricher
	var err error
	if scorer == nil {
		e, err = New(inference, nil, opts...)
	} else {
		e, err = New(inference, scorer, opts...)
	}
	require.NoError(t, err)
	t.Cleanup(e.Release)
	return e
}

func TestEnrichEmptyInput(t *testing.T) {
	e := newTestEnricher(t, mock.NewMockInference(), mock.NewMockScorer())
	out, err := e.Enrich(context.Background(), testQuery(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestEnrichNilInference(t *testing.T) {
	e, err := New(nil, nil)
	require.NoError(t, err)
	defer e.Release()

	out, err := e.Enrich(context.Background(), testQuery(), []core.RawResult{rawResult("https://example.com/a", "some snippet")})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestEnrichEmptySnippetGetsDefaults(t *testing.T) {
	inference := mock.NewMockInference()
	e := newTestEnricher(t, inference, mock.NewMockScorer())

	out, err := e.Enrich(context.Background(), testQuery(), []core.RawResult{rawResult("https://example.com/a", "   ")})
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.False(t, out[0].Enriched)
	assert.Equal(t, DefaultScore, out[0].RelevanceScore)
	assert.Equal(t, "Résumé indisponible", out[0].Summary)
	assert.Empty(t, out[0].Topics)
	assert.Zero(t, inference.CallCount(), "empty snippets skip inference entirely")
}

func TestEnrichFullItem(t *testing.T) {
	inference := mock.NewMockInference()
	inference.SummarizeFunc = func(ctx context.Context, text string) (string, error) {
		return "Un résumé concis.", nil
	}
	scorer := mock.NewMockScorer()
	scorer.RelevanceFunc = func(ctx context.Context, query, text string) (float64, error) {
		return 8, nil
	}

	e := newTestEnricher(t, inference, scorer)
	out, err := e.Enrich(context.Background(), testQuery(), []core.RawResult{
		rawResult("https://example.com/a", "Le réchauffement climatique modifie durablement le climat mondial, réchauffement accéléré"),
	})
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.True(t, out[0].Enriched)
	assert.Equal(t, "Un résumé concis.", out[0].Summary)
	assert.Equal(t, 8.0, out[0].RelevanceScore)
	assert.NotEmpty(t, out[0].Topics)
	assert.LessOrEqual(t, len(out[0].Topics), MaxTopics)
	assert.Equal(t, "réchauffement", out[0].Topics[0], "most frequent token leads")
}

func TestEnrichPerItemIsolation(t *testing.T) {
	// The 2nd summarize call fails: that item gets defaults, the others are
	// fully enriched, and ordering follows score descending.
	var calls atomic.Int32
	inference := mock.NewMockInference()
	inference.SummarizeFunc = func(ctx context.Context, text string) (string, error) {
		if calls.Add(1) == 2 {
			return "", errors.New("model exploded")
		}
		return "summary", nil
	}
	scorer := mock.NewMockScorer()
	scorer.RelevanceFunc = func(ctx context.Context, query, text string) (float64, error) {
		switch text {
		case "first snippet":
			return 9, nil
		case "third snippet":
			return 7, nil
		}
		return 0, nil
	}

	e := newTestEnricher(t, inference, scorer)
	out, err := e.Enrich(context.Background(), testQuery(), []core.RawResult{
		rawResult("https://example.com/1", "first snippet"),
		rawResult("https://example.com/2", "second snippet"),
		rawResult("https://example.com/3", "third snippet"),
	})
	require.NoError(t, err)
	require.Len(t, out, 3, "output length equals input length")

	assert.Equal(t, "https://example.com/1", out[0].URL)
	assert.Equal(t, 9.0, out[0].RelevanceScore)
	assert.True(t, out[0].Enriched)

	assert.Equal(t, "https://example.com/3", out[1].URL)
	assert.Equal(t, 7.0, out[1].RelevanceScore)
	assert.True(t, out[1].Enriched)

	assert.Equal(t, "https://example.com/2", out[2].URL)
	assert.Equal(t, DefaultScore, out[2].RelevanceScore)
	assert.False(t, out[2].Enriched)
}

func TestEnrichStableSortOnEqualScores(t *testing.T) {
	inference := mock.NewMockInference()
	scorer := mock.NewMockScorer()
	scorer.RelevanceFunc = func(ctx context.Context, query, text string) (float64, error) {
		return 5, nil
	}

	e := newTestEnricher(t, inference, scorer)
	out, err := e.Enrich(context.Background(), testQuery(), []core.RawResult{
		rawResult("https://example.com/1", "alpha snippet"),
		rawResult("https://example.com/2", "beta snippet"),
		rawResult("https://example.com/3", "gamma snippet"),
	})
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "https://example.com/1", out[0].URL)
	assert.Equal(t, "https://example.com/2", out[1].URL)
	assert.Equal(t, "https://example.com/3", out[2].URL)
}

func TestEnrichClampsScores(t *testing.T) {
	inference := mock.NewMockInference()
	scorer := mock.NewMockScorer()
	scorer.RelevanceFunc = func(ctx context.Context, query, text string) (float64, error) {
		return 15, nil
	}

	e := newTestEnricher(t, inference, scorer)
	out, err := e.Enrich(context.Background(), testQuery(), []core.RawResult{rawResult("https://example.com/a", "some snippet")})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 10.0, out[0].RelevanceScore)
}

func TestEnrichNilScorerDefaultsScore(t *testing.T) {
	inference := mock.NewMockInference()
	inference.SummarizeFunc = func(ctx context.Context, text string) (string, error) {
		return "summary", nil
	}

	e := newTestEnricher(t, inference, nil)
	out, err := e.Enrich(context.Background(), testQuery(), []core.RawResult{rawResult("https://example.com/a", "some snippet")})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Enriched)
	assert.Equal(t, DefaultScore, out[0].RelevanceScore)
}

func TestEnrichCancelledContextSurfaces(t *testing.T) {
	inference := mock.NewMockInference()
	ctx, cancel := context.WithCancel(context.Background())
	inference.SummarizeFunc = func(_ context.Context, text string) (string, error) {
		cancel()
		return "", ctx.Err()
	}

	e := newTestEnricher(t, inference, mock.NewMockScorer())
	_, err := e.Enrich(ctx, testQuery(), []core.RawResult{rawResult("https://example.com/a", "some snippet")})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnrichConcurrentPoolPreservesSemantics(t *testing.T) {
	inference := mock.NewMockInference()
	inference.SummarizeFunc = func(ctx context.Context, text string) (string, error) {
		return "summary", nil
	}
	scorer := mock.NewMockScorer()
	scorer.RelevanceFunc = func(ctx context.Context, query, text string) (float64, error) {
		return float64(len(text) % 10), nil
	}

	e := newTestEnricher(t, inference, scorer, WithConcurrency(4))

	input := make([]core.RawResult, 10)
	for i := range input {
		input[i] = rawResult("https://example.com/x", "snippet snippet snippet")
	}
	out, err := e.Enrich(context.Background(), testQuery(), input)
	require.NoError(t, err)
	assert.Len(t, out, len(input))
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].RelevanceScore, out[i].RelevanceScore)
	}
}

func TestTruncateSnippet(t *testing.T) {
	long := make([]byte, 0, MaxSnippetLength+10)
	for i := 0; i < MaxSnippetLength+10; i++ {
		long = append(long, 'a')
	}
	assert.Len(t, truncateSnippet(string(long)), MaxSnippetLength)

	// Never split an accented rune at the boundary.
	accented := ""
	for len(accented) <= MaxSnippetLength {
		accented += "é"
	}
	truncated := truncateSnippet(accented)
	assert.LessOrEqual(t, len(truncated), MaxSnippetLength)
	assert.Equal(t, 0, len(truncated)%2, "é is two bytes; an odd length means a split rune")
}
