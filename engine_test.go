package scout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/race"
)

// stubAdapter keeps engine tests off the network.
type stubAdapter struct {
	name    string
	results []core.RawResult
}

func (s *stubAdapter) Name() string {
	return s.name
}

func (s *stubAdapter) Fetch(ctx context.Context, query string, limit int, lang string) ([]core.RawResult, error) {
	return s.results, nil
}

func newTestEngine(t *testing.T, adapters *race.AdapterSet) *Engine {
	t.Helper()
	engine, err := NewEngine("",
		WithInMemoryStorage(),
		WithAdapters(adapters),
		WithSource("test"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := engine.Close(); err != nil {
			t.Errorf("Failed to close engine: %v", err)
		}
	})
	return engine
}

func TestEngineSearchEndToEnd(t *testing.T) {
	adapters := &race.AdapterSet{
		Google: &stubAdapter{name: "google", results: []core.RawResult{
			{Title: "Trou noir", URL: "https://fr.wikipedia.org/wiki/Trou_noir", Snippet: "Un trou noir est un objet céleste compact.", Source: "google", Language: "fr"},
		}},
	}
	engine := newTestEngine(t, adapters)
	ctx := context.Background()

	outcome, err := engine.Search(ctx, "trou noir", "text", 10, core.DefaultFilters())
	require.NoError(t, err)
	require.Equal(t, 1, outcome.Count)
	// The AI backend is unreachable in tests; enrichment degrades to the
	// neutral defaults instead of failing the search.
	assert.Equal(t, "Trou noir", outcome.Results[0].Title)
	assert.InDelta(t, 5.0, outcome.Results[0].RelevanceScore, 5.0)

	recent, err := engine.RecentSearches(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "trou noir", recent[0].Query)
	assert.Equal(t, "test", recent[0].Source)
	assert.Equal(t, 1, recent[0].ResultCount)
}

func TestEngineFallbackWhenAllProvidersEmpty(t *testing.T) {
	engine := newTestEngine(t, &race.AdapterSet{
		Google: &stubAdapter{name: "google"},
		Bing:   &stubAdapter{name: "bing"},
	})

	outcome, err := engine.Search(context.Background(), "sujet introuvable", "text", 10, core.DefaultFilters())
	require.NoError(t, err)
	require.Equal(t, 1, outcome.Count)
	assert.Equal(t, "fallback", outcome.Results[0].Source)
}

func TestEngineAnalytics(t *testing.T) {
	engine := newTestEngine(t, &race.AdapterSet{
		Google: &stubAdapter{name: "google"},
	})
	ctx := context.Background()

	for _, q := range []string{"climat mondial", "climat mondial", "football"} {
		_, err := engine.Search(ctx, q, "text", 5, core.DefaultFilters())
		require.NoError(t, err)
	}

	popular, err := engine.PopularSearches(ctx, 7, 10)
	require.NoError(t, err)
	require.NotEmpty(t, popular)
	assert.Equal(t, "climat mondial", popular[0].Query)
	assert.Equal(t, 2, popular[0].Count)

	trends, err := engine.SearchTrends(ctx, 7)
	require.NoError(t, err)
	require.Len(t, trends, 7)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), trends[6].Date)
	assert.Equal(t, 3, trends[6].Count)

	suggestions, err := engine.Suggest(ctx, "climat", 10)
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "climat mondial", suggestions[0])
}
