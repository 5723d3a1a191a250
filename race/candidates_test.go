package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/provider"
)

func testAdapterSet() *AdapterSet {
	return &AdapterSet{
		News:       provider.NewGNews("secret"),
		Google:     provider.NewGoogle(),
		Bing:       provider.NewBing(),
		DuckDuckGo: provider.NewDuckDuckGo(),
		Wikipedia:  provider.NewWikipedia(),
	}
}

func candidateNames(candidates []provider.Adapter) []string {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name())
	}
	return names
}

func TestCandidatesByIntent(t *testing.T) {
	set := testAdapterSet()

	tests := []struct {
		name   string
		intent core.IntentType
		want   []string
	}{
		{"definition favors knowledge sources", core.IntentDefinition, []string{"duckduckgo", "google"}},
		{"news favors the article API", core.IntentNews, []string{"gnews", "google"}},
		{"general races the engine set", core.IntentGeneral, []string{"google", "bing", "duckduckgo", "wikipedia"}},
		{"how-to races the engine set", core.IntentHow, []string{"google", "bing", "duckduckgo", "wikipedia"}},
		{"fact races the engine set", core.IntentFact, []string{"google", "bing", "duckduckgo", "wikipedia"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := set.Candidates(tt.intent, "")
			assert.Equal(t, tt.want, candidateNames(got))
		})
	}
}

func TestCandidatesSkipsNilAdapters(t *testing.T) {
	set := testAdapterSet()
	set.News = nil

	got := set.Candidates(core.IntentNews, "")
	assert.Equal(t, []string{"google"}, candidateNames(got))
}

func TestCandidatesGeneralWithCategoryAddsNews(t *testing.T) {
	set := testAdapterSet()

	got := set.Candidates(core.IntentGeneral, "sports")
	assert.Equal(t, []string{"google", "bing", "duckduckgo", "wikipedia", "gnews"}, candidateNames(got))
}

func TestCandidatesScopesNewsCategory(t *testing.T) {
	set := testAdapterSet()

	got := set.Candidates(core.IntentNews, "sports")
	require.Len(t, got, 2)

	scoped, ok := got[0].(*provider.GNews)
	require.True(t, ok)
	assert.Equal(t, "sports", scoped.Topic())
	assert.Equal(t, "", set.News.Topic(), "the shared adapter stays unscoped")
}
