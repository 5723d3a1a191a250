package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/scout/core"
)

func datedResult(url string, published time.Time) core.RawResult {
	return core.RawResult{
		Title:       "Result",
		URL:         url,
		Source:      "google",
		Language:    "fr",
		PublishedAt: published,
	}
}

func undatedResult(url string) core.RawResult {
	return core.RawResult{
		Title:    "Result",
		URL:      url,
		Source:   "google",
		Language: "fr",
	}
}

func TestApplyNoCriteriaKeepsEverything(t *testing.T) {
	now := time.Now()
	results := []core.RawResult{
		datedResult("https://example.com/a", now),
		undatedResult("https://example.com/b"),
	}

	got := applyAt(results, core.DefaultFilters(), now)
	assert.Equal(t, results, got)
}

func TestApplyDateWindowExcludesUndated(t *testing.T) {
	now := time.Now()
	results := []core.RawResult{
		datedResult("https://example.com/recent", now.Add(-2*24*time.Hour)),
		datedResult("https://example.com/old", now.Add(-30*24*time.Hour)),
		datedResult("https://example.com/fresh", now.Add(-time.Hour)),
		undatedResult("https://example.com/undated-1"),
		undatedResult("https://example.com/undated-2"),
	}

	criteria := core.DefaultFilters()
	criteria.Date = core.DateWeek

	got := applyAt(results, criteria, now)
	require.Len(t, got, 2, "undated and out-of-window results are excluded")
	assert.Equal(t, "https://example.com/recent", got[0].URL)
	assert.Equal(t, "https://example.com/fresh", got[1].URL)
}

func TestApplyDateWindows(t *testing.T) {
	now := time.Now()
	result := datedResult("https://example.com/a", now.Add(-3*24*time.Hour))

	tests := []struct {
		window core.DateWindow
		kept   bool
	}{
		{core.DateAny, true},
		{core.DateDay, false},
		{core.DateWeek, true},
		{core.DateMonth, true},
		{core.DateYear, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.window), func(t *testing.T) {
			criteria := core.DefaultFilters()
			criteria.Date = tt.window
			got := applyAt([]core.RawResult{result}, criteria, now)
			assert.Equal(t, tt.kept, len(got) == 1)
		})
	}
}

func TestApplyDomainSubstring(t *testing.T) {
	now := time.Now()
	results := []core.RawResult{
		undatedResult("https://fr.Wikipedia.org/wiki/Paris"),
		undatedResult("https://example.com/paris"),
	}

	criteria := core.DefaultFilters()
	criteria.Domain = "wikipedia.org"

	got := applyAt(results, criteria, now)
	require.Len(t, got, 1, "domain match is case-insensitive")
	assert.Contains(t, got[0].URL, "Wikipedia")
}

func TestApplyContentType(t *testing.T) {
	now := time.Now()
	results := []core.RawResult{
		undatedResult("https://example.com/report.pdf"),
		undatedResult("https://www.youtube.com/watch?v=abc"),
		undatedResult("https://example.com/photo.jpg"),
		undatedResult("https://example.com/story"),
	}

	tests := []struct {
		contentType core.ContentType
		wantURL     string
	}{
		{core.ContentDocument, "https://example.com/report.pdf"},
		{core.ContentVideo, "https://www.youtube.com/watch?v=abc"},
		{core.ContentImage, "https://example.com/photo.jpg"},
		{core.ContentArticle, "https://example.com/story"},
	}

	for _, tt := range tests {
		t.Run(string(tt.contentType), func(t *testing.T) {
			criteria := core.DefaultFilters()
			criteria.Type = tt.contentType
			got := applyAt(results, criteria, now)
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantURL, got[0].URL)
		})
	}
}

func TestApplyLanguage(t *testing.T) {
	now := time.Now()
	fr := undatedResult("https://example.com/fr")
	en := undatedResult("https://example.com/en")
	en.Language = "en"

	criteria := core.DefaultFilters()
	criteria.Language = "en"
	got := applyAt([]core.RawResult{fr, en}, criteria, now)
	require.Len(t, got, 1)
	assert.Equal(t, "en", got[0].Language)

	criteria.Language = "any"
	got = applyAt([]core.RawResult{fr, en}, criteria, now)
	assert.Len(t, got, 2)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	original := datedResult("https://example.com/a", now)
	results := []core.RawResult{original}

	criteria := core.DefaultFilters()
	criteria.Date = core.DateWeek
	got := applyAt(results, criteria, now)

	require.Len(t, got, 1)
	assert.Equal(t, original, results[0])
	assert.Equal(t, original, got[0])
}

func TestApplyIsIdempotent(t *testing.T) {
	now := time.Now()
	results := []core.RawResult{
		datedResult("https://fr.wikipedia.org/wiki/Climat", now.Add(-time.Hour)),
		datedResult("https://fr.wikipedia.org/wiki/Meteo", now.Add(-30*24*time.Hour)),
		datedResult("https://example.com/climat", now.Add(-time.Hour)),
		undatedResult("https://fr.wikipedia.org/wiki/Paris"),
	}

	criteria := core.DefaultFilters()
	criteria.Date = core.DateWeek
	criteria.Domain = "wikipedia.org"

	once := applyAt(results, criteria, now)
	require.Len(t, once, 1)

	twice := applyAt(once, criteria, now)
	assert.Equal(t, once, twice, "filtering an already-filtered sequence changes nothing")
}

func TestApplyEmptyOutputIsValid(t *testing.T) {
	now := time.Now()
	criteria := core.DefaultFilters()
	criteria.Domain = "nomatch.invalid"

	got := applyAt([]core.RawResult{undatedResult("https://example.com/a")}, criteria, now)
	assert.Empty(t, got)
}

func TestContentTypeOf(t *testing.T) {
	tests := []struct {
		url  string
		want core.ContentType
	}{
		{"https://example.com/paper.PDF", core.ContentDocument},
		{"https://example.com/slides.pptx", core.ContentDocument},
		{"https://example.com/photo.png", core.ContentImage},
		{"https://youtu.be/abc", core.ContentVideo},
		{"https://www.dailymotion.com/video/x1", core.ContentVideo},
		{"https://example.com/article", core.ContentArticle},
		{"://broken", core.ContentArticle},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentTypeOf(core.RawResult{URL: tt.url}))
		})
	}
}
