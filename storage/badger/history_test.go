package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
)

func newTestRepository(t *testing.T) storage.HistoryRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func startSearch(t *testing.T, repo storage.HistoryRepository, query string, at time.Time) core.ID {
	t.Helper()
	id, err := repo.StartSearch(context.Background(), &core.SearchRecord{
		Query:      query,
		SearchType: "text",
		Source:     "test",
		Filters:    core.DefaultFilters(),
		Timestamp:  at,
	})
	if err != nil {
		t.Fatalf("Failed to start search %q: %v", query, err)
	}
	if id == 0 {
		t.Fatal("Expected non-zero ID")
	}
	return id
}

func TestSearchLifecycle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	id := startSearch(t, repo, "trou noir", time.Now().UTC())

	if err := repo.FinishSearch(ctx, id, 7); err != nil {
		t.Fatalf("Failed to finish search: %v", err)
	}

	recent, err := repo.RecentSearches(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to list recent searches: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(recent))
	}
	if recent[0].Query != "trou noir" {
		t.Errorf("Expected query %q, got %q", "trou noir", recent[0].Query)
	}
	if recent[0].ResultCount != 7 {
		t.Errorf("Expected result count 7, got %d", recent[0].ResultCount)
	}

	if err := repo.DeleteSearch(ctx, id); err != nil {
		t.Fatalf("Failed to delete search: %v", err)
	}
	recent, err = repo.RecentSearches(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to list recent searches: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("Expected no records after delete, got %d", len(recent))
	}
}

func TestFinishSearchNotFound(t *testing.T) {
	repo := newTestRepository(t)
	if err := repo.FinishSearch(context.Background(), 12345, 1); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSearchNotFound(t *testing.T) {
	repo := newTestRepository(t)
	if err := repo.DeleteSearch(context.Background(), 12345); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestStartSearchRejectsEmptyQuery(t *testing.T) {
	repo := newTestRepository(t)
	_, err := repo.StartSearch(context.Background(), &core.SearchRecord{SearchType: "text"})
	if !errors.Is(err, core.ErrEmptyQuery) {
		t.Fatalf("Expected ErrEmptyQuery, got %v", err)
	}
}

func TestRecentSearchesOrderAndLimit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	startSearch(t, repo, "oldest", now.Add(-3*time.Hour))
	startSearch(t, repo, "middle", now.Add(-2*time.Hour))
	startSearch(t, repo, "newest", now.Add(-1*time.Hour))

	recent, err := repo.RecentSearches(ctx, 2)
	if err != nil {
		t.Fatalf("Failed to list recent searches: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(recent))
	}
	if recent[0].Query != "newest" || recent[1].Query != "middle" {
		t.Errorf("Expected [newest middle], got [%s %s]", recent[0].Query, recent[1].Query)
	}
}

func TestPopularSearches(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	startSearch(t, repo, "climat", now.Add(-1*time.Hour))
	startSearch(t, repo, "Climat", now.Add(-2*time.Hour))
	startSearch(t, repo, "climat", now.Add(-3*time.Hour))
	startSearch(t, repo, "football", now.Add(-4*time.Hour))
	// Outside the window, must not count
	startSearch(t, repo, "ancien", now.AddDate(0, 0, -30))

	popular, err := repo.PopularSearches(ctx, 7, 10)
	if err != nil {
		t.Fatalf("Failed to get popular searches: %v", err)
	}
	if len(popular) != 2 {
		t.Fatalf("Expected 2 popular queries, got %d", len(popular))
	}
	if popular[0].Query != "climat" || popular[0].Count != 3 {
		t.Errorf("Expected climat x3 first, got %q x%d", popular[0].Query, popular[0].Count)
	}
	if popular[1].Query != "football" || popular[1].Count != 1 {
		t.Errorf("Expected football x1 second, got %q x%d", popular[1].Query, popular[1].Count)
	}
}

func TestSearchTrendsZeroFilled(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	startSearch(t, repo, "today one", now)
	startSearch(t, repo, "today two", now)
	startSearch(t, repo, "two days ago", now.AddDate(0, 0, -2))

	trends, err := repo.SearchTrends(ctx, 7)
	if err != nil {
		t.Fatalf("Failed to get search trends: %v", err)
	}
	if len(trends) != 7 {
		t.Fatalf("Expected 7 trend points, got %d", len(trends))
	}

	last := trends[len(trends)-1]
	if last.Date != now.Format("2006-01-02") {
		t.Errorf("Expected last point to be today, got %s", last.Date)
	}
	if last.Count != 2 {
		t.Errorf("Expected 2 searches today, got %d", last.Count)
	}

	total := 0
	for _, point := range trends {
		total += point.Count
	}
	if total != 3 {
		t.Errorf("Expected 3 searches in the window, got %d", total)
	}
}

func TestSuggestions(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	startSearch(t, repo, "climat en France", now.Add(-3*time.Hour))
	startSearch(t, repo, "Climat mondial", now.Add(-2*time.Hour))
	startSearch(t, repo, "climat mondial", now.Add(-1*time.Hour))
	startSearch(t, repo, "football", now)

	suggestions, err := repo.Suggestions(ctx, "cli", 10)
	if err != nil {
		t.Fatalf("Failed to get suggestions: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("Expected 2 distinct suggestions, got %d: %v", len(suggestions), suggestions)
	}
	if suggestions[0] != "climat mondial" {
		t.Errorf("Expected most recent match first, got %q", suggestions[0])
	}
	if suggestions[1] != "climat en France" {
		t.Errorf("Expected %q second, got %q", "climat en France", suggestions[1])
	}
}

func TestInvalidQueryParameters(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.RecentSearches(ctx, 0); !errors.Is(err, storage.ErrInvalidQuery) {
		t.Errorf("RecentSearches(0): expected ErrInvalidQuery, got %v", err)
	}
	if _, err := repo.PopularSearches(ctx, 0, 10); !errors.Is(err, storage.ErrInvalidQuery) {
		t.Errorf("PopularSearches(0 days): expected ErrInvalidQuery, got %v", err)
	}
	if _, err := repo.SearchTrends(ctx, -1); !errors.Is(err, storage.ErrInvalidQuery) {
		t.Errorf("SearchTrends(-1): expected ErrInvalidQuery, got %v", err)
	}
	if _, err := repo.Suggestions(ctx, "x", 0); !errors.Is(err, storage.ErrInvalidQuery) {
		t.Errorf("Suggestions(limit 0): expected ErrInvalidQuery, got %v", err)
	}
}
