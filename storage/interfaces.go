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


package storage

import (
	"context"

	"github.com/poiesic/scout/core"
)

// HistoryRepository persists the search history and serves the analytics
// queries built on it. Implementations must be safe for concurrent use.
type HistoryRepository interface {
	// StartSearch records a search at the moment it begins, before its
	// outcome is known. Assigns a fresh ID (and a timestamp when the record
	// carries none) and returns the ID for the later FinishSearch or
	// DeleteSearch call.
	StartSearch(ctx context.Context, record *core.SearchRecord) (core.ID, error)

	// FinishSearch sets the result count on an in-flight record.
	// Returns ErrNotFound if the record doesn't exist.
	FinishSearch(ctx context.Context, id core.ID, resultCount int) error

	// DeleteSearch removes a record, typically to roll back an in-flight
	// search whose pipeline failed.
	// Returns ErrNotFound if the record doesn't exist.
	DeleteSearch(ctx context.Context, id core.ID) error

	// RecentSearches returns up to limit records, most recent first.
	RecentSearches(ctx context.Context, limit int) ([]*core.SearchRecord, error)

	// PopularSearches aggregates the most searched queries over the past
	// days, ordered by count descending.
	PopularSearches(ctx context.Context, days, limit int) ([]core.PopularQuery, error)

	// SearchTrends returns one per-day count for each of the past days,
	// oldest first. Days without searches appear with a zero count.
	SearchTrends(ctx context.Context, days int) ([]core.TrendPoint, error)

	// Suggestions returns distinct past queries matching the prefix,
	// most recent first, case-insensitive.
	Suggestions(ctx context.Context, prefix string, limit int) ([]string, error)

	// Close releases the repository's resources.
	Close() error
}
