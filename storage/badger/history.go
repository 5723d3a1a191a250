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


package badger

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
)

// HistoryRepository implements storage.HistoryRepository for BadgerDB.
type HistoryRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(backend *Backend) (*HistoryRepository, error) {
	idSeq, err := backend.GetSequence(searchIDSeq)
	if err != nil {
		return nil, err
	}

	return &HistoryRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *HistoryRepository) Close() error {
	return r.idSeq.Release()
}

// StartSearch records a search at the moment it begins.
func (r *HistoryRepository) StartSearch(ctx context.Context, record *core.SearchRecord) (core.ID, error) {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	if err := core.ValidateSearchRecord(record); err != nil {
		return 0, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		nextID, err := r.idSeq.Next()
		if err != nil {
			return err
		}
		// BadgerDB sequences can return 0 on first call, so we skip it
		if nextID == 0 {
			nextID, err = r.idSeq.Next()
			if err != nil {
				return err
			}
		}
		record.Id = core.ID(nextID)

		value, err := storage.MarshalSearchRecord(record)
		if err != nil {
			return err
		}
		if err := tx.Set(makeSearchRecordKey(record.Id), value); err != nil {
			return err
		}

		dateKey := makeSearchDateKey(record.Timestamp, record.Id)
		if err := tx.Set(dateKey, storage.MarshalID(record.Id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return 0, err
	}
	return record.Id, nil
}

// FinishSearch sets the result count on an in-flight record.
func (r *HistoryRepository) FinishSearch(ctx context.Context, id core.ID, resultCount int) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		record, err := r.readSearchRecord(tx, id)
		if err != nil {
			return err
		}
		if record == nil {
			return storage.ErrNotFound
		}

		record.ResultCount = resultCount
		value, err := storage.MarshalSearchRecord(record)
		if err != nil {
			return err
		}
		if err := tx.Set(makeSearchRecordKey(id), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// DeleteSearch removes a record and its date index entry.
func (r *HistoryRepository) DeleteSearch(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		record, err := r.readSearchRecord(tx, id)
		if err != nil {
			return err
		}
		if record == nil {
			return storage.ErrNotFound
		}

		if err := tx.Delete(makeSearchRecordKey(id)); err != nil {
			return err
		}
		if err := tx.Delete(makeSearchDateKey(record.Timestamp, id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// RecentSearches returns up to limit records, most recent first.
func (r *HistoryRepository) RecentSearches(ctx context.Context, limit int) ([]*core.SearchRecord, error) {
	if limit < 1 {
		return nil, storage.ErrInvalidQuery
	}

	var records []*core.SearchRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(searchDatePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(maxSearchDateKey()); iter.Valid() && len(records) < limit; iter.Next() {
			id, err := idFromDateKey(iter.Item().Key())
			if err != nil {
				return err
			}
			record, err := r.readSearchRecord(tx, id)
			if err != nil {
				return err
			}
			if record != nil {
				records = append(records, record)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// PopularSearches aggregates query counts over the past days.
func (r *HistoryRepository) PopularSearches(ctx context.Context, days, limit int) ([]core.PopularQuery, error) {
	if days < 1 || limit < 1 {
		return nil, storage.ErrInvalidQuery
	}

	counts := make(map[string]int)
	display := make(map[string]string)
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	err := r.forEachSince(cutoff, func(record *core.SearchRecord) {
		key := strings.ToLower(record.Query)
		if counts[key] == 0 {
			display[key] = record.Query
		}
		counts[key]++
	})
	if err != nil {
		return nil, err
	}

	popular := make([]core.PopularQuery, 0, len(counts))
	for key, count := range counts {
		popular = append(popular, core.PopularQuery{Query: display[key], Count: count})
	}
	slices.SortFunc(popular, func(a, b core.PopularQuery) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Query, b.Query)
	})

	if len(popular) > limit {
		popular = popular[:limit]
	}
	return popular, nil
}

// SearchTrends returns zero-filled per-day counts for the past days,
// oldest day first, today last.
func (r *HistoryRepository) SearchTrends(ctx context.Context, days int) ([]core.TrendPoint, error) {
	if days < 1 {
		return nil, storage.ErrInvalidQuery
	}

	const dayFormat = "2006-01-02"
	today := time.Now().UTC().Truncate(24 * time.Hour)
	first := today.AddDate(0, 0, -(days - 1))

	counts := make(map[string]int, days)
	err := r.forEachSince(first, func(record *core.SearchRecord) {
		counts[record.Timestamp.UTC().Format(dayFormat)]++
	})
	if err != nil {
		return nil, err
	}

	trends := make([]core.TrendPoint, 0, days)
	for day := first; !day.After(today); day = day.AddDate(0, 0, 1) {
		date := day.Format(dayFormat)
		trends = append(trends, core.TrendPoint{Date: date, Count: counts[date]})
	}
	return trends, nil
}

// Suggestions returns distinct past queries matching the prefix, most recent
// first. An empty prefix matches everything.
func (r *HistoryRepository) Suggestions(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit < 1 {
		return nil, storage.ErrInvalidQuery
	}

	lowered := strings.ToLower(strings.TrimSpace(prefix))
	seen := make(map[string]bool)
	var suggestions []string

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(searchDatePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(maxSearchDateKey()); iter.Valid() && len(suggestions) < limit; iter.Next() {
			id, err := idFromDateKey(iter.Item().Key())
			if err != nil {
				return err
			}
			record, err := r.readSearchRecord(tx, id)
			if err != nil {
				return err
			}
			if record == nil {
				continue
			}
			key := strings.ToLower(record.Query)
			if seen[key] || !strings.HasPrefix(key, lowered) {
				continue
			}
			seen[key] = true
			suggestions = append(suggestions, record.Query)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

// forEachSince walks the date index forward from the cutoff and invokes fn
// for every record found.
func (r *HistoryRepository) forEachSince(cutoff time.Time, fn func(*core.SearchRecord)) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(searchDatePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(makePartialSearchDateKey(cutoff)); iter.Valid(); iter.Next() {
			id, err := idFromDateKey(iter.Item().Key())
			if err != nil {
				return err
			}
			record, err := r.readSearchRecord(tx, id)
			if err != nil {
				return err
			}
			if record != nil {
				fn(record)
			}
		}
		return nil
	}, false)
}

// readSearchRecord reads a record by ID within a transaction.
// Returns nil (no error) when the record doesn't exist.
func (r *HistoryRepository) readSearchRecord(tx *badger.Txn, id core.ID) (*core.SearchRecord, error) {
	item, err := tx.Get(makeSearchRecordKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var record *core.SearchRecord
	err = item.Value(func(val []byte) error {
		record, err = storage.UnmarshalSearchRecord(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// idFromDateKey extracts the record ID from a composite date-index key.
func idFromDateKey(key []byte) (core.ID, error) {
	if len(key) < 8 {
		return 0, storage.ErrTruncatedData
	}
	return storage.UnmarshalID(key[len(key)-8:])
}
