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


package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MinQueryLength is the minimum accepted raw query length.
	MinQueryLength = 3

	// DefaultLimit is applied when the caller does not supply a result limit.
	DefaultLimit = 10

	// MaxLimit caps the number of results a single search may request.
	MaxLimit = 50
)

// ValidateRawResult validates a RawResult according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - URL must not be empty
//
// Adapters use this to drop malformed provider entries instead of forwarding
// partial records.
func ValidateRawResult(result *RawResult) error {
	if result == nil {
		return fmt.Errorf("%w: result is nil", ErrInvalidRawResult)
	}

	if strings.TrimSpace(result.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRawResult, ErrEmptyTitle)
	}

	if strings.TrimSpace(result.URL) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRawResult, ErrEmptyURL)
	}

	return nil
}

// ValidateSearchRecord validates a SearchRecord according to domain rules.
//
// Validation rules:
//   - Query must not be empty
//   - Timestamp must not be in the future
//
// NOT validated:
//   - ID (0 is valid from database sequences)
//   - ResultCount (0 until the search finishes)
func ValidateSearchRecord(record *SearchRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidSearchRecord)
	}

	if strings.TrimSpace(record.Query) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSearchRecord, ErrEmptyQuery)
	}

	if !IsValidTimestamp(record.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidSearchRecord, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateQueryText checks the raw query text against the minimum length.
func ValidateQueryText(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ErrEmptyQuery
	}
	if len(trimmed) < MinQueryLength {
		return ErrQueryTooShort
	}
	return nil
}

// ClampLimit normalizes a caller-supplied result limit to [1, MaxLimit].
// Zero or negative values fall back to DefaultLimit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ClampScore bounds a relevance score to [0, 10].
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

// NormalizeFilters fills unset filter fields with their defaults so the
// pipeline can assume every field holds a meaningful value.
func NormalizeFilters(f FilterCriteria) FilterCriteria {
	if f.Date == "" {
		f.Date = DateAny
	}
	if f.Type == "" {
		f.Type = ContentAll
	}
	if f.Language == "" {
		f.Language = DefaultFilters().Language
	}
	return f
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
