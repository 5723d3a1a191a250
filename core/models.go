package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// IntentType is the coarse classification of what a query is asking for.
// It drives which providers the race stage will prefer.
type IntentType string

const (
	IntentDefinition IntentType = "definition"
	IntentNews       IntentType = "news"
	IntentHow        IntentType = "how"
	IntentFact       IntentType = "fact"
	IntentGeneral    IntentType = "general"
)

// DateWindow restricts results to a rolling time window.
type DateWindow string

const (
	DateAny   DateWindow = "any"
	DateDay   DateWindow = "day"
	DateWeek  DateWindow = "week"
	DateMonth DateWindow = "month"
	DateYear  DateWindow = "year"
)

// Cutoff returns the earliest acceptable publish time for the window,
// relative to now. The second return is false for DateAny (no cutoff).
func (w DateWindow) Cutoff(now time.Time) (time.Time, bool) {
	switch w {
	case DateDay:
		return now.Add(-24 * time.Hour), true
	case DateWeek:
		return now.Add(-7 * 24 * time.Hour), true
	case DateMonth:
		return now.Add(-30 * 24 * time.Hour), true
	case DateYear:
		return now.Add(-365 * 24 * time.Hour), true
	default:
		return time.Time{}, false
	}
}

// ContentType restricts results to a kind of content.
type ContentType string

const (
	ContentAll      ContentType = "all"
	ContentArticle  ContentType = "article"
	ContentVideo    ContentType = "video"
	ContentImage    ContentType = "image"
	ContentDocument ContentType = "document"
)

// Query is a classified user query. Immutable once produced by the classifier.
type Query struct {
	Raw        string     // Original query text as typed by the user
	Normalized string     // Filler phrases stripped, whitespace collapsed; never empty
	Language   string     // Detected or declared language code, e.g. "fr"
	Intent     IntentType // Intent category driving provider selection
}

// FilterCriteria are the user-supplied result filters. Treated as a value
// object by the core; validation happens upstream, defaults are applied by
// NormalizeFilters.
type FilterCriteria struct {
	Date     DateWindow
	Type     ContentType
	Domain   string // Substring match against result URLs, empty = no filter
	Language string // Language code or "any"
	Category string // Optional news category hint, empty = autodetect
}

// DefaultFilters returns the filter values used when the caller supplies none.
func DefaultFilters() FilterCriteria {
	return FilterCriteria{
		Date:     DateAny,
		Type:     ContentAll,
		Domain:   "",
		Language: "fr",
		Category: "",
	}
}

// RawResult is a single candidate result as produced by a provider adapter.
// Never mutated after creation; adapters must drop entries missing a title
// or URL rather than forwarding partial records.
type RawResult struct {
	Title       string
	URL         string
	Snippet     string
	Source      string    // Provider identifier, e.g. "gnews", "wikipedia", "fallback"
	Image       string    // Optional image URL
	Language    string    // Language code
	PublishedAt time.Time // Zero when the provider did not report a date
}

// HasDate reports whether the result carries a publish date.
func (r *RawResult) HasDate() bool {
	return !r.PublishedAt.IsZero()
}

// EnrichedResult is a RawResult with AI-derived summary, relevance score and
// topic tags attached. Enriched is false when inference failed for this item
// and neutral defaults were substituted.
type EnrichedResult struct {
	RawResult
	Summary        string
	RelevanceScore float64  // In [0,10]; 5 is the neutral default on failure
	Topics         []string // At most 5 topic tokens, most frequent first
	Enriched       bool
}

// SearchOutcome is the value returned to the caller and handed to the
// persistence collaborator for history logging.
type SearchOutcome struct {
	Query   Query
	Filters FilterCriteria
	Results []EnrichedResult // Ordered non-increasing by RelevanceScore, stable
	Count   int
}

// SearchRecord is the history payload persisted for every executed search.
type SearchRecord struct {
	Id          ID
	Query       string
	SearchType  string // "text", "image" or "news"
	Source      string // Where the search came from, e.g. "api", "cli"
	Filters     FilterCriteria
	Timestamp   time.Time
	ResultCount int
}

// TrendPoint is a per-day search count used by trend reporting.
type TrendPoint struct {
	Date  string // "YYYY-MM-DD"
	Count int
}

// PopularQuery is a query with its occurrence count over a reporting window.
type PopularQuery struct {
	Query string
	Count int
}
