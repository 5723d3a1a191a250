package provider

import (
	"context"

	"github.com/poiesic/scout/core"
)

// Adapter wraps one external content source behind a uniform fetch contract.
// Implementations must be thread-safe for concurrent use.
type Adapter interface {
	// Name returns the source identifier, e.g. "gnews" or "wikipedia".
	Name() string

	// Fetch retrieves up to limit results for the query in the given
	// language. Ordinary failure modes (HTTP error status, malformed
	// payload, empty body) yield an empty slice, not an error; the
	// per-call timeout is carried by ctx. Malformed entries (missing
	// title or URL) are dropped, never forwarded.
	Fetch(ctx context.Context, query string, limit int, lang string) ([]core.RawResult, error)
}
