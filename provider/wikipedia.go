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


package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/poiesic/scout/core"
)

// Wikipedia adapts the Wikipedia REST page-summary API. The language of the
// search selects the wiki edition (fr.wikipedia.org, en.wikipedia.org, ...).
type Wikipedia struct {
	baseURL string // Sprintf template with one %s for the language code
	client  *http.Client
	logger  *slog.Logger
}

const wikipediaBaseURL = "https://%s.wikipedia.org/api/rest_v1"

// WikipediaOption configures a Wikipedia adapter.
type WikipediaOption func(*Wikipedia)

// WithWikipediaBaseURL overrides the endpoint template, mainly for tests.
// The template must contain one %s verb for the language code.
func WithWikipediaBaseURL(base string) WikipediaOption {
	return func(w *Wikipedia) {
		w.baseURL = base
	}
}

// WithWikipediaHTTPClient sets a custom HTTP client.
func WithWikipediaHTTPClient(client *http.Client) WikipediaOption {
	return func(w *Wikipedia) {
		if client != nil {
			w.client = client
		}
	}
}

// NewWikipedia creates a Wikipedia summary adapter.
func NewWikipedia(opts ...WikipediaOption) *Wikipedia {
	w := &Wikipedia{
		baseURL: wikipediaBaseURL,
		client:  newHTTPClient(),
		logger:  slog.Default().With("provider", "wikipedia"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Name returns the source identifier.
func (w *Wikipedia) Name() string {
	return "wikipedia"
}

type wikipediaResponse struct {
	Title     string    `json:"title"`
	Extract   string    `json:"extract"`
	Timestamp time.Time `json:"timestamp"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Fetch looks up the page summary for the query title. Missing pages (404)
// produce an empty result set.
func (w *Wikipedia) Fetch(ctx context.Context, query string, limit int, lang string) ([]core.RawResult, error) {
	if lang == "" || lang == "any" {
		lang = "fr"
	}

	base := w.baseURL
	if strings.Contains(base, "%s") {
		base = fmt.Sprintf(base, lang)
	}
	title := url.PathEscape(strings.ReplaceAll(query, " ", "_"))
	endpoint := base + "/page/summary/" + title

	body, err := getBody(ctx, w.client, endpoint)
	if err != nil {
		w.logger.Debug("fetch failed", "err", err)
		return nil, nil
	}

	var parsed wikipediaResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		w.logger.Warn("malformed response", "err", err)
		return nil, nil
	}

	result := core.RawResult{
		Title:       parsed.Title,
		URL:         parsed.ContentURLs.Desktop.Page,
		Snippet:     parsed.Extract,
		Source:      w.Name(),
		Image:       parsed.Thumbnail.Source,
		Language:    lang,
		PublishedAt: parsed.Timestamp,
	}
	if err := core.ValidateRawResult(&result); err != nil {
		w.logger.Debug("dropping malformed summary", "err", err)
		return nil, nil
	}

	if limit < 1 {
		return nil, nil
	}
	return []core.RawResult{result}, nil
}
