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
	"time"

	"github.com/poiesic/scout/core"
)

const gnewsBaseURL = "https://gnews.io/api/v4"

// GNews adapts the GNews article search API. It requires an API key; without
// one every fetch returns empty, which the race treats as a non-contribution.
type GNews struct {
	apiKey  string
	topic   string // Optional gnews topic, narrows the search when set
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// GNewsOption configures a GNews adapter.
type GNewsOption func(*GNews)

// WithGNewsBaseURL overrides the API endpoint, mainly for tests.
func WithGNewsBaseURL(base string) GNewsOption {
	return func(g *GNews) {
		g.baseURL = base
	}
}

// WithGNewsHTTPClient sets a custom HTTP client.
func WithGNewsHTTPClient(client *http.Client) GNewsOption {
	return func(g *GNews) {
		if client != nil {
			g.client = client
		}
	}
}

// NewGNews creates a GNews adapter. apiKey may be empty; fetches then
// short-circuit to an empty result.
func NewGNews(apiKey string, opts ...GNewsOption) *GNews {
	g := &GNews{
		apiKey:  apiKey,
		baseURL: gnewsBaseURL,
		client:  newHTTPClient(),
		logger:  slog.Default().With("provider", "gnews"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WithTopic returns a copy of the adapter scoped to a news topic for one
// search. The receiver is not modified.
func (g *GNews) WithTopic(topic string) *GNews {
	scoped := *g
	scoped.topic = topic
	return &scoped
}

// Topic returns the news topic the adapter is scoped to, if any.
func (g *GNews) Topic() string {
	return g.topic
}

// Name returns the source identifier.
func (g *GNews) Name() string {
	return "gnews"
}

type gnewsArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	Image       string    `json:"image"`
	PublishedAt time.Time `json:"publishedAt"`
}

type gnewsResponse struct {
	Articles []gnewsArticle `json:"articles"`
}

// Fetch queries the article search endpoint and maps articles to RawResults.
func (g *GNews) Fetch(ctx context.Context, query string, limit int, lang string) ([]core.RawResult, error) {
	if g.apiKey == "" {
		g.logger.Debug("skipping fetch", "err", ErrMissingAPIKey)
		return nil, nil
	}
	if lang == "" {
		lang = "fr"
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&lang=%s&max=%d&token=%s",
		g.baseURL, url.QueryEscape(query), url.QueryEscape(lang), limit, url.QueryEscape(g.apiKey))
	if g.topic != "" {
		endpoint += "&topic=" + url.QueryEscape(g.topic)
	}

	body, err := getBody(ctx, g.client, endpoint)
	if err != nil {
		g.logger.Warn("fetch failed", "err", err)
		return nil, nil
	}

	var parsed gnewsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		g.logger.Warn("malformed response", "err", err)
		return nil, nil
	}

	results := make([]core.RawResult, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		snippet := a.Description
		if snippet == "" {
			snippet = a.Content
		}
		result := core.RawResult{
			Title:       a.Title,
			URL:         a.URL,
			Snippet:     snippet,
			Source:      g.Name(),
			Image:       a.Image,
			Language:    lang,
			PublishedAt: a.PublishedAt,
		}
		if err := core.ValidateRawResult(&result); err != nil {
			g.logger.Debug("dropping malformed article", "err", err)
			continue
		}
		results = append(results, result)
		if len(results) == limit {
			break
		}
	}
	return results, nil
}
