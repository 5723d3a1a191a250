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
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/poiesic/scout/core"
)

const googleBaseURL = "https://www.google.com"

// Google scrapes the Google result page. Selectors follow the classic
// desktop layout (div.g blocks); layout changes degrade to an empty result
// set, never an error.
type Google struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// GoogleOption configures a Google adapter.
type GoogleOption func(*Google)

// WithGoogleBaseURL overrides the endpoint, mainly for tests.
func WithGoogleBaseURL(base string) GoogleOption {
	return func(g *Google) {
		g.baseURL = base
	}
}

// WithGoogleHTTPClient sets a custom HTTP client.
func WithGoogleHTTPClient(client *http.Client) GoogleOption {
	return func(g *Google) {
		if client != nil {
			g.client = client
		}
	}
}

// NewGoogle creates a Google result-page adapter.
func NewGoogle(opts ...GoogleOption) *Google {
	g := &Google{
		baseURL: googleBaseURL,
		client:  newHTTPClient(),
		logger:  slog.Default().With("provider", "google"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the source identifier.
func (g *Google) Name() string {
	return "google"
}

// Fetch scrapes the result page and maps organic result blocks to RawResults.
func (g *Google) Fetch(ctx context.Context, query string, limit int, lang string) ([]core.RawResult, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&num=%d", g.baseURL, url.QueryEscape(query), limit)
	if lang != "" && lang != "any" {
		endpoint += "&hl=" + url.QueryEscape(lang)
	}

	body, err := getBody(ctx, g.client, endpoint)
	if err != nil {
		g.logger.Warn("fetch failed", "err", err)
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		g.logger.Warn("unparsable response", "err", err)
		return nil, nil
	}

	results := make([]core.RawResult, 0, limit)
	doc.Find("div.g").EachWithBreak(func(_ int, block *goquery.Selection) bool {
		title := strings.TrimSpace(block.Find("h3").First().Text())
		href, _ := block.Find("a[href]").First().Attr("href")
		snippet := strings.TrimSpace(block.Find("div.IsZvec, div.VwiC3b").First().Text())

		result := core.RawResult{
			Title:    title,
			URL:      href,
			Snippet:  snippet,
			Source:   g.Name(),
			Language: lang,
		}
		if err := core.ValidateRawResult(&result); err != nil {
			return true
		}
		results = append(results, result)
		return len(results) < limit
	})
	return results, nil
}
