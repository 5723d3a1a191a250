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

const bingBaseURL = "https://www.bing.com"

// Bing scrapes the Bing result page (li.b_algo blocks). Layout changes
// degrade to an empty result set, never an error.
type Bing struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// BingOption configures a Bing adapter.
type BingOption func(*Bing)

// WithBingBaseURL overrides the endpoint, mainly for tests.
func WithBingBaseURL(base string) BingOption {
	return func(b *Bing) {
		b.baseURL = base
	}
}

// WithBingHTTPClient sets a custom HTTP client.
func WithBingHTTPClient(client *http.Client) BingOption {
	return func(b *Bing) {
		if client != nil {
			b.client = client
		}
	}
}

// NewBing creates a Bing result-page adapter.
func NewBing(opts ...BingOption) *Bing {
	b := &Bing{
		baseURL: bingBaseURL,
		client:  newHTTPClient(),
		logger:  slog.Default().With("provider", "bing"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the source identifier.
func (b *Bing) Name() string {
	return "bing"
}

// Fetch scrapes the result page and maps algo blocks to RawResults.
func (b *Bing) Fetch(ctx context.Context, query string, limit int, lang string) ([]core.RawResult, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&count=%d", b.baseURL, url.QueryEscape(query), limit)

	body, err := getBody(ctx, b.client, endpoint)
	if err != nil {
		b.logger.Warn("fetch failed", "err", err)
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		b.logger.Warn("unparsable response", "err", err)
		return nil, nil
	}

	results := make([]core.RawResult, 0, limit)
	doc.Find("li.b_algo").EachWithBreak(func(_ int, block *goquery.Selection) bool {
		title := strings.TrimSpace(block.Find("h2").First().Text())
		href, _ := block.Find("a[href]").First().Attr("href")
		snippet := strings.TrimSpace(block.Find("p").First().Text())

		result := core.RawResult{
			Title:    title,
			URL:      href,
			Snippet:  snippet,
			Source:   b.Name(),
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
