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

	"github.com/poiesic/scout/core"
)

const duckduckgoBaseURL = "https://api.duckduckgo.com"

// DuckDuckGo adapts the DuckDuckGo instant answer API. It yields at most one
// result: the abstract for the query topic, which makes it the preferred
// candidate for definition-intent queries.
type DuckDuckGo struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// DuckDuckGoOption configures a DuckDuckGo adapter.
type DuckDuckGoOption func(*DuckDuckGo)

// WithDuckDuckGoBaseURL overrides the API endpoint, mainly for tests.
func WithDuckDuckGoBaseURL(base string) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		d.baseURL = base
	}
}

// WithDuckDuckGoHTTPClient sets a custom HTTP client.
func WithDuckDuckGoHTTPClient(client *http.Client) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		if client != nil {
			d.client = client
		}
	}
}

// NewDuckDuckGo creates a DuckDuckGo instant answer adapter.
func NewDuckDuckGo(opts ...DuckDuckGoOption) *DuckDuckGo {
	d := &DuckDuckGo{
		baseURL: duckduckgoBaseURL,
		client:  newHTTPClient(),
		logger:  slog.Default().With("provider", "duckduckgo"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the source identifier.
func (d *DuckDuckGo) Name() string {
	return "duckduckgo"
}

type duckduckgoResponse struct {
	Heading      string `json:"Heading"`
	AbstractText string `json:"AbstractText"`
	AbstractURL  string `json:"AbstractURL"`
	Image        string `json:"Image"`
}

// Fetch queries the instant answer endpoint. Topics without an abstract
// produce an empty result set.
func (d *DuckDuckGo) Fetch(ctx context.Context, query string, limit int, lang string) ([]core.RawResult, error) {
	endpoint := fmt.Sprintf("%s/?q=%s&format=json&no_html=1&skip_disambig=1",
		d.baseURL, url.QueryEscape(query))

	body, err := getBody(ctx, d.client, endpoint)
	if err != nil {
		d.logger.Warn("fetch failed", "err", err)
		return nil, nil
	}

	var parsed duckduckgoResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		d.logger.Warn("malformed response", "err", err)
		return nil, nil
	}

	if parsed.AbstractText == "" {
		return nil, nil
	}

	title := parsed.Heading
	if title == "" {
		title = query
	}
	result := core.RawResult{
		Title:    title,
		URL:      parsed.AbstractURL,
		Snippet:  parsed.AbstractText,
		Source:   d.Name(),
		Image:    parsed.Image,
		Language: lang,
	}
	if err := core.ValidateRawResult(&result); err != nil {
		d.logger.Debug("dropping malformed abstract", "err", err)
		return nil, nil
	}

	if limit < 1 {
		return nil, nil
	}
	return []core.RawResult{result}, nil
}
