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


package filter

import (
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/poiesic/scout/core"
)

// Apply runs the filter stages over the results in order: domain, date
// window, content type, language. Each stage selects, never transforms;
// surviving results are the caller's instances, unmodified. An empty output
// is a valid outcome.
func Apply(results []core.RawResult, criteria core.FilterCriteria) []core.RawResult {
	return applyAt(results, criteria, time.Now())
}

func applyAt(results []core.RawResult, criteria core.FilterCriteria, now time.Time) []core.RawResult {
	filtered := make([]core.RawResult, 0, len(results))
	for _, r := range results {
		if !matchDomain(r, criteria.Domain) {
			continue
		}
		if !matchDate(r, criteria.Date, now) {
			continue
		}
		if !matchType(r, criteria.Type) {
			continue
		}
		if !matchLanguage(r, criteria.Language) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// matchDomain is a case-insensitive substring match against the result URL.
// An empty criterion matches everything.
func matchDomain(r core.RawResult, domain string) bool {
	if domain == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.URL), strings.ToLower(domain))
}

// matchDate keeps results published at or after the window cutoff. Results
// without a date pass only when no date window is active: an active window is
// a claim about recency that an undated result cannot support.
func matchDate(r core.RawResult, window core.DateWindow, now time.Time) bool {
	cutoff, active := window.Cutoff(now)
	if !active {
		return true
	}
	if !r.HasDate() {
		return false
	}
	return !r.PublishedAt.Before(cutoff)
}

func matchType(r core.RawResult, contentType core.ContentType) bool {
	if contentType == "" || contentType == core.ContentAll {
		return true
	}
	return ContentTypeOf(r) == contentType
}

func matchLanguage(r core.RawResult, lang string) bool {
	if lang == "" || lang == "any" {
		return true
	}
	return strings.EqualFold(r.Language, lang)
}

var (
	documentExtensions = map[string]bool{
		".pdf": true, ".doc": true, ".docx": true,
		".ppt": true, ".pptx": true, ".xls": true, ".xlsx": true,
	}
	imageExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true,
		".gif": true, ".webp": true, ".svg": true,
	}
	videoHosts = []string{
		"youtube.com", "youtu.be", "vimeo.com", "dailymotion.com",
	}
)

// ContentTypeOf classifies a result by its URL. Providers deliver untyped
// entries, so the type is inferred: document and image extensions and known
// video hosts are recognized, everything else is an article.
func ContentTypeOf(r core.RawResult) core.ContentType {
	parsed, err := url.Parse(r.URL)
	if err != nil {
		return core.ContentArticle
	}

	ext := strings.ToLower(path.Ext(parsed.Path))
	if documentExtensions[ext] {
		return core.ContentDocument
	}
	if imageExtensions[ext] {
		return core.ContentImage
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	for _, vh := range videoHosts {
		if host == vh || strings.HasSuffix(host, "."+vh) {
			return core.ContentVideo
		}
	}

	return core.ContentArticle
}
