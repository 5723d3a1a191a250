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


// Package provider wraps external content sources behind the uniform Adapter
// fetch contract consumed by the race stage.
//
// Five adapters ship with the module:
//
//   - GNews: article search API (requires an API key)
//   - Google, Bing: result-page scraping via goquery
//   - DuckDuckGo: instant answer API (one abstract per topic)
//   - Wikipedia: REST page-summary API, edition selected by language
//
// # Failure Contract
//
// Adapters never return an error for ordinary failure modes: HTTP error
// statuses, malformed payloads and empty bodies all yield an empty result
// slice. Entries missing a title or URL are dropped rather than forwarded.
// Only unexpected faults (request construction, transport-level corruption)
// propagate, and the race stage treats those the same as an empty
// contribution.
//
// All adapters honor context cancellation and deadlines through
// http.NewRequestWithContext.
package provider
