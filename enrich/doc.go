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


// Package enrich attaches AI-derived summaries, relevance scores and topic
// tags to raw search results, then orders them by relevance.
//
// Partial enrichment is a success: any single item whose inference fails
// gets neutral defaults (summary unavailable, score 5, no topics,
// Enriched=false) and the batch continues. Only systemic faults abort the
// batch, and those are retried with capped exponential backoff before the
// error surfaces. The output always has exactly one entry per input item.
package enrich
