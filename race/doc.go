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


// Package race fans a query out to several provider adapters at once and
// returns the first non-empty result set to complete.
//
// The winner is decided by completion order, not candidate priority: a slow
// high-quality engine loses to a fast knowledge source that answered first.
// Candidate failures (errors, timeouts, panics) count as empty contributions
// and can never fail the search; when every candidate is exhausted the race
// returns a single synthetic fallback result instead of an empty set.
//
// Fetches run on a bounded worker pool shared across searches, and the
// losing candidates are cancelled as soon as a winner is known.
package race
