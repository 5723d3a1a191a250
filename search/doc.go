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


// Package search sequences the full pipeline behind a single entry point:
// classify the query, race the selected providers, filter, enrich, rank.
//
// The orchestrator owns the history lifecycle around a search: the record is
// written before the pipeline runs, completed with the result count on
// success, and deleted on failure. A SearchMonitor can observe each stage;
// see ExecuteWithMonitor.
package search
