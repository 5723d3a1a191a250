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


package search

import "github.com/poiesic/scout/core"

// SearchMonitor provides hooks to observe the search pipeline.
// Implement this interface to track intermediate stages during a search.
type SearchMonitor interface {
	Start(rawQuery string)
	AfterClassification(query core.Query)
	AfterRace(results []core.RawResult)
	AfterFilter(results []core.RawResult)
	Finish(outcome *core.SearchOutcome)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                   {}
func (n *noopMonitor) AfterClassification(_ core.Query) {}
func (n *noopMonitor) AfterRace(_ []core.RawResult)     {}
func (n *noopMonitor) AfterFilter(_ []core.RawResult)   {}
func (n *noopMonitor) Finish(_ *core.SearchOutcome)     {}
