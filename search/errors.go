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

import "errors"

var (
	// ErrClassifierRequired indicates a nil classifier was passed.
	ErrClassifierRequired = errors.New("classifier is required")

	// ErrAdapterSetRequired indicates a nil adapter set was passed.
	ErrAdapterSetRequired = errors.New("adapter set is required")

	// ErrRaceRequired indicates a nil provider race was passed.
	ErrRaceRequired = errors.New("provider race is required")

	// ErrEnricherRequired indicates a nil enricher was passed.
	ErrEnricherRequired = errors.New("enricher is required")
)
