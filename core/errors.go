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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidRawResult indicates a RawResult failed validation.
	ErrInvalidRawResult = errors.New("invalid raw result")

	// ErrInvalidSearchRecord indicates a SearchRecord failed validation.
	ErrInvalidSearchRecord = errors.New("invalid search record")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyURL indicates the URL field is empty.
	ErrEmptyURL = errors.New("url cannot be empty")

	// ErrEmptyQuery indicates the query text is empty.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrQueryTooShort indicates the query text is below the minimum length.
	ErrQueryTooShort = errors.New("query must be at least 3 characters")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
