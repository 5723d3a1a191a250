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


// Package storage defines the persistence contract for search history and
// its serialization helpers. The BadgerDB implementation lives in the badger
// subpackage.
//
// The history follows a start/finish/delete lifecycle: the orchestrator
// records a search before running it, fills in the result count on success,
// and deletes the in-flight record when the pipeline fails so no dangling
// entry survives a dropped search.
package storage
