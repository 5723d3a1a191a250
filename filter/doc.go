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


// Package filter narrows raw search results to the caller's criteria.
//
// Apply is pure and synchronous: no I/O, no mutation of surviving results,
// idempotent under the same criteria and clock. Stages run in a fixed order
// (domain, date window, content type, language) and each one only removes
// entries.
package filter
