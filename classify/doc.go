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


// Package classify turns raw user queries into classified core.Query values.
//
// Classification covers three concerns:
//   - Intent: keyword-table matching into definition/news/how/fact/general,
//     which drives provider candidate selection in the race stage
//   - Language: advisory detection via the ai collaborator with a declared
//     or default fallback
//   - Normalization: stripping interrogative filler ("qu'est-ce que",
//     "what is", ...) so providers receive the subject of the question
package classify
