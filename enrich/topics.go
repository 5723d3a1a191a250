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


package enrich

import (
	"sort"
	"strings"
)

// MaxTopics caps the number of topic tokens attached to a result.
const MaxTopics = 5

// Stop words to skip during topic extraction, English and French mixed since
// results arrive in both.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "its": true, "his": true, "her": true, "has": true,
	"les": true, "des": true, "une": true, "dans": true, "est": true, "qui": true,
	"que": true, "pour": true, "sur": true, "par": true, "avec": true, "son": true,
	"ses": true, "aux": true, "plus": true, "pas": true, "sont": true, "ont": true,
	"mais": true, "comme": true, "tout": true, "nous": true, "vous": true,
	"elle": true, "ils": true, "leur": true, "cette": true, "aussi": true,
}

// tokenizeAndFilter splits text into words, lowercases, trims punctuation, and
// removes stop words and short tokens.
func tokenizeAndFilter(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}«»"))
		if len(cleaned) < 3 || stopWords[cleaned] {
			continue
		}
		filtered = append(filtered, cleaned)
	}

	return filtered
}

// Topics extracts up to max topic tokens from the text: the most frequent
// non-stopword tokens, ties broken by first appearance.
func Topics(text string, max int) []string {
	if max <= 0 {
		max = MaxTopics
	}

	tokens := tokenizeAndFilter(text)
	if len(tokens) == 0 {
		return nil
	}

	counts := make(map[string]int, len(tokens))
	firstSeen := make(map[string]int, len(tokens))
	unique := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		if counts[tok] == 0 {
			firstSeen[tok] = i
			unique = append(unique, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(unique, func(i, j int) bool {
		if counts[unique[i]] != counts[unique[j]] {
			return counts[unique[i]] > counts[unique[j]]
		}
		return firstSeen[unique[i]] < firstSeen[unique[j]]
	})

	if len(unique) > max {
		unique = unique[:max]
	}
	return unique
}
