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


package race

import (
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/provider"
)

// AdapterSet holds the configured provider adapters the race selects
// candidates from. Nil entries are simply skipped, so a deployment without
// a GNews API key still races the remaining providers.
type AdapterSet struct {
	News       *provider.GNews
	Google     provider.Adapter
	Bing       provider.Adapter
	DuckDuckGo provider.Adapter
	Wikipedia  provider.Adapter
}

// Candidates selects the providers to race for a classified query.
//
// Definition lookups favor the knowledge sources, news queries the article
// API, and everything else races the full engine set. A non-empty news
// category scopes the GNews adapter to that topic.
func (s *AdapterSet) Candidates(intent core.IntentType, category string) []provider.Adapter {
	var selected []provider.Adapter

	add := func(adapters ...provider.Adapter) {
		for _, a := range adapters {
			if a != nil {
				selected = append(selected, a)
			}
		}
	}

	news := func() provider.Adapter {
		if s.News == nil {
			return nil
		}
		if category != "" {
			return s.News.WithTopic(category)
		}
		return s.News
	}

	switch intent {
	case core.IntentDefinition:
		add(s.DuckDuckGo, s.Google)
	case core.IntentNews:
		add(news(), s.Google)
	default:
		add(s.Google, s.Bing, s.DuckDuckGo, s.Wikipedia)
		// A general query that still reads like news (a detected category)
		// gets the article API in the race too.
		if category != "" {
			add(news())
		}
	}

	return selected
}
