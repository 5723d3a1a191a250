package classify

import "regexp"

// Intent marker tables. Checked in order: definition, news, how, fact.
// A query matching none of them classifies as general.
var (
	definitionMarkers = []string{
		"qu'est-ce que", "qu'est ce que", "c'est quoi", "quoi est",
		"définition", "définir", "what is", "what are", "define",
		"definition of", "meaning of",
	}

	newsMarkers = []string{
		"actualité", "actualités", "nouvelles", "infos", "news",
		"breaking", "événements", "politique", "économie", "sport",
	}

	howMarkers = []string{
		"comment fonctionne", "comment faire", "comment", "à quoi sert",
		"how does", "how do", "how to", "how can",
	}

	factMarkers = []string{
		"qui est", "quand", "où est", "où se trouve", "pourquoi",
		"quelle est", "quel est", "combien", "who is", "when", "where",
		"why", "which",
	}
)

// newsCategories maps gnews topic names to the keywords that select them.
// Ordered so a query matching several categories always resolves the same way.
var newsCategories = []struct {
	name     string
	keywords []string
}{
	{"world", []string{"monde", "international", "global"}},
	{"nation", []string{"national", "pays", "france", "cameroon", "cameroun"}},
	{"business", []string{"business", "économie", "finance", "bourse", "entreprise"}},
	{"technology", []string{"tech", "technologie", "informatique", "innovation"}},
	{"entertainment", []string{"cinéma", "musique", "spectacle", "divertissement"}},
	{"sports", []string{"sport", "football", "rugby", "tennis", "basket"}},
	{"science", []string{"science", "recherche", "découverte", "espace"}},
	{"health", []string{"santé", "médecine", "bien-être", "virus", "covid"}},
}

// fillerPhrases are interrogative scaffolding stripped during normalization
// so providers receive only the subject of the question.
var fillerPhrases = []string{
	"qu'est-ce que", "qu'est ce que", "c'est quoi", "quoi est",
	"définition de", "définir", "explique", "expliquez",
	"comment fonctionne", "à quoi sert", "quelle est", "quel est",
	"qui est", "où se trouve", "où est", "quand", "comment", "pourquoi",
	"what is", "what are", "how does", "how do", "how to", "define",
	"explain", "meaning of", "who is", "where is", "why", "when", "how",
}

var (
	fillerPatterns = compileFillerPatterns()
	nonWordChars   = regexp.MustCompile(`[^\p{L}\p{N}\s.\-]`)
	multiSpace     = regexp.MustCompile(`\s+`)
)

func compileFillerPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(fillerPhrases))
	for _, phrase := range fillerPhrases {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(phrase)+`\b`))
	}
	return patterns
}
