package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/scout/ai/mock"
	"github.com/poiesic/scout/core"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		query string
		want  core.IntentType
	}{
		{"qu'est-ce que la photosynthèse", core.IntentDefinition},
		{"quoi est un trou noir", core.IntentDefinition},
		{"c'est quoi le bitcoin", core.IntentDefinition},
		{"what is quantum computing", core.IntentDefinition},
		{"definition of entropy", core.IntentDefinition},
		{"actualités élections", core.IntentNews},
		{"dernières nouvelles du monde", core.IntentNews},
		{"breaking news paris", core.IntentNews},
		{"comment fonctionne un moteur", core.IntentHow},
		{"how does a compiler work", core.IntentHow},
		{"how to bake bread", core.IntentHow},
		{"qui est Marie Curie", core.IntentFact},
		{"la tour eiffel est-elle ouverte ?", core.IntentFact},
		{"climate change", core.IntentGeneral},
		{"tour eiffel", core.IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.query))
		})
	}
}

func TestClassifyIntentDefinitionBeatsQuestion(t *testing.T) {
	// A definition phrased as a question stays a definition.
	assert.Equal(t, core.IntentDefinition, ClassifyIntent("qu'est-ce que la gravité ?"))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"french definition filler", "qu'est-ce que la photosynthèse", "la photosynthèse"},
		{"english filler", "what is a black hole", "a black hole"},
		{"how filler", "comment fonctionne un moteur diesel", "un moteur diesel"},
		{"punctuation stripped", "c'est quoi le bitcoin ?", "le bitcoin"},
		{"plain query untouched", "climate change", "climate change"},
		{"whitespace collapsed", "  tour   eiffel  ", "tour eiffel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.query))
		})
	}
}

func TestNormalizeNeverEmpty(t *testing.T) {
	// Queries made of nothing but filler fall back to the trimmed original.
	got := Normalize("pourquoi")
	assert.Equal(t, "pourquoi", got)

	got = Normalize("  comment  ")
	assert.Equal(t, "comment", got)
}

func TestNewsCategory(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"actualités football", "sports"},
		{"dernières infos santé et covid", "health"},
		{"news technologie innovation", "technology"},
		{"élections régionales", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NewsCategory(tt.query), "query %q", tt.query)
	}
}

func TestClassifierClassify(t *testing.T) {
	inference := mock.NewMockInference()
	inference.DetectLanguageFunc = func(ctx context.Context, text string) (string, error) {
		return "fr", nil
	}

	classifier, err := NewClassifier(inference)
	require.NoError(t, err)

	query, err := classifier.Classify(context.Background(), "qu'est-ce que la photosynthèse", "")
	require.NoError(t, err)
	assert.Equal(t, "qu'est-ce que la photosynthèse", query.Raw)
	assert.Equal(t, "la photosynthèse", query.Normalized)
	assert.Equal(t, "fr", query.Language)
	assert.Equal(t, core.IntentDefinition, query.Intent)
}

func TestClassifierDetectionFailureFallsBack(t *testing.T) {
	inference := mock.NewMockInference()
	inference.DetectLanguageFunc = func(ctx context.Context, text string) (string, error) {
		return "", errors.New("model unavailable")
	}

	classifier, err := NewClassifier(inference)
	require.NoError(t, err)

	// Declared language wins over the default on detection failure.
	query, err := classifier.Classify(context.Background(), "climate change", "en")
	require.NoError(t, err)
	assert.Equal(t, "en", query.Language)

	// Without a declared language, the default applies.
	query, err = classifier.Classify(context.Background(), "climate change", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultLanguage, query.Language)
}

func TestClassifierNilInference(t *testing.T) {
	classifier, err := NewClassifier(nil, WithDefaultLanguage("en"))
	require.NoError(t, err)

	query, err := classifier.Classify(context.Background(), "climate change", "")
	require.NoError(t, err)
	assert.Equal(t, "en", query.Language)
}

func TestClassifierEmptyQuery(t *testing.T) {
	classifier, err := NewClassifier(nil)
	require.NoError(t, err)

	_, err = classifier.Classify(context.Background(), "   ", "")
	assert.ErrorIs(t, err, core.ErrEmptyQuery)
}
