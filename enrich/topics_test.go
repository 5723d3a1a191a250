package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopicsMostFrequentFirst(t *testing.T) {
	text := "climat climat climat énergie énergie transition"
	got := Topics(text, MaxTopics)
	assert.Equal(t, []string{"climat", "énergie", "transition"}, got)
}

func TestTopicsCapped(t *testing.T) {
	text := "alpha bravo charlie delta echo foxtrot golf"
	got := Topics(text, MaxTopics)
	assert.Len(t, got, MaxTopics)
	assert.Equal(t, "alpha", got[0], "ties break by first appearance")
}

func TestTopicsSkipsStopWordsAndShortTokens(t *testing.T) {
	text := "le climat est dans une phase de transition et il va durer"
	got := Topics(text, MaxTopics)
	assert.NotContains(t, got, "est")
	assert.NotContains(t, got, "une")
	assert.NotContains(t, got, "et")
	assert.NotContains(t, got, "il")
	assert.Contains(t, got, "climat")
	assert.Contains(t, got, "transition")
}

func TestTopicsTrimsPunctuation(t *testing.T) {
	got := Topics("«climat», (transition)! climat?", MaxTopics)
	assert.Equal(t, []string{"climat", "transition"}, got)
}

func TestTopicsEmptyText(t *testing.T) {
	assert.Nil(t, Topics("", MaxTopics))
	assert.Nil(t, Topics("le la et", MaxTopics))
}
