package openai

import "fmt"

const summaryPromptTemplate = `Summarize the user's text in at most %d words.
Keep the language of the original text. Output ONLY the summary sentence,
with no preamble, labels or quotation marks.`

const detectLanguagePrompt = `Identify the language of the user's text.
Output ONLY the ISO 639-1 two-letter code in lowercase, e.g. "fr" or "en".
No other text.`

const translatePromptTemplate = `Translate the user's text into the language
with ISO 639-1 code "%s". Output ONLY the translation, nothing else.`

const suggestPromptTemplate = `The user is typing a search query. Complete the
partial query below into at most %d likely full queries, one per line.
Keep the language of the partial query. Output ONLY the completions, one per
line, no numbering and no other text.`

// buildSummaryPrompt creates the summarization system prompt.
func buildSummaryPrompt(maxWords int) string {
	return fmt.Sprintf(summaryPromptTemplate, maxWords)
}

// buildTranslatePrompt creates the translation system prompt for a target language.
func buildTranslatePrompt(targetLang string) string {
	return fmt.Sprintf(translatePromptTemplate, targetLang)
}

// buildSuggestPrompt creates the query completion system prompt.
func buildSuggestPrompt(limit int) string {
	return fmt.Sprintf(suggestPromptTemplate, limit)
}
