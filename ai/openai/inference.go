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


package openai

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/scout/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrEmptyResponse indicates the model returned no usable output.
var ErrEmptyResponse = errors.New("model returned empty response")

// Inference implements ai.Inference using OpenAI-compatible chat APIs.
type Inference struct {
	client          llms.Model
	summaryMaxWords int
	logger          *slog.Logger
}

// newInference is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newInference(config *ai.Config) (*Inference, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &Inference{
		client:          client,
		summaryMaxWords: config.SummaryMaxWords,
		logger:          slog.Default().With("component", "openai-inference"),
	}, nil
}

// NewInference creates a new inference service using the provided configuration.
//
// Returns ai.Inference interface to enforce abstraction.
func NewInference(config *ai.Config) (ai.Inference, error) {
	return newInference(config)
}

// Summarize produces a short summary of the given text.
func (i *Inference) Summarize(ctx context.Context, text string) (string, error) {
	response, err := i.generate(ctx, buildSummaryPrompt(i.summaryMaxWords), text)
	if err != nil {
		i.logger.Error("failed to summarize", "err", err)
		return "", err
	}
	return response, nil
}

// DetectLanguage returns the ISO 639-1 language code of the text.
func (i *Inference) DetectLanguage(ctx context.Context, text string) (string, error) {
	response, err := i.generate(ctx, detectLanguagePrompt, text)
	if err != nil {
		i.logger.Warn("failed to detect language", "err", err)
		return "", err
	}

	code := strings.ToLower(strings.Trim(response, "\"'` .\n"))
	// Models occasionally answer with the language name; keep only a
	// plausible two-letter code.
	if len(code) != 2 || !isLetter(rune(code[0])) || !isLetter(rune(code[1])) {
		i.logger.Warn("unparsable language detection response", "response", response)
		return "", ErrEmptyResponse
	}
	return code, nil
}

// Translate translates text into the target language.
func (i *Inference) Translate(ctx context.Context, text, targetLang string) (string, error) {
	response, err := i.generate(ctx, buildTranslatePrompt(targetLang), text)
	if err != nil {
		i.logger.Error("failed to translate", "targetLang", targetLang, "err", err)
		return "", err
	}
	return response, nil
}

// Suggest completes a query prefix into up to limit full query suggestions.
func (i *Inference) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit < 1 {
		limit = 1
	}

	response, err := i.generate(ctx, buildSuggestPrompt(limit), prefix)
	if err != nil {
		i.logger.Warn("failed to generate suggestions", "err", err)
		return nil, err
	}

	suggestions := make([]string, 0, limit)
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*0123456789. "))
		if line == "" {
			continue
		}
		suggestions = append(suggestions, line)
		if len(suggestions) == limit {
			break
		}
	}
	return suggestions, nil
}

// generate runs a single system+user chat exchange and returns the trimmed
// first choice.
func (i *Inference) generate(ctx context.Context, systemPrompt, userText string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userText),
			},
		},
	}

	response, err := i.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", ErrEmptyResponse
	}

	// Strip markdown code fences if present
	responseText := strings.TrimSpace(response.Choices[0].Content)
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	if responseText == "" {
		return "", ErrEmptyResponse
	}
	return responseText, nil
}
