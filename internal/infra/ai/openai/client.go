package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
	"github.com/dhiaselmi1/documind-ai/internal/infra/ai/prompt"
)

const (
	maxTokens     = 2048
	maxInputChars = 24000
)

// Summarizer is the model-backed variant of the summary capability. It
// satisfies the same agent contract as the heuristic one, so the
// orchestrator never knows the difference.
type Summarizer struct {
	*openai.Client
	Model string
}

func NewSummarizer(apiKey, model string) *Summarizer {
	return &Summarizer{Client: openai.NewClient(apiKey), Model: model}
}

func (c *Summarizer) Name() analysis.AgentName { return analysis.AgentSummary }

func (c *Summarizer) Analyze(ctx context.Context, text string) (analysis.Payload, error) {
	model := c.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(text, maxInputChars)},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	var payload analysis.SummaryPayload
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("model returned malformed JSON: %w", err)
	}
	if payload.KeyTopics == nil {
		payload.KeyTopics = []string{}
	}
	return &payload, nil
}
