package openai

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"loreforge/internal/application/generation"
	"loreforge/internal/infrastructure/config"
	"loreforge/internal/shared/errors"
	"loreforge/internal/shared/logger"
)

// TextGenerator produces fiction text through the chat completions API.
type TextGenerator struct {
	client       *openai.Client
	model        string
	systemPrompt string
	temperature  float32
	maxTokens    int
	logger       logger.Interface
}

func NewTextGenerator(client *openai.Client, cfg *config.OpenAIConfig, gen *config.GenerationConfig, log logger.Interface) *TextGenerator {
	return &TextGenerator{
		client:       client,
		model:        cfg.TextModel,
		systemPrompt: gen.SystemPrompt,
		temperature:  gen.Temperature,
		maxTokens:    gen.MaxTokens,
		logger:       log,
	}
}

func (g *TextGenerator) GenerateText(ctx context.Context, prompt string) (*generation.FictionResult, error) {
	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: g.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		// Context cancellation is the caller's decision, not an upstream fault.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		g.logger.Errorw("text generation request failed", "model", g.model, "error", err)
		return nil, errors.NewUpstreamError("text generation failed").WithCause(err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.NewUpstreamError("text generation returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, errors.NewUpstreamError("text generation returned empty content")
	}

	g.logger.Infow("fiction text generated",
		"model", resp.Model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)

	return &generation.FictionResult{
		Text:         text,
		Model:        resp.Model,
		PromptTokens: resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}
