package openai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"loreforge/internal/application/generation"
	"loreforge/internal/infrastructure/config"
	"loreforge/internal/shared/errors"
	"loreforge/internal/shared/logger"
)

// ImageGenerator produces illustrations through the images API. When blob
// storage is enabled it requests base64 payloads so no second fetch is
// needed; otherwise it requests a hosted URL.
type ImageGenerator struct {
	client  *openai.Client
	model   string
	size    string
	quality string
	wantB64 bool
	logger  logger.Interface
}

func NewImageGenerator(client *openai.Client, cfg *config.OpenAIConfig, gen *config.GenerationConfig, log logger.Interface) *ImageGenerator {
	return &ImageGenerator{
		client:  client,
		model:   cfg.ImageModel,
		size:    gen.ImageSize,
		quality: gen.ImageQuality,
		wantB64: gen.ProcessImages,
		logger:  log,
	}
}

func (g *ImageGenerator) GenerateImage(ctx context.Context, prompt string) (*generation.ImageResult, error) {
	req := openai.ImageRequest{
		Model:   g.model,
		Prompt:  prompt,
		N:       1,
		Size:    g.size,
		Quality: g.quality,
	}
	if g.wantB64 {
		req.ResponseFormat = openai.CreateImageResponseFormatB64JSON
	} else {
		req.ResponseFormat = openai.CreateImageResponseFormatURL
	}

	resp, err := g.client.CreateImage(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		g.logger.Errorw("image generation request failed", "model", g.model, "error", err)
		return nil, errors.NewUpstreamError("image generation failed").WithCause(err)
	}

	if len(resp.Data) == 0 {
		return nil, errors.NewUpstreamError("image generation returned no data")
	}

	data := resp.Data[0]
	if data.URL == "" && data.B64JSON == "" {
		return nil, errors.NewUpstreamError("image generation returned neither url nor payload")
	}

	g.logger.Infow("image generated", "model", g.model, "size", g.size)

	return &generation.ImageResult{
		URL:           data.URL,
		B64Data:       data.B64JSON,
		Model:         g.model,
		RevisedPrompt: data.RevisedPrompt,
	}, nil
}
