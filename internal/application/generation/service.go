// Package generation orchestrates the two-stage pipeline: fiction text from
// the upstream model, then an illustration grounded in phrases extracted
// from that text. Records are persisted for both completed and failed runs;
// a cancelled context persists nothing.
package generation

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"loreforge/internal/domain/content"
	"loreforge/internal/shared/biztime"
	"loreforge/internal/shared/errors"
	"loreforge/internal/shared/logger"
)

// Type selects which stages a request runs.
type Type string

const (
	TypeFiction  Type = "fiction"
	TypeImage    Type = "image"
	TypeCombined Type = "combined"
)

// Request is the inbound generation request shape: parameter values grouped
// by category, plus an optional year.
type Request struct {
	Type       Type                         `json:"type"`
	Parameters map[string]map[string]string `json:"parameters"`
	Year       *int                         `json:"year,omitempty"`
}

// Options carries the pipeline tuning the orchestrator needs beyond its
// collaborators. It is passed in at construction; the orchestrator never
// reads ambient configuration.
type Options struct {
	ImageStyle      string
	MaxImagePrompt  int
	MaxFictionChars int
}

// Service sequences fiction and image generation and persists the outcome.
// The image processor is an optional capability: when absent, image results
// keep the provider URL instead of stored bytes.
type Service struct {
	textGen      TextGenerator
	imageGen     ImageGenerator
	processor    ImageProcessor
	hasProcessor bool
	contents     content.Repository
	opts         Options
	logger       logger.Interface
}

func NewService(
	textGen TextGenerator,
	imageGen ImageGenerator,
	processor ImageProcessor,
	contents content.Repository,
	opts Options,
	log logger.Interface,
) *Service {
	return &Service{
		textGen:      textGen,
		imageGen:     imageGen,
		processor:    processor,
		hasProcessor: processor != nil,
		contents:     contents,
		opts:         opts,
		logger:       log,
	}
}

// Generate dispatches a request to the matching pipeline.
func (s *Service) Generate(ctx context.Context, req Request) (*content.GeneratedContent, error) {
	switch req.Type {
	case TypeFiction:
		return s.GenerateFiction(ctx, req.Parameters, req.Year)
	case TypeImage:
		return s.GenerateImage(ctx, req.Parameters, req.Year, "")
	case TypeCombined:
		return s.GenerateCombined(ctx, req.Parameters, req.Year)
	default:
		return nil, errors.NewValidationError(fmt.Sprintf("unknown generation type: %q", req.Type))
	}
}

// GenerateFiction runs the text stage alone and persists the result.
func (s *Service) GenerateFiction(ctx context.Context, parameters map[string]map[string]string, year *int) (*content.GeneratedContent, error) {
	start := time.Now()

	outcome, err := s.runFictionStage(ctx, parameters, year)
	if err != nil {
		s.persistFailure(ctx, fallbackTitle("Story"), "", "", parameters,
			map[string]any{"type": string(TypeFiction)}, start, err)
		return nil, err
	}

	metadata := map[string]any{
		"type":    string(TypeFiction),
		"fiction": outcome.meta,
	}

	record, err := content.NewGeneratedContent(
		outcome.title, outcome.body, "", parameters, metadata,
		time.Since(start).Milliseconds(), outcome.wordCount,
		content.StatusCompleted, "",
	)
	if err != nil {
		return nil, errors.NewInternalError("failed to assemble generated content").WithCause(err)
	}

	if err := s.contents.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Infow("fiction generation completed",
		"content_id", record.ID(),
		"word_count", outcome.wordCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return record, nil
}

// GenerateImage runs the image stage alone. seedText, when supplied, grounds
// the prompt in extracted visual phrases.
func (s *Service) GenerateImage(ctx context.Context, parameters map[string]map[string]string, year *int, seedText string) (*content.GeneratedContent, error) {
	start := time.Now()

	outcome, err := s.runImageStage(ctx, seedText, year)
	if err != nil {
		prompt := ""
		if outcome != nil {
			prompt = outcome.prompt
		}
		s.persistFailure(ctx, fallbackTitle("Illustration"), "", prompt, parameters,
			map[string]any{"type": string(TypeImage)}, start, err)
		return nil, err
	}

	metadata := map[string]any{
		"type":  string(TypeImage),
		"image": outcome.meta,
	}

	record, err := content.NewGeneratedContent(
		fallbackTitle("Illustration"), "", outcome.prompt, parameters, metadata,
		time.Since(start).Milliseconds(), 0,
		content.StatusCompleted, "",
	)
	if err != nil {
		return nil, errors.NewInternalError("failed to assemble generated content").WithCause(err)
	}
	if outcome.artifact != nil {
		record.AttachImage(outcome.artifact)
	}

	if err := s.contents.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Infow("image generation completed",
		"content_id", record.ID(),
		"blob_mode", outcome.artifact != nil,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return record, nil
}

// GenerateCombined runs fiction first and, only on its success, the image
// stage seeded with the generated text. Both stage metadata blocks land in
// one record under their own keys.
func (s *Service) GenerateCombined(ctx context.Context, parameters map[string]map[string]string, year *int) (*content.GeneratedContent, error) {
	start := time.Now()

	fiction, err := s.runFictionStage(ctx, parameters, year)
	if err != nil {
		s.persistFailure(ctx, fallbackTitle("Story"), "", "", parameters,
			map[string]any{"type": string(TypeCombined)}, start, err)
		return nil, err
	}

	image, err := s.runImageStage(ctx, fiction.body, year)
	if err != nil {
		prompt := ""
		if image != nil {
			prompt = image.prompt
		}
		s.persistFailure(ctx, fiction.title, fiction.body, prompt, parameters,
			map[string]any{"type": string(TypeCombined), "fiction": fiction.meta}, start, err)
		return nil, err
	}

	metadata := map[string]any{
		"type":    string(TypeCombined),
		"fiction": fiction.meta,
		"image":   image.meta,
	}

	record, err := content.NewGeneratedContent(
		fiction.title, fiction.body, image.prompt, parameters, metadata,
		time.Since(start).Milliseconds(), fiction.wordCount,
		content.StatusCompleted, "",
	)
	if err != nil {
		return nil, errors.NewInternalError("failed to assemble generated content").WithCause(err)
	}
	if image.artifact != nil {
		record.AttachImage(image.artifact)
	}

	if err := s.contents.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Infow("combined generation completed",
		"content_id", record.ID(),
		"word_count", fiction.wordCount,
		"blob_mode", image.artifact != nil,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return record, nil
}

type fictionOutcome struct {
	title     string
	body      string
	wordCount int
	meta      map[string]any
}

func (s *Service) runFictionStage(ctx context.Context, parameters map[string]map[string]string, year *int) (*fictionOutcome, error) {
	prompt := BuildFictionPrompt(parameters, year)

	result, err := s.textGen.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	title, body := splitTitle(result.Text)
	body = clampFiction(body, s.opts.MaxFictionChars)
	return &fictionOutcome{
		title:     title,
		body:      body,
		wordCount: len(strings.Fields(body)),
		meta: map[string]any{
			"model":             result.Model,
			"prompt_tokens":     result.PromptTokens,
			"completion_tokens": result.OutputTokens,
		},
	}, nil
}

type imageOutcome struct {
	artifact *content.ImageArtifact
	prompt   string
	meta     map[string]any
}

// runImageStage returns a partially filled outcome alongside its error so
// failure records can still carry the submitted prompt.
func (s *Service) runImageStage(ctx context.Context, seedText string, year *int) (*imageOutcome, error) {
	var phrases []string
	if seedText != "" {
		phrases = ExtractVisualElements(seedText)
	}
	prompt := BuildImagePrompt(phrases, year, s.opts.ImageStyle, s.opts.MaxImagePrompt)
	outcome := &imageOutcome{prompt: prompt}

	result, err := s.imageGen.GenerateImage(ctx, prompt)
	if err != nil {
		return outcome, err
	}

	meta := map[string]any{"model": result.Model}
	if result.RevisedPrompt != "" {
		meta["revised_prompt"] = result.RevisedPrompt
	}

	if s.hasProcessor {
		processed, err := s.processor.Process(ctx, result)
		if err != nil {
			return outcome, err
		}
		outcome.artifact = &content.ImageArtifact{
			Data:           processed.Data,
			Thumbnail:      processed.Thumbnail,
			Format:         processed.Format,
			SizeBytes:      len(processed.Data),
			ThumbSizeBytes: len(processed.Thumbnail),
		}
	} else {
		// URL mode: the provider link is the only reference we keep.
		meta["image_url"] = result.URL
	}

	outcome.meta = meta
	return outcome, nil
}

// persistFailure records a failed run. Cancelled contexts persist nothing;
// a persistence error here is logged, not propagated, so it cannot mask the
// original failure.
func (s *Service) persistFailure(
	ctx context.Context,
	title, body, imagePrompt string,
	parameters map[string]map[string]string,
	metadata map[string]any,
	start time.Time,
	cause error,
) {
	if ctx.Err() != nil {
		return
	}

	record, err := content.NewGeneratedContent(
		title, body, imagePrompt, parameters, metadata,
		time.Since(start).Milliseconds(), len(strings.Fields(body)),
		content.StatusFailed, cause.Error(),
	)
	if err != nil {
		s.logger.Errorw("failed to assemble failure record", "error", err)
		return
	}

	if err := s.contents.Create(ctx, record); err != nil {
		s.logger.Errorw("failed to persist failure record",
			"content_id", record.ID(), "error", err)
		return
	}

	s.logger.Warnw("generation failed",
		"content_id", record.ID(),
		"error", cause,
	)
}

var titleLinePattern = regexp.MustCompile(`(?m)^\s*Title:\s*(.+?)\s*$`)

const maxInlineTitleLen = 80

// splitTitle extracts the title from generated text: a "Title:" line when
// present, else a short first line, else a date-stamped fallback.
func splitTitle(text string) (string, string) {
	text = strings.TrimSpace(text)

	if loc := titleLinePattern.FindStringSubmatchIndex(text); loc != nil {
		title := cleanTitle(text[loc[2]:loc[3]])
		body := strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
		if title != "" {
			return clampTitle(title), body
		}
	}

	first, rest, found := strings.Cut(text, "\n")
	first = cleanTitle(first)
	if found && first != "" && len(first) <= maxInlineTitleLen {
		return clampTitle(first), strings.TrimSpace(rest)
	}

	return fallbackTitle("Story"), text
}

// cleanTitle drops markdown heading markers and wrapping quotes.
func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "# ")
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

func clampTitle(s string) string {
	if len(s) > content.MaxTitleLength {
		return s[:content.MaxTitleLength]
	}
	return s
}

// clampFiction bounds the prose to the configured cap, cutting on a word
// boundary. A non-positive cap falls back to the storage bound.
func clampFiction(body string, maxChars int) string {
	if maxChars <= 0 || maxChars > content.MaxFictionLength {
		maxChars = content.MaxFictionLength
	}
	if len(body) <= maxChars {
		return body
	}
	cut := body[:maxChars]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}

func fallbackTitle(kind string) string {
	return fmt.Sprintf("%s %s", kind, biztime.FallbackTitleStamp(biztime.NowUTC()))
}
