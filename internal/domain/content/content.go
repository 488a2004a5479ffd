// Package content holds generated artifacts: fiction text with optional image
// binaries. Records are created by the generation pipeline and are immutable
// afterwards; a retry produces a new record instead of resurrecting a failed
// one.
package content

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"loreforge/internal/shared/biztime"
)

// Status is the lifecycle state of a generated artifact.
type Status string

const (
	StatusPending    Status = "pending"
	StatusGenerating Status = "generating"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Field bounds enforced at creation.
const (
	MaxTitleLength       = 255
	MaxFictionLength     = 50000
	MaxImagePromptLength = 4000
)

// ImageArtifact is the binary result of image generation in blob mode.
// URL-mode results carry no artifact; the record then stores the provider URL
// inside its metadata.
type ImageArtifact struct {
	Data           []byte
	Thumbnail      []byte
	Format         string
	SizeBytes      int
	ThumbSizeBytes int
}

// GeneratedContent is one stored generation result.
type GeneratedContent struct {
	id             string
	title          string
	fictionContent string
	image          *ImageArtifact
	imagePrompt    string
	promptData     map[string]map[string]string
	metadata       map[string]any
	generationTime int64 // milliseconds
	wordCount      int
	status         Status
	errorMessage   string
	createdAt      time.Time
	updatedAt      time.Time
}

// NewGeneratedContent creates a record for a finished (completed or failed)
// generation. Length bounds on title and fiction content are enforced here;
// over-long input is rejected, not truncated.
func NewGeneratedContent(
	title string,
	fictionContent string,
	imagePrompt string,
	promptData map[string]map[string]string,
	metadata map[string]any,
	generationTimeMS int64,
	wordCount int,
	status Status,
	errorMessage string,
) (*GeneratedContent, error) {
	if len(title) > MaxTitleLength {
		return nil, fmt.Errorf("title exceeds %d characters", MaxTitleLength)
	}
	if len(fictionContent) > MaxFictionLength {
		return nil, fmt.Errorf("fiction content exceeds %d characters", MaxFictionLength)
	}
	if len(imagePrompt) > MaxImagePromptLength {
		return nil, fmt.Errorf("image prompt exceeds %d characters", MaxImagePromptLength)
	}
	if generationTimeMS < 0 {
		return nil, fmt.Errorf("generation time must not be negative")
	}
	if wordCount < 0 {
		return nil, fmt.Errorf("word count must not be negative")
	}
	if !isValidStatus(status) {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	now := biztime.NowUTC()
	return &GeneratedContent{
		id:             uuid.NewString(),
		title:          title,
		fictionContent: fictionContent,
		imagePrompt:    imagePrompt,
		promptData:     promptData,
		metadata:       metadata,
		generationTime: generationTimeMS,
		wordCount:      wordCount,
		status:         status,
		errorMessage:   errorMessage,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructGeneratedContent rebuilds a record from the persistence layer.
func ReconstructGeneratedContent(
	id string,
	title string,
	fictionContent string,
	image *ImageArtifact,
	imagePrompt string,
	promptData map[string]map[string]string,
	metadata map[string]any,
	generationTimeMS int64,
	wordCount int,
	status Status,
	errorMessage string,
	createdAt, updatedAt time.Time,
) *GeneratedContent {
	return &GeneratedContent{
		id:             id,
		title:          title,
		fictionContent: fictionContent,
		image:          image,
		imagePrompt:    imagePrompt,
		promptData:     promptData,
		metadata:       metadata,
		generationTime: generationTimeMS,
		wordCount:      wordCount,
		status:         status,
		errorMessage:   errorMessage,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// AttachImage binds the binary image artifact to a not-yet-persisted record.
func (g *GeneratedContent) AttachImage(image *ImageArtifact) {
	g.image = image
	g.updatedAt = biztime.NowUTC()
}

// Getters
func (g *GeneratedContent) ID() string                               { return g.id }
func (g *GeneratedContent) Title() string                            { return g.title }
func (g *GeneratedContent) FictionContent() string                   { return g.fictionContent }
func (g *GeneratedContent) Image() *ImageArtifact                    { return g.image }
func (g *GeneratedContent) ImagePrompt() string                      { return g.imagePrompt }
func (g *GeneratedContent) PromptData() map[string]map[string]string { return g.promptData }
func (g *GeneratedContent) Metadata() map[string]any                 { return g.metadata }
func (g *GeneratedContent) GenerationTimeMS() int64                  { return g.generationTime }
func (g *GeneratedContent) WordCount() int                           { return g.wordCount }
func (g *GeneratedContent) Status() Status                           { return g.status }
func (g *GeneratedContent) ErrorMessage() string                     { return g.errorMessage }
func (g *GeneratedContent) CreatedAt() time.Time                     { return g.createdAt }
func (g *GeneratedContent) UpdatedAt() time.Time                     { return g.updatedAt }

// HasImage reports whether a binary image blob is stored for this record.
func (g *GeneratedContent) HasImage() bool {
	return g.image != nil && g.image.SizeBytes > 0
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusGenerating, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}
