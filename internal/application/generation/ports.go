package generation

import "context"

// FictionResult is the raw output of a text generation call.
type FictionResult struct {
	Text         string
	Model        string
	PromptTokens int
	OutputTokens int
}

// ImageResult holds either a hosted URL or inline base64 payload,
// depending on what the upstream provider returned.
type ImageResult struct {
	URL           string
	B64Data       string
	Model         string
	RevisedPrompt string
}

// ProcessedImage is a downloaded and re-encoded image with its thumbnail.
type ProcessedImage struct {
	Data      []byte
	Thumbnail []byte
	Format    string
}

// TextGenerator produces fiction text from a composed prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (*FictionResult, error)
}

// ImageGenerator produces an illustration from an image prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (*ImageResult, error)
}

// ImageProcessor turns an upstream image result into stored bytes and a
// thumbnail. Implementations that cannot process images are simply not
// provided; the orchestrator decides URL mode at construction time.
type ImageProcessor interface {
	Process(ctx context.Context, result *ImageResult) (*ProcessedImage, error)
}
