// Package imaging downloads generated images and produces the stored blob
// plus a fixed-size thumbnail. It is an optional capability: when image
// processing is disabled the orchestrator is constructed without it and
// records keep the hosted URL instead.
package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"loreforge/internal/application/generation"
	"loreforge/internal/shared/errors"
	"loreforge/internal/shared/logger"
)

const (
	thumbnailSize    = 150
	maxImageBytes    = 20 << 20 // 20MB
	downloadTimeout  = 60 * time.Second
	jpegQuality      = 90
	thumbJPEGQuality = 80
)

// allowedImageMIMETypes are the formats the store accepts.
var allowedImageMIMETypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/webp": "webp",
}

// Processor implements generation.ImageProcessor.
type Processor struct {
	httpClient *http.Client
	logger     logger.Interface
}

func NewProcessor(log logger.Interface) *Processor {
	return &Processor{
		httpClient: &http.Client{Timeout: downloadTimeout},
		logger:     log,
	}
}

// Process resolves the upstream result to raw bytes, validates the format,
// re-encodes the full image as JPEG and renders a square center-cropped
// thumbnail.
func (p *Processor) Process(ctx context.Context, result *generation.ImageResult) (*generation.ProcessedImage, error) {
	raw, err := p.resolveBytes(ctx, result)
	if err != nil {
		return nil, err
	}

	mtype := mimetype.Detect(raw)
	format, ok := allowedImageMIMETypes[mtype.String()]
	if !ok {
		return nil, errors.NewUpstreamError(fmt.Sprintf("unsupported image format: %s", mtype.String()))
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.NewUpstreamError("failed to decode generated image").WithCause(err)
	}

	var full bytes.Buffer
	if err := jpeg.Encode(&full, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	thumb, err := renderThumbnail(img)
	if err != nil {
		return nil, err
	}

	p.logger.Infow("image processed",
		"source_format", format,
		"size_bytes", full.Len(),
		"thumb_bytes", len(thumb),
	)

	return &generation.ProcessedImage{
		Data:      full.Bytes(),
		Thumbnail: thumb,
		Format:    "jpeg",
	}, nil
}

func (p *Processor) resolveBytes(ctx context.Context, result *generation.ImageResult) ([]byte, error) {
	if result.B64Data != "" {
		raw, err := base64.StdEncoding.DecodeString(result.B64Data)
		if err != nil {
			return nil, errors.NewUpstreamError("invalid base64 image payload").WithCause(err)
		}
		return raw, nil
	}

	if result.URL == "" {
		return nil, errors.NewUpstreamError("image result carries neither payload nor url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, result.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.NewUpstreamError("failed to download generated image").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewUpstreamError(fmt.Sprintf("image download returned status %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, errors.NewUpstreamError("failed to read image body").WithCause(err)
	}
	if len(raw) > maxImageBytes {
		return nil, errors.NewUpstreamError("downloaded image exceeds size limit")
	}

	return raw, nil
}

// renderThumbnail scales the largest centered square of the source down to
// thumbnailSize x thumbnailSize.
func renderThumbnail(src image.Image) ([]byte, error) {
	bounds := src.Bounds()
	side := bounds.Dx()
	if bounds.Dy() < side {
		side = bounds.Dy()
	}
	x0 := bounds.Min.X + (bounds.Dx()-side)/2
	y0 := bounds.Min.Y + (bounds.Dy()-side)/2
	crop := image.Rect(x0, y0, x0+side, y0+side)

	dst := image.NewRGBA(image.Rect(0, 0, thumbnailSize, thumbnailSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbJPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
