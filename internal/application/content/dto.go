package content

import (
	"fmt"
	"time"

	"loreforge/internal/domain/content"
)

// ContentResponse is the outward shape of a generated record. Image URLs are
// derived from the record id and only present when a binary blob is stored.
type ContentResponse struct {
	ID               string                       `json:"id"`
	Title            string                       `json:"title"`
	Content          string                       `json:"content,omitempty"`
	ImagePrompt      string                       `json:"image_prompt,omitempty"`
	PromptData       map[string]map[string]string `json:"prompt_data,omitempty"`
	Metadata         map[string]any               `json:"metadata,omitempty"`
	GenerationTimeMS int64                        `json:"generation_time_ms"`
	WordCount        int                          `json:"word_count"`
	Status           string                       `json:"status"`
	ErrorMessage     string                       `json:"error_message,omitempty"`
	ImageURL         string                       `json:"image_url,omitempty"`
	ThumbnailURL     string                       `json:"thumbnail_url,omitempty"`
	CreatedAt        time.Time                    `json:"created_at"`
}

// ContentSummary is the list-row shape: no prose body, no prompt payloads.
type ContentSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	WordCount    int       `json:"word_count"`
	Status       string    `json:"status"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toContentResponse(record *content.GeneratedContent) ContentResponse {
	resp := ContentResponse{
		ID:               record.ID(),
		Title:            record.Title(),
		Content:          record.FictionContent(),
		ImagePrompt:      record.ImagePrompt(),
		PromptData:       record.PromptData(),
		Metadata:         record.Metadata(),
		GenerationTimeMS: record.GenerationTimeMS(),
		WordCount:        record.WordCount(),
		Status:           string(record.Status()),
		ErrorMessage:     record.ErrorMessage(),
		CreatedAt:        record.CreatedAt(),
	}
	if record.HasImage() {
		resp.ImageURL = imageURL(record.ID())
		resp.ThumbnailURL = thumbnailURL(record.ID())
	}
	return resp
}

func toContentSummary(record *content.GeneratedContent) ContentSummary {
	summary := ContentSummary{
		ID:        record.ID(),
		Title:     record.Title(),
		WordCount: record.WordCount(),
		Status:    string(record.Status()),
		CreatedAt: record.CreatedAt(),
	}
	if record.HasImage() {
		summary.ThumbnailURL = thumbnailURL(record.ID())
	}
	return summary
}

func imageURL(id string) string {
	return fmt.Sprintf("/api/content/%s/image", id)
}

func thumbnailURL(id string) string {
	return fmt.Sprintf("/api/content/%s/thumbnail", id)
}
