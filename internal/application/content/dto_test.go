package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loreforge/internal/domain/content"
)

func newRecord(t *testing.T, imageBytes []byte) *content.GeneratedContent {
	t.Helper()
	record, err := content.NewGeneratedContent(
		"The Salt Archive",
		"She catalogued the flooded shelves.",
		"An evocative illustration of a speculative fiction scene.",
		map[string]map[string]string{"genre": {"primary-genre": "Science fiction"}},
		map[string]any{"type": "combined"},
		3400, 5, content.StatusCompleted, "",
	)
	require.NoError(t, err)
	if imageBytes != nil {
		record.AttachImage(&content.ImageArtifact{
			Data:           imageBytes,
			Thumbnail:      []byte("thumb"),
			Format:         "jpeg",
			SizeBytes:      len(imageBytes),
			ThumbSizeBytes: 5,
		})
	}
	return record
}

func TestContentResponseImageURLsFollowBlobPresence(t *testing.T) {
	tests := []struct {
		name       string
		imageBytes []byte
		wantURLs   bool
	}{
		{"stored blob exposes both urls", []byte("jpeg bytes"), true},
		{"no blob exposes neither", nil, false},
		{"zero size blob exposes neither", []byte{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := newRecord(t, tt.imageBytes)
			resp := toContentResponse(record)

			if tt.wantURLs {
				assert.Equal(t, "/api/content/"+record.ID()+"/image", resp.ImageURL)
				assert.Equal(t, "/api/content/"+record.ID()+"/thumbnail", resp.ThumbnailURL)
			} else {
				assert.Empty(t, resp.ImageURL)
				assert.Empty(t, resp.ThumbnailURL)
			}
		})
	}
}

func TestContentResponseCarriesRecordFields(t *testing.T) {
	record := newRecord(t, nil)
	resp := toContentResponse(record)

	assert.Equal(t, record.ID(), resp.ID)
	assert.Equal(t, "The Salt Archive", resp.Title)
	assert.Equal(t, "She catalogued the flooded shelves.", resp.Content)
	assert.Equal(t, 5, resp.WordCount)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "Science fiction", resp.PromptData["genre"]["primary-genre"])
}

func TestContentSummaryThumbnailFollowsBlobPresence(t *testing.T) {
	withBlob := toContentSummary(newRecord(t, []byte("jpeg bytes")))
	assert.Equal(t, "/api/content/"+withBlob.ID+"/thumbnail", withBlob.ThumbnailURL)

	withoutBlob := toContentSummary(newRecord(t, nil))
	assert.Empty(t, withoutBlob.ThumbnailURL)

	// List rows never carry the prose body.
	assert.Equal(t, "The Salt Archive", withoutBlob.Title)
	assert.Equal(t, 5, withoutBlob.WordCount)
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/png", contentTypeFor("png"))
	assert.Equal(t, "image/webp", contentTypeFor("webp"))
	assert.Equal(t, "image/jpeg", contentTypeFor("jpeg"))
	assert.Equal(t, "image/jpeg", contentTypeFor(""))
}
