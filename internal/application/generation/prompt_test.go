package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFictionPromptIsDeterministic(t *testing.T) {
	parameters := map[string]map[string]string{
		"setting": {"environment": "Drowned city", "custom-detail": "tide bells"},
		"genre":   {"primary-genre": "Solarpunk"},
	}

	first := BuildFictionPrompt(parameters, nil)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildFictionPrompt(parameters, nil))
	}
}

func TestBuildFictionPromptOrdersAndDehyphenates(t *testing.T) {
	year := 2140
	parameters := map[string]map[string]string{
		"setting": {"environment": "Orbital station"},
		"genre":   {"primary-genre": "Science fiction"},
	}

	prompt := BuildFictionPrompt(parameters, &year)

	// Categories sorted: genre before setting; sluged names read as words.
	genreIdx := strings.Index(prompt, "genre / primary genre: Science fiction")
	settingIdx := strings.Index(prompt, "setting / environment: Orbital station")
	assert.GreaterOrEqual(t, genreIdx, 0, "prompt: %s", prompt)
	assert.GreaterOrEqual(t, settingIdx, 0, "prompt: %s", prompt)
	assert.Less(t, genreIdx, settingIdx)

	assert.Contains(t, prompt, "Year: 2140")
	assert.NotContains(t, prompt, "primary-genre")
}

func TestBuildFictionPromptSkipsEmptyValues(t *testing.T) {
	prompt := BuildFictionPrompt(map[string]map[string]string{
		"setting": {"environment": "", "mood": "quiet"},
	}, nil)

	assert.NotContains(t, prompt, "environment")
	assert.Contains(t, prompt, "mood: quiet")
}

func TestBuildImagePrompt(t *testing.T) {
	year := 2310
	prompt := BuildImagePrompt(
		[]string{"Raj", "ancient temple", "golden glow"},
		&year,
		"digital painting",
		4000,
	)

	assert.True(t, strings.HasPrefix(prompt, imagePromptPreamble))
	assert.Contains(t, prompt, "featuring Raj, ancient temple, golden glow")
	assert.Contains(t, prompt, "set in the year 2310")
	assert.Contains(t, prompt, "Style: digital painting")
}

func TestBuildImagePromptWithoutPhrasesOrYear(t *testing.T) {
	prompt := BuildImagePrompt(nil, nil, "", 4000)
	assert.Equal(t, imagePromptPreamble+".", prompt)
}

func TestBuildImagePromptTruncates(t *testing.T) {
	long := make([]string, 200)
	for i := range long {
		long[i] = "a very long repeated visual phrase"
	}

	prompt := BuildImagePrompt(long, nil, "style", 4000)
	assert.LessOrEqual(t, len(prompt), 4000)
}

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		expectedTitle string
		expectedBody  string
	}{
		{
			name:          "title marker line",
			text:          "Title: The Salt Archive\n\nThe story begins here.",
			expectedTitle: "The Salt Archive",
			expectedBody:  "The story begins here.",
		},
		{
			name:          "quoted title marker",
			text:          `Title: "Underlight"` + "\nBody text.",
			expectedTitle: "Underlight",
			expectedBody:  "Body text.",
		},
		{
			name:          "short first line as title",
			text:          "The Last Cartographer\n\nShe drew maps of places that no longer existed.",
			expectedTitle: "The Last Cartographer",
			expectedBody:  "She drew maps of places that no longer existed.",
		},
		{
			name:          "markdown heading first line",
			text:          "# Driftwood Season\nThe tide came in slowly.",
			expectedTitle: "Driftwood Season",
			expectedBody:  "The tide came in slowly.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, body := splitTitle(tt.text)
			assert.Equal(t, tt.expectedTitle, title)
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}

func TestSplitTitleFallsBackToDateStamp(t *testing.T) {
	// Single long line: no marker, first line too long for a title.
	long := strings.Repeat("word ", 40)
	title, body := splitTitle(long)

	assert.True(t, strings.HasPrefix(title, "Story "))
	assert.Equal(t, strings.TrimSpace(long), body)
}
