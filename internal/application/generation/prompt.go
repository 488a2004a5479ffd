package generation

import (
	"fmt"
	"sort"
	"strings"

	"loreforge/internal/shared/utils"
)

const imagePromptPreamble = "An evocative illustration of a speculative fiction scene"

// BuildFictionPrompt renders the selected parameters into a deterministic
// user prompt: categories and parameters in sorted order, one line per
// value, parameter names de-hyphenated for readability.
func BuildFictionPrompt(parameters map[string]map[string]string, year *int) string {
	var b strings.Builder
	b.WriteString("Write a story built from the following elements:\n")

	categories := make([]string, 0, len(parameters))
	for category := range parameters {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		values := parameters[category]
		names := make([]string, 0, len(values))
		for name := range values {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			value := values[name]
			if value == "" {
				continue
			}
			fmt.Fprintf(&b, "- %s / %s: %s\n",
				utils.Dehyphenate(category), utils.Dehyphenate(name), value)
		}
	}

	if year != nil {
		fmt.Fprintf(&b, "- Year: %d\n", *year)
	}

	return b.String()
}

// BuildImagePrompt composes the illustration prompt from the extractor's
// phrases, the optional year and the configured style suffix, truncated to
// maxLen characters before submission.
func BuildImagePrompt(phrases []string, year *int, styleSuffix string, maxLen int) string {
	var b strings.Builder
	b.WriteString(imagePromptPreamble)

	if len(phrases) > 0 {
		b.WriteString(", featuring ")
		b.WriteString(strings.Join(phrases, ", "))
	}
	if year != nil {
		fmt.Fprintf(&b, ", set in the year %d", *year)
	}
	b.WriteString(".")
	if styleSuffix != "" {
		b.WriteString(" Style: ")
		b.WriteString(styleSuffix)
	}

	prompt := b.String()
	if maxLen > 0 && len(prompt) > maxLen {
		prompt = prompt[:maxLen]
	}
	return prompt
}
