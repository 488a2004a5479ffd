package utils

import (
	"regexp"
	"strings"
)

var slugSanitizePattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the input and collapses every run of non-alphanumeric
// characters into a single hyphen. Used for category and parameter ids.
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = slugSanitizePattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Dehyphenate turns a slug back into readable words ("alien-species" →
// "alien species") for prompt construction.
func Dehyphenate(slug string) string {
	return strings.ReplaceAll(strings.ReplaceAll(slug, "-", " "), "_", " ")
}
