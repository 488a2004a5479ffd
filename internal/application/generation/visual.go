package generation

import (
	"regexp"
	"strings"
)

// Extraction limits. The rule table below is version-pinned: changing a
// pattern or its position changes observable extractor output, so tests pin
// exact results against it.
const (
	maxVisualPhrases  = 5
	maxMatchesPerRule = 2
	minPhraseLen      = 3
	maxPhraseLen      = 49
	containmentFloor  = 5
)

// titleMarkerPattern strips the leading "Title: ..." line before scanning.
// Anchored to the start of input: a "Title:" line inside the prose is story
// text and stays scannable.
var titleMarkerPattern = regexp.MustCompile(`^\s*Title:[^\n]*\n?`)

// phraseRule pairs a pattern with the normalizer for its category.
type phraseRule struct {
	pattern   *regexp.Regexp
	normalize func(string) string
}

// visualRules is applied in order: characters, locations, objects,
// atmosphere. Each rule contributes at most two matches in text order.
var visualRules = []phraseRule{
	// Characters: a proper name followed by a motion or speech verb.
	{
		pattern:   regexp.MustCompile(`\b([A-Z][a-z]+(?: [A-Z][a-z]+)? (?:walked|ran|stood|sat|knelt|climbed|stepped|turned|moved|stared|gazed|looked|whispered|shouted|smiled|wandered|drifted))\b`),
		normalize: normalizeCharacter,
	},
	// Characters: an article-introduced figure.
	{
		pattern:   regexp.MustCompile(`\b(?:the|a|an) ((?:old|young|tall|lone|weary|hooded|masked|silent|mysterious) (?:man|woman|figure|stranger|traveler|traveller|soldier|captain|child|pilot|priest|scholar))\b`),
		normalize: normalizePlain,
	},
	// Locations: a definite noun phrase behind a spatial preposition.
	{
		pattern:   regexp.MustCompile(`\b((?:in|into|through|inside|across|within|atop|at) the [a-z]+(?: [a-z]+)?)\b`),
		normalize: normalizeLocation,
	},
	// Locations: named places.
	{
		pattern:   regexp.MustCompile(`\b((?:city|village|forest|temple|castle|tower|valley|harbor|harbour|desert|ruins|mountains) of [A-Z][a-z]+)\b`),
		normalize: normalizePlain,
	},
	// Objects: a carried or noticed artifact.
	{
		pattern:   regexp.MustCompile(`\b(?:a|an|the|her|his|their) ((?:[a-z]+ )?(?:sword|blade|lantern|crystal|amulet|compass|machine|engine|ship|vessel|book|tome|map|mirror|key|orb|cloak|ring|relic))\b`),
		normalize: normalizePlain,
	},
	// Atmosphere: light, weather and mood phrases.
	{
		pattern:   regexp.MustCompile(`\b([a-z]+ (?:glow|light|mist|fog|haze|shadow|shadows|twilight|dusk|dawn|storm|rain|snow|wind|silence|darkness))\b`),
		normalize: normalizePlain,
	},
	{
		pattern:   regexp.MustCompile(`\b((?:crimson|golden|silver|pale|ashen|violet|emerald|burning) (?:sky|skies|moon|sun|clouds|horizon|stars))\b`),
		normalize: normalizePlain,
	},
}

// characterStopwords rejects pronoun and function-word false positives from
// the sentence-initial capital heuristic.
var characterStopwords = map[string]struct{}{
	"the": {}, "she": {}, "they": {}, "then": {}, "there": {},
	"his": {}, "her": {}, "but": {}, "and": {}, "when": {}, "while": {},
}

var trailingMotionVerbs = map[string]struct{}{
	"walked": {}, "ran": {}, "stood": {}, "sat": {}, "knelt": {},
	"climbed": {}, "stepped": {}, "turned": {}, "moved": {}, "stared": {},
	"gazed": {}, "looked": {}, "whispered": {}, "shouted": {}, "smiled": {},
	"wandered": {}, "drifted": {},
}

var leadingPrepositions = map[string]struct{}{
	"in": {}, "into": {}, "through": {}, "inside": {}, "across": {},
	"within": {}, "atop": {}, "at": {}, "the": {},
}

// ExtractVisualElements scans generated prose for up to five short phrases
// that can anchor an image prompt. It is deterministic and never fails; text
// with no matches yields an empty slice.
func ExtractVisualElements(text string) []string {
	body := titleMarkerPattern.ReplaceAllString(text, "")

	var kept []string
	for _, rule := range visualRules {
		matches := rule.pattern.FindAllStringSubmatch(body, maxMatchesPerRule)
		for _, m := range matches {
			phrase := rule.normalize(strings.TrimSpace(m[1]))
			if len(phrase) < minPhraseLen || len(phrase) > maxPhraseLen {
				continue
			}
			if isDuplicate(kept, phrase) {
				continue
			}
			kept = append(kept, phrase)
			if len(kept) == maxVisualPhrases {
				return kept
			}
		}
	}
	return kept
}

func normalizePlain(s string) string {
	return strings.TrimSpace(s)
}

// normalizeCharacter trims the trailing motion verb so "Raj walked" keeps
// only the actor.
func normalizeCharacter(s string) string {
	words := strings.Fields(s)
	if len(words) > 1 {
		if _, ok := trailingMotionVerbs[strings.ToLower(words[len(words)-1])]; ok {
			words = words[:len(words)-1]
		}
	}
	name := strings.Join(words, " ")
	if _, stop := characterStopwords[strings.ToLower(name)]; stop {
		return ""
	}
	return name
}

// normalizeLocation strips the leading preposition and article.
func normalizeLocation(s string) string {
	words := strings.Fields(s)
	for len(words) > 1 {
		if _, ok := leadingPrepositions[strings.ToLower(words[0])]; !ok {
			break
		}
		words = words[1:]
	}
	return strings.Join(words, " ")
}

// isDuplicate applies case-insensitive equality plus fuzzy containment:
// when one phrase contains the other and the shorter exceeds the containment
// floor, the pair counts as one. This keeps "golden temple" from coexisting
// with "temple".
func isDuplicate(kept []string, candidate string) bool {
	lc := strings.ToLower(candidate)
	for _, existing := range kept {
		le := strings.ToLower(existing)
		if lc == le {
			return true
		}
		shorter, longer := lc, le
		if len(le) < len(lc) {
			shorter, longer = le, lc
		}
		if len(shorter) > containmentFloor && strings.Contains(longer, shorter) {
			return true
		}
	}
	return false
}
