package router

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	quotedPhrase   = regexp.MustCompile(`["'“”‘’](.+?)["'“”‘’]`)
	targetLanguage = regexp.MustCompile(`(?i)\b(?:to|into)\s+([A-Za-z]+)$`)
	translateWord  = regexp.MustCompile(`(?i)translate`)
	trailingPunct  = regexp.MustCompile(`[?.!]+$`)

	whoIsQuestion   = regexp.MustCompile(`(?i)^\s*who\s+(?:is|was)\s+(.+?)\??\s*$`)
	trailingPrepos  = regexp.MustCompile(`(?i)\b(?:in|from|of|at)\s*$`)
	locationPrepos  = regexp.MustCompile(`(?i)\b(?:in|at|for)\s+`)
	sentenceEnd     = regexp.MustCompile(`[?!;]|\.(?:\s|$)`)
	relativeTime    = regexp.MustCompile(`(?i)\b(?:today|tonight|tomorrow|yesterday|now|this\s+week|this\s+weekend)\b`)
	summarySentence = regexp.MustCompile(`\.(?:\s+|$)`)
)

var (
	capabilityPhrases = []string{"what can you do", "capabilities", "help", "what do you do"}
	weatherTerms      = []string{"weather", "temp", "temperature", "forecast", "humidity"}
)

func isTranslation(lower string) bool {
	return strings.Contains(lower, "translate")
}

// parseTranslation returns the phrase to translate and the target language name.
// Either may be empty.
func parseTranslation(text string) (phrase, target string) {
	trimmed := trailingPunct.ReplaceAllString(strings.TrimSpace(text), "")

	if m := targetLanguage.FindStringSubmatch(trimmed); m != nil {
		target = m[1]
	}

	if m := quotedPhrase.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), target
	}

	phrase = translateWord.ReplaceAllString(trimmed, "")
	if target != "" {
		phrase = targetLanguage.ReplaceAllString(strings.TrimSpace(phrase), "")
	}
	return strings.Trim(phrase, " \t:,-"), target
}

func isCapability(lower string) bool {
	return containsAny(lower, capabilityPhrases)
}

func isWeather(lower string) bool {
	return containsAny(lower, weatherTerms)
}

// extractCity walks the in/at/for markers from the last one backwards and
// returns the first segment that still names a place once time words are gone.
func extractCity(text string) string {
	text = trailingPunct.ReplaceAllString(strings.TrimSpace(text), "")

	marks := locationPrepos.FindAllStringIndex(text, -1)
	for i := len(marks) - 1; i >= 0; i-- {
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}

		segment := text[marks[i][1]:end]
		segment = segment[:sentenceCut(segment)]

		segment = relativeTime.ReplaceAllString(segment, "")
		segment = strings.Join(strings.Fields(segment), " ")
		segment = strings.Trim(segment, " ,.-")

		if isPlaceName(segment) {
			return segment
		}
	}
	return ""
}

// placeAbbrevs end with a period inside a place name, as in "St. Louis".
var placeAbbrevs = map[string]bool{"st": true, "ste": true, "mt": true, "ft": true, "pt": true}

// sentenceCut returns where the first sentence of s ends. A period after a
// place abbreviation does not end it.
func sentenceCut(s string) int {
	for _, loc := range sentenceEnd.FindAllStringIndex(s, -1) {
		if s[loc[0]] == '.' {
			if fields := strings.Fields(s[:loc[0]]); len(fields) > 0 && placeAbbrevs[strings.ToLower(fields[len(fields)-1])] {
				continue
			}
		}
		return loc[0]
	}
	return len(s)
}

func isPlaceName(s string) bool {
	if s == "" {
		return false
	}
	hasLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case r == ' ', r == '.', r == ',', r == '-', r == '\'':
		default:
			return false
		}
	}
	return hasLetter
}

// parseWhoIs returns the subject of a "who is/was X" question, or "".
func parseWhoIs(text string) string {
	m := whoIsQuestion.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(trailingPrepos.ReplaceAllString(m[1], ""))
}

// formatBullets renders a summary as its first sentence followed by up to
// four "- " bullets made from the next sentences.
func formatBullets(subject, summary string) string {
	var parts []string
	for _, p := range summarySentence.Split(summary, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return subject
	}

	first := parts[0] + "."
	bullets := parts[1:min(len(parts), 5)]
	if len(bullets) == 0 {
		return first
	}
	return first + "\n- " + strings.Join(bullets, "\n- ")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
