package marketway

import (
	"strings"
	"unicode"
)

// Modality identifies where a query's text came from.
type Modality string

// Modality constants for Input.
const (
	ModalityTyped       Modality = "typed"
	ModalityTranscribed Modality = "transcribed"
	ModalityImageLabel  Modality = "image_label"
)

// Input is a single resolution request. Voice and image requests are turned
// into text by their collaborators and then share the same pipeline.
type Input struct {
	Modality Modality `json:"modality"`
	Text     string   `json:"text"`
	Position Position `json:"position,omitempty"`
}

// Query is the per-request view of an Input after normalization.
type Query struct {
	Text     string
	Keywords []string
	Modality Modality
	Position Position
}

// MinTokenLength is the shortest keyword Normalize keeps.
const MinTokenLength = 3

// stopWords are dropped from queries before matching.
var stopWords = map[string]struct{}{
	"i": {}, "want": {}, "to": {}, "buy": {}, "find": {}, "where": {},
	"can": {}, "get": {}, "looking": {}, "for": {}, "need": {}, "a": {},
	"an": {}, "the": {}, "some": {}, "please": {}, "sell": {}, "sells": {},
	"who": {}, "which": {}, "what": {}, "there": {}, "any": {}, "does": {},
}

// historyWords signal that the asker wants to hear about the market's past.
var historyWords = map[string]struct{}{
	"history": {}, "built": {}, "old": {},
}

// Normalize lowercases raw, splits it on whitespace and returns the keyword
// tokens left after dropping stop-words and tokens shorter than
// MinTokenLength. Tokens are unique and keep their first-seen order.
func Normalize(raw string) []string {
	var tokens []string
	seen := make(map[string]struct{})
	for _, word := range words(raw) {
		if len(word) < MinTokenLength {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		tokens = append(tokens, word)
	}
	return tokens
}

// HasHistoryIntent reports whether raw asks about the market's history.
func HasHistoryIntent(raw string) bool {
	for _, word := range words(raw) {
		if _, ok := historyWords[word]; ok {
			return true
		}
	}
	return false
}

// HumanizeLabel turns a classifier label such as "Running_Shoe" into
// matchable text ("running shoe").
func HumanizeLabel(label string) string {
	label = strings.NewReplacer("_", " ", "-", " ").Replace(label)
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}

// words splits raw on whitespace, lowercases each word and trims punctuation
// around it ("medicine?" -> "medicine").
func words(raw string) []string {
	fields := strings.Fields(strings.ToLower(raw))
	out := fields[:0]
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
