// Package resolve turns market queries into catalog matches, routes and
// composed answers.
package resolve

import (
	"strings"

	"github.com/fwojciec/marketway"
)

// DefaultMinConfidence is the fraction of query terms that must hit before
// matches are reported. Zero reports a line as soon as any term hits it.
const DefaultMinConfidence = 0.0

// minLabelWordLength is the shortest label word retried on its own.
const minLabelWordLength = 4

// Matcher maps keywords and labels to catalog lines.
type Matcher struct {
	// MinConfidence gates results; below it a match is reported empty.
	// Zero disables the gate.
	MinConfidence float64
}

// NewMatcher returns a Matcher using DefaultMinConfidence.
func NewMatcher() *Matcher {
	return &Matcher{MinConfidence: DefaultMinConfidence}
}

// Match searches the catalog for each token and returns the union of hits,
// unique by name in first-seen order. No tokens means no catalog access and
// an empty result.
func (m *Matcher) Match(cat *marketway.Catalog, tokens []string) marketway.MatchResult {
	if len(tokens) == 0 || cat == nil {
		return marketway.MatchResult{}
	}

	var set lineSet
	hits := 0
	for _, token := range tokens {
		found := cat.Search(token)
		if len(found) > 0 {
			hits++
		}
		set.add(found...)
	}

	return m.gate(marketway.MatchResult{
		Lines:      set.lines,
		Confidence: float64(hits) / float64(len(tokens)),
		Terms:      tokens,
	})
}

// MatchLabel matches a free-text label, such as an image classifier output,
// against item names. When the whole label has no hit, each word longer than
// three characters is retried so "running shoe" can still find "shoe".
func (m *Matcher) MatchLabel(cat *marketway.Catalog, label string) marketway.MatchResult {
	label = marketway.HumanizeLabel(label)
	if label == "" || cat == nil {
		return marketway.MatchResult{}
	}

	var set lineSet
	if found := cat.SearchItems(label); len(found) > 0 {
		set.add(found...)
		return m.gate(marketway.MatchResult{Lines: set.lines, Confidence: 1, Terms: []string{label}})
	}

	var words []string
	for _, w := range strings.Fields(label) {
		if len(w) >= minLabelWordLength {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return marketway.MatchResult{Terms: []string{label}}
	}

	hits := 0
	for _, w := range words {
		found := cat.SearchItems(w)
		if len(found) > 0 {
			hits++
		}
		set.add(found...)
	}

	return m.gate(marketway.MatchResult{
		Lines:      set.lines,
		Confidence: float64(hits) / float64(len(words)),
		Terms:      words,
	})
}

func (m *Matcher) gate(res marketway.MatchResult) marketway.MatchResult {
	if m.MinConfidence > 0 && res.Confidence < m.MinConfidence {
		res.Lines = nil
	}
	return res
}

// lineSet collects lines unique by case-insensitive name, first one wins.
type lineSet struct {
	seen  map[string]struct{}
	lines []*marketway.Line
}

func (s *lineSet) add(lines ...*marketway.Line) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	for _, l := range lines {
		key := strings.ToLower(l.Name)
		if _, ok := s.seen[key]; ok {
			continue
		}
		s.seen[key] = struct{}{}
		s.lines = append(s.lines, l)
	}
}
