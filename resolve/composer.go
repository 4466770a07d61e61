package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/marketway"
)

// Budgets for quoting market history.
const (
	HistoryFetchLimit = 500
	HistoryQuoteLimit = 200
)

// MaxListedItems caps how many items are named per line in an answer.
const MaxListedItems = 5

// DefaultImagePrefix is the URL path images are served under.
const DefaultImagePrefix = "/images/"

// Composer merges matches, routes and fallback answers into an Answer.
//
// Precedence is fixed: catalog matches always win over the fallback, and
// history context is added to an answer but never replaces a match.
type Composer struct {
	// Fallback answers queries with no catalog match. Optional.
	Fallback marketway.Answerer

	// Images finds a picture per matched line. Optional.
	Images marketway.ImageFinder

	// ImagePrefix is prepended to image file names.
	ImagePrefix string
}

// Compose builds the answer for q. It returns EUNAVAILABLE only when nothing
// local can be said and the fallback is missing or failed.
func (c *Composer) Compose(ctx context.Context, cat *marketway.Catalog, q marketway.Query, matches marketway.MatchResult, routes []*marketway.Route) (*marketway.Answer, error) {
	answer := &marketway.Answer{
		Images:     []string{},
		Confidence: matches.Confidence,
		Keywords:   q.Keywords,
		Modality:   q.Modality,
	}

	var historySentence, historyContext string
	if cat != nil && marketway.HasHistoryIntent(q.Text) {
		if snippet := truncate(cat.History(), HistoryFetchLimit); snippet != "" {
			historySentence = "According to market history: " + truncate(snippet, HistoryQuoteLimit) + "..."
			historyContext = "History Context: " + snippet + "... "
		}
	}

	if !matches.Empty() {
		text := describeMatches(cat, matches.Lines)
		if historySentence != "" {
			text = historySentence + "\n\n" + text
		}
		answer.Text = text
		answer.Provenance = marketway.ProvenanceLocal
		answer.Lines = matches.Lines
		answer.Routes = routes
		answer.Images = c.findImages(matches.Lines)
		return answer, nil
	}

	var fallbackErr error
	if c.Fallback != nil {
		question := q.Text
		if historyContext != "" {
			question = q.Text + ". Context: " + historyContext
		}
		text, err := c.Fallback.Answer(ctx, question)
		if err == nil {
			answer.Text = text
			answer.Provenance = marketway.ProvenanceOnline
			if historySentence != "" {
				answer.Text = historySentence + "\n\n" + text
				answer.Provenance = marketway.ProvenanceCombined
			}
			return answer, nil
		}
		fallbackErr = err
	}

	if historySentence != "" {
		answer.Text = historySentence
		answer.Provenance = marketway.ProvenanceLocal
		return answer, nil
	}

	if fallbackErr != nil {
		return nil, marketway.Errorf(marketway.EUNAVAILABLE, "general answer unavailable: %v", fallbackErr)
	}
	return nil, marketway.Errorf(marketway.EUNAVAILABLE, "no catalog match and no general answer service configured")
}

func (c *Composer) findImages(lines []*marketway.Line) []string {
	images := []string{}
	if c.Images == nil {
		return images
	}
	prefix := c.ImagePrefix
	if prefix == "" {
		prefix = DefaultImagePrefix
	}
	for _, l := range lines {
		if name, ok := c.Images.FindImage(l.Name); ok {
			images = append(images, prefix+name)
		}
	}
	return images
}

// describeMatches renders one sentence for a single line, a bulleted list otherwise.
func describeMatches(cat *marketway.Catalog, lines []*marketway.Line) string {
	details := make([]string, len(lines))
	for i, l := range lines {
		details[i] = DescribeLine(l)
	}
	if len(details) == 1 {
		return fmt.Sprintf("You can find that at %s.", details[0])
	}

	market := marketway.DefaultMarketName
	if cat != nil {
		market = cat.Name()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You can find that at the following lines in %s:\n\n", market)
	for i, d := range details {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("• " + d)
	}
	return sb.String()
}

// DescribeLine renders a line with its position and first items.
func DescribeLine(l *marketway.Line) string {
	items := l.Items
	if len(items) > MaxListedItems {
		items = items[:MaxListedItems]
	}
	return fmt.Sprintf("%s (located in the %s column, position %d) - sells %s",
		l.Name, l.Layout.Column, l.Layout.Order, strings.Join(items, ", "))
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
