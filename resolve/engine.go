package resolve

import (
	"context"
	"strings"

	"github.com/fwojciec/marketway"
)

// Compile-time interface verification.
var (
	_ marketway.Asker      = (*Engine)(nil)
	_ marketway.Navigator  = (*Engine)(nil)
	_ marketway.Directory  = (*Engine)(nil)
	_ marketway.ImageAsker = (*Engine)(nil)
	_ marketway.VoiceAsker = (*Engine)(nil)
)

// Engine resolves queries against the current catalog snapshot.
// Each call takes one snapshot and uses it for matching, planning and
// composing, so a concurrent reload never mixes two catalogs in one answer.
type Engine struct {
	Catalog     marketway.CatalogSource
	Matcher     *Matcher
	Planner     Planner
	Composer    *Composer
	Classifier  marketway.Classifier
	Transcriber marketway.Transcriber
}

// NewEngine returns an Engine with the default matcher, planner and composer.
func NewEngine(catalog marketway.CatalogSource) *Engine {
	return &Engine{
		Catalog:  catalog,
		Matcher:  NewMatcher(),
		Planner:  NewLayoutPlanner(nil),
		Composer: &Composer{},
	}
}

// Ask resolves a typed, transcribed or image-label query. Routes start at
// in.Position; an unknown position is treated as the entrance.
func (e *Engine) Ask(ctx context.Context, in marketway.Input) (*marketway.Answer, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, marketway.Errorf(marketway.EEMPTY, "query text required")
	}
	if in.Modality == "" {
		in.Modality = marketway.ModalityTyped
	}

	cat := e.Catalog.Catalog()
	if !knownPosition(cat, in.Position) {
		in.Position = marketway.Entrance
	}
	q := marketway.Query{Text: text, Modality: in.Modality, Position: in.Position}

	var matches marketway.MatchResult
	if in.Modality == marketway.ModalityImageLabel {
		q.Keywords = []string{marketway.HumanizeLabel(text)}
		matches = e.Matcher.MatchLabel(cat, text)
	} else {
		q.Keywords = marketway.Normalize(text)
		matches = e.Matcher.Match(cat, q.Keywords)
	}

	routes := make([]*marketway.Route, 0, len(matches.Lines))
	for _, line := range matches.Lines {
		route, err := e.Planner.Plan(cat, in.Position, line.Name)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}

	return e.Composer.Compose(ctx, cat, q, matches, routes)
}

// Navigate returns the route from current to the named line.
func (e *Engine) Navigate(ctx context.Context, current marketway.Position, lineName string) (*marketway.Route, error) {
	if strings.TrimSpace(lineName) == "" {
		return nil, marketway.Errorf(marketway.EINVALID, "line name required")
	}
	return e.Planner.Plan(e.Catalog.Catalog(), current, lineName)
}

// SearchLines returns lines whose name or items contain term.
func (e *Engine) SearchLines(ctx context.Context, term string) ([]*marketway.Line, error) {
	if strings.TrimSpace(term) == "" {
		return nil, marketway.Errorf(marketway.EINVALID, "search term required")
	}
	lines := e.Catalog.Catalog().Search(term)
	if lines == nil {
		lines = []*marketway.Line{}
	}
	return lines, nil
}

// FindLine returns a line by case-insensitive name.
func (e *Engine) FindLine(ctx context.Context, name string) (*marketway.Line, error) {
	line, ok := e.Catalog.Catalog().LineByName(name)
	if !ok {
		return nil, marketway.Errorf(marketway.ENOTFOUND, "line %q not found", name)
	}
	return line, nil
}

// History returns the market history text.
func (e *Engine) History(ctx context.Context) (string, error) {
	return e.Catalog.Catalog().History(), nil
}

// AskImage classifies image and resolves the label it yields.
func (e *Engine) AskImage(ctx context.Context, image []byte, current marketway.Position) (*marketway.ImageAnswer, error) {
	if len(image) == 0 {
		return nil, marketway.Errorf(marketway.EINVALID, "image required")
	}
	if e.Classifier == nil {
		return nil, marketway.Errorf(marketway.EUNAVAILABLE, "image recognition is not available")
	}

	c, err := e.Classifier.Classify(ctx, image)
	if err != nil {
		return nil, unavailable(err, "image recognition failed")
	}
	if strings.TrimSpace(c.Label) == "" {
		return nil, marketway.Errorf(marketway.EUNAVAILABLE, "image could not be identified")
	}

	answer, err := e.Ask(ctx, marketway.Input{
		Modality: marketway.ModalityImageLabel,
		Text:     c.Label,
		Position: current,
	})
	if err != nil {
		return nil, err
	}
	return &marketway.ImageAnswer{Classification: c, Answer: answer}, nil
}

// AskVoice transcribes the audio at path and resolves the transcript.
func (e *Engine) AskVoice(ctx context.Context, path string, current marketway.Position) (*marketway.VoiceAnswer, error) {
	if e.Transcriber == nil {
		return nil, marketway.Errorf(marketway.EUNAVAILABLE, "speech recognition is not available")
	}

	text, err := e.Transcriber.Transcribe(ctx, path)
	if err != nil {
		return nil, unavailable(err, "speech recognition failed")
	}
	if strings.TrimSpace(text) == "" {
		return nil, marketway.Errorf(marketway.EUNINTELLIGIBLE, "could not understand audio")
	}

	answer, err := e.Ask(ctx, marketway.Input{
		Modality: marketway.ModalityTranscribed,
		Text:     text,
		Position: current,
	})
	if err != nil {
		return nil, err
	}
	return &marketway.VoiceAnswer{Transcript: text, Answer: answer}, nil
}

// unavailable keeps collaborator errors that already carry a code and marks
// everything else EUNAVAILABLE.
func unavailable(err error, msg string) error {
	switch marketway.ErrorCode(err) {
	case marketway.EUNAVAILABLE, marketway.EUNINTELLIGIBLE, marketway.EINVALID:
		return err
	}
	return marketway.Errorf(marketway.EUNAVAILABLE, "%s: %v", msg, err)
}

func knownPosition(cat *marketway.Catalog, p marketway.Position) bool {
	if p.IsEntrance() {
		return true
	}
	if cat == nil {
		return false
	}
	_, ok := cat.LineByName(string(p))
	return ok
}
