package mock

import (
	"context"

	"github.com/fwojciec/marketway"
)

var _ marketway.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of marketway.Classifier.
type Classifier struct {
	ClassifyFn func(ctx context.Context, image []byte) (*marketway.Classification, error)
}

func (c *Classifier) Classify(ctx context.Context, image []byte) (*marketway.Classification, error) {
	return c.ClassifyFn(ctx, image)
}

var _ marketway.Transcriber = (*Transcriber)(nil)

// Transcriber is a mock implementation of marketway.Transcriber.
type Transcriber struct {
	TranscribeFn func(ctx context.Context, path string) (string, error)
}

func (t *Transcriber) Transcribe(ctx context.Context, path string) (string, error) {
	return t.TranscribeFn(ctx, path)
}

var _ marketway.Synthesizer = (*Synthesizer)(nil)

// Synthesizer is a mock implementation of marketway.Synthesizer.
type Synthesizer struct {
	SynthesizeFn func(ctx context.Context, text string) (*marketway.Audio, error)
}

func (s *Synthesizer) Synthesize(ctx context.Context, text string) (*marketway.Audio, error) {
	return s.SynthesizeFn(ctx, text)
}

var _ marketway.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of marketway.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return c.CountTokensFn(ctx, text)
}
