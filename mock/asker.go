package mock

import (
	"context"

	"github.com/fwojciec/marketway"
)

var _ marketway.Asker = (*Asker)(nil)

// Asker is a mock implementation of marketway.Asker.
type Asker struct {
	AskFn func(ctx context.Context, in marketway.Input) (*marketway.Answer, error)
}

func (a *Asker) Ask(ctx context.Context, in marketway.Input) (*marketway.Answer, error) {
	return a.AskFn(ctx, in)
}

var _ marketway.ImageAsker = (*ImageAsker)(nil)

// ImageAsker is a mock implementation of marketway.ImageAsker.
type ImageAsker struct {
	AskImageFn func(ctx context.Context, image []byte, current marketway.Position) (*marketway.ImageAnswer, error)
}

func (a *ImageAsker) AskImage(ctx context.Context, image []byte, current marketway.Position) (*marketway.ImageAnswer, error) {
	return a.AskImageFn(ctx, image, current)
}

var _ marketway.VoiceAsker = (*VoiceAsker)(nil)

// VoiceAsker is a mock implementation of marketway.VoiceAsker.
type VoiceAsker struct {
	AskVoiceFn func(ctx context.Context, path string, current marketway.Position) (*marketway.VoiceAnswer, error)
}

func (a *VoiceAsker) AskVoice(ctx context.Context, path string, current marketway.Position) (*marketway.VoiceAnswer, error) {
	return a.AskVoiceFn(ctx, path, current)
}

var _ marketway.Answerer = (*Answerer)(nil)

// Answerer is a mock implementation of marketway.Answerer.
type Answerer struct {
	AnswerFn func(ctx context.Context, question string) (string, error)
}

func (a *Answerer) Answer(ctx context.Context, question string) (string, error) {
	return a.AnswerFn(ctx, question)
}

var _ marketway.ImageFinder = (*ImageFinder)(nil)

// ImageFinder is a mock implementation of marketway.ImageFinder.
type ImageFinder struct {
	FindImageFn func(lineName string) (string, bool)
}

func (f *ImageFinder) FindImage(lineName string) (string, bool) {
	return f.FindImageFn(lineName)
}
