// Package slog decorates marketway services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/marketway"
)

// Ensure LoggingAsker implements marketway.Asker.
var _ marketway.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker and logs every resolved query.
type LoggingAsker struct {
	next   marketway.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next marketway.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the outcome.
func (a *LoggingAsker) Ask(ctx context.Context, in marketway.Input) (answer *marketway.Answer, err error) {
	defer func(begin time.Time) {
		var source marketway.Provenance
		var lines int
		if answer != nil {
			source, lines = answer.Provenance, len(answer.Lines)
		}
		a.logger.Info("ask",
			"modality", in.Modality,
			"query", in.Text,
			"source", source,
			"lines", lines,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Ask(ctx, in)
}

// Ensure LoggingImageAsker implements marketway.ImageAsker.
var _ marketway.ImageAsker = (*LoggingImageAsker)(nil)

// LoggingImageAsker wraps an ImageAsker and logs every photo query.
type LoggingImageAsker struct {
	next   marketway.ImageAsker
	logger *slog.Logger
}

// NewLoggingImageAsker creates a new LoggingImageAsker.
func NewLoggingImageAsker(next marketway.ImageAsker, logger *slog.Logger) *LoggingImageAsker {
	return &LoggingImageAsker{next: next, logger: logger}
}

// AskImage delegates to the wrapped asker and logs the label it resolved.
func (a *LoggingImageAsker) AskImage(ctx context.Context, image []byte, current marketway.Position) (res *marketway.ImageAnswer, err error) {
	defer func(begin time.Time) {
		var label string
		var source marketway.Provenance
		var lines int
		if res != nil {
			if res.Classification != nil {
				label = res.Classification.Label
			}
			if res.Answer != nil {
				source, lines = res.Answer.Provenance, len(res.Answer.Lines)
			}
		}
		a.logger.Info("ask image",
			"bytes", len(image),
			"label", label,
			"source", source,
			"lines", lines,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.AskImage(ctx, image, current)
}

// Ensure LoggingVoiceAsker implements marketway.VoiceAsker.
var _ marketway.VoiceAsker = (*LoggingVoiceAsker)(nil)

// LoggingVoiceAsker wraps a VoiceAsker and logs every spoken query.
type LoggingVoiceAsker struct {
	next   marketway.VoiceAsker
	logger *slog.Logger
}

// NewLoggingVoiceAsker creates a new LoggingVoiceAsker.
func NewLoggingVoiceAsker(next marketway.VoiceAsker, logger *slog.Logger) *LoggingVoiceAsker {
	return &LoggingVoiceAsker{next: next, logger: logger}
}

// AskVoice delegates to the wrapped asker and logs the transcript.
func (a *LoggingVoiceAsker) AskVoice(ctx context.Context, path string, current marketway.Position) (res *marketway.VoiceAnswer, err error) {
	defer func(begin time.Time) {
		var transcript string
		var source marketway.Provenance
		var lines int
		if res != nil {
			transcript = res.Transcript
			if res.Answer != nil {
				source, lines = res.Answer.Provenance, len(res.Answer.Lines)
			}
		}
		a.logger.Info("ask voice",
			"transcript", transcript,
			"source", source,
			"lines", lines,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.AskVoice(ctx, path, current)
}

// Ensure LoggingAnswerer implements marketway.Answerer.
var _ marketway.Answerer = (*LoggingAnswerer)(nil)

// LoggingAnswerer wraps a fallback Answerer.
type LoggingAnswerer struct {
	next   marketway.Answerer
	name   string
	logger *slog.Logger
}

// NewLoggingAnswerer creates a new LoggingAnswerer. The name identifies the
// fallback in log lines.
func NewLoggingAnswerer(next marketway.Answerer, name string, logger *slog.Logger) *LoggingAnswerer {
	return &LoggingAnswerer{next: next, name: name, logger: logger}
}

// Answer delegates to the wrapped answerer and logs the call.
func (a *LoggingAnswerer) Answer(ctx context.Context, question string) (text string, err error) {
	defer func(begin time.Time) {
		a.logger.Info("fallback answer",
			"fallback", a.name,
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Answer(ctx, question)
}
