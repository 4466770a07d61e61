package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/marketway"
)

// Ensure LoggingClassifier implements marketway.Classifier.
var _ marketway.Classifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a Classifier with logging.
type LoggingClassifier struct {
	next   marketway.Classifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next marketway.Classifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

func (c *LoggingClassifier) Classify(ctx context.Context, image []byte) (res *marketway.Classification, err error) {
	defer func(begin time.Time) {
		attrs := []any{"bytes", len(image)}
		if res != nil {
			attrs = append(attrs, "label", res.Label, "confidence", res.Confidence)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		c.logger.Info("classify image", attrs...)
	}(time.Now())
	return c.next.Classify(ctx, image)
}

// Ensure LoggingTranscriber implements marketway.Transcriber.
var _ marketway.Transcriber = (*LoggingTranscriber)(nil)

// LoggingTranscriber wraps a Transcriber with logging.
type LoggingTranscriber struct {
	next   marketway.Transcriber
	logger *slog.Logger
}

// NewLoggingTranscriber creates a new LoggingTranscriber.
func NewLoggingTranscriber(next marketway.Transcriber, logger *slog.Logger) *LoggingTranscriber {
	return &LoggingTranscriber{next: next, logger: logger}
}

func (t *LoggingTranscriber) Transcribe(ctx context.Context, path string) (text string, err error) {
	defer func(begin time.Time) {
		t.logger.Info("transcribe",
			"transcript", text,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Transcribe(ctx, path)
}

// Ensure LoggingSynthesizer implements marketway.Synthesizer.
var _ marketway.Synthesizer = (*LoggingSynthesizer)(nil)

// LoggingSynthesizer wraps a Synthesizer with logging.
type LoggingSynthesizer struct {
	next   marketway.Synthesizer
	logger *slog.Logger
}

// NewLoggingSynthesizer creates a new LoggingSynthesizer.
func NewLoggingSynthesizer(next marketway.Synthesizer, logger *slog.Logger) *LoggingSynthesizer {
	return &LoggingSynthesizer{next: next, logger: logger}
}

func (s *LoggingSynthesizer) Synthesize(ctx context.Context, text string) (audio *marketway.Audio, err error) {
	defer func(begin time.Time) {
		var size int
		if audio != nil {
			size = len(audio.Data)
		}
		s.logger.Info("synthesize",
			"chars", len(text),
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Synthesize(ctx, text)
}
