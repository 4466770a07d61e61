package marketway

import "context"

// Classification is an image classifier's best guess.
type Classification struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classifier identifies the product shown in an image.
type Classifier interface {
	// Classify returns the top label for the image.
	// Returns EUNAVAILABLE if no model is available.
	Classify(ctx context.Context, image []byte) (*Classification, error)
}

// Transcriber converts recorded speech into text.
type Transcriber interface {
	// Transcribe reads the audio file at path and returns its text.
	// Returns EUNINTELLIGIBLE if the audio holds no recognizable speech and
	// EUNAVAILABLE if the speech service cannot be reached.
	Transcribe(ctx context.Context, path string) (string, error)
}

// Audio is an encoded sound clip.
type Audio struct {
	Data        []byte
	ContentType string
}

// Synthesizer converts text into spoken audio.
type Synthesizer interface {
	// Synthesize returns speech for text.
	// Returns EUNAVAILABLE if the speech service cannot be reached.
	Synthesize(ctx context.Context, text string) (*Audio, error)
}

// TokenCounter measures text in model tokens.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
