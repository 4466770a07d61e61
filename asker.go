package marketway

import "context"

// Provenance tags where an answer came from.
type Provenance string

// Provenance constants for Answer.
const (
	ProvenanceLocal    Provenance = "local"
	ProvenanceOnline   Provenance = "online"
	ProvenanceCombined Provenance = "combined"
)

// Answer is the unified result returned for a query.
type Answer struct {
	Text       string     `json:"answer"`
	Provenance Provenance `json:"source"`
	Images     []string   `json:"images"`
	Lines      []*Line    `json:"lines,omitempty"`
	Routes     []*Route   `json:"routes,omitempty"`
	Confidence float64    `json:"confidence"`
	Keywords   []string   `json:"keywords,omitempty"`
	Modality   Modality   `json:"modality,omitempty"`
}

// Asker resolves a query into an answer about the market.
type Asker interface {
	// Ask answers a typed, transcribed or image-derived query.
	// Returns EEMPTY if the input carries no text.
	Ask(ctx context.Context, in Input) (*Answer, error)
}

// Answerer is the general-purpose fallback used when the catalog has no
// match for a query.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// ImageFinder locates a picture of a line.
type ImageFinder interface {
	// FindImage returns the file name of the line's picture, if any.
	FindImage(lineName string) (string, bool)
}

// ImageAnswer is the result of asking with a picture.
type ImageAnswer struct {
	Classification *Classification `json:"classification"`
	Answer         *Answer         `json:"answer"`
}

// ImageAsker answers a query expressed as a product photo.
type ImageAsker interface {
	// AskImage classifies the image and resolves its label.
	// Returns EUNAVAILABLE if no classifier can process it.
	AskImage(ctx context.Context, image []byte, current Position) (*ImageAnswer, error)
}

// VoiceAnswer is the result of asking with recorded speech.
type VoiceAnswer struct {
	Transcript string  `json:"transcript"`
	Answer     *Answer `json:"answer"`
}

// VoiceAsker answers a query expressed as recorded speech.
type VoiceAsker interface {
	// AskVoice transcribes the audio file at path and resolves the text.
	// Returns EUNINTELLIGIBLE or EUNAVAILABLE when transcription fails.
	AskVoice(ctx context.Context, path string, current Position) (*VoiceAnswer, error)
}

// Directory provides read access to the current catalog.
type Directory interface {
	// SearchLines returns lines whose name or items contain term.
	// Returns EINVALID if term is empty.
	SearchLines(ctx context.Context, term string) ([]*Line, error)

	// FindLine returns a line by case-insensitive name.
	// Returns ENOTFOUND if the line does not exist.
	FindLine(ctx context.Context, name string) (*Line, error)

	// History returns the market history text.
	History(ctx context.Context) (string, error)
}
