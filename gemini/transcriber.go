package gemini

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/marketway"
	"google.golang.org/genai"
)

// NoSpeech is the reply the model is told to give for unintelligible audio.
const NoSpeech = "NO_SPEECH"

// Ensure Transcriber implements marketway.Transcriber at compile time.
var _ marketway.Transcriber = (*Transcriber)(nil)

// Transcriber converts recorded questions to text with Gemini.
type Transcriber struct {
	client *genai.Client

	// Model defaults to DefaultModel.
	Model string
}

// NewTranscriber creates a new Transcriber.
func NewTranscriber(client *genai.Client) *Transcriber {
	return &Transcriber{client: client, Model: DefaultModel}
}

// Transcribe reads the audio file at path and returns the spoken text.
func (t *Transcriber) Transcribe(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read audio: %w", err)
	}
	if len(data) == 0 {
		return "", marketway.Errorf(marketway.EUNINTELLIGIBLE, "could not understand audio")
	}

	result, err := generate(ctx, t.client, t.Model, BuildTranscribeConfig(),
		genai.NewPartFromBytes(data, AudioMIMEType(path, data)),
		genai.NewPartFromText("Transcribe this recording."),
	)
	if err != nil {
		return "", err
	}

	return ParseTranscript(result.Text())
}

// BuildTranscribeConfig returns the GenerateContentConfig for transcription.
func BuildTranscribeConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You transcribe short spoken questions from shoppers. " +
					"Reply with the transcript only, in English. " +
					"If the recording holds no intelligible speech, reply with exactly " + NoSpeech + ".",
			}},
		},
		Temperature: float32Ptr(0),
	}
}

// ParseTranscript cleans a transcription response.
// Returns EUNINTELLIGIBLE for an empty or NoSpeech reply.
func ParseTranscript(text string) (string, error) {
	text = strings.Trim(strings.TrimSpace(text), `"`)
	if text == "" || strings.EqualFold(text, NoSpeech) {
		return "", marketway.Errorf(marketway.EUNINTELLIGIBLE, "could not understand audio")
	}
	return text, nil
}

var audioTypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mp3",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".m4a":  "audio/mp4",
	".webm": "audio/webm",
}

// AudioMIMEType guesses the audio type from the file extension, then from
// the content.
func AudioMIMEType(path string, data []byte) string {
	if t, ok := audioTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}
	if t := http.DetectContentType(data); strings.HasPrefix(t, "audio/") {
		return t
	}
	return "audio/wav"
}
