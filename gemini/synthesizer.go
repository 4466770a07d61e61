package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/marketway"
	"google.golang.org/genai"
)

// DefaultVoice is the prebuilt voice used for spoken answers.
const DefaultVoice = "Kore"

// Gemini speech output is 16-bit mono PCM at 24 kHz.
const (
	speechSampleRate = 24000
	speechChannels   = 1
)

// Ensure Synthesizer implements marketway.Synthesizer at compile time.
var _ marketway.Synthesizer = (*Synthesizer)(nil)

// Synthesizer speaks answers with Gemini text-to-speech.
type Synthesizer struct {
	client *genai.Client

	// Model defaults to DefaultSpeechModel and Voice to DefaultVoice.
	Model string
	Voice string
}

// NewSynthesizer creates a new Synthesizer.
func NewSynthesizer(client *genai.Client) *Synthesizer {
	return &Synthesizer{client: client, Model: DefaultSpeechModel, Voice: DefaultVoice}
}

// Synthesize returns text spoken as WAV audio.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) (*marketway.Audio, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, marketway.Errorf(marketway.EINVALID, "text required")
	}

	result, err := generate(ctx, s.client, s.Model, BuildSpeechConfig(s.Voice), genai.NewPartFromText(text))
	if err != nil {
		return nil, err
	}

	pcm := InlineAudio(result)
	if len(pcm) == 0 {
		return nil, marketway.Errorf(marketway.EUNAVAILABLE, "gemini returned no audio")
	}

	return &marketway.Audio{
		Data:        EncodeWAV(pcm, speechSampleRate, speechChannels),
		ContentType: "audio/wav",
	}, nil
}

// BuildSpeechConfig returns the GenerateContentConfig for speech output.
func BuildSpeechConfig(voice string) *genai.GenerateContentConfig {
	if voice == "" {
		voice = DefaultVoice
	}
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}
}

// InlineAudio concatenates the inline audio of the first candidate.
func InlineAudio(result *genai.GenerateContentResponse) []byte {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil
	}
	var pcm []byte
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil {
			pcm = append(pcm, part.InlineData.Data...)
		}
	}
	return pcm
}
