// Package gemini implements the market's language, vision and speech
// collaborators on Google Gemini.
package gemini

import (
	"context"

	"github.com/fwojciec/marketway"
	"google.golang.org/genai"
)

// Default models.
const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultSpeechModel = "gemini-2.5-flash-preview-tts"
)

// NewClient creates a Gemini API client.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, marketway.Errorf(marketway.EINVALID, "gemini API key required")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// generate sends parts as a single user turn and maps failures to EUNAVAILABLE.
func generate(ctx context.Context, client *genai.Client, model string, config *genai.GenerateContentConfig, parts ...*genai.Part) (*genai.GenerateContentResponse, error) {
	if client == nil {
		return nil, marketway.Errorf(marketway.EUNAVAILABLE, "gemini client not configured")
	}

	result, err := client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Role: "user", Parts: parts}},
		config,
	)
	if err != nil {
		return nil, marketway.Errorf(marketway.EUNAVAILABLE, "gemini request failed: %v", err)
	}
	if result == nil {
		return nil, marketway.Errorf(marketway.EUNAVAILABLE, "gemini returned nil result")
	}
	return result, nil
}

func float32Ptr(v float32) *float32 { return &v }
