package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fwojciec/marketway"
	"google.golang.org/genai"
)

// Ensure Classifier implements marketway.Classifier at compile time.
var _ marketway.Classifier = (*Classifier)(nil)

// Classifier identifies the product in a photo with Gemini vision.
type Classifier struct {
	client *genai.Client

	// Model defaults to DefaultModel.
	Model string
}

// NewClassifier creates a new Classifier.
func NewClassifier(client *genai.Client) *Classifier {
	return &Classifier{client: client, Model: DefaultModel}
}

// Classify returns the most likely product label for image.
func (c *Classifier) Classify(ctx context.Context, image []byte) (*marketway.Classification, error) {
	if len(image) == 0 {
		return nil, marketway.Errorf(marketway.EINVALID, "image required")
	}

	mimeType := http.DetectContentType(image)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, marketway.Errorf(marketway.EINVALID, "unsupported image type %q", mimeType)
	}

	result, err := generate(ctx, c.client, c.Model, BuildClassifyConfig(),
		genai.NewPartFromBytes(image, mimeType),
		genai.NewPartFromText(classifyPrompt),
	)
	if err != nil {
		return nil, err
	}

	return ParseClassification(result.Text())
}

const classifyPrompt = "Name the single product a shopper would want to buy that is shown in this photo."

// BuildClassifyConfig returns the GenerateContentConfig for image
// classification. The response is constrained to a JSON object with a
// snake_case label and a confidence between 0 and 1.
func BuildClassifyConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You label product photos for a market directory. " +
					"Use a short lowercase snake_case product name such as running_shoe or palm_oil. " +
					"Use an empty label when no product is visible.",
			}},
		},
		Temperature:      float32Ptr(0),
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"label":      {Type: genai.TypeString},
				"confidence": {Type: genai.TypeNumber},
			},
			Required: []string{"label", "confidence"},
		},
	}
}

// ParseClassification decodes a classification response.
// Returns EUNAVAILABLE if the response is malformed or names no product.
func ParseClassification(text string) (*marketway.Classification, error) {
	var raw struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return nil, marketway.Errorf(marketway.EUNAVAILABLE, "malformed classification: %v", err)
	}

	label := strings.TrimSpace(raw.Label)
	if label == "" {
		return nil, marketway.Errorf(marketway.EUNAVAILABLE, "image could not be identified")
	}

	confidence := raw.Confidence
	switch {
	case confidence < 0:
		confidence = 0
	case confidence > 1:
		confidence = 1
	}

	return &marketway.Classification{Label: label, Confidence: confidence}, nil
}
