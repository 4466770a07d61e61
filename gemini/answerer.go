package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/marketway"
	"google.golang.org/genai"
)

// DefaultMaxQuestionTokens bounds fallback questions when a counter is set.
const DefaultMaxQuestionTokens = 2000

// Ensure Answerer implements marketway.Answerer at compile time.
var _ marketway.Answerer = (*Answerer)(nil)

// Answerer answers general market questions with Gemini.
type Answerer struct {
	client *genai.Client
	market string

	// Model defaults to DefaultModel.
	Model string

	// Counter, when set, rejects questions longer than MaxQuestionTokens.
	Counter           marketway.TokenCounter
	MaxQuestionTokens int
}

// NewAnswerer creates a new Answerer for the named market.
func NewAnswerer(client *genai.Client, market string) *Answerer {
	return &Answerer{
		client:            client,
		market:            market,
		Model:             DefaultModel,
		MaxQuestionTokens: DefaultMaxQuestionTokens,
	}
}

// Answer returns a short answer to question.
func (a *Answerer) Answer(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", marketway.Errorf(marketway.EINVALID, "question required")
	}

	budget := QuestionBudget{Counter: a.Counter, Limit: a.MaxQuestionTokens}
	if err := budget.Check(ctx, question); err != nil {
		return "", err
	}

	result, err := generate(ctx, a.client, a.Model, BuildAnswerConfig(a.market), genai.NewPartFromText(BuildQuestionPrompt(question)))
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", marketway.Errorf(marketway.EUNAVAILABLE, "gemini returned an empty answer")
	}
	return text, nil
}

// BuildAnswerConfig returns the GenerateContentConfig for general answers.
func BuildAnswerConfig(market string) *genai.GenerateContentConfig {
	if market == "" {
		market = marketway.DefaultMarketName
	}
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: fmt.Sprintf("You are a helpful guide for shoppers at %s. "+
					"Answer in two or three plain sentences suitable for reading aloud. "+
					"Use the context the question provides. If you do not know, say so.", market),
			}},
		},
		Temperature: float32Ptr(0.4),
	}
}

// BuildQuestionPrompt builds the user prompt for a question.
func BuildQuestionPrompt(question string) string {
	return "Question: " + question
}
