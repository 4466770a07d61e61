package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/marketway"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// TokenizerModel is the model NewTokenCounter loads when none is given. It
// matches DefaultModel so counts reflect what the fallback is billed for.
const TokenizerModel = "gemini-2.5-flash"

var _ marketway.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts shopper questions with the local Gemini tokenizer, so
// oversized questions are refused before any request leaves the process.
type TokenCounter struct {
	model string
	tok   *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a TokenCounter for model, or TokenizerModel when
// model is empty. The tokenizer vocabulary is downloaded on first use.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = TokenizerModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, marketway.Errorf(marketway.EUNAVAILABLE, "tokenizer for %s: %v", model, err)
	}
	return &TokenCounter{model: model, tok: tok}, nil
}

// Model returns the tokenizer model name.
func (tc *TokenCounter) Model() string { return tc.model }

// CountTokens counts text as a single user turn. Blank text counts as zero.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, "user")}, nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}

// QuestionBudget refuses fallback questions whose prompt exceeds Limit tokens.
// A nil Counter or a non-positive Limit accepts everything.
type QuestionBudget struct {
	Counter marketway.TokenCounter
	Limit   int
}

// Check counts the prompt built for question and returns EINVALID when it is
// over the limit.
func (b QuestionBudget) Check(ctx context.Context, question string) error {
	if b.Counter == nil || b.Limit <= 0 {
		return nil
	}
	n, err := b.Counter.CountTokens(ctx, BuildQuestionPrompt(question))
	if err != nil {
		return err
	}
	if n > b.Limit {
		return marketway.Errorf(marketway.EINVALID, "question too long: %d tokens, limit %d", n, b.Limit)
	}
	return nil
}
