package gemini_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/marketway"
	"github.com/fwojciec/marketway/gemini"
	"github.com/fwojciec/marketway/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerer_Answer_ReturnsErrorWhenQuestionEmpty(t *testing.T) {
	t.Parallel()

	answerer := gemini.NewAnswerer(nil, "Test Market") // nil client ok for this test

	_, err := answerer.Answer(context.Background(), "  ")

	require.Error(t, err)
	assert.Equal(t, marketway.EINVALID, marketway.ErrorCode(err))
	assert.Contains(t, marketway.ErrorMessage(err), "question required")
}

func TestAnswerer_Answer_RejectsQuestionOverTokenLimit(t *testing.T) {
	t.Parallel()

	answerer := gemini.NewAnswerer(nil, "Test Market")
	answerer.MaxQuestionTokens = 10
	answerer.Counter = &mock.TokenCounter{
		CountTokensFn: func(_ context.Context, text string) (int, error) {
			return len(strings.Fields(text)), nil
		},
	}

	_, err := answerer.Answer(context.Background(), strings.Repeat("word ", 11))

	require.Error(t, err)
	assert.Equal(t, marketway.EINVALID, marketway.ErrorCode(err))
	assert.Contains(t, marketway.ErrorMessage(err), "too long")
}

func TestAnswerer_Answer_PropagatesCounterError(t *testing.T) {
	t.Parallel()

	boom := errors.New("tokenizer broken")
	answerer := gemini.NewAnswerer(nil, "Test Market")
	answerer.Counter = &mock.TokenCounter{
		CountTokensFn: func(context.Context, string) (int, error) { return 0, boom },
	}

	_, err := answerer.Answer(context.Background(), "who built the market")

	require.ErrorIs(t, err, boom)
}

func TestAnswerer_Answer_ReturnsUnavailableWithoutClient(t *testing.T) {
	t.Parallel()

	answerer := gemini.NewAnswerer(nil, "Test Market")

	_, err := answerer.Answer(context.Background(), "when does the market open")

	require.Error(t, err)
	assert.Equal(t, marketway.EUNAVAILABLE, marketway.ErrorCode(err))
}

func TestBuildAnswerConfig_NamesMarket(t *testing.T) {
	t.Parallel()

	config := gemini.BuildAnswerConfig("Bamenda Main Market")

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "Bamenda Main Market")
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.4, *config.Temperature, 0.001)
}

func TestBuildAnswerConfig_DefaultsMarketName(t *testing.T) {
	t.Parallel()

	config := gemini.BuildAnswerConfig("")

	assert.Contains(t, config.SystemInstruction.Parts[0].Text, marketway.DefaultMarketName)
}

func TestBuildQuestionPrompt_ContainsQuestion(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildQuestionPrompt("Who built the market?")

	assert.Equal(t, "Question: Who built the market?", prompt)
	assert.NotContains(t, prompt, "You are a helpful guide")
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewClient(context.Background(), "")

	assert.Equal(t, marketway.EINVALID, marketway.ErrorCode(err))
}
