package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/marketway"
	"github.com/fwojciec/marketway/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestClassifier_Classify_RejectsEmptyImage(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewClassifier(nil).Classify(context.Background(), nil)

	assert.Equal(t, marketway.EINVALID, marketway.ErrorCode(err))
}

func TestClassifier_Classify_RejectsNonImage(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewClassifier(nil).Classify(context.Background(), []byte("just some text"))

	require.Error(t, err)
	assert.Equal(t, marketway.EINVALID, marketway.ErrorCode(err))
	assert.Contains(t, marketway.ErrorMessage(err), "unsupported image type")
}

func TestClassifier_Classify_ReturnsUnavailableWithoutClient(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewClassifier(nil).Classify(context.Background(), pngHeader)

	assert.Equal(t, marketway.EUNAVAILABLE, marketway.ErrorCode(err))
}

func TestBuildClassifyConfig_ConstrainsJSON(t *testing.T) {
	t.Parallel()

	config := gemini.BuildClassifyConfig()

	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.ResponseSchema)
	assert.Equal(t, genai.TypeObject, config.ResponseSchema.Type)
	assert.Contains(t, config.ResponseSchema.Properties, "label")
	assert.Contains(t, config.ResponseSchema.Properties, "confidence")
	assert.ElementsMatch(t, []string{"label", "confidence"}, config.ResponseSchema.Required)
}

func TestParseClassification(t *testing.T) {
	t.Parallel()

	t.Run("decodes label and confidence", func(t *testing.T) {
		t.Parallel()

		c, err := gemini.ParseClassification(`{"label": "running_shoe", "confidence": 0.87}`)
		require.NoError(t, err)
		assert.Equal(t, "running_shoe", c.Label)
		assert.InDelta(t, 0.87, c.Confidence, 0.001)
	})

	t.Run("clamps confidence", func(t *testing.T) {
		t.Parallel()

		c, err := gemini.ParseClassification(`{"label": "rice", "confidence": 3}`)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, c.Confidence, 0.001)
	})

	t.Run("empty label is unavailable", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseClassification(`{"label": " ", "confidence": 0.1}`)
		assert.Equal(t, marketway.EUNAVAILABLE, marketway.ErrorCode(err))
	})

	t.Run("malformed JSON is unavailable", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseClassification(`a shoe`)
		assert.Equal(t, marketway.EUNAVAILABLE, marketway.ErrorCode(err))
	})
}
