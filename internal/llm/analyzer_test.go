package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/inkwell/pkg/types"
)

// stubGenerator returns a canned response or error for every prompt.
type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) GetModel() string { return "stub-model" }

func TestAnalyzerReturnsParsedResult(t *testing.T) {
	gen := &stubGenerator{
		response: `{"sentiment": "negative", "themes": ["stress"], "insights": "A heavy day.", "emotional_intensity": 8}`,
	}
	analyzer := NewAnalyzer(gen)

	result, err := analyzer.Analyze(context.Background(), "work was exhausting today")
	require.NoError(t, err)

	assert.Equal(t, types.SentimentNegative, result.Sentiment)
	assert.Equal(t, []string{"stress"}, result.Themes)
	assert.Equal(t, "A heavy day.", result.InsightNote)
	assert.Equal(t, 8, result.EmotionalIntensity)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "work was exhausting today")
}

func TestAnalyzerPropagatesGeneratorError(t *testing.T) {
	genErr := errors.New("model unavailable")
	analyzer := NewAnalyzer(&stubGenerator{err: genErr})

	_, err := analyzer.Analyze(context.Background(), "some entry")
	require.Error(t, err)
	assert.ErrorIs(t, err, genErr)
}

func TestAnalyzerRejectsEmptyResponse(t *testing.T) {
	analyzer := NewAnalyzer(&stubGenerator{response: "   \n"})

	_, err := analyzer.Analyze(context.Background(), "some entry")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestAnalyzerRejectsUnparsableResponse(t *testing.T) {
	analyzer := NewAnalyzer(&stubGenerator{response: "sorry, I cannot do that"})

	_, err := analyzer.Analyze(context.Background(), "some entry")
	assert.Error(t, err)
}

func TestAnalyzerGetModel(t *testing.T) {
	analyzer := NewAnalyzer(&stubGenerator{})
	assert.Equal(t, "stub-model", analyzer.GetModel())
}
