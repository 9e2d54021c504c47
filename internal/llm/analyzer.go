package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/scrypster/inkwell/pkg/types"
)

// ErrEmptyResponse is returned when the provider completes successfully but
// produces an empty body.
var ErrEmptyResponse = errors.New("empty analysis response")

// Analyzer turns a TextGenerator into a journal entry analyzer: it formats
// the analysis prompt, invokes the provider, and parses the JSON reply.
//
// Analyzer follows the adapter contract strictly: any transport error,
// non-success status, or unparsable response is surfaced as an error. It
// never substitutes defaults for a failed call.
type Analyzer struct {
	generator TextGenerator
}

// NewAnalyzer creates an Analyzer backed by the given text generator.
func NewAnalyzer(generator TextGenerator) *Analyzer {
	return &Analyzer{generator: generator}
}

// Analyze classifies a journal entry via the remote model.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*types.AnalysisResult, error) {
	response, err := a.generator.Complete(ctx, AnalysisPrompt(text))
	if err != nil {
		return nil, fmt.Errorf("remote analysis failed: %w", err)
	}
	if strings.TrimSpace(response) == "" {
		return nil, ErrEmptyResponse
	}

	result, err := ParseAnalysisResponse(response)
	if err != nil {
		return nil, fmt.Errorf("remote analysis returned unusable response: %w", err)
	}
	return result, nil
}

// GetModel returns the underlying provider's model name.
func (a *Analyzer) GetModel() string {
	return a.generator.GetModel()
}
