// Package engine implements the journaling core: the entry enrichment
// pipeline with remote-to-local fallback, the aggregation engine, the period
// insight generator, the streak calculator, and the JournalEngine that
// orchestrates storage and asynchronous enrichment.
package engine

import (
	"context"
	"log"
	"time"

	"github.com/scrypster/inkwell/internal/analysis"
	"github.com/scrypster/inkwell/pkg/types"
)

// RemoteAnalyzer is the capability the pipeline uses to classify entries
// remotely. Implementations must fail loudly on transport or parse errors;
// the pipeline owns the fallback.
type RemoteAnalyzer interface {
	Analyze(ctx context.Context, text string) (*types.AnalysisResult, error)
}

// EnrichedFields is the finalized classification for an entry. Every field is
// populated: either a validated/repaired remote result or the full local
// heuristic result.
type EnrichedFields struct {
	types.AnalysisResult

	// FallbackUsed reports that the local heuristic produced this result.
	// Observability only.
	FallbackUsed bool
}

// EnrichmentPipeline orchestrates entry classification: attempt the remote
// analyzer, validate and repair its result field by field, and on any remote
// failure fall back entirely to the local heuristic classifier.
type EnrichmentPipeline struct {
	remote RemoteAnalyzer

	// now is injectable for tests; suggestion selection is week-keyed.
	now func() time.Time
}

// NewEnrichmentPipeline creates a pipeline. remote may be nil, in which case
// every enrichment uses the local heuristic.
func NewEnrichmentPipeline(remote RemoteAnalyzer) *EnrichmentPipeline {
	return &EnrichmentPipeline{
		remote: remote,
		now:    time.Now,
	}
}

// Enrich classifies text and always succeeds from the caller's point of
// view. Remote failure is recovered by the local fallback, never surfaced.
//
// The two tiers are strict: a successful remote response is repaired field by
// field (missing sentiment becomes neutral, malformed themes become the
// reflection fallback, and so on), while a failed remote call discards the
// remote result entirely in favor of the local classifier. Remote and local
// values are never mixed beyond those repair rules.
func (p *EnrichmentPipeline) Enrich(ctx context.Context, text string) EnrichedFields {
	if p.remote != nil {
		result, err := p.remote.Analyze(ctx, text)
		if err == nil && result != nil {
			repaired := p.repair(*result, text)
			return EnrichedFields{AnalysisResult: repaired}
		}
		if err != nil {
			log.Printf("enrichment: remote analysis failed, using local classifier: %v", err)
		}
	}
	return p.fallback(text)
}

// repair validates and clamps every field of a remote result independently.
func (p *EnrichmentPipeline) repair(result types.AnalysisResult, text string) types.AnalysisResult {
	if !types.IsValidSentiment(result.Sentiment) {
		result.Sentiment = types.SentimentNeutral
	}

	themes := types.DedupeThemes(result.Themes)
	if len(themes) == 0 {
		themes = []string{types.ThemeReflection}
	}
	if len(themes) > types.MaxThemes {
		themes = themes[:types.MaxThemes]
	}
	result.Themes = themes

	if result.InsightNote == "" {
		result.InsightNote = "Thank you for taking a moment to reflect today. Every entry is a step toward understanding yourself better."
	}

	if result.WordCount <= 0 {
		result.WordCount = analysis.WordCount(text)
	}

	if result.EmotionalIntensity < 1 || result.EmotionalIntensity > 10 {
		result.EmotionalIntensity = 5
	}

	if len(result.KeyTopics) == 0 {
		topics := result.Themes
		if len(topics) > types.MaxKeyTopics {
			topics = topics[:types.MaxKeyTopics]
		}
		result.KeyTopics = append([]string(nil), topics...)
	} else if len(result.KeyTopics) > types.MaxKeyTopics {
		result.KeyTopics = result.KeyTopics[:types.MaxKeyTopics]
	}

	result.Suggestions = analysis.SelectSuggestions(result.Suggestions, text, result.Sentiment, result.Themes, p.now())

	return result
}

// fallback produces a fully populated result from the local classifier.
func (p *EnrichmentPipeline) fallback(text string) EnrichedFields {
	result := analysis.Classify(text)
	result.Suggestions = analysis.SelectSuggestions(nil, text, result.Sentiment, result.Themes, p.now())
	return EnrichedFields{
		AnalysisResult: result,
		FallbackUsed:   true,
	}
}
