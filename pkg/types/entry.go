// Package types defines the core data structures for the Inkwell journaling
// system: entries, sentiment and theme taxonomies, analysis results, and the
// derived aggregate views consumed by the CLI and Web UI.
package types

import "time"

// Sentiment is the coarse emotional-tone label assigned to an entry.
type Sentiment string

// Sentiment constants. Every entry carries exactly one of these at all times;
// newly created entries default to SentimentNeutral until enrichment completes.
const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentMixed    Sentiment = "mixed"
)

// ValidSentiments is a slice of all valid sentiment values for validation.
var ValidSentiments = []Sentiment{
	SentimentPositive,
	SentimentNegative,
	SentimentNeutral,
	SentimentMixed,
}

// IsValidSentiment checks if the given sentiment is one of the four valid values.
func IsValidSentiment(s Sentiment) bool {
	for _, valid := range ValidSentiments {
		if valid == s {
			return true
		}
	}
	return false
}

// Conventional theme vocabulary. The theme set is open-ended (remote analysis
// may return labels outside this list) but these are the labels the local
// heuristic classifier produces.
const (
	ThemeWork          = "work"
	ThemeFamily        = "family"
	ThemeRelationships = "relationships"
	ThemeStress        = "stress"
	ThemeHealth        = "health"
	ThemeCreativity    = "creativity"
	ThemeGrowth        = "growth"
	ThemeGratitude     = "gratitude"

	// ThemeReflection is the fallback theme used when no other theme is detected.
	ThemeReflection = "reflection"
)

// MaxThemes is the maximum number of themes attached to a single entry.
const MaxThemes = 5

// MaxKeyTopics is the maximum number of key topics attached to a single entry.
const MaxKeyTopics = 3

// Entry represents a single journal record with derived classification metadata.
//
// ID, Text, and CreatedAt are immutable after creation. The classification
// fields (Sentiment, Themes, WordCount, InsightNote, EmotionalIntensity,
// KeyTopics, FallbackUsed) are replaced exactly once when enrichment commits;
// entries are otherwise never mutated by the core.
type Entry struct {
	ID        string    `json:"id"`         // Unique opaque identifier, stable for the entry's lifetime
	Text      string    `json:"text"`       // User-authored content, never empty or whitespace-only
	CreatedAt time.Time `json:"created_at"` // Creation timestamp, used for all date-bucketed aggregation

	Sentiment   Sentiment `json:"sentiment"`             // One of the four sentiment values, never empty
	Themes      []string  `json:"themes"`                // Deduplicated theme labels, may be empty
	WordCount   int       `json:"word_count"`            // Whitespace-tokenized word count, never negative
	Suggestions []string  `json:"suggestions,omitempty"` // Action suggestions selected at enrichment time

	// Optional fields populated only when classification succeeds.
	InsightNote        string   `json:"insight_note,omitempty"`
	EmotionalIntensity int      `json:"emotional_intensity,omitempty"` // 1-10 when present
	KeyTopics          []string `json:"key_topics,omitempty"`          // At most MaxKeyTopics items

	// FallbackUsed signals that the local heuristic produced this entry's
	// classification instead of the remote model. Observability only; callers
	// must not gate behavior on it.
	FallbackUsed bool `json:"fallback_used,omitempty"`
}

// AnalysisResult is the normalized output of classifying a piece of text,
// produced either by the remote analyzer or the local heuristic classifier.
type AnalysisResult struct {
	Sentiment          Sentiment `json:"sentiment"`
	Themes             []string  `json:"themes"`
	InsightNote        string    `json:"insights"`
	WordCount          int       `json:"word_count"`
	EmotionalIntensity int       `json:"emotional_intensity"`
	KeyTopics          []string  `json:"key_topics"`
	Suggestions        []string  `json:"suggestions,omitempty"`
}

// DedupeThemes removes duplicate theme labels (case-sensitive exact match),
// preserving first-occurrence order.
func DedupeThemes(themes []string) []string {
	if len(themes) == 0 {
		return themes
	}
	seen := make(map[string]bool, len(themes))
	out := make([]string, 0, len(themes))
	for _, theme := range themes {
		if seen[theme] {
			continue
		}
		seen[theme] = true
		out = append(out, theme)
	}
	return out
}
