package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scrypster/inkwell/pkg/types"
)

// Emotional intensity bounds. Out-of-range values are clamped; missing or
// non-numeric values default to defaultIntensity.
const (
	minIntensity     = 1
	maxIntensity     = 10
	defaultIntensity = 5
)

// analysisResponse mirrors the JSON shape the model is asked to produce.
// EmotionalIntensity is a json.Number pointer so a missing field can be
// distinguished from zero and a non-integer value can be rejected without
// failing the whole parse.
type analysisResponse struct {
	Sentiment          string      `json:"sentiment"`
	Themes             []string    `json:"themes"`
	Insights           string      `json:"insights"`
	WordCount          int         `json:"word_count"`
	EmotionalIntensity json.Number `json:"emotional_intensity"`
	KeyTopics          []string    `json:"key_topics"`
	Suggestions        []string    `json:"suggestions"`
}

// extractJSON extracts the first complete JSON object from a string that may
// contain extra text. This handles models that add explanations or markdown
// fences around the JSON despite instructions.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	if start == -1 {
		return text // No JSON found, return as-is and let the parser fail
	}

	// Scan for the matching closing brace, skipping braces inside strings.
	braceCount := 0
	inString := false
	escape := false

	for i := start; i < len(text); i++ {
		char := text[i]

		if escape {
			escape = false
			continue
		}
		if char == '\\' {
			escape = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}

		if !inString {
			switch char {
			case '{':
				braceCount++
			case '}':
				braceCount--
				if braceCount == 0 {
					return text[start : i+1]
				}
			}
		}
	}

	return text // No complete JSON object found
}

// ParseAnalysisResponse parses a model's journal-analysis JSON into a typed
// AnalysisResult. It returns an error if the response contains no parseable
// JSON object; individual fields are normalized rather than rejected:
//
//   - sentiment outside the four-value taxonomy is left empty for the caller
//     to repair
//   - themes are deduplicated and truncated to types.MaxThemes
//   - emotional_intensity is clamped into [1,10], defaulting to 5 when
//     missing or non-numeric
//   - key_topics are truncated to types.MaxKeyTopics
func ParseAnalysisResponse(raw string) (*types.AnalysisResult, error) {
	cleanJSON := extractJSON(raw)

	var response analysisResponse
	if err := json.Unmarshal([]byte(cleanJSON), &response); err != nil {
		return nil, fmt.Errorf("failed to parse analysis JSON: %w", err)
	}

	result := &types.AnalysisResult{
		InsightNote:        response.Insights,
		WordCount:          response.WordCount,
		EmotionalIntensity: parseIntensity(response.EmotionalIntensity),
		Suggestions:        response.Suggestions,
	}

	if types.IsValidSentiment(types.Sentiment(response.Sentiment)) {
		result.Sentiment = types.Sentiment(response.Sentiment)
	}

	themes := types.DedupeThemes(response.Themes)
	if len(themes) > types.MaxThemes {
		themes = themes[:types.MaxThemes]
	}
	result.Themes = themes

	topics := response.KeyTopics
	if len(topics) > types.MaxKeyTopics {
		topics = topics[:types.MaxKeyTopics]
	}
	result.KeyTopics = topics

	return result, nil
}

// parseIntensity converts the raw intensity value to an int in [1,10].
func parseIntensity(raw json.Number) int {
	if raw == "" {
		return defaultIntensity
	}
	value, err := raw.Float64()
	if err != nil {
		return defaultIntensity
	}
	intensity := int(value)
	if intensity < minIntensity {
		intensity = minIntensity
	}
	if intensity > maxIntensity {
		intensity = maxIntensity
	}
	return intensity
}
