package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/inkwell/pkg/types"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantJSON string
	}{
		{
			name:     "plain JSON object",
			input:    `{"sentiment": "positive"}`,
			wantJSON: `{"sentiment": "positive"}`,
		},
		{
			name:     "JSON with markdown code block",
			input:    "```json\n{\"sentiment\": \"positive\"}\n```",
			wantJSON: `{"sentiment": "positive"}`,
		},
		{
			name:     "JSON with surrounding text",
			input:    "Here is the analysis:\n{\"sentiment\": \"mixed\"}\nHope that helps!",
			wantJSON: `{"sentiment": "mixed"}`,
		},
		{
			name:     "nested JSON object",
			input:    `{"outer": {"inner": "value"}}`,
			wantJSON: `{"outer": {"inner": "value"}}`,
		},
		{
			name:     "braces inside strings",
			input:    `{"insights": "feelings {and} thoughts"}`,
			wantJSON: `{"insights": "feelings {and} thoughts"}`,
		},
		{
			name:     "escaped quotes in string",
			input:    `{"insights": "you said \"enough\""}`,
			wantJSON: `{"insights": "you said \"enough\""}`,
		},
		{
			name:     "no JSON present",
			input:    "just some prose without json",
			wantJSON: "just some prose without json",
		},
		{
			name:     "empty string",
			input:    "",
			wantJSON: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON(tt.input)
			if got != tt.wantJSON {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.input, got, tt.wantJSON)
			}
		})
	}
}

func TestParseAnalysisResponseComplete(t *testing.T) {
	raw := `{
		"sentiment": "positive",
		"themes": ["work", "growth"],
		"insights": "A strong sense of momentum comes through.",
		"word_count": 42,
		"emotional_intensity": 7,
		"key_topics": ["promotion", "new team"],
		"suggestions": ["Celebrate the win tonight"]
	}`

	got, err := ParseAnalysisResponse(raw)
	require.NoError(t, err)

	assert.Equal(t, types.SentimentPositive, got.Sentiment)
	assert.Equal(t, []string{"work", "growth"}, got.Themes)
	assert.Equal(t, "A strong sense of momentum comes through.", got.InsightNote)
	assert.Equal(t, 42, got.WordCount)
	assert.Equal(t, 7, got.EmotionalIntensity)
	assert.Equal(t, []string{"promotion", "new team"}, got.KeyTopics)
	assert.Equal(t, []string{"Celebrate the win tonight"}, got.Suggestions)
}

func TestParseAnalysisResponseMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"prose only", "I could not analyze that entry."},
		{"truncated JSON", `{"sentiment": "positive", "themes":`},
		{"array instead of object", `["positive"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnalysisResponse(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestParseAnalysisResponseIntensity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"missing defaults to 5", `{"sentiment": "neutral"}`, 5},
		{"zero clamps to 1", `{"emotional_intensity": 0}`, 1},
		{"negative clamps to 1", `{"emotional_intensity": -3}`, 1},
		{"over ten clamps to 10", `{"emotional_intensity": 37}`, 10},
		{"in range preserved", `{"emotional_intensity": 4}`, 4},
		{"float truncated", `{"emotional_intensity": 6.8}`, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnalysisResponse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.EmotionalIntensity)
		})
	}
}

func TestParseAnalysisResponseFieldNormalization(t *testing.T) {
	raw := `{
		"sentiment": "ecstatic",
		"themes": ["work", "work", "family", "health", "growth", "stress", "creativity"],
		"key_topics": ["a", "b", "c", "d", "e"]
	}`

	got, err := ParseAnalysisResponse(raw)
	require.NoError(t, err)

	// Unknown sentiment left empty for the enrichment pipeline to repair.
	assert.Equal(t, types.Sentiment(""), got.Sentiment)
	// Duplicates removed, then capped at five.
	assert.Equal(t, []string{"work", "family", "health", "growth", "stress"}, got.Themes)
	assert.Equal(t, []string{"a", "b", "c"}, got.KeyTopics)
}
