// Package llm provides the remote analysis adapter for journal entries. It
// includes strict JSON-only prompt templates, provider clients (Ollama,
// OpenAI) wrapped with circuit breaker protection, and a response parser that
// normalizes model output into a typed AnalysisResult.
//
// The adapter fails loudly on transport errors, non-success statuses, and
// unparsable responses. Falling back to the local heuristic classifier is the
// caller's responsibility (see internal/engine's enrichment pipeline), never
// the adapter's.
package llm

import "fmt"

// AnalysisPrompt generates a strict JSON-only prompt for journal entry
// analysis. The prompt instructs the model to classify sentiment into the
// four-value taxonomy, detect themes, estimate emotional intensity, and write
// a short supportive reflection.
func AnalysisPrompt(text string) string {
	return fmt.Sprintf(`TASK: Analyze a personal journal entry.
OUTPUT: ONLY valid JSON. NO markdown. NO code blocks. NO backticks. NO explanations.

SENTIMENT (exactly one of): positive, negative, neutral, mixed

THEMES (up to 5, prefer these labels when they fit):
work, family, relationships, health, creativity, growth, stress, gratitude

REQUIRED JSON STRUCTURE:
Your response MUST start with { and end with }
{
  "sentiment": "positive",
  "themes": ["work", "growth"],
  "insights": "One or two warm, supportive sentences reflecting on the entry.",
  "word_count": 42,
  "emotional_intensity": 6,
  "key_topics": ["up to three short topic phrases"],
  "suggestions": ["up to three short actionable suggestions"]
}

RULES:
- sentiment MUST be one of the four listed values
- emotional_intensity MUST be an integer from 1 to 10
- key_topics MUST have at most 3 items
- suggestions MUST have at most 3 items, each a single short sentence
- insights MUST be supportive and non-judgmental, never clinical advice

JOURNAL ENTRY:
%s

JSON:`, text)
}
