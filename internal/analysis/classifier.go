// Package analysis provides the offline analysis primitives for journal
// entries: a deterministic keyword-based sentiment/theme classifier and a
// seeded weekly-rotating suggestion selector. Everything in this package is
// pure and performs no I/O; it is the fallback path used when the remote
// analyzer is unavailable.
package analysis

import (
	"fmt"
	"strings"

	"github.com/scrypster/inkwell/pkg/types"
)

// Keyword lists for sentiment scoring. Matching is substring-based against
// lower-cased tokens, so "stressful" hits "stress" and "loved" hits "love".
var (
	positiveKeywords = []string{
		"happy", "joy", "excited", "grateful", "love",
		"wonderful", "amazing", "great", "good", "positive",
	}
	negativeKeywords = []string{
		"sad", "angry", "frustrated", "worried", "anxious",
		"stress", "bad", "terrible", "awful", "negative",
	}
)

// themeTrigger maps a theme label to the substrings that activate it.
// Order matters: themes are checked and emitted in this order.
type themeTrigger struct {
	theme    string
	triggers []string
}

var themeTriggers = []themeTrigger{
	{types.ThemeWork, []string{"work", "job", "career"}},
	{types.ThemeFamily, []string{"family", "parent", "child"}},
	{types.ThemeRelationships, []string{"friend", "relationship", "love"}},
	{types.ThemeStress, []string{"stress", "anxiety", "worry"}},
	{types.ThemeHealth, []string{"health", "exercise", "sleep"}},
	{types.ThemeCreativity, []string{"creative", "art", "music"}},
	{types.ThemeGrowth, []string{"learn", "grow", "improve"}},
	{types.ThemeGratitude, []string{"thankful", "grateful", "blessed"}},
}

// maxIntensity caps the emotional intensity score.
const maxIntensity = 10

// WordCount returns the number of non-empty whitespace-separated tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Classify performs deterministic sentiment and theme analysis over raw text.
// It never fails and never touches the network; the result always has a valid
// sentiment, at least one theme, and a populated insight note.
//
// A token that substring-matches both keyword lists increments both counters.
// This mirrors the long-standing scoring behavior and keeps mixed-feeling
// entries ("I love my job but the stress is awful") classified as mixed.
func Classify(text string) types.AnalysisResult {
	var positiveCount, negativeCount int
	for _, token := range strings.Fields(text) {
		token = strings.ToLower(token)
		for _, kw := range positiveKeywords {
			if strings.Contains(token, kw) {
				positiveCount++
				break
			}
		}
		for _, kw := range negativeKeywords {
			if strings.Contains(token, kw) {
				negativeCount++
				break
			}
		}
	}

	sentiment := types.SentimentNeutral
	switch {
	case positiveCount > negativeCount:
		sentiment = types.SentimentPositive
	case negativeCount > positiveCount:
		sentiment = types.SentimentNegative
	case positiveCount > 0:
		sentiment = types.SentimentMixed
	}

	themes := detectThemes(text)

	intensity := positiveCount + negativeCount
	if intensity > maxIntensity {
		intensity = maxIntensity
	}

	wordCount := WordCount(text)

	return types.AnalysisResult{
		Sentiment:          sentiment,
		Themes:             themes,
		InsightNote:        insightNote(sentiment, wordCount),
		WordCount:          wordCount,
		EmotionalIntensity: intensity,
		KeyTopics:          keyTopics(themes),
	}
}

// detectThemes scans the lower-cased text for theme triggers in fixed order.
// Each theme appears at most once, the list is capped at types.MaxThemes, and
// a text with no triggers yields the reflection fallback theme.
func detectThemes(text string) []string {
	lower := strings.ToLower(text)
	var themes []string
	for _, tt := range themeTriggers {
		for _, trigger := range tt.triggers {
			if strings.Contains(lower, trigger) {
				themes = append(themes, tt.theme)
				break
			}
		}
		if len(themes) == types.MaxThemes {
			break
		}
	}
	if len(themes) == 0 {
		themes = []string{types.ThemeReflection}
	}
	return themes
}

// keyTopics derives key topics from detected themes, capped at MaxKeyTopics.
func keyTopics(themes []string) []string {
	if len(themes) > types.MaxKeyTopics {
		themes = themes[:types.MaxKeyTopics]
	}
	out := make([]string, len(themes))
	copy(out, themes)
	return out
}

// insightNote builds a short supportive reflection referencing the detected
// sentiment and entry length.
func insightNote(sentiment types.Sentiment, wordCount int) string {
	var tone string
	switch sentiment {
	case types.SentimentPositive:
		tone = "There's a positive tone running through this entry; it's worth noticing what contributed to it."
	case types.SentimentNegative:
		tone = "This entry carries some heavier feelings. Putting them into words is already a meaningful step."
	case types.SentimentMixed:
		tone = "This entry holds both light and heavy moments, which often means something important is shifting."
	default:
		tone = "This entry reads as a steady, reflective moment."
	}
	return fmt.Sprintf("%s You put %d words toward understanding your day.", tone, wordCount)
}
