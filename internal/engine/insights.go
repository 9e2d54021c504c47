package engine

import (
	"fmt"
	"time"

	"github.com/scrypster/inkwell/pkg/types"
)

// SummarizePeriod computes a PeriodInsight over entries restricted to the
// calendar period containing now: Monday through Sunday for week, the full
// calendar month for month. An unknown period is a programmer error.
//
// A period with zero matching entries yields EntryCount of 0 with empty
// slices; callers branch on the count.
func SummarizePeriod(entries []types.Entry, period types.Period, now time.Time) (*types.PeriodInsight, error) {
	if !types.IsValidPeriod(period) {
		return nil, fmt.Errorf("invalid period: %q", period)
	}

	start, end := periodBounds(period, now)
	var filtered []types.Entry
	for _, entry := range entries {
		if !entry.CreatedAt.Before(start) && entry.CreatedAt.Before(end) {
			filtered = append(filtered, entry)
		}
	}

	insight := &types.PeriodInsight{
		Period:             period,
		EntryCount:         len(filtered),
		TopThemes:          []string{},
		DominantSentiment:  types.SentimentNeutral,
		Patterns:           []string{},
		Recommendations:    []string{},
		PositiveHighlights: []types.Entry{},
	}
	if len(filtered) == 0 {
		return insight, nil
	}

	themeStats := rankThemes(filtered, types.MaxInsightThemes)
	for _, stat := range themeStats {
		insight.TopThemes = append(insight.TopThemes, stat.Theme)
	}

	var positiveCount, negativeCount int
	sentimentCounts := make(map[types.Sentiment]int)
	var sentimentOrder []types.Sentiment
	for _, entry := range filtered {
		if sentimentCounts[entry.Sentiment] == 0 {
			sentimentOrder = append(sentimentOrder, entry.Sentiment)
		}
		sentimentCounts[entry.Sentiment]++
		switch entry.Sentiment {
		case types.SentimentPositive:
			positiveCount++
		case types.SentimentNegative:
			negativeCount++
		}
	}
	// Dominant sentiment: highest count, first-seen order breaking ties.
	best := sentimentOrder[0]
	for _, s := range sentimentOrder[1:] {
		if sentimentCounts[s] > sentimentCounts[best] {
			best = s
		}
	}
	insight.DominantSentiment = best

	insight.Patterns = buildPatterns(positiveCount, negativeCount, insight.TopThemes)
	insight.Recommendations = buildRecommendations(negativeCount, len(filtered), insight.TopThemes)

	for _, entry := range filtered {
		if entry.Sentiment == types.SentimentPositive {
			insight.PositiveHighlights = append(insight.PositiveHighlights, entry)
			if len(insight.PositiveHighlights) == types.MaxHighlights {
				break
			}
		}
	}

	return insight, nil
}

// periodBounds returns the [start, end) interval for the period containing now.
func periodBounds(period types.Period, now time.Time) (time.Time, time.Time) {
	today := startOfDay(now)
	if period == types.PeriodWeek {
		// Week starts Monday. time.Weekday has Sunday == 0.
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start := today.AddDate(0, 0, -(weekday - 1))
		return start, start.AddDate(0, 0, 7)
	}
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}

// buildPatterns applies the fixed pattern checklist in order. Each rule
// appends independently when its condition holds.
func buildPatterns(positiveCount, negativeCount int, topThemes []string) []string {
	patterns := []string{}
	if positiveCount > negativeCount {
		patterns = append(patterns, "You experienced more positive emotions than negative ones this period.")
	}
	if containsAny(topThemes, "work", "career") {
		patterns = append(patterns, "Work has been a prominent part of your reflections.")
	}
	if containsAny(topThemes, "relationship", "relationships", "family") {
		patterns = append(patterns, "Your relationships played an important role in your entries.")
	}
	return patterns
}

// buildRecommendations applies the fixed recommendation checklist in order.
func buildRecommendations(negativeCount, entryCount int, topThemes []string) []string {
	recommendations := []string{}
	if negativeCount > 0 {
		recommendations = append(recommendations, "Be gentle with yourself on harder days; difficult feelings are part of the process.")
	}
	if containsAny(topThemes, "stress", "anxiety") {
		recommendations = append(recommendations, "Consider building a small stress-reduction habit, like a short daily walk or breathing break.")
	}
	if entryCount < 3 {
		recommendations = append(recommendations, "Try writing a little more consistently; even a few sentences a day builds the habit.")
	}
	return recommendations
}

// containsAny reports whether items contains any of the candidates.
func containsAny(items []string, candidates ...string) bool {
	for _, item := range items {
		for _, candidate := range candidates {
			if item == candidate {
				return true
			}
		}
	}
	return false
}
