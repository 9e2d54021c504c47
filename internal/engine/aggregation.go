package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/scrypster/inkwell/pkg/types"
)

// MaxTopThemes caps the theme ranking returned by Aggregate.
const MaxTopThemes = 5

// Aggregate is the windowed statistics view over a set of entries.
type Aggregate struct {
	TotalEntries     int                     `json:"total_entries"`
	TotalWords       int                     `json:"total_words"`
	AvgWordsPerEntry int                     `json:"avg_words_per_entry"`
	SentimentCounts  map[types.Sentiment]int `json:"sentiment_counts"`
	TopThemes        []types.ThemeStat       `json:"top_themes"`
	Trend            []types.TrendPoint      `json:"trend"`
}

// ComputeAggregate computes windowed statistics over entries for the
// windowDays calendar days ending today (relative to now, local time).
//
// It is a pure function: re-running it on an unchanged collection and window
// yields identical results. The only error case is a malformed window, which
// is a programmer error rather than a data condition.
//
// SentimentCounts is sparse (sentiments absent from the window are omitted);
// Trend is dense (exactly windowDays points, all four counts zero-filled).
func ComputeAggregate(entries []types.Entry, windowDays int, now time.Time) (*Aggregate, error) {
	if windowDays < 1 {
		return nil, fmt.Errorf("windowDays must be >= 1, got %d", windowDays)
	}

	cutoff := startOfDay(now).AddDate(0, 0, -windowDays)
	var filtered []types.Entry
	for _, entry := range entries {
		if !entry.CreatedAt.Before(cutoff) {
			filtered = append(filtered, entry)
		}
	}

	agg := &Aggregate{
		TotalEntries:    len(filtered),
		SentimentCounts: make(map[types.Sentiment]int),
		TopThemes:       []types.ThemeStat{},
	}

	for _, entry := range filtered {
		agg.TotalWords += entry.WordCount
		agg.SentimentCounts[entry.Sentiment]++
	}
	if agg.TotalEntries > 0 {
		agg.AvgWordsPerEntry = int(math.Round(float64(agg.TotalWords) / float64(agg.TotalEntries)))
	}

	agg.TopThemes = rankThemes(filtered, MaxTopThemes)
	agg.Trend = buildTrend(filtered, windowDays, now)

	return agg, nil
}

// rankThemes counts theme occurrences across entries and returns the top
// limit themes sorted by count descending. Ties keep first-seen order.
func rankThemes(entries []types.Entry, limit int) []types.ThemeStat {
	counts := make(map[string]int)
	var order []string
	for _, entry := range entries {
		for _, theme := range entry.Themes {
			if counts[theme] == 0 {
				order = append(order, theme)
			}
			counts[theme]++
		}
	}

	stats := make([]types.ThemeStat, 0, len(order))
	for _, theme := range order {
		stats = append(stats, types.ThemeStat{Theme: theme, Count: counts[theme]})
	}
	// Stable sort preserves first-seen order among equal counts.
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})

	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

// buildTrend produces one TrendPoint per calendar day for the windowDays days
// ending today, oldest first. Days with no entries still appear with all
// counts at zero.
func buildTrend(entries []types.Entry, windowDays int, now time.Time) []types.TrendPoint {
	today := startOfDay(now)

	trend := make([]types.TrendPoint, windowDays)
	index := make(map[string]*types.TrendPoint, windowDays)
	for i := 0; i < windowDays; i++ {
		day := today.AddDate(0, 0, -(windowDays - 1 - i))
		label := day.Format("2006-01-02")
		trend[i] = types.TrendPoint{Date: label}
		index[label] = &trend[i]
	}

	for _, entry := range entries {
		point, ok := index[entry.CreatedAt.Format("2006-01-02")]
		if !ok {
			continue
		}
		switch entry.Sentiment {
		case types.SentimentPositive:
			point.Positive++
		case types.SentimentNegative:
			point.Negative++
		case types.SentimentMixed:
			point.Mixed++
		default:
			point.Neutral++
		}
	}

	return trend
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
