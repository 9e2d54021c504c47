package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/inkwell/pkg/types"
)

func entryAt(ts time.Time, sentiment types.Sentiment, words int, themes ...string) types.Entry {
	return types.Entry{
		ID:        "e-" + ts.Format("20060102-150405"),
		Text:      "entry",
		CreatedAt: ts,
		Sentiment: sentiment,
		Themes:    themes,
		WordCount: words,
	}
}

func TestComputeAggregateRejectsBadWindow(t *testing.T) {
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	for _, days := range []int{0, -1, -30} {
		_, err := ComputeAggregate(nil, days, now)
		assert.Error(t, err, "windowDays %d", days)
	}
}

func TestComputeAggregateEmptyCollection(t *testing.T) {
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

	agg, err := ComputeAggregate(nil, 7, now)
	require.NoError(t, err)

	assert.Equal(t, 0, agg.TotalEntries)
	assert.Equal(t, 0, agg.TotalWords)
	assert.Equal(t, 0, agg.AvgWordsPerEntry)
	assert.Empty(t, agg.SentimentCounts)
	assert.Empty(t, agg.TopThemes)
	assert.Len(t, agg.Trend, 7)
}

func TestComputeAggregateCountsAndAverage(t *testing.T) {
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	entries := []types.Entry{
		entryAt(now.AddDate(0, 0, -1), types.SentimentPositive, 10, "work"),
		entryAt(now.AddDate(0, 0, -2), types.SentimentPositive, 11, "work"),
		entryAt(now.AddDate(0, 0, -3), types.SentimentNegative, 12, "stress"),
	}

	agg, err := ComputeAggregate(entries, 7, now)
	require.NoError(t, err)

	assert.Equal(t, 3, agg.TotalEntries)
	assert.Equal(t, 33, agg.TotalWords)
	// 33/3 = 11 exactly.
	assert.Equal(t, 11, agg.AvgWordsPerEntry)
	assert.Equal(t, map[types.Sentiment]int{
		types.SentimentPositive: 2,
		types.SentimentNegative: 1,
	}, agg.SentimentCounts)
}

func TestComputeAggregateAverageRoundsHalfUp(t *testing.T) {
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	entries := []types.Entry{
		entryAt(now.AddDate(0, 0, -1), types.SentimentNeutral, 10),
		entryAt(now.AddDate(0, 0, -2), types.SentimentNeutral, 11),
	}

	agg, err := ComputeAggregate(entries, 7, now)
	require.NoError(t, err)

	// 21/2 = 10.5, rounds to 11.
	assert.Equal(t, 11, agg.AvgWordsPerEntry)
}

func TestComputeAggregateExcludesEntriesOutsideWindow(t *testing.T) {
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	entries := []types.Entry{
		entryAt(now, types.SentimentPositive, 5, "work"),
		entryAt(now.AddDate(0, 0, -30), types.SentimentNegative, 500, "stress"),
	}

	agg, err := ComputeAggregate(entries, 7, now)
	require.NoError(t, err)

	assert.Equal(t, 1, agg.TotalEntries)
	assert.Equal(t, 5, agg.TotalWords)
	assert.NotContains(t, agg.SentimentCounts, types.SentimentNegative)
}

func TestComputeAggregateThemeRankingTieBreak(t *testing.T) {
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	// work and family both appear twice; work is seen first and must rank first.
	entries := []types.Entry{
		entryAt(now.AddDate(0, 0, -1), types.SentimentNeutral, 5, "work", "family"),
		entryAt(now.AddDate(0, 0, -2), types.SentimentNeutral, 5, "family", "work", "health"),
	}

	agg, err := ComputeAggregate(entries, 7, now)
	require.NoError(t, err)

	require.Len(t, agg.TopThemes, 3)
	assert.Equal(t, types.ThemeStat{Theme: "work", Count: 2}, agg.TopThemes[0])
	assert.Equal(t, types.ThemeStat{Theme: "family", Count: 2}, agg.TopThemes[1])
	assert.Equal(t, types.ThemeStat{Theme: "health", Count: 1}, agg.TopThemes[2])
}

func TestComputeAggregateThemeRankingCapped(t *testing.T) {
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	entries := []types.Entry{
		entryAt(now, types.SentimentNeutral, 5,
			"work", "family", "health", "stress", "growth", "creativity", "gratitude"),
	}

	agg, err := ComputeAggregate(entries, 7, now)
	require.NoError(t, err)

	assert.Len(t, agg.TopThemes, MaxTopThemes)
}

func TestComputeAggregateTrendIsDense(t *testing.T) {
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	entries := []types.Entry{
		entryAt(now, types.SentimentPositive, 5),
		entryAt(now.AddDate(0, 0, -2), types.SentimentNegative, 5),
		entryAt(now.AddDate(0, 0, -2), types.SentimentMixed, 5),
	}

	agg, err := ComputeAggregate(entries, 5, now)
	require.NoError(t, err)

	require.Len(t, agg.Trend, 5)

	// Oldest first, ending today.
	assert.Equal(t, "2026-03-08", agg.Trend[0].Date)
	assert.Equal(t, "2026-03-12", agg.Trend[4].Date)

	// Day with no entries is present and zero-filled.
	empty := agg.Trend[3] // 2026-03-11
	assert.Equal(t, types.TrendPoint{Date: "2026-03-11"}, empty)

	twoDaysAgo := agg.Trend[2] // 2026-03-10
	assert.Equal(t, 1, twoDaysAgo.Negative)
	assert.Equal(t, 1, twoDaysAgo.Mixed)
	assert.Equal(t, 0, twoDaysAgo.Positive)

	today := agg.Trend[4]
	assert.Equal(t, 1, today.Positive)
}

func TestComputeAggregateIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	entries := []types.Entry{
		entryAt(now, types.SentimentPositive, 8, "work"),
		entryAt(now.AddDate(0, 0, -1), types.SentimentNegative, 13, "stress"),
	}

	first, err := ComputeAggregate(entries, 14, now)
	require.NoError(t, err)
	second, err := ComputeAggregate(entries, 14, now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
