package types

// Period identifies a calendar period for insight generation.
type Period string

// Period constants. A week runs Monday through Sunday; a month is the
// current calendar month.
const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// IsValidPeriod checks if the given period is supported.
func IsValidPeriod(p Period) bool {
	return p == PeriodWeek || p == PeriodMonth
}

// ThemeStat is a theme label with its occurrence count across a set of
// entries. Derived and ephemeral; never persisted.
type ThemeStat struct {
	Theme string `json:"theme"`
	Count int    `json:"count"` // Always >= 1
}

// TrendPoint is one day of the sentiment trend series. All four counts are
// always present, defaulting to zero, so the series is dense with no gaps.
type TrendPoint struct {
	Date     string `json:"date"` // Local calendar day, YYYY-MM-DD
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
	Mixed    int    `json:"mixed"`
}

// MaxInsightThemes caps the top-theme list in a PeriodInsight.
const MaxInsightThemes = 3

// MaxHighlights caps the positive highlights in a PeriodInsight.
const MaxHighlights = 4

// PeriodInsight is an aggregate summary over entries within a calendar
// period. EntryCount of zero indicates an empty period; callers must branch
// on the count, not on field presence.
type PeriodInsight struct {
	Period             Period    `json:"period"`
	EntryCount         int       `json:"entry_count"`
	TopThemes          []string  `json:"top_themes"`          // At most MaxInsightThemes
	DominantSentiment  Sentiment `json:"dominant_sentiment"`
	Patterns           []string  `json:"patterns"`
	Recommendations    []string  `json:"recommendations"`
	PositiveHighlights []Entry   `json:"positive_highlights"` // Positive entries only, at most MaxHighlights
}
