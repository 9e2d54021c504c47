package engine

import (
	"sort"
	"time"
)

// dayKeyFormat is the local-calendar-day bucket key.
const dayKeyFormat = "2006-01-02"

// CurrentStreak computes the current consecutive-day journaling streak from
// entry timestamps under the today-or-yesterday anchor rule:
//
//   - the streak is live if the most recent journaled day is today or
//     yesterday (a user who wrote yesterday but not yet today keeps their
//     streak); otherwise the streak is 0
//   - from the anchor day, walk backward one calendar day at a time; the
//     first missing day ends the streak
//   - multiple entries on the same calendar day count once
//
// Days are local calendar days derived from each timestamp's own location.
func CurrentStreak(timestamps []time.Time, now time.Time) int {
	if len(timestamps) == 0 {
		return 0
	}

	daySet := make(map[string]bool, len(timestamps))
	for _, ts := range timestamps {
		daySet[ts.Format(dayKeyFormat)] = true
	}
	days := make([]string, 0, len(daySet))
	for day := range daySet {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	today := now.Format(dayKeyFormat)
	yesterday := now.AddDate(0, 0, -1).Format(dayKeyFormat)

	var cursor time.Time
	switch days[0] {
	case today:
		cursor = now
	case yesterday:
		cursor = now.AddDate(0, 0, -1)
	default:
		return 0
	}

	streak := 0
	for daySet[cursor.Format(dayKeyFormat)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}
