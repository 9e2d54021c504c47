package analysis

import (
	"hash/fnv"
	"strings"
	"time"

	"github.com/scrypster/inkwell/pkg/types"
)

// MaxSuggestions is the number of suggestions returned per entry.
const MaxSuggestions = 3

// Suggestion pools keyed by category. Categories are activated by the entry's
// sentiment, themes, or raw text; the general pool is always in play.
var suggestionPools = map[string][]string{
	"general": {
		"Take a five-minute walk without your phone",
		"Write down one thing you're looking forward to",
		"Drink a glass of water and take three deep breaths",
		"Reread an entry from last week and notice what changed",
	},
	"stress": {
		"Try a two-minute breathing exercise before your next task",
		"List the one thing that is actually in your control today",
		"Step away from screens for ten minutes",
	},
	"work": {
		"Write down tomorrow's single most important task",
		"Close the day by noting one thing that went well at work",
		"Block fifteen minutes of focus time on your calendar",
	},
	"relationships": {
		"Send a short message to someone you've been thinking about",
		"Plan a low-effort catch-up with a friend this week",
		"Write down one thing you appreciate about someone close to you",
	},
	"health": {
		"Stretch for five minutes before bed",
		"Plan one nourishing meal for tomorrow",
		"Set a reminder to wind down thirty minutes earlier tonight",
	},
	"creativity": {
		"Spend ten minutes making something with no goal in mind",
		"Capture one idea in a note before it slips away",
		"Change your environment for your next creative session",
	},
	"gratitude": {
		"Name three small things that went right today",
		"Tell someone specifically what you're grateful to them for",
		"Keep tonight's entry focused on one good moment",
	},
}

// categoryOrder fixes the order in which pools are appended to the candidate
// list, which in turn fixes first-occurrence order during deduplication.
var categoryOrder = []string{
	"general", "stress", "work", "relationships", "health", "creativity", "gratitude",
}

// SelectSuggestions picks up to MaxSuggestions actionable suggestions for an
// entry. The selection is deterministic within a calendar week for a given
// text and rotates in later weeks, without storing any state: the shuffle is
// driven by a PRNG seeded from the text content and the ISO week of now.
//
// baseSuggestions are caller-supplied candidates (e.g. from a remote
// analysis) merged into the pool before shuffling. Duplicates are removed
// case-insensitively, keeping the first occurrence.
func SelectSuggestions(baseSuggestions []string, text string, sentiment types.Sentiment, themes []string, now time.Time) []string {
	lower := strings.ToLower(text)
	themeSet := make(map[string]bool, len(themes))
	for _, theme := range themes {
		themeSet[theme] = true
	}

	active := map[string]bool{"general": true}
	if sentiment == types.SentimentNegative || strings.Contains(lower, "stress") || strings.Contains(lower, "anxiety") {
		active["stress"] = true
	}
	if themeSet[types.ThemeWork] {
		active["work"] = true
	}
	if themeSet[types.ThemeFamily] || themeSet[types.ThemeRelationships] || strings.Contains(lower, "friend") {
		active["relationships"] = true
	}
	if themeSet[types.ThemeHealth] {
		active["health"] = true
	}
	if themeSet[types.ThemeCreativity] {
		active["creativity"] = true
	}
	if themeSet[types.ThemeGratitude] || strings.Contains(lower, "grateful") {
		active["gratitude"] = true
	}

	var candidates []string
	for _, category := range categoryOrder {
		if active[category] {
			candidates = append(candidates, suggestionPools[category]...)
		}
	}
	candidates = append(candidates, baseSuggestions...)
	candidates = dedupeFold(candidates)

	rng := newXorshift(weekSeed(text, now))
	rng.shuffle(candidates)

	if len(candidates) > MaxSuggestions {
		candidates = candidates[:MaxSuggestions]
	}
	return candidates
}

// dedupeFold removes case-insensitive duplicates, preserving the first
// occurrence of each suggestion.
func dedupeFold(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

// weekSeed derives a deterministic seed from the entry text and the ISO
// calendar week containing now. The same (text, week) pair always produces
// the same seed; a new week produces a new one.
func weekSeed(text string, now time.Time) uint64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	year, week := now.ISOWeek()
	seed := h.Sum64() ^ uint64(year*100+week)
	if seed == 0 {
		seed = 0x9e3779b97f4a7c15
	}
	return seed
}

// xorshift is a minimal xorshift64 PRNG. We deliberately avoid math/rand here
// so the permutation for a given seed is stable across Go releases.
type xorshift struct {
	state uint64
}

func newXorshift(seed uint64) *xorshift {
	return &xorshift{state: seed}
}

func (r *xorshift) next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return x
}

// shuffle applies a Fisher-Yates permutation driven by the PRNG.
func (r *xorshift) shuffle(items []string) {
	for i := len(items) - 1; i > 0; i-- {
		j := int(r.next() % uint64(i+1))
		items[i], items[j] = items[j], items[i]
	}
}
