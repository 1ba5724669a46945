// Package areamatch ranks rider service areas against an order's delivery
// sub-area. Area labels are free text typed by riders and customers, so the
// match has to tolerate spelling and formatting drift.
package areamatch

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the maximum dissimilarity score still considered an
// acceptable area match.
const DefaultThreshold = 0.3

// Candidate is a rider's id together with its service area label.
type Candidate struct {
	ID   int64
	Area string
}

// Match is a ranked candidate. Score is a dissimilarity in [0,1]:
// 0 means identical, higher means more dissimilar.
type Match struct {
	ID    int64
	Score float64
}

// Matcher ranks candidate areas by textual similarity.
type Matcher struct {
	threshold float64
}

// New creates a Matcher. Thresholds outside (0,1] fall back to DefaultThreshold.
func New(threshold float64) *Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// Threshold returns the configured acceptance threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Acceptable reports whether score is at or below the threshold.
func (m *Matcher) Acceptable(score float64) bool {
	return score <= m.threshold
}

// Rank scores candidates against target and returns them best match first.
// A candidate whose area equals the target byte-for-byte always ranks ahead
// of every non-exact candidate. Equal scores keep the input order, so the
// result is deterministic. An empty target or candidate set yields nil.
func (m *Matcher) Rank(target string, candidates []Candidate) []Match {
	if target == "" || len(candidates) == 0 {
		return nil
	}

	type scored struct {
		Match
		exact bool
	}

	folded := fold(target)
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, scored{
			Match: Match{ID: c.ID, Score: score(folded, fold(c.Area))},
			exact: c.Area == target,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].exact != ranked[j].exact {
			return ranked[i].exact
		}
		return ranked[i].Score < ranked[j].Score
	})

	out := make([]Match, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, s.Match)
	}
	return out
}

// fold normalizes an area label for scoring. Exact-match precedence in Rank
// stays byte-exact; folding only affects the fuzzy score.
func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// score computes the normalized edit distance between two folded labels.
func score(a, b string) float64 {
	if a == b {
		return 0
	}
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	d := float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
	if d > 1 {
		d = 1
	}
	return d
}
