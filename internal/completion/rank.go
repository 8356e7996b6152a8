package completion

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

type dedupKey struct {
	value string
	query string
}

type ranked struct {
	Candidate
	weight int
	score  float64
}

// Rank deduplicates candidates by (Value, Query), scores them against their
// query and returns the survivors best first. Equal scores keep input order.
//
// A candidate whose fuzzy score does not beat the score a value of that
// length would get from a query of the same length is treated as noise.
// Duplicates multiply the score by their count.
func Rank(candidates []Candidate) []Candidate {
	kept := rank(candidates)
	out := make([]Candidate, len(kept))
	for i, e := range kept {
		out[i] = e.Candidate
	}
	return out
}

func rank(candidates []Candidate) []*ranked {
	index := map[dedupKey]int{}
	entries := make([]*ranked, 0, len(candidates))
	for _, c := range candidates {
		k := dedupKey{value: c.Value, query: c.Query}
		if i, ok := index[k]; ok {
			e := entries[i]
			e.weight++
			if e.Description == "" {
				e.Description = c.Description
			}
			e.Type = TypeDefault
			continue
		}
		index[k] = len(entries)
		entries = append(entries, &ranked{Candidate: c, weight: 1})
	}

	kept := entries[:0]
	for _, e := range entries {
		e.score = score(e.Value, e.Query) * float64(e.weight)
		if e.score > 0 {
			kept = append(kept, e)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].score > kept[j].score })
	return kept
}

// Score is the weight-1 score Rank assigns to value for query.
func Score(value, query string) float64 { return score(value, query) }

func score(value, query string) float64 {
	if query == "" {
		return 1
	}
	if value == "" {
		return 0
	}
	n := float64(utf8.RuneCountInString(value))
	baseline := fuzzyScore(value, value) * float64(utf8.RuneCountInString(query)) / (n * n)
	s := fuzzyScore(value, query)
	if s > baseline {
		return s
	}
	return 0
}

// Scoring weights. Every term is bounded by the value length, so a value's
// score against itself grows linearly.
const (
	baseScore         = 100
	consecutiveBonus  = 20
	boundaryBonus     = 15
	leadingBonus      = 25
	exactPrefixBonus  = 50
	gapPenalty        = 2
	shortValueCeiling = 20
)

// fuzzyScore matches query against value with sahilm/fuzzy and scores the
// matched positions. It is 0 when query is not a subsequence of value.
func fuzzyScore(value, query string) float64 {
	matches := fuzzy.Find(query, []string{value})
	if len(matches) == 0 || len(matches[0].MatchedIndexes) == 0 {
		return 0
	}
	runes := []rune(value)
	// MatchedIndexes are byte offsets
	runeAt := make(map[int]int, len(runes))
	r := 0
	for b := range value {
		runeAt[b] = r
		r++
	}
	pos := make([]int, 0, len(matches[0].MatchedIndexes))
	for _, b := range matches[0].MatchedIndexes {
		pos = append(pos, runeAt[b])
	}

	sc := baseScore
	for i := 1; i < len(pos); i++ {
		if pos[i] == pos[i-1]+1 {
			sc += consecutiveBonus
		}
	}
	for _, p := range pos {
		if isBoundary(runes, p) {
			sc += boundaryBonus
		}
	}
	if pos[0] == 0 {
		sc += leadingBonus
	} else {
		sc -= pos[0]
	}
	if gap := pos[len(pos)-1] - pos[0] - len(pos) + 1; gap > 0 {
		sc -= gap * gapPenalty
	}
	if len(runes) < shortValueCeiling {
		sc += shortValueCeiling - len(runes)
	}
	if hasFoldedPrefix(runes, []rune(query)) {
		sc += exactPrefixBonus
	}
	return float64(max(sc, 1))
}

func isBoundary(runes []rune, i int) bool {
	if i == 0 {
		return true
	}
	if i >= len(runes) {
		return false
	}
	prev, cur := runes[i-1], runes[i]
	return unicode.IsSpace(prev) || unicode.IsPunct(prev) || (unicode.IsLower(prev) && unicode.IsUpper(cur))
}

func hasFoldedPrefix(value, prefix []rune) bool {
	if len(prefix) > len(value) {
		return false
	}
	for i, r := range prefix {
		if unicode.ToLower(value[i]) != unicode.ToLower(r) {
			return false
		}
	}
	return true
}
