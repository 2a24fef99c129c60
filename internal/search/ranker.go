package search

import (
	"fmt"
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"
)

// Match is one ranked candidate. Index points into the labels handed to
// Rank; Positions lists matched byte offsets into the label when the ranker
// knows them.
type Match struct {
	Index     int
	Positions []int
}

// Ranker orders labels by how well they match a query, best first, leaving
// out labels that do not match at all.
type Ranker interface {
	Rank(query string, labels []string) []Match
}

// RankerFunc adapts a function to the Ranker interface.
type RankerFunc func(query string, labels []string) []Match

func (f RankerFunc) Rank(query string, labels []string) []Match {
	return f(query, labels)
}

// Ranker names accepted by RankerFor.
const (
	RankerFuzzySearch = "fuzzysearch"
	RankerSahilm      = "sahilm"
)

// RankerFor returns the ranker registered under name.
func RankerFor(name string) (Ranker, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", RankerFuzzySearch:
		return FuzzySearch{}, nil
	case RankerSahilm:
		return Sahilm{}, nil
	default:
		return nil, fmt.Errorf("unknown ranker %q", name)
	}
}

// FuzzySearch ranks case-insensitive subsequence matches by Levenshtein
// distance, ties broken by original order.
type FuzzySearch struct{}

func (FuzzySearch) Rank(query string, labels []string) []Match {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil
	}
	ranks := lfuzzy.RankFindNormalizedFold(trimmed, labels)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	matches := make([]Match, len(ranks))
	for i, rank := range ranks {
		matches[i] = Match{Index: rank.OriginalIndex}
	}
	return matches
}

// Sahilm ranks with sahilm/fuzzy scoring, which favours matches at word
// boundaries and reports matched positions for highlighting.
type Sahilm struct{}

func (Sahilm) Rank(query string, labels []string) []Match {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil
	}
	found := sfuzzy.Find(trimmed, labels)
	matches := make([]Match, len(found))
	for i, m := range found {
		matches[i] = Match{Index: m.Index, Positions: m.MatchedIndexes}
	}
	return matches
}
