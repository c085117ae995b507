package semantic

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestDistance bounds the edit distance of a suggestion that is not a
// fuzzy subsequence match.
const maxSuggestDistance = 2

// Suggest returns the candidate closest to name, or "" if none is close.
// Candidates containing name as a subsequence are preferred; otherwise
// the candidate with the smallest edit distance wins, if that distance is
// at most half the length of name.
func Suggest(name string, candidates []string) string {
	if name == "" || len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	limit := min(maxSuggestDistance, len(name)/2)
	best, bestDist := "", limit+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
