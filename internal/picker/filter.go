package picker

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/sahilm/fuzzy"
)

// fuzzyFilter ranks entries by fuzzy match score, best first.
// Entries with equal score keep their original order.
func fuzzyFilter(term string, targets []string) []list.Rank {
	matches := fuzzy.Find(term, targets)

	ranks := make([]list.Rank, len(matches))
	for i, match := range matches {
		ranks[i] = list.Rank{
			Index:          match.Index,
			MatchedIndexes: match.MatchedIndexes,
		}
	}
	return ranks
}
