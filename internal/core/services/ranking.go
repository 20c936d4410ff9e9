package services

import (
	"cmp"
	"maps"
	"slices"
)

// scoreGroups is an ordered map from score to the items holding that score.
// It is built once per query and discarded afterwards.
type scoreGroups[S cmp.Ordered, T any] struct {
	byScore map[S][]T
	size    int
}

func newScoreGroups[S cmp.Ordered, T any]() *scoreGroups[S, T] {
	return &scoreGroups[S, T]{byScore: make(map[S][]T)}
}

func (g *scoreGroups[S, T]) add(score S, item T) {
	g.byScore[score] = append(g.byScore[score], item)
	g.size++
}

// topK walks tie groups from the highest score down and returns at most k
// items. Whole groups are taken while they fit; the first group that does
// not fit is ordered by tie and cut to the remaining room. Fewer than k
// items come back when the groups run out.
func (g *scoreGroups[S, T]) topK(k int, tie func(a, b T) int) []T {
	if k <= 0 {
		return []T{}
	}

	scores := slices.Collect(maps.Keys(g.byScore))
	slices.SortFunc(scores, func(a, b S) int { return cmp.Compare(b, a) })

	out := make([]T, 0, min(k, g.size))
	for _, score := range scores {
		group := slices.Clone(g.byScore[score])
		slices.SortStableFunc(group, tie)

		room := k - len(out)
		if len(group) >= room {
			return append(out, group[:room]...)
		}
		out = append(out, group...)
	}
	return out
}
