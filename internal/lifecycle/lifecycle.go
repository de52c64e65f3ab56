// Package lifecycle holds the pattern both entity managers share: a status
// enum moves along an explicit adjacency table, and every accepted move is
// persisted together with the event announcing it.
package lifecycle

// Graph maps a status to the statuses reachable from it. A status with no
// entry is terminal.
type Graph[S comparable] map[S][]S

func (g Graph[S]) CanTransition(from, to S) bool {
	for _, s := range g[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (g Graph[S]) Terminal(s S) bool {
	return len(g[s]) == 0
}

// Known reports whether s appears in the graph at all, as a source or as a
// target.
func (g Graph[S]) Known(s S) bool {
	if _, ok := g[s]; ok {
		return true
	}
	for _, next := range g {
		for _, t := range next {
			if t == s {
				return true
			}
		}
	}
	return false
}
