package searcher

import "math"

// tied reports whether v counts as equal to best. With zero tolerance this is
// exact float equality, which suits the {-1, 0, 1} rewards of finished games.
func (m *Minimax) tied(v, best float64) bool {
	if m.tolerance == 0 {
		return v == best
	}
	return math.Abs(v-best) <= m.tolerance
}

// argmax returns the best score among the scored entries and the indices tied
// with it, in enumeration order. Ties are measured against the true maximum.
func (m *Minimax) argmax(values []float64, scored []bool) (best float64, ties []int) {
	best = math.Inf(-1)
	for i, v := range values {
		if scored[i] && v > best {
			best = v
		}
	}
	for i, v := range values {
		if scored[i] && m.tied(v, best) {
			ties = append(ties, i)
		}
	}
	return best, ties
}

// breakTie picks one of ties uniformly at random.
func (m *Minimax) breakTie(ties []int) int {
	if len(ties) == 1 {
		return ties[0]
	}
	return ties[m.rand.Intn(len(ties))]
}
