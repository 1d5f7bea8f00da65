package game

import (
	"fmt"
	"strings"
)

// ScoreTuple holds one reward per player, indexed by player number.
type ScoreTuple []float64

// NewScoreTuple returns a zero tuple for n players.
func NewScoreTuple(n int) ScoreTuple {
	return make(ScoreTuple, n)
}

func (t ScoreTuple) Clone() ScoreTuple {
	c := make(ScoreTuple, len(t))
	copy(c, t)
	return c
}

// Of returns the reward of player.
func (t ScoreTuple) Of(player int) float64 {
	return t[player]
}

// Scale multiplies every component by factor in place and returns t.
func (t ScoreTuple) Scale(factor float64) ScoreTuple {
	for i := range t {
		t[i] *= factor
	}
	return t
}

// Add adds other component-wise into t and returns t.
func (t ScoreTuple) Add(other ScoreTuple) ScoreTuple {
	if len(t) != len(other) {
		panic(fmt.Sprintf("score tuple length mismatch: %d != %d", len(t), len(other)))
	}
	for i := range t {
		t[i] += other[i]
	}
	return t
}

// Average returns the component-wise mean of tuples, which must be non-empty and
// of equal length.
func Average(tuples ...ScoreTuple) ScoreTuple {
	if len(tuples) == 0 {
		panic("cannot average zero score tuples")
	}
	sum := NewScoreTuple(len(tuples[0]))
	for _, t := range tuples {
		sum.Add(t)
	}
	return sum.Scale(1 / float64(len(tuples)))
}

// ZeroSum builds the two-player tuple where player scores value.
func ZeroSum(player int, value float64) ScoreTuple {
	t := NewScoreTuple(2)
	t[player] = value
	t[1-player] = -value
	return t
}

func (t ScoreTuple) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
