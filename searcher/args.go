package searcher

import (
	"time"

	"gamesearch/experiments/metrics"
	"gamesearch/game"
	"gamesearch/meta"

	"golang.org/x/exp/rand"
)

type Option func(m *Minimax)

// WithDepth sets the number of plies searched below the root.
func WithDepth(depth int) Option {
	return func(m *Minimax) {
		m.depth = depth
	}
}

// WithCacheCapacity bounds the transposition tables.
func WithCacheCapacity(capacity int) Option {
	return func(m *Minimax) {
		m.capacity = capacity
	}
}

// WithoutCache disables memoization.
func WithoutCache() Option {
	return func(m *Minimax) {
		m.capacity = 0
	}
}

// WithSeed makes tie-breaking reproducible.
func WithSeed(seed uint64) Option {
	return func(m *Minimax) {
		m.rand = rand.New(rand.NewSource(seed))
	}
}

// WithEvaluationFn replaces the depth cutoff estimate of the scalar search.
func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		m.evaluate = evaluate
	}
}

// WithTupleEvaluationFn replaces the depth cutoff estimate of the tuple search.
func WithTupleEvaluationFn(evaluate game.EvaluateTuple) Option {
	return func(m *Minimax) {
		m.evaluateTuple = evaluate
	}
}

// WithTolerance treats scores within tolerance of the best as ties. The default
// 0 compares exactly.
func WithTolerance(tolerance float64) Option {
	return func(m *Minimax) {
		m.tolerance = tolerance
	}
}

// WithGoroutines scores root actions in parallel.
func WithGoroutines(goroutines int) Option {
	return func(m *Minimax) {
		m.goroutines = goroutines
	}
}

// WithDebug turns failed IsLegalState checks into errors.
func WithDebug(debug bool) Option {
	return func(m *Minimax) {
		m.debug = debug
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func defaults() *Minimax {
	return &Minimax{
		depth:         meta.DefaultDepth,
		capacity:      meta.DefaultCacheCapacity,
		goroutines:    1,
		evaluate:      game.EvaluateScore,
		evaluateTuple: game.EvaluateScoreTuple,
		debug:         debugAssertions,
		metrics:       metrics.NewDummyCollector(),
		rand:          rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}
