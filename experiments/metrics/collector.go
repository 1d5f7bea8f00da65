package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth       int
	Goroutines  int
	Duration    time.Duration
	Nodes       int // expanded decision nodes
	Leaves      int // depth cutoff evaluations
	Terminals   int
	ChanceNodes int
	CacheHits   int
	CacheMisses int
	DeepestPly  int
	Complete    bool
}

type MoveMetric struct {
	Step   int
	Player int
	Action int
	Random bool
	SearchMetric
}

type GameMetric struct {
	ID             string
	Game           string
	StartingPlayer int
	Winner         int // -1 when no single player has the best score
	Scores         []float64
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(depth, goroutines int)
	AddNode()
	AddLeaf()
	AddTerminal()
	AddChance()
	AddCacheHit()
	AddCacheMiss()
	ReachPly(ply int)
	Complete(complete bool) SearchMetric
}

type collector struct {
	depth       int
	goroutines  int
	startTime   time.Time
	nodes       atomic.Int64
	leaves      atomic.Int64
	terminals   atomic.Int64
	chanceNodes atomic.Int64
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
	deepestPly  atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth, goroutines int) {
	m.startTime = time.Now()
	m.depth = depth
	m.goroutines = goroutines
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.terminals.Store(0)
	m.chanceNodes.Store(0)
	m.cacheHits.Store(0)
	m.cacheMisses.Store(0)
	m.deepestPly.Store(0)
}

func (m *collector) AddNode()      { m.nodes.Add(1) }
func (m *collector) AddLeaf()      { m.leaves.Add(1) }
func (m *collector) AddTerminal()  { m.terminals.Add(1) }
func (m *collector) AddChance()    { m.chanceNodes.Add(1) }
func (m *collector) AddCacheHit()  { m.cacheHits.Add(1) }
func (m *collector) AddCacheMiss() { m.cacheMisses.Add(1) }

func (m *collector) ReachPly(ply int) {
	for {
		deepest := m.deepestPly.Load()
		if int64(ply) <= deepest || m.deepestPly.CompareAndSwap(deepest, int64(ply)) {
			return
		}
	}
}

func (m *collector) Complete(complete bool) SearchMetric {
	return SearchMetric{
		Depth:       m.depth,
		Goroutines:  m.goroutines,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		Leaves:      int(m.leaves.Load()),
		Terminals:   int(m.terminals.Load()),
		ChanceNodes: int(m.chanceNodes.Load()),
		CacheHits:   int(m.cacheHits.Load()),
		CacheMisses: int(m.cacheMisses.Load()),
		DeepestPly:  int(m.deepestPly.Load()),
		Complete:    complete,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth, goroutines int) {}
func (m *dummyCollector) AddNode()                    {}
func (m *dummyCollector) AddLeaf()                    {}
func (m *dummyCollector) AddTerminal()                {}
func (m *dummyCollector) AddChance()                  {}
func (m *dummyCollector) AddCacheHit()                {}
func (m *dummyCollector) AddCacheMiss()               {}
func (m *dummyCollector) ReachPly(ply int)            {}
func (m *dummyCollector) Complete(complete bool) SearchMetric {
	return SearchMetric{Complete: complete}
}
