package metrics

import (
	"sync/atomic"
	"time"
)

// LeafReason records why the expander stopped at a node.
type LeafReason int

const (
	DepthLimit LeafReason = iota // node sits at the depth bound
	Terminal                     // mission over: stranded, out of time or complete
	DeadEnd                      // no valid actions
	NodeLimit                    // expanding would exceed the node ceiling
)

func (r LeafReason) String() string {
	switch r {
	case DepthLimit:
		return "depth"
	case Terminal:
		return "terminal"
	case DeadEnd:
		return "dead_end"
	case NodeLimit:
		return "node_limit"
	default:
		return "unknown"
	}
}

type SearchMetric struct {
	Workers   int
	MaxDepth  int
	MaxNodes  int
	Duration  time.Duration
	Nodes     int
	Leaves    int
	Terminals int
	DeadEnds  int
	Cutoffs   int // leaves at the depth bound
	Truncated bool
}

type Collector interface {
	Start(workers, maxDepth, maxNodes int)
	AddNode()
	AddLeaf(reason LeafReason)
	Complete() SearchMetric
}

type collector struct {
	workers   int
	maxDepth  int
	maxNodes  int
	startTime time.Time
	nodes     atomic.Int32
	leaves    atomic.Int32
	terminals atomic.Int32
	deadEnds  atomic.Int32
	cutoffs   atomic.Int32
	truncated atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(workers, maxDepth, maxNodes int) {
	m.startTime = time.Now()
	m.workers = workers
	m.maxDepth = maxDepth
	m.maxNodes = maxNodes
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.terminals.Store(0)
	m.deadEnds.Store(0)
	m.cutoffs.Store(0)
	m.truncated.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf(reason LeafReason) {
	m.leaves.Add(1)
	switch reason {
	case DepthLimit:
		m.cutoffs.Add(1)
	case Terminal:
		m.terminals.Add(1)
	case DeadEnd:
		m.deadEnds.Add(1)
	case NodeLimit:
		m.truncated.Store(true)
	}
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Workers:   m.workers,
		MaxDepth:  m.maxDepth,
		MaxNodes:  m.maxNodes,
		Duration:  time.Since(m.startTime),
		Nodes:     int(m.nodes.Load()),
		Leaves:    int(m.leaves.Load()),
		Terminals: int(m.terminals.Load()),
		DeadEnds:  int(m.deadEnds.Load()),
		Cutoffs:   int(m.cutoffs.Load()),
		Truncated: m.truncated.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(workers, maxDepth, maxNodes int) {}
func (m *dummyCollector) AddNode()                              {}
func (m *dummyCollector) AddLeaf(reason LeafReason)             {}
func (m *dummyCollector) Complete() SearchMetric                { return SearchMetric{} }
