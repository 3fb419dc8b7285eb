package searcher

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"drone/experiments/metrics"
	"drone/mission"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxDepth = 7

	// Work stack pops between context checks.
	cancelCheckInterval = 256
)

type Option func(s *Searcher)

// Searcher exhaustively expands the decision tree of a mission up to a depth
// bound and scores every leaf with an objective.
type Searcher struct {
	rules        mission.Rules
	maxDepth     int
	maxNodes     int
	workers      int
	objective    mission.Objective
	newCollector func() metrics.Collector
}

func WithMaxDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithMaxNodes caps the number of nodes in a tree. Nodes that would push the
// tree past the cap are scored as leaves instead of expanded.
func WithMaxNodes(nodes int) Option {
	return func(s *Searcher) {
		if nodes > 0 {
			s.maxNodes = nodes
		}
	}
}

// WithWorkers expands the subtrees below the root on up to n goroutines.
func WithWorkers(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithObjective(objective mission.Objective) Option {
	return func(s *Searcher) {
		if objective != nil {
			s.objective = objective
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.newCollector = metrics.NewCollector
	}
}

func NewSearcher(rules mission.Rules, options ...Option) *Searcher {
	s := &Searcher{ // Default values
		rules:        rules,
		maxDepth:     DefaultMaxDepth,
		workers:      1,
		objective:    mission.DefaultObjective,
		newCollector: metrics.NewDummyCollector,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Searcher) MaxDepth() int {
	return s.maxDepth
}

// Build expands the full decision tree rooted at initial. The returned tree
// is owned by the caller. Build fails only if ctx is done before the tree is
// complete.
func (s *Searcher) Build(ctx context.Context, initial mission.State) (*Tree, error) {
	collector := s.newCollector()
	collector.Start(s.workers, s.maxDepth, s.maxNodes)
	start := time.Now()

	log.Debug().
		Int("max_depth", s.maxDepth).
		Int("max_nodes", s.maxNodes).
		Int("workers", s.workers).
		Str("start", initial.String()).
		Msg("building decision tree")

	b := &builder{Searcher: s, metrics: collector}
	root := &Node{state: initial}
	b.nodes.Store(1)
	collector.AddNode()

	var err error
	if s.workers > 1 {
		err = b.expandParallel(ctx, root)
	} else {
		err = b.expand(ctx, root)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build decision tree: %w", err)
	}

	tree := &Tree{
		root:      root,
		size:      int(b.nodes.Load()),
		leaves:    int(b.leaves.Load()),
		truncated: b.truncated.Load(),
		metric:    collector.Complete(),
	}
	log.Debug().
		Int("nodes", tree.size).
		Int("leaves", tree.leaves).
		Bool("truncated", tree.truncated).
		Dur("elapsed", time.Since(start)).
		Msg("built decision tree")
	return tree, nil
}

type builder struct {
	*Searcher
	metrics   metrics.Collector
	nodes     atomic.Int64
	leaves    atomic.Int64
	truncated atomic.Bool
}

// expand grows the subtree under start depth first. Children are pushed in
// reverse so they are visited in enumeration order.
func (b *builder) expand(ctx context.Context, start *Node) error {
	stack := []*Node{start}
	for popped := 0; len(stack) > 0; popped++ {
		if popped%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !b.grow(node) {
			continue
		}
		for i := len(node.children) - 1; i >= 0; i-- {
			stack = append(stack, node.children[i])
		}
	}
	return nil
}

// expandParallel grows the root on the calling goroutine, then each root
// subtree on its own task. Subtrees share nothing but the node counter.
func (b *builder) expandParallel(ctx context.Context, root *Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !b.grow(root) {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for _, child := range root.children {
		g.Go(func() error {
			return b.expand(ctx, child)
		})
	}
	return g.Wait()
}

// grow either attaches the children of node or scores it as a leaf, and
// reports whether children were attached.
func (b *builder) grow(node *Node) bool {
	var actions []mission.Action
	reason := metrics.DepthLimit
	switch {
	case node.depth >= b.maxDepth:
	case b.rules.IsTerminal(node.state):
		reason = metrics.Terminal
	default:
		actions = b.rules.ValidActions(node.state)
		reason = metrics.DeadEnd
	}
	if len(actions) > 0 && !b.reserve(len(actions)) {
		actions = nil
		reason = metrics.NodeLimit
	}
	if len(actions) == 0 {
		b.settle(node, reason)
		return false
	}

	node.children = make([]*Node, 0, len(actions))
	for _, action := range actions {
		next, err := b.rules.Apply(node.state, action)
		if err != nil {
			panic(fmt.Sprintf("enumerated action %s does not apply: %v", action, err))
		}
		node.children = append(node.children, &Node{
			state:  next,
			action: action,
			parent: node,
			depth:  node.depth + 1,
		})
		b.metrics.AddNode()
	}
	return true
}

// reserve claims room for n more nodes under the node ceiling.
func (b *builder) reserve(n int) bool {
	if b.maxNodes <= 0 {
		b.nodes.Add(int64(n))
		return true
	}
	for {
		current := b.nodes.Load()
		if current+int64(n) > int64(b.maxNodes) {
			return false
		}
		if b.nodes.CompareAndSwap(current, current+int64(n)) {
			return true
		}
	}
}

func (b *builder) settle(node *Node, reason metrics.LeafReason) {
	node.score = b.objective(node.state, b.rules.Constraints())
	node.scored = true
	b.leaves.Add(1)
	b.metrics.AddLeaf(reason)
	if reason == metrics.NodeLimit {
		b.truncated.Store(true)
	}
}
