package hoeffding

import (
	"github.com/go-vfdt/vfdt/pkg/errors"
)

// Node is one node of the evolving tree: a leaf until it commits to a
// split, an internal node afterwards. Leaves own per-dimension statistics
// and a class-count vector; internal nodes own a committed SplitRule and
// one child per branch. Children are never shared. Fields are exported for
// gob encoding.
type Node struct {
	// Internal node state. Rule is nil for leaves.
	Rule     *SplitRule
	Children []*Node

	// Leaf state. Stats is released when the node becomes internal; only
	// the compact class counts survive, implicitly, as child seeds.
	Stats       []FeatureStats
	ClassCounts []float64

	// NumObserved counts the examples routed here and observed into Stats
	// since the node's creation. Seed counts are excluded: split gates must
	// run on evidence the statistics have actually seen.
	NumObserved int

	// Observations since the last split-evaluation attempt. Transient:
	// not persisted, so a reloaded model simply restarts the cadence.
	sinceCheck int
}

// IsLeaf reports whether the node has not committed to a split yet.
func (n *Node) IsLeaf() bool {
	return n.Rule == nil
}

// newLeaf creates a leaf with fresh per-dimension statistics.
func newLeaf(schema Schema, numClasses int, cfg *Config) *Node {
	stats := make([]FeatureStats, len(schema))
	for d, dim := range schema {
		if dim.Kind == Categorical {
			stats[d] = NewCategoricalStats(d, dim.Arity, numClasses)
			continue
		}
		if cfg.NumericStrategy == BinnedHistogram {
			stats[d] = NewBinnedNumericStats(d, numClasses, cfg.Bins, cfg.ObservationsBeforeBinning)
		} else {
			stats[d] = NewBinaryNumericStats(d, numClasses, cfg.MaxDistinctValues)
		}
	}
	return &Node{
		Stats:       stats,
		ClassCounts: make([]float64, numClasses),
	}
}

// descend routes an example from n down committed split rules to exactly
// one leaf. Classification and training share this path; it never mutates
// the tree.
func (n *Node) descend(x []float64) *Node {
	node := n
	for !node.IsLeaf() {
		branch, unseen := node.Rule.Route(x[node.Rule.Dimension])
		if unseen {
			errors.Warn(errors.NewUnseenCategoryWarning(
				node.Rule.Dimension, int(x[node.Rule.Dimension]), branch))
		}
		node = node.Children[branch]
	}
	return node
}

// observe folds one labeled example into the leaf's statistics.
func (n *Node) observe(x []float64, label int) {
	n.ClassCounts[label]++
	n.NumObserved++
	n.sinceCheck++
	for d, fs := range n.Stats {
		fs.Observe(x[d], label)
	}
}

// maybeSplit evaluates the leaf's candidate splits and commits the best one
// if the Hoeffding bound approves. On commit the leaf becomes an internal
// node whose children are fresh leaves pre-seeded with the winning
// candidate's per-branch class counts, and the detailed per-feature
// statistics are released. Reports whether a split was committed.
func (n *Node) maybeSplit(schema Schema, numClasses int, cfg *Config) bool {
	n.sinceCheck = 0

	if n.NumObserved < cfg.MinSamples {
		return false
	}

	ev := evaluateSplits(cfg.Criterion, n.Stats)
	r := cfg.GainRange
	if r <= 0 {
		r = gainRange(cfg.Criterion, numClasses)
	}
	eps := hoeffdingBound(r, cfg.Confidence, n.NumObserved)

	if decideSplitNow(ev, eps, n.NumObserved, cfg.MinSamples, cfg.MaxSamples, cfg.TieTolerance) != decideSplit {
		return false
	}

	// Children inherit the winning candidate's class counts so they can
	// classify immediately, but their NumObserved starts at zero: the fresh
	// statistics have seen nothing yet.
	rule := ev.Best.Rule
	children := make([]*Node, rule.NumBranches)
	for b := range children {
		child := newLeaf(schema, numClasses, cfg)
		copy(child.ClassCounts, ev.Best.ChildCounts[b])
		children[b] = child
	}

	n.Rule = &rule
	n.Children = children
	n.Stats = nil
	return true
}

// numNodes counts the nodes of the subtree rooted at n.
func (n *Node) numNodes() int {
	total := 1
	for _, child := range n.Children {
		total += child.numNodes()
	}
	return total
}

// eachLeaf invokes fn on every leaf of the subtree rooted at n.
func (n *Node) eachLeaf(fn func(*Node)) {
	if n.IsLeaf() {
		fn(n)
		return
	}
	for _, child := range n.Children {
		child.eachLeaf(fn)
	}
}
