package hoeffding

import (
	"math"
	"testing"
)

func binaryCategoricalSchema() Schema {
	return Schema{{Kind: Categorical, Arity: 2}}
}

// TestTree_CategoricalScenario trains on four examples with one binary
// categorical feature perfectly correlated with the label. With
// minSamples=1 and confidence=0.5 the root must have split on that feature
// after the fourth example, and a fifth example with category 0 must
// classify as label 0 with probability 1.
func TestTree_CategoricalScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Confidence = 0.5
	cfg.MinSamples = 1

	tree, err := NewTree(binaryCategoricalSchema(), 2, cfg)
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}

	X := [][]float64{{0}, {1}, {0}, {1}}
	labels := []int{0, 1, 0, 1}
	if err := tree.Train(X, labels, false); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	if tree.Root.IsLeaf() {
		t.Fatal("root did not split after the fourth example")
	}
	if tree.Root.Rule.Dimension != 0 || !tree.Root.Rule.Categorical {
		t.Errorf("unexpected root rule: %+v", tree.Root.Rule)
	}
	if tree.NumNodes() != 3 {
		t.Errorf("NumNodes = %d, want 3", tree.NumNodes())
	}

	label, probs, err := tree.Classify([]float64{0})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if label != 0 {
		t.Errorf("predicted label = %d, want 0", label)
	}
	if probs[0] != 1.0 {
		t.Errorf("P(class 0) = %v, want 1.0", probs[0])
	}
}

func TestTree_NoSplitBeforeMinSamples(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Confidence = 0.5
	cfg.MinSamples = 10

	tree, err := NewTree(binaryCategoricalSchema(), 2, cfg)
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}

	// Perfectly separable evidence, but fewer examples than minSamples.
	for i := 0; i < 9; i++ {
		label := i % 2
		if err := tree.ObserveExample([]float64{float64(label)}, label); err != nil {
			t.Fatalf("ObserveExample failed: %v", err)
		}
	}

	if !tree.Root.IsLeaf() {
		t.Error("split committed before minSamples observations")
	}
}

// TestTree_MonotonicEvidence checks that a leaf's class counts sum to the
// number of examples routed to it since creation.
func TestTree_MonotonicEvidence(t *testing.T) {
	cfg := DefaultConfig()

	tree, err := NewTree(Schema{{Kind: Numeric}}, 2, cfg)
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}

	for i := 0; i < 50; i++ {
		if err := tree.ObserveExample([]float64{float64(i)}, i%2); err != nil {
			t.Fatalf("ObserveExample failed: %v", err)
		}
	}

	total := 0.0
	for _, c := range tree.Root.ClassCounts {
		total += c
	}
	if total != 50 {
		t.Errorf("class counts sum to %v, want 50", total)
	}
	if tree.Root.NumObserved != 50 {
		t.Errorf("NumObserved = %d, want 50", tree.Root.NumObserved)
	}
}

// TestTree_BoundCorrectness feeds a stream where dimension 0 perfectly
// separates the classes and dimension 1 is uninformative. The tree must
// split on the informative dimension, and only on it.
func TestTree_BoundCorrectness(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Confidence = 0.95
	cfg.MinSamples = 5
	cfg.TieTolerance = 0 // isolate the bound test from tie breaking

	schema := Schema{
		{Kind: Categorical, Arity: 2},
		{Kind: Categorical, Arity: 2},
	}
	tree, err := NewTree(schema, 2, cfg)
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}

	for i := 0; i < 100; i++ {
		label := i % 2
		noise := float64((i / 2) % 2)
		if err := tree.ObserveExample([]float64{float64(label), noise}, label); err != nil {
			t.Fatalf("ObserveExample failed: %v", err)
		}
	}

	if tree.Root.IsLeaf() {
		t.Fatal("tree never split on clearly informative data")
	}
	if tree.Root.Rule.Dimension != 0 {
		t.Errorf("split on dimension %d, want informative dimension 0", tree.Root.Rule.Dimension)
	}
	// Children are pure, so no further splits should have happened.
	if tree.NumNodes() != 3 {
		t.Errorf("NumNodes = %d, want 3", tree.NumNodes())
	}
}

// TestTree_BatchMatchesStreamStructure trains streaming and batch trees on
// the same single pass and expects structurally equivalent results.
func TestTree_BatchMatchesStreamStructure(t *testing.T) {
	X := [][]float64{{0}, {1}, {0}, {1}, {0}, {1}}
	labels := []int{0, 1, 0, 1, 0, 1}

	cfg := DefaultConfig()
	cfg.Confidence = 0.5
	cfg.MinSamples = 1

	stream, err := NewTree(binaryCategoricalSchema(), 2, cfg)
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}
	batch, err := NewTree(binaryCategoricalSchema(), 2, cfg)
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}

	if err := stream.Train(X, labels, false); err != nil {
		t.Fatalf("streaming Train failed: %v", err)
	}
	if err := batch.Train(X, labels, true); err != nil {
		t.Fatalf("batch Train failed: %v", err)
	}

	if stream.Root.IsLeaf() || batch.Root.IsLeaf() {
		t.Fatal("expected both trees to split at the root")
	}
	if stream.Root.Rule.Dimension != batch.Root.Rule.Dimension {
		t.Errorf("split dimensions differ: stream %d, batch %d",
			stream.Root.Rule.Dimension, batch.Root.Rule.Dimension)
	}
	if stream.NumNodes() != batch.NumNodes() {
		t.Errorf("node counts differ: stream %d, batch %d", stream.NumNodes(), batch.NumNodes())
	}

	for _, x := range [][]float64{{0}, {1}} {
		sLabel, _, err := stream.Classify(x)
		if err != nil {
			t.Fatalf("Classify failed: %v", err)
		}
		bLabel, _, err := batch.Classify(x)
		if err != nil {
			t.Fatalf("Classify failed: %v", err)
		}
		if sLabel != bLabel {
			t.Errorf("predictions differ on %v: stream %d, batch %d", x, sLabel, bLabel)
		}
	}
}

func TestTree_ClassifyDeterminism(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinSamples = 1
	cfg.Confidence = 0.5

	tree, err := NewTree(Schema{{Kind: Numeric}}, 2, cfg)
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}
	for i := 0; i < 40; i++ {
		label := 0
		if i%4 >= 2 {
			label = 1
		}
		v := float64(i % 4)
		if err := tree.ObserveExample([]float64{v}, label); err != nil {
			t.Fatalf("ObserveExample failed: %v", err)
		}
	}

	for _, x := range [][]float64{{0.5}, {1.7}, {2.2}, {3.9}} {
		l1, p1, err := tree.Classify(x)
		if err != nil {
			t.Fatalf("Classify failed: %v", err)
		}
		l2, p2, err := tree.Classify(x)
		if err != nil {
			t.Fatalf("Classify failed: %v", err)
		}
		if l1 != l2 {
			t.Errorf("labels differ across calls on %v: %d vs %d", x, l1, l2)
		}
		for k := range p1 {
			if p1[k] != p2[k] {
				t.Errorf("probabilities differ across calls on %v", x)
			}
		}
	}
}

func TestTree_NumericBinarySplit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Confidence = 0.9
	cfg.MinSamples = 5

	tree, err := NewTree(Schema{{Kind: Numeric}}, 2, cfg)
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}

	// Values below 5 are class 0, above are class 1.
	for i := 0; i < 60; i++ {
		v := float64(i % 10)
		label := 0
		if v >= 5 {
			label = 1
		}
		if err := tree.ObserveExample([]float64{v}, label); err != nil {
			t.Fatalf("ObserveExample failed: %v", err)
		}
	}

	if tree.Root.IsLeaf() {
		t.Fatal("tree never split on separable numeric data")
	}
	rule := tree.Root.Rule
	if rule.Categorical {
		t.Fatal("expected a numeric threshold rule")
	}
	if rule.Threshold <= 4 || rule.Threshold > 5 {
		t.Errorf("threshold = %v, want the midpoint 4.5 region", rule.Threshold)
	}

	label, _, err := tree.Classify([]float64{2.0})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if label != 0 {
		t.Errorf("Classify(2.0) = %d, want 0", label)
	}
	label, _, err = tree.Classify([]float64{8.0})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if label != 1 {
		t.Errorf("Classify(8.0) = %d, want 1", label)
	}
}

func TestTree_NumericBinnedSplit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Confidence = 0.9
	cfg.MinSamples = 5
	cfg.NumericStrategy = BinnedHistogram
	cfg.Bins = 4
	cfg.ObservationsBeforeBinning = 20

	tree, err := NewTree(Schema{{Kind: Numeric}}, 2, cfg)
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}

	for i := 0; i < 80; i++ {
		v := float64(i % 8)
		label := 0
		if v >= 4 {
			label = 1
		}
		if err := tree.ObserveExample([]float64{v}, label); err != nil {
			t.Fatalf("ObserveExample failed: %v", err)
		}
	}

	if tree.Root.IsLeaf() {
		t.Fatal("tree never split under the binned strategy")
	}
	if tree.Root.Rule.Categorical {
		t.Fatal("expected a numeric threshold rule")
	}

	label, _, err := tree.Classify([]float64{1.0})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if label != 0 {
		t.Errorf("Classify(1.0) = %d, want 0", label)
	}
	label, _, err = tree.Classify([]float64{7.0})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if label != 1 {
		t.Errorf("Classify(7.0) = %d, want 1", label)
	}
}

func TestTree_SchemaMismatchDoesNotCorrupt(t *testing.T) {
	cfg := DefaultConfig()
	tree, err := NewTree(binaryCategoricalSchema(), 2, cfg)
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}

	if err := tree.ObserveExample([]float64{0, 1}, 0); err == nil {
		t.Error("expected error for wrong dimension count")
	}
	if err := tree.ObserveExample([]float64{5}, 0); err == nil {
		t.Error("expected error for categorical value out of range")
	}
	if err := tree.ObserveExample([]float64{0}, 3); err == nil {
		t.Error("expected error for label out of range")
	}

	// Rejected examples must leave no trace.
	if tree.Root.NumObserved != 0 {
		t.Errorf("rejected examples counted: NumObserved = %d", tree.Root.NumObserved)
	}
}

func TestTree_InvalidConfiguration(t *testing.T) {
	schema := binaryCategoricalSchema()

	bad := []Config{}

	c := DefaultConfig()
	c.Confidence = 1.5
	bad = append(bad, c)

	c = DefaultConfig()
	c.Confidence = 0
	bad = append(bad, c)

	c = DefaultConfig()
	c.MinSamples = 200
	c.MaxSamples = 100
	bad = append(bad, c)

	c = DefaultConfig()
	c.NumericStrategy = BinnedHistogram
	c.Bins = 1
	bad = append(bad, c)

	c = DefaultConfig()
	c.NumericStrategy = BinnedHistogram
	c.ObservationsBeforeBinning = 0
	bad = append(bad, c)

	for i, cfg := range bad {
		if _, err := NewTree(schema, 2, cfg); err == nil {
			t.Errorf("configuration %d: expected eager validation error", i)
		}
	}

	if _, err := NewTree(schema, 1, DefaultConfig()); err == nil {
		t.Error("expected error for a single-class problem")
	}
}

// TestTree_ChildSeeding verifies that committing a split pre-seeds the
// children with the per-branch class counts known from the winning
// candidate instead of discarding them.
func TestTree_ChildSeeding(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Confidence = 0.5
	cfg.MinSamples = 1

	tree, err := NewTree(binaryCategoricalSchema(), 2, cfg)
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}

	X := [][]float64{{0}, {1}, {0}, {1}}
	labels := []int{0, 1, 0, 1}
	if err := tree.Train(X, labels, false); err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if tree.Root.IsLeaf() {
		t.Fatal("root did not split")
	}

	// Every training example must be accounted for in the children.
	seen := 0.0
	for _, child := range tree.Root.Children {
		for _, c := range child.ClassCounts {
			seen += c
		}
		if !child.IsLeaf() {
			t.Error("fresh child is not a leaf")
		}
		if child.Stats == nil {
			t.Error("fresh child has no statistics")
		}
	}
	if seen != 4 {
		t.Errorf("children account for %v examples, want 4", seen)
	}

	// The promoted node released its detailed statistics.
	if tree.Root.Stats != nil {
		t.Error("internal node retained per-feature statistics")
	}
	if math.IsNaN(tree.Root.Rule.Threshold) {
		t.Error("rule threshold is NaN")
	}
}

// TestTree_SeededChildNeedsFreshEvidence trains on a skewed categorical
// stream until maxSamples forces the root split, leaving the majority child
// with a large seeded class distribution. Seed counts must not count as
// split evidence: the child starts at zero observations and a single routed
// example must not let it commit a split.
func TestTree_SeededChildNeedsFreshEvidence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinSamples = 50
	cfg.MaxSamples = 100

	tree, err := NewTree(binaryCategoricalSchema(), 2, cfg)
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}

	// 90% category 0 with mixed labels, 10% category 1 always label 1. The
	// weak gain never clears the bound, so the split lands at maxSamples.
	for i := 0; i < 100; i++ {
		x, label := []float64{0}, i%2
		if i%10 == 9 {
			x, label = []float64{1}, 1
		}
		if err := tree.ObserveExample(x, label); err != nil {
			t.Fatalf("ObserveExample failed: %v", err)
		}
	}

	if tree.Root.IsLeaf() {
		t.Fatal("root did not split at maxSamples")
	}
	majority := tree.Root.Children[0]
	seedTotal := 0.0
	for _, c := range majority.ClassCounts {
		seedTotal += c
	}
	if seedTotal != 90 {
		t.Fatalf("majority child seeded with %v examples, want 90", seedTotal)
	}
	if majority.NumObserved != 0 {
		t.Fatalf("fresh child NumObserved = %d, want 0", majority.NumObserved)
	}

	if err := tree.ObserveExample([]float64{0}, 0); err != nil {
		t.Fatalf("ObserveExample failed: %v", err)
	}
	if majority.NumObserved != 1 {
		t.Errorf("child NumObserved = %d, want 1", majority.NumObserved)
	}
	if !majority.IsLeaf() {
		t.Errorf("seeded child split after a single routed example: rule=%+v", majority.Rule)
	}
}
