package hoeffding

import (
	"github.com/go-vfdt/vfdt/pkg/errors"
)

const (
	DefaultConfidence                = 0.95
	DefaultMaxSamples                = 5000
	DefaultMinSamples                = 100
	DefaultCheckInterval             = 1
	DefaultBins                      = 10
	DefaultObservationsBeforeBinning = 100
	DefaultTieTolerance              = 0.05
	DefaultMaxDistinctValues         = 100
)

// Config carries every parameter governing tree growth. There is no global
// state: the configuration lives inside the model value and is threaded
// through every call. Fields are exported for gob encoding.
type Config struct {
	// Confidence is the probability, in (0,1), that the chosen split is
	// truly the best one when the Hoeffding bound approves it.
	Confidence float64

	// MinSamples is the number of examples a leaf must observe before any
	// split is committed there. MaxSamples forces a decision once reached.
	MinSamples int
	MaxSamples int

	// CheckInterval is how many observations a leaf accumulates between
	// split-evaluation attempts.
	CheckInterval int

	NumericStrategy NumericSplitStrategy
	Criterion       GainCriterion

	// Bins and ObservationsBeforeBinning apply to the BinnedHistogram
	// strategy only.
	Bins                      int
	ObservationsBeforeBinning int

	// TieTolerance commits a split once the bound ε shrinks below it, on
	// the grounds that the two best candidates are then effectively tied.
	TieTolerance float64

	// GainRange overrides the metric range R used in the bound; 0 selects
	// the criterion default (1 for Gini, log2(K) for information gain).
	GainRange float64

	// MaxDistinctValues bounds the distinguishing-value set kept per
	// numeric dimension under the BinaryThreshold strategy.
	MaxDistinctValues int
}

// DefaultConfig returns the default growth configuration.
func DefaultConfig() Config {
	return Config{
		Confidence:                DefaultConfidence,
		MinSamples:                DefaultMinSamples,
		MaxSamples:                DefaultMaxSamples,
		CheckInterval:             DefaultCheckInterval,
		NumericStrategy:           BinaryThreshold,
		Criterion:                 GiniGain,
		Bins:                      DefaultBins,
		ObservationsBeforeBinning: DefaultObservationsBeforeBinning,
		TieTolerance:              DefaultTieTolerance,
		MaxDistinctValues:         DefaultMaxDistinctValues,
	}
}

// Validate checks the configuration eagerly, before any training occurs.
func (c *Config) Validate() error {
	if c.Confidence <= 0 || c.Confidence >= 1 {
		return errors.NewValidationError("confidence", "must be in (0, 1)", c.Confidence)
	}
	if c.MinSamples < 1 {
		return errors.NewValidationError("minSamples", "must be >= 1", c.MinSamples)
	}
	if c.MaxSamples < c.MinSamples {
		return errors.NewValidationError("maxSamples", "must be >= minSamples", c.MaxSamples)
	}
	if c.CheckInterval < 1 {
		return errors.NewValidationError("checkInterval", "must be >= 1", c.CheckInterval)
	}
	switch c.NumericStrategy {
	case BinaryThreshold, BinnedHistogram:
	default:
		return errors.NewValidationError("numericSplitStrategy", "unknown strategy", c.NumericStrategy)
	}
	switch c.Criterion {
	case GiniGain, InformationGain:
	default:
		return errors.NewValidationError("gainCriterion", "unknown criterion", c.Criterion)
	}
	if c.NumericStrategy == BinnedHistogram {
		if c.Bins < 2 {
			return errors.NewValidationError("bins", "must be >= 2", c.Bins)
		}
		if c.ObservationsBeforeBinning < 1 {
			return errors.NewValidationError("observationsBeforeBinning", "must be >= 1", c.ObservationsBeforeBinning)
		}
	}
	if c.TieTolerance < 0 {
		return errors.NewValidationError("tieTolerance", "must be >= 0", c.TieTolerance)
	}
	if c.GainRange < 0 {
		return errors.NewValidationError("gainRange", "must be >= 0", c.GainRange)
	}
	if c.MaxDistinctValues < 2 {
		return errors.NewValidationError("maxDistinctValues", "must be >= 2", c.MaxDistinctValues)
	}
	return nil
}

// Tree is the growing Hoeffding tree: schema, configuration, and the root
// of the owned node hierarchy. All mutation happens on one logical thread
// of control; classification is read-only. Fields are exported for gob
// encoding.
type Tree struct {
	Schema     Schema
	NumClasses int
	Config     Config
	Root       *Node
}

// NewTree creates an empty tree for the given schema after validating the
// configuration.
func NewTree(schema Schema, numClasses int, cfg Config) (*Tree, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	if numClasses < 2 {
		return nil, errors.NewValidationError("numClasses", "must be >= 2", numClasses)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Tree{
		Schema:     schema,
		NumClasses: numClasses,
		Config:     cfg,
		Root:       newLeaf(schema, numClasses, &cfg),
	}, nil
}

// ObserveExample processes one labeled example in streaming fashion: the
// example descends to a leaf, updates its statistics, and the leaf is given
// a chance to split. Each call is atomic with respect to tree state, so a
// caller may abandon a pass between examples without corruption.
func (t *Tree) ObserveExample(x []float64, label int) error {
	if err := t.checkTrainingExample(x, label); err != nil {
		return err
	}
	leaf := t.Root.descend(x)
	leaf.observe(x, label)
	if leaf.sinceCheck >= t.Config.CheckInterval {
		leaf.maybeSplit(t.Schema, t.NumClasses, &t.Config)
	}
	return nil
}

// Train performs one pass over the examples. In streaming mode every
// example may immediately trigger a split at its leaf. In batch mode all
// statistics accumulate at the current frontier of leaves first and split
// decisions are made once, at the end of the pass, which generally yields
// better splits at the cost of holding more statistics in memory.
func (t *Tree) Train(X [][]float64, labels []int, batch bool) error {
	if len(X) == 0 {
		return errors.WithStack(errors.ErrEmptyData)
	}
	if len(X) != len(labels) {
		return errors.NewDimensionError("Train", len(X), len(labels), 0)
	}

	if !batch {
		for i, x := range X {
			if err := t.ObserveExample(x, labels[i]); err != nil {
				return err
			}
		}
		return nil
	}

	for i, x := range X {
		if err := t.checkTrainingExample(x, labels[i]); err != nil {
			return err
		}
		leaf := t.Root.descend(x)
		leaf.observe(x, labels[i])
	}
	t.Root.eachLeaf(func(leaf *Node) {
		leaf.maybeSplit(t.Schema, t.NumClasses, &t.Config)
	})
	return nil
}

// Classify routes an example to a leaf and returns the arg-max label and
// the leaf's normalized class distribution. It is a pure read path: no
// statistics are mutated, and identical inputs always produce identical
// outputs.
func (t *Tree) Classify(x []float64) (int, []float64, error) {
	if err := t.Schema.CheckExample("Classify", x); err != nil {
		return 0, nil, err
	}
	leaf := t.Root.descend(x)

	total := 0.0
	for _, c := range leaf.ClassCounts {
		total += c
	}
	probs := make([]float64, t.NumClasses)
	label := 0
	for k, c := range leaf.ClassCounts {
		probs[k] = errors.SafeDivide(c, total)
		if probs[k] > probs[label] {
			label = k
		}
	}
	return label, probs, nil
}

// NumNodes returns the total number of nodes in the tree.
func (t *Tree) NumNodes() int {
	return t.Root.numNodes()
}

func (t *Tree) checkTrainingExample(x []float64, label int) error {
	if err := t.Schema.CheckExample("Train", x); err != nil {
		return err
	}
	if label < 0 || label >= t.NumClasses {
		return errors.NewValueError("Train", "label out of range")
	}
	return nil
}
