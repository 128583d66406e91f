package hoeffding

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/go-vfdt/vfdt/core/model"
	"github.com/go-vfdt/vfdt/core/parallel"
	"github.com/go-vfdt/vfdt/pkg/errors"
	"github.com/go-vfdt/vfdt/pkg/log"
)

// parallelPredictThreshold is the row count below which batch
// classification stays sequential.
const parallelPredictThreshold = 256

// Classifier is a streaming decision tree classifier over gonum matrices.
//
// Training mutates the tree under a write lock; classification takes a read
// lock only, so any number of concurrent readers are safe as long as no
// training is in flight.
type Classifier struct {
	// Persistent state. Public for gob encoding.
	Tree      *Tree
	State     *model.StateManager
	BatchMode bool
	Passes    int

	mu sync.RWMutex
}

// Option configures a Classifier at construction time.
type Option func(*Config, *Classifier)

// WithConfidence sets the split confidence, in (0, 1).
func WithConfidence(confidence float64) Option {
	return func(cfg *Config, _ *Classifier) { cfg.Confidence = confidence }
}

// WithMinSamples sets the minimum observations at a leaf before a split
// may be committed there.
func WithMinSamples(n int) Option {
	return func(cfg *Config, _ *Classifier) { cfg.MinSamples = n }
}

// WithMaxSamples sets the observation count that forces a split decision.
func WithMaxSamples(n int) Option {
	return func(cfg *Config, _ *Classifier) { cfg.MaxSamples = n }
}

// WithCheckInterval sets how many observations a leaf accumulates between
// split-evaluation attempts.
func WithCheckInterval(n int) Option {
	return func(cfg *Config, _ *Classifier) { cfg.CheckInterval = n }
}

// WithNumericSplitStrategy selects the numeric split strategy.
func WithNumericSplitStrategy(s NumericSplitStrategy) Option {
	return func(cfg *Config, _ *Classifier) { cfg.NumericStrategy = s }
}

// WithGainCriterion selects the gain criterion.
func WithGainCriterion(c GainCriterion) Option {
	return func(cfg *Config, _ *Classifier) { cfg.Criterion = c }
}

// WithBins sets the bin count for the BinnedHistogram strategy.
func WithBins(bins int) Option {
	return func(cfg *Config, _ *Classifier) { cfg.Bins = bins }
}

// WithObservationsBeforeBinning sets how many observations are buffered
// before bin edges are fixed under the BinnedHistogram strategy.
func WithObservationsBeforeBinning(n int) Option {
	return func(cfg *Config, _ *Classifier) { cfg.ObservationsBeforeBinning = n }
}

// WithTieTolerance sets the bound value below which the two best
// candidates are declared tied and split upon.
func WithTieTolerance(tol float64) Option {
	return func(cfg *Config, _ *Classifier) { cfg.TieTolerance = tol }
}

// WithGainRange overrides the gain metric range R used by the Hoeffding
// bound.
func WithGainRange(r float64) Option {
	return func(cfg *Config, _ *Classifier) { cfg.GainRange = r }
}

// WithMaxDistinctValues bounds the distinguishing-value set per numeric
// dimension under the BinaryThreshold strategy.
func WithMaxDistinctValues(n int) Option {
	return func(cfg *Config, _ *Classifier) { cfg.MaxDistinctValues = n }
}

// WithBatchMode trains each Fit pass in batch instead of streaming. Batch
// mode and multi-pass training are mutually exclusive: more than one pass
// forces streaming.
func WithBatchMode(batch bool) Option {
	return func(_ *Config, c *Classifier) { c.BatchMode = batch }
}

// WithPasses sets the number of passes Fit takes over the dataset.
func WithPasses(passes int) Option {
	return func(_ *Config, c *Classifier) { c.Passes = passes }
}

// NewClassifier creates a classifier for the given schema and class count.
// Configuration is validated eagerly: an invalid option surfaces here,
// before any training occurs.
func NewClassifier(schema Schema, numClasses int, opts ...Option) (*Classifier, error) {
	cfg := DefaultConfig()
	clf := &Classifier{
		State:  model.NewStateManager(),
		Passes: 1,
	}
	for _, opt := range opts {
		opt(&cfg, clf)
	}

	if clf.Passes < 1 {
		return nil, errors.NewValidationError("passes", "must be >= 1", clf.Passes)
	}
	if clf.BatchMode && clf.Passes > 1 {
		errors.Warn(errors.Newf("batch mode is incompatible with %d passes; streaming mode forced", clf.Passes))
		clf.BatchMode = false
	}

	tree, err := NewTree(schema, numClasses, cfg)
	if err != nil {
		return nil, err
	}
	clf.Tree = tree
	return clf, nil
}

// Fit builds a fresh tree from the data, replacing any previous model. The
// first ingestion pass builds the model; remaining passes stream over the
// evolved tree.
func (clf *Classifier) Fit(X, y mat.Matrix) error {
	clf.mu.Lock()
	defer clf.mu.Unlock()

	examples, labels, err := clf.toExamples("Fit", X, y)
	if err != nil {
		return err
	}

	start := time.Now()

	// Discard any previously grown tree; Fit always trains from scratch.
	tree, err := NewTree(clf.Tree.Schema, clf.Tree.NumClasses, clf.Tree.Config)
	if err != nil {
		return err
	}
	clf.Tree = tree

	if err := clf.Tree.Train(examples, labels, clf.BatchMode); err != nil {
		return err
	}
	for p := 1; p < clf.Passes; p++ {
		if err := clf.Tree.Train(examples, labels, false); err != nil {
			return err
		}
	}

	clf.State.SetFitted()
	clf.State.SetDimensions(len(clf.Tree.Schema), len(examples))

	slog.Debug("training completed",
		log.ModelNameKey, "HoeffdingTreeClassifier",
		log.OperationKey, "fit",
		log.SamplesKey, len(examples),
		log.FeaturesKey, len(clf.Tree.Schema),
		log.NodesKey, clf.Tree.NumNodes(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// PartialFit updates the model incrementally with a mini-batch of samples,
// streaming each example through the tree in input order. classes, when
// non-nil, must agree with the class count declared at construction.
func (clf *Classifier) PartialFit(X, y mat.Matrix, classes []int) error {
	clf.mu.Lock()
	defer clf.mu.Unlock()

	if classes != nil && len(classes) != clf.Tree.NumClasses {
		return errors.NewDimensionError("PartialFit", clf.Tree.NumClasses, len(classes), 1)
	}

	examples, labels, err := clf.toExamples("PartialFit", X, y)
	if err != nil {
		return err
	}
	if err := clf.Tree.Train(examples, labels, false); err != nil {
		return err
	}

	clf.State.SetFitted()
	_, seen := clf.State.GetDimensions()
	clf.State.SetDimensions(len(clf.Tree.Schema), seen+len(examples))
	return nil
}

// Predict returns the predicted class label for every row of X as an n×1
// matrix. The read path is side-effect free and parallelized across rows.
func (clf *Classifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	clf.mu.RLock()
	defer clf.mu.RUnlock()

	if err := clf.State.RequireFitted("HoeffdingTreeClassifier", "Predict"); err != nil {
		return nil, err
	}

	rows, cols := X.Dims()
	if cols != len(clf.Tree.Schema) {
		return nil, errors.NewDimensionError("Predict", len(clf.Tree.Schema), cols, 1)
	}

	predictions := mat.NewDense(rows, 1, nil)
	var firstErr error
	var errOnce sync.Once

	parallel.ParallelizeWithThreshold(rows, parallelPredictThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			label, _, err := clf.Tree.Classify(mat.Row(nil, i, X))
			if err != nil {
				errOnce.Do(func() { firstErr = err })
				return
			}
			predictions.Set(i, 0, float64(label))
		}
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return predictions, nil
}

// PredictProba returns per-class probability estimates for every row of X
// as an n×K matrix of normalized leaf class distributions.
func (clf *Classifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	clf.mu.RLock()
	defer clf.mu.RUnlock()

	if err := clf.State.RequireFitted("HoeffdingTreeClassifier", "PredictProba"); err != nil {
		return nil, err
	}

	rows, cols := X.Dims()
	if cols != len(clf.Tree.Schema) {
		return nil, errors.NewDimensionError("PredictProba", len(clf.Tree.Schema), cols, 1)
	}

	probas := mat.NewDense(rows, clf.Tree.NumClasses, nil)
	var firstErr error
	var errOnce sync.Once

	parallel.ParallelizeWithThreshold(rows, parallelPredictThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			_, probs, err := clf.Tree.Classify(mat.Row(nil, i, X))
			if err != nil {
				errOnce.Do(func() { firstErr = err })
				return
			}
			probas.SetRow(i, probs)
		}
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return probas, nil
}

// Score returns the accuracy of Predict(X) against y.
func (clf *Classifier) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := clf.Predict(X)
	if err != nil {
		return 0, err
	}

	rows, _ := y.Dims()
	pRows, _ := predictions.Dims()
	if rows != pRows {
		return 0, errors.NewDimensionError("Score", pRows, rows, 0)
	}

	correct := 0
	for i := 0; i < rows; i++ {
		if predictions.At(i, 0) == y.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(rows), nil
}

// Classes returns the class labels known to the model.
func (clf *Classifier) Classes() []int {
	classes := make([]int, clf.Tree.NumClasses)
	for k := range classes {
		classes[k] = k
	}
	return classes
}

// NumNodes returns the total number of nodes in the grown tree.
func (clf *Classifier) NumNodes() int {
	clf.mu.RLock()
	defer clf.mu.RUnlock()
	return clf.Tree.NumNodes()
}

// Save persists the model to a file. The serialized form captures the full
// tree and configuration, sufficient to resume training or classify
// without re-training.
func (clf *Classifier) Save(path string) error {
	clf.mu.RLock()
	defer clf.mu.RUnlock()
	if err := model.SaveModel(clf, path); err != nil {
		return errors.NewModelError("Save", "serialization failed", err)
	}
	return nil
}

// Load restores a model previously written by Save, replacing the
// receiver's tree, state, and training settings wholesale. Decoding goes
// through a fresh zero value: gob omits zero-valued fields, so decoding
// into a configured classifier would keep the receiver's settings wherever
// the saved value happens to be a zero value.
func (clf *Classifier) Load(path string) error {
	clf.mu.Lock()
	defer clf.mu.Unlock()

	var loaded Classifier
	if err := model.LoadModel(&loaded, path); err != nil {
		return errors.NewModelError("Load", "deserialization failed", err)
	}

	clf.Tree = loaded.Tree
	clf.State = loaded.State
	clf.BatchMode = loaded.BatchMode
	clf.Passes = loaded.Passes
	return nil
}

// FitStream trains the model from a data stream until the context is
// canceled or the channel is closed.
func (clf *Classifier) FitStream(ctx context.Context, dataChan <-chan *model.Batch) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case batch, ok := <-dataChan:
			if !ok {
				return nil
			}
			if err := clf.PartialFit(batch.X, batch.Y, nil); err != nil {
				return err
			}
		}
	}
}

// PredictStream performs predictions on an input stream. The output channel
// is closed when the input channel is closed.
func (clf *Classifier) PredictStream(ctx context.Context, inputChan <-chan mat.Matrix) <-chan mat.Matrix {
	outputChan := make(chan mat.Matrix)

	go func() {
		defer close(outputChan)

		for {
			select {
			case <-ctx.Done():
				return
			case X, ok := <-inputChan:
				if !ok {
					return
				}

				pred, err := clf.Predict(X)
				if err != nil {
					slog.Warn("prediction on stream input failed", log.ErrAttr(err))
					continue
				}

				select {
				case outputChan <- pred:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return outputChan
}

// toExamples converts matrix inputs into row slices and integer labels,
// validating shapes. y must be an n×1 matrix of class indices.
func (clf *Classifier) toExamples(op string, X, y mat.Matrix) ([][]float64, []int, error) {
	rows, cols := X.Dims()
	if rows == 0 {
		return nil, nil, errors.WithStack(errors.ErrEmptyData)
	}
	if cols != len(clf.Tree.Schema) {
		return nil, nil, errors.NewDimensionError(op, len(clf.Tree.Schema), cols, 1)
	}
	yRows, yCols := y.Dims()
	if yRows != rows {
		return nil, nil, errors.NewDimensionError(op, rows, yRows, 0)
	}
	if yCols != 1 {
		return nil, nil, errors.NewValueError(op, "y must be a column vector (n×1 matrix)")
	}

	examples := make([][]float64, rows)
	labels := make([]int, rows)
	for i := 0; i < rows; i++ {
		examples[i] = mat.Row(nil, i, X)
		labels[i] = int(y.At(i, 0))
	}
	return examples, labels, nil
}
