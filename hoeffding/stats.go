package hoeffding

import (
	"strings"

	"github.com/go-vfdt/vfdt/pkg/errors"
)

// NumericSplitStrategy selects how continuous dimensions are summarized and
// split. The set is closed: only the two strategies below are in scope.
type NumericSplitStrategy int

const (
	// BinaryThreshold maintains a bounded set of distinguishing values per
	// dimension and proposes binary threshold splits between them.
	BinaryThreshold NumericSplitStrategy = iota
	// BinnedHistogram (the "domingos" strategy) buffers raw values until a
	// configured observation count, then fixes equal-width bin edges and
	// proposes threshold splits at the bin boundaries.
	BinnedHistogram
)

// String returns the strategy name.
func (s NumericSplitStrategy) String() string {
	switch s {
	case BinaryThreshold:
		return "binary"
	case BinnedHistogram:
		return "domingos"
	default:
		return "unknown"
	}
}

// ParseNumericSplitStrategy parses a strategy name.
func ParseNumericSplitStrategy(name string) (NumericSplitStrategy, error) {
	switch strings.ToLower(name) {
	case "binary", "binarythreshold":
		return BinaryThreshold, nil
	case "domingos", "binnedhistogram":
		return BinnedHistogram, nil
	default:
		return 0, errors.NewValidationError("numericSplitStrategy", "must be 'binary' or 'domingos'", name)
	}
}

// GainCriterion selects the impurity measure used to rank candidate splits.
type GainCriterion int

const (
	// GiniGain ranks splits by Gini impurity reduction.
	GiniGain GainCriterion = iota
	// InformationGain ranks splits by entropy reduction.
	InformationGain
)

// String returns the criterion name.
func (c GainCriterion) String() string {
	switch c {
	case GiniGain:
		return "gini"
	case InformationGain:
		return "information_gain"
	default:
		return "unknown"
	}
}

// ParseGainCriterion parses a criterion name.
func ParseGainCriterion(name string) (GainCriterion, error) {
	switch strings.ToLower(name) {
	case "gini", "giniimpurity":
		return GiniGain, nil
	case "information_gain", "informationgain", "info_gain":
		return InformationGain, nil
	default:
		return 0, errors.NewValidationError("gainCriterion", "must be 'gini' or 'information_gain'", name)
	}
}

// SplitRule is a committed, deterministic mapping from a feature value to a
// branch index. Once committed at an internal node it is never changed.
type SplitRule struct {
	Dimension   int
	Categorical bool
	Threshold   float64 // numeric rules: branch 0 if value < Threshold
	NumBranches int
	Default     int // majority branch at commit time, used for uncovered categories
}

// Route maps a feature value to a branch index. unseen reports that a
// categorical value had no branch of its own and the default branch was
// taken instead.
func (r *SplitRule) Route(value float64) (branch int, unseen bool) {
	if r.Categorical {
		b := int(value)
		if b < 0 || b >= r.NumBranches {
			return r.Default, true
		}
		return b, false
	}
	if value < r.Threshold {
		return 0, false
	}
	return 1, false
}

// SplitCandidate is one candidate split over a single dimension, together
// with the per-branch per-class count table implied by the statistics
// accumulated so far.
type SplitCandidate struct {
	Rule        SplitRule
	ChildCounts [][]float64 // branch -> class -> count
}

// FeatureStats accumulates per-dimension sufficient statistics at a leaf
// and proposes candidate splits from them. Implementations use constant or
// near-constant additional memory per Observe call.
type FeatureStats interface {
	// Observe records one (value, label) observation.
	Observe(value float64, label int)

	// CandidateSplits returns the finite set of candidate splits currently
	// supported by the accumulated statistics, in a deterministic order. It
	// may return nothing (e.g. before binning has been performed).
	CandidateSplits() []SplitCandidate
}

// majorityBranch returns the branch with the largest total count, lowest
// index on ties.
func majorityBranch(childCounts [][]float64) int {
	best, bestTotal := 0, -1.0
	for b, counts := range childCounts {
		total := 0.0
		for _, c := range counts {
			total += c
		}
		if total > bestTotal {
			best, bestTotal = b, total
		}
	}
	return best
}
