package hoeffding

// CategoricalStats accumulates per-category class counts for one
// categorical dimension. Fields are exported for gob encoding.
type CategoricalStats struct {
	Dim    int
	Counts [][]float64 // category -> class -> count
}

// NewCategoricalStats creates statistics for a categorical dimension with
// the given arity.
func NewCategoricalStats(dim, arity, numClasses int) *CategoricalStats {
	counts := make([][]float64, arity)
	for c := range counts {
		counts[c] = make([]float64, numClasses)
	}
	return &CategoricalStats{Dim: dim, Counts: counts}
}

// Observe records one observation. The value has been validated against the
// schema by the caller.
func (s *CategoricalStats) Observe(value float64, label int) {
	s.Counts[int(value)][label]++
}

// CandidateSplits proposes the single multiway split over all categories of
// the dimension.
func (s *CategoricalStats) CandidateSplits() []SplitCandidate {
	childCounts := make([][]float64, len(s.Counts))
	for c := range s.Counts {
		childCounts[c] = append([]float64(nil), s.Counts[c]...)
	}
	return []SplitCandidate{{
		Rule: SplitRule{
			Dimension:   s.Dim,
			Categorical: true,
			NumBranches: len(s.Counts),
			Default:     majorityBranch(childCounts),
		},
		ChildCounts: childCounts,
	}}
}
