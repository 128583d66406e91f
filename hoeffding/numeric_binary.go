package hoeffding

import (
	"sort"
)

// BinaryNumericStats summarizes a continuous dimension as a bounded sorted
// set of distinguishing values, each carrying per-class counts. Memory
// stays sub-linear in the number of observations: once MaxDistinct values
// are tracked, new values merge into their nearest kept neighbor. Fields
// are exported for gob encoding.
type BinaryNumericStats struct {
	Dim         int
	NumClasses  int
	MaxDistinct int
	Values      []float64   // sorted distinguishing values
	Counts      [][]float64 // parallel to Values: value -> class -> count
}

// NewBinaryNumericStats creates binary-threshold statistics for a numeric
// dimension.
func NewBinaryNumericStats(dim, numClasses, maxDistinct int) *BinaryNumericStats {
	return &BinaryNumericStats{
		Dim:         dim,
		NumClasses:  numClasses,
		MaxDistinct: maxDistinct,
	}
}

// Observe records one observation, inserting a new distinguishing value or
// folding the observation into the nearest existing one.
func (s *BinaryNumericStats) Observe(value float64, label int) {
	idx := sort.SearchFloat64s(s.Values, value)
	if idx < len(s.Values) && s.Values[idx] == value {
		s.Counts[idx][label]++
		return
	}

	if len(s.Values) < s.MaxDistinct {
		s.Values = append(s.Values, 0)
		copy(s.Values[idx+1:], s.Values[idx:])
		s.Values[idx] = value

		counts := make([]float64, s.NumClasses)
		counts[label]++
		s.Counts = append(s.Counts, nil)
		copy(s.Counts[idx+1:], s.Counts[idx:])
		s.Counts[idx] = counts
		return
	}

	// At capacity: fold into the nearest kept value, lower index on ties.
	nearest := idx
	if idx == len(s.Values) {
		nearest = idx - 1
	} else if idx > 0 && value-s.Values[idx-1] <= s.Values[idx]-value {
		nearest = idx - 1
	}
	s.Counts[nearest][label]++
}

// CandidateSplits proposes one binary threshold split between every pair of
// consecutive distinguishing values, at their midpoint.
func (s *BinaryNumericStats) CandidateSplits() []SplitCandidate {
	if len(s.Values) < 2 {
		return nil
	}

	total := make([]float64, s.NumClasses)
	for _, counts := range s.Counts {
		for k, c := range counts {
			total[k] += c
		}
	}

	candidates := make([]SplitCandidate, 0, len(s.Values)-1)
	left := make([]float64, s.NumClasses)
	for i := 0; i < len(s.Values)-1; i++ {
		for k, c := range s.Counts[i] {
			left[k] += c
		}

		leftCounts := append([]float64(nil), left...)
		rightCounts := make([]float64, s.NumClasses)
		for k := range rightCounts {
			rightCounts[k] = total[k] - left[k]
		}
		childCounts := [][]float64{leftCounts, rightCounts}

		candidates = append(candidates, SplitCandidate{
			Rule: SplitRule{
				Dimension:   s.Dim,
				Threshold:   (s.Values[i] + s.Values[i+1]) / 2,
				NumBranches: 2,
				Default:     majorityBranch(childCounts),
			},
			ChildCounts: childCounts,
		})
	}
	return candidates
}
