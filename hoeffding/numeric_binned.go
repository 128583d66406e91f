package hoeffding

// BinnedNumericStats implements the "domingos" strategy for a continuous
// dimension: raw observations are buffered until ObservationsBeforeBinning
// is reached, then equal-width bin edges are fixed over the observed range
// and never adjusted. Until binning happens no candidate splits are
// offered. Fields are exported for gob encoding.
type BinnedNumericStats struct {
	Dim                       int
	NumClasses                int
	Bins                      int
	ObservationsBeforeBinning int

	// Pre-binning buffer.
	BufferValues []float64
	BufferLabels []int

	// Post-binning state. Edges holds the Bins-1 interior boundaries.
	Edges  []float64
	Counts [][]float64 // bin -> class -> count
}

// NewBinnedNumericStats creates binned-histogram statistics for a numeric
// dimension.
func NewBinnedNumericStats(dim, numClasses, bins, observationsBeforeBinning int) *BinnedNumericStats {
	return &BinnedNumericStats{
		Dim:                       dim,
		NumClasses:                numClasses,
		Bins:                      bins,
		ObservationsBeforeBinning: observationsBeforeBinning,
	}
}

// Observe records one observation, buffering it before binning and counting
// it into its bin afterwards.
func (s *BinnedNumericStats) Observe(value float64, label int) {
	if s.Edges == nil {
		s.BufferValues = append(s.BufferValues, value)
		s.BufferLabels = append(s.BufferLabels, label)
		if len(s.BufferValues) >= s.ObservationsBeforeBinning {
			s.fixBins()
		}
		return
	}
	s.Counts[s.binIndex(value)][label]++
}

// fixBins computes equal-width bin edges from the buffered sample, counts
// the buffer into the bins, and releases it.
func (s *BinnedNumericStats) fixBins() {
	lo, hi := s.BufferValues[0], s.BufferValues[0]
	for _, v := range s.BufferValues[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	width := (hi - lo) / float64(s.Bins)
	if width <= 0 {
		// Degenerate sample: every buffered value identical. All mass
		// lands in bin 0 and every edge sits above the observed value.
		width = 1
	}

	s.Edges = make([]float64, s.Bins-1)
	for i := range s.Edges {
		s.Edges[i] = lo + width*float64(i+1)
	}

	s.Counts = make([][]float64, s.Bins)
	for b := range s.Counts {
		s.Counts[b] = make([]float64, s.NumClasses)
	}
	for i, v := range s.BufferValues {
		s.Counts[s.binIndex(v)][s.BufferLabels[i]]++
	}
	s.BufferValues = nil
	s.BufferLabels = nil
}

// binIndex maps a value to its bin. Values beyond the fixed range clamp to
// the outermost bins.
func (s *BinnedNumericStats) binIndex(value float64) int {
	for i, edge := range s.Edges {
		if value < edge {
			return i
		}
	}
	return s.Bins - 1
}

// CandidateSplits proposes one binary threshold split per interior bin
// boundary. No candidates exist before binning has been performed.
func (s *BinnedNumericStats) CandidateSplits() []SplitCandidate {
	if s.Edges == nil {
		return nil
	}

	total := make([]float64, s.NumClasses)
	for _, counts := range s.Counts {
		for k, c := range counts {
			total[k] += c
		}
	}

	candidates := make([]SplitCandidate, 0, len(s.Edges))
	left := make([]float64, s.NumClasses)
	for i, edge := range s.Edges {
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
				Threshold:   edge,
				NumBranches: 2,
				Default:     majorityBranch(childCounts),
			},
			ChildCounts: childCounts,
		})
	}
	return candidates
}
