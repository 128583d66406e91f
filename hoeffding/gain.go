package hoeffding

import (
	"math"
)

// giniImpurity computes the Gini impurity 1 - Σ pₖ² of a class-count
// vector. An empty vector has impurity 0.
func giniImpurity(counts []float64) float64 {
	total := 0.0
	for _, c := range counts {
		total += c
	}
	if total <= 0 {
		return 0
	}
	sumSq := 0.0
	for _, c := range counts {
		p := c / total
		sumSq += p * p
	}
	return 1 - sumSq
}

// entropy computes the Shannon entropy -Σ pₖ·log2(pₖ) of a class-count
// vector, in bits. An empty vector has entropy 0.
func entropy(counts []float64) float64 {
	total := 0.0
	for _, c := range counts {
		total += c
	}
	if total <= 0 {
		return 0
	}
	h := 0.0
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		p := c / total
		h -= p * math.Log2(p)
	}
	return h
}

// impurity dispatches to the configured criterion's measure.
func impurity(criterion GainCriterion, counts []float64) float64 {
	if criterion == InformationGain {
		return entropy(counts)
	}
	return giniImpurity(counts)
}

// splitGain computes impurity(parent) - Σ wᵢ·impurity(childᵢ) where the
// weights are the child example fractions.
func splitGain(criterion GainCriterion, parent []float64, children [][]float64) float64 {
	parentTotal := 0.0
	for _, c := range parent {
		parentTotal += c
	}
	if parentTotal <= 0 {
		return 0
	}

	weighted := 0.0
	for _, child := range children {
		childTotal := 0.0
		for _, c := range child {
			childTotal += c
		}
		if childTotal <= 0 {
			continue
		}
		weighted += (childTotal / parentTotal) * impurity(criterion, child)
	}
	return impurity(criterion, parent) - weighted
}

// gainRange returns the known range R of the gain metric: log2(K) for
// information gain and 1 for Gini-derived gain. The Gini range is a
// conventional default, not a proven optimum; Config.GainRange overrides it.
func gainRange(criterion GainCriterion, numClasses int) float64 {
	if criterion == InformationGain {
		return math.Log2(float64(numClasses))
	}
	return 1
}

// evaluation is the outcome of ranking every candidate split at a leaf. A
// nil Best means the synthetic "no split" candidate (gain 0) won.
type evaluation struct {
	BestGain   float64
	Best       *SplitCandidate
	SecondGain float64
}

// candidateParent sums a candidate's child counts back into the class
// distribution the candidate's statistics actually observed. Gain must be
// measured against this distribution, not the leaf's ClassCounts, which may
// include seed counts the statistics never saw.
func candidateParent(childCounts [][]float64) []float64 {
	if len(childCounts) == 0 {
		return nil
	}
	parent := make([]float64, len(childCounts[0]))
	for _, child := range childCounts {
		for k, c := range child {
			parent[k] += c
		}
	}
	return parent
}

// evaluateSplits ranks all candidate splits across all dimensions of a
// leaf, including the synthetic "no split" candidate with gain 0. Ties are
// broken toward lower dimension index then lower candidate ordinal, which
// the iteration order provides: an incumbent is only displaced by a
// strictly greater gain.
func evaluateSplits(criterion GainCriterion, stats []FeatureStats) evaluation {
	ev := evaluation{BestGain: 0, Best: nil, SecondGain: math.Inf(-1)}

	for _, fs := range stats {
		for _, cand := range fs.CandidateSplits() {
			cand := cand
			gain := splitGain(criterion, candidateParent(cand.ChildCounts), cand.ChildCounts)
			if gain > ev.BestGain {
				ev.SecondGain = ev.BestGain
				ev.BestGain = gain
				ev.Best = &cand
			} else if gain > ev.SecondGain {
				ev.SecondGain = gain
			}
		}
	}

	// With no real candidates the "no split" option stands alone.
	if math.IsInf(ev.SecondGain, -1) {
		ev.SecondGain = 0
	}
	return ev
}
