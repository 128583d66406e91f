package hoeffding

import (
	"math"
)

// hoeffdingBound computes ε = sqrt(R²·ln(1/(1-confidence)) / (2n)): with
// probability `confidence`, the true gain gap deviates from the observed
// one by less than ε after n observations, where R is the gain metric's
// range.
func hoeffdingBound(r, confidence float64, n int) float64 {
	return math.Sqrt(r * r * math.Log(1/(1-confidence)) / (2 * float64(n)))
}

// splitDecision is the outcome of a Hoeffding bound check at a leaf.
type splitDecision int

const (
	decideDefer splitDecision = iota
	decideSplit
)

// decideSplitNow applies the concentration-inequality test to the gap
// between the best and second-best gains. A split is never committed
// before minSamples observations; a decision is forced once n reaches
// maxSamples or ε falls below the tie tolerance. In every case the best
// candidate must have beaten the synthetic "no split" option (ev.Best
// non-nil) for a split to be committed.
func decideSplitNow(ev evaluation, eps float64, n, minSamples, maxSamples int, tieTolerance float64) splitDecision {
	if n < minSamples || ev.Best == nil {
		return decideDefer
	}
	if ev.BestGain-ev.SecondGain > eps {
		return decideSplit
	}
	if n >= maxSamples {
		return decideSplit
	}
	if eps < tieTolerance {
		// The two best candidates are statistically indistinguishable;
		// waiting longer cannot separate them, so split on the first.
		return decideSplit
	}
	return decideDefer
}
