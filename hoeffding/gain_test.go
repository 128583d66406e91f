package hoeffding

import (
	"math"
	"testing"
)

func TestGiniImpurity(t *testing.T) {
	tests := []struct {
		name   string
		counts []float64
		want   float64
	}{
		{"pure", []float64{10, 0}, 0},
		{"balanced binary", []float64{5, 5}, 0.5},
		{"empty", []float64{0, 0}, 0},
		{"three classes balanced", []float64{2, 2, 2}, 2.0 / 3.0},
	}
	for _, tt := range tests {
		got := giniImpurity(tt.counts)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s: giniImpurity(%v) = %v, want %v", tt.name, tt.counts, got, tt.want)
		}
	}
}

func TestEntropy(t *testing.T) {
	tests := []struct {
		name   string
		counts []float64
		want   float64
	}{
		{"pure", []float64{10, 0}, 0},
		{"balanced binary", []float64{5, 5}, 1},
		{"empty", []float64{0, 0}, 0},
		{"balanced quaternary", []float64{1, 1, 1, 1}, 2},
	}
	for _, tt := range tests {
		got := entropy(tt.counts)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s: entropy(%v) = %v, want %v", tt.name, tt.counts, got, tt.want)
		}
	}
}

func TestSplitGain_PerfectSplit(t *testing.T) {
	parent := []float64{4, 4}
	children := [][]float64{{4, 0}, {0, 4}}

	if got := splitGain(GiniGain, parent, children); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Gini gain of perfect split = %v, want 0.5", got)
	}
	if got := splitGain(InformationGain, parent, children); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("information gain of perfect split = %v, want 1.0", got)
	}
}

func TestSplitGain_UselessSplit(t *testing.T) {
	parent := []float64{4, 4}
	children := [][]float64{{2, 2}, {2, 2}}

	if got := splitGain(GiniGain, parent, children); math.Abs(got) > 1e-12 {
		t.Errorf("Gini gain of useless split = %v, want 0", got)
	}
}

func TestGainRange(t *testing.T) {
	if got := gainRange(GiniGain, 5); got != 1 {
		t.Errorf("gainRange(gini) = %v, want 1", got)
	}
	if got := gainRange(InformationGain, 4); math.Abs(got-2) > 1e-12 {
		t.Errorf("gainRange(information_gain, 4 classes) = %v, want 2", got)
	}
}

func TestEvaluateSplits_NoSplitWinsOnPureLeaf(t *testing.T) {
	stats := NewCategoricalStats(0, 2, 2)
	stats.Observe(0, 0)
	stats.Observe(1, 0)

	ev := evaluateSplits(GiniGain, []FeatureStats{stats})
	if ev.Best != nil {
		t.Errorf("expected the synthetic no-split candidate to win on a pure leaf, got rule %+v", ev.Best.Rule)
	}
	if ev.BestGain != 0 {
		t.Errorf("BestGain = %v, want 0", ev.BestGain)
	}
}

func TestEvaluateSplits_TieBrokenByLowestDimension(t *testing.T) {
	// Two categorical dimensions carrying identical information: the
	// candidate from the lower dimension index must win the tie.
	a := NewCategoricalStats(0, 2, 2)
	b := NewCategoricalStats(1, 2, 2)
	for i := 0; i < 4; i++ {
		label := i % 2
		a.Observe(float64(label), label)
		b.Observe(float64(label), label)
	}

	ev := evaluateSplits(GiniGain, []FeatureStats{a, b})
	if ev.Best == nil {
		t.Fatal("expected a winning candidate")
	}
	if ev.Best.Rule.Dimension != 0 {
		t.Errorf("tie broken toward dimension %d, want 0", ev.Best.Rule.Dimension)
	}
	if math.Abs(ev.BestGain-ev.SecondGain) > 1e-12 {
		t.Errorf("expected identical best and second gains, got %v and %v", ev.BestGain, ev.SecondGain)
	}
}
