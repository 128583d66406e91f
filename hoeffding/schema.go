// Package hoeffding implements a streaming decision tree (Hoeffding tree)
// classifier. The tree grows incrementally from labeled examples, using a
// Hoeffding concentration bound to decide when enough evidence has
// accumulated at a leaf to commit to a split, without re-reading past
// examples.
package hoeffding

import (
	"math"

	"github.com/go-vfdt/vfdt/pkg/errors"
)

// FeatureKind distinguishes numeric from categorical dimensions.
type FeatureKind int

const (
	// Numeric marks a continuous-valued dimension.
	Numeric FeatureKind = iota
	// Categorical marks a dimension whose values are category indices in
	// [0, Arity).
	Categorical
)

// Dimension describes one input dimension of the dataset schema.
type Dimension struct {
	Kind  FeatureKind
	Arity int // number of categories; 0 for numeric dimensions
}

// Schema is the ordered sequence of input dimensions established at
// training time. The model trusts the schema for its whole lifetime: every
// training and test example must match it.
type Schema []Dimension

// NumericSchema returns a schema of n numeric dimensions.
func NumericSchema(n int) Schema {
	s := make(Schema, n)
	return s
}

// Validate checks the schema for structural validity.
func (s Schema) Validate() error {
	if len(s) == 0 {
		return errors.NewValidationError("schema", "must have at least one dimension", len(s))
	}
	for d, dim := range s {
		switch dim.Kind {
		case Numeric:
			if dim.Arity != 0 {
				return errors.NewValidationError("schema", "numeric dimension must have arity 0", d)
			}
		case Categorical:
			if dim.Arity < 1 {
				return errors.NewValidationError("schema", "categorical dimension must have arity >= 1", d)
			}
		default:
			return errors.NewValidationError("schema", "unknown dimension kind", dim.Kind)
		}
	}
	return nil
}

// CheckExample validates a single example against the schema. Categorical
// values must be non-negative integers below the declared arity.
func (s Schema) CheckExample(op string, x []float64) error {
	if len(x) != len(s) {
		return errors.NewDimensionError(op, len(s), len(x), 1)
	}
	for d, dim := range s {
		if dim.Kind != Categorical {
			continue
		}
		v := x[d]
		if v != math.Trunc(v) || v < 0 || int(v) >= dim.Arity {
			return errors.NewValueError(op,
				"categorical value out of declared range")
		}
	}
	return nil
}
