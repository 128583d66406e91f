package hoeffding

import (
	"encoding/gob"
)

// The tree is persisted with encoding/gob. Node statistics are held behind
// the FeatureStats interface, so every concrete implementation must be
// registered before encoding or decoding a model.
func init() {
	gob.Register(&CategoricalStats{})
	gob.Register(&BinaryNumericStats{})
	gob.Register(&BinnedNumericStats{})
}
