// Package dataset loads delimited training data and infers the schema the
// tree learner needs: which dimensions are numeric, which are categorical,
// and the category-string to index mappings established at training time.
package dataset

import (
	"encoding/csv"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/go-vfdt/vfdt/hoeffding"
	"github.com/go-vfdt/vfdt/pkg/errors"
)

// Dataset is a loaded, schema-tagged dataset. Feature columns are encoded
// into a dense matrix: numeric columns verbatim, categorical columns as
// category indices in first-seen order. The last CSV column is the class
// label.
type Dataset struct {
	Schema hoeffding.Schema
	X      *mat.Dense
	Labels []int

	// Mappings holds, per categorical dimension, the raw-string to
	// category-index mapping; nil entries mark numeric dimensions.
	Mappings []map[string]int

	// ClassNames holds class labels in index order; ClassIndex is the
	// reverse mapping.
	ClassNames []string
	ClassIndex map[string]int
}

// LoadCSV reads a CSV stream and infers its schema. A column is numeric if
// every value parses as a float; otherwise it is categorical. The model
// trusts the inferred schema and mappings for its whole lifetime.
func LoadCSV(r io.Reader, hasHeader bool) (*Dataset, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV")
	}
	if hasHeader && len(records) > 0 {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}

	cols := len(records[0])
	if cols < 2 {
		return nil, errors.NewValueError("LoadCSV", "need at least one feature column and a label column")
	}
	for _, rec := range records {
		if len(rec) != cols {
			return nil, errors.NewDimensionError("LoadCSV", cols, len(rec), 1)
		}
	}

	dims := cols - 1
	numeric := make([]bool, dims)
	for d := 0; d < dims; d++ {
		numeric[d] = true
		for _, rec := range records {
			if _, err := strconv.ParseFloat(rec[d], 64); err != nil {
				numeric[d] = false
				break
			}
		}
	}

	ds := &Dataset{
		Schema:     make(hoeffding.Schema, dims),
		Labels:     make([]int, len(records)),
		Mappings:   make([]map[string]int, dims),
		ClassIndex: make(map[string]int),
	}
	for d := 0; d < dims; d++ {
		if !numeric[d] {
			ds.Mappings[d] = make(map[string]int)
		}
	}

	data := make([]float64, 0, len(records)*dims)
	for i, rec := range records {
		for d := 0; d < dims; d++ {
			if numeric[d] {
				v, _ := strconv.ParseFloat(rec[d], 64)
				data = append(data, v)
				continue
			}
			idx, ok := ds.Mappings[d][rec[d]]
			if !ok {
				idx = len(ds.Mappings[d])
				ds.Mappings[d][rec[d]] = idx
			}
			data = append(data, float64(idx))
		}

		labelStr := rec[cols-1]
		label, ok := ds.ClassIndex[labelStr]
		if !ok {
			label = len(ds.ClassNames)
			ds.ClassIndex[labelStr] = label
			ds.ClassNames = append(ds.ClassNames, labelStr)
		}
		ds.Labels[i] = label
	}

	for d := 0; d < dims; d++ {
		if numeric[d] {
			ds.Schema[d] = hoeffding.Dimension{Kind: hoeffding.Numeric}
		} else {
			ds.Schema[d] = hoeffding.Dimension{Kind: hoeffding.Categorical, Arity: len(ds.Mappings[d])}
		}
	}

	ds.X = mat.NewDense(len(records), dims, data)
	return ds, nil
}

// NumClasses returns the number of distinct class labels seen.
func (d *Dataset) NumClasses() int {
	return len(d.ClassNames)
}

// Y returns the labels as an n×1 matrix suitable for the classifier API.
func (d *Dataset) Y() *mat.Dense {
	y := mat.NewDense(len(d.Labels), 1, nil)
	for i, label := range d.Labels {
		y.Set(i, 0, float64(label))
	}
	return y
}

// MapExample encodes a raw test-time record using the mappings established
// at load time. A categorical value never seen during training is an
// error: the schema is fixed for the lifetime of the model.
func (d *Dataset) MapExample(fields []string) ([]float64, error) {
	if len(fields) != len(d.Schema) {
		return nil, errors.NewDimensionError("MapExample", len(d.Schema), len(fields), 1)
	}
	x := make([]float64, len(fields))
	for i, field := range fields {
		if d.Mappings[i] == nil {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "non-numeric value in numeric dimension %d", i)
			}
			x[i] = v
			continue
		}
		idx, ok := d.Mappings[i][field]
		if !ok {
			return nil, errors.NewValueError("MapExample", "unknown categorical value at test time")
		}
		x[i] = float64(idx)
	}
	return x, nil
}
