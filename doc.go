// Package vfdt provides a streaming decision tree (Hoeffding tree)
// classifier for Go, suited to large or unbounded labeled data streams.
//
// The tree grows incrementally: each example descends to a leaf, updates
// bounded per-leaf sufficient statistics, and a Hoeffding concentration
// bound decides when enough evidence has accumulated to commit an
// irrevocable split. Past examples are never re-read, and committing a
// split releases the leaf's detailed statistics.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/go-vfdt/vfdt/hoeffding"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    schema := hoeffding.Schema{
//	        {Kind: hoeffding.Categorical, Arity: 2},
//	        {Kind: hoeffding.Numeric},
//	    }
//	    clf, err := hoeffding.NewClassifier(schema, 2,
//	        hoeffding.WithConfidence(0.95),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    X := mat.NewDense(4, 2, []float64{0, 1.5, 1, 3.0, 0, 1.2, 1, 2.8})
//	    y := mat.NewDense(4, 1, []float64{0, 1, 0, 1})
//	    if err := clf.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    predictions, err := clf.Predict(X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Predictions:", predictions)
//	}
//
// # Packages
//
//   - hoeffding: the streaming tree learner and classifier
//   - dataset: CSV loading with schema and categorical-mapping inference
//   - metrics: accuracy and confusion-matrix evaluation
//   - core/model: shared estimator state, interfaces, and persistence
//   - core/parallel: data-parallel helpers for the read-only predict path
//   - pkg/errors, pkg/log: structured errors and logging
package vfdt
