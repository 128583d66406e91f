package model

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// Batch represents a data batch for streaming learning.
type Batch struct {
	X mat.Matrix // Feature matrix
	Y mat.Matrix // Target matrix
}

// StreamingEstimator provides a channel-based streaming learning interface.
type StreamingEstimator interface {
	IncrementalLearner

	// FitStream trains the model from a data stream. It continues learning
	// until the context is canceled or the channel is closed.
	FitStream(ctx context.Context, dataChan <-chan *Batch) error

	// PredictStream performs predictions on an input stream. The output
	// channel is closed when the input channel is closed.
	PredictStream(ctx context.Context, inputChan <-chan mat.Matrix) <-chan mat.Matrix
}
