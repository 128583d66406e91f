package model

import "gonum.org/v1/gonum/mat"

// Fitter is the interface for trainable models.
type Fitter interface {
	// Fit trains the model on the given data.
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for models that can predict.
type Predictor interface {
	// Predict returns predictions for the given input.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns a quality measure of the prediction (accuracy for
	// classifiers).
	Score(X, y mat.Matrix) (float64, error)
}

// IncrementalLearner is the interface for models that support incremental
// learning from a stream of examples.
type IncrementalLearner interface {
	// PartialFit updates the model with a mini-batch of samples. classes
	// lists all class labels and is required on the first call for
	// classification problems.
	PartialFit(X, y mat.Matrix, classes []int) error
}

// Classifier combines the interfaces implemented by classification models.
type Classifier interface {
	Fitter
	Predictor
	Scorer

	// PredictProba returns probability estimates for each class.
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// Classes returns the class labels known to the model.
	Classes() []int
}

// Persistable is the interface for models that can be saved and loaded.
type Persistable interface {
	// Save saves the model to a file.
	Save(path string) error

	// Load loads the model from a file.
	Load(path string) error
}
