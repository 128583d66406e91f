package log

// Standard attribute keys for vfdt operations. Using these keys keeps
// training and classification logs consistent and filterable; the keys
// follow a hierarchical naming convention (e.g. "model.name",
// "data.samples").

// Model and operation context.
const (
	// ModelNameKey identifies the type of model.
	// Example: "HoeffdingTreeClassifier"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "build", "train", "classify", "save", "load"
	OperationKey = "ml.operation"

	// PhaseKey indicates the phase of the model lifecycle.
	// Examples: "training", "inference"
	PhaseKey = "ml.phase"
)

// Data shape and characteristics.
const (
	// SamplesKey indicates the number of examples processed.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of dimensions in the schema.
	FeaturesKey = "data.features"

	// ClassesKey indicates the number of classes.
	ClassesKey = "data.classes"

	// PassKey indicates the current pass over the dataset.
	PassKey = "data.pass"
)

// Tree and training metrics.
const (
	// NodesKey records the current number of nodes in the tree.
	NodesKey = "tree.nodes"

	// SplitsKey records the number of splits committed during an operation.
	SplitsKey = "tree.splits"

	// AccuracyKey records classification accuracy, in [0.0, 1.0].
	AccuracyKey = "metrics.accuracy"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
