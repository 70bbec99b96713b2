package log

// Standard attribute keys. They follow a hierarchical naming convention
// ("model.name", "data.samples") so that log records from fitting, scoring
// and the CLI driver can be filtered together.

// Model and Operation Context
const (
	// ModelNameKey identifies the estimator type, e.g. "CategoricalNB".
	ModelNameKey = "model.name"

	// EstimatorIDKey identifies one estimator instance (a UUID).
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed.
	OperationKey = "ml.operation"

	// ComponentKey identifies which package performed the operation.
	ComponentKey = "ml.component"

	// RunIDKey identifies one CLI invocation.
	RunIDKey = "run.id"
)

// Data Shape
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
	ClassesKey  = "data.classes"
	PathKey     = "data.path"
)

// Model hyperparameters and results
const (
	ClassPriorCountKey       = "hyperparams.class_prior_count"
	FeaturePosteriorCountKey = "hyperparams.feature_posterior_count"
	LogSpaceKey              = "hyperparams.log_space"
	ThresholdKey             = "preds.threshold"
	AccuracyKey              = "metrics.accuracy"
	PrecisionKey             = "metrics.precision"
	RecallKey                = "metrics.recall"
	DurationMsKey            = "perf.duration_ms"
)

// Error Context
const (
	ErrorTypeKey = "error.type"
)

// Standard attribute values.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationPredictBatch = "predict_batch"
	OperationScore        = "score"
	OperationEvaluate     = "evaluate"
	OperationFeatures     = "features"
)
