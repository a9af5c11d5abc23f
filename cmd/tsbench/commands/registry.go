package commands

import (
	"tsml/errors"
	"tsml/pkg/classify"
	"tsml/pkg/data"
	"tsml/pkg/distance"
	"tsml/pkg/pipeline"
	"tsml/pkg/synth"
	"tsml/pkg/transform"
)

// BuildDataset generates the synthetic dataset named by the config.
func BuildDataset(cfg DatasetConfig) (data.Dataset, data.Labels, error) {
	switch cfg.Kind {
	case "waves":
		p, y := synth.Waves(cfg.Instances, cfg.Length, cfg.Channels, cfg.Classes, cfg.Noise, cfg.Seed)
		return p, y, nil
	case "ragged":
		p, y := synth.RaggedWaves(cfg.Instances, cfg.MinLength, cfg.MaxLength, cfg.Channels, cfg.Classes, cfg.Noise, cfg.Seed)
		return p, y, nil
	case "blobs":
		t, y := synth.GaussianBlobs(cfg.Instances, cfg.Features, cfg.Classes, cfg.Spread, cfg.Seed)
		return t, y, nil
	}
	return nil, nil, errors.Configurationf("unknown dataset kind %q", cfg.Kind)
}

// PipelineNames lists the built-in pipelines in display order.
func PipelineNames() []string {
	return []string{
		"dummy",
		"lookup",
		"1nn",
		"dtw",
		"summary-tree",
		"summary-forest",
		"summary-ridge",
		"pca-knn",
		"table-forest",
		"table-ridge",
		"table-logistic",
		"table-kmeans",
		"poly-ridge",
	}
}

// BuildPipeline assembles the named stage list from the config. Panel
// pipelines expect waves or ragged datasets; table pipelines expect blobs.
func BuildPipeline(cfg PipelineConfig) ([]pipeline.Stage, error) {
	switch cfg.Name {
	case "dummy":
		return []pipeline.Stage{
			pipeline.EstimatorStage("dummy", classify.NewDummy()),
		}, nil
	case "lookup":
		return []pipeline.Stage{
			pipeline.TransformStage("identity", transform.NewIdentity()),
			pipeline.EstimatorStage("lookup", classify.NewLookup()),
		}, nil
	case "1nn":
		return []pipeline.Stage{
			pipeline.TransformStage("normalize", transform.NewNormalize()),
			pipeline.EstimatorStage("knn", classify.NewKNN(cfg.K)),
		}, nil
	case "dtw":
		return []pipeline.Stage{
			pipeline.TransformStage("normalize", transform.NewNormalize()),
			pipeline.EstimatorStage("knn-dtw", classify.NewKNN(cfg.K,
				classify.WithMeasure(distance.DTWBand(cfg.Window)))),
		}, nil
	case "summary-tree":
		return []pipeline.Stage{
			pipeline.TransformStage("normalize", transform.NewNormalize()),
			pipeline.TransformStage("summary", transform.NewSummary()),
			pipeline.EstimatorStage("tree", classify.NewTree(
				classify.WithMaxDepth(cfg.MaxDepth),
				classify.WithSeed(cfg.Seed))),
		}, nil
	case "summary-forest":
		return []pipeline.Stage{
			pipeline.TransformStage("normalize", transform.NewNormalize()),
			pipeline.TransformStage("summary", transform.NewSummary()),
			pipeline.EstimatorStage("forest", classify.NewForest(
				classify.WithNEstimators(cfg.Trees),
				classify.WithForestSeed(cfg.Seed))),
		}, nil
	case "summary-ridge":
		return []pipeline.Stage{
			pipeline.TransformStage("summary", transform.NewSummary()),
			pipeline.TransformStage("scale", transform.NewScale()),
			pipeline.EstimatorStage("ridge", classify.NewRidge(cfg.Lambda)),
		}, nil
	case "pca-knn":
		return []pipeline.Stage{
			pipeline.TransformStage("summary", transform.NewSummary()),
			pipeline.TransformStage("scale", transform.NewScale()),
			pipeline.TransformStage("pca", transform.NewPCA(cfg.Components)),
			pipeline.EstimatorStage("knn", classify.NewKNN(cfg.K)),
		}, nil
	case "table-forest":
		return []pipeline.Stage{
			pipeline.TransformStage("impute", transform.NewImpute(transform.ImputeMean)),
			pipeline.EstimatorStage("forest", classify.NewForest(
				classify.WithNEstimators(cfg.Trees),
				classify.WithForestSeed(cfg.Seed))),
		}, nil
	case "table-ridge":
		return []pipeline.Stage{
			pipeline.TransformStage("impute", transform.NewImpute(transform.ImputeMean)),
			pipeline.TransformStage("scale", transform.NewScale()),
			pipeline.EstimatorStage("ridge", classify.NewRidge(cfg.Lambda)),
		}, nil
	case "table-logistic":
		return []pipeline.Stage{
			pipeline.TransformStage("impute", transform.NewImpute(transform.ImputeMean)),
			pipeline.TransformStage("scale", transform.NewScale()),
			pipeline.EstimatorStage("logistic", classify.NewLogistic(
				classify.WithLearnRate(cfg.LearnRate),
				classify.WithEpochs(cfg.Epochs),
				classify.WithLogisticSeed(cfg.Seed))),
		}, nil
	case "table-kmeans":
		kmeans := transform.NewKMeansFeatures(cfg.Clusters)
		kmeans.Seed = cfg.Seed
		return []pipeline.Stage{
			pipeline.TransformStage("impute", transform.NewImpute(transform.ImputeMean)),
			pipeline.TransformStage("winsorize", transform.NewWinsorize(cfg.Quantile)),
			pipeline.TransformStage("kmeans", kmeans),
			pipeline.EstimatorStage("ridge", classify.NewRidge(cfg.Lambda)),
		}, nil
	case "poly-ridge":
		return []pipeline.Stage{
			pipeline.TransformStage("impute", transform.NewImpute(transform.ImputeMean)),
			pipeline.TransformStage("poly", transform.NewPolynomial(cfg.Degree)),
			pipeline.TransformStage("scale", transform.NewScale()),
			pipeline.EstimatorStage("ridge", classify.NewRidge(cfg.Lambda)),
		}, nil
	}
	return nil, errors.Configurationf("unknown pipeline %q", cfg.Name)
}
