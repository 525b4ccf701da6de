package train

import (
	"fmt"
	"os"

	"github.com/mbayonal/sentiment-classification-model/internal/config"
	"github.com/mbayonal/sentiment-classification-model/internal/features"
	"github.com/mbayonal/sentiment-classification-model/internal/jsonl"
	"github.com/mbayonal/sentiment-classification-model/internal/log"
	"github.com/mbayonal/sentiment-classification-model/internal/pipeline"
	"github.com/mbayonal/sentiment-classification-model/internal/track"
)

// familyResult collects everything we keep from one trained family.
type familyResult struct {
	family  string
	params  config.FamilyParams
	metrics map[string]float64
	report  map[string]ClassReport
	model   *SavedModel
}

// Run trains every classifier family on the movie feature table,
// evaluates each on a stratified held-out split, records one tracking
// run per family, and persists the family with the highest weighted F1
// together with its metadata. Ties keep the family trained first. If the
// best-model artifact already exists the stage is skipped.
func Run(p config.Params, logger *log.Logger) error {
	modelPath := p.BestModelPath()
	if hasContent(modelPath) {
		logger.Printf("%s already exists, skipping training", modelPath)
		return nil
	}

	featPath := p.FeaturesPath()
	if _, err := os.Stat(featPath); os.IsNotExist(err) {
		return &pipeline.MissingUpstreamArtifactError{
			Path:       featPath,
			ProducedBy: "features",
			RequiredBy: "train",
		}
	}

	logger.Printf("loading %s", featPath)
	movies, err := jsonl.Read[features.Movie](featPath)
	if err != nil {
		return err
	}

	frame := Prepare(movies, logger)
	if frame.Len() < 2 {
		return fmt.Errorf("%d labeled rows, need at least 2 to split", frame.Len())
	}
	medians := frame.ImputeMedians()

	trainRows, testRows := StratifiedSplit(frame.Labels, p.RatingClassifier.TestSize, p.RatingClassifier.RandomState)
	logger.Printf("split: %d train rows, %d test rows", len(trainRows), len(testRows))

	var pp Preprocessor
	pp.Fit(frame, trainRows)
	xTrain := pp.Transform(frame, trainRows)
	xTest := pp.Transform(frame, testRows)

	classes := features.RatingClasses()
	yTrain, err := encodeLabels(frame.Labels, trainRows, classes)
	if err != nil {
		return err
	}
	yTest, err := encodeLabels(frame.Labels, testRows, classes)
	if err != nil {
		return err
	}

	tracker := &track.Tracker{Dir: p.Tracking.Dir, Experiment: p.Tracking.Experiment}

	var best *familyResult
	for _, family := range Families() {
		result, err := trainFamily(family, p, xTrain, yTrain, xTest, yTest, classes, medians, pp, tracker, logger)
		if err != nil {
			return err
		}
		if best == nil || result.metrics[MetricF1Weighted] > best.metrics[MetricF1Weighted] {
			best = result
		}
	}

	logger.Printf("best family: %s (%s %.4f)", best.family, MetricF1Weighted, best.metrics[MetricF1Weighted])

	if err := best.model.Save(modelPath); err != nil {
		return err
	}

	meta := Metadata{
		ModelName: best.family,
		Metrics:   best.metrics,
		Parameters: map[string]any{
			"c":            best.params.C,
			"max_iter":     best.params.MaxIter,
			"test_size":    p.RatingClassifier.TestSize,
			"random_state": p.RatingClassifier.RandomState,
		},
		TargetClasses: classes,
	}
	return jsonl.WriteJSON(p.MetadataPath(), meta)
}

// trainFamily fits one family, evaluates it, writes its classification
// report, and records the tracking run with the report and the
// serialized model as artifacts.
func trainFamily(
	family string,
	p config.Params,
	xTrain [][]float64, yTrain []int,
	xTest [][]float64, yTest []int,
	classes []string,
	medians []float64,
	pp Preprocessor,
	tracker *track.Tracker,
	logger *log.Logger,
) (*familyResult, error) {
	fp := familyParams(p, family)
	clf := newClassifier(family, fp)

	logger.Printf("training %s (c=%g, max_iter=%d)", family, fp.C, fp.MaxIter)
	if err := clf.Fit(xTrain, yTrain, len(classes)); err != nil {
		return nil, err
	}

	metrics, report := Evaluate(yTest, clf.Predict(xTest), classes)
	for _, key := range []string{MetricAccuracy, MetricF1Weighted} {
		logger.Printf("  %s: %.4f", key, metrics[key])
	}

	reportPath := p.ReportPath(family)
	if err := jsonl.WriteJSON(reportPath, report); err != nil {
		return nil, err
	}

	weights, intercepts := clf.Coefficients()
	model := &SavedModel{
		Family:              family,
		NumericFeatures:     append([]string(nil), numericFeatures...),
		CategoricalFeatures: append([]string(nil), categoricalFeatures...),
		Medians:             medians,
		Preprocessor:        pp,
		Weights:             weights,
		Intercepts:          intercepts,
		Classes:             classes,
	}

	run, err := tracker.StartRun(family)
	if err != nil {
		return nil, err
	}
	run.LogParam("model_type", family)
	run.LogParam("model_c", fp.C)
	run.LogParam("model_max_iter", fp.MaxIter)
	run.LogParam("n_train", len(xTrain))
	run.LogParam("n_test", len(xTest))
	run.LogParam("n_features", len(xTrain[0]))
	for key, value := range metrics {
		run.LogMetric(key, value)
	}
	if err := run.LogArtifact(reportPath); err != nil {
		return nil, err
	}
	if err := run.LogJSONArtifact(family+"_model.json", model); err != nil {
		return nil, err
	}
	if err := run.Close(); err != nil {
		return nil, err
	}

	return &familyResult{
		family:  family,
		params:  fp,
		metrics: metrics,
		report:  report,
		model:   model,
	}, nil
}

func familyParams(p config.Params, family string) config.FamilyParams {
	if family == FamilyLinearSVM {
		return p.RatingClassifier.LinearSVM
	}
	return p.RatingClassifier.LogisticRegression
}

func newClassifier(family string, fp config.FamilyParams) Classifier {
	if family == FamilyLinearSVM {
		return &LinearSVM{C: fp.C, MaxIter: fp.MaxIter}
	}
	return &LogisticRegression{C: fp.C, MaxIter: fp.MaxIter}
}

// encodeLabels maps the selected rows' labels to class indices.
func encodeLabels(labels []string, rows []int, classes []string) ([]int, error) {
	index := make(map[string]int, len(classes))
	for i, class := range classes {
		index[class] = i
	}
	out := make([]int, 0, len(rows))
	for _, i := range rows {
		idx, ok := index[labels[i]]
		if !ok {
			return nil, fmt.Errorf("unexpected class label %q", labels[i])
		}
		out = append(out, idx)
	}
	return out, nil
}

func hasContent(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}
