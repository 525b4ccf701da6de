package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mbayonal/sentiment-classification-model/internal/dataset"
)

const (
	defaultBaseURL         = "https://datasets.imdbws.com/"
	defaultRawDir          = "data/raw"
	defaultProcessedDir    = "data/processed"
	defaultModelsDir       = "models"
	defaultTargetSizeBytes = 100 << 20
	defaultSampleSeed      = 42
	defaultSampleRatio     = 0.1
	defaultTestSize        = 0.2
	defaultRandomState     = 42
	defaultC               = 1.0
	defaultLogRegMaxIter   = 1000
	defaultSVMMaxIter      = 2000
	defaultExperiment      = "imdb-rating-classification"
	defaultTrackingDir     = "mlruns"
)

// Default returns the parameters document with every entry at its
// documented default.
func Default() Params {
	var p Params
	p.applyDefaults()
	return p
}

// Load reads a params document from YAML, merges defaults for missing
// entries, and validates it. An empty path yields the defaults.
func Load(path string) (Params, error) {
	if path == "" {
		return Default(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("read params: %w", err)
	}

	var p Params
	if err := yaml.Unmarshal(content, &p); err != nil {
		return Params{}, fmt.Errorf("parse params yaml: %w", err)
	}

	p.applyDefaults()
	if err := p.validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func (p *Params) applyDefaults() {
	if p.Data.BaseURL == "" {
		p.Data.BaseURL = defaultBaseURL
	}
	if p.Data.RawDir == "" {
		p.Data.RawDir = defaultRawDir
	}
	if p.Data.ProcessedDir == "" {
		p.Data.ProcessedDir = defaultProcessedDir
	}
	if p.Data.TargetSizeBytes == 0 {
		p.Data.TargetSizeBytes = defaultTargetSizeBytes
	}
	if p.Data.SampleSeed == 0 {
		p.Data.SampleSeed = defaultSampleSeed
	}
	if p.ModelsDir == "" {
		p.ModelsDir = defaultModelsDir
	}
	if p.RatingClassifier.TestSize == 0 {
		p.RatingClassifier.TestSize = defaultTestSize
	}
	if p.RatingClassifier.RandomState == 0 {
		p.RatingClassifier.RandomState = defaultRandomState
	}
	if p.RatingClassifier.LogisticRegression.C == 0 {
		p.RatingClassifier.LogisticRegression.C = defaultC
	}
	if p.RatingClassifier.LogisticRegression.MaxIter == 0 {
		p.RatingClassifier.LogisticRegression.MaxIter = defaultLogRegMaxIter
	}
	if p.RatingClassifier.LinearSVM.C == 0 {
		p.RatingClassifier.LinearSVM.C = defaultC
	}
	if p.RatingClassifier.LinearSVM.MaxIter == 0 {
		p.RatingClassifier.LinearSVM.MaxIter = defaultSVMMaxIter
	}
	if p.Tracking.Experiment == "" {
		p.Tracking.Experiment = defaultExperiment
	}
	if p.Tracking.Dir == "" {
		p.Tracking.Dir = defaultTrackingDir
	}
}

func (p Params) validate() error {
	if p.Data.TargetSizeBytes < 0 {
		return fmt.Errorf("target_size_bytes must be >= 0")
	}
	for kind, ratio := range p.Data.SampleRatios {
		if _, err := dataset.ParseKind(string(kind)); err != nil {
			return fmt.Errorf("sample_ratios: %w", err)
		}
		if ratio <= 0 || ratio > 1 {
			return fmt.Errorf("sample_ratios.%s must be in (0, 1], got %v", kind, ratio)
		}
	}
	if p.RatingClassifier.TestSize <= 0 || p.RatingClassifier.TestSize >= 1 {
		return fmt.Errorf("test_size must be in (0, 1), got %v", p.RatingClassifier.TestSize)
	}
	for family, fp := range map[string]FamilyParams{
		"logistic_regression": p.RatingClassifier.LogisticRegression,
		"linear_svm":          p.RatingClassifier.LinearSVM,
	} {
		if fp.C <= 0 {
			return fmt.Errorf("%s.c must be > 0, got %v", family, fp.C)
		}
		if fp.MaxIter < 1 {
			return fmt.Errorf("%s.max_iter must be >= 1, got %d", family, fp.MaxIter)
		}
	}
	return nil
}
