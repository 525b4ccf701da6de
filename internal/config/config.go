// Package config defines the pipeline parameters document (params.yaml)
// and its explicit defaults. Parameters are loaded once and threaded as a
// value into each stage entry point.
package config

import (
	"path/filepath"

	"github.com/mbayonal/sentiment-classification-model/internal/dataset"
)

// Params is the full parameters document.
type Params struct {
	Data             DataParams       `yaml:"data"`
	RatingClassifier ClassifierParams `yaml:"rating_classifier"`
	Tracking         TrackingParams   `yaml:"tracking"`
	ModelsDir        string           `yaml:"models_dir"`
}

// DataParams controls acquisition, sampling, and normalization.
type DataParams struct {
	BaseURL         string                   `yaml:"base_url"`
	RawDir          string                   `yaml:"raw_dir"`
	ProcessedDir    string                   `yaml:"processed_dir"`
	TargetSizeBytes int64                    `yaml:"target_size_bytes"`
	SampleSeed      int64                    `yaml:"sample_seed"`
	SampleRatios    map[dataset.Kind]float64 `yaml:"sample_ratios"`
}

// FamilyParams are the hyperparameters of one classifier family.
type FamilyParams struct {
	C       float64 `yaml:"c"`
	MaxIter int     `yaml:"max_iter"`
}

// ClassifierParams controls the training stage.
type ClassifierParams struct {
	TestSize           float64      `yaml:"test_size"`
	RandomState        int64        `yaml:"random_state"`
	LogisticRegression FamilyParams `yaml:"logistic_regression"`
	LinearSVM          FamilyParams `yaml:"linear_svm"`
}

// TrackingParams locates the experiment tracking store.
type TrackingParams struct {
	Experiment string `yaml:"experiment"`
	Dir        string `yaml:"dir"`
}

// RawPath returns the on-disk location of a kind's fetched (and possibly
// sampled) compressed dump.
func (p Params) RawPath(kind dataset.Kind) string {
	return filepath.Join(p.Data.RawDir, kind.RemoteName())
}

// NormalizedPath returns the on-disk location of a kind's normalized
// JSONL table.
func (p Params) NormalizedPath(kind dataset.Kind) string {
	return filepath.Join(p.Data.ProcessedDir, kind.NormalizedName())
}

// FeaturesPath returns the on-disk location of the merged movie feature
// table.
func (p Params) FeaturesPath() string {
	return filepath.Join(p.Data.ProcessedDir, "features", "movie_features.jsonl")
}

// BestModelPath returns the on-disk location of the persisted best model.
func (p Params) BestModelPath() string {
	return filepath.Join(p.ModelsDir, "best_model.json")
}

// MetadataPath returns the on-disk location of the best-model metadata
// document.
func (p Params) MetadataPath() string {
	return filepath.Join(p.ModelsDir, "best_model_metadata.json")
}

// ReportPath returns the on-disk location of one family's per-class
// classification report.
func (p Params) ReportPath(family string) string {
	return filepath.Join(p.ModelsDir, family+"_report.json")
}

// SampleRatio returns the sampling ratio configured for a kind, falling
// back to the default ratio.
func (p Params) SampleRatio(kind dataset.Kind) float64 {
	if ratio, ok := p.Data.SampleRatios[kind]; ok {
		return ratio
	}
	return defaultSampleRatio
}
