package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mbayonal/sentiment-classification-model/internal/dataset"
)

func writeParams(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_EmptyPathYieldsDefaults(t *testing.T) {
	t.Parallel()

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Data.BaseURL != "https://datasets.imdbws.com/" {
		t.Errorf("base url = %q", p.Data.BaseURL)
	}
	if p.RatingClassifier.TestSize != 0.2 {
		t.Errorf("test size = %v, want 0.2", p.RatingClassifier.TestSize)
	}
	if p.RatingClassifier.RandomState != 42 {
		t.Errorf("random state = %v, want 42", p.RatingClassifier.RandomState)
	}
	if p.RatingClassifier.LinearSVM.MaxIter != 2000 {
		t.Errorf("svm max_iter = %d, want 2000", p.RatingClassifier.LinearSVM.MaxIter)
	}
}

func TestLoad_PartialDocumentMergesDefaults(t *testing.T) {
	t.Parallel()

	path := writeParams(t, strings.Join([]string{
		"data:",
		"  target_size_bytes: 1024",
		"  sample_ratios:",
		"    title-basics: 0.5",
		"rating_classifier:",
		"  test_size: 0.3",
	}, "\n"))

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Data.TargetSizeBytes != 1024 {
		t.Errorf("target size = %d", p.Data.TargetSizeBytes)
	}
	if got := p.SampleRatio(dataset.KindTitleBasics); got != 0.5 {
		t.Errorf("title-basics ratio = %v, want 0.5", got)
	}
	// Unconfigured kinds fall back to the default ratio.
	if got := p.SampleRatio(dataset.KindTitleCrew); got != 0.1 {
		t.Errorf("title-crew ratio = %v, want 0.1", got)
	}
	if p.RatingClassifier.TestSize != 0.3 {
		t.Errorf("test size = %v, want 0.3", p.RatingClassifier.TestSize)
	}
	// Defaults still filled in for the untouched family.
	if p.RatingClassifier.LogisticRegression.C != 1.0 {
		t.Errorf("logreg c = %v, want 1.0", p.RatingClassifier.LogisticRegression.C)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name: "ratio above one",
			content: "data:\n  sample_ratios:\n    title-basics: 1.5\n",
		},
		{
			name: "unknown kind",
			content: "data:\n  sample_ratios:\n    title.basics: 0.5\n",
		},
		{
			name: "test size out of range",
			content: "rating_classifier:\n  test_size: 1.5\n",
		},
		{
			name: "negative c",
			content: "rating_classifier:\n  linear_svm:\n    c: -1\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeParams(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestPaths(t *testing.T) {
	t.Parallel()

	p := Default()
	if got := p.RawPath(dataset.KindTitleBasics); got != filepath.Join("data", "raw", "title.basics.tsv.gz") {
		t.Errorf("raw path = %q", got)
	}
	if got := p.NormalizedPath(dataset.KindTitleRatings); got != filepath.Join("data", "processed", "title.ratings.jsonl") {
		t.Errorf("normalized path = %q", got)
	}
	if got := p.FeaturesPath(); got != filepath.Join("data", "processed", "features", "movie_features.jsonl") {
		t.Errorf("features path = %q", got)
	}
	if got := p.ReportPath("linear_svm"); got != filepath.Join("models", "linear_svm_report.json") {
		t.Errorf("report path = %q", got)
	}
}
