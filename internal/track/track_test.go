package track

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mbayonal/sentiment-classification-model/internal/jsonl"
)

func TestRun_WritesParamsAndMetrics(t *testing.T) {
	t.Parallel()

	tracker := &Tracker{Dir: t.TempDir(), Experiment: "imdb-rating-classification"}
	run, err := tracker.StartRun("logistic_regression")
	if err != nil {
		t.Fatalf("StartRun: %v", err)
	}

	run.LogParam("model_type", "logistic_regression")
	run.LogParam("n_train", 800)
	run.LogMetric("accuracy", 0.91)
	if err := run.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var params map[string]any
	if err := jsonl.ReadJSON(filepath.Join(run.Dir(), "params.json"), &params); err != nil {
		t.Fatal(err)
	}
	if params["model_type"] != "logistic_regression" {
		t.Errorf("params = %v", params)
	}

	var metrics map[string]float64
	if err := jsonl.ReadJSON(filepath.Join(run.Dir(), "metrics.json"), &metrics); err != nil {
		t.Fatal(err)
	}
	if metrics["accuracy"] != 0.91 {
		t.Errorf("metrics = %v", metrics)
	}
}

func TestStartRun_SequencesAreAppendOnly(t *testing.T) {
	t.Parallel()

	tracker := &Tracker{Dir: t.TempDir(), Experiment: "exp"}

	first, err := tracker.StartRun("logistic_regression")
	if err != nil {
		t.Fatal(err)
	}
	second, err := tracker.StartRun("linear_svm")
	if err != nil {
		t.Fatal(err)
	}

	if filepath.Base(first.Dir()) != "0001_logistic_regression" {
		t.Errorf("first run dir = %s", filepath.Base(first.Dir()))
	}
	if filepath.Base(second.Dir()) != "0002_linear_svm" {
		t.Errorf("second run dir = %s", filepath.Base(second.Dir()))
	}
}

func TestRun_LogArtifactCopies(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	report := filepath.Join(dir, "report.json")
	if err := os.WriteFile(report, []byte(`{"Poor":{}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	tracker := &Tracker{Dir: dir, Experiment: "exp"}
	run, err := tracker.StartRun("linear_svm")
	if err != nil {
		t.Fatal(err)
	}
	if err := run.LogArtifact(report); err != nil {
		t.Fatalf("LogArtifact: %v", err)
	}

	copied, err := os.ReadFile(filepath.Join(run.Dir(), "artifacts", "report.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(copied) != `{"Poor":{}}` {
		t.Errorf("artifact copy = %q", copied)
	}
}

func TestRun_LogJSONArtifactWritesDocument(t *testing.T) {
	t.Parallel()

	tracker := &Tracker{Dir: t.TempDir(), Experiment: "exp"}
	run, err := tracker.StartRun("logistic_regression")
	if err != nil {
		t.Fatal(err)
	}

	doc := map[string]any{"family": "logistic_regression"}
	if err := run.LogJSONArtifact("logistic_regression_model.json", doc); err != nil {
		t.Fatalf("LogJSONArtifact: %v", err)
	}

	var got map[string]any
	path := filepath.Join(run.Dir(), "artifacts", "logistic_regression_model.json")
	if err := jsonl.ReadJSON(path, &got); err != nil {
		t.Fatal(err)
	}
	if got["family"] != "logistic_regression" {
		t.Errorf("artifact document = %v", got)
	}
}

func TestRun_CloseTwice(t *testing.T) {
	t.Parallel()

	tracker := &Tracker{Dir: t.TempDir(), Experiment: "exp"}
	run, err := tracker.StartRun("logistic_regression")
	if err != nil {
		t.Fatal(err)
	}
	if err := run.Close(); err != nil {
		t.Fatal(err)
	}
	if err := run.Close(); err == nil {
		t.Fatal("second Close should fail: runs are write-once")
	}
}
