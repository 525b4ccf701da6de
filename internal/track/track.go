// Package track is a write-only boundary to a local experiment store.
// Each training run of one model family becomes one append-only run
// directory holding parameters, metrics, and artifact copies.
package track

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mbayonal/sentiment-classification-model/internal/jsonl"
)

// Tracker creates runs under <dir>/<experiment>/.
type Tracker struct {
	Dir        string
	Experiment string
}

// Run is one in-progress run record. It accumulates parameters and
// metrics in memory and flushes them on Close; runs are never mutated
// after Close.
type Run struct {
	Name    string
	dir     string
	params  map[string]any
	metrics map[string]float64
	closed  bool
}

// StartRun opens a new run directory named <seq>_<name>, where seq is
// one past the highest sequence already present for the experiment.
func (t *Tracker) StartRun(name string) (*Run, error) {
	expDir := filepath.Join(t.Dir, t.Experiment)
	if err := os.MkdirAll(expDir, 0o755); err != nil {
		return nil, fmt.Errorf("create experiment directory: %w", err)
	}

	seq, err := nextSequence(expDir)
	if err != nil {
		return nil, err
	}
	runDir := filepath.Join(expDir, fmt.Sprintf("%04d_%s", seq, name))
	if err := os.Mkdir(runDir, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}

	return &Run{
		Name:    name,
		dir:     runDir,
		params:  map[string]any{},
		metrics: map[string]float64{},
	}, nil
}

// Dir returns the run's directory.
func (r *Run) Dir() string { return r.dir }

// LogParam records one run parameter.
func (r *Run) LogParam(key string, value any) {
	r.params[key] = value
}

// LogMetric records one run metric.
func (r *Run) LogMetric(key string, value float64) {
	r.metrics[key] = value
}

// LogArtifact copies a file into the run's artifacts directory.
func (r *Run) LogArtifact(path string) error {
	artifactsDir := filepath.Join(r.dir, "artifacts")
	if err := os.MkdirAll(artifactsDir, 0o755); err != nil {
		return fmt.Errorf("create artifacts directory: %w", err)
	}

	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open artifact: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(filepath.Join(artifactsDir, filepath.Base(path)))
	if err != nil {
		return fmt.Errorf("create artifact copy: %w", err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy artifact: %w", err)
	}
	return nil
}

// LogJSONArtifact writes value as an indented JSON artifact named name
// in the run's artifacts directory.
func (r *Run) LogJSONArtifact(name string, value any) error {
	artifactsDir := filepath.Join(r.dir, "artifacts")
	if err := os.MkdirAll(artifactsDir, 0o755); err != nil {
		return fmt.Errorf("create artifacts directory: %w", err)
	}
	return jsonl.WriteJSON(filepath.Join(artifactsDir, name), value)
}

// Close flushes the run's parameters and metrics. A run may only be
// closed once.
func (r *Run) Close() error {
	if r.closed {
		return fmt.Errorf("run %s already closed", r.Name)
	}
	r.closed = true

	if err := jsonl.WriteJSON(filepath.Join(r.dir, "params.json"), r.params); err != nil {
		return err
	}
	return jsonl.WriteJSON(filepath.Join(r.dir, "metrics.json"), r.metrics)
}

func nextSequence(expDir string) (int, error) {
	entries, err := os.ReadDir(expDir)
	if err != nil {
		return 0, fmt.Errorf("read experiment directory: %w", err)
	}
	next := 1
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		var seq int
		var rest string
		if n, _ := fmt.Sscanf(entry.Name(), "%04d_%s", &seq, &rest); n >= 1 && seq >= next {
			next = seq + 1
		}
	}
	return next, nil
}
