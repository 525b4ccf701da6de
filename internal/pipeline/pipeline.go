package pipeline

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/mbayonal/sentiment-classification-model/internal/config"
	"github.com/mbayonal/sentiment-classification-model/internal/log"
)

// Stage is one named step of the pipeline. Outputs returns glob
// patterns matching the artifacts the stage produces for the given
// parameters; the runner uses them for skip decisions and status
// reporting.
type Stage struct {
	Name    string
	Outputs func(p config.Params) []string
	Run     func(p config.Params, logger *log.Logger) error
}

// Runner executes stages strictly in declaration order. A stage whose
// declared outputs all already exist is skipped; stages additionally
// apply their own per-artifact skip checks, so a partially complete
// stage resumes where it left off. The runner assumes a single
// invocation at a time and takes no locks.
type Runner struct {
	Stages []Stage
}

// Run executes every stage in order.
func (r *Runner) Run(p config.Params, logger *log.Logger) error {
	for _, stage := range r.Stages {
		done, err := stageComplete(stage, p)
		if err != nil {
			return fmt.Errorf("stage %s: %w", stage.Name, err)
		}
		if done {
			logger.Printf("stage %s: outputs present, skipping", stage.Name)
			continue
		}
		logger.Printf("stage %s: running", stage.Name)
		if err := stage.Run(p, logger); err != nil {
			return fmt.Errorf("stage %s: %w", stage.Name, err)
		}
	}
	return nil
}

// RunStage executes a single stage by name, without the runner-level
// skip check.
func (r *Runner) RunStage(name string, p config.Params, logger *log.Logger) error {
	for _, stage := range r.Stages {
		if stage.Name != name {
			continue
		}
		if err := stage.Run(p, logger); err != nil {
			return fmt.Errorf("stage %s: %w", stage.Name, err)
		}
		return nil
	}
	return fmt.Errorf("unknown stage %q", name)
}

// ArtifactStatus reports how many files match one declared output
// pattern.
type ArtifactStatus struct {
	Pattern string
	Count   int
}

// StageStatus reports one stage's artifact presence.
type StageStatus struct {
	Name      string
	Complete  bool
	Artifacts []ArtifactStatus
}

// Status reports artifact presence for every stage without running
// anything.
func (r *Runner) Status(p config.Params) ([]StageStatus, error) {
	out := make([]StageStatus, 0, len(r.Stages))
	for _, stage := range r.Stages {
		status := StageStatus{Name: stage.Name, Complete: true}
		var patterns []string
		if stage.Outputs != nil {
			patterns = stage.Outputs(p)
		}
		for _, pattern := range patterns {
			matches, err := doublestar.FilepathGlob(pattern)
			if err != nil {
				return nil, fmt.Errorf("stage %s: glob %s: %w", stage.Name, pattern, err)
			}
			if len(matches) == 0 {
				status.Complete = false
			}
			status.Artifacts = append(status.Artifacts, ArtifactStatus{
				Pattern: pattern,
				Count:   len(matches),
			})
		}
		out = append(out, status)
	}
	return out, nil
}

// stageComplete reports whether every declared output pattern matches
// at least one file. A stage declaring no outputs always runs.
func stageComplete(stage Stage, p config.Params) (bool, error) {
	if stage.Outputs == nil {
		return false, nil
	}
	patterns := stage.Outputs(p)
	if len(patterns) == 0 {
		return false, nil
	}
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return false, fmt.Errorf("glob %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			return false, nil
		}
	}
	return true, nil
}
