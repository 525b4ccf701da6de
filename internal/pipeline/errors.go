// Package pipeline defines the explicit stage sequence of the batch
// pipeline and the runner that enforces stage ordering, input
// preconditions, and skip-if-exists semantics.
package pipeline

import "fmt"

// MissingUpstreamArtifactError reports a required earlier-stage output
// that is absent, with the remediating stage to run.
type MissingUpstreamArtifactError struct {
	Path       string
	ProducedBy string
	RequiredBy string
}

func (e *MissingUpstreamArtifactError) Error() string {
	return fmt.Sprintf(
		"%s requires %s which does not exist; run the %s stage first",
		e.RequiredBy, e.Path, e.ProducedBy,
	)
}
