package train

import "fmt"

// Family name constants, in the fixed iteration order used for training
// and tie-breaking.
const (
	FamilyLogisticRegression = "logistic_regression"
	FamilyLinearSVM          = "linear_svm"
)

// Families returns the model family names in training order.
func Families() []string {
	return []string{FamilyLogisticRegression, FamilyLinearSVM}
}

// Classifier is a multiclass linear model over an encoded design matrix.
type Classifier interface {
	// Fit trains on X with integer class labels in [0, nClasses).
	Fit(X [][]float64, y []int, nClasses int) error
	// Predict returns the predicted class index per row.
	Predict(X [][]float64) []int
	// Coefficients exposes the fitted weights and intercepts for
	// persistence, one weight vector and intercept per class.
	Coefficients() (weights [][]float64, intercepts []float64)
}

// ModelFitError reports a classifier family that failed to fit.
type ModelFitError struct {
	Family string
	Reason string
}

func (e *ModelFitError) Error() string {
	return fmt.Sprintf("fit %s: %s", e.Family, e.Reason)
}

// decision computes w·x + b.
func decision(w []float64, b float64, x []float64) float64 {
	sum := b
	for j, v := range x {
		sum += w[j] * v
	}
	return sum
}

func argmaxAll(scores func(x []float64) []float64, X [][]float64) []int {
	out := make([]int, len(X))
	for i, x := range X {
		s := scores(x)
		best := 0
		for k := 1; k < len(s); k++ {
			if s[k] > s[best] {
				best = k
			}
		}
		out[i] = best
	}
	return out
}
