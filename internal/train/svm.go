package train

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// LinearSVM is a one-vs-rest linear maximum-margin classifier trained
// with L2-regularized subgradient descent on the hinge loss. C is the
// inverse regularization strength.
type LinearSVM struct {
	C       float64
	MaxIter int

	W [][]float64
	B []float64
}

const svmLearningRate = 0.1

// Fit trains one hinge-loss separator per class.
func (m *LinearSVM) Fit(X [][]float64, y []int, nClasses int) error {
	n := len(X)
	if n == 0 {
		return &ModelFitError{Family: FamilyLinearSVM, Reason: "no training rows"}
	}
	nFeatures := len(X[0])
	lambda := 1 / (m.C * float64(n))

	m.W = zeroMatrix(nClasses, nFeatures)
	m.B = make([]float64, nClasses)

	gradW := make([]float64, nFeatures)
	for k := 0; k < nClasses; k++ {
		w := m.W[k]
		for iter := 0; iter < m.MaxIter; iter++ {
			for j := range gradW {
				gradW[j] = 0
			}
			gradB := 0.0

			loss := 0.0
			for i, x := range X {
				target := -1.0
				if y[i] == k {
					target = 1
				}
				margin := target * decision(w, m.B[k], x)
				if margin < 1 {
					loss += 1 - margin
					floats.AddScaled(gradW, -target, x)
					gradB -= target
				}
			}
			loss /= float64(n)

			for j := 0; j < nFeatures; j++ {
				loss += lambda / 2 * w[j] * w[j]
				gradW[j] = gradW[j]/float64(n) + lambda*w[j]
			}
			gradB /= float64(n)

			if math.IsNaN(loss) || math.IsInf(loss, 0) {
				return &ModelFitError{Family: FamilyLinearSVM, Reason: "loss diverged"}
			}

			floats.AddScaled(w, -svmLearningRate, gradW)
			m.B[k] -= svmLearningRate * gradB
		}
	}
	return nil
}

// Predict returns the class with the highest decision value per row.
func (m *LinearSVM) Predict(X [][]float64) []int {
	return argmaxAll(m.scores, X)
}

// Coefficients returns the fitted weights and intercepts.
func (m *LinearSVM) Coefficients() ([][]float64, []float64) {
	return m.W, m.B
}

func (m *LinearSVM) scores(x []float64) []float64 {
	out := make([]float64, len(m.W))
	for k := range m.W {
		out[k] = decision(m.W[k], m.B[k], x)
	}
	return out
}
