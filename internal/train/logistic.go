package train

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// LogisticRegression is a multinomial (softmax) classifier trained with
// L2-regularized full-batch gradient descent. C is the inverse
// regularization strength.
type LogisticRegression struct {
	C       float64
	MaxIter int

	W [][]float64 // one weight vector per class
	B []float64
}

const logisticLearningRate = 0.5

// Fit trains the model. A non-finite loss aborts with ModelFitError.
func (m *LogisticRegression) Fit(X [][]float64, y []int, nClasses int) error {
	n := len(X)
	if n == 0 {
		return &ModelFitError{Family: FamilyLogisticRegression, Reason: "no training rows"}
	}
	nFeatures := len(X[0])
	lambda := 1 / (m.C * float64(n))

	m.W = zeroMatrix(nClasses, nFeatures)
	m.B = make([]float64, nClasses)

	gradW := zeroMatrix(nClasses, nFeatures)
	gradB := make([]float64, nClasses)

	for iter := 0; iter < m.MaxIter; iter++ {
		for k := range gradW {
			for j := range gradW[k] {
				gradW[k][j] = 0
			}
			gradB[k] = 0
		}

		loss := 0.0
		for i, x := range X {
			probs := m.softmax(x)
			loss -= math.Log(math.Max(probs[y[i]], 1e-15))
			for k := 0; k < nClasses; k++ {
				d := probs[k]
				if k == y[i] {
					d -= 1
				}
				floats.AddScaled(gradW[k], d, x)
				gradB[k] += d
			}
		}
		loss /= float64(n)

		for k := 0; k < nClasses; k++ {
			for j := 0; j < nFeatures; j++ {
				loss += lambda / 2 * m.W[k][j] * m.W[k][j]
				gradW[k][j] = gradW[k][j]/float64(n) + lambda*m.W[k][j]
			}
			gradB[k] /= float64(n)
		}

		if math.IsNaN(loss) || math.IsInf(loss, 0) {
			return &ModelFitError{Family: FamilyLogisticRegression, Reason: "loss diverged"}
		}

		for k := 0; k < nClasses; k++ {
			floats.AddScaled(m.W[k], -logisticLearningRate, gradW[k])
			m.B[k] -= logisticLearningRate * gradB[k]
		}
	}
	return nil
}

// Predict returns the argmax class per row.
func (m *LogisticRegression) Predict(X [][]float64) []int {
	return argmaxAll(m.scores, X)
}

// Coefficients returns the fitted weights and intercepts.
func (m *LogisticRegression) Coefficients() ([][]float64, []float64) {
	return m.W, m.B
}

func (m *LogisticRegression) scores(x []float64) []float64 {
	out := make([]float64, len(m.W))
	for k := range m.W {
		out[k] = decision(m.W[k], m.B[k], x)
	}
	return out
}

// softmax is computed with the max-shift trick for stability.
func (m *LogisticRegression) softmax(x []float64) []float64 {
	scores := m.scores(x)
	max := floats.Max(scores)
	sum := 0.0
	for k, s := range scores {
		scores[k] = math.Exp(s - max)
		sum += scores[k]
	}
	floats.Scale(1/sum, scores)
	return scores
}

func zeroMatrix(rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}
	return out
}
