package train

import (
	"fmt"

	"github.com/mbayonal/sentiment-classification-model/internal/jsonl"
)

// SavedModel is the persisted best pipeline: the fitted preprocessing
// stage plus the winning family's linear coefficients, bound to a fixed
// feature schema and class order.
type SavedModel struct {
	Family              string       `json:"family"`
	NumericFeatures     []string     `json:"numeric_features"`
	CategoricalFeatures []string     `json:"categorical_features"`
	Medians             []float64    `json:"medians"`
	Preprocessor        Preprocessor `json:"preprocessor"`
	Weights             [][]float64  `json:"weights"`
	Intercepts          []float64    `json:"intercepts"`
	Classes             []string     `json:"classes"`
}

// Metadata is the best-model metadata document.
type Metadata struct {
	ModelName     string             `json:"model_name"`
	Metrics       map[string]float64 `json:"metrics"`
	Parameters    map[string]any     `json:"parameters"`
	TargetClasses []string           `json:"target_classes"`
}

// Save writes the model document as indented JSON.
func (m *SavedModel) Save(path string) error {
	return jsonl.WriteJSON(path, m)
}

// LoadModel reads a persisted model document.
func LoadModel(path string) (*SavedModel, error) {
	var m SavedModel
	if err := jsonl.ReadJSON(path, &m); err != nil {
		return nil, err
	}
	if len(m.Weights) != len(m.Classes) {
		return nil, fmt.Errorf("model %s: %d weight vectors for %d classes", path, len(m.Weights), len(m.Classes))
	}
	return &m, nil
}

// Predict classifies one raw row of numeric and categorical feature
// values, imputing missing numerics from the stored medians.
func (m *SavedModel) Predict(numeric []*float64, categorical []string) (string, error) {
	if len(numeric) != len(m.NumericFeatures) || len(categorical) != len(m.CategoricalFeatures) {
		return "", fmt.Errorf(
			"expected %d numeric and %d categorical values, got %d and %d",
			len(m.NumericFeatures), len(m.CategoricalFeatures), len(numeric), len(categorical),
		)
	}

	raw := make([]float64, len(numeric))
	for j, v := range numeric {
		if v == nil {
			raw[j] = m.Medians[j]
		} else {
			raw[j] = *v
		}
	}
	x := m.Preprocessor.TransformRow(raw, categorical)

	best := 0
	bestScore := decision(m.Weights[0], m.Intercepts[0], x)
	for k := 1; k < len(m.Weights); k++ {
		if score := decision(m.Weights[k], m.Intercepts[k], x); score > bestScore {
			best = k
			bestScore = score
		}
	}
	return m.Classes[best], nil
}
