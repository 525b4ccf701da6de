// Package train builds, evaluates, and selects the rating-category
// classifiers.
package train

import (
	"math"
	"sort"

	"github.com/mbayonal/sentiment-classification-model/internal/features"
	"github.com/mbayonal/sentiment-classification-model/internal/log"
)

// Feature column names, in the fixed order used to assemble the design
// matrix.
var (
	numericFeatures     = []string{"startYear", "runtimeMinutes", "numVotes", "averageRating"}
	categoricalFeatures = []string{"runtime_category", "popularity"}
)

const unknownCategory = "Unknown"

// Frame holds the raw (pre-encoding) training columns: one numeric and
// one categorical slice per row, aligned with Labels.
type Frame struct {
	Numeric     [][]float64 // row-major; NaN marks missing before imputation
	Categorical [][]string
	Labels      []string
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.Labels) }

// Prepare filters movies to those with a rating-category label, logs the
// class distribution, and assembles raw feature columns. Missing numeric
// values become NaN (imputed later from the column median); missing
// categorical values become the literal Unknown label.
func Prepare(movies []features.Movie, logger *log.Logger) *Frame {
	frame := &Frame{}
	for _, m := range movies {
		if m.RatingCategory == nil {
			continue
		}
		frame.Numeric = append(frame.Numeric, []float64{
			missingToNaN(m.StartYear),
			missingToNaN(m.RuntimeMinutes),
			missingToNaN(m.NumVotes),
			missingToNaN(m.AverageRating),
		})
		frame.Categorical = append(frame.Categorical, []string{
			missingToUnknown(m.RuntimeCategory),
			missingToUnknown(m.Popularity),
		})
		frame.Labels = append(frame.Labels, *m.RatingCategory)
	}

	logger.Printf("movies with rating: %d of %d", frame.Len(), len(movies))
	for _, class := range classDistribution(frame.Labels) {
		logger.Printf("  %s: %d", class.label, class.count)
	}
	return frame
}

// ImputeMedians fills NaN entries in every numeric column with that
// column's median, computed over the non-missing values, and returns the
// medians used. A column with no observed values is filled with zero.
func (f *Frame) ImputeMedians() []float64 {
	medians := make([]float64, len(numericFeatures))
	for j := range numericFeatures {
		col := make([]float64, 0, f.Len())
		for i := range f.Numeric {
			if v := f.Numeric[i][j]; !math.IsNaN(v) {
				col = append(col, v)
			}
		}
		medians[j] = median(col)
		for i := range f.Numeric {
			if math.IsNaN(f.Numeric[i][j]) {
				f.Numeric[i][j] = medians[j]
			}
		}
	}
	return medians
}

// median interpolates between the two middle values on even counts.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

type classCount struct {
	label string
	count int
}

func classDistribution(labels []string) []classCount {
	counts := map[string]int{}
	for _, label := range labels {
		counts[label]++
	}
	out := make([]classCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, classCount{label: label, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].label < out[j].label
	})
	return out
}

func missingToNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func missingToUnknown(v *string) string {
	if v == nil {
		return unknownCategory
	}
	return *v
}
