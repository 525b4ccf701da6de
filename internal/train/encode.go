package train

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Preprocessor standardizes numeric columns and one-hot encodes
// categorical columns. Fit on the training rows only; unseen categories
// at transform time encode to all zeros.
type Preprocessor struct {
	Means      []float64  `json:"means"`
	Stds       []float64  `json:"stds"`
	Categories [][]string `json:"categories"` // sorted, per categorical column
}

// Fit learns per-column means and standard deviations and the observed
// category vocabularies.
func (pp *Preprocessor) Fit(frame *Frame, rows []int) {
	nNum := len(numericFeatures)
	pp.Means = make([]float64, nNum)
	pp.Stds = make([]float64, nNum)
	for j := 0; j < nNum; j++ {
		col := make([]float64, 0, len(rows))
		for _, i := range rows {
			col = append(col, frame.Numeric[i][j])
		}
		pp.Means[j] = stat.Mean(col, nil)
		pp.Stds[j] = stat.StdDev(col, nil)
		if pp.Stds[j] == 0 || math.IsNaN(pp.Stds[j]) {
			pp.Stds[j] = 1
		}
	}

	pp.Categories = make([][]string, len(categoricalFeatures))
	for j := range categoricalFeatures {
		seen := map[string]bool{}
		for _, i := range rows {
			seen[frame.Categorical[i][j]] = true
		}
		vocab := make([]string, 0, len(seen))
		for category := range seen {
			vocab = append(vocab, category)
		}
		sort.Strings(vocab)
		pp.Categories[j] = vocab
	}
}

// Transform encodes the selected rows into a dense design matrix.
func (pp *Preprocessor) Transform(frame *Frame, rows []int) [][]float64 {
	out := make([][]float64, 0, len(rows))
	for _, i := range rows {
		out = append(out, pp.TransformRow(frame.Numeric[i], frame.Categorical[i]))
	}
	return out
}

// TransformRow encodes one raw row.
func (pp *Preprocessor) TransformRow(numeric []float64, categorical []string) []float64 {
	row := make([]float64, 0, pp.Width())
	for j := range pp.Means {
		row = append(row, (numeric[j]-pp.Means[j])/pp.Stds[j])
	}
	for j, vocab := range pp.Categories {
		oneHot := make([]float64, len(vocab))
		// Unseen categories leave the block all zeros.
		for k, category := range vocab {
			if categorical[j] == category {
				oneHot[k] = 1
				break
			}
		}
		row = append(row, oneHot...)
	}
	return row
}

// Width returns the encoded feature count.
func (pp *Preprocessor) Width() int {
	width := len(pp.Means)
	for _, vocab := range pp.Categories {
		width += len(vocab)
	}
	return width
}
