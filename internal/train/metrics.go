package train

// ClassReport holds per-class evaluation figures.
type ClassReport struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1-score"`
	Support   int     `json:"support"`
}

// Metric name constants.
const (
	MetricAccuracy       = "accuracy"
	MetricF1Macro        = "f1_score_macro"
	MetricF1Weighted     = "f1_score_weighted"
	MetricPrecisionMacro = "precision_macro"
	MetricRecallMacro    = "recall_macro"
)

// Evaluate computes the fixed metric set plus a full per-class report.
// yTrue and yPred hold class indices into classes.
func Evaluate(yTrue, yPred []int, classes []string) (map[string]float64, map[string]ClassReport) {
	n := len(yTrue)
	nClasses := len(classes)

	tp := make([]int, nClasses)
	fp := make([]int, nClasses)
	fn := make([]int, nClasses)
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
			tp[yTrue[i]]++
			continue
		}
		fp[yPred[i]]++
		fn[yTrue[i]]++
	}

	report := make(map[string]ClassReport, nClasses)
	var precSum, recSum, f1Sum, f1Weighted float64
	for k, class := range classes {
		prec := safeDiv(float64(tp[k]), float64(tp[k]+fp[k]))
		rec := safeDiv(float64(tp[k]), float64(tp[k]+fn[k]))
		f1 := 0.0
		if prec+rec > 0 {
			f1 = 2 * prec * rec / (prec + rec)
		}
		support := tp[k] + fn[k]
		report[class] = ClassReport{Precision: prec, Recall: rec, F1: f1, Support: support}

		precSum += prec
		recSum += rec
		f1Sum += f1
		f1Weighted += f1 * float64(support)
	}

	metrics := map[string]float64{
		MetricAccuracy:       safeDiv(float64(correct), float64(n)),
		MetricF1Macro:        f1Sum / float64(nClasses),
		MetricF1Weighted:     safeDiv(f1Weighted, float64(n)),
		MetricPrecisionMacro: precSum / float64(nClasses),
		MetricRecallMacro:    recSum / float64(nClasses),
	}
	return metrics, report
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
