// Package metrics evaluates probabilistic classifiers: confusion-matrix
// statistics at a decision threshold, threshold sweeps, and threshold-free
// scores over predicted probabilities.
package metrics

import (
	"context"
	"math"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/scibayes/core/discrete"
	"github.com/YuminosukeSato/scibayes/core/model"
	"github.com/YuminosukeSato/scibayes/core/parallel"
	"github.com/YuminosukeSato/scibayes/pkg/errors"
)

// ConfusionStats は閾値を固定した二値分類の混同行列と派生指標
type ConfusionStats struct {
	Threshold float64

	TP, FP, TN, FN int

	Precision float64
	Recall    float64
	Accuracy  float64
}

// N returns the number of evaluated records.
func (s *ConfusionStats) N() int { return s.TP + s.FP + s.TN + s.FN }

// AsMap returns the counts and metrics under the keys
// tp, fp, tn, fn, precision, recall and accuracy.
func (s *ConfusionStats) AsMap() map[string]float64 {
	return map[string]float64{
		"tp":        float64(s.TP),
		"fp":        float64(s.FP),
		"tn":        float64(s.TN),
		"fn":        float64(s.FN),
		"precision": s.Precision,
		"recall":    s.Recall,
		"accuracy":  s.Accuracy,
	}
}

// F1 is the harmonic mean of precision and recall, 0 when both are 0.
func (s *ConfusionStats) F1() float64 {
	if s.Precision+s.Recall == 0 {
		return 0
	}
	return 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
}

// Matrix returns the 2x2 confusion matrix with actual classes as rows and
// predicted classes as columns, negative first: [[TN FP] [FN TP]].
func (s *ConfusionStats) Matrix() *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		float64(s.TN), float64(s.FP),
		float64(s.FN), float64(s.TP),
	})
}

// ClassifierAccuracy applies classifier to every record of testset and
// predicts positive iff the score is strictly greater than threshold.
// A record is actually positive iff its target value is discrete.Int(1).
//
// Precision is 0 when there are no true positives and recall is 0 when the
// test set has no actual positives; an UndefinedMetricWarning is emitted when
// a denominator is zero.
func ClassifierAccuracy(classifier model.ScoreFunc, threshold float64, testset discrete.Dataset, target string) (*ConfusionStats, error) {
	scores, labels, err := scoreAll("ClassifierAccuracy", classifier, testset, target)
	if err != nil {
		return nil, err
	}
	s := confusion(scores, labels, threshold)
	warnUndefined(s)
	return s, nil
}

// ThresholdSweep evaluates the classifier at every threshold, scoring each
// record only once. Each kind of UndefinedMetricWarning is emitted at most
// once per sweep.
func ThresholdSweep(classifier model.ScoreFunc, thresholds []float64, testset discrete.Dataset, target string) ([]*ConfusionStats, error) {
	scores, labels, err := scoreAll("ThresholdSweep", classifier, testset, target)
	if err != nil {
		return nil, err
	}
	out := make([]*ConfusionStats, len(thresholds))
	for i, th := range thresholds {
		out[i] = confusion(scores, labels, th)
	}
	warnUndefined(out...)
	return out, nil
}

// Thresholds returns steps+1 evenly spaced thresholds covering [0, 1].
func Thresholds(steps int) []float64 {
	if steps < 1 {
		steps = 1
	}
	out := make([]float64, steps+1)
	for i := range out {
		out[i] = float64(i) / float64(steps)
	}
	return out
}

// Scores applies classifier to testset and returns the scores together with
// 0/1 labels read from target, ready for AUC, BinaryLogLoss and BrierScore.
func Scores(classifier model.ScoreFunc, testset discrete.Dataset, target string) (yTrue, yProb *mat.VecDense, err error) {
	scores, labels, err := scoreAll("Scores", classifier, testset, target)
	if err != nil {
		return nil, nil, err
	}
	y := make([]float64, len(labels))
	for i, positive := range labels {
		if positive {
			y[i] = 1
		}
	}
	return mat.NewVecDense(len(y), y), mat.NewVecDense(len(scores), scores), nil
}

func scoreAll(op string, classifier model.ScoreFunc, testset discrete.Dataset, target string) ([]float64, []bool, error) {
	if len(testset) == 0 {
		return nil, nil, errors.NewValueError(op, "empty test set")
	}

	labels := make([]bool, len(testset))
	for i, r := range testset {
		v, ok := r[target]
		if !ok {
			return nil, nil, errors.NewMissingFeatureError(op, target, i)
		}
		labels[i] = v.IsPositive()
	}

	scores := make([]float64, len(testset))
	err := parallel.ForEach(context.Background(), len(testset), func(i int) error {
		s, err := classifier(testset[i])
		if err != nil {
			return errors.Wrapf(err, "%s: scoring record %d", op, i)
		}
		scores[i] = s
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return scores, labels, nil
}

func confusion(scores []float64, labels []bool, threshold float64) *ConfusionStats {
	s := &ConfusionStats{Threshold: threshold}
	for i, score := range scores {
		predicted := score > threshold
		switch {
		case predicted && labels[i]:
			s.TP++
		case predicted && !labels[i]:
			s.FP++
		case !predicted && labels[i]:
			s.FN++
		default:
			s.TN++
		}
	}

	if s.TP > 0 {
		s.Precision = float64(s.TP) / float64(s.TP+s.FP)
	}
	if s.TP+s.FN > 0 {
		s.Recall = float64(s.TP) / float64(s.TP+s.FN)
	}
	s.Accuracy = float64(s.TP+s.TN) / float64(len(scores))
	return s
}

// warnUndefined emits one UndefinedMetricWarning per metric whose denominator
// is zero in any of stats.
func warnUndefined(stats ...*ConfusionStats) {
	noPredicted, noActual := false, false
	for _, s := range stats {
		noPredicted = noPredicted || s.TP+s.FP == 0
		noActual = noActual || s.TP+s.FN == 0
	}
	if noPredicted {
		errors.Warn(errors.NewUndefinedMetricWarning("precision", "no predicted positives", 0))
	}
	if noActual {
		errors.Warn(errors.NewUndefinedMetricWarning("recall", "no actual positives", 0))
	}
}

// AUC は ROC 曲線下面積を計算する。ラベルは0または1でなければならない。
// 片方のクラスしか含まれない場合は 0.5 を返し、UndefinedMetricWarning を出す。
func AUC(yTrue, yScore *mat.VecDense) (float64, error) {
	n, err := checkPair("AUC", yTrue, yScore)
	if err != nil {
		return 0, err
	}

	scores := make([]float64, n)
	classes := make([]bool, n)
	positives := 0
	for i := 0; i < n; i++ {
		label := yTrue.AtVec(i)
		if label != 0 && label != 1 {
			return 0, errors.NewValueError("AUC", "labels must be 0 or 1")
		}
		classes[i] = label == 1
		if classes[i] {
			positives++
		}
		scores[i] = yScore.AtVec(i)
	}
	if positives == 0 || positives == n {
		errors.Warn(errors.NewUndefinedMetricWarning("auc", "only one class present in y_true", 0.5))
		return 0.5, nil
	}

	stat.SortWeightedLabeled(scores, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, scores, classes, nil)
	return integrate.Trapezoidal(fpr, tpr), nil
}

// logLossEpsilon clips probabilities away from 0 and 1.
const logLossEpsilon = 1e-15

// BinaryLogLoss は二値交差エントロピーを計算する
func BinaryLogLoss(yTrue, yProb *mat.VecDense) (float64, error) {
	n, err := checkBinary("BinaryLogLoss", yTrue, yProb)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		p := math.Min(math.Max(yProb.AtVec(i), logLossEpsilon), 1-logLossEpsilon)
		y := yTrue.AtVec(i)
		sum += y*math.Log(p) + (1-y)*math.Log(1-p)
	}
	return -sum / float64(n), nil
}

// BrierScore is the mean squared difference between predicted probabilities
// and 0/1 outcomes.
func BrierScore(yTrue, yProb *mat.VecDense) (float64, error) {
	if _, err := checkBinary("BrierScore", yTrue, yProb); err != nil {
		return 0, err
	}
	return MSE(yTrue, yProb)
}

func checkBinary(op string, yTrue, yProb *mat.VecDense) (int, error) {
	n, err := checkPair(op, yTrue, yProb)
	if err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		if y := yTrue.AtVec(i); y != 0 && y != 1 {
			return 0, errors.NewValueError(op, "labels must be 0 or 1")
		}
	}
	return n, nil
}
