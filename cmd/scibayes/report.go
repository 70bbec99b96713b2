package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/YuminosukeSato/scibayes/metrics"
	"github.com/YuminosukeSato/scibayes/sklearn/naive_bayes"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	okColor     = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed, color.Bold)
)

func setColor(disabled bool) {
	if disabled {
		color.NoColor = true
	}
}

func printModel(w io.Writer, m *naive_bayes.Model) {
	headerColor.Fprintf(w, "P(%s)\n", m.ClassKey)
	for _, c := range m.Classes() {
		fmt.Fprintf(w, "  %s=%s  %.4f\n", m.ClassKey, c, m.Prior.Prob(c))
	}

	for _, key := range m.FeatureKeys() {
		headerColor.Fprintf(w, "P(%s | %s)\n", key, m.ClassKey)
		for _, c := range m.Classes() {
			given := m.Features[key][c]
			for _, v := range given.Values() {
				fmt.Fprintf(w, "  %s=%s | %s=%s  %.4f\n", key, v, m.ClassKey, c, given.Prob(v))
			}
		}
	}
}

func printConfusion(w io.Writer, s *metrics.ConfusionStats) {
	headerColor.Fprintf(w, "threshold %.2f on %d games\n", s.Threshold, s.N())
	fmt.Fprintf(w, "  %-10s %6s %6s\n", "", "pred 0", "pred 1")
	fmt.Fprintf(w, "  %-10s %6d %6d\n", "actual 0", s.TN, s.FP)
	fmt.Fprintf(w, "  %-10s %6d %6d\n", "actual 1", s.FN, s.TP)
	fmt.Fprintf(w, "  precision %.4f  recall %.4f  accuracy %s  f1 %.4f\n",
		s.Precision, s.Recall, accuracyText(s.Accuracy), s.F1())
}

// accuracyText colors accuracy by whether it beats a coin flip.
func accuracyText(acc float64) string {
	text := fmt.Sprintf("%.4f", acc)
	if acc > 0.5 {
		return okColor.Sprint(text)
	}
	return warnColor.Sprint(text)
}

func printScores(w io.Writer, auc, logLoss, brier float64) {
	headerColor.Fprintln(w, "probability scores")
	fmt.Fprintf(w, "  auc %.4f  log loss %.4f  brier %.4f\n", auc, logLoss, brier)
}

func printSweep(w io.Writer, sweep []*metrics.ConfusionStats) {
	headerColor.Fprintln(w, "threshold sweep")
	fmt.Fprintf(w, "  %9s %9s %9s %9s\n", "threshold", "precision", "recall", "accuracy")
	for _, s := range sweep {
		fmt.Fprintf(w, "  %9.2f %9.4f %9.4f %9.4f\n", s.Threshold, s.Precision, s.Recall, s.Accuracy)
	}
}
