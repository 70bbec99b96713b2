// Package scibayes provides discrete probability tables and a Naive Bayes
// classifier for Go, with a scikit-learn-like estimator API.
//
// scibayes works on records of discrete values: every variable takes an
// integer or string value from a finite domain. It learns smoothed
// distributions from such records, combines them into class posteriors and
// evaluates the resulting classifier against a decision threshold.
//
// # Installation
//
//	go get github.com/YuminosukeSato/scibayes
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/scibayes/core/discrete"
//	    "github.com/YuminosukeSato/scibayes/sklearn/naive_bayes"
//	)
//
//	func main() {
//	    data := discrete.Dataset{
//	        {"Label": discrete.Str("Spam"), "link": discrete.Int(1)},
//	        {"Label": discrete.Str("Ham"), "link": discrete.Int(0)},
//	    }
//
//	    nb := naive_bayes.NewCategoricalNB(naive_bayes.WithFeaturePosteriorCount(1))
//	    if err := nb.Fit(data, "Label", []string{"link"}); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    p, err := nb.PredictProba(discrete.Record{"link": discrete.Int(1)})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("P(Spam):", p.Prob(discrete.Str("Spam")))
//	}
//
// # Packages
//
//   - core/discrete: values, weighted tables, distributions and additive-smoothing learning
//   - core/model: estimator state and classifier interfaces
//   - core/parallel: errgroup-based parallel loops
//   - sklearn/naive_bayes: Naive Bayes learning and inference, CategoricalNB estimator
//   - metrics: confusion statistics, threshold sweeps, AUC, log loss and plots
//   - preprocessing/games: game result features for win prediction
//   - pkg/errors, pkg/log: structured errors and logging
//
// The scibayes command (cmd/scibayes) runs the game pipeline end to end.
//
// # License
//
// scibayes is released under the MIT License.
package scibayes
