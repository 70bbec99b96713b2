package games

import (
	"sort"

	"github.com/YuminosukeSato/scibayes/core/discrete"
)

// Boolean feature names.
const (
	DifferentialKindaBetter = "Differential_kinda_better"
	DifferentialMuchBetter  = "Differential_much_better"
	WinsBetter              = "wins_better"
	LossesBetter            = "losses_better"

	avgBetterSuffix = "_avg_better"
)

// differentialMargin separates a slightly better differential from a much better one.
const differentialMargin = 5.0

// BooleanRecord compares the team with its opponent and returns 0/1 features
// ready for the classifier. team_won is kept as the class variable.
//
// A difference of exactly differentialMargin is neither kinda nor much
// better, and a blank differential makes both 0.
func BooleanRecord(f Features, statVars []string) discrete.Record {
	r := discrete.Record{
		ColAtHome:  discrete.Bool(f.AtHome),
		ColAtOpp:   discrete.Bool(f.AtOpp),
		ColTeamWon: discrete.Bool(f.TeamWon),

		WinsBetter:   discrete.Bool(f.TeamWins >= f.OppWins),
		LossesBetter: discrete.Bool(f.TeamLosses > f.OppLosses),
	}

	kinda, much := false, false
	if f.TeamDifferential != nil && f.OpponentDifferential != nil {
		diff := *f.TeamDifferential - *f.OpponentDifferential
		kinda = diff > 0 && diff < differentialMargin
		much = diff > differentialMargin
	}
	r[DifferentialKindaBetter] = discrete.Bool(kinda)
	r[DifferentialMuchBetter] = discrete.Bool(much)

	for _, s := range statVars {
		for _, k := range []string{s, s + allowedSuffix} {
			r[k+avgBetterSuffix] = discrete.Bool(f.TeamAvg[k] > f.OppAvg[k])
		}
	}
	return r
}

// BooleanDataset applies BooleanRecord to every game.
func BooleanDataset(features []Features, statVars []string) discrete.Dataset {
	out := make(discrete.Dataset, len(features))
	for i, f := range features {
		out[i] = BooleanRecord(f, statVars)
	}
	return out
}

// PredictionVariables returns every variable of the dataset except classKey, sorted.
func PredictionVariables(dataset discrete.Dataset, classKey string) []string {
	var vars []string
	for _, k := range dataset.Keys() {
		if k != classKey {
			vars = append(vars, k)
		}
	}
	sort.Strings(vars)
	return vars
}

// BinaryDomain is the {0, 1} domain of every boolean feature and of team_won.
func BinaryDomain() *discrete.Domain {
	return discrete.NewDomain(discrete.Int(0), discrete.Int(1))
}

// BinaryDomains maps each key to BinaryDomain, for learning features whose
// training data may not show both values.
func BinaryDomains(keys []string) map[string]*discrete.Domain {
	out := make(map[string]*discrete.Domain, len(keys))
	for _, k := range keys {
		out[k] = BinaryDomain()
	}
	return out
}
