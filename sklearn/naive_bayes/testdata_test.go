package naive_bayes

import "github.com/YuminosukeSato/scibayes/core/discrete"

var (
	spam    = discrete.Str("Spam")
	notSpam = discrete.Str("Not-Spam")
)

func spamRecord(label discrete.Value, f1, f2, f3, f4 int64) discrete.Record {
	return discrete.Record{
		"Label": label,
		"f1":    discrete.Int(f1),
		"f2":    discrete.Int(f2),
		"f3":    discrete.Int(f3),
		"f4":    discrete.Int(f4),
	}
}

// labelledMessages is the 20-message training set: 10 Not-Spam then 10 Spam.
func labelledMessages() discrete.Dataset {
	return discrete.Dataset{
		spamRecord(notSpam, 0, 1, 0, 1),
		spamRecord(notSpam, 0, 1, 0, 1),
		spamRecord(notSpam, 0, 1, 0, 1),
		spamRecord(notSpam, 0, 1, 0, 0),
		spamRecord(notSpam, 0, 1, 0, 1),
		spamRecord(notSpam, 0, 0, 0, 1),
		spamRecord(notSpam, 0, 0, 0, 1),
		spamRecord(notSpam, 0, 0, 0, 1),
		spamRecord(notSpam, 0, 1, 0, 1),
		spamRecord(notSpam, 0, 1, 0, 1),
		spamRecord(spam, 0, 1, 0, 1),
		spamRecord(spam, 1, 0, 0, 0),
		spamRecord(spam, 1, 1, 1, 1),
		spamRecord(spam, 1, 1, 1, 0),
		spamRecord(spam, 0, 1, 0, 1),
		spamRecord(spam, 0, 1, 0, 1),
		spamRecord(spam, 0, 1, 0, 1),
		spamRecord(spam, 1, 0, 1, 1),
		spamRecord(spam, 1, 0, 1, 1),
		spamRecord(spam, 1, 0, 1, 1),
	}
}

func binary(p0, p1 float64) discrete.Distribution {
	return discrete.Distribution{discrete.Int(0): p0, discrete.Int(1): p1}
}

// handTunedModel is a fixed spam model with prior {Spam: 0.4, Not-Spam: 0.6}.
func handTunedModel() (discrete.Distribution, map[string]ClassConditional) {
	prior := discrete.Distribution{spam: 0.4, notSpam: 0.6}
	features := map[string]ClassConditional{
		"f1": {spam: binary(0.5, 0.5), notSpam: binary(0.9, 0.1)},
		"f2": {spam: binary(0.7, 0.3), notSpam: binary(0.4, 0.6)},
		"f3": {spam: binary(0.4, 0.6), notSpam: binary(0.99, 0.01)},
		"f4": {spam: binary(0.01, 0.99), notSpam: binary(0.02, 0.98)},
	}
	return prior, features
}
