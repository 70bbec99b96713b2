package naive_bayes

import (
	"fmt"
	"math"
	"testing"

	"github.com/YuminosukeSato/scibayes/core/discrete"
	"github.com/YuminosukeSato/scibayes/pkg/errors"
)

// TestInferHandTunedModel checks posteriors against a direct recomputation
func TestInferHandTunedModel(t *testing.T) {
	prior, features := handTunedModel()

	instances := []struct {
		name           string
		f1, f2, f3, f4 int64
	}{
		{"hospital visit", 0, 1, 0, 1},
		{"password message", 1, 0, 0, 0},
		{"obvious spam", 1, 1, 1, 1},
		{"homework fixes", 0, 1, 0, 0},
	}

	for _, tc := range instances {
		t.Run(tc.name, func(t *testing.T) {
			instance := spamRecord(discrete.Str("ignored"), tc.f1, tc.f2, tc.f3, tc.f4)
			delete(instance, "Label")

			posterior, err := Infer(prior, features, instance)
			if err != nil {
				t.Fatalf("Infer failed: %v", err)
			}

			score := func(c discrete.Value) float64 {
				s := prior[c]
				for k, v := range instance {
					s *= features[k][c][v]
				}
				return s
			}
			want := score(spam) / (score(spam) + score(notSpam))

			if math.Abs(posterior[spam]-want) > 1e-9 {
				t.Errorf("P(Spam) = %v, want %v", posterior[spam], want)
			}
			if !posterior.Valid() {
				t.Errorf("posterior is not a valid distribution: %v", posterior)
			}
			if posterior[spam] <= 0 || posterior[spam] >= 1 {
				t.Errorf("P(Spam) should lie strictly between 0 and 1, got %v", posterior[spam])
			}
		})
	}
}

func TestInferKnownPosterior(t *testing.T) {
	prior, features := handTunedModel()
	instance := discrete.Record{"f1": discrete.Int(0), "f2": discrete.Int(1), "f3": discrete.Int(0), "f4": discrete.Int(1)}

	posterior, err := Infer(prior, features, instance)
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}

	// 0.4*0.5*0.3*0.4*0.99 against 0.6*0.9*0.6*0.99*0.98
	want := 0.02376 / (0.02376 + 0.3143448)
	if math.Abs(posterior[spam]-want) > 1e-9 {
		t.Errorf("P(Spam) = %v, want %v", posterior[spam], want)
	}
}

func TestInferLogMatchesInfer(t *testing.T) {
	prior, features := handTunedModel()

	for f1 := int64(0); f1 <= 1; f1++ {
		for f4 := int64(0); f4 <= 1; f4++ {
			instance := discrete.Record{"f1": discrete.Int(f1), "f2": discrete.Int(1), "f3": discrete.Int(0), "f4": discrete.Int(f4)}

			direct, err := Infer(prior, features, instance)
			if err != nil {
				t.Fatalf("Infer failed: %v", err)
			}
			logSpace, err := InferLog(prior, features, instance)
			if err != nil {
				t.Fatalf("InferLog failed: %v", err)
			}
			for c, p := range direct {
				if math.Abs(p-logSpace[c]) > 1e-9 {
					t.Errorf("f1=%d f4=%d class %s: Infer=%v InferLog=%v", f1, f4, c, p, logSpace[c])
				}
			}
		}
	}
}

func TestInferLogAvoidsUnderflow(t *testing.T) {
	a, b := discrete.Str("A"), discrete.Str("B")
	prior := discrete.Distribution{a: 0.5, b: 0.5}
	features := make(map[string]ClassConditional)
	instance := make(discrete.Record)
	for i := 0; i < 1000; i++ {
		key := fmt.Sprintf("f%d", i)
		features[key] = ClassConditional{a: binary(0.999, 0.001), b: binary(0.998, 0.002)}
		instance[key] = discrete.Int(1)
	}

	// the direct product is 0 for both classes
	_, err := Infer(prior, features, instance)
	if !errors.Is(err, errors.ErrZeroTotalWeight) {
		t.Fatalf("expected ErrZeroTotalWeight from direct products, got %v", err)
	}

	posterior, err := InferLog(prior, features, instance)
	if err != nil {
		t.Fatalf("InferLog failed: %v", err)
	}
	if !posterior.Valid() {
		t.Errorf("posterior is not valid: %v", posterior)
	}
	if posterior[b] < 0.999999 {
		t.Errorf("P(B) should dominate, got %v", posterior[b])
	}
}

func TestInferErrors(t *testing.T) {
	prior, features := handTunedModel()

	t.Run("missing feature", func(t *testing.T) {
		_, err := Infer(prior, features, discrete.Record{"f1": discrete.Int(0)})
		var missing *errors.MissingFeatureError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingFeatureError, got %v", err)
		}
		if missing.Feature != "f2" {
			t.Errorf("expected first missing feature f2, got %s", missing.Feature)
		}
	})

	t.Run("value outside feature domain", func(t *testing.T) {
		instance := discrete.Record{"f1": discrete.Int(2), "f2": discrete.Int(1), "f3": discrete.Int(0), "f4": discrete.Int(1)}
		_, err := InferLog(prior, features, instance)
		var missing *errors.MissingDomainValueError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingDomainValueError, got %v", err)
		}
	})

	t.Run("class absent from feature table", func(t *testing.T) {
		withHam := discrete.Distribution{spam: 0.3, notSpam: 0.6, discrete.Str("Ham"): 0.1}
		instance := discrete.Record{"f1": discrete.Int(0), "f2": discrete.Int(1), "f3": discrete.Int(0), "f4": discrete.Int(1)}
		_, err := Infer(withHam, features, instance)
		var missing *errors.MissingDomainValueError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingDomainValueError, got %v", err)
		}
	})

	t.Run("all scores zero", func(t *testing.T) {
		zero := map[string]ClassConditional{
			"f1": {spam: binary(1, 0), notSpam: binary(1, 0)},
		}
		_, err := Infer(prior, zero, discrete.Record{"f1": discrete.Int(1)})
		if !errors.Is(err, errors.ErrZeroTotalWeight) {
			t.Errorf("Infer: expected ErrZeroTotalWeight, got %v", err)
		}
		_, err = InferLog(prior, zero, discrete.Record{"f1": discrete.Int(1)})
		if !errors.Is(err, errors.ErrZeroTotalWeight) {
			t.Errorf("InferLog: expected ErrZeroTotalWeight, got %v", err)
		}
	})
}

// TestLearnLabelledMessages trains on the 20-message set with unit virtual counts
func TestLearnLabelledMessages(t *testing.T) {
	m, err := Learn("Label", []string{"f1", "f2", "f3", "f4"}, labelledMessages())
	if err != nil {
		t.Fatalf("Learn failed: %v", err)
	}

	if !discrete.ValidProbabilityDistribution(m.Prior) {
		t.Errorf("class prior is invalid: %v", m.Prior)
	}
	if math.Abs(m.Prior[spam]-0.5) > 1e-12 {
		t.Errorf("Spam prior = %v, want 0.5", m.Prior[spam])
	}

	for f, cc := range m.Features {
		for _, c := range []discrete.Value{spam, notSpam} {
			if !discrete.ValidProbabilityDistribution(cc[c]) {
				t.Errorf("feature %s given %s is invalid: %v", f, c, cc[c])
			}
		}
	}

	checks := []struct {
		feature string
		class   discrete.Value
		want    float64
	}{
		{"f1", spam, 7.0 / 12},
		{"f1", notSpam, 1.0 / 12},
		{"f2", spam, 7.0 / 12},
		{"f2", notSpam, 8.0 / 12},
		{"f3", notSpam, 1.0 / 12},
		{"f4", spam, 9.0 / 12},
	}
	for _, c := range checks {
		got := m.Features[c.feature][c.class][discrete.Int(1)]
		if math.Abs(got-c.want) > 1e-12 {
			t.Errorf("P(%s=1 | %s) = %v, want %v", c.feature, c.class, got, c.want)
		}
	}

	if got := m.FeatureKeys(); len(got) != 4 || got[0] != "f1" {
		t.Errorf("unexpected feature keys %v", got)
	}
	if got := m.Classes(); len(got) != 2 || got[0] != notSpam {
		t.Errorf("unexpected classes %v", got)
	}
}

func TestLearnVirtualCounts(t *testing.T) {
	data := labelledMessages()

	m, err := Learn("Label", []string{"f1"}, data,
		WithClassPriorCount(0), WithFeaturePosteriorCount(2))
	if err != nil {
		t.Fatalf("Learn failed: %v", err)
	}
	if m.Prior[spam] != 0.5 {
		t.Errorf("Spam prior = %v, want 0.5", m.Prior[spam])
	}
	// (6 + 2) / (2*2 + 10)
	if got := m.Features["f1"][spam][discrete.Int(1)]; math.Abs(got-8.0/14) > 1e-12 {
		t.Errorf("P(f1=1 | Spam) = %v, want %v", got, 8.0/14)
	}

	ml, err := Learn("Label", []string{"f1"}, data, WithFeaturePosteriorCount(0))
	if err != nil {
		t.Fatalf("Learn failed: %v", err)
	}
	if got := ml.Features["f1"][notSpam][discrete.Int(1)]; got != 0 {
		t.Errorf("maximum likelihood P(f1=1 | Not-Spam) = %v, want 0", got)
	}
}

func TestLearnClassWithoutRecords(t *testing.T) {
	ham := discrete.Str("Ham")
	m, err := Learn("Label", []string{"f1", "f2"}, labelledMessages(),
		WithClassDomain(discrete.NewDomain(spam, notSpam, ham)),
		WithFeatureDomains(map[string]*discrete.Domain{
			"f1": discrete.NewDomain(discrete.Int(0), discrete.Int(1), discrete.Int(2)),
		}),
	)
	if err != nil {
		t.Fatalf("Learn failed: %v", err)
	}

	if got := m.Prior[ham]; math.Abs(got-1.0/23) > 1e-12 {
		t.Errorf("Ham prior = %v, want 1/23", got)
	}
	hamF1 := m.Features["f1"][ham]
	if len(hamF1) != 3 || !hamF1.Valid() {
		t.Fatalf("P(f1 | Ham) should be uniform over 3 values, got %v", hamF1)
	}
	for v, p := range hamF1 {
		if math.Abs(p-1.0/3) > 1e-12 {
			t.Errorf("P(f1=%s | Ham) = %v, want 1/3", v, p)
		}
	}
	if len(m.Features["f2"][ham]) != 2 {
		t.Errorf("f2 should keep its observed domain, got %v", m.Features["f2"][ham])
	}
}

func TestLearnErrors(t *testing.T) {
	data := labelledMessages()

	_, err := Learn("Class", []string{"f1"}, data)
	var missing *errors.MissingFeatureError
	if !errors.As(err, &missing) || missing.Feature != "Class" {
		t.Errorf("expected MissingFeatureError for class key, got %v", err)
	}

	_, err = Learn("Label", []string{"f9"}, data)
	if !errors.As(err, &missing) || missing.Feature != "f9" {
		t.Errorf("expected MissingFeatureError for feature, got %v", err)
	}

	_, err = Learn("Label", []string{"f1"}, data, WithClassDomain(discrete.NewDomain(spam)))
	var domainErr *errors.MissingDomainValueError
	if !errors.As(err, &domainErr) {
		t.Errorf("expected MissingDomainValueError for undeclared class, got %v", err)
	}

	_, err = Learn("Label", []string{"f1"}, data,
		WithClassDomain(discrete.NewDomain(spam, notSpam, discrete.Str("Ham"))),
		WithFeaturePosteriorCount(0))
	if !errors.Is(err, errors.ErrZeroTotalWeight) {
		t.Errorf("expected ErrZeroTotalWeight for empty class subset without smoothing, got %v", err)
	}

	_, err = Learn("Label", []string{"f1"}, data, WithClassPriorCount(-1))
	var validation *errors.ValidationError
	if !errors.As(err, &validation) {
		t.Errorf("expected ValidationError for negative count, got %v", err)
	}
}

func TestLearnIsDeterministic(t *testing.T) {
	keys := []string{"f1", "f2", "f3", "f4"}
	first, err := Learn("Label", keys, labelledMessages())
	if err != nil {
		t.Fatalf("Learn failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Learn("Label", keys, labelledMessages())
		if err != nil {
			t.Fatalf("Learn failed: %v", err)
		}
		for _, k := range keys {
			for c, dist := range first.Features[k] {
				for v, p := range dist {
					if again.Features[k][c][v] != p {
						t.Fatalf("run %d differs at %s|%s=%s", i, k, c, v)
					}
				}
			}
		}
	}
}
