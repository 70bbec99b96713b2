package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

type stringer string

func (s stringer) String() string { return string(s) }

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "scibayes: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "scibayes: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewInvalidIndexError(t *testing.T) {
	err := NewInvalidIndexError("Marginalize", 3, 2)

	want := "scibayes: Marginalize: index 3 out of range for assignments of arity 2"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var idxErr *InvalidIndexError
	if !As(err, &idxErr) {
		t.Fatal("Error should be castable to *InvalidIndexError")
	}
	if idxErr.Index != 3 || idxErr.Arity != 2 {
		t.Errorf("unexpected fields: %+v", idxErr)
	}
}

func TestZeroTotalWeightIs(t *testing.T) {
	err := NewZeroTotalWeightError("Normalize", 0)

	if !Is(err, ErrZeroTotalWeight) {
		t.Error("Expected Is(err, ErrZeroTotalWeight) to be true")
	}
	// 標準ライブラリのerrors.Isでも判定できること
	if !stderrors.Is(err, ErrZeroTotalWeight) {
		t.Error("Expected stdlib errors.Is to match ErrZeroTotalWeight")
	}

	wrapped := Wrap(err, "in Condition")
	if !Is(wrapped, ErrZeroTotalWeight) {
		t.Error("Expected wrapped zero-total error to match the sentinel")
	}
	if Is(NewValueError("Normalize", "bad"), ErrZeroTotalWeight) {
		t.Error("ValueError must not match ErrZeroTotalWeight")
	}
}

func TestNewMissingFeatureError(t *testing.T) {
	tests := []struct {
		name    string
		row     int
		wantMsg string
	}{
		{"single instance", -1, `scibayes: Infer: instance has no feature "f3"`},
		{"dataset row", 7, `scibayes: Infer: record 7 has no feature "f3"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewMissingFeatureError("Infer", "f3", tt.row)
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}
			var mfErr *MissingFeatureError
			if !As(err, &mfErr) {
				t.Error("Error should be castable to *MissingFeatureError")
			}
		})
	}
}

func TestNewMissingDomainValueError(t *testing.T) {
	err := NewMissingDomainValueError("LearnDiscrete", "", stringer("7"))
	want := "scibayes: LearnDiscrete: value 7 is not in the domain"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	err = NewMissingDomainValueError("Infer", "f1", stringer("2"))
	want = `scibayes: Infer: value 2 is not in the domain of "f1"`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("CategoricalNB", "Predict")

	want := "scibayes: CategoricalNB: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestUndefinedMetricWarningAndWarn(t *testing.T) {
	warn := NewUndefinedMetricWarning("recall", "no actual positives in the test set", 0)

	want := "'recall' is ill-defined and being set to 0.000000 due to no actual positives in the test set."
	if warn.Error() != want {
		t.Errorf("Error() = %v, want %v", warn.Error(), want)
	}

	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(func(w error) {})

	Warn(warn)
	if len(got) != 1 || got[0] != warn {
		t.Errorf("warning handler received %v", got)
	}

	// zerolog関数が設定されている場合はそちらが優先される
	var viaZerolog int
	SetZerologWarnFunc(func(error) { viaZerolog++ })
	Warn(warn)
	SetZerologWarnFunc(nil)
	if viaZerolog != 1 || len(got) != 1 {
		t.Errorf("zerolog warn func should take precedence: zerolog=%d handler=%d", viaZerolog, len(got))
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d, got %d", "Learn", 10, 0)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in Learn: expected 10, got 0"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestErrorChaining(t *testing.T) {
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("Operation", "failed", err2)

	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}
