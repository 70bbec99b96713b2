package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scibayes/pkg/errors"
)

func TestBaseEstimatorLifecycle(t *testing.T) {
	var est BaseEstimator
	assert.False(t, est.IsFitted())

	err := est.RequireFitted("CategoricalNB", "Predict")
	var nf *errors.NotFittedError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Predict", nf.Method)

	est.SetFitted(20, 4)
	assert.True(t, est.IsFitted())
	assert.NoError(t, est.RequireFitted("CategoricalNB", "Predict"))
	samples, features := est.Dimensions()
	assert.Equal(t, 20, samples)
	assert.Equal(t, 4, features)

	id := est.ID()
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	est.Reset()
	assert.False(t, est.IsFitted())
	assert.Equal(t, id, est.ID())
}
