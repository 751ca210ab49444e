package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentileLinearInterpolation(t *testing.T) {
	assertion := assert.New(t)

	values := []float64{1, 2, 3, 4, 5}

	assertion.Equal(3.0, Percentile(values, 50))
	assertion.Equal(2.6, Percentile(values, 40))
	assertion.InDelta(1.4, Percentile(values, 10), 1e-9)
	assertion.Equal(1.0, Percentile(values, 0))
	assertion.Equal(5.0, Percentile(values, 100))
}

func TestPercentileUnsortedInput(t *testing.T) {
	assertion := assert.New(t)

	values := []float64{5, 1, 4, 2, 3}

	assertion.Equal(3.0, Percentile(values, 50))
	// input must not be reordered
	assertion.Equal([]float64{5, 1, 4, 2, 3}, values)
}

func TestPercentileSingleValue(t *testing.T) {
	assertion := assert.New(t)

	assertion.Equal(42.0, Percentile([]float64{42}, 10))
	assertion.Equal(42.0, Percentile([]float64{42}, 90))
}

func TestPercentileEmptyInput(t *testing.T) {
	assertion := assert.New(t)

	assertion.True(math.IsNaN(Percentile(nil, 50)))
}

func TestPercentileUniformRange(t *testing.T) {
	assertion := assert.New(t)

	// 201 closes uniformly spread over [90, 110]
	values := make([]float64, 0, 201)
	for i := 0; i <= 200; i++ {
		values = append(values, 90+float64(i)*0.1)
	}

	assertion.InDelta(92.0, Percentile(values, 10), 1e-9)
	assertion.InDelta(108.0, Percentile(values, 90), 1e-9)
}
