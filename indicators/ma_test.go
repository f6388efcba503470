package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMA(t *testing.T) {
	values := []float64{100, 102, 104, 106, 108, 110}

	// Last 3: 106, 108, 110
	assert.InDelta(t, 108.0, MA(values, 3), 1e-9)

	// Window larger than the series clamps.
	assert.InDelta(t, 105.0, MA(values, 10), 1e-9)
}

func TestMAEdgeCases(t *testing.T) {
	assert.Equal(t, 0.0, MA(nil, 5))
	assert.Equal(t, 0.0, MA([]float64{1, 2, 3}, 0))
	assert.Equal(t, 0.0, MA([]float64{1, 2, 3}, -1))
	assert.Equal(t, 42.0, MA([]float64{42}, 1))
}
