package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSize(t *testing.T) {
	res := Size(Inputs{Cash: 10_000, RiskPct: 0.12, Price: 100})
	assert.Equal(t, 1200.0, res.Budget)
	assert.Equal(t, 12.0, res.Qty)
}

func TestSizeFloorsToWholeCents(t *testing.T) {
	// budget 1200, price 110 -> 10.9090..., floored to 10.90
	res := Size(Inputs{Cash: 10_000, RiskPct: 0.12, Price: 110})
	assert.Equal(t, 10.90, res.Qty)
}

func TestSizeZeroWhenBudgetTooSmall(t *testing.T) {
	res := Size(Inputs{Cash: 0.5, RiskPct: 0.01, Price: 100})
	assert.Equal(t, 0.0, res.Qty)
}

func TestSizeDegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, Size(Inputs{Cash: -100, RiskPct: 0.12, Price: 100}).Qty)
	assert.Equal(t, 0.0, Size(Inputs{Cash: 100, RiskPct: 0.12, Price: 0}).Qty)
}
