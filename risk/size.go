package risk

import "math"

// Inputs for sizing one buy out of available cash.
type Inputs struct {
	Cash    float64 // available cash
	RiskPct float64 // fraction of cash to deploy, e.g. 0.12
	Price   float64 // current instrument price
}

// Result of a sizing calculation.
type Result struct {
	Qty    float64 // whole-cent quantity, may be 0
	Budget float64 // cash the caller intended to deploy
}

// Size computes the quantity to buy for a risk budget of Cash*RiskPct,
// floored to a whole-cent quantity. A zero result means the budget cannot
// afford even 0.01 units and the action should be dropped.
func Size(in Inputs) Result {
	budget := in.Cash * in.RiskPct
	if budget < 0 {
		budget = 0
	}
	if in.Price <= 0 {
		return Result{Budget: budget}
	}
	return Result{
		Qty:    math.Floor(budget/in.Price*100) / 100,
		Budget: budget,
	}
}
