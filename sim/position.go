package sim

// Position is the open lot for one instrument. Qty is never negative; this
// engine does not short. AvgPrice is meaningful only while Qty > 0 and is
// reset to 0 when the lot fully closes.
type Position struct {
	Symbol   string
	Qty      float64
	AvgPrice float64
}

func (p Position) MarketValue(lastPrice float64) float64 {
	return p.Qty * lastPrice
}

func (p Position) UnrealizedPL(lastPrice float64) float64 {
	return (lastPrice - p.AvgPrice) * p.Qty
}
