package market

import "fmt"

// Instrument is one tradable symbol in the simulated universe.
//
// Anchor is the long-run reference level the simulated price mean-reverts
// toward; it is also the seed price at construction and after a reset.
type Instrument struct {
	Symbol string  `json:"symbol" yaml:"symbol"`
	Anchor float64 `json:"anchor" yaml:"anchor"`
}

// Universe is an ordered list of instruments. Order matters: the engine
// walks the universe in declaration order every tick.
type Universe []Instrument

// DefaultUniverse returns the built-in five-symbol demo universe.
func DefaultUniverse() Universe {
	return Universe{
		{Symbol: "SHINCHAN", Anchor: 100},
		{Symbol: "KAZAMA", Anchor: 110},
		{Symbol: "MASAO", Anchor: 120},
		{Symbol: "BOCHAN", Anchor: 130},
		{Symbol: "NENE", Anchor: 140},
	}
}

// Symbols returns the universe's symbols in declaration order.
func (u Universe) Symbols() []string {
	syms := make([]string, len(u))
	for i, in := range u {
		syms[i] = in.Symbol
	}
	return syms
}

// Validate checks that the universe is non-empty, anchors are positive and
// symbols are unique.
func (u Universe) Validate() error {
	if len(u) == 0 {
		return fmt.Errorf("universe must contain at least one instrument")
	}
	seen := make(map[string]struct{}, len(u))
	for _, in := range u {
		if in.Symbol == "" {
			return fmt.Errorf("instrument symbol must not be empty")
		}
		if in.Anchor <= 0 {
			return fmt.Errorf("instrument %s: anchor must be positive, got %v", in.Symbol, in.Anchor)
		}
		if _, dup := seen[in.Symbol]; dup {
			return fmt.Errorf("duplicate instrument symbol %q", in.Symbol)
		}
		seen[in.Symbol] = struct{}{}
	}
	return nil
}
