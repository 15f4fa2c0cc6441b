// Package gas describes immutable breathing-gas mixtures: their oxygen and
// helium fractions, their usable ppO2 window, and the roles (bottom gas,
// decompression gas, CCR diluent) they are allowed to fill.
package gas

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/m5lapp/zhl16deco/units"
)

// SegmentType identifies the direction of travel a dive segment represents.
type SegmentType int

const (
	// Level indicates a constant-depth segment.
	Level SegmentType = iota
	// Down indicates a descending (deepening) segment.
	Down
	// Up indicates an ascending (shallowing) segment.
	Up
)

func (st SegmentType) String() string {
	switch st {
	case Down:
		return "DOWN"
	case Up:
		return "UP"
	default:
		return "LEVEL"
	}
}

// Gas is an immutable breathing-gas mixture. Construct one with NewBottomGas,
// NewDecoGas or NewDiluentGas; there is no exported way to build one with
// invalid fractions.
type Gas struct {
	FO2, FHe, FN2      float64
	PPO2, MinPPO2      float64
	UseAscent          bool
	UseDescent         bool
	UseDiluent         bool
	minDepth, maxDepth units.Pressure
}

func newGas(fo2, fhe, ppo2, minPPO2 float64, useAscent, useDescent, useDiluent bool) Gas {
	if fo2 < 0.0 {
		chk.Panic("fo2 must be non-negative, got %v", fo2)
	}
	if fhe < 0.0 {
		chk.Panic("fhe must be non-negative, got %v", fhe)
	}
	if fo2+fhe > 1.0 {
		chk.Panic("fo2 (%v) + fhe (%v) must not exceed 1.0", fo2, fhe)
	}

	min := 1.0
	if minPPO2/fo2 > min {
		min = minPPO2 / fo2
	}

	return Gas{
		FO2:        fo2,
		FHe:        fhe,
		FN2:        1.0 - (fo2 + fhe),
		PPO2:       ppo2,
		MinPPO2:    minPPO2,
		UseAscent:  useAscent,
		UseDescent: useDescent,
		UseDiluent: useDiluent,
		minDepth:   units.Bar(min),
		maxDepth:   units.Bar(ppo2 / fo2),
	}
}

// NewBottomGas returns a gas usable on both descent and ascent (but never as
// a decompression gas or CCR diluent) with the given O2/He fractions and
// target ppO2.
func NewBottomGas(fo2, fhe, ppo2 float64) Gas {
	return newGas(fo2, fhe, ppo2, 0.18, true, true, false)
}

// NewDecoGas returns a gas usable only on ascent, with a fixed target ppO2
// of 1.61 bar and a minimum ppO2 of 0.21 bar.
func NewDecoGas(fo2, fhe float64) Gas {
	return newGas(fo2, fhe, 1.61, 0.21, true, false, false)
}

// NewDiluentGas returns a CCR diluent gas: not usable on open-circuit ascent
// or descent, with a fixed target ppO2 of 1.61 bar and minimum ppO2 of 0.18
// bar.
func NewDiluentGas(fo2, fhe float64) Gas {
	return newGas(fo2, fhe, 1.61, 0.18, false, false, true)
}

// MinDepth returns the shallowest absolute pressure this gas may be breathed
// at (derived from MinPPO2).
func (g Gas) MinDepth() units.Pressure {
	return g.minDepth
}

// MaxDepth returns the deepest absolute pressure (the gas's MOD) this gas may
// be breathed at (derived from PPO2).
func (g Gas) MaxDepth() units.Pressure {
	return g.maxDepth
}

// UseGas reports whether this gas may be breathed at the given absolute
// pressure for a segment travelling in the given direction. LEVEL segments
// are always allowed within the depth window; UP requires UseAscent and DOWN
// requires UseDescent.
func (g Gas) UseGas(depth units.Pressure, segType SegmentType) bool {
	if depth < g.minDepth || depth > g.maxDepth {
		return false
	}
	switch segType {
	case Down:
		return g.UseDescent
	case Up:
		return g.UseAscent
	default:
		return true
	}
}

// roundedPermille rounds a fraction to the nearest 0.1% (i.e. nearest
// thousandth) for the purposes of equality and ordering.
func roundedPermille(f float64) int {
	return int(math.Round(f * 1000.0))
}

// Equal reports whether two gases have the same O2 and He fractions, rounded
// to the nearest 0.1%.
func (g Gas) Equal(other Gas) bool {
	return roundedPermille(g.FO2) == roundedPermille(other.FO2) &&
		roundedPermille(g.FHe) == roundedPermille(other.FHe)
}

// Less orders gases strictly by O2 fraction, then by He fraction at equal
// O2 (both rounded to the nearest 0.1%).
func (g Gas) Less(other Gas) bool {
	if g.Equal(other) {
		return false
	}
	if roundedPermille(g.FO2) != roundedPermille(other.FO2) {
		return roundedPermille(g.FO2) < roundedPermille(other.FO2)
	}
	return roundedPermille(g.FHe) < roundedPermille(other.FHe)
}

// String renders the gas the way divers write it: "21%" for a gas with no
// helium, "18/45" for a trimix.
func (g Gas) String() string {
	if g.FHe > 0.0 {
		return fmt.Sprintf("%d/%d", int(math.Round(g.FO2*100.0)), int(math.Round(g.FHe*100.0)))
	}
	return fmt.Sprintf("%d%%", int(math.Round(g.FO2*100.0)))
}
