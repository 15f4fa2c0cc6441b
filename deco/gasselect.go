package deco

import (
	"github.com/m5lapp/zhl16deco/gas"
	"github.com/m5lapp/zhl16deco/units"
)

// findGasForSetpoint derives the effective breathing gas a CCR diver gets at
// the given oxygen setpoint and depth: the diluent directly if its own O2
// fraction already exceeds the setpoint's equivalent fraction, otherwise a
// synthetic gas at that fraction preserving the diluent's He:N2 ratio. Where
// the setpoint exceeds the ambient pressure the fraction is capped at pure
// oxygen.
func findGasForSetpoint(dil gas.Gas, setpoint float64, depth units.Pressure) gas.Gas {
	o2Fraction := setpoint / depth.Bar()
	if o2Fraction > 1.0 {
		o2Fraction = 1.0
	}
	if o2Fraction < dil.FO2 {
		return dil
	}
	heFraction := (dil.FHe / (dil.FN2 + dil.FHe)) * (1.0 - o2Fraction)
	return gas.NewBottomGas(o2Fraction, heFraction, setpoint)
}

// selectGasOC picks the open-circuit bottom/deco gas to breathe at depth for
// a segment of the given type: the usable gas with the highest FO2.
//
// If no gas is usable, the code re-scans for the one maximizing FO2*depth
// (nearest its MOD) — but this second pass applies the same usability
// filter as the first, so it can never find anything the first pass
// missed. This is a known oddity inherited unchanged from the source
// algorithm; see spec.md §9. Final fallback is air at ppO2 1.4.
func selectGasOC(gases []gas.Gas, depth units.Pressure, segType gas.SegmentType) gas.Gas {
	var ret *gas.Gas
	for i := range gases {
		g := gases[i]
		if g.UseGas(depth, segType) {
			if ret == nil || g.FO2 > ret.FO2 {
				ret = &g
			}
		}
	}

	if ret == nil {
		for i := range gases {
			g := gases[i]
			if g.UseGas(depth, segType) {
				if ret == nil || g.FO2*depth.Millibar() > ret.FO2*depth.Millibar() {
					ret = &g
				}
			}
		}
	}

	if ret != nil {
		return *ret
	}
	return gas.NewBottomGas(0.21, 0.0, 1.4)
}

// selectGasCCR picks the declared diluent — the last gas in the list with
// UseDiluent set, preserving the source's "last one wins" scan rather than
// stopping at the first — and derives the gas actually inspired at the
// given setpoint and depth.
func selectGasCCR(gases []gas.Gas, setpoint float64, depth units.Pressure) gas.Gas {
	dil := gas.NewBottomGas(0.21, 0.0, 1.4)
	for _, g := range gases {
		if g.UseDiluent {
			dil = g
		}
	}
	return findGasForSetpoint(dil, setpoint, depth)
}

// selectGas dispatches gas selection on the dive's breathing-loop type.
func selectGas(dive Dive, gases []gas.Gas, depth units.Pressure, segType gas.SegmentType, setpoint float64) gas.Gas {
	if dive.DiveType == CCR {
		return selectGasCCR(gases, setpoint, depth)
	}
	return selectGasOC(gases, depth, segType)
}
