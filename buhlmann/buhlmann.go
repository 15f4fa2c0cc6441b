// Package buhlmann implements the Bühlmann ZH-L16 tissue-compartment update
// equations (Haldane for constant-depth segments, Schreiner for ramps), the
// gradient-factor-scaled ceiling calculation, and the next-decompression-stop
// search. It is the numerical heart the deco package's ascent loop drives.
//
// Sources of information used for the Bühlmann ZH-L16 algorithm:
//   http://www.lizardland.co.uk/DIYDeco.html
//   https://wrobell.dcmod.org/decotengu/model.html
package buhlmann

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/m5lapp/zhl16deco/gas"
	"github.com/m5lapp/zhl16deco/tissue"
	"github.com/m5lapp/zhl16deco/units"
)

// haldane computes the new inert-gas tissue pressure (bar) after t minutes at
// a constant ambient pressure pAmb (bar), per spec.md §4.1's level update:
//
//	P(t) = P0 + (PI - P0) * (1 - 2^(-t/h))
func haldane(p0, pAmb, partialWaterBar, fi, halfTime, t float64) float64 {
	pI := (pAmb - partialWaterBar) * fi
	return p0 + (pI-p0)*(1.0-math.Pow(2.0, -t/halfTime))
}

// schreiner computes the new inert-gas tissue pressure (bar) after t minutes
// of a linear-rate depth change starting at ambient pressure pAmb (bar), per
// spec.md §4.1's ramp update:
//
//	P(t) = PI + r(t - 1/k) - (PI - P0 - r/k) * e^(-kt)
func schreiner(p0, pAmb, partialWaterBar, rate, fi, halfTime, t float64) float64 {
	pI := (pAmb - partialWaterBar) * fi
	k := math.Ln2 / halfTime
	r := rate * fi
	return pI + r*(t-1.0/k) - (pI-p0-r/k)*math.Exp(-k*t)
}

// Level advances every compartment by t minutes at a constant depth breathing
// gas g, using the Haldane equation. A non-positive duration is a no-op and
// returns comps unchanged, per spec.md §4.1.
func Level(comps tissue.Compartments, depth units.Pressure, partialWaterMbar, t float64, g gas.Gas, tc tissue.Constants) tissue.Compartments {
	if t <= 0.0 {
		return comps
	}

	pAmb := depth.Bar()
	pw := partialWaterMbar / 1000.0
	out := comps
	for i := 0; i < tissue.Count; i++ {
		out.N2[i] = haldane(comps.N2[i], pAmb, pw, g.FN2, tc[i].N2HalfTime, t)
		out.He[i] = haldane(comps.He[i], pAmb, pw, g.FHe, tc[i].HeHalfTime, t)
	}
	return out
}

// Ramp advances every compartment through a linear depth change from
// fromDepth to toDepth at the given signed rate, breathing gas g, using the
// Schreiner equation. It returns the updated compartments and the raw
// duration in minutes the ramp took.
func Ramp(comps tissue.Compartments, fromDepth, toDepth units.Pressure, rate units.Rate, partialWaterMbar float64, g gas.Gas, tc tissue.Constants) (tissue.Compartments, float64) {
	t := (toDepth.Millibar() - fromDepth.Millibar()) / rate.MillibarPerMin()
	pAmb := fromDepth.Bar()
	pw := partialWaterMbar / 1000.0
	rateBar := rate.BarPerMin()

	out := comps
	for i := 0; i < tissue.Count; i++ {
		out.N2[i] = schreiner(comps.N2[i], pAmb, pw, rateBar, g.FN2, tc[i].N2HalfTime, t)
		out.He[i] = schreiner(comps.He[i], pAmb, pw, rateBar, g.FHe, tc[i].HeHalfTime, t)
	}
	return out, t
}

// Ceiling returns the shallowest absolute pressure the diver may ascend to
// given the current compartment loading and gradient factor gf, clamped to
// atm. Per spec.md §4.2, each compartment's N2/He loadings are combined into
// a single (a, b) pair by inert-pressure-weighted average before the
// per-compartment ceiling is computed; the dive ceiling is the max across
// compartments.
func Ceiling(comps tissue.Compartments, tc tissue.Constants, atm units.Pressure, gf float64) units.Pressure {
	ceilingBar := 0.0
	for i := 0; i < tissue.Count; i++ {
		pn2, phe := comps.N2[i], comps.He[i]
		total := pn2 + phe
		if total <= 0.0 {
			chk.Panic("compartment %d has non-positive total inert gas pressure (%v); compartments must be preloaded to surface equilibrium", i, total)
		}

		a := (tc[i].N2A*pn2 + tc[i].HeA*phe) / total
		b := (tc[i].N2B*pn2 + tc[i].HeB*phe) / total
		ceil := (total - gf*a) / (gf/b - gf + 1.0)
		if ceil > ceilingBar {
			ceilingBar = ceil
		}
	}

	stop := units.Bar(ceilingBar)
	if stop < atm {
		return atm
	}
	return stop
}

// NextStop returns the depth of the next mandatory decompression stop: atm
// if the diver may surface directly, lastStop if the ceiling has cleared to
// shallower than the first stop depth, or otherwise the next multiple of
// stopSize above lastStop that is at least as deep as the ceiling.
func NextStop(comps tissue.Compartments, tc tissue.Constants, atm, lastStop, stopSize units.Pressure, gf float64) units.Pressure {
	ceil := Ceiling(comps, tc, atm, gf)
	if ceil <= atm {
		return atm
	}
	if ceil <= lastStop {
		return lastStop
	}

	i := lastStop.Millibar() + stopSize.Millibar()
	for ceil.Millibar() > i {
		i += stopSize.Millibar()
	}
	return units.Millibar(i)
}

// GFSlope computes the slope of the gradient-factor interpolation between
// gfLo at firstStop and gfHi at the surface (atm), per spec.md §4.2.
func GFSlope(gfLo, gfHi float64, firstStop, atm units.Pressure) float64 {
	return (gfHi - gfLo) / -(firstStop.Millibar() - atm.Millibar())
}

// NextGF returns the gradient factor to use at the given candidate stop
// depth, linearly interpolated using the slope from GFSlope. Depths at or
// shallower than one stop above the surface use gfHi directly.
func NextGF(slope, gfHi float64, atm, stopSize, stop units.Pressure) float64 {
	x := stop.Millibar() - stopSize.Millibar() - atm.Millibar()
	if x < 0.0 {
		return gfHi
	}
	return slope*x + gfHi
}
