// Package otucns computes pulmonary oxygen-toxicity exposure — Oxygen
// Tolerance Units (OTU) and CNS oxygen-toxicity percentage — for both
// constant-depth (level) and ramped (ascent/descent) dive segments.
//
// Algorithm from: Oxygen Toxicity Calculations by Erik C. Baker, P.E.
package otucns

import (
	"math"

	"github.com/m5lapp/zhl16deco/gas"
	"github.com/m5lapp/zhl16deco/units"
)

const cnsBandCount = 7

var ppo2Lo = [cnsBandCount]float64{0.5, 0.6, 0.7, 0.8, 0.9, 1.1, 1.5}
var ppo2Hi = [cnsBandCount]float64{0.6, 0.7, 0.8, 0.9, 1.1, 1.5, 100.0}
var limitSlope = [cnsBandCount]float64{-1800.0, -1500.0, -1200.0, -900.0, -600.0, -300.0, -750.0}
var limitIntercept = [cnsBandCount]float64{1800.0, 1620.0, 1410.0, 1170.0, 900.0, 570.0, 1245.0}

// Exposure is the accumulated OTU and CNS% toxicity dose for a segment.
// Exposures from consecutive segments are additive.
type Exposure struct {
	OTU float64
	CNS float64
}

// Add returns the sum of two exposures.
func (e Exposure) Add(other Exposure) Exposure {
	return Exposure{OTU: e.OTU + other.OTU, CNS: e.CNS + other.CNS}
}

// tlim returns the CNS time limit in minutes for the band containing ppo2,
// or zero if ppo2 is at or below the lowest band (0.5 bar).
func tlim(ppo2 float64) float64 {
	if ppo2 <= ppo2Lo[0] {
		return 0.0
	}
	var t float64
	for i := 0; i < cnsBandCount; i++ {
		if ppo2 > ppo2Lo[i] && ppo2 <= ppo2Hi[i] {
			t = limitSlope[i]*ppo2 + limitIntercept[i]
		}
	}
	return t
}

// Level returns the OTU/CNS exposure for a duration t (minutes) spent at a
// constant depth breathing gas g, per spec.md §4.4.
func Level(depth units.Pressure, t float64, g gas.Gas) Exposure {
	ppo2 := g.FO2 * depth.Bar()

	if ppo2 <= 0.5 {
		return Exposure{}
	}

	otu := t * math.Pow(0.5/(ppo2-0.5), -5.0/6.0)

	cns := 0.0
	if limit := tlim(ppo2); limit > 0.0 {
		cns = t / limit
	}

	return Exposure{OTU: otu, CNS: cns * 100.0}
}

// Ramp returns the OTU/CNS exposure for a linear depth change from fromDepth
// to toDepth at the given signed rate, breathing gas g, per spec.md §4.4.
func Ramp(fromDepth, toDepth units.Pressure, rate units.Rate, g gas.Gas) Exposure {
	t := (toDepth.Millibar() - fromDepth.Millibar()) / rate.MillibarPerMin()
	maxAta := math.Max(fromDepth.Bar(), toDepth.Bar())
	minAta := math.Min(fromDepth.Bar(), toDepth.Bar())
	maxPO2 := g.FO2 * maxAta
	minPO2 := g.FO2 * minAta

	if maxPO2 <= 0.5 || maxPO2 == minPO2 || t == 0.0 {
		return Exposure{}
	}

	lowPO2 := minPO2
	if lowPO2 < 0.5 {
		lowPO2 = 0.5
	}
	tInToxicRegion := t * (maxPO2 - lowPO2) / (maxPO2 - minPO2)

	otu := 3.0 / 11.0 * (tInToxicRegion / (maxPO2 - lowPO2)) *
		(math.Pow((maxPO2-0.5)/0.5, 11.0/6.0) - math.Pow((lowPO2-0.5)/0.5, 11.0/6.0))

	ascending := fromDepth > toDepth
	cns := 0.0
	for i := 0; i < cnsBandCount; i++ {
		if !(maxPO2 > ppo2Lo[i] && lowPO2 <= ppo2Hi[i]) {
			continue
		}

		// po2Start/po2End are the ppO2 at which this ramp enters and leaves
		// band i, oriented by direction of travel (ascending ramps sweep
		// from high to low ppO2 within the band).
		var po2Start, po2End float64
		switch {
		case maxPO2 >= ppo2Hi[i] && lowPO2 < ppo2Lo[i]:
			po2Start, po2End = pick(ascending, ppo2Hi[i], ppo2Lo[i])
		case maxPO2 < ppo2Hi[i] && lowPO2 <= ppo2Lo[i]:
			po2Start, po2End = pick(ascending, maxPO2, ppo2Lo[i])
		case lowPO2 > ppo2Lo[i] && maxPO2 >= ppo2Hi[i]:
			po2Start, po2End = pick(ascending, ppo2Hi[i], lowPO2)
		default:
			po2Start, po2End = pick(ascending, maxPO2, lowPO2)
		}

		deltaPO2 := po2End - po2Start
		bandTime := tInToxicRegion * math.Abs(deltaPO2) / (maxPO2 - lowPO2)
		if bandTime <= 0.0 {
			continue
		}

		tlimStart := limitSlope[i]*po2Start + limitIntercept[i]
		mk := limitSlope[i] * (deltaPO2 / bandTime)
		cns += 1.0 / mk * (math.Log(math.Abs(tlimStart+mk*bandTime)) - math.Log(math.Abs(tlimStart)))
	}

	return Exposure{OTU: otu, CNS: cns * 100.0}
}

// pick returns (hi, lo) if ascending, else (lo, hi) — the ramp's ppO2 moves
// from hi to lo on ascent and lo to hi on descent.
func pick(ascending bool, hi, lo float64) (float64, float64) {
	if ascending {
		return hi, lo
	}
	return lo, hi
}
