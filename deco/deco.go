// Package deco is the top-level decompression-planning orchestrator: it
// combines package gas's gas selection, package buhlmann's tissue-loading
// and ceiling search, and package otucns's oxygen-toxicity integration into
// a single Plan call that turns a list of planned bottom segments into a
// complete dive profile, descent through surfacing.
package deco

import (
	"github.com/m5lapp/zhl16deco/units"
)

// DiveType selects the breathing-loop model: open circuit or closed-circuit
// rebreather.
type DiveType int

const (
	OC DiveType = iota
	CCR
)

// Dive is the immutable configuration snapshot a single Plan call runs
// against: gradient factors, breathing-loop type, ascent/descent rates and
// the stop-ladder geometry.
type Dive struct {
	GFLo, GFHi   float64
	DiveType     DiveType
	DecoSetpoint float64
	AscentRate   units.Rate
	DescentRate  units.Rate
	AtmPressure  units.Pressure
	LastStop     units.Pressure
	StopSize     units.Pressure
	PartialWater float64
}

// DefaultDive returns the spec's reference defaults: GF 50/80, OC, 1013 mbar
// atmosphere, 18 m/min descent, 10 m/min ascent, a 3 m stop ladder starting
// at 3 m, and 62.7 mbar of alveolar water vapor.
func DefaultDive() Dive {
	atm := units.Millibar(1013.0)
	return Dive{
		GFLo:         0.5,
		GFHi:         0.8,
		DiveType:     OC,
		DecoSetpoint: 1.3,
		AscentRate:   units.AscentRate(10.0),
		DescentRate:  units.DescentRate(18.0),
		AtmPressure:  atm,
		LastStop:     units.PressureFromDepth(units.Meters(3.0), atm),
		StopSize:     units.PressureFromDepth(units.Meters(3.0), 0),
		PartialWater: 62.7,
	}
}
