package deco

import (
	"math"

	"github.com/m5lapp/zhl16deco/gas"
	"github.com/m5lapp/zhl16deco/otucns"
	"github.com/m5lapp/zhl16deco/tissue"
	"github.com/m5lapp/zhl16deco/units"
)

// SegmentIn is a single user-planned bottom segment: a target relative depth,
// a duration in minutes, and an oxygen setpoint (used only in CCR mode).
type SegmentIn struct {
	Depth    units.Depth
	Time     float64
	Setpoint float64
}

// Segment is one leg of a computed dive profile: a descent/ascent ramp or a
// level (bottom or deco-stop) phase, with the tissue state and oxygen
// toxicity exposure at its end.
type Segment struct {
	SegmentType  gas.SegmentType
	Depth        units.Pressure
	RawTime      float64
	Time         uint32
	Gas          gas.Gas
	Ceiling      int32
	OTUCNS       otucns.Exposure
	Setpoint     float64
	Compartments tissue.Compartments
}

// ceilTime returns t rounded up to the nearest whole minute, per spec.md §3's
// "emitted integer time is ceil(raw_time)" invariant. Negative inputs
// saturate to zero rather than wrapping, since Go's float-to-uint
// conversion is undefined for negative values.
func ceilTime(t float64) uint32 {
	if t <= 0.0 {
		return 0
	}
	return uint32(math.Ceil(t))
}
