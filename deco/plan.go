package deco

import (
	"github.com/m5lapp/zhl16deco/buhlmann"
	"github.com/m5lapp/zhl16deco/gas"
	"github.com/m5lapp/zhl16deco/otucns"
	"github.com/m5lapp/zhl16deco/tissue"
	"github.com/m5lapp/zhl16deco/units"
)

// transition computes one descent or ascent ramp from fromDepth to toDepth at
// the given signed rate, selecting gas at the target depth and updating
// compartments via the Schreiner equation. Ascent and descent are the same
// computation in this engine; the sign of rate alone determines the emitted
// SegmentType.
func transition(dive Dive, constants tissue.Constants, gases []gas.Gas, rate units.Rate, fromDepth, toDepth units.Pressure, setpoint float64, compsIn tissue.Compartments) (tissue.Compartments, Segment) {
	segType := gas.Down
	if rate.MillibarPerMin() < 0.0 {
		segType = gas.Up
	}

	g := selectGas(dive, gases, toDepth, segType, setpoint)
	compsOut, t := buhlmann.Ramp(compsIn, fromDepth, toDepth, rate, dive.PartialWater, g, constants)
	oc := otucns.Ramp(fromDepth, toDepth, rate, g)

	seg := Segment{
		SegmentType:  segType,
		Depth:        toDepth,
		RawTime:      t,
		Time:         ceilTime(t),
		Gas:          g,
		Ceiling:      0,
		OTUCNS:       oc,
		Setpoint:     setpoint,
		Compartments: compsOut.Copy(),
	}
	return compsOut, seg
}

// bottomSegment computes one level (bottom) phase at depth for the given
// duration. The ceiling it reports is evaluated against the compartments on
// entry, matching the source's convention of reporting the ceiling the diver
// faced going into the segment.
func bottomSegment(dive Dive, constants tissue.Constants, gases []gas.Gas, depth units.Pressure, t float64, setpoint float64, compsIn tissue.Compartments) (tissue.Compartments, Segment) {
	g := selectGas(dive, gases, depth, gas.Level, setpoint)
	compsOut := buhlmann.Level(compsIn, depth, dive.PartialWater, t, g, constants)
	ceiling := buhlmann.Ceiling(compsIn, constants, dive.AtmPressure, dive.GFLo)
	oc := otucns.Level(depth, t, g)

	seg := Segment{
		SegmentType:  gas.Level,
		Depth:        depth,
		RawTime:      t,
		Time:         ceilTime(t),
		Gas:          g,
		Ceiling:      int32(ceiling.Millibar()),
		OTUCNS:       oc,
		Setpoint:     setpoint,
		Compartments: compsOut.Copy(),
	}
	return compsOut, seg
}

// popLast removes and returns the last element of segments, or nil if empty.
func popLast(segments []Segment) ([]Segment, *Segment) {
	if len(segments) == 0 {
		return segments, nil
	}
	n := len(segments) - 1
	seg := segments[n]
	return segments[:n], &seg
}

// mergeAscends combines a newly-computed ascent segment with the previous
// segment in the profile when both are UP segments on the same gas, summing
// raw time and oxygen-toxicity exposure and re-ceiling the integer time.
// Otherwise it returns both segments unchanged, prevSeg first.
func mergeAscends(prevSeg *Segment, newSeg Segment) []Segment {
	if prevSeg != nil && prevSeg.SegmentType == gas.Up && prevSeg.Gas.Equal(newSeg.Gas) {
		t := newSeg.RawTime + prevSeg.RawTime
		merged := newSeg
		merged.RawTime = t
		merged.Time = ceilTime(t)
		merged.OTUCNS = newSeg.OTUCNS.Add(prevSeg.OTUCNS)
		return []Segment{merged}
	}
	if prevSeg != nil {
		return []Segment{*prevSeg, newSeg}
	}
	return []Segment{newSeg}
}

// calcBottomSegment runs the stop integrator: it applies one-minute LEVEL
// updates (the first shortened by timeIn, a fractional credit carried over
// from a short ascent ramp) at depth until the ceiling clears below depth,
// returning the updated compartments and the total whole-minute duration
// spent at the stop.
func calcBottomSegment(dive Dive, compsIn tissue.Compartments, constants tissue.Constants, g gas.Gas, depth units.Pressure, gf, timeIn float64) (tissue.Compartments, float64) {
	compsOut := compsIn
	time := 0.0
	first := true

	for {
		segTime := 1.0
		if first {
			segTime = 1.0 - timeIn
		}
		compsOut = buhlmann.Level(compsOut, depth, dive.PartialWater, segTime, g, constants)
		time += 1.0
		first = false

		nfs := buhlmann.NextStop(compsOut, constants, dive.AtmPressure, dive.LastStop, dive.StopSize, gf)
		if nfs < depth {
			break
		}
	}

	return compsOut, time
}

// initialSegments walks the user-supplied bottom segments from the surface,
// emitting a transition ramp then a level phase for each, per spec.md §4.5
// phase 1.
func initialSegments(dive Dive, compartments tissue.Compartments, constants tissue.Constants, segmentsIn []SegmentIn, gases []gas.Gas) ([]Segment, tissue.Compartments, units.Pressure) {
	compsOut := compartments
	var segments []Segment
	lastDepth := dive.AtmPressure

	for _, s := range segmentsIn {
		depth := units.PressureFromDepth(s.Depth, dive.AtmPressure)

		rate := dive.AscentRate
		if lastDepth < depth {
			rate = dive.DescentRate
		}
		var seg Segment
		compsOut, seg = transition(dive, constants, gases, rate, lastDepth, depth, s.Setpoint, compsOut)
		rawTime := seg.RawTime
		segments = append(segments, seg)

		var bseg Segment
		compsOut, bseg = bottomSegment(dive, constants, gases, depth, s.Time-rawTime, s.Setpoint, compsOut)
		bseg.Time = ceilTime(s.Time - float64(ceilTime(rawTime)))
		segments = append(segments, bseg)

		lastDepth = depth
	}

	return segments, compsOut, lastDepth
}

// ascendToFirstStop raises the diver directly to the first mandatory
// decompression stop (computed at gf_lo), merging consecutive ascent
// segments, per spec.md §4.5 phase 2.
func ascendToFirstStop(dive Dive, compartments tissue.Compartments, constants tissue.Constants, gases []gas.Gas, depth units.Pressure) ([]Segment, tissue.Compartments, units.Pressure) {
	lastDepth := depth
	var segments []Segment
	compsOut := compartments
	fs := buhlmann.NextStop(compsOut, constants, dive.AtmPressure, dive.LastStop, dive.StopSize, dive.GFLo)

	for {
		var seg Segment
		compsOut, seg = transition(dive, constants, gases, dive.AscentRate, lastDepth, fs, dive.DecoSetpoint, compsOut)

		var prev *Segment
		segments, prev = popLast(segments)
		segments = append(segments, mergeAscends(prev, seg)...)

		lastDepth = fs
		fs = buhlmann.NextStop(compsOut, constants, dive.AtmPressure, dive.LastStop, dive.StopSize, dive.GFLo)
		if fs >= lastDepth {
			break
		}
	}

	lastDepth = fs
	return segments, compsOut, lastDepth
}

// calcDecoInt runs the deco ladder: ascend to each successively shallower
// stop as the gradient factor relaxes towards the surface, waiting out each
// stop with calcBottomSegment when the ceiling hasn't yet cleared past it,
// per spec.md §4.5 phase 3. It appends to segments, so its first ascent can
// merge with the last ascent already in the profile, and it returns once the
// final ascent has reached the surface.
func calcDecoInt(dive Dive, compsIn tissue.Compartments, constants tissue.Constants, gases []gas.Gas, segments []Segment, lastDepthIn units.Pressure, gf, gfSlope float64) ([]Segment, tissue.Compartments) {
	ngf := gf
	lastDepth := lastDepthIn
	compsOut := compsIn
	var nfs units.Pressure

	for {
		fs := buhlmann.NextStop(compsOut, constants, dive.AtmPressure, dive.LastStop, dive.StopSize, ngf)

		if fs < lastDepth {
			var seg Segment
			compsOut, seg = transition(dive, constants, gases, dive.AscentRate, lastDepth, fs, dive.DecoSetpoint, compsOut)

			var prev *Segment
			segments, prev = popLast(segments)
			segments = append(segments, mergeAscends(prev, seg)...)
			lastDepth = fs

			last := segments[len(segments)-1]
			if last.RawTime > 1.0 && float64(last.Time) > last.RawTime {
				timeOff := float64(last.Time) - last.RawTime
				compsOut = buhlmann.Level(compsOut, fs, dive.PartialWater, timeOff, last.Gas, constants)
			}
		}

		if fs <= dive.AtmPressure {
			return segments, compsOut
		}

		ngf = buhlmann.NextGF(gfSlope, dive.GFHi, dive.AtmPressure, dive.StopSize, fs)
		nfs = buhlmann.NextStop(compsOut, constants, dive.AtmPressure, dive.LastStop, dive.StopSize, ngf)

		if nfs == fs {
			g := selectGas(dive, gases, fs, gas.Up, dive.DecoSetpoint)

			timeOff := 0.0
			if len(segments) > 0 {
				last := segments[len(segments)-1]
				if last.SegmentType != gas.Level && last.RawTime < 1.0 {
					timeOff = last.RawTime
				}
			}
			if timeOff > 0.0 {
				segments = segments[:len(segments)-1]
			}

			newComps, t := calcBottomSegment(dive, compsOut, constants, g, fs, ngf, timeOff)
			compsOut = newComps
			nfs = buhlmann.NextStop(compsOut, constants, dive.AtmPressure, dive.LastStop, dive.StopSize, ngf)
			oc := otucns.Level(fs, t, g)
			lastDepth = fs

			segments = append(segments, Segment{
				SegmentType:  gas.Level,
				Depth:        fs,
				RawTime:      t,
				Time:         ceilTime(t),
				Gas:          g,
				Ceiling:      0,
				OTUCNS:       oc,
				Setpoint:     dive.DecoSetpoint,
				Compartments: compsOut.Copy(),
			})
		}

	}
}

// Plan computes a full dive profile for the given planned bottom segments:
// the descent/level phases the diver asked for, then the ascent profile with
// whatever decompression stops the tissue loading and gradient factors
// require. It returns ErrNoSegments if segmentsIn is empty.
func Plan(dive Dive, compartments tissue.Compartments, constants tissue.Constants, segmentsIn []SegmentIn, gases []gas.Gas) ([]Segment, error) {
	if len(segmentsIn) == 0 {
		return nil, ErrNoSegments
	}

	segments, compsOut, lastDepth := initialSegments(dive, compartments, constants, segmentsIn, gases)

	newsegs, compsOut, lastDepth := ascendToFirstStop(dive, compsOut, constants, gases, lastDepth)
	segments = append(segments, newsegs...)

	gfSlope := buhlmann.GFSlope(dive.GFLo, dive.GFHi, lastDepth, dive.AtmPressure)
	gf := buhlmann.NextGF(gfSlope, dive.GFHi, dive.AtmPressure, dive.StopSize, lastDepth)

	segments, _ = calcDecoInt(dive, compsOut, constants, gases, segments, lastDepth, gf, gfSlope)

	return segments, nil
}

// PlanA computes a dive profile using the ZH-L16 A-preset constants.
func PlanA(dive Dive, compartments tissue.Compartments, segmentsIn []SegmentIn, gases []gas.Gas) ([]Segment, error) {
	return Plan(dive, compartments, tissue.ConstantsA, segmentsIn, gases)
}

// PlanB computes a dive profile using the ZH-L16 B-preset constants.
func PlanB(dive Dive, compartments tissue.Compartments, segmentsIn []SegmentIn, gases []gas.Gas) ([]Segment, error) {
	return Plan(dive, compartments, tissue.ConstantsB, segmentsIn, gases)
}

// PlanC computes a dive profile using the ZH-L16 C-preset constants.
func PlanC(dive Dive, compartments tissue.Compartments, segmentsIn []SegmentIn, gases []gas.Gas) ([]Segment, error) {
	return Plan(dive, compartments, tissue.ConstantsC, segmentsIn, gases)
}
