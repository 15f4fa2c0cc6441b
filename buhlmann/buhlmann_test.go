package buhlmann

import (
	"math"
	"testing"

	"github.com/m5lapp/zhl16deco/gas"
	"github.com/m5lapp/zhl16deco/tissue"
	"github.com/m5lapp/zhl16deco/units"
)

const partialWater = 62.7

func TestSchreinerWithZeroRateMatchesHaldane(t *testing.T) {
	p0, pAmb, pw, fi, halfTime, dur := 0.75, 2.8, partialWater/1000.0, 0.79, 54.3, 30.0

	want := haldane(p0, pAmb, pw, fi, halfTime, dur)
	got := schreiner(p0, pAmb, pw, 0.0, fi, halfTime, dur)

	if math.Abs(want-got) > 1e-12 {
		t.Errorf("Schreiner with R=0 should match Haldane; want %.12f got %.12f", want, got)
	}
}

func TestHaldaneMonotonic(t *testing.T) {
	comps := tissue.NewSurfaceCompartments(1013.0, partialWater)
	air := gas.NewBottomGas(0.21, 0.0, 1.4)
	deep := units.PressureFromDepth(units.Meters(40), units.Millibar(1013.0))

	prev := comps.N2[0]
	for _, t64 := range []float64{1, 5, 10, 30, 60} {
		updated := Level(comps, deep, partialWater, t64, air, tissue.ConstantsC)
		if updated.N2[0] <= prev {
			t.Errorf("N2 loading should strictly increase with time, at t=%v got %v <= %v", t64, updated.N2[0], prev)
		}
		prev = updated.N2[0]
	}
}

func TestHaldaneConvergesToInspiredPressure(t *testing.T) {
	comps := tissue.NewSurfaceCompartments(1013.0, partialWater)
	air := gas.NewBottomGas(0.21, 0.0, 1.4)
	deep := units.PressureFromDepth(units.Meters(40), units.Millibar(1013.0))
	pI := (deep.Bar() - partialWater/1000.0) * air.FN2

	updated := Level(comps, deep, partialWater, 20.0*tissue.ConstantsC[0].N2HalfTime, air, tissue.ConstantsC)
	if math.Abs(updated.N2[0]-pI) > 1e-6 {
		t.Errorf("after 20 half-times want convergence to %v; got %v", pI, updated.N2[0])
	}
}

func TestLevelNoOpOnNonPositiveDuration(t *testing.T) {
	comps := tissue.NewSurfaceCompartments(1013.0, partialWater)
	air := gas.NewBottomGas(0.21, 0.0, 1.4)
	deep := units.PressureFromDepth(units.Meters(40), units.Millibar(1013.0))

	updated := Level(comps, deep, partialWater, 0.0, air, tissue.ConstantsC)
	if updated != comps {
		t.Errorf("zero-duration level update should be a no-op")
	}
}

func TestCeilingAtSurfaceEquilibrium(t *testing.T) {
	atm := units.Millibar(1013.0)
	comps := tissue.NewSurfaceCompartments(1013.0, partialWater)

	ceil := Ceiling(comps, tissue.ConstantsC, atm, 0.8)
	if ceil != atm {
		t.Errorf("ceiling at surface equilibrium with gf_hi should be atm; want %v got %v", atm, ceil)
	}
}

func TestNextStopIsAtmOrAStopLadderRung(t *testing.T) {
	atm := units.Millibar(1013.0)
	lastStop := units.PressureFromDepth(units.Meters(3), atm)
	stopSize := units.Millibar(300.0)

	comps := tissue.NewSurfaceCompartments(1013.0, partialWater)
	air := gas.NewBottomGas(0.21, 0.0, 1.4)
	deep := units.PressureFromDepth(units.Meters(60), atm)
	loaded, _ := Ramp(comps, atm, deep, units.DescentRate(18), partialWater, air, tissue.ConstantsC)
	loaded = Level(loaded, deep, partialWater, 30.0, air, tissue.ConstantsC)

	stop := NextStop(loaded, tissue.ConstantsC, atm, lastStop, stopSize, 0.3)
	if stop == atm {
		return
	}

	rel := stop.Millibar() - lastStop.Millibar()
	k := rel / stopSize.Millibar()
	if k < 0 || math.Abs(k-math.Round(k)) > 1e-6 {
		t.Errorf("next stop should be atm or last_stop + k*stop_size for integer k>=0; got stop=%v k=%v", stop, k)
	}
}

func TestGFSlopeGivesGFLoAtFirstStop(t *testing.T) {
	atm := units.Millibar(1013.0)
	firstStop := units.PressureFromDepth(units.Meters(21), atm)
	stopSize := units.Millibar(300.0)

	slope := GFSlope(0.5, 0.8, firstStop, atm)
	// next_gf is evaluated one stop shallower than "the surface stop"
	// offset baked into the formula (spec.md §9): GF at the surface-most
	// stop (one stop_size above atm) equals gf_hi, and GF at first_stop
	// plus stop_size equals gf_lo by construction of the slope.
	gfAtFirstStopPlusOneRung := NextGF(slope, 0.8, atm, stopSize, firstStop+units.Pressure(stopSize))
	if math.Abs(gfAtFirstStopPlusOneRung-0.5) > 1e-9 {
		t.Errorf("want gf_lo (0.5) at first_stop+stop_size; got %v", gfAtFirstStopPlusOneRung)
	}
}
