package gas

import (
	"math"
	"testing"

	"github.com/m5lapp/zhl16deco/units"
)

func TestNewBottomGasDerivedDepths(t *testing.T) {
	tests := []struct {
		name        string
		fo2, fhe    float64
		ppo2        float64
		wantMaxBar  float64
		wantMinBar  float64
	}{
		{name: "air @ 1.4", fo2: 0.21, fhe: 0.0, ppo2: 1.4, wantMaxBar: 1.4 / 0.21, wantMinBar: 1.0},
		{name: "EAN50 @ 1.6", fo2: 0.50, fhe: 0.0, ppo2: 1.6, wantMaxBar: 1.6 / 0.50, wantMinBar: 1.0},
		{name: "trimix 10/70 @ 1.2, high min ppo2", fo2: 0.10, fhe: 0.70, ppo2: 1.2, wantMaxBar: 1.2 / 0.10, wantMinBar: 0.18 / 0.10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewBottomGas(tt.fo2, tt.fhe, tt.ppo2)

			if g.FN2 != 1.0-tt.fo2-tt.fhe {
				t.Errorf("FN2: want %f; got %f", 1.0-tt.fo2-tt.fhe, g.FN2)
			}
			if math.Abs(g.MaxDepth().Bar()-tt.wantMaxBar) > 1e-9 {
				t.Errorf("MaxDepth: want %f bar; got %f", tt.wantMaxBar, g.MaxDepth().Bar())
			}
			if math.Abs(g.MinDepth().Bar()-tt.wantMinBar) > 1e-9 {
				t.Errorf("MinDepth: want %f bar; got %f", tt.wantMinBar, g.MinDepth().Bar())
			}
		})
	}
}

func TestUseGas(t *testing.T) {
	air := NewBottomGas(0.21, 0.0, 1.4)
	deco50 := NewDecoGas(0.50, 0.0)

	tests := []struct {
		name    string
		g       Gas
		depth   units.Pressure
		segType SegmentType
		want    bool
	}{
		{name: "air at 18m level", g: air, depth: units.Bar(2.8), segType: Level, want: true},
		{name: "air beyond MOD", g: air, depth: units.Bar(10.0), segType: Level, want: false},
		{name: "deco gas not usable on descent", g: deco50, depth: units.Bar(1.5), segType: Down, want: false},
		{name: "deco gas usable on ascent within window", g: deco50, depth: units.Bar(1.5), segType: Up, want: true},
		{name: "deco gas too deep even on ascent", g: deco50, depth: units.Bar(5.0), segType: Up, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.UseGas(tt.depth, tt.segType); got != tt.want {
				t.Errorf("want %v; got %v", tt.want, got)
			}
		})
	}
}

func TestEqualAndLess(t *testing.T) {
	a := NewBottomGas(0.21, 0.0, 1.4)
	b := NewBottomGas(0.2104, 0.0004, 1.4)
	c := NewDecoGas(0.50, 0.0)

	if !a.Equal(b) {
		t.Errorf("gases within 0.1%% should be equal")
	}
	if a.Less(b) || b.Less(a) {
		t.Errorf("equal gases should not order before one another")
	}
	if !a.Less(c) {
		t.Errorf("21%% should order before 50%%")
	}
}

func TestString(t *testing.T) {
	if s := NewBottomGas(0.21, 0.0, 1.4).String(); s != "21%" {
		t.Errorf("want 21%%; got %s", s)
	}
	if s := NewBottomGas(0.18, 0.45, 1.4).String(); s != "18/45" {
		t.Errorf("want 18/45; got %s", s)
	}
}
