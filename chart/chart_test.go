package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m5lapp/zhl16deco/deco"
	"github.com/m5lapp/zhl16deco/gas"
	"github.com/m5lapp/zhl16deco/otucns"
	"github.com/m5lapp/zhl16deco/tissue"
	"github.com/m5lapp/zhl16deco/units"
)

func testSegments() []deco.Segment {
	atm := units.Millibar(1013.0)
	air := gas.NewBottomGas(0.21, 0.0, 1.4)
	comps := tissue.NewSurfaceCompartments(1013.0, 62.7)

	return []deco.Segment{
		{SegmentType: gas.Down, Depth: units.PressureFromDepth(units.Meters(18), atm), RawTime: 1.8, Time: 2, Gas: air, OTUCNS: otucns.Exposure{}, Compartments: comps},
		{SegmentType: gas.Level, Depth: units.PressureFromDepth(units.Meters(18), atm), RawTime: 30.0, Time: 30, Gas: air, OTUCNS: otucns.Exposure{}, Compartments: comps},
		{SegmentType: gas.Up, Depth: atm, RawTime: 1.8, Time: 2, Gas: air, OTUCNS: otucns.Exposure{}, Compartments: comps},
	}
}

func TestSampleProfileTimeIsMonotonicNonDecreasing(t *testing.T) {
	atm := units.Millibar(1013.0)
	samples := SampleProfile(testSegments(), atm, 10.0)

	require.NotEmpty(t, samples)
	for i := 1; i < len(samples); i++ {
		assert.GreaterOrEqual(t, samples[i].TimeSec, samples[i-1].TimeSec)
	}
}

func TestSampleProfileReachesTargetDepth(t *testing.T) {
	atm := units.Millibar(1013.0)
	samples := SampleProfile(testSegments(), atm, 10.0)

	maxDepth := 0.0
	for _, s := range samples {
		if s.Depth > maxDepth {
			maxDepth = s.Depth
		}
	}
	assert.InDelta(t, 18.0, maxDepth, 0.1)
}

func TestRenderWritesAFile(t *testing.T) {
	atm := units.Millibar(1013.0)
	samples := SampleProfile(testSegments(), atm, 10.0)

	path := filepath.Join(t.TempDir(), "profile.png")
	err := Render(samples, path, 6, 4)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
