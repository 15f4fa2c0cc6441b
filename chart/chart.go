// Package chart samples a computed dive profile at a fixed time resolution
// and renders it to a PNG depth-vs-time plot, generalizing the teacher's
// unused ChartProfile/ProfileSample/walkTransition trio into a standalone
// step that walks deco.Segments instead of re-simulating a DivePlan.
package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/m5lapp/zhl16deco/deco"
	"github.com/m5lapp/zhl16deco/gas"
	"github.com/m5lapp/zhl16deco/units"
)

// Sample is one point of a sampled dive profile: elapsed time in seconds,
// depth in metres, and the ceiling (metres, 0 if clear) at that instant.
type Sample struct {
	TimeSec float64
	Depth   float64
	Ceiling float64
}

// SampleProfile walks a finished profile produced by deco.Plan, interpolating each
// segment at the given resolution (seconds) into a slice of Samples.
// Transition (DOWN/UP) segments are linearly interpolated between their
// start and end depth; LEVEL segments hold at a constant depth.
func SampleProfile(segments []deco.Segment, atm units.Pressure, resolution float64) []Sample {
	var samples []Sample
	var currDepth float64
	var currTime float64
	samples = append(samples, Sample{TimeSec: currTime, Depth: currDepth})

	for _, seg := range segments {
		targetDepth := seg.Depth.Depth(atm).Meters()
		ceilingMeters := 0.0
		if seg.Ceiling > 0 {
			ceilingMeters = units.Millibar(float64(seg.Ceiling)).Depth(atm).Meters()
		}

		duration := seg.RawTime * 60.0
		if duration <= 0.0 {
			continue
		}

		steps := int(duration / resolution)
		startDepth := currDepth
		for i := 1; i <= steps; i++ {
			frac := float64(i) / float64(steps)
			depth := startDepth
			if seg.SegmentType != gas.Level {
				depth = startDepth + (targetDepth-startDepth)*frac
			} else {
				depth = targetDepth
			}
			currTime += resolution
			samples = append(samples, Sample{TimeSec: currTime, Depth: depth, Ceiling: ceilingMeters})
		}
		currDepth = targetDepth
	}

	return samples
}

// Render draws a depth-vs-time line plot of samples (depth inverted so the
// surface is at the top) to a PNG file at path, width x height inches.
func Render(samples []Sample, path string, width, height float64) error {
	p := plot.New()
	p.Title.Text = "Dive Profile"
	p.X.Label.Text = "Time (min)"
	p.Y.Label.Text = "Depth (m)"

	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i].X = s.TimeSec / 60.0
		pts[i].Y = -s.Depth
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("chart: building profile line: %w", err)
	}
	p.Add(line)

	if err := p.Save(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, path); err != nil {
		return fmt.Errorf("chart: saving profile png: %w", err)
	}
	return nil
}
