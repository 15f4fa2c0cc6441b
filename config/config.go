// Package config loads a YAML description of a dive plan — gases, dive
// configuration and bottom segments — and converts it into the library's
// deco/gas/units types, the same shape inference-sim's sim/workload package
// loads simulation workload specs.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/m5lapp/zhl16deco/deco"
	"github.com/m5lapp/zhl16deco/gas"
	"github.com/m5lapp/zhl16deco/units"
)

// GasSpec describes one entry in the plan's gas inventory.
type GasSpec struct {
	Role string  `yaml:"role"` // "bottom", "deco", or "diluent"
	FO2  float64 `yaml:"fo2"`
	FHe  float64 `yaml:"fhe,omitempty"`
	PPO2 float64 `yaml:"ppo2,omitempty"` // only used by role "bottom"
}

// SegmentSpec describes one planned bottom segment.
type SegmentSpec struct {
	DepthMeters float64 `yaml:"depth_m"`
	TimeMin     float64 `yaml:"time_min"`
	Setpoint    float64 `yaml:"setpoint,omitempty"`
}

// DiveSpec mirrors deco.Dive at the YAML boundary; any field left zero is
// replaced with the spec.md §6 default by Upgrade.
type DiveSpec struct {
	GFLo           float64 `yaml:"gf_lo,omitempty"`
	GFHi           float64 `yaml:"gf_hi,omitempty"`
	CCR            bool    `yaml:"ccr,omitempty"`
	DecoSetpoint   float64 `yaml:"deco_setpoint,omitempty"`
	AscentRateMpm  float64 `yaml:"ascent_rate_mpm,omitempty"`
	DescentRateMpm float64 `yaml:"descent_rate_mpm,omitempty"`
	AtmMbar        float64 `yaml:"atm_mbar,omitempty"`
	PartialWater   float64 `yaml:"partial_water_mbar,omitempty"`
}

// PlanSpec is the top-level YAML document: a dive configuration, a gas
// inventory and the bottom segments to plan deco against.
type PlanSpec struct {
	Version      string        `yaml:"version"`
	DiveConfig   DiveSpec      `yaml:"dive"`
	GasSpecs     []GasSpec     `yaml:"gases"`
	SegmentSpecs []SegmentSpec `yaml:"segments"`
}

// Upgrade fills in the spec.md §6 reference defaults for any dive field the
// YAML document left at its zero value, logging a warning for each one so a
// plan author notices their document is relying on defaults. Idempotent.
func Upgrade(spec *PlanSpec) {
	def := deco.DefaultDive()

	if spec.Version == "" {
		spec.Version = "1"
	}
	if spec.DiveConfig.GFLo == 0.0 {
		logrus.Warnf("dive.gf_lo not set; defaulting to %.2f", def.GFLo)
		spec.DiveConfig.GFLo = def.GFLo
	}
	if spec.DiveConfig.GFHi == 0.0 {
		logrus.Warnf("dive.gf_hi not set; defaulting to %.2f", def.GFHi)
		spec.DiveConfig.GFHi = def.GFHi
	}
	if spec.DiveConfig.DecoSetpoint == 0.0 {
		logrus.Warnf("dive.deco_setpoint not set; defaulting to %.2f", def.DecoSetpoint)
		spec.DiveConfig.DecoSetpoint = def.DecoSetpoint
	}
	if spec.DiveConfig.AscentRateMpm == 0.0 {
		spec.DiveConfig.AscentRateMpm = -def.AscentRate.MillibarPerMin() / 100.0
		logrus.Warnf("dive.ascent_rate_mpm not set; defaulting to %.1f", spec.DiveConfig.AscentRateMpm)
	}
	if spec.DiveConfig.DescentRateMpm == 0.0 {
		spec.DiveConfig.DescentRateMpm = def.DescentRate.MillibarPerMin() / 100.0
		logrus.Warnf("dive.descent_rate_mpm not set; defaulting to %.1f", spec.DiveConfig.DescentRateMpm)
	}
	if spec.DiveConfig.AtmMbar == 0.0 {
		logrus.Warnf("dive.atm_mbar not set; defaulting to %.1f", def.AtmPressure.Millibar())
		spec.DiveConfig.AtmMbar = def.AtmPressure.Millibar()
	}
	if spec.DiveConfig.PartialWater == 0.0 {
		logrus.Warnf("dive.partial_water_mbar not set; defaulting to %.1f", def.PartialWater)
		spec.DiveConfig.PartialWater = def.PartialWater
	}
}

// LoadPlanSpec reads and strictly parses a YAML plan document, rejecting
// unrecognized keys, then applies Upgrade to fill in defaults.
func LoadPlanSpec(path string) (*PlanSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan spec: %w", err)
	}

	var spec PlanSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing plan spec: %w", err)
	}

	Upgrade(&spec)
	return &spec, nil
}

// Dive converts the parsed DiveSpec into a deco.Dive, deriving LastStop and
// StopSize from the spec.md §6 fixed 3 m stop ladder.
func (s *PlanSpec) Dive() deco.Dive {
	atm := units.Millibar(s.DiveConfig.AtmMbar)
	diveType := deco.OC
	if s.DiveConfig.CCR {
		diveType = deco.CCR
	}

	return deco.Dive{
		GFLo:         s.DiveConfig.GFLo,
		GFHi:         s.DiveConfig.GFHi,
		DiveType:     diveType,
		DecoSetpoint: s.DiveConfig.DecoSetpoint,
		AscentRate:   units.AscentRate(s.DiveConfig.AscentRateMpm),
		DescentRate:  units.DescentRate(s.DiveConfig.DescentRateMpm),
		AtmPressure:  atm,
		LastStop:     units.PressureFromDepth(units.Meters(3.0), atm),
		StopSize:     units.PressureFromDepth(units.Meters(3.0), 0),
		PartialWater: s.DiveConfig.PartialWater,
	}
}

// Gases converts the parsed gas inventory into gas.Gas values.
func (s *PlanSpec) Gases() []gas.Gas {
	gases := make([]gas.Gas, 0, len(s.GasSpecs))
	for _, g := range s.GasSpecs {
		switch g.Role {
		case "deco":
			gases = append(gases, gas.NewDecoGas(g.FO2, g.FHe))
		case "diluent":
			gases = append(gases, gas.NewDiluentGas(g.FO2, g.FHe))
		default:
			gases = append(gases, gas.NewBottomGas(g.FO2, g.FHe, g.PPO2))
		}
	}
	return gases
}

// Segments converts the parsed bottom segments into deco.SegmentIn values.
func (s *PlanSpec) Segments() []deco.SegmentIn {
	segs := make([]deco.SegmentIn, 0, len(s.SegmentSpecs))
	for _, seg := range s.SegmentSpecs {
		segs = append(segs, deco.SegmentIn{
			Depth:    units.Meters(seg.DepthMeters),
			Time:     seg.TimeMin,
			Setpoint: seg.Setpoint,
		})
	}
	return segs
}
