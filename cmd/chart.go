package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/m5lapp/zhl16deco/chart"
	"github.com/m5lapp/zhl16deco/config"
	"github.com/m5lapp/zhl16deco/deco"
	"github.com/m5lapp/zhl16deco/tissue"
)

var (
	chartPlanPath   string
	chartOutPath    string
	chartPreset     string
	chartResolution float64
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Plan a dive and render its profile to a PNG",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := config.LoadPlanSpec(chartPlanPath)
		if err != nil {
			logrus.Fatalf("loading plan: %v", err)
		}

		constants, err := presetConstants(chartPreset)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		dive := spec.Dive()
		compartments := tissue.NewSurfaceCompartments(dive.AtmPressure.Millibar(), dive.PartialWater)

		segments, err := deco.Plan(dive, compartments, constants, spec.Segments(), spec.Gases())
		if err != nil {
			logrus.Fatalf("planning dive: %v", err)
		}

		samples := chart.SampleProfile(segments, dive.AtmPressure, chartResolution)
		if err := chart.Render(samples, chartOutPath, 10, 6); err != nil {
			logrus.Fatalf("rendering profile: %v", err)
		}
		logrus.Infof("wrote profile chart to %s", chartOutPath)
	},
}

func init() {
	chartCmd.Flags().StringVar(&chartPlanPath, "plan", "", "Path to a YAML dive plan")
	chartCmd.Flags().StringVar(&chartOutPath, "out", "profile.png", "Path to write the rendered PNG")
	chartCmd.Flags().StringVar(&chartPreset, "constants", "c", "ZH-L16 constants preset (a, b, c)")
	chartCmd.Flags().Float64Var(&chartResolution, "resolution", 10.0, "Sample resolution in seconds")
	_ = chartCmd.MarkFlagRequired("plan")
}
