package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/m5lapp/zhl16deco/config"
	"github.com/m5lapp/zhl16deco/deco"
	"github.com/m5lapp/zhl16deco/tissue"
)

var (
	runPlanPath string
	runPreset   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Plan a dive and print its depth/stop/run table",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := config.LoadPlanSpec(runPlanPath)
		if err != nil {
			logrus.Fatalf("loading plan: %v", err)
		}

		constants, err := presetConstants(runPreset)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		dive := spec.Dive()
		compartments := tissue.NewSurfaceCompartments(dive.AtmPressure.Millibar(), dive.PartialWater)

		logrus.Infof("planning dive: gf %.0f/%.0f, %d segment(s)", dive.GFLo*100, dive.GFHi*100, len(spec.SegmentSpecs))
		segments, err := deco.Plan(dive, compartments, constants, spec.Segments(), spec.Gases())
		if err != nil {
			logrus.Fatalf("planning dive: %v", err)
		}
		logrus.Infof("plan complete: %d segments", len(segments))

		printDSRTable(os.Stdout, segments, dive)
	},
}

// presetConstants resolves a --constants flag value ("a", "b" or "c") to the
// corresponding ZH-L16 coefficient table.
func presetConstants(name string) (tissue.Constants, error) {
	switch name {
	case "a", "A":
		return tissue.ConstantsA, nil
	case "b", "B":
		return tissue.ConstantsB, nil
	case "c", "C":
		return tissue.ConstantsC, nil
	default:
		return tissue.Constants{}, fmt.Errorf("unknown constants preset %q; valid: a, b, c", name)
	}
}

func printDSRTable(f *os.File, segments []deco.Segment, dive deco.Dive) {
	w := tabwriter.NewWriter(f, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "Depth(m)\tGas\tTime(min)\tRun(min)\tOTU\tCNS%")

	var runTime uint32
	var totalOTU, totalCNS float64
	for _, s := range segments {
		runTime += s.Time
		totalOTU += s.OTUCNS.OTU
		totalCNS += s.OTUCNS.CNS
		fmt.Fprintf(w, "%.1f\t%s\t%d\t%d\t%.1f\t%.1f\n",
			s.Depth.Depth(dive.AtmPressure).Meters(), s.Gas.String(), s.Time, runTime, s.OTUCNS.OTU, s.OTUCNS.CNS)
	}
	w.Flush()

	fmt.Fprintf(f, "Run time: %d min, total OTU: %.1f, total CNS: %.1f%%\n", runTime, totalOTU, totalCNS)
}

func init() {
	runCmd.Flags().StringVar(&runPlanPath, "plan", "", "Path to a YAML dive plan")
	runCmd.Flags().StringVar(&runPreset, "constants", "c", "ZH-L16 constants preset (a, b, c)")
	_ = runCmd.MarkFlagRequired("plan")
}
