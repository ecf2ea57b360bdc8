package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arl/go-bwem/bwem"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "analyze a map and print its decomposition",
	Long: `Analyze a textual map description into areas, chokepoints and
bases, then print the decomposition. The map text format is controlled by
the glyph settings (YAML), see the config command.`,
	Run: func(cmd *cobra.Command, args []string) {
		doAnalyze()
	},
}

var (
	inputVal    string
	settingsVal string
	timingsVal  bool
	verboseVal  bool
)

func init() {
	RootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&inputVal, "input", "", "input map text file (required)")
	analyzeCmd.Flags().StringVar(&settingsVal, "settings", "", "glyph settings file (defaults used if empty)")
	analyzeCmd.Flags().BoolVar(&timingsVal, "timings", false, "print per-stage timings")
	analyzeCmd.Flags().BoolVar(&verboseVal, "verbose", false, "print the analysis log")
}

var analysisTimers = []struct {
	label bwem.TimerLabel
	name  string
}{
	{bwem.TimerTerrain, "terrain"},
	{bwem.TimerNeutrals, "neutrals"},
	{bwem.TimerAltitudes, "altitudes"},
	{bwem.TimerBlockingNeutrals, "blocking neutrals"},
	{bwem.TimerAreas, "areas"},
	{bwem.TimerChokePoints, "chokepoints"},
	{bwem.TimerPaths, "paths"},
	{bwem.TimerBases, "bases"},
	{bwem.TimerTotal, "total"},
}

func doAnalyze() {
	if inputVal == "" {
		fmt.Println("missing --input flag")
		os.Exit(-1)
	}

	settings := bwem.DefaultLoaderSettings()
	if settingsVal != "" {
		check(unmarshalYAMLFile(settingsVal, &settings))
	}

	f, err := os.Open(inputVal)
	check(err)
	defer f.Close()

	data, err := bwem.LoadMapData(f, settings)
	check(err)

	ctx := bwem.NewBuildContext(true)
	m := bwem.NewMap(ctx)
	if err := m.Initialize(data); err != nil {
		ctx.DumpLog("analysis failed:")
		check(err)
	}
	allFound, err := m.FindBasesForStartingLocations()
	check(err)

	if verboseVal {
		ctx.DumpLog("analysis log:")
	}

	fmt.Printf("%s: %d x %d tiles\n", inputVal, m.Size().X, m.Size().Y)
	fmt.Printf("max altitude: %d\n", m.MaxAltitude())

	areas := m.Areas()
	fmt.Printf("%d areas:\n", len(areas))
	for i := range areas {
		a := &areas[i]
		fmt.Printf("  area %d: group %d, top (%d, %d), %d minitiles, %d chokepoints, %d minerals, %d geysers, %d bases\n",
			a.ID(), a.GroupID(), a.Top().X, a.Top().Y, a.MiniTileCount(),
			len(a.ChokePoints()), len(a.Minerals()), len(a.Geysers()), len(a.Bases()))
	}

	cps := m.ChokePoints()
	fmt.Printf("%d chokepoints:\n", len(cps))
	for _, cp := range cps {
		kind := ""
		if cp.IsPseudo() {
			kind = " (pseudo)"
		}
		if cp.Blocked() {
			kind += " (blocked)"
		}
		areas := cp.Areas()
		fmt.Printf("  chokepoint %d%s: areas %d/%d, center (%d, %d), %d positions\n",
			cp.Index(), kind, areas[0].ID(), areas[1].ID(),
			cp.Center().X, cp.Center().Y, len(cp.Geometry()))
	}

	bases := m.Bases()
	fmt.Printf("%d bases:\n", len(bases))
	for _, b := range bases {
		starting := ""
		if b.Starting() {
			starting = " (starting)"
		}
		fmt.Printf("  base at (%d, %d)%s: area %d, %d minerals, %d geysers\n",
			b.Location().X, b.Location().Y, starting, b.Area().ID(),
			len(b.Minerals()), len(b.Geysers()))
	}
	if !allFound {
		fmt.Println("warning: at least one starting location has no base")
	}

	if timingsVal {
		fmt.Println("timings:")
		for _, t := range analysisTimers {
			fmt.Printf("  %-18s %v\n", t.name, ctx.AccumulatedTime(t.label))
		}
	}
}
