package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/hydrolab/swe1d/internal/analysis"
	"github.com/hydrolab/swe1d/internal/config"
	"github.com/hydrolab/swe1d/internal/experiment"
	"github.com/hydrolab/swe1d/internal/export"
	"github.com/hydrolab/swe1d/internal/grid"
	"github.com/hydrolab/swe1d/internal/icond"
	"github.com/hydrolab/swe1d/internal/output"
	"github.com/hydrolab/swe1d/internal/sim"
	"github.com/hydrolab/swe1d/internal/swe"
	"github.com/hydrolab/swe1d/internal/viz"
)

var (
	dataDir    string
	spatialOp  string
	integrator string
	nCells     int
	halfLength float64
	duration   float64
	fps        int
	dt         float64
	gravity    float64
	configFile string
	preset     string
	outDir     string
	probeCell  int
	profiling  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "swe1d",
		Short: "one-dimensional shallow-water solver",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".swe1d", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a simulation and record it",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addSchemeFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	referenceCmd := &cobra.Command{
		Use:   "reference",
		Short: "write the benchmark end-state file for the default run",
		RunE:  writeReference,
	}
	referenceCmd.Flags().StringVar(&outDir, "out", ".", "output directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the final surface profile",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export recorded profiles to CSV (time, x, h)",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the final profile as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectral analysis of the surface at a probe cell",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&probeCell, "cell", -1, "probe cell index (default: domain center)")

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "benchmark schemes over a dt grid",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScenario,
	}
	benchCmd.Flags().BoolVar(&profiling, "profile", false, "write a CPU profile")

	compareCmd := &cobra.Command{
		Use:   "compare [scenario] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addSchemeFlags(compareCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run with live terminal visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSchemeFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, referenceCmd, listCmd, plotCmd, exportCmd,
		exportCSVCmd, exportSVGCmd, analyzeCmd, benchCmd, compareCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSchemeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&spatialOp, "spatial", "central", "spatial scheme (upwind, central, weno)")
	cmd.Flags().StringVar(&integrator, "integrator", "euler", "time integrator (euler, rk2, rk3, rk4)")
	cmd.Flags().IntVar(&nCells, "n", config.DefaultN, "number of grid cells")
	cmd.Flags().Float64Var(&halfLength, "half", config.DefaultHalfLength, "domain half-length")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "snapshot frames per second")
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep (0 = derive from wave speed)")
	cmd.Flags().Float64Var(&gravity, "gravity", swe.DefaultGravity, "gravitational acceleration")
}

// buildRunConfig layers preset, config file and flags into one validated
// config. Precedence from weakest to strongest: defaults, preset, file,
// explicitly set flags.
func buildRunConfig(cmd *cobra.Command, scenario string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Scenario = scenario

	if preset != "" {
		p := config.GetPreset(scenario, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scenario))
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		fileCfg.Scenario = scenario
		cfg = fileCfg
	}

	if cmd.Flags().Changed("spatial") {
		cfg.Spatial = spatialOp
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("n") {
		cfg.N = nCells
	}
	if cmd.Flags().Changed("half") {
		cfg.HalfLength = halfLength
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = fps
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("gravity") {
		cfg.Gravity = gravity
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runPieces holds everything a validated config resolves to.
type runPieces struct {
	g    *grid.Grid
	x0   swe.State
	fx   *swe.Flux
	sd   swe.Differencer
	ig   swe.Integrator
	simu *sim.Simulator
}

// setup turns a validated config into the pieces a run needs.
func setup(cfg *config.Config) (*runPieces, error) {
	g, err := grid.NewUniform(cfg.HalfLength, cfg.N)
	if err != nil {
		return nil, err
	}

	var x0 swe.State
	if cfg.HasOverride() {
		x0 = swe.NewState(cfg.N)
		copy(x0.H, cfg.InitH)
		copy(x0.HU, cfg.InitHU)
	} else {
		x0, err = icond.Generate(g.X, cfg.Scenario)
		if err != nil {
			return nil, err
		}
	}

	registry := experiment.NewRegistry()
	sd, err := registry.Differencer(cfg.Spatial)
	if err != nil {
		return nil, err
	}
	ig, err := registry.Integrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	fx := &swe.Flux{Gravity: cfg.Gravity}
	return &runPieces{g: g, x0: x0, fx: fx, sd: sd, ig: ig, simu: sim.New(fx, ig, sd)}, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildRunConfig(cmd, args[0])
	if err != nil {
		return err
	}

	p, err := setup(cfg)
	if err != nil {
		return err
	}

	if cfg.Dt == 0 {
		cfg.Dt = p.simu.SuggestDt(p.g, p.x0, sim.DefaultCourant)
		if cfg.Dt == 0 {
			return fmt.Errorf("cannot derive dt from the initial state")
		}
	}
	for _, m := range experiment.DefaultMetrics(p.fx, p.g, cfg.Dt) {
		p.simu.AddMetric(m)
	}

	st := output.NewStore(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	rec, err := st.Begin(output.RunMetadata{
		Scenario:   cfg.Scenario,
		Spatial:    cfg.Spatial,
		Integrator: cfg.Integrator,
		N:          cfg.N,
		Dx:         p.g.Dx,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		FPS:        cfg.FPS,
		Gravity:    cfg.Gravity,
	}, p.g.X)
	if err != nil {
		return err
	}

	fmt.Printf("running %s (%s + %s, n=%d, dt=%.3e)...\n",
		cfg.Scenario, cfg.Spatial, cfg.Integrator, cfg.N, cfg.Dt)
	start := time.Now()

	simCfg := sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, FPS: cfg.FPS, ValidateState: true}
	result, err := p.simu.Run(context.Background(), p.g, p.x0, simCfg, rec.Emit)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := rec.Close(result.Metrics); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", rec.ID())
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("snapshots: %d\n", result.SnapshotsEmitted)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6e\n", name, val)
	}
	return nil
}

// writeReference reproduces the fixed benchmark configuration: Gaussian
// hump, central differencing, forward Euler, n=100 on [-10, 10), run for
// 10 seconds at dt = 1e-4·dx/sqrt(2g).
func writeReference(cmd *cobra.Command, args []string) error {
	g, err := grid.NewUniform(10, 100)
	if err != nil {
		return err
	}
	x0, err := icond.Generate(g.X, icond.Hump)
	if err != nil {
		return err
	}

	fx := swe.NewFlux()
	registry := experiment.NewRegistry()
	sd, _ := registry.Differencer("central")
	ig, _ := registry.Integrator("euler")

	refDt := 0.0001 * g.Dx / math.Sqrt(2*swe.DefaultGravity)
	simCfg := sim.Config{Dt: refDt, Duration: 10, ValidateState: true}

	fmt.Printf("computing reference end state (%d steps)...\n", int(simCfg.Duration/refDt))
	result, err := sim.New(fx, ig, sd).Run(context.Background(), g, x0, simCfg, nil)
	if err != nil {
		return err
	}

	path, err := output.WriteReference(outDir, g.X, result.Final.H)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := output.NewStore(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tN\tDURATION\tDT\tSPATIAL\tINTEG")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.3e\t%s\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.N,
			run.Duration,
			run.Dt,
			run.Spatial,
			run.Integrator,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := output.NewStore(dataDir)
	meta, blocks, err := st.LoadProfiles(args[0])
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s (%s + %s)\n", meta.Scenario, meta.Spatial, meta.Integrator)
	fmt.Printf("snapshots: %d\n\n", len(blocks))

	first := blocks[0]
	last := blocks[len(blocks)-1]

	graph := asciigraph.Plot(first.H,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("initial surface h(x)"),
	)
	fmt.Println(graph)
	fmt.Println()

	caption := "final surface h(x)"
	if n := len(meta.SnapshotTimes); n > 0 {
		caption = fmt.Sprintf("final surface h(x) at t=%.3f", meta.SnapshotTimes[n-1])
	}
	graph = asciigraph.Plot(last.H,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := output.NewStore(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := output.NewStore(dataDir)
	meta, blocks, err := st.LoadProfiles(args[0])
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "x", "h"}); err != nil {
		return err
	}
	for i, b := range blocks {
		t := 0.0
		if i < len(meta.SnapshotTimes) {
			t = meta.SnapshotTimes[i]
		}
		ts := strconv.FormatFloat(t, 'f', 6, 64)
		for j := range b.X {
			row := []string{
				ts,
				strconv.FormatFloat(b.X[j], 'g', -1, 64),
				strconv.FormatFloat(b.H[j], 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := output.NewStore(dataDir)
	_, blocks, err := st.LoadProfiles(args[0])
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		return fmt.Errorf("no data to export")
	}

	last := blocks[len(blocks)-1]
	svg := export.ProfileSVG(last.X, last.H, 800, 400, "#00ccff")
	if svg == "" {
		return fmt.Errorf("profile too small to render")
	}
	fmt.Println(svg)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := output.NewStore(dataDir)
	meta, blocks, err := st.LoadProfiles(args[0])
	if err != nil {
		return err
	}
	if len(blocks) < 4 {
		return fmt.Errorf("need at least 4 snapshots, run had %d", len(blocks))
	}

	cell := probeCell
	if cell < 0 {
		cell = meta.N / 2
	}

	profiles := make([][]float64, len(blocks))
	for i, b := range blocks {
		profiles[i] = b.H
	}
	ps, err := analysis.ProbeSpectrum(profiles, cell)
	if err != nil {
		return err
	}

	fmt.Printf("spectral analysis: %s\n", meta.ID)
	fmt.Printf("probe cell: %d (x=%.3f)\n\n", cell, blocks[0].X[cell])

	plotData := ps
	if len(plotData) > 64 {
		plotData = plotData[:64]
	}
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum of h at cell %d", cell)),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(ps, len(blocks), meta.Duration)
	if freq > 0 {
		fmt.Printf("dominant frequency: %.3f hz\n", freq)
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	} else {
		fmt.Println("no dominant oscillation found")
	}
	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	scenario := icond.Hump
	if len(args) > 0 {
		scenario = args[0]
	}

	if profiling {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	g, err := grid.NewUniform(10, 200)
	if err != nil {
		return err
	}
	x0, err := icond.Generate(g.X, scenario)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	fx := swe.NewFlux()

	courants := []float64{0.02, 0.05, 0.1}
	const benchDuration = 1.0

	fmt.Printf("benchmarking %s (n=%d)\n\n", scenario, g.N)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPATIAL\tINTEG\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, spName := range registry.DifferencerNames() {
		for _, igName := range registry.IntegratorNames() {
			sd, _ := registry.Differencer(spName)
			ig, _ := registry.Integrator(igName)
			simulator := sim.New(fx, ig, sd)

			for _, c := range courants {
				benchDt := simulator.SuggestDt(g, x0, c)
				simCfg := sim.Config{Dt: benchDt, Duration: benchDuration}

				start := time.Now()
				result, err := simulator.Run(context.Background(), g, x0, simCfg, nil)
				if err != nil {
					return err
				}
				elapsed := time.Since(start)

				fmt.Fprintf(w, "%s\t%s\t%.3e\t%d\t%v\t%.0f\n",
					spName, igName, benchDt, result.StepsTaken, elapsed.Round(time.Microsecond),
					float64(result.StepsTaken)/elapsed.Seconds())
			}
		}
	}
	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	scenario := args[0]
	names := args[1:]

	g, err := grid.NewUniform(halfLength, nCells)
	if err != nil {
		return err
	}
	x0, err := icond.Generate(g.X, scenario)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	fx := swe.NewFlux()
	sd, err := registry.Differencer(spatialOp)
	if err != nil {
		return err
	}

	cmpDt := dt
	if cmpDt == 0 {
		cmpDt = sim.DefaultCourant * g.Dx / fx.MaxWaveSpeed(x0)
	}

	fmt.Printf("comparing integrators for %s (%s, dt=%.3e, duration=%.1fs)\n\n",
		scenario, spatialOp, cmpDt, duration)
	fmt.Printf("%-8s  %-12s  %-12s  %-12s  %-10s\n", "integ", "max_h", "mass_drift", "courant", "time_ms")
	fmt.Println(strings.Repeat("-", 62))

	for _, name := range names {
		ig, err := registry.Integrator(name)
		if err != nil {
			fmt.Printf("%-8s  error: %v\n", name, err)
			continue
		}

		simulator := sim.New(fx, ig, sd)
		for _, m := range experiment.DefaultMetrics(fx, g, cmpDt) {
			simulator.AddMetric(m)
		}

		start := time.Now()
		result, err := simulator.Run(context.Background(), g, x0,
			sim.Config{Dt: cmpDt, Duration: duration, ValidateState: true}, nil)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-8s  error: %v\n", name, err)
			continue
		}

		fmt.Printf("%-8s  %12.6f  %12.2e  %12.3f  %10.2f\n",
			name,
			result.Final.H.Max(),
			result.Metrics["mass_drift"],
			result.Metrics["max_courant"],
			float64(elapsed.Microseconds())/1000)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildRunConfig(cmd, args[0])
	if err != nil {
		return err
	}

	p, err := setup(cfg)
	if err != nil {
		return err
	}
	if cfg.Dt == 0 {
		cfg.Dt = p.simu.SuggestDt(p.g, p.x0, sim.DefaultCourant)
		if cfg.Dt == 0 {
			return fmt.Errorf("cannot derive dt from the initial state")
		}
	}

	m := viz.NewModel(p.fx, p.ig, p.sd, p.g, p.x0, cfg.Dt, cfg.Scenario, cfg.Spatial, cfg.Integrator)
	prog := tea.NewProgram(m)
	if _, err := prog.Run(); err != nil {
		return err
	}
	return nil
}
