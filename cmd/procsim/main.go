package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/procsim/internal/analysis"
	"github.com/san-kum/procsim/internal/condenser"
	"github.com/san-kum/procsim/internal/config"
	"github.com/san-kum/procsim/internal/metrics"
	"github.com/san-kum/procsim/internal/model"
	"github.com/san-kum/procsim/internal/process"
	"github.com/san-kum/procsim/internal/props"
	"github.com/san-kum/procsim/internal/report"
	"github.com/san-kum/procsim/internal/store"
	"github.com/san-kum/procsim/internal/tune"
	"github.com/san-kum/procsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	format     string
	debug      bool
	dataDir    string
	noSave     bool
	// Frame rate for live view
	frameRate int
	// Tuning sweep candidates
	tuneGains  []float64
	tuneTimeIs []float64
	tuneTopN   int
)

// main is the entry point for the procsim CLI; it registers commands and
// flags and executes the root command. It exits the process with status 1
// if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "procsim",
		Short: "equation-oriented process control and heat exchange lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose solver logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".procsim", "data directory")

	pidCmd := &cobra.Command{
		Use:   "pid",
		Short: "solve a closed-loop pid setpoint-step scenario",
		RunE:  runPID,
	}
	pidCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	pidCmd.Flags().StringVar(&format, "format", "text", "output format: text, csv, json, svg")
	pidCmd.Flags().BoolVar(&noSave, "no-save", false, "skip saving the run")

	condenserCmd := &cobra.Command{
		Use:   "condenser",
		Short: "initialize and solve an ntu condenser",
		RunE:  runCondenser,
	}
	condenserCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	condenserCmd.Flags().StringVar(&format, "format", "text", "output format: text, csv, json")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "solve the pid scenario and play it back in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().IntVar(&frameRate, "fps", 20, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets [case]",
		Short: "list available presets for a case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for case: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid-search controller tunings on the pid scenario",
		RunE:  runTune,
	}
	tuneCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	tuneCmd.Flags().Float64SliceVar(&tuneGains, "gains", []float64{0.5, 1, 2, 4}, "gain candidates")
	tuneCmd.Flags().Float64SliceVar(&tuneTimeIs, "time-is", []float64{2.5, 5, 10, 20}, "integral time candidates")
	tuneCmd.Flags().IntVar(&tuneTopN, "top", 8, "number of candidates to show")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	rootCmd.AddCommand(pidCmd, condenserCmd, liveCmd, tuneCmd, runsCmd, showCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: defaults, then preset,
// then config file.
func loadConfig(caseName string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(caseName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(caseName))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	return cfg, nil
}

func loopConfig(cfg *config.Config) process.LoopConfig {
	return process.LoopConfig{
		Horizon:       cfg.Horizon,
		Steps:         cfg.Steps,
		Setpoint:      cfg.PID.Setpoint,
		SetpointStep:  cfg.PID.SetpointStep,
		StepTime:      cfg.PID.StepTime,
		Gain:          cfg.PID.Gain,
		TimeI:         cfg.PID.TimeI,
		TimeD:         cfg.PID.TimeD,
		Lower:         cfg.PID.Lower,
		Upper:         cfg.PID.Upper,
		PlantGain:     cfg.Plant.Gain,
		PlantTau:      cfg.Plant.Tau,
		PlantBias:     cfg.Plant.Bias,
		InitialPV:     cfg.Plant.InitialPV,
		InitialOutput: cfg.Plant.InitialOutput,
	}
}

func solveLoop(cfg *config.Config) (*process.Loop, model.Result, error) {
	loop, err := process.NewLoop(loopConfig(cfg))
	if err != nil {
		return nil, model.Result{}, err
	}
	res, err := loop.Solve(model.NewNewton(cfg.SolverOptions()))
	if err != nil {
		return nil, res, err
	}
	return loop, res, nil
}

func runPID(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig("pid")
	if err != nil {
		return err
	}

	fmt.Println("solving closed-loop scenario...")
	start := time.Now()
	loop, res, err := solveLoop(cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if !res.OK() {
		fmt.Printf("solver did not converge: %s (residual %.3e)\n", res.Condition, res.Residual)
	}
	fmt.Printf("completed in %v (%d iterations)\n\n", elapsed, res.Iterations)

	times, pv, out := loop.Series()
	sp := make([]float64, len(times))
	for i, t := range times {
		sp[i] = loop.PID.Setpoint.At(t)
	}
	rows := report.Series(times, pv, out)

	switch format {
	case "csv":
		return report.WriteSeriesCSV(os.Stdout, rows)
	case "json":
		return report.WriteSeriesJSON(os.Stdout, rows)
	case "svg":
		return report.WriteSeriesSVG(os.Stdout, rows)
	}

	pvChart := asciigraph.Plot(pv,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("process variable"),
	)
	fmt.Println(pvChart)
	fmt.Println()
	outChart := asciigraph.Plot(out,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("controller output"),
	)
	fmt.Println(outChart)
	fmt.Println()

	vals := metrics.Summarize(times, sp, pv, out,
		metrics.NewIAE(),
		metrics.NewISE(),
		metrics.NewOvershoot(),
		metrics.NewSettlingTime(0.02),
		metrics.NewControlEffort(),
	)
	fmt.Println("metrics:")
	fmt.Printf("  final pv: %.6f\n", pv[len(pv)-1])
	fmt.Printf("  final error: %.6f\n", sp[len(sp)-1]-pv[len(pv)-1])
	for _, name := range []string{"iae", "ise", "overshoot", "settling_time", "control_effort"} {
		fmt.Printf("  %s: %.6f\n", name, vals[name])
	}
	if period := analysis.DominantPeriod(pv, times[1]-times[0]); period > 0 {
		fmt.Printf("  dominant period: %.3f s\n", period)
	}

	if !noSave {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save("pid", cfg.Horizon, cfg.Steps, vals, rows)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig("pid")
	if err != nil {
		return err
	}

	g := &tune.GridSearch{
		Gains:         tuneGains,
		TimeIs:        tuneTimeIs,
		SolverOptions: cfg.SolverOptions(),
	}

	fmt.Printf("evaluating %d tunings...\n", len(tuneGains)*len(tuneTimeIs))
	start := time.Now()
	results, err := g.Search(context.Background(), loopConfig(cfg))
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GAIN\tTIME_I\tIAE\tOVERSHOOT\tCONVERGED")
	n := len(results)
	if tuneTopN > 0 && tuneTopN < n {
		n = tuneTopN
	}
	for _, c := range results[:n] {
		fmt.Fprintf(w, "%.3f\t%.3f\t%.6f\t%.6f\t%v\n", c.Gain, c.TimeI, c.IAE, c.Overshoot, c.Converged)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCASE\tTIME\tHORIZON\tSTEPS\tIAE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%d\t%.4f\n",
			run.ID,
			run.Case,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Horizon,
			run.Steps,
			run.Metrics["iae"],
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rows, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("case: %s\n", meta.Case)
	fmt.Printf("samples: %d\n\n", len(rows))

	pv := make([]float64, len(rows))
	out := make([]float64, len(rows))
	for i, r := range rows {
		pv[i] = r.PV
		out[i] = r.Output
	}
	for _, trace := range []struct {
		data    []float64
		caption string
	}{
		{pv, "process variable"},
		{out, "controller output"},
	} {
		graph := asciigraph.Plot(trace.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(trace.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	fmt.Println("metrics:")
	for name, val := range meta.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func runCondenser(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig("condenser")
	if err != nil {
		return err
	}
	cc := cfg.Condenser

	ts := model.SteadyState()
	w := props.Water{}
	c, err := condenser.New(nil, "condenser", ts, condenser.Config{
		HotSide:  condenser.VolumeConfig{Properties: w},
		ColdSide: condenser.VolumeConfig{Properties: w},
	})
	if err != nil {
		return err
	}

	c.Area.Set(cc.Area)
	c.U.SetAll(cc.U)

	// Inlet specification: hot side enters as saturated vapor, cold side
	// as subcooled liquid.
	hot, cold := c.HotSide, c.ColdSide
	hot.In.FlowMol.SetAll(cc.HotFlow)
	hot.In.EnthMol.SetAll(w.EnthMolSatVap(cc.HotPressure))
	hot.In.Pressure.SetAll(cc.HotPressure)
	cold.In.FlowMol.SetAll(cc.ColdFlow)
	cold.In.EnthMol.SetAll(w.CpMolLiq(0, cc.ColdPressure) * (cc.ColdTempIn - 273.15))
	cold.In.Pressure.SetAll(cc.ColdPressure)
	for _, v := range []*model.Var{
		hot.In.FlowMol, hot.In.EnthMol, hot.In.Pressure,
		cold.In.FlowMol, cold.In.EnthMol, cold.In.Pressure,
	} {
		v.Fix()
	}

	// Operating specification: the saturated-outlet constraint replaces
	// one inlet specification.
	c.SaturationEqn.Activate()
	t0 := ts.First()
	switch cc.Unfix {
	case condenser.UnfixHotFlow:
		hot.In.FlowMol.UnfixAt(t0)
	case condenser.UnfixColdFlow:
		cold.In.FlowMol.UnfixAt(t0)
	case condenser.UnfixPressure:
		hot.In.Pressure.UnfixAt(t0)
	default:
		return fmt.Errorf("bad unfix selection in config: %q", cc.Unfix)
	}

	c.CalculateScalingFactors()

	fmt.Println("initializing condenser...")
	start := time.Now()
	res, err := c.Initialize(condenser.InitOptions{
		Unfix:         cc.Unfix,
		SolverOptions: cfg.SolverOptions(),
	})
	if err != nil {
		return err
	}
	if !res.OK() {
		fmt.Printf("initialization did not converge: %s (residual %.3e)\n", res.Condition, res.Residual)
	}

	res, err = model.NewNewton(cfg.SolverOptions()).Solve(c.Block())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	if !res.OK() {
		fmt.Printf("solve did not converge: %s (residual %.3e)\n", res.Condition, res.Residual)
	}
	fmt.Printf("completed in %v (%d iterations)\n\n", elapsed, res.Iterations)

	rows := report.CondenserStreamTable(c, t0)
	switch format {
	case "csv":
		return report.WriteStreamCSV(os.Stdout, rows)
	case "json":
		return report.WriteStreamJSON(os.Stdout, rows)
	}

	perf := c.PerformanceContents(t0)
	w2 := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w2, "QUANTITY\tVALUE")
	for _, name := range []string{"HX Coefficient", "HX Area", "Heat Duty"} {
		fmt.Fprintf(w2, "%s\t%.4f\n", name, perf.Vars[name])
	}
	for _, name := range []string{"Delta T In", "Delta T Out", "NTU", "Effectiveness"} {
		fmt.Fprintf(w2, "%s\t%.4f\n", name, perf.Exprs[name])
	}
	if err := w2.Flush(); err != nil {
		return err
	}

	fmt.Println("\nstreams:")
	ws := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(ws, "STREAM\tFLOW (mol/s)\tENTH (J/mol)\tPRESSURE (Pa)\tTEMP (K)")
	for _, r := range rows {
		fmt.Fprintf(ws, "%s\t%.4f\t%.1f\t%.0f\t%.2f\n", r.Stream, r.FlowMol, r.EnthMol, r.Pressure, r.Temperature)
	}
	return ws.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig("pid")
	if err != nil {
		return err
	}

	loop, res, err := solveLoop(cfg)
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("solver did not converge: %s", res.Condition)
	}

	times, pv, out := loop.Series()
	sp := make([]float64, len(times))
	for i, t := range times {
		sp[i] = loop.PID.Setpoint.At(t)
	}

	m := viz.NewModel(viz.Trajectory{
		Times:    times,
		Setpoint: sp,
		PV:       pv,
		Output:   out,
		Lower:    cfg.PID.Lower,
		Upper:    cfg.PID.Upper,
	}, "closed loop", frameRate)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
