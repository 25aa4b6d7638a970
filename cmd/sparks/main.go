package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sparks/internal/automation"
	"github.com/san-kum/sparks/internal/config"
	"github.com/san-kum/sparks/internal/experiment"
	"github.com/san-kum/sparks/internal/export"
	"github.com/san-kum/sparks/internal/logging"
	"github.com/san-kum/sparks/internal/metrics"
	"github.com/san-kum/sparks/internal/scenario"
	"github.com/san-kum/sparks/internal/sim"
	"github.com/san-kum/sparks/internal/storage"
	"github.com/san-kum/sparks/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	dt          float64
	duration    float64
	seed        int64
	sampleEvery int
	configFile  string
	preset      string
	restitution float64
	k1          float64
	k2          float64
	gravityY    float64
	numRuns     int
	outFile     string
	progress    float64
	sweepParam  string
	sweepTime   float64
	sweepSeed   int64
	sweepMin    float64
	sweepMax    float64
	sweepSteps  int
	frameIndex  int
	seriesName  string

	logger *slog.Logger
)

// main registers the sparks commands and runs the root command. With no
// subcommand it opens the interactive scenario picker.
func main() {
	logger = logging.New(os.Stderr)

	rootCmd := &cobra.Command{
		Use:          "sparks",
		Short:        "particle effects kernel and playground",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(scenario.NewRegistry(), config.DefaultConfig())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sparks", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario headless and save it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addTuningFlags(runCmd)
	runCmd.Flags().IntVar(&sampleEvery, "sample", config.DefaultSampleEvery, "record a frame every n ticks")
	runCmd.Flags().Float64Var(&progress, "progress", 0, "log progress every n simulated seconds (0 disables)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run frames and metrics to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")

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

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range scenario.NewRegistry().List() {
				fmt.Println(name)
			}
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a scenario with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addTuningFlags(liveCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "run a scenario under several seeds in parallel",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScenario,
	}
	addTuningFlags(benchCmd)
	benchCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "run a scenario across a range of one parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepScenario,
	}
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use a preset configuration")
	sweepCmd.Flags().Float64Var(&sweepTime, "time", 0, "simulation duration (0 keeps the preset)")
	sweepCmd.Flags().Int64Var(&sweepSeed, "seed", 1, "random seed")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "parameter to sweep ("+strings.Join(config.ParamNames(), ", ")+")")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first parameter value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last parameter value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	_ = sweepCmd.MarkFlagRequired("param")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "run the steps of a YAML script",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a stored frame, or a metric series, to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().IntVar(&frameIndex, "frame", -1, "frame index (negative counts from the end)")
	svgCmd.Flags().StringVar(&seriesName, "series", "", "plot this metric series instead of a frame")
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, presetsCmd, scenariosCmd, liveCmd, benchCmd, sweepCmd, scriptCmd, svgCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addTuningFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&restitution, "restitution", config.DefaultRestitution, "contact restitution")
	cmd.Flags().Float64Var(&k1, "k1", config.DefaultDragK1, "drag k1")
	cmd.Flags().Float64Var(&k2, "k2", config.DefaultDragK2, "drag k2")
	cmd.Flags().Float64Var(&gravityY, "gravity-y", -9.8, "gravity along y")
}

// resolveConfig layers preset, config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command, name string) (*config.Config, error) {
	cfg, err := experiment.ResolveConfig(name, preset, configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if flags.Lookup("sample") != nil && flags.Changed("sample") {
		cfg.SampleEvery = sampleEvery
	}
	if flags.Changed("restitution") {
		cfg.Restitution = restitution
	}
	if flags.Changed("k1") {
		cfg.Drag.K1 = k1
	}
	if flags.Changed("k2") {
		cfg.Drag.K2 = k2
	}
	if flags.Changed("gravity-y") {
		cfg.Gravity[1] = gravityY
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	name := args[0]
	cfg, err := resolveConfig(cmd, name)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(name, preset, cfg, scenario.NewRegistry())
	if err := exp.Setup(metrics.Standard(), logger); err != nil {
		return err
	}
	if progress > 0 {
		exp.Simulator().AddObserver(sim.NewProgress(logger, progress))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("run started", "scenario", name, "preset", preset, "seed", cfg.Seed, "dt", cfg.Dt, "duration", cfg.Duration)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		logger.Warn("run interrupted", "err", err, "steps", result.StepsTaken)
	}
	elapsed := time.Since(start)

	runID, err := st.Save(name, preset, exp.SimConfig(), result)
	if err != nil {
		return err
	}
	logger.Info("run saved", "run_id", runID, "steps", result.StepsTaken, "frames", len(result.Frames), "elapsed", elapsed)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	if r, ok := exp.Scenario().(*scenario.Race); ok {
		fmt.Println("\nstandings:")
		for i, f := range r.Standings() {
			fmt.Printf("  %d. %-8s %.2fs\n", i+1, f.Name, f.Time)
		}
	}

	fmt.Println("\nmetrics:")
	for _, key := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", key, result.Metrics[key])
	}

	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tPRESET\tTIME\tDURATION\tDT\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Scenario,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
		)
	}

	return w.Flush()
}

var plotCaptions = map[string]string{
	"live_count":     "live particles",
	"peak_count":     "peak particles",
	"peak_height":    "peak height",
	"kinetic_energy": "kinetic energy",
	"peak_energy":    "peak kinetic energy",
	"escape":         "escaped fraction",
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d (%.2fs - %.2fs)\n\n", len(times), times[0], times[len(times)-1])

	for _, name := range []string{"live_count", "peak_height", "kinetic_energy"} {
		data := series[name]
		if len(data) == 0 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(plotCaptions[name]),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	data, err := st.Export(args[0])
	if err != nil {
		return err
	}

	if outFile != "" {
		if err := storage.ExportJSON(outFile, data); err != nil {
			return err
		}
		logger.Info("exported run", "run_id", args[0], "path", outFile)
		return nil
	}
	return storage.ExportJSONStdout(data)
}

func runLive(cmd *cobra.Command, args []string) error {
	name := args[0]
	cfg, err := resolveConfig(cmd, name)
	if err != nil {
		return err
	}

	registry := scenario.NewRegistry()
	if _, err := registry.Get(name, cfg); err != nil {
		return err
	}

	// The live view writes to the alternate screen; keep logs out of it.
	logger = logging.Discard()

	factory := func() (scenario.Scenario, error) { return registry.Get(name, cfg) }
	return viz.RunLive(name, factory, sim.FromConfig(cfg))
}

func benchScenario(cmd *cobra.Command, args []string) error {
	name := args[0]
	cfg, err := resolveConfig(cmd, name)
	if err != nil {
		return err
	}
	if numRuns <= 0 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}

	registry := scenario.NewRegistry()
	factory := func() (scenario.Scenario, error) { return registry.Get(name, cfg) }
	ens := sim.NewEnsemble(factory, metrics.Standard, numRuns, cfg.Seed)

	logger.Info("bench started", "scenario", name, "runs", numRuns, "seed", cfg.Seed)
	start := time.Now()
	results, err := ens.Run(context.Background(), sim.FromConfig(cfg))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("benchmarking %s (%d seeds)\n\n", name, numRuns)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSTEPS\tPEAK COUNT\tPEAK HEIGHT\tPEAK ENERGY\tERRORS")

	totalSteps := 0
	for i, r := range results {
		totalSteps += r.StepsTaken
		fmt.Fprintf(w, "%d\t%d\t%.0f\t%.2f\t%.2f\t%d\n",
			cfg.Seed+int64(i),
			r.StepsTaken,
			r.Metrics["peak_count"],
			r.Metrics["peak_height"],
			r.Metrics["peak_energy"],
			len(r.Errors),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d steps in %v (%.0f steps/sec)\n", totalSteps, elapsed, float64(totalSteps)/elapsed.Seconds())
	return nil
}

func sweepScenario(cmd *cobra.Command, args []string) error {
	name := args[0]
	sweep := &automation.ParameterSweep{
		Scenario:  name,
		Preset:    preset,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Duration:  sweepTime,
		Seed:      sweepSeed,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("sweep started", "scenario", name, "param", sweepParam, "min", sweepMin, "max", sweepMax, "steps", sweepSteps)
	results, err := automation.RunSweep(ctx, sweep, scenario.NewRegistry(), logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSTEPS\tPEAK COUNT\tPEAK HEIGHT\tPEAK ENERGY\tESCAPE\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%d\t%.0f\t%.2f\t%.2f\t%.2f\n",
			r.ParamValue,
			r.Steps,
			r.Metrics["peak_count"],
			r.Metrics["peak_height"],
			r.Metrics["peak_energy"],
			r.Metrics["escape"],
		)
	}
	return w.Flush()
}

func runScript(cmd *cobra.Command, args []string) error {
	script, err := automation.LoadScript(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScript(ctx, script, scenario.NewRegistry(), st, logger)
	for _, r := range results {
		id := r.RunID
		if id == "" {
			id = "(not saved)"
		}
		fmt.Printf("%-10s %6d steps  %s\n", r.Scenario, r.Result.StepsTaken, id)
	}
	return err
}

func renderSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	var svg string
	if seriesName != "" {
		times, series, err := st.LoadSeries(runID)
		if err != nil {
			return err
		}
		data, ok := series[seriesName]
		if !ok {
			return fmt.Errorf("run %s has no series %q (available: %v)", runID, seriesName, sortedKeys(series))
		}
		svg = export.SeriesToSVG(times, data, 800, 400, "#ffaa00")
	} else {
		frames, err := st.LoadFrames(runID)
		if err != nil {
			return err
		}
		if len(frames) == 0 {
			return fmt.Errorf("run %s has no frames", runID)
		}
		idx := frameIndex
		if idx < 0 {
			idx += len(frames)
		}
		if idx < 0 || idx >= len(frames) {
			return fmt.Errorf("frame %d out of range (run has %d)", frameIndex, len(frames))
		}

		cam := viz.NewCamera()
		cam.Fit(viz.Extent(frames[idx].Sprites))
		svg = export.FrameToSVG(frames[idx], cam, 800, 600, string(viz.CurrentTheme.Primary))
	}

	if svg == "" {
		return fmt.Errorf("nothing to render")
	}
	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("rendered svg", "run_id", runID, "path", outFile)
	return nil
}
