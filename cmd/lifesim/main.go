package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lifesim/internal/bench"
	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/engine"
	_ "github.com/san-kum/lifesim/internal/engine/life"
	"github.com/san-kum/lifesim/internal/export"
	"github.com/san-kum/lifesim/internal/geometry"
	"github.com/san-kum/lifesim/internal/gui"
	"github.com/san-kum/lifesim/internal/render"
	"github.com/san-kum/lifesim/internal/storage"
	"github.com/san-kum/lifesim/internal/tui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dataDir    string
	configFile string
	preset     string
	logFile    string

	engineName string
	width      int
	height     int
	cellSize   int
	speed      float64
	density    float64
	autoStart  bool
	window     int
	tps        int
	seed       int64
	theme      string
	insertMode string
	pattern    string

	// bench
	frames   int
	runs     int
	unpaced  bool
	save     bool
	progress bool

	// plot
	column  string
	svgFile string

	// snapshot
	generations int
	snapOut     string
	aliveColor  string
	bgColor     string

	configOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "lifesim",
		Short:         "interactive cellular automaton driver",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lifesim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write diagnostics to this file")
	addGridFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	addGridFlags(runCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a raylib window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addGridFlags(guiCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "drive the controller headless and report frame rates",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	addGridFlags(benchCmd)
	benchCmd.Flags().IntVar(&frames, "frames", 600, "frames to schedule")
	benchCmd.Flags().IntVar(&runs, "runs", 1, "concurrent sessions, seeded --seed, --seed+1, ...")
	benchCmd.Flags().BoolVar(&unpaced, "unpaced", false, "feed frames as fast as they are consumed")
	benchCmd.Flags().BoolVar(&save, "save", false, "store the session under --data")
	benchCmd.Flags().BoolVar(&progress, "progress", false, "print a live progress line")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored bench sessions",
		Args:  cobra.NoArgs,
		RunE:  listSessions,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [session_id]",
		Short: "plot a stored bench session",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSession,
	}
	plotCmd.Flags().StringVar(&column, "column", "fps", "column to plot (fps, mean, min, max, ticks, generation)")
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write the plot as SVG")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "randomize, advance and write the grid as SVG",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	addGridFlags(snapshotCmd)
	snapshotCmd.Flags().IntVar(&generations, "gens", 0, "generations to advance before the snapshot")
	snapshotCmd.Flags().StringVarP(&snapOut, "out", "o", "grid.svg", "output file")
	snapshotCmd.Flags().StringVar(&aliveColor, "alive", "#78dc78", "live cell colour")
	snapshotCmd.Flags().StringVar(&bgColor, "bg", "#0a0a0a", "background colour")

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "list engines and their seed patterns",
		Args:  cobra.NoArgs,
		RunE:  listPatterns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGEOMETRY\tSPEED\tDENSITY\tINSERT")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%.0f\t%.0f%%\t%s %s\n",
					name, p.Geometry, p.Speed, p.Density, p.Insertion.Mode, p.Insertion.Pattern)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE:  printConfig,
	}
	addGridFlags(configCmd)
	configCmd.Flags().StringVarP(&configOut, "out", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(runCmd, guiCmd, benchCmd, listCmd, plotCmd, snapshotCmd, patternsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		var be *render.BackendError
		if errors.As(err, &be) {
			fmt.Fprintf(os.Stderr, "\n  cannot start: %v\n\n", be)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func addGridFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&engineName, "engine", config.DefaultEngine, "automaton engine")
	f.IntVar(&width, "width", geometry.DefaultWidth, "grid width in cells")
	f.IntVar(&height, "height", geometry.DefaultHeight, "grid height in cells")
	f.IntVar(&cellSize, "cell", geometry.DefaultCellSize, "cell size in pixels")
	f.Float64Var(&speed, "speed", 50, "speed control 0..100 (50 is one tick per frame)")
	f.Float64Var(&density, "density", config.DefaultDensity, "random fill percentage")
	f.BoolVar(&autoStart, "autostart", false, "start running immediately")
	f.IntVar(&window, "window", 100, "frames in the fps window")
	f.IntVar(&tps, "tps", config.DefaultTPS, "frame callbacks per second")
	f.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	f.StringVar(&theme, "theme", config.DefaultTheme, "colour theme ("+strings.Join(tui.ThemeNames(), ", ")+")")
	f.StringVar(&insertMode, "mode", "toggle", "click insertion mode (toggle, seed)")
	f.StringVar(&pattern, "pattern", config.DefaultPattern, "seed pattern for clicks")
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("engine") {
		cfg.Engine = engineName
	}
	if f.Changed("width") {
		cfg.Geometry.Width = width
	}
	if f.Changed("height") {
		cfg.Geometry.Height = height
	}
	if f.Changed("cell") {
		cfg.Geometry.CellSize = cellSize
	}
	if f.Changed("speed") {
		cfg.Speed = speed
	}
	if f.Changed("density") {
		cfg.Density = density
	}
	if f.Changed("autostart") {
		cfg.AutoStart = autoStart
	}
	if f.Changed("window") {
		cfg.Window = window
	}
	if f.Changed("tps") {
		cfg.TPS = tps
	}
	if f.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if f.Changed("theme") {
		cfg.Theme = theme
	}
	if f.Changed("mode") {
		cfg.Insertion.Mode = insertMode
	}
	if f.Changed("pattern") {
		cfg.Insertion.Pattern = pattern
	}

	requested := cfg.Geometry
	cfg.Normalize()
	if cfg.Geometry != requested {
		fmt.Fprintf(os.Stderr, "geometry %s out of range, using %s\n", requested, cfg.Geometry)
	}
	return cfg, nil
}

func setup(cmd *cobra.Command) (*config.Config, engine.Factory, *log.Logger, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	factory, err := engine.Lookup(cfg.Engine)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("%w (available: %v)", err, engine.Names())
	}

	logger := log.New(io.Discard, "", 0)
	cleanup := func() {}
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "lifesim")
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("open log: %w", err)
		}
		logger = log.Default()
		cleanup = func() { f.Close() }
	}
	logger.Printf("config %s speed=%.0f density=%.0f engine=%s", cfg.Geometry, cfg.Speed, cfg.Density, cfg.Engine)
	return cfg, factory, logger, cleanup, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, factory, logger, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	return tui.Run(cfg, factory, logger)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, factory, logger, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	return gui.Run(cfg, factory, logger)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, factory, logger, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := bench.Options{
		Config:  cfg,
		Factory: factory,
		Frames:  frames,
		Paced:   !unpaced,
		Logger:  logger,
	}

	fmt.Printf("benchmarking %s %s at speed %.0f for %d frames x %d runs\n\n", cfg.Engine, cfg.Geometry, cfg.Speed, frames, runs)

	var results []*bench.Result
	if runs > 1 {
		results, err = bench.Ensemble(ctx, opts, runs)
	} else {
		var live *tui.LiveReporter
		if progress {
			live = tui.NewLiveReporter(os.Stderr, 10)
			opts.Observers = append(opts.Observers, live)
		}
		var res *bench.Result
		res, err = bench.Run(ctx, opts)
		if live != nil {
			live.Done()
		}
		results = []*bench.Result{res}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tFRAMES\tGENERATIONS\tPOPULATION\tTIME\tFPS AVG\tFPS MIN\tFPS MAX")
	for _, r := range results {
		if r == nil {
			continue
		}
		t := r.State.Telemetry
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%v\t%.1f\t%.1f\t%.1f\n",
			r.Seed, len(r.Frames), r.State.Generation, r.Population,
			r.Elapsed.Round(time.Millisecond), t.Mean, t.Min, t.Max)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if r := results[0]; r != nil && len(r.Samples) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(r.Samples,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("fps, last %d frames (seed %d)", len(r.Samples), r.Seed))))
	}

	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	for _, r := range results {
		if r == nil {
			continue
		}
		id, err := st.Save(r.Metadata(cfg.Engine), r.Frames)
		if err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", id)
	}
	return nil
}

func listSessions(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	sessions, err := st.List()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no sessions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tENGINE\tTIME\tGEOMETRY\tSPEED\tFRAMES\tGENS\tFPS AVG")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%d\t%d\t%.1f\n",
			s.ID,
			s.Engine,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Geometry,
			s.Speed,
			s.Frames,
			s.Generations,
			s.Telemetry.Mean,
		)
	}
	return w.Flush()
}

func plotSession(cmd *cobra.Command, args []string) error {
	id := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	rows, err := st.LoadFrames(id)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}
	data, err := storage.Series(rows, column)
	if err != nil {
		return err
	}

	fmt.Printf("session: %s\n", meta.ID)
	fmt.Printf("engine: %s %s\n", meta.Engine, meta.Geometry)
	fmt.Printf("frames: %d\n\n", len(rows))

	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(column+" per frame"),
	))

	if svgFile != "" {
		if err := os.WriteFile(svgFile, []byte(export.SeriesToSVG(data, 800, 300, "#00ff88")), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgFile)
	}
	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, factory, _, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	e := factory(cfg.Geometry, cfg.Seed)
	e.Randomize(cfg.Density / 100)
	for i := 0; i < generations; i++ {
		e.Tick()
	}

	svg := export.GridToSVG(e, aliveColor, bgColor)
	if err := os.WriteFile(snapOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s, generation %d, population %d)\n",
		snapOut, cfg.Geometry, generations, engine.Population(e.Cells()))
	return nil
}

func listPatterns(cmd *cobra.Command, args []string) error {
	for _, name := range engine.Names() {
		fmt.Printf("%s:\n", name)
		factory, err := engine.Lookup(name)
		if err != nil {
			return err
		}
		pl, ok := factory(geometry.Default(), 0).(engine.PatternLister)
		if !ok {
			fmt.Println("  (no seed patterns)")
			continue
		}
		for _, p := range pl.Patterns() {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if configOut != "" {
		if err := config.Save(configOut, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", configOut)
		return nil
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}
