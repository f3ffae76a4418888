package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pinchlab/internal/config"
	"pinchlab/internal/export"
	"pinchlab/internal/metrics"
	"pinchlab/internal/server"
	"pinchlab/internal/session"
	"pinchlab/internal/viz"
	"pinchlab/internal/world"
)

var (
	configFile string
	preset     string
	seed       int64
	width      float64
	height     float64
	ticks      int
	scriptFile string
	jsonOut    string
	csvOut     string
	frameRate  int
	serveAddr  string
	tickHz     int
	metricName string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pinchlab",
		Short: "soft-body and rigid-body gesture sandbox",
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "tuning config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "playroom", "scene preset")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	rootCmd.PersistentFlags().Float64Var(&width, "width", 960, "world width")
	rootCmd.PersistentFlags().Float64Var(&height, "height", 540, "world height")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless scripted session",
		RunE:  runSession,
	}
	runCmd.Flags().StringVar(&scriptFile, "script", "", "input script file (yaml)")
	runCmd.Flags().IntVar(&ticks, "ticks", 600, "ticks to simulate when no script is given")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "write result json to file")
	runCmd.Flags().StringVar(&csvOut, "csv", "", "write metric series csv to file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the world over websocket",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().IntVar(&tickHz, "hz", 60, "simulation tick rate")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "run headless and plot a metric series",
		RunE:  plotMetric,
	}
	plotCmd.Flags().StringVar(&scriptFile, "script", "", "input script file (yaml)")
	plotCmd.Flags().IntVar(&ticks, "ticks", 600, "ticks to simulate when no script is given")
	plotCmd.Flags().StringVar(&metricName, "metric", "kinetic_energy", "metric to plot")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scene presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				scene := config.GetPreset(name)
				fmt.Printf("  %-10s %d objects\n", name, len(scene.Spawns))
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, serveCmd, plotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildWorld assembles a world from the shared flags: tuning from the
// config file if given, scene layout from the preset.
func buildWorld() (*world.World, error) {
	scene := config.GetPreset(preset)
	if scene == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	cfg := scene.Tuning
	if cfg == nil {
		cfg = config.DefaultTuning()
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	w := world.New(cfg, width, height, seed)
	for _, s := range scene.Spawns {
		w.Spawn(s)
	}
	return w, nil
}

func loadOrSynthScript() (*session.Script, error) {
	if scriptFile != "" {
		return session.LoadScript(scriptFile)
	}
	return &session.Script{Ticks: ticks, Seed: seed}, nil
}

// applyScriptDefaults lets a script pin the preset and seed of the run it
// describes, so replaying the file reproduces it. Explicit flags still win.
func applyScriptDefaults(script *session.Script, flagChanged func(string) bool) {
	if script.Preset != "" && !flagChanged("preset") {
		preset = script.Preset
	}
	if script.Seed != 0 && !flagChanged("seed") {
		seed = script.Seed
	}
}

func runWithObservers(cmd *cobra.Command) (*session.Result, error) {
	script, err := loadOrSynthScript()
	if err != nil {
		return nil, err
	}
	applyScriptDefaults(script, cmd.Flags().Changed)

	w, err := buildWorld()
	if err != nil {
		return nil, err
	}

	runner := session.NewRunner(w, script)
	runner.AddObserver(metrics.NewConstraintError())
	runner.AddObserver(metrics.NewKineticEnergy())
	runner.AddObserver(metrics.NewQuatDrift())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runner.Run(ctx)
}

func runSession(cmd *cobra.Command, args []string) error {
	start := time.Now()
	result, err := runWithObservers(cmd)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed %d ticks in %v\n", result.Ticks, elapsed)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	if jsonOut != "" {
		if err := export.SaveJSON(jsonOut, preset, seed, result); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", jsonOut)
	}
	if csvOut != "" {
		if err := export.SaveCSV(csvOut, result); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", csvOut)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	w, err := buildWorld()
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(w, frameRate))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	w, err := buildWorld()
	if err != nil {
		return err
	}

	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(serveAddr, tickHz, w, log)
	return srv.Run(ctx)
}

func plotMetric(cmd *cobra.Command, args []string) error {
	result, err := runWithObservers(cmd)
	if err != nil {
		return err
	}

	series, ok := result.Series[metricName]
	if !ok {
		names := make([]string, 0, len(result.Series))
		for name := range result.Series {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("unknown metric: %s (available: %v)", metricName, names)
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	graph := asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s over %d ticks", metricName, result.Ticks)),
	)
	fmt.Println(graph)
	return nil
}
