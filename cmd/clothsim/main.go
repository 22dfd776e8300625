package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/export"
	"github.com/san-kum/clothsim/internal/geom"
	"github.com/san-kum/clothsim/internal/gui"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/solver"
	"github.com/san-kum/clothsim/internal/storage"
	"github.com/san-kum/clothsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	rows         int
	cols         int
	spacing      float64
	gravity      float64
	damping      float64
	iterations   int
	stretchLimit float64
	timeScale    float64
	fps          int

	ticks   int
	dt      float64
	outPath string
	metric  string
	svgPath string
)

// addClothFlags registers the shared cloth tuning flags on a command.
func addClothFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "grid rows")
	cmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "grid columns")
	cmd.Flags().Float64Var(&spacing, "spacing", config.DefaultSpacing, "rest distance between particles")
	cmd.Flags().Float64Var(&gravity, "gravity", 0.35, "per-tick gravity")
	cmd.Flags().Float64Var(&damping, "damping", 0.98, "velocity damping")
	cmd.Flags().IntVar(&iterations, "iterations", 8, "constraint relaxation passes per tick")
	cmd.Flags().Float64Var(&stretchLimit, "stretch-limit", 5.0, "tear threshold as a multiple of rest length")
	cmd.Flags().Float64Var(&timeScale, "time-scale", 1.5, "wind time scale")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves preset, then config file, then explicit flags, in
// increasing precedence, and validates the result.
func buildConfig(cmd *cobra.Command) (*config.Config, string, error) {
	presetName := "default"
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
		presetName = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("rows") {
		cfg.Rows = rows
	}
	if cmd.Flags().Changed("cols") {
		cfg.Cols = cols
	}
	if cmd.Flags().Changed("spacing") {
		cfg.Spacing = spacing
	}
	if cmd.Flags().Changed("gravity") {
		cfg.Gravity = gravity
	}
	if cmd.Flags().Changed("damping") {
		cfg.Damping = damping
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Iterations = iterations
	}
	if cmd.Flags().Changed("stretch-limit") {
		cfg.StretchLimit = stretchLimit
	}
	if cmd.Flags().Changed("time-scale") {
		cfg.TimeScale = timeScale
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = fps
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, presetName, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "clothsim",
		Short: "interactive verlet cloth simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}
	addClothFlags(rootCmd)

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".clothsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless simulation and record metrics",
		RunE:  runSimulation,
	}
	addClothFlags(runCmd)
	runCmd.Flags().IntVar(&ticks, "ticks", 600, "number of ticks")
	runCmd.Flags().Float64Var(&dt, "dt", 1.0/60.0, "simulated seconds per tick")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation in the terminal",
		RunE:  runLive,
	}
	addClothFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run simulation in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}
	addClothFlags(guiCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&metric, "metric", "", "plot only this metric")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "write the plot as svg to this path")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "simulate and write the cloth wireframe as svg",
		RunE:  snapshotSVG,
	}
	addClothFlags(snapshotCmd)
	snapshotCmd.Flags().IntVar(&ticks, "ticks", 600, "ticks to simulate before the snapshot")
	snapshotCmd.Flags().Float64Var(&dt, "dt", 1.0/60.0, "simulated seconds per tick")
	snapshotCmd.Flags().StringVar(&outPath, "out", "cloth.svg", "output path")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run metrics to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&outPath, "out", "", "output path (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "", "output path (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, snapshotCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, presetName, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	mesh, err := cfg.Mesh()
	if err != nil {
		return err
	}
	sim, err := solver.New(mesh, cfg.Solver())
	if err != nil {
		return err
	}
	for _, m := range metrics.Standard() {
		sim.AddMetric(m)
	}

	fmt.Printf("simulating %dx%d cloth for %d ticks...\n", cfg.Rows, cfg.Cols, ticks)
	start := time.Now()

	result, err := sim.Run(context.Background(), ticks, dt)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(presetName, cfg, dt, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.Ticks)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tGRID\tTICKS\tDT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%.4fs\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rows,
			run.Cols,
			run.Ticks,
			run.Dt,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, times, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	names := make([]string, 0, len(series))
	for name := range series {
		if metric != "" && name != metric {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return fmt.Errorf("no such metric: %s", metric)
	}

	if svgPath != "" {
		if len(names) > 1 {
			return fmt.Errorf("svg output needs --metric")
		}
		svg := export.SeriesToSVG(times, series[names[0]], 800, 400, "#32c8ff")
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
		return nil
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d\n", meta.Rows, meta.Cols)
	fmt.Printf("samples: %d\n\n", len(times))

	for _, name := range names {
		graph := asciigraph.Plot(series[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func snapshotSVG(cmd *cobra.Command, args []string) error {
	cfg, _, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	mesh, err := cfg.Mesh()
	if err != nil {
		return err
	}
	sim, err := solver.New(mesh, cfg.Solver())
	if err != nil {
		return err
	}

	if _, err := sim.Run(context.Background(), ticks, dt); err != nil {
		return err
	}

	svg := export.MeshToSVG(mesh, cfg.Camera(), geom.Vec2{X: 1400, Y: 900})
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	if outPath != "" {
		if err := st.ExportCSV(runID, outPath); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outPath)
		return nil
	}

	series, times, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to export")
	}

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(append([]string{"time"}, names...)); err != nil {
		return err
	}
	for i := range times {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, name := range names {
			col := series[name]
			if i < len(col) {
				row = append(row, strconv.FormatFloat(col[i], 'f', 6, 64))
			} else {
				row = append(row, "0")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	if outPath == "" {
		return st.ExportJSONTo(runID, os.Stdout)
	}
	if err := st.ExportJSON(runID, outPath); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}
