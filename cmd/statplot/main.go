package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/gin-gonic/gin"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/statplot/internal/analysis"
	"github.com/san-kum/statplot/internal/chart"
	"github.com/san-kum/statplot/internal/config"
	"github.com/san-kum/statplot/internal/dataset"
	"github.com/san-kum/statplot/internal/export"
	"github.com/san-kum/statplot/internal/logging"
	"github.com/san-kum/statplot/internal/scale"
	"github.com/san-kum/statplot/internal/server"
	"github.com/san-kum/statplot/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataPath   string
	configFile string
	layoutName string
	logLevel   string
	logFile    string
	// serve
	addr string
	// render / analyze
	xField  string
	yField  string
	format  string
	outPath string
)

// main registers the statplot commands; with no subcommand it opens the
// terminal chart.
func main() {
	rootCmd := &cobra.Command{
		Use:          "statplot",
		Short:        "state health and education scatter chart",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataPath, "data", config.DefaultData, "dataset csv path")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&layoutName, "layout", "", "layout preset (see layouts)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also append logs to this file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the interactive chart over http",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the chart to svg or png",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&xField, "x", "", "x axis field (obese, currentSmoker)")
	renderCmd.Flags().StringVar(&format, "format", "svg", "output format: svg or png")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "print the analysis statement for an axis pairing",
		Args:  cobra.NoArgs,
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().StringVar(&xField, "x", "", "x axis field (obese, currentSmoker)")
	analyzeCmd.Flags().StringVar(&yField, "y", "", "y axis field (bachelorOrHigher, highSchoolGrad)")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "plot each column and its padded bounds",
		Args:  cobra.NoArgs,
		RunE:  runSummary,
	}

	layoutsCmd := &cobra.Command{
		Use:   "layouts",
		Short: "list layout presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tPLOT\tRADIUS")
			for _, name := range config.ListPresets() {
				l := config.Presets[name]
				fmt.Fprintf(w, "%s\t%.0fx%.0f\t%.0fx%.0f\t%.0f\n", name, l.Width, l.Height, l.InnerWidth, l.InnerHeight, l.MarkRadius)
			}
			return w.Flush()
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default config as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "statplot.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(serveCmd, renderCmd, analyzeCmd, summaryCmd, layoutsCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSettings merges the config file, layout preset and flags. Flags win
// only when set explicitly.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("data") || configFile == "" {
		cfg.Data = dataPath
	}
	if layoutName != "" {
		l := config.GetPreset(layoutName)
		if l == nil {
			return nil, fmt.Errorf("unknown layout: %s (available: %v)", layoutName, config.ListPresets())
		}
		cfg.Layout = *l
	}
	if f := cmd.Flags().Lookup("addr"); f != nil && (f.Changed || configFile == "") {
		cfg.Addr = addr
	}
	return cfg, nil
}

// buildController loads the dataset and renders the first frame. A load
// failure ends the command.
func buildController(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*chart.Controller, error) {
	ds, err := dataset.Load(ctx, cfg.Data)
	if err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}

	table, err := cfg.AnalysisTable()
	if err != nil {
		return nil, err
	}

	labels := make(map[dataset.Field]string)
	for _, f := range append(append([]dataset.Field{}, dataset.Horizontal...), dataset.Vertical...) {
		labels[f] = cfg.Label(f)
	}

	x, y := cfg.Axes()
	ctrl := chart.New(ds, cfg.Layout,
		chart.WithAnalysis(table),
		chart.WithLabels(labels),
		chart.WithDefaultAxes(x, y),
	)
	if err := ctrl.Initialize(); err != nil {
		return nil, err
	}
	return ctrl, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	ctrl, err := buildController(cmd.Context(), cmd, cfg)
	if err != nil {
		return err
	}
	return viz.Run(ctrl)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.Init(logFile, logLevel)
	if err != nil {
		return err
	}
	defer logging.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl, err := buildController(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	logger.Info("dataset loaded", "path", cfg.Data, "records", ctrl.Dataset().Len())

	gin.SetMode(gin.ReleaseMode)
	return server.New(ctrl, logger).Run(ctx, cfg.Addr)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	ctrl, err := buildController(cmd.Context(), cmd, cfg)
	if err != nil {
		return err
	}

	if xField != "" {
		f, err := dataset.ParseField(xField)
		if err != nil {
			return err
		}
		if _, err := ctrl.OnAxisLabelClick(f); err != nil {
			return err
		}
	}

	if format != "svg" && format != "png" {
		return fmt.Errorf("unknown format: %s (available: svg, png)", format)
	}

	var w io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		file, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}

	if format == "png" {
		err = export.SceneToPNG(w, ctrl.Scene())
	} else {
		_, err = io.WriteString(w, export.SceneToSVG(ctrl.Scene()))
	}
	if err != nil {
		return err
	}
	if outPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (x=%s, y=%s)\n", outPath, ctrl.State().X, ctrl.State().Y)
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	table, err := cfg.AnalysisTable()
	if err != nil {
		return err
	}

	pairs := analysis.Pairs()
	if xField != "" || yField != "" {
		x, y := cfg.Axes()
		if xField != "" {
			if x, err = dataset.ParseField(xField); err != nil {
				return err
			}
		}
		if yField != "" {
			if y, err = dataset.ParseField(yField); err != nil {
				return err
			}
		}
		pairs = []analysis.Pair{{X: x, Y: y}}
	}

	for _, p := range pairs {
		text := table.Text(p.X, p.Y)
		if text == "" {
			return fmt.Errorf("no analysis for %s/%s", p.X, p.Y)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s vs %s:\n  %s\n", cfg.Label(p.X), cfg.Label(p.Y), text)
	}
	return nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	ds, err := dataset.Load(cmd.Context(), cfg.Data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "dataset: %s\n", cfg.Data)
	fmt.Fprintf(out, "records: %d\n\n", ds.Len())

	fields := []dataset.Field{dataset.Obese, dataset.CurrentSmoker, dataset.BachelorOrHigher, dataset.HighSchoolGrad}
	for _, f := range fields {
		if !ds.Has(f) {
			continue
		}
		values := finiteSorted(ds.Values(f))
		if len(values) < 2 {
			continue
		}
		graph := asciigraph.Plot(values,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption(cfg.Label(f)+" (sorted)"),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "X\tY\tX RANGE\tY RANGE")
	y := dataset.BachelorOrHigher
	for _, x := range dataset.Horizontal {
		b := scale.ComputeBounds(ds.Values(x), ds.Values(y))
		fmt.Fprintf(w, "%s\t%s\t[%.2f, %.2f]\t[%.2f, %.2f]\n", x, y, b.XMin, b.XMax, b.YMin, b.YMax)
	}
	return w.Flush()
}

func finiteSorted(vs []float64) []float64 {
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}
