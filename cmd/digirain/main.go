package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/G00405014/digital-rain/internal/config"
	"github.com/G00405014/digital-rain/internal/export"
	"github.com/G00405014/digital-rain/internal/metrics"
	"github.com/G00405014/digital-rain/internal/rain"
	"github.com/G00405014/digital-rain/internal/render"
	"github.com/G00405014/digital-rain/internal/session"
	"github.com/G00405014/digital-rain/internal/storage"
)

var (
	dataDir    string
	width      int
	height     int
	speed      string
	mode       string
	tail       int
	seed       int64
	configFile string
	preset     string
	logLevel   string
	// record
	quiet bool
	// plot
	column int
	// bench
	benchFrames int
	// snapshot
	snapshotFrame int
	outputFile    string
)

// main registers the digirain commands and runs the animation when no
// subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "digirain",
		Short:        "digital rain in the terminal",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runAnimation,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".digirain", "data directory for recorded runs")
	pf.IntVar(&width, "width", config.DefaultWidth, "grid width in columns")
	pf.IntVar(&height, "height", config.DefaultHeight, "grid height in rows")
	pf.StringVar(&speed, "speed", config.DefaultSpeed, "frame speed ("+strings.Join(speedNames(), ", ")+")")
	pf.StringVar(&mode, "mode", config.DefaultMode, "display mode ("+strings.Join(modeNames(), ", ")+")")
	pf.IntVar(&tail, "tail", config.DefaultTail, "tail length in rows, 0 for the full column above the head")
	pf.Int64Var(&seed, "seed", 0, "random seed, 0 for a time based seed")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "error", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the animation until interrupted",
		Args:  cobra.NoArgs,
		RunE:  runAnimation,
	}

	framesCmd := &cobra.Command{
		Use:   "frames [count]",
		Short: "render a fixed number of frames and exit",
		Args:  cobra.ExactArgs(1),
		RunE:  runFrames,
	}

	recordCmd := &cobra.Command{
		Use:   "record [count]",
		Short: "render frames and store head positions",
		Args:  cobra.ExactArgs(1),
		RunE:  recordRun,
	}
	recordCmd.Flags().BoolVar(&quiet, "quiet", false, "discard frames instead of drawing them")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a column's head row over a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&column, "column", 0, "column to plot")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a recorded run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [run_id]",
		Short: "export one recorded frame as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotRun,
	}
	snapshotCmd.Flags().IntVar(&snapshotFrame, "frame", 0, "frame index")
	snapshotCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame rendering",
		Args:  cobra.NoArgs,
		RunE:  benchRender,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 200, "frames per grid size")

	modesCmd := &cobra.Command{
		Use:   "modes",
		Short: "list display modes",
		Args:  cobra.NoArgs,
		RunE:  listModes,
	}

	speedsCmd := &cobra.Command{
		Use:   "speeds",
		Short: "list speeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SPEED\tDELAY")
			for _, s := range rain.Speeds() {
				fmt.Fprintf(w, "%s\t%v\n", s, s.Delay())
			}
			return w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tSIZE\tSPEED\tMODE\tTAIL")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%dx%d\t%s\t%s\t%d\n", name, p.Width, p.Height, p.Speed, p.Mode, p.Tail)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, framesCmd, recordCmd, listCmd, plotCmd, exportCmd, snapshotCmd, benchCmd, modesCmd, speedsCmd, presetsCmd, configCmd)
	return rootCmd
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order, and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("tail") {
		cfg.Tail = tail
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func newSession(cmd *cobra.Command, out io.Writer) (*session.Session, *slog.Logger, error) {
	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	s, err := session.New(cfg, out, logger)
	if err != nil {
		return nil, nil, err
	}
	return s, logger, nil
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runAnimation(cmd *cobra.Command, args []string) error {
	s, _, err := newSession(cmd, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func parseCount(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("frame count must be a positive integer, got %q", arg)
	}
	return n, nil
}

func runFrames(cmd *cobra.Command, args []string) error {
	n, err := parseCount(args[0])
	if err != nil {
		return err
	}

	s, logger, err := newSession(cmd, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	result, err := s.RunFrames(ctx, n)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if result != nil {
		logger.Info("frames rendered", "frames", result.Frames, "elapsed", result.Elapsed)
	}
	return nil
}

func recordRun(cmd *cobra.Command, args []string) error {
	n, err := parseCount(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if quiet {
		out = io.Discard
	}

	s, logger, err := newSession(cmd, out)
	if err != nil {
		return err
	}
	if quiet {
		s.Animator().SetDelay(0)
	}

	recorder := storage.NewRecorder()
	s.Animator().AddObserver(recorder)
	s.Animator().AddMetric(metrics.NewWraps())
	s.Animator().AddMetric(metrics.NewRenderTime(false))
	s.Animator().AddMetric(metrics.NewFrameBytes())

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	result, err := s.RunFrames(ctx, n)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	cfg := s.Config()
	runID, err := st.Save(storage.RunMetadata{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Speed:   cfg.Speed,
		Mode:    cfg.Mode,
		Tail:    cfg.Tail,
		Seed:    s.Seed(),
		Metrics: result.Metrics,
	}, recorder.Frames())
	if err != nil {
		return err
	}

	logger.Info("run recorded", "id", runID, "frames", result.Frames)
	fmt.Fprintf(cmd.ErrOrStderr(), "saved run %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tSPEED\tMODE\tTAIL\tFRAMES\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width,
			run.Height,
			run.Speed,
			run.Mode,
			run.Tail,
			run.Frames,
			run.Seed,
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

	frames, err := st.LoadPositions(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if column < 0 || column >= meta.Width {
		return fmt.Errorf("column %d out of range [0, %d)", column, meta.Width)
	}

	data := make([]float64, 0, len(frames))
	for _, positions := range frames {
		if column < len(positions) {
			data = append(data, float64(positions[column]))
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "grid: %dx%d, mode %s\n", meta.Width, meta.Height, meta.Mode)
	fmt.Fprintf(out, "frames: %d\n\n", len(frames))

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(float64(meta.Height-1)),
		asciigraph.Caption(fmt.Sprintf("column %d head row per frame", column)),
	)
	fmt.Fprintln(out, graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).Export(cmd.OutOrStdout(), args[0])
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadPositions(runID)
	if err != nil {
		return err
	}
	if snapshotFrame < 0 || snapshotFrame >= len(frames) {
		return fmt.Errorf("frame %d out of range [0, %d)", snapshotFrame, len(frames))
	}

	m, err := rain.ParseMode(meta.Mode)
	if err != nil {
		return err
	}
	g, err := rain.New(meta.Width, meta.Height)
	if err != nil {
		return err
	}
	if err := g.SetPositions(frames[snapshotFrame]); err != nil {
		return err
	}

	svg := export.FrameToSVG(g, m, meta.Tail, 10)
	if outputFile == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), svg)
		return err
	}
	if err := os.WriteFile(outputFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outputFile)
	return nil
}

func benchRender(cmd *cobra.Command, args []string) error {
	if benchFrames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", benchFrames)
	}

	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sizes := [][2]int{{40, 12}, {80, 24}, {160, 48}, {320, 96}}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %s mode, %d frames per size\n\n", base.Mode, benchFrames)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tFRAMES\tTIME\tFRAMES/SEC\tBYTES/FRAME\tRENDER MS")

	var last *metrics.RenderTime
	for _, size := range sizes {
		cfg := base.Clone()
		cfg.Width, cfg.Height = size[0], size[1]
		if cfg.Seed == 0 {
			cfg.Seed = 42
		}

		s, err := session.New(cfg, io.Discard, nil)
		if err != nil {
			return err
		}
		s.Animator().SetDelay(0)

		renderTime := metrics.NewRenderTime(true)
		frameBytes := metrics.NewFrameBytes()
		s.Animator().AddMetric(renderTime)
		s.Animator().AddMetric(frameBytes)

		start := time.Now()
		result, err := s.RunFrames(cmd.Context(), benchFrames)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%dx%d\t%d\t%v\t%.0f\t%.0f\t%.4f\n",
			size[0], size[1], result.Frames, elapsed,
			float64(result.Frames)/elapsed.Seconds(),
			frameBytes.Value(), renderTime.Value())
		last = renderTime
	}

	if err := w.Flush(); err != nil {
		return err
	}

	if last != nil && len(last.Samples()) > 1 {
		largest := sizes[len(sizes)-1]
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(last.Samples(),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("render ms per frame, %dx%d", largest[0], largest[1])),
		))
	}
	return nil
}

func listModes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tHEAD\tTAIL\tSAMPLE")
	for _, m := range rain.Modes() {
		st := render.StyleFor(m)
		head := lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(int(st.Bright)))).Bold(true)
		dim := lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(int(st.Dim))))
		sample := dim.Render(strings.Repeat(string(st.TailChar), 3)) + head.Render(string(st.HeadChar))
		fmt.Fprintf(w, "%s\t%s %s\t%s %s\t%s\n",
			m, string(st.HeadChar), st.Bright.Sequence(false), string(st.TailChar), st.Dim.Sequence(false), sample)
	}
	return w.Flush()
}

func speedNames() []string {
	names := make([]string, 0, rain.SpeedCount)
	for _, s := range rain.Speeds() {
		names = append(names, s.String())
	}
	return names
}

func modeNames() []string {
	names := make([]string, 0, rain.ModeCount)
	for _, m := range rain.Modes() {
		names = append(names, m.String())
	}
	return names
}
