package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/fractview/internal/config"
	"github.com/san-kum/fractview/internal/control"
	"github.com/san-kum/fractview/internal/export"
	"github.com/san-kum/fractview/internal/fractal"
	"github.com/san-kum/fractview/internal/gui"
	"github.com/san-kum/fractview/internal/logx"
	"github.com/san-kum/fractview/internal/scheduler"
	"github.com/san-kum/fractview/internal/session"
	"github.com/san-kum/fractview/internal/storage"
	"github.com/san-kum/fractview/internal/surface"
	"github.com/san-kum/fractview/internal/viz"
)

var (
	dataDir    string
	configFile string
	verbose    bool

	// render / batch
	preset  string
	width   int
	height  int
	outPath string
	outDir  string
	svgOut  bool
	save    bool
	jobs    int

	backend string
	theme   string
)

// main is the entry point for the fractview CLI. With no subcommand it
// opens the terminal fractal picker.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fractview",
		Short: "interactive fractal explorer",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logx.SetLogger(logx.NewText(os.Stderr, true))
			}
		},
		RunE: runMenu,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fractview", "render archive directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "cyberpunk", "terminal colour theme")

	viewCmd := &cobra.Command{
		Use:   "view [fractal]",
		Short: "explore a fractal in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runView,
	}

	guiCmd := &cobra.Command{
		Use:   "gui [fractal]",
		Short: "explore a fractal in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	guiCmd.Flags().StringVar(&backend, "backend", gui.BackendRaylib, "window backend ("+strings.Join(gui.Backends(), ", ")+")")
	guiCmd.Flags().IntVar(&width, "width", 0, "window width (default from config)")
	guiCmd.Flags().IntVar(&height, "height", 0, "window height (default from config)")

	renderCmd := &cobra.Command{
		Use:   "render [fractal]",
		Short: "render a fractal to PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&preset, "preset", "", "named view to render")
	renderCmd.Flags().IntVar(&width, "width", 0, "image width (default from config)")
	renderCmd.Flags().IntVar(&height, "height", 0, "image height (default from config)")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <fractal>.png)")
	renderCmd.Flags().BoolVar(&svgOut, "svg", false, "also write the vector curve (koch only)")
	renderCmd.Flags().BoolVar(&save, "save", false, "archive the render under --data")

	batchCmd := &cobra.Command{
		Use:   "batch [fractal]",
		Short: "render every preset of a fractal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().IntVar(&width, "width", 0, "image width (default from config)")
	batchCmd.Flags().IntVar(&height, "height", 0, "image height (default from config)")
	batchCmd.Flags().StringVarP(&outDir, "out", "o", "renders", "output directory")
	batchCmd.Flags().IntVar(&jobs, "jobs", 2, "concurrent renders")
	batchCmd.Flags().BoolVar(&save, "save", false, "archive every render under --data")

	benchCmd := &cobra.Command{
		Use:   "bench [fractal]",
		Short: "time renders at increasing zoom",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&width, "width", 0, "image width (default from config)")
	benchCmd.Flags().IntVar(&height, "height", 0, "image height (default from config)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived renders",
		RunE:  listRenders,
	}

	infoCmd := &cobra.Command{
		Use:   "info [render_id]",
		Short: "print archived render metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  renderInfo,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [render_id]",
		Short: "remove an archived render",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := storage.New(dataDir).Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	fractalsCmd := &cobra.Command{
		Use:   "list-fractals",
		Short: "list available fractals",
		RunE:  listFractals,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [fractal]",
		Short: "list available presets for a fractal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Fprintf(out, "no presets for fractal: %s\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "presets for %s:\n", args[0])
			for _, name := range names {
				p, _ := config.GetPreset(args[0], name)
				fmt.Fprintf(out, "  %-10s center %.10g, %.10g  span %g\n", name, p.CX, p.CY, p.Span)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "fractview.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(viewCmd, guiCmd, renderCmd, batchCmd, benchCmd, listCmd, infoCmd, deleteCmd, fractalsCmd, presetsCmd, initCmd)
	return rootCmd
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logx.Logger().Info("config loaded", "path", configFile)
	return cfg, nil
}

// imageSize prefers the --width/--height flags over the config.
func imageSize(cfg *config.Config) (int, int, error) {
	w, h := cfg.Width, cfg.Height
	if width > 0 {
		w = width
	}
	if height > 0 {
		h = height
	}
	if width < 0 || height < 0 {
		return 0, 0, fmt.Errorf("invalid size %dx%d", width, height)
	}
	return w, h, nil
}

func fractalArg(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Fractal
}

// newController wires a session for an interactive frontend.
func newController(cfg *config.Config, id string) (*control.Controller, error) {
	reg := fractal.Default(cfg)
	if _, err := reg.Lookup(id); err != nil {
		return nil, err
	}
	opts := scheduler.Options{
		SettleFrames: cfg.SettleFrames,
		IdleDelay:    cfg.IdleDelay(),
		HistorySize:  scheduler.DefaultHistorySize,
	}
	return control.New(session.New(reg, id, opts)), nil
}

func runTUI(model tea.Model) error {
	viz.SetTheme(theme)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func runMenu(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctrl, err := newController(cfg, cfg.Fractal)
	if err != nil {
		return err
	}
	return runTUI(viz.NewMenu(ctrl))
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctrl, err := newController(cfg, fractalArg(cfg, args))
	if err != nil {
		return err
	}
	return runTUI(viz.NewModel(ctrl))
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	w, h, err := imageSize(cfg)
	if err != nil {
		return err
	}
	ctrl, err := newController(cfg, fractalArg(cfg, args))
	if err != nil {
		return err
	}

	opts := gui.DefaultOptions()
	opts.Width, opts.Height = w, h
	return gui.Run(backend, ctrl, opts)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	w, h, err := imageSize(cfg)
	if err != nil {
		return err
	}
	id := fractalArg(cfg, args)

	res, err := renderHeadless(fractal.Default(cfg), renderJob{
		Fractal: id,
		Preset:  preset,
		Width:   w,
		Height:  h,
		SVG:     svgOut,
	})
	if err != nil {
		return err
	}

	out := outPath
	if out == "" {
		out = id + ".png"
	}
	if err := writeResult(out, res); err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	fmt.Fprintf(stdout, "rendered %s %dx%d in %v (%s)\n", id, w, h, res.Elapsed.Round(time.Microsecond), res.Detail)
	fmt.Fprintf(stdout, "wrote %s\n", out)
	if res.SVG != "" {
		fmt.Fprintf(stdout, "wrote %s\n", svgPath(out))
	}

	if save {
		runID, err := archive(id, preset, w, h, res)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "render id: %s\n", runID)
	}
	return nil
}

func svgPath(pngPath string) string {
	return strings.TrimSuffix(pngPath, filepath.Ext(pngPath)) + ".svg"
}

func writeResult(out string, res *renderResult) error {
	if err := export.WritePNG(out, res.Image); err != nil {
		return err
	}
	if res.SVG != "" {
		return export.WriteSVG(svgPath(out), res.SVG)
	}
	return nil
}

func archive(id, presetName string, w, h int, res *renderResult) (string, error) {
	meta := storage.RenderMetadata{
		Fractal:  id,
		Preset:   presetName,
		Width:    w,
		Height:   h,
		View:     res.View,
		Detail:   res.Detail,
		RenderMs: float64(res.Elapsed) / float64(time.Millisecond),
	}
	return storage.New(dataDir).Save(meta, res.Image, res.SVG)
}

type batchEntry struct {
	preset string
	path   string
	res    *renderResult
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	w, h, err := imageSize(cfg)
	if err != nil {
		return err
	}
	id := fractalArg(cfg, args)
	reg := fractal.Default(cfg)
	if _, err := reg.Lookup(id); err != nil {
		return err
	}

	names := config.ListPresets(id)
	if len(names) == 0 {
		return fmt.Errorf("no presets for fractal: %s", id)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	entries := make([]batchEntry, len(names))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(1, jobs))
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := renderHeadless(reg, renderJob{
				Fractal: id,
				Preset:  name,
				Width:   w,
				Height:  h,
				SVG:     id == "koch",
			})
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			path := filepath.Join(outDir, fmt.Sprintf("%s_%s.png", id, name))
			if err := writeResult(path, res); err != nil {
				return err
			}
			if save {
				if _, err := archive(id, name, w, h, res); err != nil {
					return err
				}
			}
			entries[i] = batchEntry{preset: name, path: path, res: res}
			logx.Logger().Debug("batch render done", "preset", name, "duration", res.Elapsed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRESET\tDETAIL\tTIME\tFILE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%v\t%s\n", e.preset, e.res.Detail, e.res.Elapsed.Round(time.Microsecond), e.path)
	}
	return tw.Flush()
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	w, h, err := imageSize(cfg)
	if err != nil {
		return err
	}
	id := fractalArg(cfg, args)
	reg := fractal.Default(cfg)
	if _, err := reg.Lookup(id); err != nil {
		return err
	}

	sess := session.New(reg, id, scheduler.Options{})
	sess.ViewportResized(surface.New(w, h))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %s at %dx%d\n\n", id, w, h)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ZOOM\tSPAN\tDETAIL\tTIME\tMPIX/SEC")

	for zoom := 0; zoom <= 12; zoom += 3 {
		if zoom > 0 {
			sess.ZoomCenter(1.0 / 8)
		}
		sess.Scheduler().PerformRender()
		elapsed := sess.Scheduler().Stats().Last
		mpix := float64(w*h) / 1e6 / max(elapsed.Seconds(), 1e-9)
		fmt.Fprintf(tw, "8^%d\t%.3g\t%s\t%v\t%.1f\n",
			zoom/3, sess.View().YSpan(), sess.Detail(), elapsed.Round(time.Microsecond), mpix)
	}
	return tw.Flush()
}

func listRenders(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no renders found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFRACTAL\tPRESET\tTIME\tSIZE\tDETAIL\tRENDER")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dx%d\t%s\t%.1fms\n",
			run.ID,
			run.Fractal,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width,
			run.Height,
			run.Detail,
			run.RenderMs,
		)
	}

	return w.Flush()
}

func renderInfo(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	info := struct {
		*storage.RenderMetadata
		Image string `json:"image"`
	}{meta, st.ImagePath(meta.ID)}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}

func listFractals(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg := fractal.Default(cfg)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tID\tNAME\tPRESETS")
	for i, id := range reg.IDs() {
		f, err := reg.Lookup(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, id, f.Name(), strings.Join(config.ListPresets(id), ", "))
	}
	return w.Flush()
}
