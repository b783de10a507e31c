package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ItsNotGoodName/x-smiley/internal/api"
	"github.com/ItsNotGoodName/x-smiley/internal/app"
	"github.com/ItsNotGoodName/x-smiley/internal/build"
	"github.com/ItsNotGoodName/x-smiley/internal/bus"
	"github.com/ItsNotGoodName/x-smiley/internal/canvas"
	"github.com/ItsNotGoodName/x-smiley/internal/config"
	"github.com/ItsNotGoodName/x-smiley/internal/core"
	"github.com/ItsNotGoodName/x-smiley/internal/grid"
	"github.com/ItsNotGoodName/x-smiley/internal/surface"
	"github.com/ItsNotGoodName/x-smiley/internal/xwm"
	"github.com/ItsNotGoodName/x-smiley/pkg/sutureext"
	"github.com/ItsNotGoodName/x-smiley/web"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/gogpu/gg"
	"github.com/jezek/xgb"
	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"github.com/phsym/console-slog"
	"github.com/spf13/cobra"
	"github.com/thejerf/suture/v4"
)

type Options struct {
	Debug  bool   `doc:"enable debug"`
	Host   string `doc:"host to listen on"`
	Port   int    `doc:"port to listen on" default:"8080"`
	Config string `doc:"config file" default:".x-smiley.yaml"`
	X11    bool   `doc:"open an X11 window"`
}

func main() {
	godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		InitLogger(options.Debug)

		OnServe(hooks, func(ctx context.Context) error {
			cfg, err := LoadConfig(options.Config)
			if err != nil {
				return err
			}

			super := sutureext.New("root")

			router, err := api.NewRouter(api.New(apiOptions(cfg)), web.FS())
			if err != nil {
				return err
			}
			sutureext.Add(super, api.NewServer(core.Address(options.Host, options.Port), router))

			if options.X11 {
				closer, err := AddX11(super, cfg)
				if err != nil {
					return err
				}
				defer closer.Close()
			}

			err = super.Serve(ctx)
			if errors.Is(err, suture.ErrTerminateSupervisorTree) {
				return nil
			}
			return err
		})
	})

	root := cli.Root()
	root.Use = "x-smiley"
	root.Version = build.Current.String()
	root.AddCommand(newRenderCommand(), newConfigCommand())

	cli.Run()
}

func InitLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	})))
	gg.SetLogger(slog.Default())
}

// OpenStore opens the config file at path, creating it with defaults when
// missing. An empty path keeps the config in memory.
func OpenStore(path string) (config.Store, error) {
	var driver config.Driver = config.NewMemory()
	if path != "" {
		configFilePath, err := filepath.Abs(path)
		if err != nil {
			return config.Store{}, err
		}
		driver = config.NewDriver(configFilePath)
	}

	return config.NewStore(driver)
}

func LoadConfig(path string) (config.Config, error) {
	store, err := OpenStore(path)
	if err != nil {
		return config.Config{}, err
	}
	return store.GetConfig()
}

func engine(cfg config.Config) grid.Engine {
	return grid.Engine{
		CellSize:   cfg.Grid.CellSize,
		MaxColumns: cfg.Grid.MaxColumns,
		MaxRows:    cfg.Grid.MaxRows,
		Scale:      cfg.Grid.Scale,
	}
}

func canvasOptions(cfg config.Config) canvas.Options {
	return canvas.HexOptions(cfg.Style.LineWidth, cfg.Style.Stroke, cfg.Style.Background)
}

func apiOptions(cfg config.Config) api.Options {
	return api.Options{
		Engine:     engine(cfg),
		ClickScale: cfg.ClickScale,
		Canvas:     canvasOptions(cfg),
	}
}

// AddX11 opens a window whose canvas is registered under the configured
// surface id and adds the window and its app to super.
func AddX11(super *suture.Supervisor, cfg config.Config) (io.Closer, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}

	hub := bus.NewHub[app.Event]()

	host, err := xwm.NewHost(conn, hub, xwm.HostOptions{
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		Title:   "x-smiley",
		Density: cfg.Density,
		Canvas:  canvasOptions(cfg),
	})
	if err != nil {
		conn.Close()
		return nil, err
	}

	registry := surface.NewRegistry()
	registry.Register(cfg.SurfaceID, host.Canvas())

	a, err := app.New(registry, cfg.SurfaceID, host, hub, app.Options{
		Engine:     engine(cfg),
		ClickScale: cfg.ClickScale,
		Presenter:  host,
	})
	if err != nil {
		host.Close()
		conn.Close()
		return nil, err
	}

	sutureext.Add(super, host)
	sutureext.Add(super, a)

	return core.MultiCloser{
		func() error { registry.Unregister(cfg.SurfaceID); return nil },
		host.Close,
		func() error { conn.Close(); return nil },
	}, nil
}

type RenderOptions struct {
	Width   float64
	Height  float64
	Density float64
	Format  string
	Output  string
	Click   []string
	Legacy  bool
}

func newRenderCommand() *cobra.Command {
	var opts RenderOptions
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the grid to an image file",
		Args:  cobra.NoArgs,
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, options *Options) {
			InitLogger(options.Debug)
			if err := runRender(options, opts); err != nil {
				log.Fatal(err)
			}
		}),
	}

	flags := cmd.Flags()
	flags.Float64Var(&opts.Width, "width", 800, "viewport width in logical pixels")
	flags.Float64Var(&opts.Height, "height", 600, "viewport height in logical pixels")
	flags.Float64Var(&opts.Density, "density", 1, "device pixel ratio")
	flags.StringVar(&opts.Format, "format", "png", "png, jpeg, bmp or tiff")
	flags.StringVarP(&opts.Output, "output", "o", "smiley.png", "output file, - for stdout")
	flags.StringArrayVar(&opts.Click, "click", nil, "glyph to place after the grid as x:y, repeatable")
	flags.BoolVar(&opts.Legacy, "legacy", false, "draw the fixed 5x5 layout")

	return cmd
}

func runRender(options *Options, opts RenderOptions) error {
	cfg, err := LoadConfig(options.Config)
	if err != nil {
		return err
	}

	format, err := canvas.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	var clicks []app.Point
	for _, c := range opts.Click {
		points, err := app.ParsePoints(c)
		if err != nil {
			return err
		}
		clicks = append(clicks, points...)
	}

	c := canvas.New(1, 1, canvasOptions(cfg))
	defer c.Close()

	res, err := app.Render(c, app.RenderOptions{
		Viewport:   surface.Size{Width: opts.Width, Height: opts.Height},
		Density:    opts.Density,
		Engine:     engine(cfg),
		Clicks:     clicks,
		ClickScale: cfg.ClickScale,
		Legacy:     opts.Legacy,
	})
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if opts.Output != "-" {
		file, err := os.Create(opts.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}

	if err := c.Encode(w, format); err != nil {
		return err
	}

	slog.Info("Rendered", "output", opts.Output, "buffer", fmt.Sprintf("%dx%d", res.Buffer.Width, res.Buffer.Height), "glyphs", res.Glyphs)
	return nil
}

func newConfigCommand() *cobra.Command {
	var defaults, write bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, options *Options) {
			cfg, err := runConfig(options.Config, defaults, write)
			if err != nil {
				log.Fatal(err)
			}
			pp.Println(cfg)
		}),
	}

	flags := cmd.Flags()
	flags.BoolVar(&defaults, "defaults", false, "print the built-in defaults instead")
	flags.BoolVar(&write, "write", false, "write the normalized configuration back to the file")

	return cmd
}

func runConfig(path string, defaults, write bool) (config.Config, error) {
	if defaults {
		return config.Default(), nil
	}

	store, err := OpenStore(path)
	if err != nil {
		return config.Config{}, err
	}
	if write {
		return store.Rewrite()
	}
	return store.GetConfig()
}

func OnServe(hooks humacli.Hooks, serveFn func(ctx context.Context) error) {
	stopC := make(chan struct{})
	hooks.OnStart(func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errC := make(chan error, 1)

		go func() { errC <- serveFn(ctx) }()

		select {
		case <-stopC:
			cancel()
		case err := <-errC:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatal(err)
			}
			return
		}

		<-errC
		<-stopC
	})
	hooks.OnStop(func() {
		stopC <- struct{}{}
		stopC <- struct{}{}
	})
}
