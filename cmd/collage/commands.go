package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ArikGuitarik/album-art-collage/internal/config"
	"github.com/ArikGuitarik/album-art-collage/internal/imaging"
	"github.com/ArikGuitarik/album-art-collage/internal/logging"
	"github.com/ArikGuitarik/album-art-collage/internal/pipeline"
	"github.com/ArikGuitarik/album-art-collage/internal/server"
	"github.com/ArikGuitarik/album-art-collage/internal/viewer"
	"github.com/ArikGuitarik/album-art-collage/internal/viewer/window"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries state shared by all subcommands once flags are parsed.
type app struct {
	configPath string
	envFile    string
	dev        bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "collage",
		Short:         "Arrange album art into a square collage",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Flags())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file")
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file with COLLAGE_* variables")
	pf.BoolVar(&a.dev, "dev", false, "development logging (caller info, colored levels)")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("log-file", "", "also write JSON logs to this rotating file")

	root.AddCommand(newBuildCmd(a), newViewCmd(a), newServeCmd(a), newVersionCmd())
	return root
}

// setup loads the configuration, overlays explicitly set flags and builds
// the logger.
func (a *app) setup(flags *pflag.FlagSet) error {
	cfg, err := config.Load(a.configPath, a.envFile)
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, flags); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.New(logging.Config{
		Level:       logging.ParseLevel(cfg.LogLevel, zapcore.InfoLevel),
		File:        cfg.LogFile,
		Development: a.dev,
	})
	return nil
}

// applyFlags copies every flag the user set onto cfg.
func applyFlags(cfg *config.Config, flags *pflag.FlagSet) error {
	strs := map[string]*string{
		"dir":             &cfg.ImageDir,
		"output":          &cfg.Output,
		"high-res-output": &cfg.HighResOutput,
		"grid-color":      &cfg.GridLineColor,
		"highlight":       &cfg.HighlightColor,
		"log-level":       &cfg.LogLevel,
		"log-file":        &cfg.LogFile,
	}
	ints := map[string]*int{
		"width":           &cfg.Width,
		"height":          &cfg.Height,
		"quality":         &cfg.Quality,
		"high-res-width":  &cfg.HighResWidth,
		"high-res-height": &cfg.HighResHeight,
		"grid-lines":      &cfg.GridLineWidth,
	}

	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		if dst, ok := strs[f.Name]; ok {
			*dst, err = flags.GetString(f.Name)
		} else if dst, ok := ints[f.Name]; ok {
			*dst, err = flags.GetInt(f.Name)
		}
	})
	return err
}

func addCanvasFlags(fs *pflag.FlagSet) {
	fs.String("dir", "", "directory of album art")
	fs.Int("width", 0, "canvas width in pixels")
	fs.Int("height", 0, "canvas height in pixels")
	fs.String("output", "", "output file (.png, .jpg, .jpeg or .bmp)")
	fs.Int("quality", 0, "JPEG quality 1-100")
}

func newBuildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render a collage to a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if cfg.ImageDir == "" {
				return config.ErrMissing("image_dir", "--dir")
			}
			gridColor, err := imaging.ParseColor(cfg.GridLineColor)
			if err != nil {
				return err
			}

			opts := pipeline.Options{
				Dir:           cfg.ImageDir,
				Output:        cfg.Output,
				Height:        cfg.Height,
				Width:         cfg.Width,
				Quality:       cfg.Quality,
				GridLineWidth: cfg.GridLineWidth,
				GridLineColor: gridColor,
				Logger:        a.log,
			}
			if cfg.HighRes() {
				opts.HighResOutput = cfg.HighResOutput
				opts.HighResHeight = cfg.HighResHeight
				opts.HighResWidth = cfg.HighResWidth
			}

			res, err := pipeline.Build(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printSaved(res.Output, res.Tiles, res.Elapsed)
			if res.HighResOutput != "" {
				printSaved(res.HighResOutput, res.Tiles, res.Elapsed)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	addCanvasFlags(fs)
	fs.String("high-res-output", "", "output file of the high-resolution render")
	fs.Int("high-res-width", 0, "high-resolution canvas width (0 disables)")
	fs.Int("high-res-height", 0, "high-resolution canvas height (0 disables)")
	fs.Int("grid-lines", 0, "separator thickness between tiles (0 disables)")
	fs.String("grid-color", "", "separator color, hex")
	return cmd
}

func newViewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Rearrange a collage interactively",
		Long: "Opens a window showing the collage. Click two tiles to swap them, " +
			"press S to save to --output and Esc to quit.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if cfg.ImageDir == "" {
				return config.ErrMissing("image_dir", "--dir")
			}
			highlight, err := imaging.ParseColor(cfg.HighlightColor)
			if err != nil {
				return err
			}

			c, err := pipeline.Compose(cmd.Context(), cfg.ImageDir, cfg.Height, cfg.Width, a.log)
			if err != nil {
				return err
			}
			session := viewer.NewSession(c, highlight, a.log)
			v := window.New(session, cfg.Output, cfg.Quality, a.log)
			return window.Run(v, "Album Art Collage")
		},
	}

	fs := cmd.Flags()
	addCanvasFlags(fs)
	fs.String("highlight", "", "outline color of the selected tile, hex")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve collage tools over JSON-RPC on stdin/stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.log.Debug("starting server",
				zap.String("version", Version),
				zap.String("build_time", BuildTime),
				zap.String("commit", GitCommit))

			srv := server.New(
				server.WithLogger(a.log),
				server.WithVersion(Version),
				server.WithQuality(a.cfg.Quality),
			)
			return srv.Run(cmd.Context(), os.Stdin, os.Stdout)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Skip config loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "collage %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
}

func printSaved(path string, tiles int, elapsed time.Duration) {
	color.New(color.FgGreen, color.Bold).Print("✓ ")
	fmt.Printf("saved %s ", path)
	color.New(color.FgHiBlack).Printf("(%d tiles in %v)\n", tiles, elapsed.Round(time.Millisecond))
}
