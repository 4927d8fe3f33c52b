package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	hgt "github.com/flywave/go-hgt"
	"github.com/flywave/go-hgt/internal/config"
	"github.com/flywave/go-hgt/internal/logging"
	"github.com/flywave/go-hgt/internal/scan"
)

type env struct {
	cfg  *config.Config
	log  *logrus.Logger
	opts []hgt.Option
}

func setup(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("strict") {
		cfg.Parse.Strict = c.Bool("strict")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Dir, c.App.ErrWriter)
	if err != nil {
		return nil, err
	}

	opts := []hgt.Option{hgt.WithLogger(log)}
	if cfg.Parse.Strict {
		opts = append(opts, hgt.WithStrictHemispheres())
	}
	return &env{cfg: cfg, log: log, opts: opts}, nil
}

func printInfo(w io.Writer, path string, t *hgt.Tile) {
	b := t.Bounds()
	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  tile:       %s (%d, %d)\n", t.Name(), t.Latitude, t.Longitude)
	fmt.Fprintf(w, "  resolution: %s (%d arc-second, %dx%d)\n", t.Resolution, t.Resolution.ArcSeconds(), t.Extent(), t.Extent())
	fmt.Fprintf(w, "  height:     %d..%d m\n", t.MinHeight(), t.MaxHeight())
	fmt.Fprintf(w, "  voids:      %d\n", t.Voids())
	fmt.Fprintf(w, "  bounds:     %g,%g %g,%g\n", b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat())
}

func parseUint(s, name string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return uint32(v), nil
}

func parseFloat(s, name string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return v, nil
}

func infoAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.ShowSubcommandHelp(c)
	}
	e, err := setup(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	for _, p := range c.Args().Slice() {
		t, err := hgt.OpenPath(p, e.opts...)
		if err != nil {
			return cli.Exit(err, 1)
		}
		printInfo(c.App.Writer, p, t)
	}
	return nil
}

func getAction(c *cli.Context) error {
	if c.NArg() != 3 {
		return cli.ShowSubcommandHelp(c)
	}
	e, err := setup(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	x, err := parseUint(c.Args().Get(1), "column")
	if err != nil {
		return cli.Exit(err, 1)
	}
	y, err := parseUint(c.Args().Get(2), "row")
	if err != nil {
		return cli.Exit(err, 1)
	}

	t, err := hgt.OpenPath(c.Args().First(), e.opts...)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if x >= t.Extent() || y >= t.Extent() {
		return cli.Exit(fmt.Sprintf("sample (%d, %d) outside %dx%d grid", x, y, t.Extent(), t.Extent()), 1)
	}
	fmt.Fprintln(c.App.Writer, t.Get(x, y))
	return nil
}

func atAction(c *cli.Context) error {
	if c.NArg() != 3 {
		return cli.ShowSubcommandHelp(c)
	}
	e, err := setup(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	lat, err := parseFloat(c.Args().Get(1), "latitude")
	if err != nil {
		return cli.Exit(err, 1)
	}
	lon, err := parseFloat(c.Args().Get(2), "longitude")
	if err != nil {
		return cli.Exit(err, 1)
	}

	var t *hgt.Tile
	if fi, err := os.Stat(c.Args().First()); err == nil && fi.IsDir() {
		d, err := hgt.NewDir(c.Args().First(), e.opts...)
		if err != nil {
			return cli.Exit(err, 1)
		}
		t, err = d.Lookup(lat, lon)
		if err != nil {
			return cli.Exit(err, 1)
		}
	} else {
		t, err = hgt.OpenPath(c.Args().First(), e.opts...)
		if err != nil {
			return cli.Exit(err, 1)
		}
	}

	v, ok := t.At(lat, lon)
	if !ok {
		return cli.Exit(fmt.Sprintf("%g,%g is outside tile %s", lat, lon, t.Name()), 1)
	}
	if v == hgt.Void {
		fmt.Fprintln(c.App.Writer, "void")
		return nil
	}
	fmt.Fprintln(c.App.Writer, v)
	return nil
}

func scanAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.ShowSubcommandHelp(c)
	}
	e, err := setup(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if c.IsSet("workers") {
		e.cfg.Scan.Workers = c.Int("workers")
	}

	d, err := hgt.NewDir(c.Args().First(), e.opts...)
	if err != nil {
		return cli.Exit(err, 1)
	}
	paths, err := d.Scan()
	if err != nil {
		return cli.Exit(err, 1)
	}

	opts := []scan.Option{scan.WithLogger(e.log)}
	if e.cfg.Scan.Progress {
		opts = append(opts, scan.WithProgress(c.App.ErrWriter))
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := scan.New(e.cfg.Scan.Workers, d.OpenFile, opts...).Run(ctx, paths)
	if report != nil {
		w := c.App.Writer
		for _, r := range report.Results {
			if r.Err != nil {
				fmt.Fprintf(w, "%s\terror\t%v\n", r.Path, r.Err)
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n", r.Path, r.Name, r.Resolution, r.MinHeight, r.MaxHeight, r.Voids)
		}
		fmt.Fprintf(w, "%d tiles, %d failed, %s (run %s)\n", len(report.Results), report.Failed(), report.Elapsed, report.ID)
	}
	if err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "hgt",
		Usage:   "Inspect SRTM .hgt elevation tiles",
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				EnvVars: []string{"HGT_CONFIG"},
				Usage:   "path to a TOML config `FILE`",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "log level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "only accept N/S and E/W hemisphere letters in file names",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "Describe one or more tiles",
				ArgsUsage: "FILE...",
				Action:    infoAction,
			},
			{
				Name:      "get",
				Usage:     "Print the sample at a column and row",
				ArgsUsage: "FILE X Y",
				Action:    getAction,
			},
			{
				Name:      "at",
				Usage:     "Print the sample nearest to a latitude and longitude",
				ArgsUsage: "FILE|DIR LAT LON",
				Action:    atAction,
			},
			{
				Name:      "scan",
				Usage:     "Decode every tile in a directory",
				ArgsUsage: "DIR",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "number of tiles decoded at once",
					},
				},
				Action: scanAction,
			},
		},
	}
}

func main() {
	if err := newApp().RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
