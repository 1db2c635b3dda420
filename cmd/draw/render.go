package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/midbel/chartgeo/config"
	"github.com/midbel/chartgeo/internal/logging"
	"github.com/midbel/chartgeo/render"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type renderOptions struct {
	outDir   string
	noClip   bool
	parallel int
}

func (a *App) newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <file>...",
		Short: "Render chart descriptions as svg",
		Long: `Render every chart description given as svg. The svg is written next to
its description unless an output directory is given.

Examples:
  draw render sales.yml
  draw render -o out/ charts/*.yml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.renderFiles(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "output", "o", "", "directory of the svg files")
	cmd.Flags().BoolVar(&opts.noClip, "no-clip", false, "do not clip series to the plot area")
	cmd.Flags().IntVarP(&opts.parallel, "jobs", "j", runtime.NumCPU(), "number of charts rendered at once")

	return cmd
}

func (a *App) renderFiles(cmd *cobra.Command, opts *renderOptions, files []string) error {
	if opts.outDir != "" {
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return err
		}
	}
	g, ctx := errgroup.WithContext(cmd.Context())
	if opts.parallel > 0 {
		g.SetLimit(opts.parallel)
	}
	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := renderFile(file, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			logging.Info().
				Add(logging.Component("draw")).
				Add(logging.File(out)).
				Msg("chart rendered")
			fmt.Fprintln(a.stdout, out)
			return nil
		})
	}
	return g.Wait()
}

func renderFile(file string, opts *renderOptions) (string, error) {
	f, err := config.Load(file)
	if err != nil {
		return "", err
	}
	chart, err := config.Build(f)
	if err != nil {
		return "", err
	}
	geo, err := chart.Compose()
	if err != nil {
		return "", err
	}

	style := render.DefaultStyle()
	if f.Palette != "" {
		style.Fill.List = render.ParsePalette(f.Palette)
	}
	rdr := render.New(style)
	rdr.Clip = !opts.noClip

	out := outputFile(file, opts.outDir)
	w, err := os.Create(out)
	if err != nil {
		return "", err
	}
	if err := rdr.Render(w, geo); err != nil {
		w.Close()
		return "", err
	}
	return out, w.Close()
}

func outputFile(file, dir string) string {
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)) + ".svg"
	if dir == "" {
		dir = filepath.Dir(file)
	}
	return filepath.Join(dir, name)
}
