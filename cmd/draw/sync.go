package main

import (
	"errors"
	"fmt"

	"github.com/midbel/chartgeo"
	"github.com/midbel/chartgeo/chartsync"
	"github.com/midbel/chartgeo/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errNoTick = errors.New("no tooltip tick at index")

type syncOptions struct {
	syncID string
	index  int
	start  int
	end    int
}

type syncReport struct {
	Source  string         `yaml:"source"`
	Peer    string         `yaml:"peer"`
	Method  string         `yaml:"method"`
	Sent    bool           `yaml:"sent"`
	Active  bool           `yaml:"active"`
	Index   int            `yaml:"index"`
	Label   string         `yaml:"label,omitempty"`
	Point   chartgeo.Point `yaml:"point"`
	Window  []int          `yaml:"window,omitempty"`
	Emitted int            `yaml:"emitted"`
	Applied int            `yaml:"applied"`
	Dropped int            `yaml:"dropped"`
	State   string         `yaml:"state"`
}

func (a *App) newSyncCmd() *cobra.Command {
	opts := &syncOptions{}

	cmd := &cobra.Command{
		Use:   "sync <source> <peer>",
		Short: "Show how a tooltip of a chart is applied to another one",
		Long: `Connect two charts to the same bus, activate the tooltip of the source
chart at the given index and print the interaction the peer chart ends with.
The sync method is the one of the peer description.

Examples:
  draw sync --index 2 sales.yml costs.yml
  draw sync --start 1 --end 3 sales.yml costs.yml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.syncFiles(args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.syncID, "sync-id", "", "sync id used when the descriptions have none")
	cmd.Flags().IntVar(&opts.index, "index", 0, "index of the active tooltip tick of the source")
	cmd.Flags().IntVar(&opts.start, "start", -1, "start index of the brush window")
	cmd.Flags().IntVar(&opts.end, "end", -1, "end index of the brush window")

	return cmd
}

func (a *App) syncFiles(source, peer string, opts *syncOptions) error {
	src, err := loadChart(source)
	if err != nil {
		return err
	}
	dst, err := loadChart(peer)
	if err != nil {
		return err
	}
	syncID := src.File.SyncID
	if syncID == "" {
		syncID = opts.syncID
	}
	if syncID == "" {
		syncID = "draw"
	}

	var (
		bus    = chartsync.NewBus()
		window []int
	)
	emitter, err := chartsync.New(bus, syncID, src.Context, chartsync.WithMethod(src.Method))
	if err != nil {
		return err
	}
	receiver, err := chartsync.New(bus, syncID, dst.Context,
		chartsync.WithMethod(dst.Method),
		chartsync.OnBrush(func(w chartsync.BrushWindow) {
			window = []int{w.StartIndex, w.EndIndex}
		}),
	)
	if err != nil {
		return err
	}
	emitter.Connect()
	defer emitter.Close()
	receiver.Connect()
	defer receiver.Close()

	geo, err := src.Compose()
	if err != nil {
		return err
	}
	if opts.index < 0 || opts.index >= len(geo.TooltipTicks) {
		return fmt.Errorf("%s: %w %d", source, errNoTick, opts.index)
	}
	tick := geo.TooltipTicks[opts.index]
	it := chartsync.Interaction{
		Active:     true,
		Index:      tick.Index,
		Label:      tick.Value,
		Coordinate: tooltipPoint(geo, tick),
	}
	sent := emitter.Tooltip(it)
	if opts.start >= 0 {
		emitter.Brush(chartsync.BrushWindow{
			StartIndex: opts.start,
			EndIndex:   opts.end,
		})
	}

	var (
		active = receiver.Active()
		stats  = receiver.Stats()
		report = syncReport{
			Source:  source,
			Peer:    peer,
			Method:  dst.Method.String(),
			Sent:    sent,
			Active:  active.Active,
			Index:   active.Index,
			Label:   chartgeo.Stringify(active.Label),
			Point:   active.Coordinate,
			Window:  window,
			Emitted: emitter.Stats().Emitted,
			Applied: stats.Applied,
			Dropped: stats.Dropped,
			State:   string(receiver.State()),
		}
	)
	enc := yaml.NewEncoder(a.stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(report)
}

func loadChart(file string) (*config.Chart, error) {
	f, err := config.Load(file)
	if err != nil {
		return nil, err
	}
	return config.Build(f)
}

// tooltipPoint is where the cursor sits when the tooltip of tick is active:
// on the tick along the categorical axis, in the middle of the plot area
// across it.
func tooltipPoint(geo *chartgeo.Geometry, tick chartgeo.Tick) chartgeo.Point {
	off := geo.Offset
	if geo.Layout == chartgeo.LayoutVertical {
		return chartgeo.NewPoint(off.Left+off.Width/2, tick.Coordinate)
	}
	return chartgeo.NewPoint(tick.Coordinate, off.Top+off.Height/2)
}
