// upowerchart draws a small chart of battery charge and power from upower's history logs.
//
// Commands:
//
//	upowerchart [show] <device>   window with the chart; left click or Escape closes it
//	upowerchart png <device>      write the same chart to a PNG file
//	upowerchart status <device>   print the latest charge and power
//	upowerchart devices           list device models with history logs
package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Brod8362/upowerchart/src/analysis"
	"github.com/Brod8362/upowerchart/src/monitor"
	"github.com/Brod8362/upowerchart/src/render"
	"github.com/Brod8362/upowerchart/src/telemetry"
	"github.com/Brod8362/upowerchart/src/types"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		monitor.Errorf("%v", err)
		monitor.Sync()
		os.Exit(1)
	}
}

// app carries the resolved configuration between cobra hooks and commands.
type app struct {
	configFile string
	cfg        monitor.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "upowerchart [device]",
		Short: "Chart battery charge and power from upower history",
		Long: `upowerchart reads the history-charge and history-rate logs upowerd keeps for a
battery and draws the last few hours of charge percentage and charge/discharge power.`,
		Example: `  # Show the chart for a battery model
  upowerchart 45N1029

  # Six hours, redrawn from fresh logs every minute
  upowerchart show 45N1029 --hours 6 --reload 1m

  # Write a PNG instead of opening a window
  upowerchart png 45N1029 -o battery.png`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireDevice(args); err != nil {
				return err
			}
			return runShow(cmd.Context(), a.cfg)
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/upowerchart/upowerchart.yaml)")
	addConfigFlags(root.PersistentFlags())

	root.AddCommand(a.showCmd(), a.pngCmd(), a.statusCmd(), a.devicesCmd())
	return root
}

func addConfigFlags(fs *pflag.FlagSet) {
	d := monitor.DefaultConfig()
	fs.String("device", "", "Device model as named by upower (may also be given as argument)")
	fs.Int("width", d.Width, "Frame width in pixels")
	fs.Int("height", d.Height, "Frame height in pixels")
	fs.Int("hours", d.Hours, "Hours of history to show")
	fs.Int("label-area-size", d.LabelAreaSize, "Left inset of the text row")
	fs.Int("graph-margin", d.GraphMargin, "Margin around the chart")
	fs.Int("bottom-margin-extra", d.BottomMarginExtra, "Extra bottom margin for the text row")
	fs.String("axis-color", d.AxisColor, "Axis and device label color")
	fs.String("background-color", d.BackgroundColor, "Background color")
	fs.String("percent-color", d.PercentColor, "Charge percentage color")
	fs.String("charging-color", d.ChargingColor, "Charging power color")
	fs.String("discharging-color", d.DischargingColor, "Discharging power color")
	fs.String("upower-dir", d.UpowerDir, "Directory holding upower history files")
	fs.String("log-level", d.LogLevel, "Log level (debug|info|warn|error)")
	fs.Duration("reload", d.Reload, "Re-read the logs at this interval while the window is open (0 keeps the first frame)")
}

// load resolves defaults, config file, environment and flags into a.cfg.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	cfg, err := monitor.LoadConfig(v, a.configFile)
	if err != nil {
		return err
	}
	monitor.SetLogLevel(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) requireDevice(args []string) error {
	if len(args) == 1 {
		a.cfg.Device = args[0]
	}
	if a.cfg.Device == "" {
		return fmt.Errorf("%w: a device model is required (see `upowerchart devices`)", types.ErrInvalidConfig)
	}
	return nil
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <device>",
		Short: "Open a window with the chart",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireDevice(args); err != nil {
				return err
			}
			return runShow(cmd.Context(), a.cfg)
		},
	}
}

func (a *app) pngCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "png <device>",
		Short: "Write the chart to a PNG file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireDevice(args); err != nil {
				return err
			}
			return RunExportMode(a.cfg, out)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "upowerchart.png", "Output PNG path")
	return cmd
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <device>",
		Short: "Print the latest charge and power",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireDevice(args); err != nil {
				return err
			}
			return runStatus(cmd.OutOrStdout(), a.cfg)
		},
	}
}

func (a *app) devicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List device models that have history logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			models, err := telemetry.ListDevices(a.cfg.UpowerDir)
			if err != nil {
				return err
			}
			if len(models) == 0 {
				monitor.Warnf("no history-charge-* files in %s", a.cfg.UpowerDir)
			}
			for _, m := range models {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return nil
		},
	}
}

// pipeline reads the logs and composites one frame.
type pipeline struct {
	cfg        monitor.Config
	source     telemetry.Source
	compositor *render.Compositor
}

func newPipeline(cfg monitor.Config) (*pipeline, error) {
	comp, err := render.NewCompositor(cfg, render.HexResolver{})
	if err != nil {
		return nil, err
	}
	return &pipeline{cfg: cfg, source: telemetry.NewDirSource(cfg.UpowerDir), compositor: comp}, nil
}

func (p *pipeline) plot() (analysis.Plot, error) {
	charge, rate, err := telemetry.Load(p.source, p.cfg.Device)
	if err != nil {
		return analysis.Plot{}, err
	}
	return analysis.BuildPlot(p.cfg.Device, charge, rate, p.cfg.Hours)
}

func (p *pipeline) frame(context.Context) (image.Image, error) {
	defer monitor.TimeTrack(time.Now(), "frame")
	plot, err := p.plot()
	if err != nil {
		return nil, err
	}
	return p.compositor.Compose(plot)
}
