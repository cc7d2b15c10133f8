package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Brod8362/upowerchart/src/monitor"
)

// runStatus prints the values the chart annotates, colored like the chart.
func runStatus(w io.Writer, cfg monitor.Config) error {
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	plot, err := p.plot()
	if err != nil {
		return err
	}
	bat, err := plot.BatteryText()
	if err != nil {
		return err
	}
	pwr, err := plot.PowerText()
	if err != nil {
		return err
	}

	device := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(cfg.AxisColor))
	batStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.PercentColor))
	pwrStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.DischargingColor))
	dim := lipgloss.NewStyle().Faint(true)

	state := "discharging"
	if plot.LatestRate.Charging {
		state = "charging"
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top,
		device.Render(plot.Device), "  ",
		batStyle.Render(bat), "  ",
		pwrStyle.Render(pwr), "  ",
		dim.Render("("+state+")"),
	)
	_, err = fmt.Fprintf(w, "%s\n%s\n", line, dim.Render(fmt.Sprintf("window %s .. %s (%dh, rate axis 0..%dW)",
		time.Unix(plot.Window.Start, 0).Format(time.DateTime),
		time.Unix(plot.Window.End, 0).Format(time.DateTime),
		cfg.Hours, plot.Scale.Rate.Max)))
	return err
}
