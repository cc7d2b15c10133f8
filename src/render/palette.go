// Package render composites plot series and text annotations into a raster frame.
package render

import (
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Brod8362/upowerchart/src/monitor"
	"github.com/Brod8362/upowerchart/src/types"
)

// ColorResolver maps a configured color string to an RGB color.
type ColorResolver interface {
	Resolve(s string) (drawing.Color, error)
}

// HexResolver accepts #RRGGBB (the leading # is optional).
type HexResolver struct{}

// Resolve implements ColorResolver.
func (HexResolver) Resolve(s string) (drawing.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return drawing.Color{}, fmt.Errorf("%w: color %q is not #RRGGBB", types.ErrInvalidConfig, s)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return drawing.Color{}, fmt.Errorf("%w: color %q is not #RRGGBB", types.ErrInvalidConfig, s)
		}
	}
	return drawing.ColorFromHex(strings.ToLower(hex)), nil
}

// Palette is the set of chart colors.
type Palette struct {
	Axis        drawing.Color
	Background  drawing.Color
	Percent     drawing.Color
	Charging    drawing.Color
	Discharging drawing.Color
}

// ResolvePalette resolves the five configured colors.
func ResolvePalette(r ColorResolver, cfg monitor.Config) (Palette, error) {
	var p Palette
	for _, item := range []struct {
		dst *drawing.Color
		raw string
	}{
		{&p.Axis, cfg.AxisColor},
		{&p.Background, cfg.BackgroundColor},
		{&p.Percent, cfg.PercentColor},
		{&p.Charging, cfg.ChargingColor},
		{&p.Discharging, cfg.DischargingColor},
	} {
		c, err := r.Resolve(item.raw)
		if err != nil {
			return Palette{}, err
		}
		*item.dst = c
	}
	return p, nil
}
