package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"time"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Brod8362/upowerchart/src/analysis"
	"github.com/Brod8362/upowerchart/src/monitor"
	"github.com/Brod8362/upowerchart/src/types"
)

const (
	// percentFillAlpha is about 0.2 opacity for the area under the charge line.
	percentFillAlpha uint8 = 51
	// annotationGap separates the bottom-row texts.
	annotationGap = 5
	rateTickCount = 5
)

// Geometry is the frame size and the space reserved around the plot area.
type Geometry struct {
	Width             int
	Height            int
	GraphMargin       int
	BottomMarginExtra int
	// LabelAreaSize is the left inset of the annotation row; go-chart sizes the
	// tick-label areas itself.
	LabelAreaSize int
}

// GeometryFromConfig copies the frame settings out of cfg.
func GeometryFromConfig(cfg monitor.Config) Geometry {
	return Geometry{
		Width:             cfg.Width,
		Height:            cfg.Height,
		GraphMargin:       cfg.GraphMargin,
		BottomMarginExtra: cfg.BottomMarginExtra,
		LabelAreaSize:     cfg.LabelAreaSize,
	}
}

// Compositor draws one frame from a Plot. It holds no per-frame state.
type Compositor struct {
	Geometry Geometry
	Palette  Palette
	Font     *truetype.Font
	FontSize float64
}

// NewCompositor builds a compositor from cfg, resolving colors through r.
func NewCompositor(cfg monitor.Config, r ColorResolver) (*Compositor, error) {
	pal, err := ResolvePalette(r, cfg)
	if err != nil {
		return nil, err
	}
	f, err := MonoFont()
	if err != nil {
		return nil, fmt.Errorf("%w: load font: %w", types.ErrRender, err)
	}
	return &Compositor{
		Geometry: GeometryFromConfig(cfg),
		Palette:  pal,
		Font:     f,
		FontSize: DefaultFontSize,
	}, nil
}

type annotation struct {
	text  string
	color drawing.Color
}

// Compose renders p into a new RGBA frame of the configured size.
func (c *Compositor) Compose(p analysis.Plot) (*image.RGBA, error) {
	defer monitor.TimeTrack(time.Now(), "compose")
	// Resolve the annotation values first so nothing is drawn for a frame that cannot be completed.
	bat, err := p.BatteryText()
	if err != nil {
		return nil, err
	}
	pwr, err := p.PowerText()
	if err != nil {
		return nil, err
	}
	notes := []annotation{
		{text: p.Device, color: c.Palette.Axis},
		{text: bat, color: c.Palette.Percent},
		{text: pwr, color: c.Palette.Discharging},
	}

	ch := c.buildChart(p)
	ch.Elements = []chart.Renderable{c.drawAnnotations(notes)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("%w: chart: %w", types.ErrRender, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("%w: decode chart: %w", types.ErrRender, err)
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}

func (c *Compositor) buildChart(p analysis.Plot) chart.Chart {
	g := c.Geometry
	pal := c.Palette
	axisStyle := chart.Style{
		StrokeColor: pal.Axis,
		StrokeWidth: 1,
		FontColor:   pal.Axis,
		FontSize:    c.FontSize,
	}
	frameStyle := func(pad chart.Box) chart.Style {
		return chart.Style{FillColor: pal.Background, StrokeColor: pal.Background, StrokeWidth: 1, Padding: pad}
	}

	rateMax := float64(p.Scale.Rate.Max)
	if p.Scale.Rate.Span() <= 0 {
		// all-zero power log; go-chart rejects an empty range
		rateMax = float64(p.Scale.Rate.Min + 1)
	}

	var series []chart.Series
	// go-chart refuses series without points, so empty ones are left out.
	if len(p.Percent) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:  "percent",
			YAxis: chart.YAxisSecondary,
			Style: chart.Style{
				StrokeColor: pal.Percent,
				StrokeWidth: 1,
				FillColor:   pal.Percent.WithAlpha(percentFillAlpha),
			},
			XValues: xValues(p.Percent),
			YValues: yValues(p.Percent),
		})
	}
	for _, s := range []struct {
		name   string
		points []types.PlotPoint
		color  drawing.Color
	}{
		{"charging", p.Charging, pal.Charging},
		{"discharging", p.Discharging, pal.Discharging},
	} {
		if len(s.points) == 0 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.name,
			YAxis:   chart.YAxisPrimary,
			Style:   chart.Style{StrokeColor: s.color, StrokeWidth: 1},
			XValues: xValues(s.points),
			YValues: yValues(s.points),
		})
	}

	return chart.Chart{
		Width:  g.Width,
		Height: g.Height,
		Font:   c.Font,
		Background: frameStyle(chart.Box{
			Top:    g.GraphMargin,
			Left:   g.GraphMargin,
			Right:  g.GraphMargin,
			Bottom: g.GraphMargin + g.BottomMarginExtra,
		}),
		Canvas: frameStyle(chart.Box{}),
		// The x axis carries no data of its own: its ticks come from the synthetic
		// [-hours,0] axis mapped onto the window.
		XAxis: chart.XAxis{
			Name:      "hours",
			NameStyle: axisStyle,
			Style:     axisStyle,
			Range:     &chart.ContinuousRange{Min: float64(p.Window.Start), Max: float64(p.Window.End)},
			Ticks:     chartTicks(p.Scale.HourTicks()),
		},
		// go-chart puts the secondary axis on the left. The y tick sets ride on the
		// ranges: go-chart derives the secondary range from YAxis.Ticks whenever
		// YAxisSecondary.Ticks is set, so neither y axis uses the Ticks field.
		YAxisSecondary: chart.YAxis{
			Style: axisStyle,
			Range: newTickedRange(float64(p.Scale.Percent.Min), float64(p.Scale.Percent.Max), p.Scale.PercentTicks()),
		},
		YAxis: chart.YAxis{
			Style: axisStyle,
			Range: newTickedRange(float64(p.Scale.Rate.Min), rateMax, p.Scale.RateTicks(rateTickCount)),
		},
		Series: series,
	}
}

// drawAnnotations lays the texts out left to right on the bottom margin; each origin is
// the previous origin plus the measured width plus annotationGap.
func (c *Compositor) drawAnnotations(notes []annotation) chart.Renderable {
	g := c.Geometry
	return func(r chart.Renderer, _ chart.Box, _ chart.Style) {
		r.SetFont(c.Font)
		r.SetFontSize(c.FontSize)
		x := g.LabelAreaSize
		y := g.Height - g.BottomMarginExtra/2
		for _, n := range notes {
			r.SetFontColor(n.color)
			r.Text(n.text, x, y)
			x += r.MeasureText(n.text).Width() + annotationGap
		}
	}
}

// tickedRange is a fixed continuous range that supplies its own ticks.
type tickedRange struct {
	*chart.ContinuousRange
	ticks []chart.Tick
}

func newTickedRange(lo, hi float64, ts []analysis.Tick) *tickedRange {
	return &tickedRange{
		ContinuousRange: &chart.ContinuousRange{Min: lo, Max: hi},
		ticks:           chartTicks(ts),
	}
}

// GetTicks implements chart.TicksProvider.
func (r *tickedRange) GetTicks(_ chart.Renderer, _ chart.Style, _ chart.ValueFormatter) []chart.Tick {
	return r.ticks
}

func chartTicks(ts []analysis.Tick) []chart.Tick {
	out := make([]chart.Tick, 0, len(ts))
	for _, t := range ts {
		out = append(out, chart.Tick{Value: t.Value, Label: t.Label})
	}
	return out
}

func xValues(ps []types.PlotPoint) []float64 {
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = float64(p.X)
	}
	return out
}

func yValues(ps []types.PlotPoint) []float64 {
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = float64(p.Y)
	}
	return out
}
