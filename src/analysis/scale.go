package analysis

import (
	"math"
	"strconv"

	"github.com/Brod8362/upowerchart/src/types"
)

// PercentRange is the fixed y range of the charge chart.
var PercentRange = types.AxisRange{Min: 0, Max: 100}

// Tick is an axis mark at an absolute domain value.
type Tick struct {
	Value float64
	Label string
}

// Scale holds the coordinate systems shared by the charge and rate charts.
type Scale struct {
	// Time is the x domain of both data charts.
	Time types.TimeWindow
	// Percent is the charge chart's y range, always [0,100].
	Percent types.AxisRange
	// Rate is the power chart's y range, [0, ceil(max rate over the whole log)].
	Rate types.AxisRange
	// Hours is the synthetic [-hours,0] axis used only for time labels.
	Hours types.AxisRange
}

// RateAxisMax scans the whole, unwindowed rate log and returns ceil(max value).
// Using the global maximum keeps the axis still while the window slides.
func RateAxisMax(rate types.HistorySeries) (int, error) {
	if rate.Empty() {
		return 0, types.NoDataf("rate log is empty")
	}
	max := math.Inf(-1)
	for _, e := range rate {
		if e.Value > max {
			max = e.Value
		}
	}
	return int(math.Ceil(max)), nil
}

// ComputeScale derives the axis ranges for window w.
func ComputeScale(rate types.HistorySeries, w types.TimeWindow, hours int) (Scale, error) {
	rateMax, err := RateAxisMax(rate)
	if err != nil {
		return Scale{}, err
	}
	return Scale{
		Time:    w,
		Percent: PercentRange,
		Rate:    types.AxisRange{Min: 0, Max: rateMax},
		Hours:   types.AxisRange{Min: -hours, Max: 0},
	}, nil
}

// HourTicks places one tick per whole hour of the synthetic axis, at the absolute
// time it stands for (End + h*3600), labelled with h.
func (s Scale) HourTicks() []Tick {
	ticks := make([]Tick, 0, s.Hours.Span()+1)
	for h := s.Hours.Min; h <= s.Hours.Max; h++ {
		ticks = append(ticks, Tick{
			Value: float64(s.Time.End + int64(h)*SecondsPerHour),
			Label: strconv.Itoa(h),
		})
	}
	return ticks
}

// PercentTicks marks quarters of the charge axis.
func (s Scale) PercentTicks() []Tick {
	var ticks []Tick
	for v := s.Percent.Min; v <= s.Percent.Max; v += 25 {
		ticks = append(ticks, Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	return ticks
}

// RateTicks spreads about n ticks over the rate axis.
func (s Scale) RateTicks(n int) []Tick {
	vals := BuildNumericTicks(float64(s.Rate.Min), float64(s.Rate.Max), n)
	ticks := make([]Tick, 0, len(vals))
	for _, v := range vals {
		if v > float64(s.Rate.Max) && s.Rate.Max > s.Rate.Min {
			break
		}
		ticks = append(ticks, Tick{Value: v, Label: FormatNumericTick(v)})
	}
	return ticks
}
