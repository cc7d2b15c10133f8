package analysis

import (
	"math"

	"github.com/Brod8362/upowerchart/src/types"
)

func roundValue(v float64) int { return int(math.Round(v)) }

// PercentSeries maps the visible charge entries to (time, rounded percent).
func PercentSeries(charge types.HistorySeries, w types.TimeWindow) []types.PlotPoint {
	out := make([]types.PlotPoint, 0, len(charge))
	for _, e := range charge {
		if !w.Contains(e.Time) {
			continue
		}
		out = append(out, types.PlotPoint{X: e.Time, Y: roundValue(e.Value)})
	}
	return out
}

// ChargingSeries maps every visible rate entry; entries that are not charging become
// zero so the line drops to the baseline instead of leaving a gap.
func ChargingSeries(rate types.HistorySeries, w types.TimeWindow) []types.PlotPoint {
	out := make([]types.PlotPoint, 0, len(rate))
	for _, e := range rate {
		if !w.Contains(e.Time) {
			continue
		}
		y := 0
		if e.Charging {
			y = roundValue(e.Value)
		}
		out = append(out, types.PlotPoint{X: e.Time, Y: y})
	}
	return out
}

// DischargingSeries maps visible rate entries that are not charging. Charging entries
// are dropped, not zero-filled.
// TODO: decide with the chart's users whether this should zero-fill like ChargingSeries.
func DischargingSeries(rate types.HistorySeries, w types.TimeWindow) []types.PlotPoint {
	out := make([]types.PlotPoint, 0, len(rate))
	for _, e := range rate {
		if !w.Contains(e.Time) || e.Charging {
			continue
		}
		out = append(out, types.PlotPoint{X: e.Time, Y: roundValue(e.Value)})
	}
	return out
}

// LatestInWindow returns the newest visible entry of s.
func LatestInWindow(s types.HistorySeries, w types.TimeWindow) (types.HistoryEntry, error) {
	for i := len(s) - 1; i >= 0; i-- {
		if w.Contains(s[i].Time) {
			return s[i], nil
		}
	}
	return types.HistoryEntry{}, types.NoDataf("no entries after %d", w.Start)
}
