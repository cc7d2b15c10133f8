// Package types holds the data model shared by the telemetry, analysis and render packages.
package types

// HistoryEntry is one upower history sample.
// Value is percentage points in the charge log and watts in the rate log.
// Charging is only meaningful for the rate log.
type HistoryEntry struct {
	Time     int64   `json:"time"`
	Value    float64 `json:"value"`
	Charging bool    `json:"charging"`
}

// HistorySeries is the ordered content of one history log. Entries are expected,
// but not verified, to be in increasing time order.
type HistorySeries []HistoryEntry

// Empty reports whether the series has no entries.
func (s HistorySeries) Empty() bool { return len(s) == 0 }

// Last returns the final entry of the series.
func (s HistorySeries) Last() (HistoryEntry, bool) {
	if len(s) == 0 {
		return HistoryEntry{}, false
	}
	return s[len(s)-1], true
}

// TimeWindow is the visible time range in epoch seconds.
type TimeWindow struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Contains reports whether t is inside the visible part of the window.
// The left boundary is exclusive: an entry stamped exactly at Start is not shown.
func (w TimeWindow) Contains(t int64) bool { return t > w.Start }

// PlotPoint is one point of a plot series: X is the sample time, Y the rounded value.
type PlotPoint struct {
	X int64 `json:"x"`
	Y int   `json:"y"`
}

// AxisRange is a closed integer interval [Min, Max].
type AxisRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Span returns Max - Min.
func (r AxisRange) Span() int { return r.Max - r.Min }
