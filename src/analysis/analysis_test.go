package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brod8362/upowerchart/src/types"
)

func entry(t int64, v float64, charging bool) types.HistoryEntry {
	return types.HistoryEntry{Time: t, Value: v, Charging: charging}
}

// referenceLogs is the three-sample pair used across these tests.
func referenceLogs() (charge, rate types.HistorySeries) {
	charge = types.HistorySeries{entry(0, 50, false), entry(3600, 60, false), entry(7200, 70, false)}
	rate = types.HistorySeries{entry(0, 10, true), entry(3600, 5, false), entry(7200, 8, false)}
	return
}

func TestSelectWindow_EndIsNewestOfBothLogs(t *testing.T) {
	cases := []struct {
		name      string
		charge    types.HistorySeries
		rate      types.HistorySeries
		hours     int
		wantEnd   int64
		wantStart int64
	}{
		{"charge newer", types.HistorySeries{entry(20000, 1, false)}, types.HistorySeries{entry(15000, 1, false)}, 3, 20000, 20000 - 3*3600},
		{"rate newer", types.HistorySeries{entry(15000, 1, false)}, types.HistorySeries{entry(30000, 1, false)}, 1, 30000, 30000 - 3600},
		{"only charge", types.HistorySeries{entry(9000, 1, false)}, nil, 2, 9000, 9000 - 7200},
		{"only rate", nil, types.HistorySeries{entry(9000, 1, false)}, 2, 9000, 9000 - 7200},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, err := SelectWindow(c.charge, c.rate, c.hours)
			require.NoError(t, err)
			assert.Equal(t, c.wantEnd, w.End)
			assert.Equal(t, c.wantStart, w.Start)
			assert.Less(t, w.Start, w.End)
		})
	}
}

func TestSelectWindow_BothEmptyIsNoData(t *testing.T) {
	_, err := SelectWindow(nil, types.HistorySeries{}, 3)
	assert.ErrorIs(t, err, types.ErrNoData)
}

func TestSelectWindow_RejectsNonPositiveHours(t *testing.T) {
	charge, rate := referenceLogs()
	_, err := SelectWindow(charge, rate, 0)
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestSeries_LeftBoundaryIsExclusive(t *testing.T) {
	w := types.TimeWindow{Start: 1000, End: 5000}
	charge := types.HistorySeries{entry(999, 10, false), entry(1000, 20, false), entry(1001, 30, false)}
	got := PercentSeries(charge, w)
	assert.Equal(t, []types.PlotPoint{{X: 1001, Y: 30}}, got)

	rate := types.HistorySeries{entry(1000, 4, true), entry(1001, 5, true)}
	assert.Equal(t, []types.PlotPoint{{X: 1001, Y: 5}}, ChargingSeries(rate, w))
}

func TestPercentSeries_RoundsHalfAwayFromZero(t *testing.T) {
	w := types.TimeWindow{Start: 0, End: 10}
	charge := types.HistorySeries{entry(1, 42.5, false), entry(2, 42.4, false), entry(3, 99.5, false)}
	assert.Equal(t, []types.PlotPoint{{X: 1, Y: 43}, {X: 2, Y: 42}, {X: 3, Y: 100}}, PercentSeries(charge, w))
}

func TestChargingSeries_ZeroFillsDischarging(t *testing.T) {
	w := types.TimeWindow{Start: 0, End: 10}
	rate := types.HistorySeries{entry(1, 12.6, true), entry(2, 7.2, false), entry(3, 11, true)}
	got := ChargingSeries(rate, w)
	require.Len(t, got, 3)
	assert.Equal(t, types.PlotPoint{X: 2, Y: 0}, got[1])
	assert.Equal(t, 13, got[0].Y)
}

func TestDischargingSeries_DropsChargingEntries(t *testing.T) {
	w := types.TimeWindow{Start: 0, End: 10}
	rate := types.HistorySeries{entry(1, 12.6, true), entry(2, 7.2, false), entry(3, 11, true), entry(4, 6.5, false)}
	got := DischargingSeries(rate, w)
	assert.Equal(t, []types.PlotPoint{{X: 2, Y: 7}, {X: 4, Y: 7}}, got)
}

func TestRateAxisMax_UsesWholeLog(t *testing.T) {
	// Peak sits far outside the visible window.
	rate := types.HistorySeries{entry(0, 41.2, true), entry(50000, 3, false), entry(60000, 4, false)}
	w, err := SelectWindow(nil, rate, 1)
	require.NoError(t, err)
	s, err := ComputeScale(rate, w, 1)
	require.NoError(t, err)
	assert.Equal(t, types.AxisRange{Min: 0, Max: 42}, s.Rate)
	for _, p := range ChargingSeries(rate, w) {
		assert.Less(t, p.Y, 41, "peak must not be visible")
	}
}

func TestRateAxisMax_EmptyIsNoData(t *testing.T) {
	_, err := RateAxisMax(nil)
	assert.ErrorIs(t, err, types.ErrNoData)
}

func TestComputeScale_Ranges(t *testing.T) {
	w := types.TimeWindow{Start: 100, End: 100 + 3*3600}
	s, err := ComputeScale(types.HistorySeries{entry(1, 9.01, false)}, w, 3)
	require.NoError(t, err)
	assert.Equal(t, PercentRange, s.Percent)
	assert.Equal(t, types.AxisRange{Min: -3, Max: 0}, s.Hours)
	assert.Equal(t, 10, s.Rate.Max)
	assert.Equal(t, w, s.Time)
}

func TestHourTicks_MapSyntheticAxisOntoWindow(t *testing.T) {
	s := Scale{Time: types.TimeWindow{Start: 0, End: 7200}, Hours: types.AxisRange{Min: -2, Max: 0}}
	got := s.HourTicks()
	require.Len(t, got, 3)
	assert.Equal(t, Tick{Value: 0, Label: "-2"}, got[0])
	assert.Equal(t, Tick{Value: 3600, Label: "-1"}, got[1])
	assert.Equal(t, Tick{Value: 7200, Label: "0"}, got[2])
}

func TestPercentAndRateTicks(t *testing.T) {
	s := Scale{Percent: PercentRange, Rate: types.AxisRange{Min: 0, Max: 10}}
	var labels []string
	for _, tk := range s.PercentTicks() {
		labels = append(labels, tk.Label)
	}
	assert.Equal(t, []string{"0", "25", "50", "75", "100"}, labels)

	rt := s.RateTicks(5)
	require.NotEmpty(t, rt)
	assert.Equal(t, 0.0, rt[0].Value)
	for _, tk := range rt {
		assert.LessOrEqual(t, tk.Value, 10.0)
	}
}

func TestBuildPlot_EndToEnd(t *testing.T) {
	charge, rate := referenceLogs()
	p, err := BuildPlot("45N1029", charge, rate, 2)
	require.NoError(t, err)

	assert.Equal(t, types.TimeWindow{Start: 0, End: 7200}, p.Window)
	assert.Equal(t, []types.PlotPoint{{X: 3600, Y: 60}, {X: 7200, Y: 70}}, p.Percent)
	assert.Equal(t, []types.PlotPoint{{X: 3600, Y: 0}, {X: 7200, Y: 0}}, p.Charging)
	assert.Equal(t, []types.PlotPoint{{X: 3600, Y: 5}, {X: 7200, Y: 8}}, p.Discharging)
	assert.Equal(t, 10, p.Scale.Rate.Max)

	bat, err := p.BatteryText()
	require.NoError(t, err)
	assert.Equal(t, "BAT: 70%", bat)
	pwr, err := p.PowerText()
	require.NoError(t, err)
	assert.Equal(t, "PWR: 8.0W", pwr)
}

func TestBuildPlot_EmptyChargeIsNoData(t *testing.T) {
	_, rate := referenceLogs()
	_, err := BuildPlot("x", nil, rate, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNoData)
	assert.Contains(t, err.Error(), "battery percentage")
}

func TestBuildPlot_EmptyRateIsNoData(t *testing.T) {
	charge, _ := referenceLogs()
	_, err := BuildPlot("x", charge, nil, 2)
	assert.ErrorIs(t, err, types.ErrNoData)
}

func TestPlotTexts_Unavailable(t *testing.T) {
	var p Plot
	_, err := p.BatteryText()
	assert.ErrorIs(t, err, types.ErrNoData)
	_, err = p.PowerText()
	assert.ErrorIs(t, err, types.ErrNoData)
}

func TestBuildNumericTicks_Steps(t *testing.T) {
	assert.Equal(t, []float64{0, 5, 10}, BuildNumericTicks(0, 10, 3))
	assert.Nil(t, BuildNumericTicks(0, 10, 1))
	assert.Equal(t, "2.5", FormatNumericTick(2.5))
	assert.Equal(t, "40", FormatNumericTick(40))
}

func TestBuildPlot_PowerFromStaleRateLog(t *testing.T) {
	charge := types.HistorySeries{{Time: 10000, Value: 40}, {Time: 20000, Value: 45}}
	// rate logging stopped long before the window opens
	rate := types.HistorySeries{{Time: 100, Value: 3.25}, {Time: 200, Value: 6.5}}
	p, err := BuildPlot("x", charge, rate, 1)
	require.NoError(t, err)
	assert.Empty(t, p.Discharging)

	pwr, err := p.PowerText()
	require.NoError(t, err)
	assert.Equal(t, "PWR: 6.5W", pwr)
}

func TestRateTicks_QuarterLabels(t *testing.T) {
	s := Scale{Rate: types.AxisRange{Min: 0, Max: 1}}
	labels := map[float64]string{}
	for _, tk := range s.RateTicks(5) {
		labels[tk.Value] = tk.Label
	}
	assert.Equal(t, "0.25", labels[0.25])
	assert.Equal(t, "0.75", labels[0.75])
	assert.Equal(t, "1", labels[1])
	assert.Equal(t, "2.5", FormatNumericTick(2.5))
}
