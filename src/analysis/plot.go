package analysis

import (
	"fmt"
	"strconv"

	"github.com/Brod8362/upowerchart/src/types"
)

// Plot is everything the compositor needs for one frame.
type Plot struct {
	Device string
	Window types.TimeWindow
	Scale  Scale

	Percent     []types.PlotPoint
	Charging    []types.PlotPoint
	Discharging []types.PlotPoint

	// Raw samples for the BAT and PWR annotations: the newest visible charge entry
	// and the newest rate entry. Nil means the value is unavailable.
	LatestCharge *types.HistoryEntry
	LatestRate   *types.HistoryEntry
}

// BuildPlot runs window selection, the series transforms and scale derivation.
// The first failing stage's error is returned and no partial plot is produced.
func BuildPlot(device string, charge, rate types.HistorySeries, hours int) (Plot, error) {
	w, err := SelectWindow(charge, rate, hours)
	if err != nil {
		return Plot{}, err
	}
	scale, err := ComputeScale(rate, w, hours)
	if err != nil {
		return Plot{}, err
	}
	latestCharge, err := LatestInWindow(charge, w)
	if err != nil {
		return Plot{}, fmt.Errorf("battery percentage: %w", err)
	}
	// Power reads the newest sample of the whole log; a rate log that stopped before
	// the window still has a current value.
	latestRate, ok := rate.Last()
	if !ok {
		return Plot{}, fmt.Errorf("battery power: %w", types.NoDataf("empty rate log"))
	}
	return Plot{
		Device:       device,
		Window:       w,
		Scale:        scale,
		Percent:      PercentSeries(charge, w),
		Charging:     ChargingSeries(rate, w),
		Discharging:  DischargingSeries(rate, w),
		LatestCharge: &latestCharge,
		LatestRate:   &latestRate,
	}, nil
}

// Annotation texts for the bottom row.
const (
	batteryFormat = "BAT: %s%%"
	powerFormat   = "PWR: %.1fW"
)

// BatteryText renders the current charge annotation, e.g. "BAT: 87.5%".
func (p Plot) BatteryText() (string, error) {
	if p.LatestCharge == nil {
		return "", types.NoDataf("battery percentage unavailable")
	}
	return fmt.Sprintf(batteryFormat, strconv.FormatFloat(p.LatestCharge.Value, 'f', -1, 64)), nil
}

// PowerText renders the current power annotation with one decimal, e.g. "PWR: 7.3W".
func (p Plot) PowerText() (string, error) {
	if p.LatestRate == nil {
		return "", types.NoDataf("battery power unavailable")
	}
	return fmt.Sprintf(powerFormat, p.LatestRate.Value), nil
}
