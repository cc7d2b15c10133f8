// Package analysis turns parsed history logs into plot-ready series and axis scales.
//
// Stages run strictly forward: SelectWindow, then the series transforms, then
// ComputeScale. BuildPlot runs all of them for one render.
package analysis

import (
	"fmt"

	"github.com/Brod8362/upowerchart/src/types"
)

// SecondsPerHour converts the hours setting into window seconds.
const SecondsPerHour = 60 * 60

// DefaultHours is the visible history when the caller does not choose one.
const DefaultHours = 3

// SelectWindow computes the visible window ending at the newest sample of either log.
// Both logs empty is a NoData condition.
func SelectWindow(charge, rate types.HistorySeries, hours int) (types.TimeWindow, error) {
	if hours <= 0 {
		return types.TimeWindow{}, fmt.Errorf("%w: hours must be positive, got %d", types.ErrInvalidConfig, hours)
	}
	lastCharge, okCharge := charge.Last()
	lastRate, okRate := rate.Last()
	var end int64
	switch {
	case okCharge && okRate:
		end = lastCharge.Time
		if lastRate.Time > end {
			end = lastRate.Time
		}
	case okCharge:
		end = lastCharge.Time
	case okRate:
		end = lastRate.Time
	default:
		return types.TimeWindow{}, types.NoDataf("charge and rate logs are both empty")
	}
	return types.TimeWindow{Start: end - int64(hours)*SecondsPerHour, End: end}, nil
}
