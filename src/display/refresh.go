// Package display keeps a composited frame on screen until the user dismisses it.
package display

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/Brod8362/upowerchart/src/monitor"
	"github.com/Brod8362/upowerchart/src/types"
)

// DefaultInterval is the redraw cadence.
const DefaultInterval = 100 * time.Millisecond

// Surface is something a frame can be shown on.
type Surface interface {
	// IsOpen is false once the surface was closed from outside.
	IsOpen() bool
	// Dismissed reports whether the dismiss button or key is held.
	Dismissed() bool
	// Present shows img.
	Present(img image.Image) error
}

// Refresher re-presents a frame until the surface is dismissed or closed.
//
// By default the frame is a static snapshot: the telemetry is read once and the same
// buffer is shown on every tick. Setting Rebuild and RebuildEvery re-runs the whole
// pipeline on that cadence instead.
type Refresher struct {
	Surface  Surface
	Interval time.Duration

	Rebuild      func(ctx context.Context) (image.Image, error)
	RebuildEvery time.Duration

	now func() time.Time
}

// NewRefresher returns a static-snapshot refresher for s at DefaultInterval.
func NewRefresher(s Surface) *Refresher {
	return &Refresher{Surface: s, Interval: DefaultInterval}
}

// Run blocks until the surface is dismissed or closed (nil error), ctx is cancelled
// (ctx.Err()), presenting fails (ErrRender) or a rebuild fails (its error).
func (r *Refresher) Run(ctx context.Context, frame image.Image) error {
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	now := r.now
	if now == nil {
		now = time.Now
	}
	live := r.Rebuild != nil && r.RebuildEvery > 0
	lastBuild := now()
	if live {
		monitor.Infof("rebuilding frame every %s", r.RebuildEvery)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	presented := 0
	for {
		if !r.Surface.IsOpen() {
			monitor.Debugf("surface closed after %d presents", presented)
			return nil
		}
		if r.Surface.Dismissed() {
			monitor.Debugf("dismissed after %d presents", presented)
			return nil
		}
		if live && now().Sub(lastBuild) >= r.RebuildEvery {
			next, err := r.Rebuild(ctx)
			if err != nil {
				return fmt.Errorf("rebuild frame: %w", err)
			}
			frame = next
			lastBuild = now()
		}
		if err := r.Surface.Present(frame); err != nil {
			return fmt.Errorf("%w: present: %w", types.ErrRender, err)
		}
		presented++
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
