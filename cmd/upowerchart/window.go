package main

import (
	"context"
	"errors"
	"image"
	"sync/atomic"

	fyne "fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/Brod8362/upowerchart/src/display"
	"github.com/Brod8362/upowerchart/src/monitor"
)

// runShow builds the first frame before any window exists, so a broken log never
// opens an empty window, then keeps it on screen until dismissed.
func runShow(ctx context.Context, cfg monitor.Config) error {
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	frame, err := p.frame(ctx)
	if err != nil {
		return err
	}

	a := fyneapp.NewWithID("io.github.brod8362.upowerchart")
	surf := newWindowSurface(a, "upowerchart - "+cfg.Device, cfg.Width, cfg.Height)

	r := display.NewRefresher(surf)
	if cfg.Reload > 0 {
		r.Rebuild = p.frame
		r.RebuildEvery = cfg.Reload
	}

	// fyne owns the main goroutine; the refresh loop hands frames over with fyne.Do.
	errCh := make(chan error, 1)
	go func() {
		errCh <- r.Run(ctx, frame)
		if surf.IsOpen() {
			fyne.Do(a.Quit)
		}
	}()
	surf.win.ShowAndRun()
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// windowSurface is a display.Surface backed by a fixed-size fyne window.
type windowSurface struct {
	win       fyne.Window
	view      *frameView
	closed    atomic.Bool
	dismissed atomic.Bool
}

func newWindowSurface(a fyne.App, title string, w, h int) *windowSurface {
	s := &windowSurface{win: a.NewWindow(title)}
	s.view = newFrameView(w, h, s.dismiss)
	s.win.SetPadded(false)
	s.win.SetFixedSize(true)
	s.win.SetContent(s.view)
	s.win.Resize(fyne.NewSize(float32(w), float32(h)))
	s.win.SetMaster()
	s.win.SetOnClosed(func() { s.closed.Store(true) })
	if dc, ok := s.win.Canvas().(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			if ev.Name == fyne.KeyEscape {
				s.dismiss()
			}
		})
	} else {
		s.win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
			if ev.Name == fyne.KeyEscape {
				s.dismiss()
			}
		})
	}
	return s
}

func (s *windowSurface) dismiss() { s.dismissed.Store(true) }

func (s *windowSurface) IsOpen() bool    { return !s.closed.Load() }
func (s *windowSurface) Dismissed() bool { return s.dismissed.Load() }

func (s *windowSurface) Present(img image.Image) error {
	fyne.Do(func() { s.view.show(img) })
	return nil
}

// frameView shows the frame pixel for pixel and reports primary clicks.
type frameView struct {
	widget.BaseWidget
	img       *canvas.Image
	size      fyne.Size
	onDismiss func()
}

var _ desktop.Mouseable = (*frameView)(nil)

func newFrameView(w, h int, onDismiss func()) *frameView {
	v := &frameView{
		img:       canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, w, h))),
		size:      fyne.NewSize(float32(w), float32(h)),
		onDismiss: onDismiss,
	}
	v.img.FillMode = canvas.ImageFillStretch
	v.img.ScaleMode = canvas.ImageScalePixels
	v.ExtendBaseWidget(v)
	return v
}

func (v *frameView) show(img image.Image) {
	if v.img.Image != img {
		v.img.Image = img
	}
	v.img.Refresh()
}

func (v *frameView) CreateRenderer() fyne.WidgetRenderer { return widget.NewSimpleRenderer(v.img) }

func (v *frameView) MinSize() fyne.Size { return v.size }

func (v *frameView) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonPrimary && v.onDismiss != nil {
		v.onDismiss()
	}
}

func (v *frameView) MouseUp(*desktop.MouseEvent) {}
