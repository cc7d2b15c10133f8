package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Brod8362/upowerchart/src/monitor"
	"github.com/Brod8362/upowerchart/src/render"
	"github.com/Brod8362/upowerchart/src/types"
)

// RunExportMode renders the chart once and writes it to outPath as PNG.
// It runs headlessly without creating a window.
func RunExportMode(cfg monitor.Config, outPath string) error {
	if outPath == "" {
		outPath = "upowerchart.png"
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create out dir: %w", types.ErrIO, err)
		}
	}
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	img, err := p.frame(context.Background())
	if err != nil {
		return err
	}
	if err := render.WritePNG(outPath, img); err != nil {
		return err
	}
	monitor.Infof("wrote %dx%d chart for %s to %s", cfg.Width, cfg.Height, cfg.Device, outPath)
	return nil
}
