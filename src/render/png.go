package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/Brod8362/upowerchart/src/types"
)

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("%w: png encode: %w", types.ErrRender, err)
	}
	return nil
}

// WritePNG encodes img into the file at path, replacing it if present.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	return nil
}
