package render

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gomono"
)

// DefaultFontSize is the point size of axis labels and annotations.
const DefaultFontSize = 12

var (
	monoOnce sync.Once
	monoFont *truetype.Font
	monoErr  error
)

// MonoFont returns the parsed Go Mono face used for all chart text.
func MonoFont() (*truetype.Font, error) {
	monoOnce.Do(func() {
		monoFont, monoErr = truetype.Parse(gomono.TTF)
	})
	return monoFont, monoErr
}
