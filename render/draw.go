package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/textlayer/model"
)

// DrawConfig holds configuration for page rendering
type DrawConfig struct {
	// Scale multiplies page coordinates into pixels (default: 1)
	Scale float64

	// Background fills the page
	Background color.Color

	// Outline strokes each fragment's rectangle
	Outline color.Color

	// Highlight fills match and selection rectangles; use a translucent
	// color so the text stays legible
	Highlight color.Color

	// Labels draws each fragment's text in a small bitmap font
	Labels bool
}

// DefaultDrawConfig returns sensible default configuration
func DefaultDrawConfig() DrawConfig {
	return DrawConfig{
		Scale:      1,
		Background: color.White,
		Outline:    color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff},
		Highlight:  color.NRGBA{R: 0xff, G: 0xeb, B: 0x3b, A: 0x80},
		Labels:     true,
	}
}

// Page renders a page's fragments with highlight rectangles using the
// default configuration. Passing zero page dimensions sizes the image to
// the fragments.
func Page(corpus *model.PageTextCorpus, width, height float64, highlights []model.Rect) *image.RGBA {
	return PageWithConfig(corpus, width, height, highlights, DefaultDrawConfig())
}

// PageWithConfig renders a page with custom configuration. Fragments are
// drawn as outlined boxes with optional text labels; highlights are filled
// over the page so search matches and selections are visible in the
// output.
func PageWithConfig(corpus *model.PageTextCorpus, width, height float64, highlights []model.Rect, config DrawConfig) *image.RGBA {
	if config.Scale <= 0 {
		config.Scale = 1
	}
	if config.Background == nil {
		config.Background = color.White
	}

	if width <= 0 || height <= 0 {
		width, height = contentBounds(corpus)
	}

	img := image.NewRGBA(image.Rect(0, 0, scaleUp(width, config.Scale), scaleUp(height, config.Scale)))
	draw.Draw(img, img.Bounds(), image.NewUniform(config.Background), image.Point{}, draw.Src)

	if config.Highlight != nil {
		for _, r := range highlights {
			fillRect(img, pixelRect(r, config.Scale), config.Highlight)
		}
	}

	if corpus != nil {
		for _, frag := range corpus.Fragments {
			pr := pixelRect(frag.Rect, config.Scale)
			if config.Outline != nil {
				strokeRect(img, pr, config.Outline)
			}
			if config.Labels && frag.Text != "" {
				drawLabel(img, pr, frag.Text)
			}
		}
	}
	return img
}

// contentBounds sizes a page to its fragments plus a margin.
func contentBounds(corpus *model.PageTextCorpus) (width, height float64) {
	const margin = 16.0
	if corpus == nil {
		return margin, margin
	}
	var bounds model.Rect
	for _, frag := range corpus.Fragments {
		bounds = bounds.Union(frag.Rect)
	}
	return bounds.Right() + margin, bounds.Bottom() + margin
}

func pixelRect(r model.Rect, scale float64) image.Rectangle {
	return image.Rect(
		scaleUp(r.X, scale),
		scaleUp(r.Y, scale),
		scaleUp(r.Right(), scale),
		scaleUp(r.Bottom(), scale),
	)
}

func scaleUp(v, scale float64) int {
	return int(v*scale + 0.5)
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// drawLabel renders text at the fragment's baseline in the fixed bitmap
// font. Long labels simply run past the box; the output is a debugging
// aid, not typesetting.
func drawLabel(img *image.RGBA, r image.Rectangle, text string) {
	ascent := basicfont.Face7x13.Ascent
	baseline := r.Min.Y + ascent
	if max := r.Max.Y - 1; baseline > max {
		baseline = max
	}

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(r.Min.X+2, baseline),
	}
	d.DrawString(text)
}
