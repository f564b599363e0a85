// Package render rasterizes planned segment lists into PNG previews for the
// CLI tools. It draws what the planners produced, nothing more: each segment
// becomes an antialiased stroke of the coating width.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"

	"coatpath/internal/shape"
	"coatpath/pkg/geometry"
)

// Options configures preview rasterization.
type Options struct {
	PixelsPerMM float64 // raster scale
	StrokeWidth float64 // stroke width in mm; 0 draws hairlines
	MarginMM    float64 // blank border around the drawing
	Background  color.RGBA
}

// DefaultOptions returns preview defaults suitable for bench inspection.
func DefaultOptions() Options {
	return Options{
		PixelsPerMM: 8,
		StrokeWidth: 0.5,
		MarginMM:    5,
		Background:  color.RGBA{R: 24, G: 24, B: 24, A: 255},
	}
}

// coatingColors maps coating types to preview stroke colors.
var coatingColors = map[shape.CoatingType]color.RGBA{
	shape.CoatFill:    {R: 64, G: 200, B: 255, A: 255},
	shape.CoatOutline: {R: 255, G: 200, B: 64, A: 255},
	shape.CoatMasking: {R: 220, G: 64, B: 64, A: 255},
}

// Preview accumulates per-shape segment lists and rasterizes them. It
// implements toolpath.Consumer so a calculator batch can stream into it.
type Preview struct {
	opts   Options
	layers []layer
}

type layer struct {
	coating  shape.CoatingType
	segments []geometry.Segment
}

// NewPreview creates an empty preview.
func NewPreview(opts Options) *Preview {
	if opts.PixelsPerMM <= 0 {
		opts.PixelsPerMM = DefaultOptions().PixelsPerMM
	}
	return &Preview{opts: opts}
}

// ConsumeShape records one shape's segments for rendering.
func (p *Preview) ConsumeShape(s *shape.Shape, segments []geometry.Segment) error {
	p.layers = append(p.layers, layer{coating: s.CoatingType, segments: segments})
	return nil
}

// Render rasterizes all recorded layers into an RGBA image sized to the
// drawing's bounds plus margin. An empty preview renders a single blank
// tile.
func (p *Preview) Render() *image.RGBA {
	bounds := p.drawingBounds()
	scale := p.opts.PixelsPerMM
	margin := p.opts.MarginMM

	w := int(math.Ceil((bounds.Width + 2*margin) * scale))
	h := int(math.Ceil((bounds.Height + 2*margin) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(p.opts.Background), image.Point{}, draw.Src)

	origin := geometry.NewPoint2D(bounds.X-margin, bounds.Y-margin)
	toPx := func(pt geometry.Point2D) (float32, float32) {
		q := pt.Sub(origin).Scale(scale)
		return float32(q.X), float32(q.Y)
	}

	strokePx := p.opts.StrokeWidth * scale
	if strokePx < 1 {
		strokePx = 1
	}

	for _, l := range p.layers {
		c, ok := coatingColors[l.coating]
		if !ok {
			c = color.RGBA{R: 200, G: 200, B: 200, A: 255}
		}
		for _, seg := range l.segments {
			x0, y0 := toPx(seg.Start)
			x1, y1 := toPx(seg.End)
			strokeSegment(img, x0, y0, x1, y1, float32(strokePx), c)
		}
	}
	return img
}

// drawingBounds returns the union bound of all recorded segments.
func (p *Preview) drawingBounds() geometry.Rect {
	var bounds geometry.Rect
	first := true
	for _, l := range p.layers {
		for _, seg := range l.segments {
			box := geometry.BoundingBox([]geometry.Point2D{seg.Start, seg.End})
			if first {
				bounds, first = box, false
				continue
			}
			bounds = bounds.Union(box)
		}
	}
	return bounds
}

// strokeSegment rasterizes one segment as a filled quad through the
// vector rasterizer, giving antialiased edges.
func strokeSegment(dst *image.RGBA, x0, y0, x1, y1, width float32, c color.RGBA) {
	dx := float64(x1 - x0)
	dy := float64(y1 - y0)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}

	// Perpendicular half-width offset.
	px := float32(-dy / length * float64(width) / 2)
	py := float32(dx / length * float64(width) / 2)

	ras := vector.NewRasterizer(dst.Bounds().Dx(), dst.Bounds().Dy())
	ras.MoveTo(x0+px, y0+py)
	ras.LineTo(x1+px, y1+py)
	ras.LineTo(x1-px, y1-py)
	ras.LineTo(x0-px, y0-py)
	ras.ClosePath()
	ras.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// WritePNG renders the preview and writes it to path.
func (p *Preview) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(f, p.Render()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
