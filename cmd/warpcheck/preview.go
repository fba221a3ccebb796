package main

import (
	"image"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"
)

// halfBlock paints the upper pixel as foreground and the lower as background
const halfBlock = '▀'

// preview downsamples the surface into a cell grid, two vertical pixels per cell
type preview struct {
	mu    sync.Mutex
	cols  int
	rows  int
	scale int // Surface pixels per preview pixel
	buf   *image.RGBA
}

func newPreview(cols, rows, scale int) *preview {
	p := &preview{scale: max(scale, 1)}
	p.resize(cols, rows)
	return p
}

// resize adopts a new cell grid
func (p *preview) resize(cols, rows int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cols, p.rows = max(cols, 1), max(rows, 1)
	p.buf = image.NewRGBA(image.Rect(0, 0, p.cols, p.rows*2))
}

// surfaceSize is the raster size matching the grid
func (p *preview) surfaceSize() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cols * p.scale, p.rows * 2 * p.scale
}

// capture scales src into the preview buffer
func (p *preview) capture(src image.Image) {
	p.mu.Lock()
	defer p.mu.Unlock()
	draw.ApproxBiLinear.Scale(p.buf, p.buf.Bounds(), src, src.Bounds(), draw.Src, nil)
}

// paint writes the buffer to the screen at the top-left corner
func (p *preview) paint(screen tcell.Screen) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for y := 0; y < p.rows; y++ {
		for x := 0; x < p.cols; x++ {
			top := p.buf.RGBAAt(x, y*2)
			bottom := p.buf.RGBAAt(x, y*2+1)
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
}

// logical maps a cell to surface-space logical coordinates at its center
func (p *preview) logical(cx, cy int, ratio float64) (x, y float64, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cx < 0 || cy < 0 || cx >= p.cols || cy >= p.rows {
		return 0, 0, false
	}
	s := float64(p.scale)
	return (float64(cx) + 0.5) * s / ratio, (float64(cy)*2 + 1) * s / ratio, true
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
