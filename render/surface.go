// Package render composites the shape field onto a raster surface
package render

import (
	"github.com/gogpu/gg"
)

// Surface is the drawing target, satisfied by *gg.Context
type Surface interface {
	Width() int
	Height() int
	Resize(width, height int) error

	ClearWithColor(col gg.RGBA)
	SetRGBA(r, g, b, a float64)
	SetLineWidth(width float64)
	SetDash(lengths ...float64)
	ClearDash()

	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	DrawCircle(x, y, r float64)

	Fill() error
	Stroke() error
}

var _ Surface = (*gg.Context)(nil)

// NewSurface creates a software raster surface
func NewSurface(width, height int) *gg.Context {
	return gg.NewContext(width, height)
}
