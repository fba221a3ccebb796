package render

import (
	"fmt"
	"math"
	"time"

	"github.com/gogpu/gg"

	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/perspective"
	"github.com/lixenwraith/warpcheck/shape"
	"github.com/lixenwraith/warpcheck/vmath"
)

// Background is the surface clear color
var Background = gg.RGBA{R: 0.06, G: 0.07, B: 0.10, A: 1}

// Overlay is the lock state drawn over the field
type Overlay struct {
	Locked    bool
	Remaining time.Duration
	Total     time.Duration
}

// Progress returns the remaining fraction of the lock in [0, 1]
func (o Overlay) Progress() float64 {
	if !o.Locked || o.Total <= 0 {
		return 0
	}
	return vmath.Clamp(float64(o.Remaining)/float64(o.Total), 0, 1)
}

// Compositor draws shapes back-to-front onto a Surface
type Compositor struct {
	surface       Surface
	width, height float64

	// Scale-dependent stroke metrics, re-derived on Resize
	lineWidth float64
	dash      float64
	inset     float64

	order []*shape.Shape
}

// NewCompositor creates a compositor bound to a surface
func NewCompositor(s Surface) *Compositor {
	c := &Compositor{surface: s, order: make([]*shape.Shape, 0, 16)}
	c.fit(float64(s.Width()), float64(s.Height()))
	return c
}

// Size returns the current surface dimensions
func (c *Compositor) Size() (width, height float64) {
	return c.width, c.height
}

// Resize resizes the surface and re-derives stroke metrics
func (c *Compositor) Resize(width, height int) error {
	if err := c.surface.Resize(width, height); err != nil {
		return fmt.Errorf("resize surface: %w", err)
	}
	c.fit(float64(width), float64(height))
	return nil
}

func (c *Compositor) fit(width, height float64) {
	c.width, c.height = width, height
	k := math.Max(math.Min(width, height)/480, 0.5)
	c.lineWidth = parameter.OutlineWidth * k
	c.dash = parameter.DashLength * k
	c.inset = parameter.DoubleBorderInset * k
}

// Sort orders shapes by integer depth ascending, preserving input order on ties
// Insertion sort, n is small and the slice is reused across frames
func (c *Compositor) Sort(shapes []*shape.Shape) []*shape.Shape {
	c.order = append(c.order[:0], shapes...)
	for i := 1; i < len(c.order); i++ {
		s := c.order[i]
		d := int(s.Depth)
		j := i
		for j > 0 && int(c.order[j-1].Depth) > d {
			c.order[j] = c.order[j-1]
			j--
		}
		c.order[j] = s
	}
	return c.order
}

// Render draws one frame. The first draw error aborts the frame.
func (c *Compositor) Render(shapes []*shape.Shape, pr perspective.Projector, light *Light, ov Overlay) error {
	c.surface.ClearWithColor(Background)

	for _, s := range c.Sort(shapes) {
		if err := c.drawShape(s, pr, light); err != nil {
			return fmt.Errorf("draw shape %d: %w", s.ID, err)
		}
	}

	if ov.Locked {
		if err := c.drawOverlay(ov); err != nil {
			return fmt.Errorf("draw overlay: %w", err)
		}
	}
	return nil
}

func (c *Compositor) drawShape(s *shape.Shape, pr perspective.Projector, light *Light) error {
	pl := Place(s, pr)
	if pl.Radius <= 0 {
		return nil
	}
	alpha := vmath.Clamp(pl.Opacity*light.Opacity(pl.Center), 0, 1)

	col := shape.ColorOf(s.Color)
	if s.Inverted {
		col = col.Inverse()
	}

	// Body
	c.trace(s, pl, pr, 0)
	c.surface.SetRGBA(col.R, col.G, col.B, alpha*0.55)
	if err := c.surface.Fill(); err != nil {
		return err
	}

	// Border
	width := c.lineWidth
	if s.Clicked {
		width *= 2
	}
	c.surface.SetLineWidth(width)
	if s.Dashed {
		c.surface.SetDash(c.dash, c.dash)
	}
	c.trace(s, pl, pr, 0)
	c.surface.SetRGBA(col.R, col.G, col.B, alpha)
	err := c.surface.Stroke()
	if s.Dashed {
		c.surface.ClearDash()
	}
	if err != nil {
		return err
	}

	if s.DoubleBorder {
		c.trace(s, pl, pr, c.inset)
		if err := c.surface.Stroke(); err != nil {
			return err
		}
	}

	if s.Label > 0 {
		return c.drawPips(s.Label, pl, alpha)
	}
	return nil
}

// trace builds the outline path of s on the surface
func (c *Compositor) trace(s *shape.Shape, pl Placement, pr perspective.Projector, inset float64) {
	pts := Outline(s, pl, pr, inset)
	if pts == nil {
		if r := pl.Radius - inset; r > 0 && s.Kind == shape.KindCircle {
			c.surface.DrawCircle(pl.Center[0], pl.Center[1], r)
		}
		return
	}
	c.surface.MoveTo(pts[0][0], pts[0][1])
	for _, p := range pts[1:] {
		c.surface.LineTo(p[0], p[1])
	}
	c.surface.ClosePath()
}

// drawPips renders a numeric label as n dots on a ring inside the shape
func (c *Compositor) drawPips(n int, pl Placement, alpha float64) error {
	pip := pl.Radius * parameter.PipRadiusRatio
	ring := pl.Radius * 0.5
	if n == 1 {
		ring = 0
	}
	c.surface.SetRGBA(1, 1, 1, alpha)
	for i := 0; i < n; i++ {
		p := pl.Center.Add(vmath.FromAngle(-math.Pi/2+float64(i)*vmath.TwoPi/float64(n), ring))
		c.surface.DrawCircle(p[0], p[1], pip)
	}
	return c.surface.Fill()
}

// drawOverlay dims the field and draws the countdown ring
func (c *Compositor) drawOverlay(ov Overlay) error {
	c.surface.SetRGBA(0, 0, 0, 0.45)
	c.surface.MoveTo(0, 0)
	c.surface.LineTo(c.width, 0)
	c.surface.LineTo(c.width, c.height)
	c.surface.LineTo(0, c.height)
	c.surface.ClosePath()
	if err := c.surface.Fill(); err != nil {
		return err
	}

	progress := ov.Progress()
	if progress <= 0 {
		return nil
	}
	center := vmath.V(c.width/2, c.height/2)
	r := math.Min(c.width, c.height) * 0.12
	segments := int(math.Ceil(progress * parameter.TessellateMaxSegments))
	if segments < 1 {
		segments = 1
	}
	start := -math.Pi / 2
	sweep := progress * vmath.TwoPi

	c.surface.SetLineWidth(c.lineWidth * 2)
	c.surface.SetRGBA(1, 1, 1, 0.9)
	p := center.Add(vmath.FromAngle(start, r))
	c.surface.MoveTo(p[0], p[1])
	for i := 1; i <= segments; i++ {
		p = center.Add(vmath.FromAngle(start+sweep*float64(i)/float64(segments), r))
		c.surface.LineTo(p[0], p[1])
	}
	return c.surface.Stroke()
}
