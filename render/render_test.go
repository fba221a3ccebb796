package render

import (
	"math"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/perspective"
	"github.com/lixenwraith/warpcheck/shape"
	"github.com/lixenwraith/warpcheck/vmath"
)

// recordSurface records draw calls for assertions
type recordSurface struct {
	w, h    int
	circles int
	moves   int
	lines   int
	fills   int
	strokes int
	dashes  int
	alphas  []float64
}

func (r *recordSurface) Width() int { return r.w }
func (r *recordSurface) Height() int { return r.h }
func (r *recordSurface) Resize(w, h int) error {
	r.w, r.h = w, h
	return nil
}
func (r *recordSurface) ClearWithColor(gg.RGBA) {}
func (r *recordSurface) SetRGBA(_, _, _, a float64) { r.alphas = append(r.alphas, a) }
func (r *recordSurface) SetLineWidth(float64) {}
func (r *recordSurface) SetDash(...float64) { r.dashes++ }
func (r *recordSurface) ClearDash() {}
func (r *recordSurface) MoveTo(float64, float64) { r.moves++ }
func (r *recordSurface) LineTo(float64, float64) { r.lines++ }
func (r *recordSurface) ClosePath() {}
func (r *recordSurface) DrawCircle(float64, float64, float64) { r.circles++ }
func (r *recordSurface) Fill() error { r.fills++; return nil }
func (r *recordSurface) Stroke() error { r.strokes++; return nil }

func testShape(id int, kind shape.Kind, x, y, radius, depth float64) *shape.Shape {
	s := &shape.Shape{ID: id, Kind: kind, Pos: vmath.V(x, y), Radius: radius}
	s.SetDepth(depth)
	s.SetDepthTarget(depth)
	return s
}

func planar(w, h float64) perspective.Projector {
	return perspective.Projector{Center: vmath.V(w/2, h/2)}
}

func warped(w, h, blend float64) perspective.Projector {
	st := perspective.NewState(w, h, vmath.NewFastRand(1))
	st.Pin(blend)
	st.Blend = blend
	return perspective.Projector{Center: vmath.V(w/2, h/2), State: st}
}

// TestDepthMappingMonotonic verifies far shapes are smaller and more transparent
func TestDepthMappingMonotonic(t *testing.T) {
	prevScale, prevOpacity := 0.0, 0.0
	for d := 0.0; d <= 100; d += 10 {
		s, o := shape.DepthScale(d), shape.DepthOpacity(d)
		if s <= prevScale || o <= prevOpacity {
			t.Errorf("Expected increasing scale/opacity at depth %f, got %f/%f after %f/%f", d, s, o, prevScale, prevOpacity)
		}
		prevScale, prevOpacity = s, o
	}
}

// TestPlacePlanar verifies planar placement is the depth mapping alone
func TestPlacePlanar(t *testing.T) {
	s := testShape(1, shape.KindCircle, 100, 80, 20, 100)
	pl := Place(s, planar(400, 300))
	want := Placement{Center: vmath.V(100, 80), Radius: 20 * parameter.DepthScaleNear, Opacity: parameter.DepthOpacityNear, Scale: 1}
	if diff := cmp.Diff(want, pl, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Placement mismatch (-want +got):\n%s", diff)
	}
}

// TestHitTestFollowsProjection verifies hit tests use the projected position
func TestHitTestFollowsProjection(t *testing.T) {
	s := testShape(1, shape.KindCircle, 60, 60, 10, 50)
	pr := warped(400, 400, perspective.Globe)
	pl := Place(s, pr)
	if pl.Center == s.Pos {
		t.Fatal("Expected globe to move an off-center point")
	}
	if !HitTest(pl.Center, s, pr) {
		t.Error("Expected hit at projected center")
	}
	if HitTest(pl.Center.Add(vmath.V(pl.Radius*1.05, 0)), s, pr) {
		t.Error("Expected miss just outside projected radius")
	}
}

// TestHitFactors verifies per-kind bounding radius factors
func TestHitFactors(t *testing.T) {
	pr := planar(400, 400)
	sq := testShape(1, shape.KindSquare, 200, 200, 10, 50)
	star := testShape(2, shape.KindStar, 200, 200, 10, 50)
	p := vmath.V(200+10*1.1, 200)
	if !HitTest(p, sq, pr) {
		t.Error("Expected square corner slack to hit at 1.1r")
	}
	if HitTest(p, star, pr) {
		t.Error("Expected star to miss at 1.1r")
	}
}

// TestPickFrontMost verifies overlapping shapes resolve to the nearest one
func TestPickFrontMost(t *testing.T) {
	far := testShape(1, shape.KindCircle, 100, 100, 20, 10)
	near := testShape(2, shape.KindCircle, 105, 100, 20, 90)
	pr := planar(400, 400)
	if got := Pick(vmath.V(102, 100), []*shape.Shape{near, far}, pr); got != near {
		t.Errorf("Expected near shape, got %+v", got)
	}
	if got := Pick(vmath.V(390, 390), []*shape.Shape{near, far}, pr); got != nil {
		t.Errorf("Expected no hit, got %+v", got)
	}
}

// TestSortStable verifies integer-depth ordering with stable ties
func TestSortStable(t *testing.T) {
	c := NewCompositor(&recordSurface{w: 100, h: 100})
	shapes := []*shape.Shape{
		testShape(1, shape.KindCircle, 0, 0, 1, 50.7),
		testShape(2, shape.KindCircle, 0, 0, 1, 10),
		testShape(3, shape.KindCircle, 0, 0, 1, 50.2),
		testShape(4, shape.KindCircle, 0, 0, 1, 90),
	}
	var got []int
	for _, s := range c.Sort(shapes) {
		got = append(got, s.ID)
	}
	if diff := cmp.Diff([]int{2, 1, 3, 4}, got); diff != "" {
		t.Errorf("Order mismatch (-want +got):\n%s", diff)
	}
}

// TestTessellationThreshold verifies outlines are tessellated only beyond the blend threshold
func TestTessellationThreshold(t *testing.T) {
	s := testShape(1, shape.KindCircle, 150, 120, 30, 50)

	flat := &recordSurface{w: 300, h: 300}
	if err := NewCompositor(flat).Render([]*shape.Shape{s}, warped(300, 300, 0.01), nil, Overlay{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if flat.circles != 2 || flat.lines != 0 {
		t.Errorf("Expected analytic circles below threshold, got %d circles %d lines", flat.circles, flat.lines)
	}

	bent := &recordSurface{w: 300, h: 300}
	if err := NewCompositor(bent).Render([]*shape.Shape{s}, warped(300, 300, -0.5), nil, Overlay{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if bent.circles != 0 {
		t.Errorf("Expected no analytic circles when tessellated, got %d", bent.circles)
	}
	if bent.lines < 2*(parameter.TessellateMinSegments-1) {
		t.Errorf("Expected at least %d segments, got %d", 2*(parameter.TessellateMinSegments-1), bent.lines)
	}
}

// TestOutlineSubdivision verifies polygon edges are subdivided for per-vertex warp
func TestOutlineSubdivision(t *testing.T) {
	s := testShape(1, shape.KindTriangle, 150, 150, 30, 50)
	pts := Outline(s, Place(s, warped(300, 300, 1)), warped(300, 300, 1), 0)
	if want := 3 * parameter.EdgeSubdivisions; len(pts) != want {
		t.Errorf("Expected %d vertices, got %d", want, len(pts))
	}
	if pts := Outline(s, Place(s, planar(300, 300)), planar(300, 300), 0); len(pts) != 3 {
		t.Errorf("Expected 3 planar vertices, got %d", len(pts))
	}
}

// TestCircleSegmentsClamped verifies segment counts stay in range
func TestCircleSegmentsClamped(t *testing.T) {
	if n := circleSegments(1); n != parameter.TessellateMinSegments {
		t.Errorf("Expected min segments, got %d", n)
	}
	if n := circleSegments(10000); n != parameter.TessellateMaxSegments {
		t.Errorf("Expected max segments, got %d", n)
	}
}

// TestDecorationsCosmetic verifies dashed and double borders only add strokes
func TestDecorationsCosmetic(t *testing.T) {
	s := testShape(1, shape.KindSquare, 150, 150, 20, 50)
	s.Dashed = true
	s.DoubleBorder = true
	rs := &recordSurface{w: 300, h: 300}
	if err := NewCompositor(rs).Render([]*shape.Shape{s}, planar(300, 300), nil, Overlay{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if rs.dashes != 1 || rs.strokes != 2 {
		t.Errorf("Expected 1 dash and 2 strokes, got %d / %d", rs.dashes, rs.strokes)
	}

	plain := testShape(2, shape.KindSquare, 150, 150, 20, 50)
	if Place(s, planar(300, 300)) != Place(plain, planar(300, 300)) {
		t.Error("Expected decorations not to change placement")
	}
}

// TestPips verifies labels draw as one pip per unit
func TestPips(t *testing.T) {
	s := testShape(1, shape.KindSquare, 150, 150, 20, 50)
	s.Label = 4
	rs := &recordSurface{w: 300, h: 300}
	if err := NewCompositor(rs).Render([]*shape.Shape{s}, planar(300, 300), nil, Overlay{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if rs.circles != 4 {
		t.Errorf("Expected 4 pips, got %d", rs.circles)
	}
}

// TestOverlay verifies the veil and countdown ring draw only while locked
func TestOverlay(t *testing.T) {
	rs := &recordSurface{w: 300, h: 300}
	c := NewCompositor(rs)
	if err := c.Render(nil, planar(300, 300), nil, Overlay{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if rs.fills != 0 || rs.strokes != 0 {
		t.Errorf("Expected empty frame, got %d fills %d strokes", rs.fills, rs.strokes)
	}

	ov := Overlay{Locked: true, Remaining: 2500 * time.Millisecond, Total: 5 * time.Second}
	if math.Abs(ov.Progress()-0.5) > 1e-12 {
		t.Errorf("Expected progress 0.5, got %f", ov.Progress())
	}
	if err := c.Render(nil, planar(300, 300), nil, ov); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if rs.fills != 1 || rs.strokes != 1 {
		t.Errorf("Expected veil fill and ring stroke, got %d fills %d strokes", rs.fills, rs.strokes)
	}
}

// TestLightRegimes verifies brightening, darkening and neutral light factors
func TestLightRegimes(t *testing.T) {
	l := NewLight(400, 400)
	at := l.Pos
	away := vmath.V(0, 0)

	l.Hold(0)
	if got := l.Opacity(at); got != parameter.LightNeutralOpacity {
		t.Errorf("Expected neutral %f, got %f", parameter.LightNeutralOpacity, got)
	}

	l.Hold(1)
	if got := l.Opacity(at); math.Abs(got-1) > 1e-12 {
		t.Errorf("Expected full brightness at light point, got %f", got)
	}
	if got := l.Opacity(away); got != parameter.LightNeutralOpacity {
		t.Errorf("Expected neutral far from light, got %f", got)
	}

	l.Hold(-1)
	want := parameter.LightNeutralOpacity * (1 - parameter.LightDarkenDepth)
	if got := l.Opacity(at); math.Abs(got-want) > 1e-12 {
		t.Errorf("Expected darkened %f, got %f", want, got)
	}

	var none *Light
	if got := none.Opacity(at); got != parameter.LightNeutralOpacity {
		t.Errorf("Expected nil light neutral, got %f", got)
	}
}

// TestRenderGG verifies a frame rasterizes onto the gg software surface
func TestRenderGG(t *testing.T) {
	dc := NewSurface(120, 90)
	c := NewCompositor(dc)
	shapes := []*shape.Shape{
		testShape(1, shape.KindCircle, 40, 40, 12, 60),
		testShape(2, shape.KindStar, 80, 50, 14, 30),
	}
	if err := c.Render(shapes, warped(120, 90, 0.7), NewLight(120, 90), Overlay{Locked: true, Remaining: time.Second, Total: 2 * time.Second}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if b := dc.Image().Bounds(); b.Dx() != 120 || b.Dy() != 90 {
		t.Errorf("Expected 120x90 image, got %v", b)
	}

	if err := c.Resize(200, 150); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if w, h := c.Size(); w != 200 || h != 150 {
		t.Errorf("Expected 200x150, got %vx%v", w, h)
	}
}
