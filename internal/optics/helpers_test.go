package optics

import (
	"math"
	"testing"
)

func nearly(a, b, tol Real) bool { return math.Abs(a-b) <= tol }

// raySource feeds a fixed set of rays into a trace.
type raySource struct {
	rays []*Ray
}

func (s *raySource) ID() string   { return "test_source" }
func (s *raySource) Kind() string { return "test_source" }

func (s *raySource) Bounds() Rect {
	b := emptyRect()
	for _, r := range s.rays {
		b = b.AddPoint(r.Origin())
	}
	return b
}

func (s *raySource) Intersect(Point2, Vector2) []Hit        { return nil }
func (s *raySource) Interact(r *Ray, _ Hit, p *Pass) []*Ray { return p.absorb(s, r) }
func (s *raySource) GenerateRays(*Pass) []*Ray              { return s.rays }

func testRay(t *testing.T, o Point2, d Vector2, wavelengthNM, intensity Real) *Ray {
	t.Helper()
	r, err := NewRay(RayParams{Origin: o, Direction: d, WavelengthNM: wavelengthNM, Intensity: intensity, SourceID: "test_source"})
	if err != nil {
		t.Fatalf("NewRay: %v", err)
	}
	return r
}

func polRay(t *testing.T, o Point2, d Vector2, pol Polarization) *Ray {
	t.Helper()
	r, err := NewRay(RayParams{Origin: o, Direction: d, WavelengthNM: 633, Intensity: 1, Polarization: pol})
	if err != nil {
		t.Fatalf("NewRay: %v", err)
	}
	return r
}

// traceRays traces rays through elements with the default config.
func traceRays(elements []Element, rays ...*Ray) *Result {
	return Trace(elements, []Source{&raySource{rays: rays}}, TraceConfig{})
}

// interactOnce runs a single ray against a single element the way the
// tracer does and returns the children.
func interactOnce(t *testing.T, e Element, r *Ray) (Hit, []*Ray, *Pass) {
	t.Helper()
	h, ok := nearest(e.Intersect(r.Origin(), r.Direction()))
	if !ok {
		t.Fatalf("ray %v %v misses %s", r.Origin(), r.Direction(), e.ID())
	}
	p := NewPass(TraceConfig{})
	r.AppendPoint(h.Point)
	kids := e.Interact(r, h, p)
	if !r.Terminated() {
		t.Fatalf("%s left the input ray live", e.Kind())
	}
	return h, kids, p
}

func withReason(res *Result, reason TerminationReason) []*Ray {
	var out []*Ray
	for _, r := range res.Rays {
		if r.Reason() == reason {
			out = append(out, r)
		}
	}
	return out
}

// axisCrossing is where the line through p along d meets y = 0.
func axisCrossing(p Point2, d Vector2) Real {
	return p.X - p.Y*d.X/d.Y
}
