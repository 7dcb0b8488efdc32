package optics

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestNewRayNormalizesDirection(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		d := Vector2{rng.NormFloat64() * 100, rng.NormFloat64() * 100}
		if d.Len() < 1e-6 {
			continue
		}
		r := testRay(t, Point2{rng.Float64(), rng.Float64()}, d, 550, 1)
		if math.Abs(r.Direction().Len()-1) > 1e-6 {
			t.Fatalf("direction not unit: %.12g", r.Direction().Len())
		}
		if r.Terminated() {
			t.Fatalf("valid ray terminated: %s", r.Reason())
		}
		if h := r.History(); len(h) != 1 || h[0] != r.Origin() {
			t.Fatalf("history should start at origin, got %v", h)
		}
	}
}

func TestNewRayDegenerateDirection(t *testing.T) {
	r := testRay(t, Point2{}, Vector2{}, 550, 1)
	if !r.Terminated() || r.Reason() != ReasonZeroDirection {
		t.Fatalf("zero direction: terminated=%v reason=%q", r.Terminated(), r.Reason())
	}
	r = testRay(t, Point2{}, Vector2{math.NaN(), 1}, 550, 1)
	if r.Reason() != ReasonNaN {
		t.Fatalf("NaN direction: reason=%q", r.Reason())
	}
}

func TestNewRayValidation(t *testing.T) {
	cases := []struct {
		name  string
		p     RayParams
		field string
		want  error
	}{
		{"zero wavelength", RayParams{Direction: Vector2{1, 0}, WavelengthNM: 0, Intensity: 1}, "wavelength", ErrInvalidWavelength},
		{"inf wavelength", RayParams{Direction: Vector2{1, 0}, WavelengthNM: math.Inf(1), Intensity: 1}, "wavelength", ErrInvalidWavelength},
		{"negative intensity", RayParams{Direction: Vector2{1, 0}, WavelengthNM: 500, Intensity: -1}, "intensity", ErrNegativeIntensity},
		{"NaN intensity", RayParams{Direction: Vector2{1, 0}, WavelengthNM: 500, Intensity: math.NaN()}, "intensity", ErrNonFinite},
		{"NaN origin", RayParams{Origin: Point2{math.NaN(), 0}, Direction: Vector2{1, 0}, WavelengthNM: 500, Intensity: 1}, "origin", ErrNonFinite},
		{"sub-vacuum medium", RayParams{Direction: Vector2{1, 0}, WavelengthNM: 500, Intensity: 1, MediumIndex: 0.5}, "medium", ErrInvalidMedium},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRay(tc.p)
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
			var re *RayError
			if !errors.As(err, &re) || re.Field != tc.field {
				t.Fatalf("want RayError on %q, got %#v", tc.field, err)
			}
		})
	}
}

func TestRayHistoryAppend(t *testing.T) {
	r := testRay(t, Point2{}, Vector2{1, 0}, 550, 1)
	if r.AppendPoint(Point2{1e-12, 0}) {
		t.Fatal("point closer than HistoryEpsilon must be dropped")
	}
	if r.AppendPoint(Point2{math.NaN(), 1}) {
		t.Fatal("NaN point must be dropped")
	}
	if !r.AppendPoint(Point2{3, 4}) {
		t.Fatal("distinct point must be appended")
	}
	if r.HistoryLen() != 2 || !nearly(r.PathLength, 5, 1e-12) {
		t.Fatalf("history=%v path=%.12g", r.History(), r.PathLength)
	}
	h := r.History()
	h[0] = Point2{99, 99}
	if r.History()[0] != (Point2{}) {
		t.Fatal("History must return a copy")
	}
}

func TestTerminatedRayIsInert(t *testing.T) {
	r := testRay(t, Point2{}, Vector2{1, 0}, 550, 1)
	r.Terminate(ReasonLowIntensity)
	r.Terminate(ReasonNoIntersection)
	if r.Reason() != ReasonLowIntensity {
		t.Fatalf("first reason must win, got %q", r.Reason())
	}
	r.SetIntensity(5)
	r.AddPhase(1)
	r.SetPolarization(Linear(1))
	if r.AppendPoint(Point2{10, 0}) || r.Intensity() != 1 || r.Phase() != 0 || r.Polarization().IsPolarized() {
		t.Fatal("terminated ray was mutated")
	}
}

func TestRayIntensityAndPhase(t *testing.T) {
	r := testRay(t, Point2{}, Vector2{1, 0}, 550, 1)
	r.SetIntensity(-3)
	if r.Intensity() != 0 {
		t.Fatalf("negative intensity must clamp to 0, got %.12g", r.Intensity())
	}
	r.AddPhase(3 * math.Pi)
	if !nearly(r.Phase(), math.Pi, 1e-12) {
		t.Fatalf("phase should wrap to π, got %.15g", r.Phase())
	}
	r.AddPhase(0.5)
	if r.Phase() <= -math.Pi || r.Phase() > math.Pi {
		t.Fatalf("phase out of (-π, π]: %.15g", r.Phase())
	}
}

func TestSpawnInheritsHistory(t *testing.T) {
	r := testRay(t, Point2{}, Vector2{1, 0}, 550, 2)
	r.ID = 4
	r.AppendPoint(Point2{10, 0})
	c, err := r.Spawn(Point2{10, 0}, Vector2{0, 3}, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	if c.ParentID != 4 || c.Bounces != 1 || c.SourceID != r.SourceID || c.WavelengthNM != 550 {
		t.Fatalf("bad child bookkeeping: %+v", c)
	}
	if got := c.History(); len(got) != 2 || got[1] != (Point2{10, 0}) {
		t.Fatalf("child history mismatch: %v", got)
	}
	if o := c.Origin(); !nearly(o.X, 10, 1e-12) || !nearly(o.Y, BumpShift, 1e-15) {
		t.Fatalf("child origin must be bumped along its direction: %+v", o)
	}
	if d := c.Direction(); d != (Vector2{0, 1}) {
		t.Fatalf("child direction not normalized: %+v", d)
	}
	if _, err := r.Spawn(Point2{10, 0}, Vector2{0, 1}, -1); !errors.Is(err, ErrNegativeIntensity) {
		t.Fatalf("negative child intensity must fail, got %v", err)
	}
}

func TestAbsorbedReason(t *testing.T) {
	r := Absorbed("aperture")
	if r != "absorbed_aperture" || !r.IsAbsorbed() || ReasonNoIntersection.IsAbsorbed() {
		t.Fatalf("Absorbed mismatch: %q", r)
	}
}
