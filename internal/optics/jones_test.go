package optics

import (
	"math"
	"testing"
)

func TestLinearStokes(t *testing.T) {
	for _, a := range []Real{0, math.Pi / 6, math.Pi / 4, -math.Pi / 3} {
		p := Linear(a)
		s1, s2, s3 := p.Stokes()
		if !nearly(s1, math.Cos(2*a), 1e-12) || !nearly(s2, math.Sin(2*a), 1e-12) || !nearly(s3, 0, 1e-12) {
			t.Fatalf("Linear(%.3f) Stokes = (%.6g, %.6g, %.6g)", a, s1, s2, s3)
		}
		ex, ey, _ := p.Jones()
		if q := FromJones(ex, ey); q.Kind() != PolLinear || !nearly(q.Angle(), p.Angle(), 1e-12) {
			t.Fatalf("FromJones round trip: %v %.6g", q, q.Angle())
		}
	}
}

func TestCircularTags(t *testing.T) {
	r := Circular(RightHanded)
	if r.Kind() != PolCircular || r.Handedness() != RightHanded {
		t.Fatalf("right circular: %v", r)
	}
	l := Circular(LeftHanded)
	if l.Kind() != PolCircular || l.Handedness() != LeftHanded {
		t.Fatalf("left circular: %v", l)
	}
	if _, _, s3 := r.Stokes(); !nearly(s3, -1, 1e-12) {
		t.Fatalf("right circular S3 = %.12g", s3)
	}
}

func TestEllipticalTag(t *testing.T) {
	p := FromJones(complex(0.8, 0), complex(0, 0.6))
	if p.Kind() != PolElliptical {
		t.Fatalf("want elliptical, got %v", p)
	}
	if p.Ellipticity() == 0 {
		t.Fatal("elliptical state needs a non-zero ellipticity")
	}
	if FromJones(0, 0).IsPolarized() {
		t.Fatal("zero Jones vector must be unpolarized")
	}
}

func TestMalusProjection(t *testing.T) {
	for _, d := range []Real{0, 15, 30, 45, 60, 89} {
		theta := degToRad(d)
		out, f := Linear(theta).Project(0)
		if want := math.Cos(theta) * math.Cos(theta); !nearly(f, want, 1e-12) {
			t.Fatalf("Malus at %.0f°: got %.12g want %.12g", d, f, want)
		}
		if out.Kind() != PolLinear || out.Angle() != 0 {
			t.Fatalf("projected state should be Linear(0), got %v %.6g", out, out.Angle())
		}
	}
	if _, f := Unpolarized().Project(1); f != 0.5 {
		t.Fatalf("unpolarized projection = %.12g", f)
	}
}

func TestRetarders(t *testing.T) {
	hwp := JonesRetarder(math.Pi/8, math.Pi)
	out, f := Linear(0).ApplyJones(hwp)
	if out.Kind() != PolLinear || !nearly(out.Angle(), math.Pi/4, 1e-9) || !nearly(f, 1, 1e-12) {
		t.Fatalf("HWP at 22.5° on 0°: %v angle=%.9g f=%.12g", out, out.Angle(), f)
	}
	qwp := JonesRetarder(math.Pi/4, math.Pi/2)
	out, f = Linear(0).ApplyJones(qwp)
	if out.Kind() != PolCircular || out.Handedness() != RightHanded || !nearly(f, 1, 1e-12) {
		t.Fatalf("QWP at 45° on 0°: %v f=%.12g", out, f)
	}
	back, _ := out.ApplyJones(qwp)
	if back.Kind() != PolLinear || !nearly(math.Abs(back.Angle()), math.Pi/2, 1e-9) {
		t.Fatalf("two QWPs should act as a HWP: %v angle=%.9g", back, back.Angle())
	}
	same, f := Unpolarized().ApplyJones(qwp)
	if same.IsPolarized() || !nearly(f, 1, 1e-12) {
		t.Fatalf("retarder must leave unpolarized light alone: %v f=%.12g", same, f)
	}
}

func TestJonesPolarizerMatchesProject(t *testing.T) {
	in := Linear(0.4)
	a, fa := in.ApplyJones(JonesPolarizer(1.1))
	b, fb := in.Project(1.1)
	if !nearly(fa, fb, 1e-12) || !nearly(a.Angle(), b.Angle(), 1e-9) {
		t.Fatalf("polarizer matrix %.12g/%.6g vs Project %.12g/%.6g", fa, a.Angle(), fb, b.Angle())
	}
}
