package optics

import (
	"math"
	"testing"
)

func TestPolarizerMalus(t *testing.T) {
	pz, err := NewPolarizer("pz", Pose{}, 10, 0, AbsorptivePolarizer)
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range []Real{0, 20, 45, 70} {
		theta := degToRad(d)
		r := polRay(t, Point2{-5, 0}, Vector2{1, 0}, Linear(theta))
		_, kids, _ := interactOnce(t, pz, r)
		if len(kids) != 1 {
			t.Fatalf("%.0f°: want one child, got %d", d, len(kids))
		}
		if want := math.Pow(math.Cos(theta), 2); !nearly(kids[0].Intensity(), want, 1e-12) {
			t.Fatalf("%.0f°: transmitted %.12g want %.12g", d, kids[0].Intensity(), want)
		}
		if pol := kids[0].Polarization(); pol.Kind() != PolLinear || pol.Angle() != 0 {
			t.Fatalf("%.0f°: child polarization %v", d, pol)
		}
	}

	r := polRay(t, Point2{-5, 0}, Vector2{1, 0}, Unpolarized())
	if _, kids, _ := interactOnce(t, pz, r); len(kids) != 1 || kids[0].Intensity() != 0.5 {
		t.Fatalf("unpolarized light should lose half: %v", kids)
	}

	r = polRay(t, Point2{-5, 0}, Vector2{1, 0}, Linear(math.Pi/2))
	if _, kids, _ := interactOnce(t, pz, r); len(kids) != 0 || r.Reason() != Absorbed("polarizer") {
		t.Fatalf("crossed polarizer: kids=%d reason=%q", len(kids), r.Reason())
	}
}

func TestGlanExtinction(t *testing.T) {
	pz, err := NewPolarizer("glan", Pose{}, 10, 0, GlanPolarizer)
	if err != nil {
		t.Fatal(err)
	}
	pz.ExtinctionRatio = 1000
	r := polRay(t, Point2{-5, 0}, Vector2{1, 0}, Linear(math.Pi/2))
	_, kids, _ := interactOnce(t, pz, r)
	if len(kids) != 1 || !nearly(kids[0].Intensity(), 1e-3, 1e-15) {
		t.Fatalf("Glan leak should be 1/ER: %v", kids)
	}
	if pz.Kind() != "glan_polarizer" {
		t.Fatalf("kind %q", pz.Kind())
	}
}

func TestWireGridReflectsOrthogonal(t *testing.T) {
	pz, err := NewPolarizer("wg", Pose{}, 10, 0, WireGridPolarizer)
	if err != nil {
		t.Fatal(err)
	}
	r := polRay(t, Point2{-5, 0}, Vector2{1, 0}, Linear(math.Pi/3))
	_, kids, _ := interactOnce(t, pz, r)
	if len(kids) != 2 {
		t.Fatalf("want transmitted and reflected rays, got %d", len(kids))
	}
	tr, rf := kids[0], kids[1]
	if want := 0.25 + 0.75/1000; !nearly(tr.Intensity(), want, 1e-12) {
		t.Fatalf("transmitted %.12g want %.12g", tr.Intensity(), want)
	}
	if !nearly(rf.Intensity(), 0.75, 1e-12) || rf.Direction() != (Vector2{-1, 0}) {
		t.Fatalf("reflected ray %.12g %+v", rf.Intensity(), rf.Direction())
	}
	if !nearly(rf.Polarization().Angle(), math.Pi/2, 1e-12) {
		t.Fatalf("reflected polarization %.12g", rf.Polarization().Angle())
	}
}

func TestBeamSplitterEnergyBound(t *testing.T) {
	for R := 0.0; R <= 1; R += 0.1 {
		for T := 0.0; R+T <= 1+1e-9; T += 0.1 {
			if R+T > 1 {
				T = 1 - R
			}
			bs, err := NewBeamSplitter("bs", Pose{Angle: math.Pi / 4}, 10, R, T)
			if err != nil {
				t.Fatalf("R=%.1f T=%.1f: %v", R, T, err)
			}
			r := testRay(t, Point2{-5, 0}, Vector2{1, 0}, 550, 1)
			_, kids, _ := interactOnce(t, bs, r)
			sum := 0.0
			for _, k := range kids {
				if k.Intensity() < 0 {
					t.Fatalf("negative child intensity %.12g", k.Intensity())
				}
				sum += k.Intensity()
			}
			if sum > 1+1e-12 {
				t.Fatalf("R=%.1f T=%.1f: children carry %.12g > 1", R, T, sum)
			}
		}
	}
	if _, err := NewBeamSplitter("bad", Pose{}, 10, 0.7, 0.7); err == nil {
		t.Fatal("R + T > 1 must be rejected")
	}
}

func TestPolarizingBeamSplitter(t *testing.T) {
	bs, err := NewPolarizingBeamSplitter("pbs", Pose{Angle: math.Pi / 4}, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	r := polRay(t, Point2{-5, 0}, Vector2{1, 0}, Linear(math.Pi/4))
	_, kids, _ := interactOnce(t, bs, r)
	if len(kids) != 2 {
		t.Fatalf("want two children, got %d", len(kids))
	}
	if !nearly(kids[0].Intensity(), 0.5, 1e-12) || kids[0].Polarization().Angle() != 0 {
		t.Fatalf("p output %.12g %v", kids[0].Intensity(), kids[0].Polarization())
	}
	if !nearly(kids[1].Intensity(), 0.5, 1e-12) || !nearly(kids[1].Polarization().Angle(), math.Pi/2, 1e-12) {
		t.Fatalf("s output %.12g %v", kids[1].Intensity(), kids[1].Polarization())
	}
	if d := kids[1].Direction(); !nearly(d.X, 0, 1e-12) || !nearly(d.Y, -1, 1e-12) {
		t.Fatalf("s output direction %+v", d)
	}
}

func TestWavePlates(t *testing.T) {
	hwp, err := NewHalfWavePlate("hwp", Pose{}, 10, math.Pi/8)
	if err != nil {
		t.Fatal(err)
	}
	r := polRay(t, Point2{-5, 0}, Vector2{1, 0}, Linear(0))
	_, kids, _ := interactOnce(t, hwp, r)
	if len(kids) != 1 || !nearly(kids[0].Polarization().Angle(), math.Pi/4, 1e-9) || !nearly(kids[0].Intensity(), 1, 1e-12) {
		t.Fatalf("HWP should rotate 0° to 45°: %v", kids)
	}

	qwp, err := NewQuarterWavePlate("qwp", Pose{}, 10, math.Pi/4)
	if err != nil {
		t.Fatal(err)
	}
	r = polRay(t, Point2{-5, 0}, Vector2{1, 0}, Linear(0))
	_, kids, _ = interactOnce(t, qwp, r)
	if len(kids) != 1 || kids[0].Polarization().Kind() != PolCircular {
		t.Fatalf("QWP at 45° should make circular light: %v", kids)
	}
	if qwp.Kind() != "quarter_wave_plate" || hwp.Kind() != "half_wave_plate" {
		t.Fatalf("kinds %q %q", qwp.Kind(), hwp.Kind())
	}
}

func TestFaradayRotatorIsNonReciprocal(t *testing.T) {
	fr, err := NewFaradayRotator("fr", Pose{}, 10, math.Pi/4)
	if err != nil {
		t.Fatal(err)
	}
	fwd := polRay(t, Point2{-5, 0}, Vector2{1, 0}, Linear(0))
	_, kids, _ := interactOnce(t, fr, fwd)
	if len(kids) != 1 || !nearly(kids[0].Polarization().Angle(), math.Pi/4, 1e-9) {
		t.Fatalf("forward rotation: %v", kids)
	}
	bwd := polRay(t, Point2{5, 0}, Vector2{-1, 0}, Linear(0))
	_, kids, _ = interactOnce(t, fr, bwd)
	if len(kids) != 1 || !nearly(kids[0].Polarization().Angle(), -math.Pi/4, 1e-9) {
		t.Fatalf("backward rotation: %v", kids)
	}

	v, err := NewFaradayRotatorVerdet("v", Pose{}, 10, 100, 0.5, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if !nearly(v.Rotation, 0.5, 1e-12) {
		t.Fatalf("V·B·L rotation %.12g", v.Rotation)
	}
}

func TestFaradayIsolator(t *testing.T) {
	iso, err := NewFaradayIsolator("iso", Pose{}, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	fwd := polRay(t, Point2{-5, 0}, Vector2{1, 0}, Linear(0))
	_, kids, _ := interactOnce(t, iso, fwd)
	if len(kids) != 1 || !nearly(kids[0].Intensity(), 1, 1e-9) {
		t.Fatalf("isolator should pass forward light: %v", kids)
	}
	if !nearly(kids[0].Polarization().Angle(), math.Pi/4, 1e-9) {
		t.Fatalf("forward output polarization %.9g", kids[0].Polarization().Angle())
	}

	for _, pol := range []Polarization{Unpolarized(), Linear(0), Linear(math.Pi / 4), Linear(-math.Pi / 4), Circular(RightHanded)} {
		bwd := polRay(t, Point2{5, 0}, Vector2{-1, 0}, pol)
		_, kids, _ := interactOnce(t, iso, bwd)
		if len(kids) != 0 || bwd.Reason() != Absorbed("faraday_isolator") {
			t.Fatalf("%v backward light must be blocked: kids=%d reason=%q", pol, len(kids), bwd.Reason())
		}
	}
}
