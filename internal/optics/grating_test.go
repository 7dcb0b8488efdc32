package optics

import (
	"fmt"
	"math"
	"testing"
)

func ordersByLabel(kids []*Ray) map[string]*Ray {
	m := make(map[string]*Ray, len(kids))
	for _, k := range kids {
		m[k.OrderLabel] = k
	}
	return m
}

func TestGratingEquation(t *testing.T) {
	g, err := NewDiffractionGrating("g", Pose{}, 20, 600, -3, 3, false)
	if err != nil {
		t.Fatal(err)
	}
	d := g.PeriodNM()
	lambda := 600.0
	r := testRay(t, Point2{-10, 0}, Vector2{1, 0}, lambda, 1)
	_, kids, _ := interactOnce(t, g, r)
	// |mλ/d| = 1.08 for m = ±3
	if len(kids) != 5 {
		t.Fatalf("want orders -2..2, got %d", len(kids))
	}
	byLabel := ordersByLabel(kids)
	for m := -2; m <= 2; m++ {
		k, ok := byLabel[fmt.Sprintf("m=%+d", m)]
		if !ok {
			t.Fatalf("missing order %d", m)
		}
		// θm measured on the opposite side of the normal
		sinM := -k.Direction().Y
		if lhs := d * (0 + sinM); !nearly(lhs, Real(m)*lambda, 1e-6) {
			t.Fatalf("order %d: d(sinθi+sinθm)=%.9g want %.9g", m, lhs, Real(m)*lambda)
		}
		if k.Direction().X <= 0 {
			t.Fatalf("transmitted order %d goes backwards", m)
		}
		if !nearly(k.Intensity(), 0.2, 1e-12) {
			t.Fatalf("order %d carries %.12g, want an equal share", m, k.Intensity())
		}
	}
}

func TestGratingEfficiencyTable(t *testing.T) {
	g, err := NewDiffractionGrating("g", Pose{}, 20, 1200, -1, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.SetEfficiency(map[int]Real{0: 0.2, 1: 0.5}); err != nil {
		t.Fatal(err)
	}
	r := testRay(t, Point2{-10, 0}, Vector2{1, 0}, 500, 2)
	_, kids, _ := interactOnce(t, g, r)
	if len(kids) != 2 {
		t.Fatalf("orders without efficiency must be dropped, got %d", len(kids))
	}
	byLabel := ordersByLabel(kids)
	if k := byLabel["m=+0"]; k == nil || !nearly(k.Intensity(), 0.4, 1e-12) {
		t.Fatalf("zeroth order: %+v", k)
	}
	if k := byLabel["m=+1"]; k == nil || !nearly(k.Intensity(), 1.0, 1e-12) {
		t.Fatalf("first order: %+v", k)
	}
	if got := g.Orders(); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("Orders() = %v", got)
	}
}

func TestGratingEfficiencyConservesIntensity(t *testing.T) {
	g, err := NewDiffractionGrating("g", Pose{}, 20, 300, -1, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, eff := range []map[int]Real{
		{-1: 1, 0: 1, 1: 1},
		{0: 0.6, 1: 0.6},
		{0: -0.1},
		{1: 1.5},
	} {
		if err := g.SetEfficiency(eff); err == nil {
			t.Fatalf("SetEfficiency(%v) should fail", eff)
		}
	}
	if len(g.Efficiency) != 0 {
		t.Fatalf("rejected table was installed: %v", g.Efficiency)
	}

	// a table assigned directly is scaled down rather than creating light
	g.Efficiency = map[int]Real{-1: 1, 0: 1, 1: 1}
	r := testRay(t, Point2{-10, 0}, Vector2{1, 0}, 633, 1)
	_, kids, _ := interactOnce(t, g, r)
	if len(kids) != 3 {
		t.Fatalf("want three orders, got %d", len(kids))
	}
	var sum Real
	for _, k := range kids {
		sum += k.Intensity()
	}
	if sum > 1+1e-12 {
		t.Fatalf("orders carry %.12g of a unit ray", sum)
	}
	if !nearly(kids[0].Intensity(), 1.0/3, 1e-12) {
		t.Fatalf("order share %.12g, want 1/3", kids[0].Intensity())
	}
}

func TestReflectionGratingZerothOrderIsSpecular(t *testing.T) {
	g, err := NewDiffractionGrating("g", Pose{}, 20, 300, 0, 1, true)
	if err != nil {
		t.Fatal(err)
	}
	in := FromAngle(degToRad(20))
	r := testRay(t, Point2{}.Add(in.Mul(-10)), in, 500, 1)
	_, kids, _ := interactOnce(t, g, r)
	zero := ordersByLabel(kids)["m=+0"]
	if zero == nil {
		t.Fatal("missing zeroth order")
	}
	if want := (Vector2{-in.X, in.Y}); zero.Direction().Sub(want).Len() > 1e-12 {
		t.Fatalf("zeroth order %+v, want specular %+v", zero.Direction(), want)
	}
	if g.Kind() != "reflection_grating" {
		t.Fatalf("kind %q", g.Kind())
	}
}

func TestGratingNoPropagatingOrders(t *testing.T) {
	// d = 250 nm < λ: only m=0 could propagate and it is excluded
	g, err := NewDiffractionGrating("g", Pose{}, 20, 4000, 1, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	r := testRay(t, Point2{-10, 0}, Vector2{1, 0}, 600, 1)
	if _, kids, _ := interactOnce(t, g, r); len(kids) != 0 || r.Reason() != Absorbed("transmission_grating") {
		t.Fatalf("evanescent orders: kids=%d reason=%q", len(kids), r.Reason())
	}
}

func TestAOMShiftAndSplit(t *testing.T) {
	a, err := NewAcoustoOpticModulator("aom", Pose{}, 5, 80e6, 4200, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	if lam := a.AcousticWavelengthNM(); !nearly(lam, 52500, 1e-6) {
		t.Fatalf("acoustic wavelength %.9g nm", lam)
	}
	up, down := a.ShiftedWavelength(780, 1), a.ShiftedWavelength(780, -1)
	if !(up < 780 && down > 780) {
		t.Fatalf("Doppler shift sign: +1 -> %.9f, -1 -> %.9f", up, down)
	}
	if nu := speedOfLight / (up * 1e-9); !nearly(nu-speedOfLight/780e-9, 80e6, 1) {
		t.Fatalf("shift is %.6g Hz", nu-speedOfLight/780e-9)
	}

	r := testRay(t, Point2{-5, 0}, Vector2{1, 0}, 780, 1)
	_, kids, _ := interactOnce(t, a, r)
	if len(kids) != 2 {
		t.Fatalf("want orders 0 and +1, got %d", len(kids))
	}
	byLabel := ordersByLabel(kids)
	zero, first := byLabel["m=+0"], byLabel["m=+1"]
	if zero == nil || first == nil {
		t.Fatalf("orders: %v", byLabel)
	}
	if !nearly(zero.Intensity(), 0.2, 1e-12) || zero.WavelengthNM != 780 || zero.Direction() != (Vector2{1, 0}) {
		t.Fatalf("zeroth order %.6g %.6g %+v", zero.Intensity(), zero.WavelengthNM, zero.Direction())
	}
	if !nearly(first.Intensity(), 0.8, 1e-12) || first.WavelengthNM != up {
		t.Fatalf("first order %.6g %.9f", first.Intensity(), first.WavelengthNM)
	}
	if s := math.Abs(first.Direction().Y); !nearly(s, 780.0/52500, 1e-12) {
		t.Fatalf("Bragg deflection sin=%.12g", s)
	}

	a.BothOrders = true
	r = testRay(t, Point2{-5, 0}, Vector2{1, 0}, 780, 1)
	_, kids, _ = interactOnce(t, a, r)
	if len(kids) != 3 {
		t.Fatalf("want orders -1, 0, +1, got %d", len(kids))
	}
	if k := ordersByLabel(kids)["m=-1"]; k == nil || !nearly(k.Intensity(), 0.4, 1e-12) || k.WavelengthNM != down {
		t.Fatalf("order -1: %+v", k)
	}
}
