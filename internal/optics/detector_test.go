package optics

import "testing"

func TestAperture(t *testing.T) {
	a, err := NewAperture("ap", Pose{Position: Point2{10, 0}}, 20, 2)
	if err != nil {
		t.Fatal(err)
	}
	res := traceRays([]Element{a},
		testRay(t, Point2{0, 1}, Vector2{1, 0}, 550, 1),
		testRay(t, Point2{0, 4}, Vector2{1, 0}, 550, 1),
	)
	if n := len(withReason(res, ReasonNoIntersection)); n != 1 {
		t.Fatalf("one ray should pass the opening (%s)", res.Stats)
	}
	blocked := withReason(res, Absorbed("aperture"))
	if len(blocked) != 1 || blocked[0].AbsorbedBy != "ap" {
		t.Fatalf("one ray should be stopped by the plate (%s)", res.Stats)
	}
	if _, err := NewAperture("bad", Pose{}, 2, 5); err == nil {
		t.Fatal("opening larger than the plate must be rejected")
	}
}

func TestScreenAndPhotodiodeRecord(t *testing.T) {
	s, err := NewScreen("screen", Pose{Position: Point2{10, 0}}, 20)
	if err != nil {
		t.Fatal(err)
	}
	pd, err := NewPhotodiode("pd", Pose{Position: Point2{-10, 0}}, 20, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	res := traceRays([]Element{s, pd},
		testRay(t, Point2{0, 1}, Vector2{1, 0}, 550, 0.7),
		testRay(t, Point2{0, -1}, Vector2{-1, 0}, 550, 0.4),
	)
	if len(res.Detections) != 2 {
		t.Fatalf("want two detections, got %d", len(res.Detections))
	}
	if got := res.Readout("screen"); !nearly(got, 0.7, 1e-12) {
		t.Fatalf("screen readout %.12g", got)
	}
	if got := res.Readout("pd"); !nearly(got, 0.2, 1e-12) {
		t.Fatalf("photodiode signal %.12g", got)
	}
	d := res.Detections[0]
	if d.ElementID != "screen" || d.Point != (Point2{10, 1}) || d.WavelengthNM != 550 || d.SourceID != "test_source" {
		t.Fatalf("detection %+v", d)
	}
	if res.Stats.Count(Absorbed("screen")) != 1 || res.Stats.Count(Absorbed("photodiode")) != 1 {
		t.Fatalf("stats %s", res.Stats)
	}
}

func TestAnnotationNeverIntersects(t *testing.T) {
	a := NewAnnotation("note", Pose{Position: Point2{10, 0}}, "focus here")
	if hits := a.Intersect(Point2{}, Vector2{1, 0}); hits != nil {
		t.Fatalf("annotation returned hits: %v", hits)
	}
	res := traceRays([]Element{a}, testRay(t, Point2{}, Vector2{1, 0}, 550, 1))
	if n := len(withReason(res, ReasonNoIntersection)); n != 1 {
		t.Fatalf("ray should pass the annotation (%s)", res.Stats)
	}
}
