package optics

import "fmt"

// Aperture is an opaque stop of the given length with a centred opening of
// Radius. Rays through the opening continue unchanged.
type Aperture struct {
	thinElement
	Radius Real
}

func NewAperture(id string, pose Pose, length, radius Real) (*Aperture, error) {
	if !(radius >= 0 && radius <= length/2) {
		return nil, fmt.Errorf("aperture radius must be in [0, %.6g], got %.6g", length/2, radius)
	}
	t, err := newThinElement(id, "aperture", pose, length)
	if err != nil {
		return nil, err
	}
	return &Aperture{thinElement: t, Radius: radius}, nil
}

func (a *Aperture) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	if local := a.f.toLocal(h.Point); local.Y < -a.Radius || local.Y > a.Radius {
		return p.absorb(a, r)
	}
	child := p.spawn(a, r, h.Point, r.Direction(), r.Intensity())
	return p.finish(r, children(child))
}

// Screen absorbs and records every ray that reaches it.
type Screen struct {
	thinElement
}

func NewScreen(id string, pose Pose, length Real) (*Screen, error) {
	t, err := newThinElement(id, "screen", pose, length)
	if err != nil {
		return nil, err
	}
	return &Screen{thinElement: t}, nil
}

func (s *Screen) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	p.record(s, r, h.Point, 1)
	return p.absorb(s, r)
}

// Photodiode absorbs rays and records a signal of intensity·Responsivity.
type Photodiode struct {
	thinElement
	Responsivity Real
}

func NewPhotodiode(id string, pose Pose, size, responsivity Real) (*Photodiode, error) {
	if !(responsivity >= 0) {
		return nil, fmt.Errorf("responsivity must be >= 0, got %.6g", responsivity)
	}
	t, err := newThinElement(id, "photodiode", pose, size)
	if err != nil {
		return nil, err
	}
	return &Photodiode{thinElement: t, Responsivity: responsivity}, nil
}

func (d *Photodiode) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	p.record(d, r, h.Point, d.Responsivity)
	return p.absorb(d, r)
}

// Annotation is a text label. It takes part in layout only and never
// intersects a ray.
type Annotation struct {
	base
	Text string
}

func NewAnnotation(id string, pose Pose, text string) *Annotation {
	return &Annotation{base: newBase(id, "annotation", pose), Text: text}
}

func (a *Annotation) Bounds() Rect { return rectOf(a.pose.Position, a.pose.Position) }

func (a *Annotation) Intersect(Point2, Vector2) []Hit { return nil }

func (a *Annotation) Interact(r *Ray, _ Hit, p *Pass) []*Ray { return p.absorb(a, r) }
