package optics

// Element is the capability every optical element implements.
//
// Intersect returns every forward crossing of the infinite ray o + t·d with
// the element's surfaces (t > HitEpsilon), in any order.
//
// Interact consumes r at hit h: it returns 0..N children and always
// terminates r before returning. It must not touch r's history except
// through the ray's own methods.
type Element interface {
	ID() string
	Kind() string
	Bounds() Rect
	Intersect(o Point2, d Vector2) []Hit
	Interact(r *Ray, h Hit, p *Pass) []*Ray
}

// Source is an element that emits the initial rays of a pass.
type Source interface {
	Element
	GenerateRays(p *Pass) []*Ray
}

// Sources returns the sources among elements, in order.
func Sources(elements []Element) []Source {
	var out []Source
	for _, e := range elements {
		if s, ok := e.(Source); ok {
			out = append(out, s)
		}
	}
	return out
}

// base carries identity and placement. Concrete elements set rebuild so that
// SetPose refreshes their geometry cache immediately.
type base struct {
	id      string
	kind    string
	pose    Pose
	f       frame
	rebuild func()
}

func newBase(id, kind string, pose Pose) base {
	return base{id: id, kind: kind, pose: pose, f: newFrame(pose)}
}

func (b *base) ID() string   { return b.id }
func (b *base) Kind() string { return b.kind }
func (b *base) Pose() Pose   { return b.pose }

// SetPose moves the element and recomputes its geometry cache.
func (b *base) SetPose(p Pose) {
	b.pose = p
	b.f = newFrame(p)
	if b.rebuild != nil {
		b.rebuild()
	}
}

// segment is a flat face of half-length h centred on the pose, lying along
// the local y axis.
type segment struct {
	A, B   Point2
	Normal Vector2 // local +x in world space
}

func newSegment(f frame, halfLen Real) segment {
	return segment{
		A:      f.toWorld(Point2{0, -halfLen}),
		B:      f.toWorld(Point2{0, halfLen}),
		Normal: f.axis(),
	}
}

func (s segment) hit(o Point2, d Vector2, surface int) []Hit {
	t, _, ok := intersectSegment(o, d, s.A, s.B)
	if !ok {
		return nil
	}
	return []Hit{newHit(o, d, t, s.Normal, surface)}
}

func (s segment) bounds() Rect { return rectOf(s.A, s.B) }
