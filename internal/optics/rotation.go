package optics

// Pose places an element: Position is its centre, Angle (radians) its
// orientation. The element's local +x axis is the optical axis and local +y
// runs along its face.
type Pose struct {
	Position Point2
	Angle    Real
}

// frame caches the rotation of a pose in both directions.
type frame struct {
	origin Point2
	R      Mat2 // local->world rotation
	RT     Mat2 // world->local rotation (R^T)
}

func newFrame(p Pose) frame {
	R := Rot2(p.Angle)
	return frame{origin: p.Position, R: R, RT: R.T()}
}

func (f frame) toWorld(p Point2) Point2 {
	return f.origin.Add(f.R.MulVec(Vector2{p.X, p.Y}))
}

func (f frame) toLocal(p Point2) Point2 {
	v := f.RT.MulVec(p.Sub(f.origin))
	return Point2{v.X, v.Y}
}

func (f frame) dirToWorld(v Vector2) Vector2 { return f.R.MulVec(v) }
func (f frame) dirToLocal(v Vector2) Vector2 { return f.RT.MulVec(v) }

// axis is the local +x axis in world space.
func (f frame) axis() Vector2 { return f.R.MulVec(Vector2{1, 0}) }

// tangent is the local +y axis in world space.
func (f frame) tangent() Vector2 { return f.R.MulVec(Vector2{0, 1}) }
