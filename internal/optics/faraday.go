package optics

import "math"

// FaradayRotator rotates the polarization by Rotation radians for rays
// travelling along its local +x axis (the magnetic field) and by -Rotation
// for rays travelling against it. The sign follows the field, not the
// element's orientation alone, which makes the rotation non-reciprocal.
type FaradayRotator struct {
	thinElement
	Rotation Real
}

func NewFaradayRotator(id string, pose Pose, aperture, rotation Real) (*FaradayRotator, error) {
	t, err := newThinElement(id, "faraday_rotator", pose, aperture)
	if err != nil {
		return nil, err
	}
	return &FaradayRotator{thinElement: t, Rotation: rotation}, nil
}

// NewFaradayRotatorVerdet derives the rotation from ρ = V·B·L
// (rad/(T·m), tesla, metres).
func NewFaradayRotatorVerdet(id string, pose Pose, aperture, verdet, field, length Real) (*FaradayRotator, error) {
	return NewFaradayRotator(id, pose, aperture, verdet*field*length)
}

func (fr *FaradayRotator) rotationFor(d Vector2) Real {
	if d.Dot(fr.f.axis()) < 0 {
		return -fr.Rotation
	}
	return fr.Rotation
}

func (fr *FaradayRotator) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	pol, f := r.Polarization().ApplyJones(JonesRotation(fr.rotationFor(r.Direction())))
	return transmitJones(fr, r, h, p, pol, f)
}

// FaradayIsolator is an input polarizer at InputAxis, a 45° Faraday rotator
// and an output polarizer at InputAxis+45°. Light along +x passes; light
// coming back arrives crossed with the input polarizer.
type FaradayIsolator struct {
	thinElement
	InputAxis       Real
	ExtinctionRatio Real // 0 = ideal
}

func NewFaradayIsolator(id string, pose Pose, aperture, inputAxis Real) (*FaradayIsolator, error) {
	t, err := newThinElement(id, "faraday_isolator", pose, aperture)
	if err != nil {
		return nil, err
	}
	return &FaradayIsolator{thinElement: t, InputAxis: inputAxis}, nil
}

func (fi *FaradayIsolator) polarizer(pol Polarization, axis Real) (Polarization, Real) {
	out, f := pol.Project(axis)
	if fi.ExtinctionRatio > 0 {
		_, leak := pol.Project(axis + math.Pi/2)
		f += leak / fi.ExtinctionRatio
	}
	return out, f
}

func (fi *FaradayIsolator) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	d := r.Direction()
	forward := d.Dot(fi.f.axis()) >= 0
	in := fi.apparentAxis(fi.InputAxis, d)
	out := fi.apparentAxis(fi.InputAxis+math.Pi/4, d)
	rho := math.Pi / 4
	if !forward {
		in, out = out, in
		rho = -rho
	}
	pol, f1 := fi.polarizer(r.Polarization(), in)
	pol, f2 := pol.ApplyJones(JonesRotation(rho))
	pol, f3 := fi.polarizer(pol, out)
	return transmitJones(fi, r, h, p, pol, f1*f2*f3)
}
