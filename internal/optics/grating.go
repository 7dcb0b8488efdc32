package optics

import (
	"fmt"
	"math"
)

// DiffractionGrating splits a ray into the propagating orders of
// d(sinθi + sinθm) = mλ, with θm measured on the opposite side of the
// normal from θi. Efficiency gives the fraction per order and must not sum
// above 1 (see SetEfficiency); when empty the intensity is shared equally
// among propagating orders.
type DiffractionGrating struct {
	thinElement
	LinesPerMM Real
	MinOrder   int
	MaxOrder   int
	Efficiency map[int]Real
	Reflective bool
}

func NewDiffractionGrating(id string, pose Pose, aperture, linesPerMM Real, minOrder, maxOrder int, reflective bool) (*DiffractionGrating, error) {
	if !(linesPerMM > 0) || !isFinite(linesPerMM) {
		return nil, fmt.Errorf("grating line density must be > 0, got %.6g", linesPerMM)
	}
	if minOrder > maxOrder {
		return nil, fmt.Errorf("grating order range [%d, %d] is empty", minOrder, maxOrder)
	}
	kind := "transmission_grating"
	if reflective {
		kind = "reflection_grating"
	}
	t, err := newThinElement(id, kind, pose, aperture)
	if err != nil {
		return nil, err
	}
	return &DiffractionGrating{thinElement: t, LinesPerMM: linesPerMM, MinOrder: minOrder, MaxOrder: maxOrder, Reflective: reflective}, nil
}

// SetEfficiency installs a per-order efficiency table. Every entry must be
// in [0,1] and the entries must not sum above 1.
func (g *DiffractionGrating) SetEfficiency(eff map[int]Real) error {
	var sum Real
	for m, e := range eff {
		if !(e >= 0 && e <= 1) {
			return fmt.Errorf("grating efficiency for order %+d must be in [0,1], got %.6g", m, e)
		}
		sum += e
	}
	if sum > 1+1e-9 {
		return fmt.Errorf("grating efficiencies sum to %.6g, more than the incident light", sum)
	}
	g.Efficiency = eff
	return nil
}

// fractions returns the share of the incident intensity per order. A table
// set directly on Efficiency that sums above 1 is scaled down to 1.
func (g *DiffractionGrating) fractions(orders []order) []Real {
	fr := make([]Real, len(orders))
	var sum Real
	for i, o := range orders {
		fr[i] = 1 / Real(len(orders))
		if len(g.Efficiency) > 0 {
			fr[i] = math.Max(g.Efficiency[o.m], 0)
		}
		sum += fr[i]
	}
	if sum > 1 {
		for i := range fr {
			fr[i] /= sum
		}
	}
	return fr
}

// PeriodNM is the groove spacing in nanometres.
func (g *DiffractionGrating) PeriodNM() Real { return 1e6 / g.LinesPerMM }

type order struct {
	m   int
	dir Vector2
}

// diffract returns the propagating orders for a ray along d crossing a face
// with tangent t and normal n (n against d), for a grating of period
// periodNM. Orders are in ascending m.
func diffract(d, t, n Vector2, wavelengthNM, periodNM Real, minOrder, maxOrder int, reflective bool) []order {
	out := n.Neg()
	if reflective {
		out = n
	}
	si := d.Dot(t)
	var orders []order
	for m := minOrder; m <= maxOrder; m++ {
		sm := si - Real(m)*wavelengthNM/periodNM
		if math.Abs(sm) > 1 {
			continue
		}
		dir := t.Mul(sm).Add(out.Mul(math.Sqrt(1 - sm*sm)))
		orders = append(orders, order{m: m, dir: dir})
	}
	return orders
}

func orderLabel(m int) string { return fmt.Sprintf("m=%+d", m) }

func (g *DiffractionGrating) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	orders := diffract(r.Direction(), g.f.tangent(), h.Normal, r.WavelengthNM, g.PeriodNM(), g.MinOrder, g.MaxOrder, g.Reflective)
	if len(orders) == 0 {
		return p.absorb(g, r)
	}
	in := r.Intensity()
	fr := g.fractions(orders)
	var out []*Ray
	for i, o := range orders {
		I := in * fr[i]
		if I <= 0 || p.faint(r, I) {
			continue
		}
		if c := p.spawn(g, r, h.Point, o.dir, I); c != nil {
			c.OrderLabel = orderLabel(o.m)
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		r.Terminate(ReasonLowIntensity)
		return nil
	}
	return p.finish(r, out)
}

// Orders lists the configured orders that carry efficiency, ascending.
func (g *DiffractionGrating) Orders() []int {
	var ms []int
	for m := g.MinOrder; m <= g.MaxOrder; m++ {
		if len(g.Efficiency) == 0 || g.Efficiency[m] > 0 {
			ms = append(ms, m)
		}
	}
	return ms
}

// AcoustoOpticModulator diffracts Efficiency of the light into the first
// order off a sound wave of DriveFrequency (Hz) travelling at
// AcousticVelocity (m/s). The diffracted light is Doppler shifted by the
// drive frequency; the zeroth order keeps the rest unshifted.
type AcoustoOpticModulator struct {
	thinElement
	DriveFrequency   Real
	AcousticVelocity Real
	Efficiency       Real
	BothOrders       bool // split the diffracted power between m=+1 and m=-1
}

func NewAcoustoOpticModulator(id string, pose Pose, aperture, driveHz, velocity, efficiency Real) (*AcoustoOpticModulator, error) {
	if !(driveHz > 0 && velocity > 0) {
		return nil, fmt.Errorf("AOM drive frequency and acoustic velocity must be > 0, got %.6g, %.6g", driveHz, velocity)
	}
	if !(efficiency >= 0 && efficiency <= 1) {
		return nil, fmt.Errorf("AOM efficiency must be in [0,1], got %.6g", efficiency)
	}
	t, err := newThinElement(id, "aom", pose, aperture)
	if err != nil {
		return nil, err
	}
	return &AcoustoOpticModulator{thinElement: t, DriveFrequency: driveHz, AcousticVelocity: velocity, Efficiency: efficiency}, nil
}

// AcousticWavelengthNM is Λ = v/f in nanometres.
func (a *AcoustoOpticModulator) AcousticWavelengthNM() Real {
	return a.AcousticVelocity / a.DriveFrequency * 1e9
}

// ShiftedWavelength is λ' = c / (c/λ + m·f) for order m.
func (a *AcoustoOpticModulator) ShiftedWavelength(wavelengthNM Real, m int) Real {
	nu := speedOfLight / (wavelengthNM * 1e-9)
	return speedOfLight / (nu + Real(m)*a.DriveFrequency) * 1e9
}

func (a *AcoustoOpticModulator) Interact(r *Ray, h Hit, p *Pass) []*Ray {
	lo, hi := 0, 1
	if a.BothOrders {
		lo = -1
	}
	orders := diffract(r.Direction(), a.f.tangent(), h.Normal, r.WavelengthNM, a.AcousticWavelengthNM(), lo, hi, false)
	in := r.Intensity()
	first := a.Efficiency
	if a.BothOrders {
		first /= 2
	}
	var out []*Ray
	for _, o := range orders {
		I := in * first
		if o.m == 0 {
			I = in * (1 - a.Efficiency)
		}
		if I <= 0 || p.faint(r, I) {
			continue
		}
		c := p.spawn(a, r, h.Point, o.dir, I)
		if c == nil {
			continue
		}
		c.OrderLabel = orderLabel(o.m)
		if o.m != 0 {
			c.WavelengthNM = a.ShiftedWavelength(r.WavelengthNM, o.m)
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		r.Terminate(ReasonLowIntensity)
		return nil
	}
	return p.finish(r, out)
}
