package optics

import (
	"log/slog"

	"github.com/google/uuid"
)

// Detection is a ray recorded by a screen or photodiode.
type Detection struct {
	ElementID    string
	Kind         string
	RayID        int
	SourceID     string
	Point        Point2
	Intensity    Real
	Signal       Real // intensity weighted by detector responsivity
	WavelengthNM Real
	Phase        Real
	Polarization Polarization
}

// Pass holds the state of one trace pass. Elements write detector readouts
// here, never into themselves, so an element list can be traced by several
// passes at once.
type Pass struct {
	ID         string
	Config     TraceConfig
	Logger     *slog.Logger
	Detections []Detection
	Stats      Stats
}

// NewPass prepares a pass with cfg's defaults applied.
func NewPass(cfg TraceConfig) *Pass {
	cfg = cfg.withDefaults()
	id := uuid.NewString()
	return &Pass{
		ID:     id,
		Config: cfg,
		Logger: cfg.Logger.With("pass", id),
		Stats:  newStats(),
	}
}

// spawn builds a child of r and logs, instead of propagating, a
// construction failure.
func (p *Pass) spawn(e Element, r *Ray, at Point2, dir Vector2, intensity Real) *Ray {
	c, err := r.Spawn(at, dir, intensity)
	if err != nil {
		p.Logger.Warn("child ray dropped", "element", e.ID(), "kind", e.Kind(), "ray", r.ID, "error", err)
		return nil
	}
	return c
}

// faint reports whether intensity is below the decay threshold for r.
func (p *Pass) faint(r *Ray, intensity Real) bool {
	return !r.IgnoreDecay && intensity < p.Config.MinIntensity
}

// absorb terminates r as absorbed by e.
func (p *Pass) absorb(e Element, r *Ray) []*Ray {
	r.AbsorbedBy = e.ID()
	r.Terminate(Absorbed(e.Kind()))
	return nil
}

// finish terminates r as consumed and returns its children.
func (p *Pass) finish(r *Ray, children []*Ray) []*Ray {
	r.Terminate(ReasonInteracted)
	return children
}

func (p *Pass) record(e Element, r *Ray, at Point2, responsivity Real) {
	p.Detections = append(p.Detections, Detection{
		ElementID:    e.ID(),
		Kind:         e.Kind(),
		RayID:        r.ID,
		SourceID:     r.SourceID,
		Point:        at,
		Intensity:    r.Intensity(),
		Signal:       r.Intensity() * responsivity,
		WavelengthNM: r.WavelengthNM,
		Phase:        r.Phase(),
		Polarization: r.Polarization(),
	})
}

// Readout sums the detector signal recorded for elementID.
func (p *Pass) Readout(elementID string) Real { return readout(p.Detections, elementID) }

func readout(ds []Detection, elementID string) Real {
	sum := 0.0
	for _, d := range ds {
		if d.ElementID == elementID {
			sum += d.Signal
		}
	}
	return sum
}
