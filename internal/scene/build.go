package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tryandaction/Interactive-Optics-Lab-sub001/internal/optics"
	"github.com/tryandaction/Interactive-Optics-Lab-sub001/internal/typeid"
)

// Defaults applied by Build when a field is left at zero.
const (
	DefaultWavelengthNM  = 632.8
	DefaultIntensity     = 1.0
	DefaultApexDeg       = 60.0
	DefaultCoreIndex     = 1.4682
	DefaultCladdingIndex = 1.4629
	DefaultVelocity      = 4200.0
	DefaultTemperatureK  = 293.15
	DefaultWaist         = 0.5
)

// Build constructs the elements in file order. Elements without an id get a
// fresh typeid prefixed with their kind.
func (c *Config) Build() ([]optics.Element, error) {
	out := make([]optics.Element, 0, len(c.Elements))
	seen := make(map[string]int, len(c.Elements))
	for i, ec := range c.Elements {
		e, err := ec.Build()
		if err != nil {
			return nil, fmt.Errorf("element #%d (%s): %w", i, ec.Type, err)
		}
		if j, dup := seen[e.ID()]; dup {
			return nil, fmt.Errorf("element #%d: duplicate id %q (first used by #%d)", i, e.ID(), j)
		}
		seen[e.ID()] = i
		out = append(out, e)
	}
	return out, nil
}

// Build validates and constructs the runtime element.
func (c ElementCfg) Build() (optics.Element, error) {
	kind := strings.ToLower(strings.TrimSpace(c.Type))
	if kind == "" {
		return nil, fmt.Errorf("element type is required")
	}
	id := c.ID
	if id == "" {
		id = typeid.ForKind(kind)
	}
	pose := c.pose()
	switch kind {
	case "point_source", "fan_source", "line_source":
		em, err := c.emission()
		if err != nil {
			return nil, err
		}
		switch kind {
		case "point_source":
			return optics.NewPointSource(id, pose, em)
		case "fan_source":
			return optics.NewFanSource(id, pose, c.SpreadDeg*degToRad, em)
		default:
			return optics.NewLineSource(id, pose, c.Length, em)
		}
	case "laser":
		w := c.Waist
		if w == 0 {
			w = DefaultWaist
		}
		l, err := optics.NewLaser(id, pose, or(c.WavelengthNM, DefaultWavelengthNM), orSet(c.Intensity, DefaultIntensity), w)
		if err != nil {
			return nil, err
		}
		if c.Polarization != "" {
			pol, err := c.polarization()
			if err != nil {
				return nil, err
			}
			l.Polarization = pol
		}
		l.Disabled = c.Disabled
		l.IgnoreDecay = c.IgnoreDecay
		return l, nil
	case "plane_mirror":
		return optics.NewPlaneMirror(id, pose, c.Length, orSet(c.Reflectivity, 1))
	case "spherical_mirror":
		return optics.NewSphericalMirror(id, pose, c.Radius, c.Aperture, orSet(c.Reflectivity, 1))
	case "parabolic_mirror":
		return optics.NewParabolicMirror(id, pose, c.Focal, c.Aperture, orSet(c.Reflectivity, 1))
	case "thin_lens":
		return optics.NewThinLens(id, pose, c.Focal, c.Aperture)
	case "cylindrical_lens":
		glass, err := c.glass()
		if err != nil {
			return nil, err
		}
		return optics.NewCylindricalLens(id, pose, c.R1, c.R2, c.Thickness, c.Aperture, glass)
	case "aspheric_lens":
		glass, err := c.glass()
		if err != nil {
			return nil, err
		}
		return optics.NewAsphericLens(id, pose, c.R1, c.K1, c.R2, c.K2, c.Thickness, c.Aperture, glass)
	case "prism":
		glass, err := c.glass()
		if err != nil {
			return nil, err
		}
		return optics.NewPrism(id, pose, or(c.ApexDeg, DefaultApexDeg)*degToRad, c.Height, glass)
	case "dielectric_block":
		glass, err := c.glass()
		if err != nil {
			return nil, err
		}
		return optics.NewDielectricBlock(id, pose, c.Length, c.Height, glass)
	case "grin_lens":
		return optics.NewGRINLens(id, pose, c.Length, c.Height, c.N0, c.Gradient)
	case "fiber":
		f, err := optics.NewFiber(id, pose, c.Length, c.CoreDiameter, or(c.CoreIndex, DefaultCoreIndex), or(c.CladdingIndex, DefaultCladdingIndex))
		if err != nil {
			return nil, err
		}
		f.LossDBPerUnit = c.LossDBPerUnit
		return f, nil
	case "polarizer", "glan_polarizer", "wire_grid_polarizer":
		typ, err := polarizerType(kind, c.Polarizer)
		if err != nil {
			return nil, err
		}
		p, err := optics.NewPolarizer(id, pose, c.Aperture, c.AxisDeg*degToRad, typ)
		if err != nil {
			return nil, err
		}
		if c.ExtinctionRatio > 0 {
			p.ExtinctionRatio = c.ExtinctionRatio
		}
		return p, nil
	case "beam_splitter":
		r, t := c.Reflectance, c.Transmittance
		if r == 0 && t == 0 {
			r, t = 0.5, 0.5
		}
		return optics.NewBeamSplitter(id, pose, c.Aperture, r, t)
	case "polarizing_beam_splitter":
		return optics.NewPolarizingBeamSplitter(id, pose, c.Aperture, c.AxisDeg*degToRad)
	case "wave_plate":
		return optics.NewWavePlate(id, pose, c.Aperture, c.AxisDeg*degToRad, c.RetardanceDeg*degToRad)
	case "half_wave_plate":
		return optics.NewHalfWavePlate(id, pose, c.Aperture, c.AxisDeg*degToRad)
	case "quarter_wave_plate":
		return optics.NewQuarterWavePlate(id, pose, c.Aperture, c.AxisDeg*degToRad)
	case "faraday_rotator":
		if c.Verdet != 0 {
			return optics.NewFaradayRotatorVerdet(id, pose, c.Aperture, c.Verdet, c.Field, c.Thickness)
		}
		return optics.NewFaradayRotator(id, pose, c.Aperture, c.RotationDeg*degToRad)
	case "faraday_isolator":
		return optics.NewFaradayIsolator(id, pose, c.Aperture, c.AxisDeg*degToRad)
	case "transmission_grating", "reflection_grating":
		g, err := optics.NewDiffractionGrating(id, pose, c.Aperture, c.LinesPerMM, c.MinOrder, c.MaxOrder, kind == "reflection_grating")
		if err != nil {
			return nil, err
		}
		eff, err := efficiencies(c.Efficiency)
		if err != nil {
			return nil, err
		}
		if err := g.SetEfficiency(eff); err != nil {
			return nil, err
		}
		return g, nil
	case "aom":
		a, err := optics.NewAcoustoOpticModulator(id, pose, c.Aperture, c.DriveHz, or(c.Velocity, DefaultVelocity), c.AOMEff)
		if err != nil {
			return nil, err
		}
		a.BothOrders = c.BothOrders
		return a, nil
	case "atomic_cell":
		sp, ok := optics.SpeciesByName(c.Species)
		if !ok {
			return nil, fmt.Errorf("unknown species %q", c.Species)
		}
		cell, err := optics.NewAtomicVaporCell(id, pose, c.Length, c.Height, sp, orSet(c.TemperatureK, DefaultTemperatureK))
		if err != nil {
			return nil, err
		}
		cell.Density = c.Density
		return cell, nil
	case "aperture":
		return optics.NewAperture(id, pose, c.Length, c.Radius)
	case "screen":
		return optics.NewScreen(id, pose, c.Length)
	case "photodiode":
		return optics.NewPhotodiode(id, pose, c.Length, or(c.Responsivity, 1))
	case "annotation":
		return optics.NewAnnotation(id, pose, c.Text), nil
	}
	return nil, fmt.Errorf("unknown element type %q", c.Type)
}

func (c ElementCfg) emission() (optics.Emission, error) {
	pol, err := c.polarization()
	if err != nil {
		return optics.Emission{}, err
	}
	n := c.NumRays
	if n <= 0 {
		n = 1
	}
	return optics.Emission{
		NumRays:        n,
		TotalIntensity: orSet(c.Intensity, DefaultIntensity),
		WavelengthNM:   or(c.WavelengthNM, DefaultWavelengthNM),
		Polarization:   pol,
		Disabled:       c.Disabled,
		IgnoreDecay:    c.IgnoreDecay,
		BeamDiameter:   c.BeamDiameter,
	}, nil
}

func (c ElementCfg) polarization() (optics.Polarization, error) {
	switch strings.ToLower(c.Polarization) {
	case "", "unpolarized":
		return optics.Unpolarized(), nil
	case "linear":
		return optics.Linear(c.PolarizationDeg * degToRad), nil
	case "circular_right", "right":
		return optics.Circular(optics.RightHanded), nil
	case "circular_left", "left":
		return optics.Circular(optics.LeftHanded), nil
	}
	return optics.Polarization{}, fmt.Errorf("unknown polarization %q", c.Polarization)
}

func (c ElementCfg) glass() (optics.Dispersion, error) {
	if c.Index > 0 {
		return optics.ConstantIndex(c.Index), nil
	}
	if c.Glass == "" {
		return optics.GlassBK7, nil
	}
	g, ok := optics.GlassByName(c.Glass)
	if !ok {
		return nil, fmt.Errorf("unknown glass %q", c.Glass)
	}
	return g, nil
}

func polarizerType(kind, model string) (optics.PolarizerType, error) {
	switch kind {
	case "glan_polarizer":
		return optics.GlanPolarizer, nil
	case "wire_grid_polarizer":
		return optics.WireGridPolarizer, nil
	}
	switch strings.ToLower(model) {
	case "", "absorptive":
		return optics.AbsorptivePolarizer, nil
	case "glan":
		return optics.GlanPolarizer, nil
	case "wire_grid":
		return optics.WireGridPolarizer, nil
	}
	return 0, fmt.Errorf("unknown polarizer model %q", model)
}

func efficiencies(in map[string]Real) (map[int]Real, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[int]Real, len(in))
	for k, v := range in {
		m, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(k), "+"))
		if err != nil {
			return nil, fmt.Errorf("efficiency order %q: %w", k, err)
		}
		out[m] = v
	}
	return out, nil
}

// orSet is for fields where an explicit zero is meaningful.
func orSet(v *Real, def Real) Real {
	if v == nil {
		return def
	}
	return *v
}

func or(v, def Real) Real {
	if v == 0 {
		return def
	}
	return v
}
