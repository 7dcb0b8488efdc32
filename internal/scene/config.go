package scene

import (
	"math"

	"github.com/tryandaction/Interactive-Optics-Lab-sub001/internal/optics"
)

type Real = optics.Real

// Config is a scene file. Elements are traced in file order, which also
// decides distance ties.
type Config struct {
	Name          string       `json:"name,omitempty" toml:"name"`
	MaxIterations int          `json:"maxIterations,omitempty" toml:"maxIterations"`
	MaxBounces    int          `json:"maxBounces,omitempty" toml:"maxBounces"`
	MinIntensity  Real         `json:"minIntensity,omitempty" toml:"minIntensity"`
	Bounds        *BoundsCfg   `json:"bounds,omitempty" toml:"bounds"`
	Elements      []ElementCfg `json:"elements" toml:"elements"`
}

type BoundsCfg struct {
	Min optics.Point2 `json:"min" toml:"min"`
	Max optics.Point2 `json:"max" toml:"max"`
}

// ElementCfg describes one element. Type is the element kind; only the
// fields that kind uses are read. Angles are in degrees. Zero values select
// the defaults listed next to each field, except for pointer fields where an
// explicit 0 is kept and only an absent value selects the default.
type ElementCfg struct {
	Type     string        `json:"type" toml:"type"`
	ID       string        `json:"id,omitempty" toml:"id"`
	Position optics.Point2 `json:"position" toml:"position"`
	AngleDeg Real          `json:"angleDeg,omitempty" toml:"angleDeg"`

	// Geometry
	Length    Real `json:"length,omitempty" toml:"length"`
	Height    Real `json:"height,omitempty" toml:"height"`
	Aperture  Real `json:"aperture,omitempty" toml:"aperture"`
	Radius    Real `json:"radius,omitempty" toml:"radius"`
	Focal     Real `json:"focal,omitempty" toml:"focal"`
	R1        Real `json:"r1,omitempty" toml:"r1"`
	R2        Real `json:"r2,omitempty" toml:"r2"`
	K1        Real `json:"k1,omitempty" toml:"k1"`
	K2        Real `json:"k2,omitempty" toml:"k2"`
	Thickness Real `json:"thickness,omitempty" toml:"thickness"`
	ApexDeg   Real `json:"apexDeg,omitempty" toml:"apexDeg"` // default 60

	// Surfaces and media
	Reflectivity  *Real  `json:"reflectivity,omitempty" toml:"reflectivity"` // default 1
	Reflectance   Real   `json:"reflectance,omitempty" toml:"reflectance"`   // R = T = 0 means 50:50
	Transmittance Real   `json:"transmittance,omitempty" toml:"transmittance"`
	Glass         string `json:"glass,omitempty" toml:"glass"` // default bk7
	Index         Real   `json:"index,omitempty" toml:"index"` // constant index, overrides Glass
	N0            Real   `json:"n0,omitempty" toml:"n0"`
	Gradient      Real   `json:"gradient,omitempty" toml:"gradient"`
	CoreDiameter  Real   `json:"coreDiameter,omitempty" toml:"coreDiameter"`
	CoreIndex     Real   `json:"coreIndex,omitempty" toml:"coreIndex"`         // default 1.4682
	CladdingIndex Real   `json:"claddingIndex,omitempty" toml:"claddingIndex"` // default 1.4629
	LossDBPerUnit Real   `json:"lossDbPerUnit,omitempty" toml:"lossDbPerUnit"`

	// Polarization optics
	AxisDeg         Real   `json:"axisDeg,omitempty" toml:"axisDeg"`
	Polarizer       string `json:"polarizer,omitempty" toml:"polarizer"` // absorptive, glan, wire_grid
	ExtinctionRatio Real   `json:"extinctionRatio,omitempty" toml:"extinctionRatio"`
	RetardanceDeg   Real   `json:"retardanceDeg,omitempty" toml:"retardanceDeg"`
	RotationDeg     Real   `json:"rotationDeg,omitempty" toml:"rotationDeg"`
	Verdet          Real   `json:"verdet,omitempty" toml:"verdet"` // rad/(T·m), path length is Thickness in m
	Field           Real   `json:"field,omitempty" toml:"field"`   // T

	// Diffraction
	LinesPerMM Real            `json:"linesPerMm,omitempty" toml:"linesPerMm"`
	MinOrder   int             `json:"minOrder,omitempty" toml:"minOrder"`
	MaxOrder   int             `json:"maxOrder,omitempty" toml:"maxOrder"`
	Efficiency map[string]Real `json:"efficiency,omitempty" toml:"efficiency"` // per order, keyed "-1", "0", "1"
	DriveHz    Real            `json:"driveHz,omitempty" toml:"driveHz"`
	Velocity   Real            `json:"velocity,omitempty" toml:"velocity"` // m/s, default 4200 (TeO2)
	AOMEff     Real            `json:"aomEfficiency,omitempty" toml:"aomEfficiency"`
	BothOrders bool            `json:"bothOrders,omitempty" toml:"bothOrders"`

	// Atomic vapour
	Species      string `json:"species,omitempty" toml:"species"`
	TemperatureK *Real  `json:"temperatureK,omitempty" toml:"temperatureK"` // default 293.15
	Density      Real   `json:"density,omitempty" toml:"density"`

	// Detectors and annotations
	Responsivity Real   `json:"responsivity,omitempty" toml:"responsivity"` // default 1
	Text         string `json:"text,omitempty" toml:"text"`

	// Sources
	NumRays         int    `json:"numRays,omitempty" toml:"numRays"`           // default 1
	Intensity       *Real  `json:"intensity,omitempty" toml:"intensity"`       // total, default 1
	WavelengthNM    Real   `json:"wavelengthNm,omitempty" toml:"wavelengthNm"` // default 632.8
	SpreadDeg       Real   `json:"spreadDeg,omitempty" toml:"spreadDeg"`
	Polarization    string `json:"polarization,omitempty" toml:"polarization"` // unpolarized, linear, circular_right, circular_left
	PolarizationDeg Real   `json:"polarizationDeg,omitempty" toml:"polarizationDeg"`
	IgnoreDecay     bool   `json:"ignoreDecay,omitempty" toml:"ignoreDecay"`
	Disabled        bool   `json:"disabled,omitempty" toml:"disabled"`
	BeamDiameter    Real   `json:"beamDiameter,omitempty" toml:"beamDiameter"`
	Waist           Real   `json:"waist,omitempty" toml:"waist"` // laser, default 0.5
}

const degToRad = math.Pi / 180

func (c ElementCfg) pose() optics.Pose {
	return optics.Pose{Position: c.Position, Angle: c.AngleDeg * degToRad}
}

// TraceConfig returns the limits set by the scene file; zero values keep
// the values in base.
func (c *Config) TraceConfig(base optics.TraceConfig) optics.TraceConfig {
	if c.MaxIterations > 0 {
		base.MaxIterations = c.MaxIterations
	}
	if c.MaxBounces > 0 {
		base.MaxBounces = c.MaxBounces
	}
	if c.MinIntensity > 0 {
		base.MinIntensity = c.MinIntensity
	}
	if c.Bounds != nil {
		base.Bounds = &optics.Rect{Min: c.Bounds.Min, Max: c.Bounds.Max}
	}
	return base
}
