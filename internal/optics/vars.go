package optics

var (
	// Compile time checks to ensure that every element model implements the capability
	_ Source  = (*PointSource)(nil)
	_ Source  = (*FanSource)(nil)
	_ Source  = (*LineSource)(nil)
	_ Element = (*PlaneMirror)(nil)
	_ Element = (*SphericalMirror)(nil)
	_ Element = (*ParabolicMirror)(nil)
	_ Element = (*ThinLens)(nil)
	_ Element = (*ThickLens)(nil)
	_ Element = (*GRINLens)(nil)
	_ Element = (*Solid)(nil)
	_ Element = (*Fiber)(nil)
	_ Element = (*DiffractionGrating)(nil)
	_ Element = (*AcoustoOpticModulator)(nil)
	_ Element = (*Polarizer)(nil)
	_ Element = (*BeamSplitter)(nil)
	_ Element = (*WavePlate)(nil)
	_ Element = (*FaradayRotator)(nil)
	_ Element = (*FaradayIsolator)(nil)
	_ Element = (*AtomicVaporCell)(nil)
	_ Element = (*Aperture)(nil)
	_ Element = (*Screen)(nil)
	_ Element = (*Photodiode)(nil)
	_ Element = (*Annotation)(nil)
)
