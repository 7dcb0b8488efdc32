package optics

const (
	MaxIterations        = 10_000 // hard cap on queue pops per trace pass
	MaxBounces           = 256
	MinIntensity         = 1e-4
	DefaultSceneDiagonal = 1000.0 // used when the scene has no extent
	HitEpsilon           = 1e-6   // minimum accepted hit distance
	NormEpsilon          = 1e-9   // below this a vector cannot be normalized
	HistoryEpsilon       = 1e-9   // minimum spacing between recorded path points
	BumpShift            = 1e-6   // child origin offset along its direction
	UnitTolerance        = 1e-6
	// hot-loop constants
	parallelEps          = 1e-12
	fiberMaxBouncePoints = 512
	speedOfLight         = 299_792_458.0 // m/s
	boltzmann            = 1.380649e-23  // J/K
	atomicMassUnit       = 1.66053906660e-27
)
