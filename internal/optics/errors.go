package optics

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidWavelength = errors.New("wavelength must be positive and finite")
	ErrNegativeIntensity = errors.New("intensity must be non-negative")
	ErrNonFinite         = errors.New("value is not finite")
	ErrInvalidMedium     = errors.New("medium refractive index must be >= 1")
)

// RayError reports an invalid ray construction parameter.
type RayError struct {
	Field string
	Err   error
}

func (e *RayError) Error() string { return fmt.Sprintf("ray %s: %v", e.Field, e.Err) }
func (e *RayError) Unwrap() error { return e.Err }
