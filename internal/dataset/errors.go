package dataset

import (
	"github.com/rotisserie/eris"
)

// ErrDataUnavailable marks every failure caused by the dataset failing to load.
var ErrDataUnavailable = eris.New("shipment dataset unavailable")

// UnavailableError carries the load failure. It is sticky: once returned,
// every later call returns the same error until the process restarts.
type UnavailableError struct {
	Source string
	Err    error
}

func (e *UnavailableError) Error() string {
	return "shipment dataset unavailable (" + e.Source + "): " + e.Err.Error()
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrDataUnavailable
}
