package state

import (
	"fmt"
	"math"
	"strconv"
)

// InvalidStateError reports a telemetry field outside its declared range.
// It is recoverable at the request boundary: the caller is told which
// field, which value, and which bound was violated.
type InvalidStateError struct {
	Field      string
	Value      float64
	Constraint string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state: %s=%s outside %s", e.Field, trimFloat(e.Value), e.Constraint)
}

func constraintString(min, max float64) string {
	if math.IsInf(max, 1) {
		return fmt.Sprintf(">=%s", trimFloat(min))
	}
	return fmt.Sprintf("[%s,%s]", trimFloat(min), trimFloat(max))
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
