package policy

import "fmt"

// UnavailableError means the provider could not be reached or did not
// answer in time. Callers see a service-unavailable condition and may
// retry later.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return "policy provider unavailable"
	}
	return fmt.Sprintf("policy provider unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }
