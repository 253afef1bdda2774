package action

import "fmt"

// UnknownActionError reports an action id with no entry in the active
// catalog. That only happens when the deployed policy and catalog disagree,
// which is a fatal configuration error rather than a recoverable one.
type UnknownActionError struct {
	ID      int
	Catalog string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action id %d for %s catalog", e.ID, e.Catalog)
}
