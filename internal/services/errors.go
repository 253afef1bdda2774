package services

import (
	"errors"
	"net/http"

	"github.com/shemankubana/IncludEd/internal/decision/action"
	"github.com/shemankubana/IncludEd/internal/decision/policy"
	"github.com/shemankubana/IncludEd/internal/decision/state"
)

// Error codes surfaced to callers; every failure kind is distinguishable.
const (
	CodeInvalidState      = "invalid_state"
	CodeUnknownAction     = "unknown_action"
	CodePolicyUnavailable = "policy_unavailable"
	CodeInternal          = "internal_error"
)

// ErrorCode classifies a decision-path error.
func ErrorCode(err error) string {
	var ise *state.InvalidStateError
	if errors.As(err, &ise) {
		return CodeInvalidState
	}
	var uae *action.UnknownActionError
	if errors.As(err, &uae) {
		return CodeUnknownAction
	}
	var ue *policy.UnavailableError
	if errors.As(err, &ue) {
		return CodePolicyUnavailable
	}
	return CodeInternal
}

// HTTPStatus maps a decision-path error to its transport status.
func HTTPStatus(err error) int {
	switch ErrorCode(err) {
	case CodeInvalidState:
		return http.StatusBadRequest
	case CodePolicyUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
