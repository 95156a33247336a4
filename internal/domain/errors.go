package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Error taxonomy for the routing core.
//
// ValidationError and NotFoundError abort a request before any
// external call. ProviderContractError aborts after the optimization
// call but before persistence. AuthorizationError rejects a read the
// caller does not own. Everything else propagates as a wrapped
// internal error.

// ValidationError is a rejected input: empty stop set, missing
// coordinates, malformed profile. Never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError formats a ValidationError.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError enumerates the identifiers of a resource that could
// not be resolved.
type NotFoundError struct {
	Resource string
	IDs      []int64
}

func (e *NotFoundError) Error() string {
	if len(e.IDs) == 0 {
		return fmt.Sprintf("%s not found", e.Resource)
	}

	ids := make([]string, 0, len(e.IDs))
	for _, id := range e.IDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, strings.Join(ids, ", "))
}

// ProviderContractError is a response from the optimization provider
// that cannot be reconciled onto the submitted stops. The route is
// never partially applied.
type ProviderContractError struct {
	Msg string
}

func (e *ProviderContractError) Error() string { return e.Msg }

// NewProviderContractError formats a ProviderContractError.
func NewProviderContractError(format string, args ...any) *ProviderContractError {
	return &ProviderContractError{Msg: fmt.Sprintf(format, args...)}
}

// AuthorizationError is a driver requesting a route assigned to a
// different courier. Kept distinct from NotFoundError on purpose.
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }
