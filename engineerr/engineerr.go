// Package engineerr defines the four error kinds of spec §7
// (InvalidInput, OracleError, InfeasibleModel, BudgetExceeded) as a single
// typed error carrying structured diagnostics, so callers can both
// errors.Is/As it and surface a well-formed error object at the API
// boundary (spec §7: "a single error object with kind + message").
package engineerr

import (
	"errors"
	"fmt"
)

// Kind enumerates the terminal error categories the engine may return.
type Kind string

const (
	// KindInvalidInput covers malformed coordinates, empty technician list,
	// inverted windows, and non-integer times after rounding.
	KindInvalidInput Kind = "InvalidInput"

	// KindOracleError covers upstream travel-time lookup failures or timeouts.
	KindOracleError Kind = "OracleError"

	// KindInfeasibleModel covers the CP solver completing its budget without
	// a feasible solution.
	KindInfeasibleModel Kind = "InfeasibleModel"

	// KindBudgetExceeded covers a solver time-out with no incumbent solution.
	KindBudgetExceeded Kind = "BudgetExceeded"
)

// Diagnostics carries the partial-diagnostic payload spec §7 asks for on
// InfeasibleModel: which orders had empty eligibility, and which windows
// were unreachable from any technician start.
type Diagnostics struct {
	// EmptyEligibilityOrderIDs lists orders whose required skills matched no
	// technician's expertise.
	EmptyEligibilityOrderIDs []string

	// UnreachableOrderIDs lists orders whose time window cannot be reached
	// in time from any technician start node, per the travel-time matrix.
	UnreachableOrderIDs []string

	// SolverStatus is the raw status code/string surfaced by the solver driver.
	SolverStatus string
}

// Error is the engine's single error type. Kind identifies the category;
// Err (if non-nil) is the underlying cause for errors.Unwrap/errors.Is
// chaining; Diagnostics is populated only for KindInfeasibleModel.
type Error struct {
	Kind        Kind
	Message     string
	Err         error
	Diagnostics *Diagnostics
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match for any target *Error with the same Kind, so
// errors.Is(err, &engineerr.Error{Kind: engineerr.KindInvalidInput}) works
// regardless of message or cause. Callers typically compare via
// engineerr.KindOf instead.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error of the given kind wrapping cause (may be nil).
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// Invalid is a convenience constructor for KindInvalidInput.
func Invalid(message string, cause error) *Error {
	return New(KindInvalidInput, message, cause)
}

// Oracle is a convenience constructor for KindOracleError.
func Oracle(message string, cause error) *Error {
	return New(KindOracleError, message, cause)
}

// Infeasible builds a KindInfeasibleModel error carrying diagnostics.
func Infeasible(message string, diag Diagnostics) *Error {
	return &Error{Kind: KindInfeasibleModel, Message: message, Diagnostics: &diag}
}

// BudgetExceeded builds a KindBudgetExceeded error.
func BudgetExceeded(message string) *Error {
	return New(KindBudgetExceeded, message, nil)
}

// KindOf extracts the Kind from err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
