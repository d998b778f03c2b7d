package auction

import (
	"errors"
	"fmt"
)

// FailureKind is the closed set of ways a store operation can fail after
// local validation passed.
type FailureKind string

const (
	// FailureValidation: rejected locally, no chain interaction attempted
	FailureValidation FailureKind = "validation"
	// FailureSubmission: rejected before or during broadcast, local state untouched
	FailureSubmission FailureKind = "submission"
	// FailureConfirmation: broadcast but definitely reverted, local state untouched
	FailureConfirmation FailureKind = "confirmation"
	// FailureConfirmationUnknown: broadcast but confirmation was never observed.
	// The outcome is unknown and must be resolved by a reconciliation pass.
	FailureConfirmationUnknown FailureKind = "confirmationUnknown"
)

// Failure is a typed store failure carrying the operation and, when the
// chain supplied one, a human readable revert reason.
type Failure struct {
	Kind   FailureKind
	Op     string
	Reason string
	Err    error
}

func (f *Failure) Error() string {
	msg := fmt.Sprintf("%s failed (%s)", f.Op, f.Kind)
	if f.Reason != "" {
		msg += ": " + f.Reason
	}
	return msg
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func NewFailure(kind FailureKind, op string, reason string, err error) *Failure {
	return &Failure{Kind: kind, Op: op, Reason: reason, Err: err}
}

// AsFailure extracts a *Failure from err, or nil.
func AsFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return nil
}

// IsUnknownOutcome reports whether err represents a transaction whose
// result could not be observed.
func IsUnknownOutcome(err error) bool {
	f := AsFailure(err)
	return f != nil && f.Kind == FailureConfirmationUnknown
}
