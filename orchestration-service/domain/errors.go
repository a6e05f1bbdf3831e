package domain

import "fmt"

// ErrorKind classifies a failure so the orchestrator can decide between
// aborting, failing over, and compensating without matching on error text.
type ErrorKind int

const (
	// KindValidation is a malformed request, rejected before any remote call
	KindValidation ErrorKind = iota
	// KindUpstreamUnavailable is a transport-level failure calling a collaborator
	KindUpstreamUnavailable
	// KindBusinessRejection is a well-formed success=false response
	KindBusinessRejection
	// KindSagaFailure is a step exhausted without success
	KindSagaFailure
	// KindCompensationFailure is a rollback action that failed; logged, never surfaced
	KindCompensationFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindBusinessRejection:
		return "business_rejection"
	case KindSagaFailure:
		return "saga_failure"
	case KindCompensationFailure:
		return "compensation_failure"
	default:
		return "unknown"
	}
}

// StepError is the outcome of a failed saga step. Message is safe to
// surface to callers; Cause keeps the downstream detail for logs only.
type StepError struct {
	Step    string
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed (%s): %s", e.Step, e.Kind, e.Message)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}

// NewStepError builds a StepError for a step
func NewStepError(step string, kind ErrorKind, message string, cause error) *StepError {
	return &StepError{
		Step:    step,
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}
