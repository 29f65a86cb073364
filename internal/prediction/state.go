package prediction

import "strconv"

// Phase names the active variant of the request lifecycle.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// Likelihood is the model's injury verdict.
type Likelihood string

const (
	LikelihoodNo  Likelihood = "No"
	LikelihoodYes Likelihood = "Yes"
)

// Valid reports whether the verdict is one the service is allowed to return.
func (l Likelihood) Valid() bool {
	return l == LikelihoodNo || l == LikelihoodYes
}

// Result is a successful prediction.
type Result struct {
	InjuryLikelihood Likelihood
	RecoveryTimeDays float64
}

// RiskLabel maps the verdict to its display label.
func (r Result) RiskLabel() string {
	if r.InjuryLikelihood == LikelihoodNo {
		return "Low Risk"
	}
	return "High Risk"
}

// HighRisk reports whether the verdict flags a likely injury.
func (r Result) HighRisk() bool {
	return r.InjuryLikelihood != LikelihoodNo
}

// RecoveryDays renders the recovery estimate rounded to one decimal.
func (r Result) RecoveryDays() string {
	return strconv.FormatFloat(r.RecoveryTimeDays, 'f', 1, 64)
}

// State is the request lifecycle. Only the payload matching Phase is set.
type State struct {
	Phase  Phase
	Result *Result
	Err    *Error
}

// IdleState is the initial lifecycle state.
func IdleState() State {
	return State{Phase: PhaseIdle}
}

// SubmittingState marks a request in flight.
func SubmittingState() State {
	return State{Phase: PhaseSubmitting}
}

// SucceededState wraps a prediction result.
func SucceededState(result Result) State {
	return State{Phase: PhaseSucceeded, Result: &result}
}

// FailedState wraps a submission failure.
func FailedState(err *Error) State {
	if err == nil {
		err = TransportError(nil)
	}
	return State{Phase: PhaseFailed, Err: err}
}

// InFlight reports whether a request is pending.
func (s State) InFlight() bool {
	return s.Phase == PhaseSubmitting
}

// ErrorMessage returns the user-facing failure text, or "" outside PhaseFailed.
func (s State) ErrorMessage() string {
	if s.Phase != PhaseFailed || s.Err == nil {
		return ""
	}
	return s.Err.Message()
}

func (s State) clone() State {
	out := State{Phase: s.Phase, Err: s.Err}
	if s.Result != nil {
		r := *s.Result
		out.Result = &r
	}
	return out
}
