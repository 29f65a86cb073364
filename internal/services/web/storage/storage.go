package storage

import (
	"context"
	"time"

	"github.com/louisbranch/injuryrisk/internal/prediction"
)

// Outcome classifies how one submission attempt ended.
type Outcome string

const (
	OutcomeSucceeded         Outcome = "succeeded"
	OutcomeValidationFailed  Outcome = "validation_failed"
	OutcomeServerError       Outcome = "server_error"
	OutcomeTransportFailure  Outcome = "transport_failure"
	OutcomeMalformedResponse Outcome = "malformed_response"
)

// Valid reports whether o is a known outcome.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeSucceeded, OutcomeValidationFailed, OutcomeServerError, OutcomeTransportFailure, OutcomeMalformedResponse:
		return true
	default:
		return false
	}
}

// OutcomeForState maps a terminal lifecycle state to its outcome. Idle and
// submitting states report false.
func OutcomeForState(state prediction.State) (Outcome, bool) {
	switch state.Phase {
	case prediction.PhaseSucceeded:
		return OutcomeSucceeded, true
	case prediction.PhaseFailed:
		switch prediction.KindOf(state.Err) {
		case prediction.KindValidation:
			return OutcomeValidationFailed, true
		case prediction.KindServer:
			return OutcomeServerError, true
		case prediction.KindMalformedResponse:
			return OutcomeMalformedResponse, true
		default:
			return OutcomeTransportFailure, true
		}
	default:
		return "", false
	}
}

// SubmissionRecord is one entry of the outcome log.
type SubmissionRecord struct {
	ID         string
	Outcome    Outcome
	StatusCode int
	Latency    time.Duration
	CreatedAt  time.Time
}

// SubmissionStore persists submission outcomes.
type SubmissionStore interface {
	PutSubmission(ctx context.Context, record SubmissionRecord) error
	// ListSubmissions returns up to limit records, newest first.
	ListSubmissions(ctx context.Context, limit int) ([]SubmissionRecord, error)
	Close() error
}
