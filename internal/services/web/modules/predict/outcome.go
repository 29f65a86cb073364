package predict

import (
	"context"
	"log"
	"time"

	"github.com/louisbranch/injuryrisk/internal/prediction"
	"github.com/louisbranch/injuryrisk/internal/services/web/session"
	"github.com/louisbranch/injuryrisk/internal/services/web/storage"
)

// recordTimeout bounds one outcome log write.
const recordTimeout = 2 * time.Second

// NewControllerFactory builds session controllers that call predictor and
// report each completed submission to the log and, when set, to store.
func NewControllerFactory(predictor prediction.Predictor, store storage.SubmissionStore, opts ...prediction.Option) session.Factory {
	recorder := outcomeRecorder{store: store}
	return func(string) *prediction.Controller {
		controllerOpts := append([]prediction.Option{prediction.WithObserver(recorder.observe)}, opts...)
		return prediction.NewController(predictor, controllerOpts...)
	}
}

type outcomeRecorder struct {
	store storage.SubmissionStore
}

// observe records terminal transitions. Form values never reach the log.
func (o outcomeRecorder) observe(t prediction.Transition) {
	outcome, ok := storage.OutcomeForState(t.State)
	if !ok {
		return
	}
	statusCode := 0
	if t.State.Err != nil {
		statusCode = t.State.Err.StatusCode
	}
	log.Printf("prediction submission outcome=%s status=%d latency=%s", outcome, statusCode, t.Elapsed)
	if o.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	err := o.store.PutSubmission(ctx, storage.SubmissionRecord{
		Outcome:    outcome,
		StatusCode: statusCode,
		Latency:    t.Elapsed,
	})
	if err != nil {
		log.Printf("record prediction submission outcome=%s: %v", outcome, err)
	}
}
