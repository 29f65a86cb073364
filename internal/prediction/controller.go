package prediction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/injuryrisk/internal/prediction"

// Request is the validated payload sent to the prediction service.
type Request struct {
	Age               float64
	WeightKg          float64
	HeightCm          float64
	PreviousInjuries  int
	TrainingIntensity Intensity
}

// Predictor performs one prediction exchange with the remote service.
type Predictor interface {
	Predict(ctx context.Context, req Request) (Result, error)
}

// PredictorFunc adapts a function to Predictor.
type PredictorFunc func(ctx context.Context, req Request) (Result, error)

// Predict calls f.
func (f PredictorFunc) Predict(ctx context.Context, req Request) (Result, error) {
	return f(ctx, req)
}

// Transition describes one lifecycle change. Elapsed is the round-trip time of
// the exchange for terminal transitions and zero otherwise.
type Transition struct {
	State   State
	Elapsed time.Duration
}

// Observer is notified after every lifecycle transition, outside the
// controller lock.
type Observer func(Transition)

// Option configures a Controller.
type Option func(*Controller)

// WithObserver registers a transition observer.
func WithObserver(observer Observer) Option {
	return func(c *Controller) {
		if observer != nil {
			c.observers = append(c.observers, observer)
		}
	}
}

// WithTracer overrides the tracer used for submission spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Controller) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithClock overrides the time source used to measure exchanges.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// Controller owns one form's input and request lifecycle.
//
// Submissions are not queued: while a request is in flight further Submit
// calls are ignored and report ErrSubmissionInFlight.
type Controller struct {
	predictor Predictor
	observers []Observer
	tracer    trace.Tracer
	now       func() time.Time

	mu    sync.Mutex
	input FormInput
	state State
}

// NewController returns a controller with empty input in the idle state.
func NewController(predictor Predictor, opts ...Option) *Controller {
	c := &Controller{
		predictor: predictor,
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
		state:     IdleState(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// UpdateField applies one raw edit from an input widget. It never changes the
// lifecycle state.
func (c *Controller) UpdateField(field Field, raw string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input.set(field, raw)
}

// IsValid reports whether the current input permits a submission.
func (c *Controller) IsValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input.Valid()
}

// Input returns a copy of the current form input.
func (c *Controller) Input() FormInput {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input.clone()
}

// State returns a copy of the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Submit runs one prediction attempt and returns the resulting state.
//
// Invalid input fails locally without a network call. Failures of the
// exchange are reported through the returned state; the error is non-nil only
// when the call was ignored because another submission is pending.
func (c *Controller) Submit(ctx context.Context) (State, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	if c.state.InFlight() {
		current := c.state.clone()
		c.mu.Unlock()
		return current, ErrSubmissionInFlight
	}
	if !c.input.Valid() {
		c.state = FailedState(ValidationError())
		failed := c.state.clone()
		c.mu.Unlock()
		c.notify(Transition{State: failed})
		return failed, nil
	}
	req := requestFromInput(c.input)
	c.state = SubmittingState()
	c.mu.Unlock()
	c.notify(Transition{State: SubmittingState()})

	next, elapsed := c.exchange(ctx, req)

	c.mu.Lock()
	c.state = next
	done := c.state.clone()
	c.mu.Unlock()
	c.notify(Transition{State: done, Elapsed: elapsed})
	return done, nil
}

func (c *Controller) exchange(ctx context.Context, req Request) (State, time.Duration) {
	ctx, span := c.tracer.Start(ctx, "prediction.submit",
		trace.WithAttributes(attribute.String("prediction.training_intensity", string(req.TrainingIntensity))),
	)
	defer span.End()

	start := c.now()
	var (
		result Result
		err    error
	)
	if c.predictor == nil {
		err = TransportError(errors.New("prediction service is not configured"))
	} else {
		result, err = c.predictor.Predict(ctx, req)
	}
	elapsed := c.now().Sub(start)

	if err == nil && !result.InjuryLikelihood.Valid() {
		err = MalformedResponseError(fmt.Errorf("unexpected likelihood_of_injury %q", result.InjuryLikelihood))
	}
	if err != nil {
		failure := AsError(err)
		span.RecordError(failure)
		span.SetStatus(codes.Error, string(failure.Kind))
		span.SetAttributes(attribute.String("prediction.failure_kind", string(failure.Kind)))
		if failure.StatusCode != 0 {
			span.SetAttributes(attribute.Int("http.response.status_code", failure.StatusCode))
		}
		return FailedState(failure), elapsed
	}
	span.SetAttributes(attribute.String("prediction.likelihood", string(result.InjuryLikelihood)))
	return SucceededState(result), elapsed
}

func (c *Controller) notify(t Transition) {
	for _, observer := range c.observers {
		observer(t)
	}
}

func requestFromInput(in FormInput) Request {
	return Request{
		Age:               *in.Age,
		WeightKg:          *in.WeightKg,
		HeightCm:          *in.HeightCm,
		PreviousInjuries:  *in.PreviousInjuries,
		TrainingIntensity: in.TrainingIntensity,
	}
}
