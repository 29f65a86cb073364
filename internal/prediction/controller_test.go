package prediction

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakePredictor struct {
	calls  atomic.Int32
	result Result
	err    error
	gotReq Request
	mu     sync.Mutex
}

func (f *fakePredictor) Predict(_ context.Context, req Request) (Result, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.gotReq = req
	f.mu.Unlock()
	return f.result, f.err
}

func validController(t *testing.T, p Predictor, opts ...Option) *Controller {
	t.Helper()
	c := NewController(p, opts...)
	fill(t, c, validValues())
	return c
}

func TestSubmitInvalidInputFailsWithoutNetwork(t *testing.T) {
	t.Parallel()

	p := &fakePredictor{result: Result{InjuryLikelihood: LikelihoodNo, RecoveryTimeDays: 1}}
	c := NewController(p)
	if err := c.UpdateField(FieldAge, "24"); err != nil {
		t.Fatalf("UpdateField() error = %v", err)
	}

	state, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if state.Phase != PhaseFailed {
		t.Fatalf("Phase = %q, want %q", state.Phase, PhaseFailed)
	}
	if got := state.ErrorMessage(); got != "Please fill all fields with valid values." {
		t.Fatalf("ErrorMessage() = %q", got)
	}
	if KindOf(state.Err) != KindValidation {
		t.Fatalf("kind = %q, want %q", KindOf(state.Err), KindValidation)
	}
	if calls := p.calls.Load(); calls != 0 {
		t.Fatalf("predictor calls = %d, want 0", calls)
	}
}

func TestSubmitHappyPath(t *testing.T) {
	t.Parallel()

	p := &fakePredictor{result: Result{InjuryLikelihood: LikelihoodNo, RecoveryTimeDays: 7.3}}
	c := validController(t, p)

	state, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if state.Phase != PhaseSucceeded {
		t.Fatalf("Phase = %q, want %q (err %v)", state.Phase, PhaseSucceeded, state.Err)
	}
	if state.Result == nil || *state.Result != (Result{InjuryLikelihood: LikelihoodNo, RecoveryTimeDays: 7.3}) {
		t.Fatalf("Result = %+v", state.Result)
	}
	if state.Err != nil {
		t.Fatalf("Err = %v, want nil", state.Err)
	}
	want := Request{Age: 24, WeightKg: 66.25, HeightCm: 175.73, PreviousInjuries: 0, TrainingIntensity: IntensityMedium}
	if p.gotReq != want {
		t.Fatalf("request = %+v, want %+v", p.gotReq, want)
	}
	if got := c.State(); got.Phase != PhaseSucceeded {
		t.Fatalf("State().Phase = %q, want %q", got.Phase, PhaseSucceeded)
	}
}

func TestSubmitServerErrorEmbedsStatus(t *testing.T) {
	t.Parallel()

	c := validController(t, &fakePredictor{err: ServerError(500)})
	state, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if state.Phase != PhaseFailed {
		t.Fatalf("Phase = %q, want %q", state.Phase, PhaseFailed)
	}
	if !strings.Contains(state.ErrorMessage(), "500") {
		t.Fatalf("ErrorMessage() = %q, want status 500", state.ErrorMessage())
	}
	if state.Result != nil {
		t.Fatalf("Result = %+v, want nil", state.Result)
	}
}

func TestSubmitTransportFailureUsesDescription(t *testing.T) {
	t.Parallel()

	c := validController(t, &fakePredictor{err: errors.New("dial tcp: connection refused")})
	state, _ := c.Submit(context.Background())
	if state.Phase != PhaseFailed {
		t.Fatalf("Phase = %q, want %q", state.Phase, PhaseFailed)
	}
	if got := state.ErrorMessage(); got != "Failed to get prediction: dial tcp: connection refused" {
		t.Fatalf("ErrorMessage() = %q", got)
	}
	if KindOf(state.Err) != KindTransport {
		t.Fatalf("kind = %q, want %q", KindOf(state.Err), KindTransport)
	}
}

func TestSubmitTransportFailureFallsBackToUnknownError(t *testing.T) {
	t.Parallel()

	c := validController(t, &fakePredictor{err: errors.New("")})
	state, _ := c.Submit(context.Background())
	if got := state.ErrorMessage(); got != "Failed to get prediction: Unknown error" {
		t.Fatalf("ErrorMessage() = %q", got)
	}
}

func TestSubmitUnexpectedLikelihoodIsMalformed(t *testing.T) {
	t.Parallel()

	c := validController(t, &fakePredictor{result: Result{InjuryLikelihood: "Maybe", RecoveryTimeDays: 2}})
	state, _ := c.Submit(context.Background())
	if state.Phase != PhaseFailed {
		t.Fatalf("Phase = %q, want %q", state.Phase, PhaseFailed)
	}
	if KindOf(state.Err) != KindMalformedResponse {
		t.Fatalf("kind = %q, want %q", KindOf(state.Err), KindMalformedResponse)
	}
	if !strings.Contains(state.ErrorMessage(), "Maybe") {
		t.Fatalf("ErrorMessage() = %q, want offending value", state.ErrorMessage())
	}
}

func TestSubmitWithoutPredictorFails(t *testing.T) {
	t.Parallel()

	c := validController(t, nil)
	state, _ := c.Submit(context.Background())
	if state.Phase != PhaseFailed || state.ErrorMessage() == "" {
		t.Fatalf("state = %+v, want failed with message", state)
	}
}

// blockingPredictor parks each call until released.
type blockingPredictor struct {
	started chan struct{}
	release chan struct{}
	result  Result
}

func newBlockingPredictor(result Result) *blockingPredictor {
	return &blockingPredictor{
		started: make(chan struct{}, 4),
		release: make(chan struct{}),
		result:  result,
	}
}

func (b *blockingPredictor) Predict(ctx context.Context, _ Request) (Result, error) {
	b.started <- struct{}{}
	select {
	case <-b.release:
		return b.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func TestResubmitClearsPreviousResultBeforeResponse(t *testing.T) {
	t.Parallel()

	first := &fakePredictor{result: Result{InjuryLikelihood: LikelihoodYes, RecoveryTimeDays: 12}}
	blocking := newBlockingPredictor(Result{InjuryLikelihood: LikelihoodNo, RecoveryTimeDays: 3})
	var current Predictor = first
	var mu sync.Mutex
	c := validController(t, PredictorFunc(func(ctx context.Context, req Request) (Result, error) {
		mu.Lock()
		p := current
		mu.Unlock()
		return p.Predict(ctx, req)
	}))

	if state, _ := c.Submit(context.Background()); state.Phase != PhaseSucceeded {
		t.Fatalf("first Phase = %q, want %q", state.Phase, PhaseSucceeded)
	}
	mu.Lock()
	current = blocking
	mu.Unlock()

	done := make(chan State, 1)
	go func() {
		state, _ := c.Submit(context.Background())
		done <- state
	}()

	select {
	case <-blocking.started:
	case <-time.After(2 * time.Second):
		t.Fatal("second submit never reached predictor")
	}
	inFlight := c.State()
	if inFlight.Phase != PhaseSubmitting {
		t.Fatalf("in-flight Phase = %q, want %q", inFlight.Phase, PhaseSubmitting)
	}
	if inFlight.Result != nil || inFlight.Err != nil {
		t.Fatalf("in-flight state kept payload: %+v", inFlight)
	}

	close(blocking.release)
	select {
	case state := <-done:
		if state.Phase != PhaseSucceeded || state.Result.InjuryLikelihood != LikelihoodNo {
			t.Fatalf("final state = %+v", state)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("second submit never completed")
	}
}

func TestSubmitIgnoredWhileInFlight(t *testing.T) {
	t.Parallel()

	blocking := newBlockingPredictor(Result{InjuryLikelihood: LikelihoodNo, RecoveryTimeDays: 1})
	c := validController(t, blocking)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Submit(context.Background())
	}()
	<-blocking.started

	state, err := c.Submit(context.Background())
	if !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("Submit() error = %v, want %v", err, ErrSubmissionInFlight)
	}
	if state.Phase != PhaseSubmitting {
		t.Fatalf("Phase = %q, want %q", state.Phase, PhaseSubmitting)
	}

	close(blocking.release)
	<-done
	if len(blocking.started) != 0 {
		t.Fatalf("predictor started %d extra requests", len(blocking.started))
	}
}

func TestSubmitCancelledContextReportsTransportFailure(t *testing.T) {
	t.Parallel()

	blocking := newBlockingPredictor(Result{})
	c := validController(t, blocking)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan State, 1)
	go func() {
		state, _ := c.Submit(ctx)
		done <- state
	}()
	<-blocking.started
	cancel()

	state := <-done
	if state.Phase != PhaseFailed || KindOf(state.Err) != KindTransport {
		t.Fatalf("state = %+v, want transport failure", state)
	}
	if !errors.Is(state.Err, context.Canceled) {
		t.Fatalf("Err = %v, want context.Canceled", state.Err)
	}
}

func TestObserversSeeEveryTransition(t *testing.T) {
	t.Parallel()

	var phases []Phase
	var elapsed time.Duration
	tick := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		tick = tick.Add(250 * time.Millisecond)
		return tick
	}
	c := validController(t,
		&fakePredictor{result: Result{InjuryLikelihood: LikelihoodNo, RecoveryTimeDays: 7.3}},
		WithClock(clock),
		WithObserver(func(tr Transition) {
			phases = append(phases, tr.State.Phase)
			if tr.State.Phase == PhaseSucceeded {
				elapsed = tr.Elapsed
			}
		}),
	)

	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(phases) != 2 || phases[0] != PhaseSubmitting || phases[1] != PhaseSucceeded {
		t.Fatalf("phases = %v, want [submitting succeeded]", phases)
	}
	if elapsed != 250*time.Millisecond {
		t.Fatalf("elapsed = %v, want 250ms", elapsed)
	}
}

func TestFailedStateRetriesToSubmitting(t *testing.T) {
	t.Parallel()

	p := &fakePredictor{err: ServerError(503)}
	c := validController(t, p)
	if state, _ := c.Submit(context.Background()); state.Phase != PhaseFailed {
		t.Fatalf("Phase = %q, want %q", state.Phase, PhaseFailed)
	}

	var sawSubmitting bool
	c2 := validController(t, &fakePredictor{result: Result{InjuryLikelihood: LikelihoodYes, RecoveryTimeDays: 9.96}},
		WithObserver(func(tr Transition) {
			if tr.State.Phase == PhaseSubmitting {
				sawSubmitting = true
			}
		}))
	if err := c2.UpdateField(FieldAge, "abc"); err != nil {
		t.Fatalf("UpdateField() error = %v", err)
	}
	if state, _ := c2.Submit(context.Background()); state.Phase != PhaseFailed {
		t.Fatalf("Phase = %q, want %q", state.Phase, PhaseFailed)
	}
	if err := c2.UpdateField(FieldAge, "31"); err != nil {
		t.Fatalf("UpdateField() error = %v", err)
	}
	state, _ := c2.Submit(context.Background())
	if !sawSubmitting || state.Phase != PhaseSucceeded {
		t.Fatalf("retry state = %+v, sawSubmitting = %t", state, sawSubmitting)
	}
	if got := state.Result.RecoveryDays(); got != "10.0" {
		t.Fatalf("RecoveryDays() = %q, want %q", got, "10.0")
	}
	if got := state.Result.RiskLabel(); got != "High Risk" {
		t.Fatalf("RiskLabel() = %q, want %q", got, "High Risk")
	}
}
