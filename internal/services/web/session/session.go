// Package session keeps one prediction form controller per browser session.
//
// Sessions live in memory only. A session that has not been touched for the
// configured TTL is evicted on a later access.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/injuryrisk/internal/platform/timeouts"
	"github.com/louisbranch/injuryrisk/internal/prediction"
)

// DefaultTTL is the idle lifetime of a session when none is configured.
const DefaultTTL = 30 * time.Minute

// Factory builds the controller for a new session.
type Factory func(sessionID string) *prediction.Controller

// Option configures a Registry.
type Option func(*Registry)

// WithTTL sets the idle lifetime of sessions. Non-positive values keep the
// default.
func WithTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithSweepInterval sets how often an access scans for expired sessions.
func WithSweepInterval(interval time.Duration) Option {
	return func(r *Registry) {
		if interval >= 0 {
			r.sweepEvery = interval
		}
	}
}

type entry struct {
	controller *prediction.Controller
	lastSeen   time.Time
}

// Registry is a thread-safe in-memory map of session id to controller.
type Registry struct {
	factory    Factory
	ttl        time.Duration
	sweepEvery time.Duration
	now        func() time.Time

	mu        sync.Mutex
	sessions  map[string]*entry
	lastSweep time.Time
}

// NewRegistry creates an empty registry. A nil factory builds controllers
// without a predictor, so every submission fails as a transport failure.
func NewRegistry(factory Factory, opts ...Option) *Registry {
	if factory == nil {
		factory = func(string) *prediction.Controller { return prediction.NewController(nil) }
	}
	r := &Registry{
		factory:    factory,
		ttl:        DefaultTTL,
		sweepEvery: timeouts.SessionSweep,
		now:        time.Now,
		sessions:   make(map[string]*entry),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// TTL returns the idle lifetime of sessions.
func (r *Registry) TTL() time.Duration {
	return r.ttl
}

// Get returns the controller of a live session and refreshes its lifetime.
func (r *Registry) Get(id string) (*prediction.Controller, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	if r.expired(e, now) {
		delete(r.sessions, id)
		return nil, false
	}
	e.lastSeen = now
	return e.controller, true
}

// Resolve returns the controller for id, creating a fresh session when id is
// unknown or expired. The returned id is the one to store in the cookie.
func (r *Registry) Resolve(id string) (string, *prediction.Controller, bool) {
	if controller, ok := r.Get(id); ok {
		return strings.TrimSpace(id), controller, false
	}
	newID, controller := r.Create()
	return newID, controller, true
}

// Create starts a new session with a fresh controller.
func (r *Registry) Create() (string, *prediction.Controller) {
	id := uuid.NewString()
	controller := r.factory(id)
	if controller == nil {
		controller = prediction.NewController(nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.sweepLocked(now)
	r.sessions[id] = &entry{controller: controller, lastSeen: now}
	return id, controller
}

// Drop forgets a session.
func (r *Registry) Drop(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len returns the number of tracked sessions, including expired ones not yet
// swept.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) sweepLocked(now time.Time) {
	if !r.lastSweep.IsZero() && now.Sub(r.lastSweep) < r.sweepEvery {
		return
	}
	r.lastSweep = now
	for id, e := range r.sessions {
		if r.expired(e, now) {
			delete(r.sessions, id)
		}
	}
}

// expired keeps in-flight sessions alive so a slow exchange can still deliver
// its result.
func (r *Registry) expired(e *entry, now time.Time) bool {
	if now.Sub(e.lastSeen) <= r.ttl {
		return false
	}
	return !e.controller.State().InFlight()
}
