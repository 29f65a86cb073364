// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"

	"github.com/louisbranch/injuryrisk/internal/services/web/platform/pagerender"
	"github.com/louisbranch/injuryrisk/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/injuryrisk/internal/services/web/session"
	"github.com/louisbranch/injuryrisk/internal/services/web/storage"
)

// Mount describes a module route mount. A prefix ending in "/" owns the whole
// subtree; any other prefix matches that exact path only.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// HealthReporter is an optional interface for modules that can report their
// operational availability.
type HealthReporter interface {
	Healthy() bool
}

// Dependencies carries the shared services handed to modules.
type Dependencies struct {
	Sessions            *session.Registry
	Submissions         storage.SubmissionStore
	Shell               pagerender.Shell
	RequestSchemePolicy requestmeta.SchemePolicy
}
