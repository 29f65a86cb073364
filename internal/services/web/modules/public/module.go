// Package public serves unauthenticated operational routes.
package public

import (
	"net/http"
	"strings"

	module "github.com/louisbranch/injuryrisk/internal/services/web/module"
	"github.com/louisbranch/injuryrisk/internal/services/web/routepath"
)

// Module provides the health route.
type Module struct {
	id        string
	reporters []module.HealthReporter
}

// New returns the public module. The health route reports unavailable when
// any reporter is unhealthy.
func New(reporters ...module.HealthReporter) Module {
	return Module{id: "public", reporters: reporters}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (m Module) ID() string {
	id := strings.TrimSpace(m.id)
	if id == "" {
		return "public"
	}
	return id
}

// Mount wires the health route at its exact path.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(m.reporters)
	mux.HandleFunc("GET "+routepath.Health, h.handleHealth)
	mux.HandleFunc(routepath.Health, h.handleMethodNotAllowed)
	return module.Mount{Prefix: routepath.Health, Handler: mux}, nil
}
