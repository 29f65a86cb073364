// Package predict serves the injury-risk form and its HTMX endpoints.
package predict

import (
	"errors"
	"net/http"

	module "github.com/louisbranch/injuryrisk/internal/services/web/module"
	"github.com/louisbranch/injuryrisk/internal/services/web/platform/httpx"
	"github.com/louisbranch/injuryrisk/internal/services/web/routepath"
)

// Module owns the landing page and the /predict/ routes.
type Module struct {
	deps module.Dependencies
}

// New returns the prediction form module.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "predict"
}

// Mount wires the form routes under the root prefix. Unmatched paths render
// the not-found page.
func (m Module) Mount() (module.Mount, error) {
	if m.deps.Sessions == nil {
		return module.Mount{}, errors.New("session registry is required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.deps))
	return module.Mount{Prefix: routepath.Root, Handler: httpx.Chain(mux, httpx.NoStore())}, nil
}

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc("GET "+routepath.Root+"{$}", h.handleIndex)
	mux.HandleFunc("POST "+routepath.PredictFields, h.handleFields)
	mux.HandleFunc("POST "+routepath.PredictSubmit, h.handleSubmit)
	mux.HandleFunc("GET "+routepath.PredictState, h.handleState)
	mux.HandleFunc("POST "+routepath.PredictReset, h.handleReset)
	mux.HandleFunc(routepath.PredictFields, h.methodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.PredictSubmit, h.methodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.PredictReset, h.methodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.PredictState, h.methodNotAllowed(http.MethodGet+", "+http.MethodHead))
	mux.HandleFunc(routepath.Root, h.handleNotFound)
}
