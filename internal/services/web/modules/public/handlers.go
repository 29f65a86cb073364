package public

import (
	"net/http"

	module "github.com/louisbranch/injuryrisk/internal/services/web/module"
	"github.com/louisbranch/injuryrisk/internal/services/web/platform/httpx"
)

type handlers struct {
	reporters []module.HealthReporter
}

func newHandlers(reporters []module.HealthReporter) handlers {
	return handlers{reporters: reporters}
}

func (h handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !h.healthy() {
		_ = httpx.WriteText(w, http.StatusServiceUnavailable, "unavailable")
		return
	}
	_ = httpx.WriteText(w, http.StatusOK, "OK")
}

func (handlers) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httpx.MethodNotAllowed(http.MethodGet+", "+http.MethodHead)(w, r)
}

func (h handlers) healthy() bool {
	for _, reporter := range h.reporters {
		if reporter != nil && !reporter.Healthy() {
			return false
		}
	}
	return true
}
