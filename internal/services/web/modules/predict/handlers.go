package predict

import (
	"errors"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/injuryrisk/internal/prediction"
	module "github.com/louisbranch/injuryrisk/internal/services/web/module"
	apperrors "github.com/louisbranch/injuryrisk/internal/services/web/platform/errors"
	"github.com/louisbranch/injuryrisk/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/injuryrisk/internal/services/web/platform/i18n"
	"github.com/louisbranch/injuryrisk/internal/services/web/platform/pagerender"
	"github.com/louisbranch/injuryrisk/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/injuryrisk/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/injuryrisk/internal/services/web/routepath"
	"github.com/louisbranch/injuryrisk/internal/services/web/session"
	webtemplates "github.com/louisbranch/injuryrisk/internal/services/web/templates"
	"golang.org/x/text/language"
)

// maxFormBytes bounds posted form bodies.
const maxFormBytes = 16 << 10

type handlers struct {
	sessions *session.Registry
	shell    pagerender.Shell
	policy   requestmeta.SchemePolicy
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{
		sessions: deps.Sessions,
		shell:    deps.Shell,
		policy:   deps.RequestSchemePolicy,
	}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	controller, _ := h.existingController(r)
	h.writePage(w, r, http.StatusOK, controller, func(view webtemplates.FormView) templ.Component {
		return webtemplates.PredictPage(view)
	})
}

func (h handlers) handleFields(w http.ResponseWriter, r *http.Request) {
	controller := h.resolveController(w, r)
	if err := applyForm(w, r, controller); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if !httpx.IsHTMXRequest(r) {
		httpx.WriteRedirect(w, r, routepath.Root)
		return
	}
	loc, _ := webi18n.ResolveLocalizer(w, r)
	h.writeFragment(w, r, http.StatusOK, webtemplates.SubmitButton(viewOf(controller, webi18n.Page(loc))))
}

func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	controller := h.resolveController(w, r)
	if err := applyForm(w, r, controller); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	state, err := controller.Submit(r.Context())
	status := http.StatusOK
	if err != nil {
		if !errors.Is(err, prediction.ErrSubmissionInFlight) {
			httpx.WriteError(w, r, err)
			return
		}
		status = apperrors.HTTPStatus(err)
	}

	render := func(view webtemplates.FormView) templ.Component {
		view.State = state
		if httpx.IsHTMXRequest(r) {
			return templ.Join(webtemplates.StatusPanel(view), webtemplates.SubmitButtonOOB(view))
		}
		return webtemplates.PredictPage(view)
	}
	h.writePage(w, r, status, controller, render)
}

func (h handlers) handleState(w http.ResponseWriter, r *http.Request) {
	controller, _ := h.existingController(r)
	loc, _ := webi18n.ResolveLocalizer(w, r)
	view := viewOf(controller, webi18n.Page(loc))
	if httpx.IsHTMXRequest(r) {
		h.writeFragment(w, r, http.StatusOK, templ.Join(webtemplates.StatusPanel(view), webtemplates.SubmitButtonOOB(view)))
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, snapshotOf(view))
}

func (h handlers) handleReset(w http.ResponseWriter, r *http.Request) {
	if id, ok := sessioncookie.Read(r); ok {
		h.sessions.Drop(id)
	}
	sessioncookie.Clear(w, r, h.policy)
	httpx.WriteRedirect(w, r, routepath.Root)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	loc, tag := webi18n.ResolveLocalizer(w, r)
	pc := webi18n.Page(loc)
	h.writeShell(w, r, http.StatusNotFound, tag, pc, webtemplates.ErrorPanel(pc, http.StatusNotFound))
}

func (handlers) methodNotAllowed(allow string) http.HandlerFunc {
	return httpx.MethodNotAllowed(allow)
}

func (h handlers) existingController(r *http.Request) (*prediction.Controller, bool) {
	id, ok := sessioncookie.Read(r)
	if !ok {
		return nil, false
	}
	return h.sessions.Get(id)
}

// resolveController returns the session's controller, starting a session when
// the request has none. The cookie is rewritten so its lifetime slides with
// the session.
func (h handlers) resolveController(w http.ResponseWriter, r *http.Request) *prediction.Controller {
	id, _ := sessioncookie.Read(r)
	id, controller, _ := h.sessions.Resolve(id)
	sessioncookie.Write(w, r, id, h.sessions.TTL(), h.policy)
	return controller
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, status int, controller *prediction.Controller, build func(webtemplates.FormView) templ.Component) {
	loc, tag := webi18n.ResolveLocalizer(w, r)
	pc := webi18n.Page(loc)
	h.writeShell(w, r, status, tag, pc, build(viewOf(controller, pc)))
}

func (h handlers) writeShell(w http.ResponseWriter, r *http.Request, status int, tag language.Tag, pc webi18n.PageCopy, fragment templ.Component) {
	err := h.shell.WritePage(w, r, pagerender.Page{
		StatusCode: status,
		Lang:       tag,
		Copy:       pc,
		Fragment:   fragment,
	})
	if err != nil {
		log.Printf("render page path=%s: %v", r.URL.Path, err)
		http.Error(w, pc.InternalError, http.StatusInternalServerError)
	}
}

func (handlers) writeFragment(w http.ResponseWriter, r *http.Request, status int, fragment templ.Component) {
	if err := pagerender.WriteFragment(w, r, status, fragment); err != nil {
		log.Printf("render fragment path=%s: %v", r.URL.Path, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
