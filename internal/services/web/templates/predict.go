package templates

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/injuryrisk/internal/prediction"
	webi18n "github.com/louisbranch/injuryrisk/internal/services/web/platform/i18n"
	"github.com/louisbranch/injuryrisk/internal/services/web/routepath"
)

// Element ids targeted by HTMX swaps.
const (
	FormID         = "predict-form"
	SubmitID       = "predict-submit"
	StatusID       = "predict-status"
	IndicatorID    = "predict-indicator"
	statePollEvery = "every 1s"
)

// FormView is everything the form needs from one controller.
type FormView struct {
	Copy  webi18n.PageCopy
	Input prediction.FormInput
	Valid bool
	State prediction.State
}

// CanSubmit reports whether the submit button is enabled.
func (v FormView) CanSubmit() bool {
	return v.Valid && !v.State.InFlight()
}

// PredictPage renders the heading, form and status panel.
func PredictPage(view FormView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<section class=\"predict\"><h1>")
		h.text(view.Copy.Heading)
		h.raw("</h1>")
		if h.err != nil {
			return h.err
		}
		if err := PredictForm(view).Render(ctx, w); err != nil {
			return err
		}
		if err := StatusPanel(view).Render(ctx, w); err != nil {
			return err
		}
		h.raw("</section>")
		return h.err
	})
}

// PredictForm renders the five inputs and the submit button. Plain posts fall
// back to the full-page submit route.
func PredictForm(view FormView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<form")
		h.attr("id", FormID)
		h.attr("method", "post")
		h.attr("action", routepath.PredictSubmit)
		h.attr("hx-post", routepath.PredictSubmit)
		h.attr("hx-target", "#"+StatusID)
		h.attr("hx-swap", "outerHTML")
		h.attr("hx-indicator", "#"+IndicatorID)
		h.attr("hx-disabled-elt", "find button[type=submit]")
		h.raw(">")

		writeNumberInput(h, prediction.FieldAge, view.Copy.Age, view.Input.Raw(prediction.FieldAge), "1")
		writeNumberInput(h, prediction.FieldWeightKg, view.Copy.WeightKg, view.Input.Raw(prediction.FieldWeightKg), "any")
		writeNumberInput(h, prediction.FieldHeightCm, view.Copy.HeightCm, view.Input.Raw(prediction.FieldHeightCm), "any")
		writeSelect(h, prediction.FieldPreviousInjuries, view.Copy.PreviousInjuries, view.Input.Raw(prediction.FieldPreviousInjuries), []selectOption{
			{Value: "0", Label: view.Copy.No},
			{Value: "1", Label: view.Copy.Yes},
		}, view.Copy.Select)
		intensities := make([]selectOption, 0, len(prediction.Intensities()))
		for _, intensity := range prediction.Intensities() {
			intensities = append(intensities, selectOption{Value: string(intensity), Label: view.Copy.IntensityLabel(intensity)})
		}
		writeSelect(h, prediction.FieldTrainingIntensity, view.Copy.TrainingIntensity, view.Input.Raw(prediction.FieldTrainingIntensity), intensities, view.Copy.Select)

		if h.err != nil {
			return h.err
		}
		if err := SubmitButton(view).Render(ctx, w); err != nil {
			return err
		}
		h.raw("<span class=\"htmx-indicator\"")
		h.attr("id", IndicatorID)
		h.raw(">")
		h.text(view.Copy.Submitting)
		h.raw("</span></form><form method=\"post\"")
		h.attr("action", routepath.PredictReset)
		h.attr("hx-post", routepath.PredictReset)
		h.raw("><button type=\"submit\" class=\"secondary\">")
		h.text(view.Copy.Reset)
		h.raw("</button></form>")
		return h.err
	})
}

// SubmitButton renders the submit affordance, disabled unless the input is
// valid and no request is pending.
func SubmitButton(view FormView) templ.Component {
	return submitButton(view, false)
}

// SubmitButtonOOB renders the submit affordance as an out-of-band swap so it
// can ride along with a status panel response.
func SubmitButtonOOB(view FormView) templ.Component {
	return submitButton(view, true)
}

func submitButton(view FormView, oob bool) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		label := view.Copy.Submit
		if view.State.InFlight() {
			label = view.Copy.Submitting
		}
		h.raw("<div")
		h.attr("id", SubmitID)
		if oob {
			h.attr("hx-swap-oob", "outerHTML")
		}
		h.raw(" class=\"actions\"><button type=\"submit\"")
		h.flag("disabled", !view.CanSubmit())
		h.raw(">")
		h.text(label)
		h.raw("</button></div>")
		return h.err
	})
}

// StatusPanel renders the lifecycle state: nothing when idle, a polling
// placeholder while submitting, and the result or error otherwise.
func StatusPanel(view FormView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<div")
		h.attr("id", StatusID)
		h.attr("data-phase", string(view.State.Phase))
		h.raw(" aria-live=\"polite\"")

		switch view.State.Phase {
		case prediction.PhaseSubmitting:
			h.attr("hx-get", routepath.PredictState)
			h.attr("hx-trigger", statePollEvery)
			h.attr("hx-swap", "outerHTML")
			h.raw("><p class=\"pending\">")
			h.text(view.Copy.Submitting)
			h.raw("</p>")
		case prediction.PhaseSucceeded:
			h.raw(">")
			if view.State.Result != nil {
				writeResult(h, view.Copy, *view.State.Result)
			}
		case prediction.PhaseFailed:
			h.raw("><div class=\"error\" role=\"alert\"><h2>")
			h.text(view.Copy.ErrorHeading)
			h.raw("</h2><p>")
			h.text(view.State.ErrorMessage())
			h.raw("</p></div>")
		default:
			h.raw(">")
		}
		h.raw("</div>")
		return h.err
	})
}

func writeResult(h *htmlWriter, pc webi18n.PageCopy, result prediction.Result) {
	class := "result low-risk"
	if result.HighRisk() {
		class = "result high-risk"
	}
	h.raw("<div")
	h.attr("class", class)
	h.raw("><h2>")
	h.text(pc.ResultHeading)
	h.raw("</h2><dl><dt>")
	h.text(pc.Risk)
	h.raw("</dt><dd class=\"risk\">")
	h.text(pc.RiskLabel(result))
	h.raw("</dd><dt>")
	h.text(pc.Recovery)
	h.raw("</dt><dd class=\"recovery\">")
	h.text(pc.RecoveryDays(result))
	h.raw("</dd></dl></div>")
}

type selectOption struct {
	Value string
	Label string
}

func fieldAttrs(h *htmlWriter, field prediction.Field) {
	h.attr("id", "field-"+string(field))
	h.attr("name", string(field))
	h.attr("hx-post", routepath.PredictFields)
	h.attr("hx-trigger", "input changed delay:300ms, change")
	h.attr("hx-include", "#"+FormID)
	h.attr("hx-target", "#"+SubmitID)
	h.attr("hx-swap", "outerHTML")
}

func writeNumberInput(h *htmlWriter, field prediction.Field, label, value, step string) {
	h.raw("<label")
	h.attr("for", "field-"+string(field))
	h.raw(">")
	h.text(label)
	h.raw("</label><input type=\"number\" required")
	fieldAttrs(h, field)
	h.attr("step", step)
	h.attr("value", value)
	h.raw(">")
}

func writeSelect(h *htmlWriter, field prediction.Field, label, selected string, options []selectOption, placeholder string) {
	h.raw("<label")
	h.attr("for", "field-"+string(field))
	h.raw(">")
	h.text(label)
	h.raw("</label><select required")
	fieldAttrs(h, field)
	h.raw("><option value=\"\"")
	h.flag("selected", selected == "")
	h.raw(">")
	h.text(placeholder)
	h.raw("</option>")
	for _, option := range options {
		h.raw("<option")
		h.attr("value", option.Value)
		h.flag("selected", option.Value == selected)
		h.raw(">")
		h.text(option.Label)
		h.raw("</option>")
	}
	h.raw("</select>")
}

// ErrorPanel renders a not-found or internal error message.
func ErrorPanel(pc webi18n.PageCopy, statusCode int) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		message := pc.InternalError
		if statusCode == http.StatusNotFound {
			message = pc.NotFound
		}
		h := &htmlWriter{w: w}
		h.raw("<section class=\"error-page\"")
		h.attr("data-status", strconv.Itoa(statusCode))
		h.raw("><h1>")
		h.text(message)
		h.raw("</h1><p><a")
		h.attr("href", routepath.Root)
		h.raw(">")
		h.text(pc.Heading)
		h.raw("</a></p></section>")
		return h.err
	})
}
