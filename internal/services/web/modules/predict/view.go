package predict

import (
	"net/http"
	"strings"

	"github.com/louisbranch/injuryrisk/internal/prediction"
	apperrors "github.com/louisbranch/injuryrisk/internal/services/web/platform/errors"
	webi18n "github.com/louisbranch/injuryrisk/internal/services/web/platform/i18n"
	webtemplates "github.com/louisbranch/injuryrisk/internal/services/web/templates"
)

// Form keys for single-field edits. Without them every posted key naming a
// form field is applied.
const (
	fieldParam = "field"
	valueParam = "value"
)

// applyForm forwards posted values to the controller. Keys that are not form
// fields are ignored, except an explicit field param, which must name one.
func applyForm(w http.ResponseWriter, r *http.Request, controller *prediction.Controller) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return apperrors.FormBody(err)
	}
	if name := strings.TrimSpace(r.PostForm.Get(fieldParam)); name != "" {
		field, ok := prediction.ParseField(name)
		if !ok {
			field = prediction.Field(name)
		}
		return controller.UpdateField(field, r.PostForm.Get(valueParam))
	}
	for key, values := range r.PostForm {
		field, ok := prediction.ParseField(key)
		if !ok || len(values) == 0 {
			continue
		}
		if err := controller.UpdateField(field, values[len(values)-1]); err != nil {
			return err
		}
	}
	return nil
}

// viewOf snapshots a controller for rendering. A nil controller renders an
// empty idle form.
func viewOf(controller *prediction.Controller, pc webi18n.PageCopy) webtemplates.FormView {
	if controller == nil {
		return webtemplates.FormView{Copy: pc, State: prediction.IdleState()}
	}
	input := controller.Input()
	return webtemplates.FormView{
		Copy:  pc,
		Input: input,
		Valid: input.Valid(),
		State: controller.State(),
	}
}

type snapshot struct {
	Phase  prediction.Phase `json:"phase"`
	Valid  bool             `json:"valid"`
	Input  inputSnapshot    `json:"input"`
	Result *resultSnapshot  `json:"result"`
	Error  *errorSnapshot   `json:"error"`
}

type inputSnapshot struct {
	Age               *float64 `json:"age"`
	WeightKg          *float64 `json:"weight_kg"`
	HeightCm          *float64 `json:"height_cm"`
	PreviousInjuries  *int     `json:"previous_injuries"`
	TrainingIntensity *string  `json:"training_intensity"`
}

type resultSnapshot struct {
	InjuryLikelihood prediction.Likelihood `json:"likelihood_of_injury"`
	RecoveryTimeDays float64               `json:"recovery_time_days"`
	Risk             string                `json:"risk"`
	RecoveryDays     string                `json:"recovery_days"`
}

type errorSnapshot struct {
	Kind       prediction.Kind `json:"kind"`
	StatusCode int             `json:"status_code,omitempty"`
	Message    string          `json:"message"`
}

func snapshotOf(view webtemplates.FormView) snapshot {
	out := snapshot{
		Phase: view.State.Phase,
		Valid: view.Valid,
		Input: inputSnapshot{
			Age:              view.Input.Age,
			WeightKg:         view.Input.WeightKg,
			HeightCm:         view.Input.HeightCm,
			PreviousInjuries: view.Input.PreviousInjuries,
		},
	}
	if view.Input.TrainingIntensity != "" {
		intensity := string(view.Input.TrainingIntensity)
		out.Input.TrainingIntensity = &intensity
	}
	if result := view.State.Result; result != nil {
		out.Result = &resultSnapshot{
			InjuryLikelihood: result.InjuryLikelihood,
			RecoveryTimeDays: result.RecoveryTimeDays,
			Risk:             view.Copy.RiskLabel(*result),
			RecoveryDays:     view.Copy.RecoveryDays(*result),
		}
	}
	if failure := view.State.Err; failure != nil && view.State.Phase == prediction.PhaseFailed {
		out.Error = &errorSnapshot{
			Kind:       failure.Kind,
			StatusCode: failure.StatusCode,
			Message:    failure.Message(),
		}
	}
	return out
}
