package i18n

import (
	"github.com/louisbranch/injuryrisk/internal/prediction"
)

// PageCopy holds the translatable copy for the prediction page.
type PageCopy struct {
	Title             string
	Description       string
	Language          string
	Heading           string
	Age               string
	WeightKg          string
	HeightCm          string
	PreviousInjuries  string
	TrainingIntensity string
	Select            string
	No                string
	Yes               string
	Submit            string
	Submitting        string
	Reset             string
	ResultHeading     string
	Risk              string
	Recovery          string
	ErrorHeading      string
	NotFound          string
	InternalError     string

	loc Localizer
}

// Page returns the page copy for loc.
func Page(loc Localizer) PageCopy {
	return PageCopy{
		Title:             localize(loc, "core.title", "Player Injury Risk"),
		Description:       localize(loc, "core.description", "Estimate a player's injury likelihood and recovery time from five attributes."),
		Language:          localize(loc, "core.language", "Language"),
		Heading:           localize(loc, "predict.heading", "Injury Risk Predictor"),
		Age:               localize(loc, "predict.field.age", "Age"),
		WeightKg:          localize(loc, "predict.field.weight_kg", "Weight (kg)"),
		HeightCm:          localize(loc, "predict.field.height_cm", "Height (cm)"),
		PreviousInjuries:  localize(loc, "predict.field.previous_injuries", "Previous injuries"),
		TrainingIntensity: localize(loc, "predict.field.training_intensity", "Training intensity"),
		Select:            localize(loc, "predict.option.select", "Select..."),
		No:                localize(loc, "predict.option.no", "No"),
		Yes:               localize(loc, "predict.option.yes", "Yes"),
		Submit:            localize(loc, "predict.submit", "Get Prediction"),
		Submitting:        localize(loc, "predict.submitting", "Predicting..."),
		Reset:             localize(loc, "predict.reset", "Start over"),
		ResultHeading:     localize(loc, "predict.result.heading", "Prediction"),
		Risk:              localize(loc, "predict.result.risk", "Injury risk"),
		Recovery:          localize(loc, "predict.result.recovery", "Recovery time"),
		ErrorHeading:      localize(loc, "predict.error.heading", "Prediction failed"),
		NotFound:          localize(loc, "core.not_found", "Page not found"),
		InternalError:     localize(loc, "core.internal_error", "Something went wrong"),
		loc:               loc,
	}
}

// IntensityLabel returns the localized label of a training intensity.
func (c PageCopy) IntensityLabel(intensity prediction.Intensity) string {
	switch intensity {
	case prediction.IntensityLow:
		return localize(c.loc, "predict.intensity.low", "Low")
	case prediction.IntensityMedium:
		return localize(c.loc, "predict.intensity.medium", "Medium")
	case prediction.IntensityHigh:
		return localize(c.loc, "predict.intensity.high", "High")
	default:
		return string(intensity)
	}
}

// RiskLabel returns the localized risk label of a result.
func (c PageCopy) RiskLabel(result prediction.Result) string {
	if result.HighRisk() {
		return localize(c.loc, "predict.risk.high", result.RiskLabel())
	}
	return localize(c.loc, "predict.risk.low", result.RiskLabel())
}

// RecoveryDays formats the recovery estimate to one decimal place using the
// locale's number format.
func (c PageCopy) RecoveryDays(result prediction.Result) string {
	days := result.RecoveryDays()
	if c.loc != nil {
		days = c.loc.Sprintf("%.1f", result.RecoveryTimeDays)
	}
	return localize(c.loc, "predict.result.days", days+" days", days)
}

// Localizer returns the localizer the copy was built with, or nil.
func (c PageCopy) Localizer() Localizer {
	return c.loc
}
