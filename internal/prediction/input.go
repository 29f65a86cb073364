package prediction

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownField is returned when an edit names a field the form does not have.
var ErrUnknownField = errors.New("unknown form field")

// Field identifies one editable form input.
type Field string

const (
	FieldAge               Field = "age"
	FieldWeightKg          Field = "weight_kg"
	FieldHeightCm          Field = "height_cm"
	FieldPreviousInjuries  Field = "previous_injuries"
	FieldTrainingIntensity Field = "training_intensity"
)

// Fields lists every form field in display order.
func Fields() []Field {
	return []Field{
		FieldAge,
		FieldWeightKg,
		FieldHeightCm,
		FieldPreviousInjuries,
		FieldTrainingIntensity,
	}
}

// ParseField resolves a field identifier, accepting the wire key aliases too.
func ParseField(value string) (Field, bool) {
	switch strings.TrimSpace(value) {
	case string(FieldAge), "Player_Age":
		return FieldAge, true
	case string(FieldWeightKg), "Player_Weight":
		return FieldWeightKg, true
	case string(FieldHeightCm), "Player_Height":
		return FieldHeightCm, true
	case string(FieldPreviousInjuries), "Previous_Injuries":
		return FieldPreviousInjuries, true
	case string(FieldTrainingIntensity), "Training_Intensity":
		return FieldTrainingIntensity, true
	default:
		return "", false
	}
}

// Intensity is the player's training load bucket.
type Intensity string

const (
	IntensityLow    Intensity = "Low"
	IntensityMedium Intensity = "Medium"
	IntensityHigh   Intensity = "High"
)

// Intensities lists the accepted training intensities.
func Intensities() []Intensity {
	return []Intensity{IntensityLow, IntensityMedium, IntensityHigh}
}

// Valid reports whether the intensity is one of the enumerated values.
func (i Intensity) Valid() bool {
	switch i {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	default:
		return false
	}
}

// FormInput holds the five player attributes. Nil pointers and an empty
// intensity mean the field is absent.
type FormInput struct {
	Age               *float64
	WeightKg          *float64
	HeightCm          *float64
	PreviousInjuries  *int
	TrainingIntensity Intensity
}

// Valid reports whether every field is present and within its allowed set.
func (in FormInput) Valid() bool {
	if !finite(in.Age) || !finite(in.WeightKg) || !finite(in.HeightCm) {
		return false
	}
	if in.PreviousInjuries == nil {
		return false
	}
	if *in.PreviousInjuries != 0 && *in.PreviousInjuries != 1 {
		return false
	}
	return in.TrainingIntensity.Valid()
}

// Raw returns the display string for a field, or "" when absent.
func (in FormInput) Raw(field Field) string {
	switch field {
	case FieldAge:
		return formatNumber(in.Age)
	case FieldWeightKg:
		return formatNumber(in.WeightKg)
	case FieldHeightCm:
		return formatNumber(in.HeightCm)
	case FieldPreviousInjuries:
		if in.PreviousInjuries == nil {
			return ""
		}
		return strconv.Itoa(*in.PreviousInjuries)
	case FieldTrainingIntensity:
		return string(in.TrainingIntensity)
	default:
		return ""
	}
}

// clone copies the input so callers cannot alias controller state.
func (in FormInput) clone() FormInput {
	out := FormInput{TrainingIntensity: in.TrainingIntensity}
	out.Age = copyFloat(in.Age)
	out.WeightKg = copyFloat(in.WeightKg)
	out.HeightCm = copyFloat(in.HeightCm)
	if in.PreviousInjuries != nil {
		v := *in.PreviousInjuries
		out.PreviousInjuries = &v
	}
	return out
}

// set applies one raw edit. Values that do not coerce cleanly clear the field.
func (in *FormInput) set(field Field, raw string) error {
	raw = strings.TrimSpace(raw)
	switch field {
	case FieldAge:
		in.Age = parseNumber(raw)
	case FieldWeightKg:
		in.WeightKg = parseNumber(raw)
	case FieldHeightCm:
		in.HeightCm = parseNumber(raw)
	case FieldPreviousInjuries:
		in.PreviousInjuries = parseBinary(raw)
	case FieldTrainingIntensity:
		intensity := Intensity(raw)
		if !intensity.Valid() {
			intensity = ""
		}
		in.TrainingIntensity = intensity
	default:
		return ErrUnknownField
	}
	return nil
}

// parseNumber rejects NaN and infinities, which ParseFloat happily accepts.
func parseNumber(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseBinary(raw string) *int {
	switch raw {
	case "0":
		v := 0
		return &v
	case "1":
		v := 1
		return &v
	default:
		return nil
	}
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func formatNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
