package prediction

import (
	"errors"
	"testing"
)

func fill(t *testing.T, c *Controller, values map[Field]string) {
	t.Helper()
	for field, raw := range values {
		if err := c.UpdateField(field, raw); err != nil {
			t.Fatalf("UpdateField(%q, %q) error = %v", field, raw, err)
		}
	}
}

func validValues() map[Field]string {
	return map[Field]string{
		FieldAge:               "24",
		FieldWeightKg:          "66.25",
		FieldHeightCm:          "175.73",
		FieldPreviousInjuries:  "0",
		FieldTrainingIntensity: "Medium",
	}
}

func TestFormInputValidRequiresEveryField(t *testing.T) {
	t.Parallel()

	for _, missing := range Fields() {
		missing := missing
		t.Run(string(missing), func(t *testing.T) {
			t.Parallel()

			c := NewController(nil)
			values := validValues()
			delete(values, missing)
			fill(t, c, values)
			if c.IsValid() {
				t.Fatalf("IsValid() = true with %q absent", missing)
			}
			if err := c.UpdateField(missing, validValues()[missing]); err != nil {
				t.Fatalf("UpdateField() error = %v", err)
			}
			if !c.IsValid() {
				t.Fatalf("IsValid() = false after filling %q", missing)
			}
		})
	}
}

func TestUpdateFieldCoercion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		field   Field
		raw     string
		wantRaw string
	}{
		{name: "integer age", field: FieldAge, raw: "24", wantRaw: "24"},
		{name: "trimmed decimal weight", field: FieldWeightKg, raw: " 66.25 ", wantRaw: "66.25"},
		{name: "non numeric age", field: FieldAge, raw: "abc", wantRaw: ""},
		{name: "nan height", field: FieldHeightCm, raw: "NaN", wantRaw: ""},
		{name: "infinite weight", field: FieldWeightKg, raw: "+Inf", wantRaw: ""},
		{name: "empty age", field: FieldAge, raw: "", wantRaw: ""},
		{name: "zero injuries", field: FieldPreviousInjuries, raw: "0", wantRaw: "0"},
		{name: "one injury", field: FieldPreviousInjuries, raw: "1", wantRaw: "1"},
		{name: "two injuries", field: FieldPreviousInjuries, raw: "2", wantRaw: ""},
		{name: "fractional injuries", field: FieldPreviousInjuries, raw: "0.5", wantRaw: ""},
		{name: "high intensity", field: FieldTrainingIntensity, raw: "High", wantRaw: "High"},
		{name: "lowercase intensity", field: FieldTrainingIntensity, raw: "medium", wantRaw: ""},
		{name: "unknown intensity", field: FieldTrainingIntensity, raw: "Extreme", wantRaw: ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := NewController(nil)
			if err := c.UpdateField(tc.field, tc.raw); err != nil {
				t.Fatalf("UpdateField() error = %v", err)
			}
			if got := c.Input().Raw(tc.field); got != tc.wantRaw {
				t.Fatalf("Raw(%q) = %q, want %q", tc.field, got, tc.wantRaw)
			}
		})
	}
}

func TestUpdateFieldNonNumericAgeNeverValidates(t *testing.T) {
	t.Parallel()

	c := NewController(nil)
	fill(t, c, validValues())
	if !c.IsValid() {
		t.Fatal("IsValid() = false for complete input")
	}
	if err := c.UpdateField(FieldAge, "abc"); err != nil {
		t.Fatalf("UpdateField() error = %v", err)
	}
	if c.IsValid() {
		t.Fatal("IsValid() = true after non-numeric age")
	}
	if c.Input().Age != nil {
		t.Fatalf("Age = %v, want absent", *c.Input().Age)
	}
}

func TestUpdateFieldClearsPreviouslyValidValue(t *testing.T) {
	t.Parallel()

	c := NewController(nil)
	fill(t, c, validValues())
	if err := c.UpdateField(FieldPreviousInjuries, "3"); err != nil {
		t.Fatalf("UpdateField() error = %v", err)
	}
	if c.Input().PreviousInjuries != nil {
		t.Fatal("PreviousInjuries kept after invalid edit")
	}
	if c.IsValid() {
		t.Fatal("IsValid() = true after invalid previous injuries")
	}
}

func TestUpdateFieldRejectsUnknownField(t *testing.T) {
	t.Parallel()

	c := NewController(nil)
	fill(t, c, validValues())
	err := c.UpdateField(Field("shoe_size"), "44")
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("UpdateField() error = %v, want %v", err, ErrUnknownField)
	}
	if !c.IsValid() {
		t.Fatal("unknown field edit changed validity")
	}
}

func TestUpdateFieldLeavesLifecycleUntouched(t *testing.T) {
	t.Parallel()

	c := NewController(nil)
	if err := c.UpdateField(FieldAge, "abc"); err != nil {
		t.Fatalf("UpdateField() error = %v", err)
	}
	if got := c.State().Phase; got != PhaseIdle {
		t.Fatalf("Phase = %q, want %q", got, PhaseIdle)
	}
}

func TestParseFieldAcceptsWireKeys(t *testing.T) {
	t.Parallel()

	cases := map[string]Field{
		"age":                FieldAge,
		"Player_Age":         FieldAge,
		"Player_Weight":      FieldWeightKg,
		"height_cm":          FieldHeightCm,
		"Previous_Injuries":  FieldPreviousInjuries,
		"Training_Intensity": FieldTrainingIntensity,
	}
	for raw, want := range cases {
		got, ok := ParseField(raw)
		if !ok || got != want {
			t.Fatalf("ParseField(%q) = %q, %t, want %q, true", raw, got, ok, want)
		}
	}
	if _, ok := ParseField("weight"); ok {
		t.Fatal("ParseField(weight) = ok, want unknown")
	}
}

func TestInputReturnsCopy(t *testing.T) {
	t.Parallel()

	c := NewController(nil)
	fill(t, c, validValues())
	in := c.Input()
	*in.Age = 99
	if got := c.Input().Raw(FieldAge); got != "24" {
		t.Fatalf("Raw(age) = %q after mutating copy, want %q", got, "24")
	}
}
