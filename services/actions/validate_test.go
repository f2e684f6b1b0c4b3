package actions

import (
	"strings"
	"testing"
	"time"

	"bizhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func appointmentConfig(t *testing.T) models.ActionConfig {
	t.Helper()
	cfg := Bootstrap(nil).Get(TypeAppointmentScheduling)
	require.NotNil(t, cfg)
	return *cfg
}

func validAppointment() map[string]any {
	return map[string]any{
		FieldActionTitle:       "Kick-off",
		FieldActionDescription: "Let's meet",
		"appointment_type":     "in_person",
		"address":              "1 Main St",
		"duration":             float64(60),
		"proposed_times":       []any{"2026-11-01T10:00:00Z"},
	}
}

func TestVisibleOperators(t *testing.T) {
	eq := models.FieldConfig{Conditional: &models.Condition{DependsOn: "kind", Op: models.CondEquals, Value: "a"}}
	neq := models.FieldConfig{Conditional: &models.Condition{DependsOn: "kind", Op: models.CondNotEquals, Value: "a"}}
	in := models.FieldConfig{Conditional: &models.Condition{DependsOn: "kind", Op: models.CondIn, Value: []string{"b", "c"}}}
	odd := models.FieldConfig{Conditional: &models.Condition{DependsOn: "kind", Op: "startsWith", Value: "a"}}

	assert.True(t, Visible(models.FieldConfig{}, nil))
	assert.True(t, Visible(eq, map[string]any{"kind": "a"}))
	assert.False(t, Visible(eq, map[string]any{"kind": "b"}))
	assert.False(t, Visible(eq, map[string]any{}))
	assert.True(t, Visible(neq, map[string]any{"kind": "b"}))
	assert.False(t, Visible(neq, map[string]any{"kind": "a"}))
	assert.True(t, Visible(in, map[string]any{"kind": "c"}))
	assert.False(t, Visible(in, map[string]any{"kind": "a"}))
	assert.True(t, Visible(odd, map[string]any{"kind": "z"}))
}

func TestVisibleMatchesListsAndNumbers(t *testing.T) {
	eq := models.FieldConfig{Conditional: &models.Condition{DependsOn: "kinds", Value: "a"}}
	assert.True(t, Visible(eq, map[string]any{"kinds": []any{"x", "a"}}))
	assert.False(t, Visible(eq, map[string]any{"kinds": []any{"x"}}))

	num := models.FieldConfig{Conditional: &models.Condition{DependsOn: "n", Op: models.CondEquals, Value: 3}}
	assert.True(t, Visible(num, map[string]any{"n": float64(3)}))
	assert.True(t, Visible(num, map[string]any{"n": "3"}))
}

func TestVisibleComparesStringsVerbatim(t *testing.T) {
	code := models.FieldConfig{Conditional: &models.Condition{DependsOn: "code", Op: models.CondEquals, Value: "1"}}
	assert.False(t, Visible(code, map[string]any{"code": "01"}))
	assert.False(t, Visible(code, map[string]any{"code": "1.0"}))
	assert.True(t, Visible(code, map[string]any{"code": "1"}))
	assert.True(t, Visible(code, map[string]any{"code": float64(1)}), "a number still matches its string form")

	nan := models.FieldConfig{Conditional: &models.Condition{DependsOn: "v", Op: models.CondIn, Value: []string{"NaN", "Inf"}}}
	assert.True(t, Visible(nan, map[string]any{"v": "NaN"}))
	assert.True(t, Visible(nan, map[string]any{"v": "Inf"}))
}

func TestValidateDataAcceptsValidForm(t *testing.T) {
	errs := ValidateData(appointmentConfig(t), validAppointment(), testNow)
	assert.Empty(t, errs)
}

func TestValidateDataSkipsHiddenRequiredFields(t *testing.T) {
	cfg := appointmentConfig(t)
	data := validAppointment()
	data["appointment_type"] = "virtual"
	delete(data, "address")

	errs := ValidateData(cfg, data, testNow)
	assert.NotContains(t, errs, "address")
	assert.NotContains(t, errs, "phone_number")
	assert.Contains(t, errs, "platform", "the visible virtual-only field is required")
}

func TestValidateDataRequiredMessages(t *testing.T) {
	cfg := appointmentConfig(t)
	errs := ValidateData(cfg, map[string]any{"appointment_type": "in_person"}, testNow)
	assert.Equal(t, "Title is required", errs[FieldActionTitle])
	assert.Equal(t, "Address is required", errs["address"])
	assert.Contains(t, errs, "proposed_times")
	assert.Contains(t, errs, "duration")

	sig := *Bootstrap(nil).Get(TypeSignatureRequest)
	errs = ValidateData(sig, map[string]any{"agree_terms": false}, testNow)
	assert.Equal(t, "I am authorised to request this signature must be checked", errs["agree_terms"])
}

func TestValidateDataConstraints(t *testing.T) {
	cfg := appointmentConfig(t)
	cases := []struct {
		name  string
		field string
		value any
	}{
		{"duration below min", "duration", float64(5)},
		{"duration above max", "duration", float64(600)},
		{"past proposed time", "proposed_times", []any{"2020-01-01T10:00:00Z"}},
		{"bad proposed time", "proposed_times", []any{"soon"}},
		{"too many proposed times", "proposed_times", []any{
			"2026-11-01T10:00:00Z", "2026-11-02T10:00:00Z", "2026-11-03T10:00:00Z",
			"2026-11-04T10:00:00Z", "2026-11-05T10:00:00Z", "2026-11-06T10:00:00Z"}},
		{"unknown card", "appointment_type", "carrier_pigeon"},
		{"title too long", FieldActionTitle, strings.Repeat("x", 121)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := validAppointment()
			data[tc.field] = tc.value
			errs := ValidateData(cfg, data, testNow)
			assert.Contains(t, errs, tc.field)
		})
	}
}

func TestValidateDataCustomChecks(t *testing.T) {
	sig := *Bootstrap(nil).Get(TypeSignatureRequest)
	data := map[string]any{
		FieldActionTitle:       "Sign",
		FieldActionDescription: "Please sign",
		"document":             []any{map[string]any{"name": "a.pdf", "type": "application/pdf", "size": 10}},
		"signer_email":         "not-an-email",
		"agree_terms":          true,
	}
	errs := ValidateData(sig, data, testNow)
	assert.Equal(t, "Signer email must be a valid email", errs["signer_email"])

	data["signer_email"] = "signer@example.com"
	assert.Empty(t, ValidateData(sig, data, testNow))

	link := *Bootstrap(nil).Get(TypeResourceLink)
	errs = ValidateData(link, map[string]any{
		FieldActionTitle: "t", FieldActionDescription: "d", "resource_url": "ftp://files.example.com",
	}, testNow)
	assert.Contains(t, errs, "resource_url")
}

func TestValidateDataSelectCardsSingleVersusMulti(t *testing.T) {
	single := models.FieldConfig{Name: "pick", Type: models.FieldSelectCards,
		CardOptions: []models.CardOption{{Value: "a"}, {Value: "b"}},
		Validation:  &models.Validation{MultiSelect: false}}
	cfg := models.ActionConfig{Fields: []models.FieldConfig{single}}
	assert.Contains(t, ValidateData(cfg, map[string]any{"pick": []any{"a", "b"}}, testNow), "pick")
	assert.Empty(t, ValidateData(cfg, map[string]any{"pick": "a"}, testNow))

	multi := single
	multi.Validation = &models.Validation{MultiSelect: true}
	cfg = models.ActionConfig{Fields: []models.FieldConfig{multi}}
	assert.Empty(t, ValidateData(cfg, map[string]any{"pick": []any{"a", "b"}}, testNow))
}

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		typ   models.FieldType
		value any
		empty bool
	}{
		{models.FieldText, "  ", true},
		{models.FieldText, "x", false},
		{models.FieldNumber, nil, true},
		{models.FieldNumber, "abc", true},
		{models.FieldNumber, float64(0), false},
		{models.FieldCheckbox, false, true},
		{models.FieldCheckbox, true, false},
		{models.FieldItemArray, []any{}, true},
		{models.FieldItemArray, []any{map[string]any{"text": "x"}}, false},
		{models.FieldSelectCards, "", true},
		{models.FieldSelectCards, []any{}, true},
		{models.FieldSelectCards, []any{"a"}, false},
		{models.FieldDateRange, nil, true},
		{models.FieldDateRange, map[string]any{"start": "2026-01-01"}, true},
		{models.FieldDateRange, map[string]any{"start": "2026-01-01", "end": "2026-01-02"}, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.empty, IsEmpty(models.FieldConfig{Type: tc.typ}, tc.value), "%s %v", tc.typ, tc.value)
	}
}

func TestMilestoneDelayReasonUsesInCondition(t *testing.T) {
	cfg := *Bootstrap(nil).Get(TypeMilestoneUpdate)
	data := map[string]any{
		FieldActionTitle: "t", FieldActionDescription: "d",
		"milestone_name": "Design", "progress": float64(40), "status": "delayed",
	}
	assert.Contains(t, ValidateData(cfg, data, testNow), "delay_reason")

	data["status"] = "on_track"
	assert.Empty(t, ValidateData(cfg, data, testNow))
}

// sampleValue returns a populated value that passes every check of f.
func sampleValue(f models.FieldConfig) any {
	future := testNow.Add(24 * time.Hour).Format(time.RFC3339)
	multi := f.Validation != nil && f.Validation.MultiSelect
	switch f.Type {
	case models.FieldSelect:
		return f.Options[0].Value
	case models.FieldMultiSelect, models.FieldMultiSelectPills:
		return []any{f.Options[0].Value}
	case models.FieldSelectCards:
		choice := "card"
		if len(f.CardOptions) > 0 {
			choice = f.CardOptions[0].Value
		}
		if multi {
			return []any{choice}
		}
		return choice
	case models.FieldNumber:
		if f.Validation != nil && f.Validation.Min != nil {
			return *f.Validation.Min
		}
		return float64(1)
	case models.FieldURL:
		return "https://example.com/guide"
	case models.FieldRichText:
		return "<p>Sample</p>"
	case models.FieldDatetime:
		return future
	case models.FieldDatetimeArray:
		return []any{future}
	case models.FieldCheckbox:
		return true
	case models.FieldFileUpload:
		return []any{map[string]any{"name": "brief.pdf", "type": "application/pdf", "size": float64(1024)}}
	case models.FieldFieldArray, models.FieldItemArray, models.FieldQuestionArray:
		return []any{map[string]any{"label": "Sample"}}
	case models.FieldDateRange:
		return map[string]any{"start": "2026-11-01", "end": "2026-11-08"}
	case models.FieldTimeSlot:
		return "09:00"
	}
	if f.Validation != nil {
		switch f.Validation.Custom {
		case "email":
			return "ada@example.com"
		case "phone":
			return "+1 555 0100"
		}
	}
	return "Sample"
}

func TestRequiredFieldsOfEveryActionType(t *testing.T) {
	reg := Bootstrap(nil)
	for _, actionType := range reg.Types() {
		cfg := *reg.Get(actionType)
		t.Run(actionType, func(t *testing.T) {
			full := map[string]any{}
			for _, f := range cfg.Fields {
				full[f.Name] = sampleValue(f)
			}
			require.Empty(t, ValidateData(cfg, full, testNow), "populated form is valid")

			for _, f := range cfg.Fields {
				if !f.Required || f.Conditional != nil {
					continue
				}
				want := map[string]string{f.Name: requiredMessage(f)}

				data := copyData(full)
				delete(data, f.Name)
				assert.Equal(t, want, ValidateData(cfg, data, testNow), "%s missing", f.Name)

				if f.Type != models.FieldNumber {
					data[f.Name] = ZeroValue(f)
					assert.Equal(t, want, ValidateData(cfg, data, testNow), "%s blank", f.Name)
				}

				data[f.Name] = full[f.Name]
				assert.NotContains(t, ValidateData(cfg, data, testNow), f.Name, "%s populated", f.Name)
			}
		})
	}
}

func copyData(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
