package actions

import (
	"fmt"
	"time"

	"bizhub/models"
)

// Form is one instance of an action form: its config plus mutable state.
type Form struct {
	config    models.ActionConfig
	state     models.FormState
	submitted bool
	now       func() time.Time
}

// NewForm initialises form data from the action's fields: a zero value per
// field type, then localised title and description, then extraDefaults.
func NewForm(reg *Registry, actionType, locale string, extraDefaults map[string]any) (*Form, error) {
	cfg := reg.Get(actionType)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownActionType, actionType)
	}
	data := make(map[string]any, len(cfg.Fields))
	for _, f := range cfg.Fields {
		data[f.Name] = ZeroValue(f)
	}
	ph := Placeholders(locale, actionType)
	if _, ok := cfg.Field(FieldActionTitle); ok {
		data[FieldActionTitle] = ph.Title
	}
	if _, ok := cfg.Field(FieldActionDescription); ok {
		data[FieldActionDescription] = ph.Description
	}
	for k, v := range extraDefaults {
		data[k] = v
	}
	return &Form{
		config: *cfg,
		state: models.FormState{
			FormData: data,
			Errors:   map[string]string{},
			Touched:  map[string]bool{},
		},
		now: time.Now,
	}, nil
}

// ZeroValue is the initial value of a field before the user edits it.
func ZeroValue(f models.FieldConfig) any {
	switch f.Type {
	case models.FieldCheckbox:
		return false
	case models.FieldNumber:
		if f.Validation != nil && f.Validation.Min != nil {
			return *f.Validation.Min
		}
		return float64(0)
	case models.FieldDatetimeArray, models.FieldFileUpload, models.FieldMultiSelect,
		models.FieldMultiSelectPills, models.FieldFieldArray, models.FieldItemArray, models.FieldQuestionArray:
		return []any{}
	case models.FieldSelectCards:
		if f.Validation != nil && f.Validation.MultiSelect {
			return []any{}
		}
		return ""
	case models.FieldDateRange:
		return nil
	default:
		return ""
	}
}

// Config returns the action config the form was built from.
func (f *Form) Config() models.ActionConfig { return f.config }

// Data returns the current form values.
func (f *Form) Data() map[string]any { return f.state.FormData }

// State returns a copy of the form state.
func (f *Form) State() models.FormState {
	out := models.FormState{
		FormData: make(map[string]any, len(f.state.FormData)),
		Errors:   make(map[string]string, len(f.state.Errors)),
		Touched:  make(map[string]bool, len(f.state.Touched)),
	}
	for k, v := range f.state.FormData {
		out.FormData[k] = v
	}
	for k, v := range f.state.Errors {
		out.Errors[k] = v
	}
	for k, v := range f.state.Touched {
		out.Touched[k] = v
	}
	return out
}

// SetField changes one value, marks it touched and clears its error.
func (f *Form) SetField(name string, value any) {
	f.state.FormData[name] = value
	f.state.Touched[name] = true
	delete(f.state.Errors, name)
}

// SetAll applies every value of data through SetField.
func (f *Form) SetAll(data map[string]any) {
	for k, v := range data {
		f.SetField(k, v)
	}
}

// Touch marks a field as visited so its error becomes visible.
func (f *Form) Touch(name string) {
	f.state.Touched[name] = true
}

// ShouldShowField reports whether the named field is currently visible.
// Unknown fields are hidden.
func (f *Form) ShouldShowField(name string) bool {
	field, ok := f.config.Field(name)
	if !ok {
		return false
	}
	return Visible(field, f.state.FormData)
}

// Validate recomputes the errors of every visible field and reports whether
// there are none.
func (f *Form) Validate() bool {
	f.submitted = true
	f.state.Errors = ValidateData(f.config, f.state.FormData, f.now())
	return len(f.state.Errors) == 0
}

// Errors returns every current error.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string, len(f.state.Errors))
	for k, v := range f.state.Errors {
		out[k] = v
	}
	return out
}

// VisibleErrors returns the errors of touched fields, or all of them once a
// submit was attempted.
func (f *Form) VisibleErrors() map[string]string {
	out := map[string]string{}
	for k, v := range f.state.Errors {
		if f.submitted || f.state.Touched[k] {
			out[k] = v
		}
	}
	return out
}

// Render produces a widget descriptor for every visible field in order.
func (f *Form) Render(opts RenderOptions) []Widget {
	errs := f.VisibleErrors()
	out := make([]Widget, 0, len(f.config.Fields))
	for _, field := range f.config.Fields {
		if !Visible(field, f.state.FormData) {
			continue
		}
		out = append(out, RenderField(field, f.state.FormData[field.Name], errs[field.Name], opts))
	}
	return out
}
