package actions

import (
	"fmt"

	"bizhub/models"
)

// Widget is the render descriptor of one field. Clients map Kind to an input
// component and send changes back under Name.
type Widget struct {
	Name        string              `json:"name"`
	Type        models.FieldType    `json:"type"`
	Kind        string              `json:"kind"`
	Label       string              `json:"label"`
	Placeholder string              `json:"placeholder,omitempty"`
	Required    bool                `json:"required"`
	Value       any                 `json:"value"`
	Error       string              `json:"error,omitempty"`
	InputType   string              `json:"inputType,omitempty"`
	Options     []models.Option     `json:"options,omitempty"`
	CardOptions []models.CardOption `json:"cardOptions,omitempty"`
	MultiSelect bool                `json:"multiSelect,omitempty"`
	Min         *float64            `json:"min,omitempty"`
	Max         *float64            `json:"max,omitempty"`
	Accept      []string            `json:"accept,omitempty"`
	MaxSize     int64               `json:"maxSize,omitempty"`
	Multiple    bool                `json:"multiple,omitempty"`
	MaxItems    int                 `json:"maxItems,omitempty"`
	CanAdd      bool                `json:"canAdd,omitempty"`
	LimitNotice string              `json:"limitNotice,omitempty"`
	RowSchema   []RowField          `json:"rowSchema,omitempty"`
	Notice      string              `json:"notice,omitempty"`
	Sanitized   bool                `json:"sanitized,omitempty"`
}

// RowField describes one column of a repeatable-list row.
type RowField struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Options []string `json:"options,omitempty"`
}

// RenderOptions carries what a render needs beyond the field itself.
type RenderOptions struct {
	Plan int
	// Sources resolves dynamic card options keyed by FieldConfig.OptionsSource.
	Sources map[string][]models.CardOption
}

// RenderField switches on the field type and builds its widget. Unknown types
// render as a notice instead of failing.
func RenderField(f models.FieldConfig, value any, errMsg string, opts RenderOptions) Widget {
	w := Widget{
		Name:        f.Name,
		Type:        f.Type,
		Label:       f.Label,
		Placeholder: f.Placeholder,
		Required:    f.Required,
		Value:       value,
		Error:       errMsg,
	}
	if f.Validation != nil {
		w.Min, w.Max = f.Validation.Min, f.Validation.Max
	}

	switch f.Type {
	case models.FieldText:
		w.Kind, w.InputType = "input", "text"
		if f.Validation != nil && f.Validation.Custom == "email" {
			w.InputType = "email"
		}
		if f.Validation != nil && f.Validation.Custom == "phone" {
			w.InputType = "tel"
		}
	case models.FieldTextarea:
		w.Kind = "textarea"
	case models.FieldNumber:
		w.Kind, w.InputType = "input", "number"
	case models.FieldURL:
		w.Kind, w.InputType = "input", "url"
	case models.FieldDatetime:
		w.Kind, w.InputType = "input", "datetime-local"
	case models.FieldDatetimeArray:
		w.Kind, w.InputType = "datetime_list", "datetime-local"
		w.MaxItems = intBound(f.Validation)
		w.CanAdd = w.MaxItems == 0 || listLen(value) < w.MaxItems
	case models.FieldFileUpload:
		w.Kind = "file_dropzone"
		if f.FileUpload != nil {
			w.Accept = f.FileUpload.AcceptedTypes
			w.MaxSize = f.FileUpload.MaxSize
			w.Multiple = f.FileUpload.Multiple
		}
	case models.FieldRichText:
		w.Kind = "rich_text_editor"
		if s, ok := value.(string); ok && s != "" {
			w.Value = SanitizeRichText(s)
			w.Sanitized = true
		}
	case models.FieldMultiSelect:
		w.Kind, w.Options, w.MultiSelect = "multi_select", f.Options, true
	case models.FieldDateRange:
		w.Kind = "date_range_picker"
	case models.FieldSelect:
		w.Kind, w.Options = "select", f.Options
	case models.FieldCheckbox:
		w.Kind = "checkbox"
	case models.FieldTimeSlot:
		w.Kind = "time_slot_picker"
	case models.FieldSelectCards:
		w.Kind = "card_picker"
		w.CardOptions = cardOptions(f, opts)
		w.MultiSelect = f.Validation != nil && f.Validation.MultiSelect
		if len(w.CardOptions) == 0 && f.OptionsSource != "" {
			w.Notice = fmt.Sprintf("no %s configured yet", humanSource(f.OptionsSource))
		}
	case models.FieldMultiSelectPills:
		w.Kind, w.MultiSelect = "pill_picker", true
		w.Options = f.Options
		if f.OptionsSource != "" {
			for _, c := range opts.Sources[f.OptionsSource] {
				w.Options = append(w.Options, models.Option{Value: c.Value, Label: c.Title})
			}
		}
	case models.FieldFieldArray:
		w.Kind = "field_array_editor"
		w.RowSchema = informationFieldSchema
		listWidget(&w, f, value, opts.Plan, "fields")
	case models.FieldItemArray:
		w.Kind = "item_array_editor"
		w.RowSchema = checklistItemSchema
		listWidget(&w, f, value, opts.Plan, "items")
	case models.FieldQuestionArray:
		w.Kind = "question_array_editor"
		w.RowSchema = feedbackQuestionSchema
		listWidget(&w, f, value, opts.Plan, "questions")
	default:
		w.Kind = "notice"
		w.Notice = fmt.Sprintf("unsupported field type: %s", f.Type)
	}
	return w
}

func listWidget(w *Widget, f models.FieldConfig, value any, plan int, noun string) {
	w.MaxItems = PlanLimit(f.PlanLimits, plan)
	n := listLen(value)
	w.CanAdd = w.MaxItems == 0 || n < w.MaxItems
	if !w.CanAdd {
		w.LimitNotice = limitNotice(w.MaxItems, noun)
	}
}

func cardOptions(f models.FieldConfig, opts RenderOptions) []models.CardOption {
	out := append([]models.CardOption(nil), f.CardOptions...)
	if f.OptionsSource != "" {
		out = append(out, opts.Sources[f.OptionsSource]...)
	}
	return out
}

func humanSource(source string) string {
	switch source {
	case "payment_methods":
		return "payment methods"
	case "platforms":
		return "platforms"
	default:
		return source
	}
}

func intBound(v *models.Validation) int {
	if v == nil || v.Max == nil {
		return 0
	}
	return int(*v.Max)
}

func listLen(value any) int {
	list, _ := asList(value)
	return len(list)
}
