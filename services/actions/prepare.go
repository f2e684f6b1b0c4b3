package actions

import (
	"time"

	"bizhub/models"
)

// Prepare validates submitted form data for a business plan and returns the
// values to store: hidden fields dropped, rich text sanitised and list rows
// decoded. errs is keyed by field name and empty on success.
func Prepare(cfg models.ActionConfig, data map[string]any, plan int, now time.Time) (map[string]any, map[string]string) {
	errs := ValidateData(cfg, data, now)
	clean := make(map[string]any, len(cfg.Fields))
	for _, f := range cfg.Fields {
		if !Visible(f, data) {
			continue
		}
		value, ok := data[f.Name]
		if !ok {
			continue
		}
		if _, failed := errs[f.Name]; failed {
			continue
		}
		switch f.Type {
		case models.FieldRichText:
			if s, ok := value.(string); ok {
				value = SanitizeRichText(s)
				if f.Required && RichTextBlank(value.(string)) {
					errs[f.Name] = requiredMessage(f)
					continue
				}
			}
		case models.FieldItemArray:
			rows, err := checkList[ChecklistItem](value, f.PlanLimits, plan, "items")
			if err != nil {
				errs[f.Name] = err.Error()
				continue
			}
			value = rows
		case models.FieldFieldArray:
			rows, err := checkList[InformationField](value, f.PlanLimits, plan, "fields")
			if err != nil {
				errs[f.Name] = err.Error()
				continue
			}
			value = rows
		case models.FieldQuestionArray:
			rows, err := checkList[FeedbackQuestion](value, f.PlanLimits, plan, "questions")
			if err != nil {
				errs[f.Name] = err.Error()
				continue
			}
			value = rows
		}
		clean[f.Name] = value
	}
	return clean, errs
}
