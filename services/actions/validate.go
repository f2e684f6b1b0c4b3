package actions

import (
	"fmt"
	"math"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"bizhub/models"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9 ()\-]{7,20}$`)

// datetimeLayouts are the accepted encodings of datetime values.
var datetimeLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02T15:04:05"}

// ValidateData checks data against every visible field of cfg and returns one
// message per invalid field. Required fields that are hidden are never reported.
func ValidateData(cfg models.ActionConfig, data map[string]any, now time.Time) map[string]string {
	errs := map[string]string{}
	for _, f := range cfg.Fields {
		if !Visible(f, data) {
			continue
		}
		value, present := data[f.Name]
		if IsEmpty(f, value) || !present {
			if f.Required {
				errs[f.Name] = requiredMessage(f)
			}
			continue
		}
		if msg := checkConstraints(f, value, now); msg != "" {
			errs[f.Name] = msg
		}
	}
	return errs
}

func requiredMessage(f models.FieldConfig) string {
	if f.Type == models.FieldCheckbox {
		return fmt.Sprintf("%s must be checked", label(f))
	}
	return fmt.Sprintf("%s is required", label(f))
}

func label(f models.FieldConfig) string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// IsEmpty is the type-aware emptiness check used for required fields.
func IsEmpty(f models.FieldConfig, value any) bool {
	switch f.Type {
	case models.FieldText, models.FieldTextarea, models.FieldURL, models.FieldDatetime,
		models.FieldRichText, models.FieldSelect, models.FieldTimeSlot:
		return emptyString(value)
	case models.FieldDatetimeArray, models.FieldFileUpload, models.FieldMultiSelect,
		models.FieldMultiSelectPills, models.FieldFieldArray, models.FieldItemArray, models.FieldQuestionArray:
		list, ok := asList(value)
		return !ok || len(list) == 0
	case models.FieldSelectCards:
		if list, ok := asList(value); ok {
			return len(list) == 0
		}
		return emptyString(value)
	case models.FieldNumber:
		n, ok := toFloat(value)
		return !ok || math.IsNaN(n)
	case models.FieldCheckbox:
		b, ok := value.(bool)
		return !ok || !b
	case models.FieldDateRange:
		if value == nil {
			return true
		}
		if m, ok := value.(map[string]any); ok {
			return emptyString(m["start"]) || emptyString(m["end"])
		}
		return false
	default:
		return value == nil
	}
}

func emptyString(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) == ""
}

// checkConstraints applies the optional validation of a populated value.
func checkConstraints(f models.FieldConfig, value any, now time.Time) string {
	v := f.Validation
	switch f.Type {
	case models.FieldNumber:
		n, _ := toFloat(value)
		if v != nil && v.Min != nil && n < *v.Min {
			return fmt.Sprintf("%s must be at least %g", label(f), *v.Min)
		}
		if v != nil && v.Max != nil && n > *v.Max {
			return fmt.Sprintf("%s must be at most %g", label(f), *v.Max)
		}
	case models.FieldURL:
		s, _ := value.(string)
		u, err := url.ParseRequestURI(strings.TrimSpace(s))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Sprintf("%s must be a valid http(s) link", label(f))
		}
	case models.FieldDatetime:
		s, _ := value.(string)
		t, ok := parseDatetime(s)
		if !ok {
			return fmt.Sprintf("%s must be a date and time", label(f))
		}
		if v != nil && v.Custom == "future" && !t.After(now) {
			return fmt.Sprintf("%s must be in the future", label(f))
		}
		return ""
	case models.FieldDatetimeArray:
		list, _ := asList(value)
		for _, item := range list {
			s, _ := item.(string)
			t, ok := parseDatetime(s)
			if !ok {
				return fmt.Sprintf("%s contains an invalid date and time", label(f))
			}
			if v != nil && v.Custom == "future" && !t.After(now) {
				return fmt.Sprintf("%s must all be in the future", label(f))
			}
		}
	case models.FieldSelect:
		if len(f.Options) > 0 && !hasOption(f.Options, value) {
			return fmt.Sprintf("%s has an unknown option", label(f))
		}
	case models.FieldMultiSelect, models.FieldMultiSelectPills:
		if len(f.Options) > 0 {
			list, _ := asList(value)
			for _, item := range list {
				if !hasOption(f.Options, item) {
					return fmt.Sprintf("%s has an unknown option", label(f))
				}
			}
		}
	case models.FieldSelectCards:
		if len(f.CardOptions) > 0 {
			for _, item := range toSlice(value) {
				if !hasCard(f.CardOptions, item) {
					return fmt.Sprintf("%s has an unknown option", label(f))
				}
			}
		}
		if v != nil && !v.MultiSelect {
			if _, isList := asList(value); isList {
				return fmt.Sprintf("%s accepts a single choice", label(f))
			}
		}
	}

	if v == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		n := float64(utf8.RuneCountInString(strings.TrimSpace(s)))
		if f.Type != models.FieldNumber {
			if v.Min != nil && n < *v.Min {
				return fmt.Sprintf("%s must be at least %g characters", label(f), *v.Min)
			}
			if v.Max != nil && n > *v.Max {
				return fmt.Sprintf("%s must be at most %g characters", label(f), *v.Max)
			}
		}
		if v.Pattern != "" {
			re, err := regexp.Compile(v.Pattern)
			if err != nil || !re.MatchString(s) {
				return fmt.Sprintf("%s has an invalid format", label(f))
			}
		}
		switch v.Custom {
		case "email":
			if _, err := mail.ParseAddress(strings.TrimSpace(s)); err != nil {
				return fmt.Sprintf("%s must be a valid email", label(f))
			}
		case "phone":
			if !phonePattern.MatchString(strings.TrimSpace(s)) {
				return fmt.Sprintf("%s must be a valid phone number", label(f))
			}
		}
	} else if list, ok := asList(value); ok && f.Type != models.FieldSelectCards {
		if v.Min != nil && float64(len(list)) < *v.Min {
			return fmt.Sprintf("%s needs at least %g entries", label(f), *v.Min)
		}
		if v.Max != nil && float64(len(list)) > *v.Max {
			return fmt.Sprintf("%s allows at most %g entries", label(f), *v.Max)
		}
	}
	return ""
}

func parseDatetime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func hasOption(opts []models.Option, v any) bool {
	for _, o := range opts {
		if scalarEqual(o.Value, v) {
			return true
		}
	}
	return false
}

func hasCard(opts []models.CardOption, v any) bool {
	for _, o := range opts {
		if scalarEqual(o.Value, v) {
			return true
		}
	}
	return false
}
