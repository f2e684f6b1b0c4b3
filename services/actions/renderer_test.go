package actions

import (
	"testing"

	"bizhub/models"

	"github.com/stretchr/testify/assert"
)

func TestRenderFieldUnsupportedType(t *testing.T) {
	w := RenderField(models.FieldConfig{Name: "x", Type: "hologram"}, nil, "", RenderOptions{})
	assert.Equal(t, "notice", w.Kind)
	assert.Equal(t, "unsupported field type: hologram", w.Notice)
}

func TestRenderFieldKinds(t *testing.T) {
	cases := map[models.FieldType]string{
		models.FieldText:             "input",
		models.FieldTextarea:         "textarea",
		models.FieldNumber:           "input",
		models.FieldURL:              "input",
		models.FieldDatetime:         "input",
		models.FieldDatetimeArray:    "datetime_list",
		models.FieldFileUpload:       "file_dropzone",
		models.FieldRichText:         "rich_text_editor",
		models.FieldMultiSelect:      "multi_select",
		models.FieldDateRange:        "date_range_picker",
		models.FieldSelect:           "select",
		models.FieldCheckbox:         "checkbox",
		models.FieldTimeSlot:         "time_slot_picker",
		models.FieldSelectCards:      "card_picker",
		models.FieldMultiSelectPills: "pill_picker",
		models.FieldFieldArray:       "field_array_editor",
		models.FieldItemArray:        "item_array_editor",
		models.FieldQuestionArray:    "question_array_editor",
	}
	for typ, kind := range cases {
		w := RenderField(models.FieldConfig{Name: "f", Type: typ}, nil, "", RenderOptions{})
		assert.Equal(t, kind, w.Kind, typ)
	}
}

func TestRenderSelectCardsWithSources(t *testing.T) {
	f := models.FieldConfig{Name: "payment_methods", Type: models.FieldSelectCards, OptionsSource: "payment_methods",
		Validation: &models.Validation{MultiSelect: true}}

	empty := RenderField(f, []any{}, "", RenderOptions{})
	assert.Equal(t, "no payment methods configured yet", empty.Notice)

	w := RenderField(f, []any{}, "", RenderOptions{Sources: map[string][]models.CardOption{
		"payment_methods": {{Value: "card", Title: "Card"}},
	}})
	assert.Empty(t, w.Notice)
	assert.True(t, w.MultiSelect)
	assert.Equal(t, []models.CardOption{{Value: "card", Title: "Card"}}, w.CardOptions)
}

func TestRenderListShowsPlanNotice(t *testing.T) {
	f := models.FieldConfig{Name: "questions", Type: models.FieldQuestionArray,
		PlanLimits: map[int]int{models.PlanStarter: 2}}
	value := []any{map[string]any{}, map[string]any{}}

	w := RenderField(f, value, "", RenderOptions{Plan: models.PlanStarter})
	assert.False(t, w.CanAdd)
	assert.Equal(t, 2, w.MaxItems)
	assert.Equal(t, "Your plan allows up to 2 questions. Upgrade to add more.", w.LimitNotice)
	assert.Len(t, w.RowSchema, 4)
}

func TestRenderRichTextIsSanitized(t *testing.T) {
	w := RenderField(models.FieldConfig{Name: "body", Type: models.FieldRichText},
		`<a href="https://example.com" onclick="steal()">x</a>`, "", RenderOptions{})
	assert.True(t, w.Sanitized)
	assert.NotContains(t, w.Value, "onclick")
	assert.Contains(t, w.Value, `rel="nofollow`)
}

func TestSanitizeRichTextKeepsFormatting(t *testing.T) {
	out := SanitizeRichText(`<p class="lead"><em>hi</em></p><iframe src="x"></iframe>`)
	assert.Equal(t, `<p class="lead"><em>hi</em></p>`, out)
}
