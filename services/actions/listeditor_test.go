package actions

import (
	"testing"

	"bizhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanLimit(t *testing.T) {
	limits := map[int]int{models.PlanStarter: 3, models.PlanPro: 10, models.PlanBusiness: 20}
	assert.Equal(t, 10, PlanLimit(limits, models.PlanPro))
	assert.Equal(t, 3, PlanLimit(limits, models.PlanFree), "below every plan uses the smallest")
	assert.Equal(t, 20, PlanLimit(limits, 7), "above every plan uses the closest lower")
	assert.Equal(t, 0, PlanLimit(nil, models.PlanPro))

	gap := map[int]int{models.PlanFree: 2, models.PlanBusiness: 50}
	assert.Equal(t, 2, PlanLimit(gap, models.PlanPro))
}

func TestListEditorCeiling(t *testing.T) {
	ed := ChecklistItems(map[int]int{models.PlanFree: 2}, models.PlanFree)
	require.NoError(t, ed.Add(ChecklistItem{Text: "one"}))
	assert.True(t, ed.CanAdd())
	assert.Empty(t, ed.LimitNotice())

	require.NoError(t, ed.Add(ChecklistItem{Text: "two"}))
	assert.False(t, ed.CanAdd())
	assert.Equal(t, "Your plan allows up to 2 items. Upgrade to add more.", ed.LimitNotice())

	err := ed.Add(ChecklistItem{Text: "three"})
	assert.ErrorIs(t, err, ErrListFull)
	assert.Equal(t, 2, ed.Len())
}

func TestListEditorUpdateRemoveKeepOrder(t *testing.T) {
	ed := NewListEditor(0, "fields",
		InformationField{Label: "a", Type: "text"},
		InformationField{Label: "b", Type: "date"},
		InformationField{Label: "c", Type: "file"},
	)
	require.NoError(t, ed.Update(1, InformationField{Label: "B", Type: "textarea"}))
	require.NoError(t, ed.Remove(0))
	assert.Equal(t, []InformationField{{Label: "B", Type: "textarea"}, {Label: "c", Type: "file"}}, ed.Rows())

	assert.ErrorIs(t, ed.Remove(5), ErrRowIndex)
	assert.ErrorIs(t, ed.Update(-1, InformationField{}), ErrRowIndex)
	assert.True(t, ed.CanAdd(), "zero ceiling is unlimited")
}

func TestListEditorOverLimitAfterDowngrade(t *testing.T) {
	rows := []FeedbackQuestion{{Question: "a", Type: "text"}, {Question: "b", Type: "text"}, {Question: "c", Type: "text"}}
	ed := FeedbackQuestions(map[int]int{models.PlanStarter: 2}, models.PlanStarter, rows...)
	assert.True(t, ed.OverLimit())
	require.NoError(t, ed.Remove(2))
	assert.False(t, ed.OverLimit())
}

func TestDecodeRows(t *testing.T) {
	rows, err := DecodeRows[ChecklistItem]([]any{
		map[string]any{"text": "Bring ID", "required": true},
	})
	require.NoError(t, err)
	assert.Equal(t, []ChecklistItem{{Text: "Bring ID", Required: true}}, rows)

	_, err = DecodeRows[ChecklistItem]("not a list")
	assert.ErrorIs(t, err, ErrRowFormat)
}

func TestRowValidation(t *testing.T) {
	assert.Error(t, ChecklistItem{Text: " "}.validate())
	assert.Error(t, InformationField{Label: "x", Type: "video"}.validate())
	assert.NoError(t, InformationField{Label: "x", Type: "date"}.validate())
	assert.Error(t, FeedbackQuestion{Question: "pick", Type: "multiple_choice", Options: []string{"only"}}.validate())
	assert.NoError(t, FeedbackQuestion{Question: "pick", Type: "multiple_choice", Options: []string{"a", "b"}}.validate())
}
