package actions

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrListFull  = errors.New("list limit reached")
	ErrRowIndex  = errors.New("row index out of range")
	ErrRowFormat = errors.New("invalid list rows")
)

// ListEditor manages an ordered list of rows with an optional ceiling.
// Rows keep insertion order and removal filters by index.
type ListEditor[T any] struct {
	rows []T
	max  int
	noun string
}

// NewListEditor starts an editor with the given ceiling (0 means no ceiling).
// Initial rows beyond the ceiling are kept so an over-limit list can be trimmed.
func NewListEditor[T any](max int, noun string, rows ...T) *ListEditor[T] {
	return &ListEditor[T]{rows: append([]T(nil), rows...), max: max, noun: noun}
}

func (e *ListEditor[T]) Add(row T) error {
	if !e.CanAdd() {
		return fmt.Errorf("%w: %s", ErrListFull, e.LimitNotice())
	}
	e.rows = append(e.rows, row)
	return nil
}

func (e *ListEditor[T]) Update(i int, row T) error {
	if i < 0 || i >= len(e.rows) {
		return ErrRowIndex
	}
	e.rows[i] = row
	return nil
}

func (e *ListEditor[T]) Remove(i int) error {
	if i < 0 || i >= len(e.rows) {
		return ErrRowIndex
	}
	out := make([]T, 0, len(e.rows)-1)
	for j, r := range e.rows {
		if j != i {
			out = append(out, r)
		}
	}
	e.rows = out
	return nil
}

// Rows returns a copy of the rows in order.
func (e *ListEditor[T]) Rows() []T { return append([]T(nil), e.rows...) }

func (e *ListEditor[T]) Len() int { return len(e.rows) }

func (e *ListEditor[T]) Max() int { return e.max }

// CanAdd reports whether the add affordance is enabled.
func (e *ListEditor[T]) CanAdd() bool { return e.max == 0 || len(e.rows) < e.max }

// OverLimit reports whether the list holds more rows than allowed.
func (e *ListEditor[T]) OverLimit() bool { return e.max > 0 && len(e.rows) > e.max }

// LimitNotice is shown once the ceiling is reached.
func (e *ListEditor[T]) LimitNotice() string {
	if e.CanAdd() {
		return ""
	}
	return limitNotice(e.max, e.noun)
}

func limitNotice(max int, noun string) string {
	return fmt.Sprintf("Your plan allows up to %d %s. Upgrade to add more.", max, noun)
}

// PlanLimit resolves the ceiling for plan. A missing plan falls back to the
// closest lower plan, then to the smallest configured limit. Zero means no limit.
func PlanLimit(limits map[int]int, plan int) int {
	if len(limits) == 0 {
		return 0
	}
	if v, ok := limits[plan]; ok {
		return v
	}
	plans := make([]int, 0, len(limits))
	for p := range limits {
		plans = append(plans, p)
	}
	sort.Ints(plans)
	best := limits[plans[0]]
	for _, p := range plans {
		if p < plan {
			best = limits[p]
		}
	}
	return best
}

// ChecklistItem is one row of a checklist action.
type ChecklistItem struct {
	Text     string `json:"text"`
	Required bool   `json:"required"`
}

// InformationField is one piece of information requested from the customer.
type InformationField struct {
	Label    string `json:"label"`
	Type     string `json:"type"` // text | textarea | date | file
	Required bool   `json:"required"`
}

// FeedbackQuestion is one question of a feedback request.
type FeedbackQuestion struct {
	Question string   `json:"question"`
	Type     string   `json:"type"` // rating | text | yes_no | multiple_choice
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
}

var (
	checklistItemSchema = []RowField{
		{Name: "text", Kind: "text"},
		{Name: "required", Kind: "checkbox"},
	}
	informationFieldSchema = []RowField{
		{Name: "label", Kind: "text"},
		{Name: "type", Kind: "select", Options: []string{"text", "textarea", "date", "file"}},
		{Name: "required", Kind: "checkbox"},
	}
	feedbackQuestionSchema = []RowField{
		{Name: "question", Kind: "text"},
		{Name: "type", Kind: "select", Options: []string{"rating", "text", "yes_no", "multiple_choice"}},
		{Name: "options", Kind: "text_list"},
		{Name: "required", Kind: "checkbox"},
	}
)

// ChecklistItems builds the checklist editor for a business plan.
func ChecklistItems(limits map[int]int, plan int, rows ...ChecklistItem) *ListEditor[ChecklistItem] {
	return NewListEditor(PlanLimit(limits, plan), "items", rows...)
}

// InformationRequestFields builds the requested-fields editor for a business plan.
func InformationRequestFields(limits map[int]int, plan int, rows ...InformationField) *ListEditor[InformationField] {
	return NewListEditor(PlanLimit(limits, plan), "fields", rows...)
}

// FeedbackQuestions builds the feedback questions editor for a business plan.
func FeedbackQuestions(limits map[int]int, plan int, rows ...FeedbackQuestion) *ListEditor[FeedbackQuestion] {
	return NewListEditor(PlanLimit(limits, plan), "questions", rows...)
}

// DecodeRows converts a form value (usually []any of JSON objects) into typed rows.
func DecodeRows[T any](value any) ([]T, error) {
	if value == nil {
		return nil, nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRowFormat, err)
	}
	var rows []T
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRowFormat, err)
	}
	return rows, nil
}

func (r ChecklistItem) validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return errors.New("checklist item text is required")
	}
	return nil
}

func (r InformationField) validate() error {
	if strings.TrimSpace(r.Label) == "" {
		return errors.New("field label is required")
	}
	switch r.Type {
	case "text", "textarea", "date", "file":
		return nil
	default:
		return fmt.Errorf("field type %q is not supported", r.Type)
	}
}

func (r FeedbackQuestion) validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return errors.New("question text is required")
	}
	switch r.Type {
	case "rating", "text", "yes_no":
		return nil
	case "multiple_choice":
		if len(r.Options) < 2 {
			return errors.New("multiple choice questions need at least two options")
		}
		return nil
	default:
		return fmt.Errorf("question type %q is not supported", r.Type)
	}
}

type row interface{ validate() error }

// checkList decodes a list field, validates every row and enforces the plan ceiling.
func checkList[T row](value any, limits map[int]int, plan int, noun string) ([]T, error) {
	rows, err := DecodeRows[T](value)
	if err != nil {
		return nil, err
	}
	ed := NewListEditor(PlanLimit(limits, plan), noun, rows...)
	if ed.OverLimit() {
		return nil, fmt.Errorf("%w: your plan allows up to %d %s", ErrListFull, ed.Max(), noun)
	}
	for i, r := range rows {
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return rows, nil
}
