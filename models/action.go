package models

import "time"

// FieldType is the closed set of input kinds an action form can declare.
type FieldType string

const (
	FieldText             FieldType = "text"
	FieldTextarea         FieldType = "textarea"
	FieldNumber           FieldType = "number"
	FieldURL              FieldType = "url"
	FieldDatetime         FieldType = "datetime"
	FieldDatetimeArray    FieldType = "datetime_array"
	FieldFileUpload       FieldType = "file_upload"
	FieldRichText         FieldType = "rich_text"
	FieldMultiSelect      FieldType = "multi_select"
	FieldDateRange        FieldType = "date_range"
	FieldSelect           FieldType = "select"
	FieldCheckbox         FieldType = "checkbox"
	FieldTimeSlot         FieldType = "time_slot"
	FieldSelectCards      FieldType = "select_cards"
	FieldMultiSelectPills FieldType = "multi_select_pills"
	FieldFieldArray       FieldType = "field_array"
	FieldItemArray        FieldType = "item_array"
	FieldQuestionArray    FieldType = "question_array"
)

// Condition operators.
const (
	CondEquals    = "equals"
	CondNotEquals = "notEquals"
	CondIn        = "in"
)

// Option is a plain select option.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CardOption is a richer option rendered as a card.
type CardOption struct {
	Value       string `json:"value"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// Condition makes a field visible only when the field it depends on matches.
type Condition struct {
	DependsOn string `json:"dependsOn"`
	Op        string `json:"op"`
	Value     any    `json:"value"`
}

// Validation holds the optional constraints of a field.
type Validation struct {
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Pattern     string   `json:"pattern,omitempty"`
	MultiSelect bool     `json:"multiSelect,omitempty"`
	Custom      string   `json:"custom,omitempty"`
}

// FileUploadSpec restricts what a file_upload field accepts.
type FileUploadSpec struct {
	AcceptedTypes []string `json:"acceptedTypes"` // MIME types, "image/*" wildcards or ".ext"
	MaxSize       int64    `json:"maxSize"`       // bytes
	Multiple      bool     `json:"multiple"`
}

// FieldConfig declares one input of an action form.
type FieldConfig struct {
	Name          string          `json:"name"`
	Type          FieldType       `json:"type"`
	Required      bool            `json:"required"`
	Label         string          `json:"label"`
	Placeholder   string          `json:"placeholder,omitempty"`
	Options       []Option        `json:"options,omitempty"`
	CardOptions   []CardOption    `json:"cardOptions,omitempty"`
	OptionsSource string          `json:"optionsSource,omitempty"` // "payment_methods" | "platforms"
	Conditional   *Condition      `json:"conditional,omitempty"`
	Validation    *Validation     `json:"validation,omitempty"`
	PlanLimits    map[int]int     `json:"planLimits,omitempty"` // plan -> max rows
	FileUpload    *FileUploadSpec `json:"fileUpload,omitempty"`
}

// ActionConfig is the schema of one action type.
type ActionConfig struct {
	ActionType     string        `json:"actionType"`
	DisplayName    string        `json:"displayName"`
	Description    string        `json:"description"`
	Icon           string        `json:"icon"`
	Color          string        `json:"color"`
	AvailablePlans []int         `json:"availablePlans"`
	Fields         []FieldConfig `json:"fields"`
	PlanLimits     map[int]int   `json:"planLimits,omitempty"` // plan -> max actions per board
}

// Field returns the field config with the given name.
func (c ActionConfig) Field(name string) (FieldConfig, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldConfig{}, false
}

// AvailableOn reports whether the action type can be used on the given plan.
func (c ActionConfig) AvailableOn(plan int) bool {
	for _, p := range c.AvailablePlans {
		if p == plan {
			return true
		}
	}
	return false
}

// FormState is the state of one form instance.
type FormState struct {
	FormData map[string]any    `json:"formData"`
	Errors   map[string]string `json:"errors"`
	Touched  map[string]bool   `json:"touched"`
}

// Board action statuses.
const (
	ActionStatusPendingUpload = "pending_upload"
	ActionStatusSent          = "sent"
	ActionStatusCompleted     = "completed"
)

// Document is a file attached to a board action.
type Document struct {
	PublicID    string    `bson:"publicId" json:"publicId"`
	URL         string    `bson:"url" json:"url"`
	FileName    string    `bson:"fileName" json:"fileName"`
	ContentType string    `bson:"contentType" json:"contentType"`
	Size        int64     `bson:"size" json:"size"`
	UploadedAt  time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// ActionPayment links a payment_request action to its payment intent.
type ActionPayment struct {
	IntentID     string  `bson:"intentId" json:"intentId"`
	ClientSecret string  `bson:"clientSecret" json:"clientSecret,omitempty"`
	Amount       float64 `bson:"amount" json:"amount"`
	Currency     string  `bson:"currency" json:"currency"`
	Status       string  `bson:"status" json:"status"`
}

// BoardAction is a configured action attached to a service fulfillment board.
type BoardAction struct {
	ID          string         `bson:"id" json:"id"`
	BusinessID  string         `bson:"businessId" json:"businessId"`
	BoardRef    string         `bson:"boardRef" json:"boardRef"`
	ActionType  string         `bson:"actionType" json:"actionType"`
	Title       string         `bson:"title" json:"title"`
	Description string         `bson:"description" json:"description"`
	Data        map[string]any `bson:"data" json:"data"`
	Status      string         `bson:"status" json:"status"`
	Documents   []Document     `bson:"documents,omitempty" json:"documents,omitempty"`
	Payment     *ActionPayment `bson:"payment,omitempty" json:"payment,omitempty"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"updatedAt"`
}
