package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SelectedItem is one chosen service item with the price captured at selection time.
type SelectedItem struct {
	Quantity  int     `bson:"quantity" json:"quantity"`
	PriceBase float64 `bson:"priceBase" json:"priceBase"`
	PriceType string  `bson:"priceType" json:"priceType"`
	PriceUnit string  `bson:"priceUnit,omitempty" json:"priceUnit,omitempty"`
}

// SelectedExtra is one chosen extra.
type SelectedExtra struct {
	Quantity int     `bson:"quantity" json:"quantity"`
	Price    float64 `bson:"price" json:"price"`
}

// Answer is a question response: either free text or a list of choices.
// On the wire it is a JSON string or a JSON array of strings.
type Answer struct {
	Text    string
	Choices []string
	multi   bool
}

// TextAnswer builds a single-value answer.
func TextAnswer(s string) Answer { return Answer{Text: s} }

// ChoiceAnswer builds a multi-value answer.
func ChoiceAnswer(choices ...string) Answer { return Answer{Choices: choices, multi: true} }

// IsMulti reports whether the answer was given as a list.
func (a Answer) IsMulti() bool { return a.multi || a.Choices != nil }

// Empty reports whether the answer carries no content.
func (a Answer) Empty() bool {
	if a.IsMulti() {
		return len(a.Choices) == 0
	}
	return strings.TrimSpace(a.Text) == ""
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.IsMulti() {
		if a.Choices == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.Choices)
	}
	return json.Marshal(a.Text)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Answer{Text: s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("answer must be a string or a list of strings")
	}
	if list == nil {
		list = []string{}
	}
	*a = Answer{Choices: list, multi: true}
	return nil
}

// SelectedDateTime holds the ISO-8601 date-times picked by the customer.
type SelectedDateTime struct {
	DateTimes []string `bson:"dateTimes" json:"dateTimes"`
}

// CustomerDetails is collected on the last wizard step.
type CustomerDetails struct {
	Name     string          `bson:"name" json:"name"`
	Email    string          `bson:"email" json:"email"`
	Phone    string          `bson:"phone,omitempty" json:"phone,omitempty"`
	Notes    string          `bson:"notes,omitempty" json:"notes,omitempty"`
	Consents map[string]bool `bson:"consents,omitempty" json:"consents,omitempty"`
}

// ServiceRequestInput is the body of the service-requests endpoint and the
// payload the wizard submits.
type ServiceRequestInput struct {
	ServiceID             string                   `json:"serviceId"`
	EventID               string                   `json:"eventId,omitempty"`
	Items                 map[string]SelectedItem  `json:"items,omitempty"`
	Extras                map[string]SelectedExtra `json:"extras,omitempty"`
	ConfirmedRequirements map[string]bool          `json:"confirmedRequirements,omitempty"`
	QuestionResponses     map[string]Answer        `json:"questionResponses,omitempty"`
	DateTimes             []string                 `json:"dateTimes,omitempty"`
	Customer              CustomerDetails          `json:"customer"`
	TotalPrice            float64                  `json:"totalPrice"`
}

// Service request statuses.
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusDeclined = "declined"
)

// ServiceRequest is the persisted form of a submitted request.
type ServiceRequest struct {
	ID                    string                   `bson:"id" json:"id"`
	BusinessID            string                   `bson:"businessId" json:"businessId"`
	ServiceID             string                   `bson:"serviceId" json:"serviceId"`
	EventID               string                   `bson:"eventId,omitempty" json:"eventId,omitempty"`
	Items                 map[string]SelectedItem  `bson:"items,omitempty" json:"items,omitempty"`
	Extras                map[string]SelectedExtra `bson:"extras,omitempty" json:"extras,omitempty"`
	ConfirmedRequirements map[string]bool          `bson:"confirmedRequirements,omitempty" json:"confirmedRequirements,omitempty"`
	QuestionResponses     map[string][]string      `bson:"questionResponses,omitempty" json:"questionResponses,omitempty"`
	DateTimes             []time.Time              `bson:"dateTimes,omitempty" json:"dateTimes,omitempty"`
	Duration              int                      `bson:"duration" json:"duration"`
	Customer              CustomerDetails          `bson:"customer" json:"customer"`
	TotalPrice            float64                  `bson:"totalPrice" json:"totalPrice"`
	Currency              string                   `bson:"currency" json:"currency"`
	Status                string                   `bson:"status" json:"status"`
	ConfirmationPageURL   string                   `bson:"confirmationPageUrl" json:"confirmationPageUrl"`
	CreatedAt             time.Time                `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time                `bson:"updatedAt" json:"updatedAt"`
}

// UsageInfo reports how much of a plan quota has been consumed.
type UsageInfo struct {
	Current int `json:"current"`
	Limit   int `json:"limit"`
}
