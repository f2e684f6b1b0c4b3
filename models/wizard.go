package models

import (
	"encoding/json"
	"math"
	"time"
)

// WizardStep identifies one screen of the request wizard.
type WizardStep int

const (
	StepServiceOverview   WizardStep = 1
	StepServiceItems      WizardStep = 2
	StepServiceExtras     WizardStep = 3
	StepRequirements      WizardStep = 4
	StepQuestions         WizardStep = 5
	StepEventSelection    WizardStep = 6
	StepDateTimeSelection WizardStep = 7
	StepCustomerDetails   WizardStep = 8
)

var stepNames = map[WizardStep]string{
	StepServiceOverview:   "service_overview",
	StepServiceItems:      "service_items",
	StepServiceExtras:     "service_extras",
	StepRequirements:      "requirements",
	StepQuestions:         "questions",
	StepEventSelection:    "event_selection",
	StepDateTimeSelection: "date_time_selection",
	StepCustomerDetails:   "customer_details",
}

func (s WizardStep) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// Topology is the snapshot of service capabilities that decides the step graph.
// It is captured once when the customer leaves the overview and never re-derived.
type Topology struct {
	HasItems        bool `json:"hasItems"`
	HasExtras       bool `json:"hasExtras"`
	HasRequirements bool `json:"hasRequirements"`
	HasQuestions    bool `json:"hasQuestions"`
	EventCount      int  `json:"eventCount"`
	ActiveBooking   bool `json:"activeBooking"`
}

// RequestAggregate accumulates the results of every wizard step.
// Nil maps and pointers mean the step was never answered.
type RequestAggregate struct {
	Items                 map[string]SelectedItem  `json:"items,omitempty"`
	Extras                map[string]SelectedExtra `json:"extras,omitempty"`
	ConfirmedRequirements map[string]bool          `json:"confirmedRequirements,omitempty"`
	QuestionResponses     map[string]Answer        `json:"questionResponses,omitempty"`
	EventID               string                   `json:"eventId,omitempty"`
	DateTime              *SelectedDateTime        `json:"dateTime,omitempty"`
	Customer              *CustomerDetails         `json:"customer,omitempty"`
}

// TotalPrice is Σ(item.price × qty) + Σ(extra.price × qty), rounded to cents.
func (a RequestAggregate) TotalPrice() float64 {
	total := 0.0
	for _, it := range a.Items {
		total += it.PriceBase * float64(it.Quantity)
	}
	for _, ex := range a.Extras {
		total += ex.Price * float64(ex.Quantity)
	}
	return math.Round(total*100) / 100
}

// SetItemQuantity sets the quantity of an item. Zero or less removes it.
func (a *RequestAggregate) SetItemQuantity(itemID string, item ServiceItem, qty int) {
	if qty <= 0 {
		delete(a.Items, itemID)
		return
	}
	if a.Items == nil {
		a.Items = make(map[string]SelectedItem)
	}
	a.Items[itemID] = SelectedItem{
		Quantity:  qty,
		PriceBase: item.PriceBase,
		PriceType: item.PriceType,
		PriceUnit: item.PriceUnit,
	}
}

// SetExtraQuantity sets the quantity of an extra. Zero or less removes it.
func (a *RequestAggregate) SetExtraQuantity(extraID string, extra Extra, qty int) {
	if qty <= 0 {
		delete(a.Extras, extraID)
		return
	}
	if a.Extras == nil {
		a.Extras = make(map[string]SelectedExtra)
	}
	a.Extras[extraID] = SelectedExtra{Quantity: qty, Price: extra.Price}
}

// MarshalJSON adds the derived total to the serialised aggregate.
func (a RequestAggregate) MarshalJSON() ([]byte, error) {
	type plain RequestAggregate
	return json.Marshal(struct {
		plain
		TotalPrice float64 `json:"totalPrice"`
	}{plain(a), a.TotalPrice()})
}

// UnmarshalJSON ignores the derived total; it is always recomputed.
func (a *RequestAggregate) UnmarshalJSON(data []byte) error {
	type plain RequestAggregate
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = RequestAggregate(p)
	return nil
}

// SubmissionError is returned when a service request cannot be accepted.
type SubmissionError struct {
	Message   string     `json:"error"`
	Details   string     `json:"details,omitempty"`
	ErrorType string     `json:"errorType,omitempty"`
	Usage     *UsageInfo `json:"usage,omitempty"`
	Status    int        `json:"-"`
}

func (e *SubmissionError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// WizardSession is the server-held state of one customer request flow.
type WizardSession struct {
	ID              string           `json:"sessionId"`
	BusinessID      string           `json:"businessId"`
	ServiceID       string           `json:"serviceId"`
	Step            WizardStep       `json:"step"`
	StepName        string           `json:"stepName"`
	Topology        *Topology        `json:"topology,omitempty"`
	Service         SelectedService  `json:"service"`
	Events          []Event          `json:"events,omitempty"`
	Aggregate       RequestAggregate `json:"aggregate"`
	Error           string           `json:"error,omitempty"`
	SubmissionError *SubmissionError `json:"submissionError,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}
