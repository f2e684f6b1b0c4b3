package models

import "time"

// Price types for services and items.
const (
	PriceTypeFixed  = "fixed"
	PriceTypeHourly = "hourly"
	PriceTypeUnit   = "per_unit"
	PriceTypeQuote  = "quote"
)

// Question types asked during the requirements/questions step.
const (
	QuestionText         = "text"
	QuestionSingleChoice = "single_choice"
	QuestionMultiChoice  = "multi_choice"
)

// Service is a bookable or quotable offering of a business.
type Service struct {
	ID            string        `bson:"id" json:"id"`
	BusinessID    string        `bson:"businessId" json:"businessId"`
	Name          string        `bson:"name" json:"name"`
	Description   string        `bson:"description" json:"description"`
	PriceBase     float64       `bson:"priceBase" json:"priceBase"`
	PriceType     string        `bson:"priceType" json:"priceType"`
	Currency      string        `bson:"currency" json:"currency"`
	Duration      int           `bson:"duration" json:"duration"` // minutes
	HasItems      bool          `bson:"hasItems" json:"hasItems"`
	HasExtras     bool          `bson:"hasExtras" json:"hasExtras"`
	ActiveBooking bool          `bson:"activeBooking" json:"activeBooking"`
	Items         []ServiceItem `bson:"items,omitempty" json:"-"`
	Extras        []Extra       `bson:"extras,omitempty" json:"-"`
	Requirements  []Requirement `bson:"requirements,omitempty" json:"-"`
	Questions     []Question    `bson:"questions,omitempty" json:"-"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// ServiceItem is a selectable line item of a service.
type ServiceItem struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	PriceBase   float64 `bson:"priceBase" json:"priceBase"`
	PriceType   string  `bson:"priceType" json:"priceType"`
	PriceUnit   string  `bson:"priceUnit,omitempty" json:"priceUnit,omitempty"`
}

// Extra is an optional add-on with its own price.
type Extra struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64 `bson:"price" json:"price"`
	MaxQuantity int     `bson:"maxQuantity,omitempty" json:"maxQuantity,omitempty"`
}

// Requirement is a content block the customer must acknowledge.
type Requirement struct {
	ID       string `bson:"id" json:"id"`
	Title    string `bson:"title" json:"title"`
	Content  string `bson:"content" json:"content"`
	Required bool   `bson:"required" json:"required"`
}

// Question is asked to the customer before the request is submitted.
type Question struct {
	ID       string   `bson:"id" json:"id"`
	Prompt   string   `bson:"prompt" json:"prompt"`
	Type     string   `bson:"type" json:"type"`
	Options  []string `bson:"options,omitempty" json:"options,omitempty"`
	Required bool     `bson:"required" json:"required"`
}

// Event is a bookable occurrence of a service with its own date window.
type Event struct {
	ID         string `bson:"id" json:"id"`
	BusinessID string `bson:"businessId" json:"businessId"`
	ServiceID  string `bson:"serviceId" json:"serviceId"`
	Name       string `bson:"name" json:"name"`
	Duration   int    `bson:"duration" json:"duration"`
	StartDate  string `bson:"startDate,omitempty" json:"startDate,omitempty"` // yyyy-MM-dd
	EndDate    string `bson:"endDate,omitempty" json:"endDate,omitempty"`
}

// ServiceDetails is the payload of the service details endpoint.
type ServiceDetails struct {
	Service      Service       `json:"service"`
	Requirements []Requirement `json:"requirements"`
	Questions    []Question    `json:"questions"`
	ServiceItems []ServiceItem `json:"serviceItems"`
}

// SelectedService is the read-only view of the service a wizard operates on.
type SelectedService struct {
	ServiceID     string  `json:"serviceId"`
	BusinessID    string  `json:"businessId"`
	Name          string  `json:"name"`
	HasItems      bool    `json:"hasItems"`
	HasExtras     bool    `json:"hasExtras"`
	ActiveBooking bool    `json:"activeBooking"`
	PriceBase     float64 `json:"priceBase"`
	Duration      int     `json:"duration"`
}

// ToSelectedService projects a catalog service into the wizard's view.
func ToSelectedService(s Service) SelectedService {
	return SelectedService{
		ServiceID:     s.ID,
		BusinessID:    s.BusinessID,
		Name:          s.Name,
		HasItems:      s.HasItems,
		HasExtras:     s.HasExtras,
		ActiveBooking: s.ActiveBooking,
		PriceBase:     s.PriceBase,
		Duration:      s.Duration,
	}
}

// ItemByID returns the service item with the given id.
func (s Service) ItemByID(id string) (ServiceItem, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return ServiceItem{}, false
}

// ExtraByID returns the extra with the given id.
func (s Service) ExtraByID(id string) (Extra, bool) {
	for _, ex := range s.Extras {
		if ex.ID == id {
			return ex, true
		}
	}
	return Extra{}, false
}
