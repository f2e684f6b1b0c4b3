package models

// AvailableSlot is one bookable start time on a given date.
type AvailableSlot struct {
	Time string `json:"time"` // HH:MM in the business timezone
}

// AvailabilityOverview lists the dates with at least one free slot.
type AvailabilityOverview struct {
	AvailableDates []string `json:"availableDates"` // yyyy-MM-dd
}
