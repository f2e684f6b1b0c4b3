package availability

import (
	"context"
	"fmt"
	"time"

	"bizhub/models"

	"go.uber.org/zap"
)

// busy is a booked interval.
type busy struct {
	start, end time.Time
}

// Overview returns every date in [startDate, endDate] with at least one free slot.
// When eventID is set the range is clamped to the event window and its duration
// is used if none was given.
func (s *DefaultAvailabilityService) Overview(ctx context.Context, businessID, startDate, endDate string, duration int, eventID string) (*models.AvailabilityOverview, error) {
	biz, err := s.Businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	loc := location(biz)

	start, err := time.ParseInLocation(dateLayout, startDate, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: startDate %q", ErrInvalidDate, startDate)
	}
	end, err := time.ParseInLocation(dateLayout, endDate, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: endDate %q", ErrInvalidDate, endDate)
	}

	if eventID != "" {
		ev, err := s.Events.GetEvent(ctx, businessID, eventID)
		if err != nil {
			return nil, err
		}
		if duration <= 0 {
			duration = ev.Duration
		}
		if d, err := time.ParseInLocation(dateLayout, ev.StartDate, loc); err == nil && d.After(start) {
			start = d
		}
		if d, err := time.ParseInLocation(dateLayout, ev.EndDate, loc); err == nil && d.Before(end) {
			end = d
		}
	}

	out := &models.AvailabilityOverview{AvailableDates: []string{}}
	if end.Before(start) {
		if eventID != "" {
			return out, nil
		}
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidRange)
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: at most %d days", ErrInvalidRange, maxRangeDays)
	}

	booked, err := s.booked(ctx, businessID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if len(s.slotsOn(biz, day, duration, booked)) > 0 {
			out.AvailableDates = append(out.AvailableDates, day.Format(dateLayout))
		}
	}
	return out, nil
}

// Slots returns the free start times on one date.
func (s *DefaultAvailabilityService) Slots(ctx context.Context, businessID, date string, duration int) ([]models.AvailableSlot, error) {
	biz, err := s.Businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	day, err := time.ParseInLocation(dateLayout, date, location(biz))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	booked, err := s.booked(ctx, businessID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return s.slotsOn(biz, day, duration, booked), nil
}

// slotsOn walks the working hours of day in interval steps and keeps the
// starts whose [start, start+duration) fits the window, lies in the future
// and overlaps no booking.
func (s *DefaultAvailabilityService) slotsOn(biz *models.Business, day time.Time, duration int, booked []busy) []models.AvailableSlot {
	slots := []models.AvailableSlot{}
	date := day.Format(dateLayout)
	for _, blocked := range biz.BlockedDates {
		if blocked == date {
			return slots
		}
	}

	step := s.interval()
	length := time.Duration(duration) * time.Minute
	if length <= 0 {
		length = step
	}
	now := s.now().In(day.Location())
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	for _, wh := range biz.WorkingHours {
		if time.Weekday(wh.Weekday) != day.Weekday() || wh.Close <= wh.Open {
			continue
		}
		open := midnight.Add(time.Duration(wh.Open) * time.Minute)
		closing := midnight.Add(time.Duration(wh.Close) * time.Minute)
		for t := open; !t.Add(length).After(closing); t = t.Add(step) {
			if !t.After(now) || overlaps(booked, t, t.Add(length)) {
				continue
			}
			slots = append(slots, models.AvailableSlot{Time: t.Format("15:04")})
		}
	}
	return slots
}

func (s *DefaultAvailabilityService) booked(ctx context.Context, businessID string, from, to time.Time) ([]busy, error) {
	reqs, err := s.Requests.ListBooked(ctx, businessID, from, to)
	if err != nil {
		s.logger().Error("failed to load booked requests", zap.String("businessID", businessID), zap.Error(err))
		return nil, err
	}
	out := make([]busy, 0, len(reqs))
	for _, r := range reqs {
		length := time.Duration(r.Duration) * time.Minute
		if length <= 0 {
			length = s.interval()
		}
		for _, dt := range r.DateTimes {
			out = append(out, busy{start: dt, end: dt.Add(length)})
		}
	}
	return out, nil
}

func overlaps(booked []busy, start, end time.Time) bool {
	for _, b := range booked {
		if start.Before(b.end) && b.start.Before(end) {
			return true
		}
	}
	return false
}

func location(biz *models.Business) *time.Location {
	if biz.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(biz.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (s *DefaultAvailabilityService) interval() time.Duration {
	if s.Interval <= 0 {
		return defaultWindow
	}
	return s.Interval
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultAvailabilityService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
