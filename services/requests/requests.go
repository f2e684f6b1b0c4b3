package requests

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/mail"
	"net/url"
	"strings"
	"time"

	businessRepo "bizhub/database/repository/business"
	catalogRepo "bizhub/database/repository/catalog"
	"bizhub/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create validates the request against the catalog, recomputes its total from
// catalog prices, enforces the monthly plan quota, persists it and notifies
// the business. Every failure is a *models.SubmissionError.
func (s *DefaultRequestService) Create(ctx context.Context, businessID string, in models.ServiceRequestInput) (*models.ServiceRequest, error) {
	log := s.logger().With(zap.String("businessID", businessID), zap.String("serviceID", in.ServiceID))

	biz, err := s.Businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, notFound("Business not found")
		}
		log.Error("failed to load business", zap.Error(err))
		return nil, internal(err)
	}
	svc, err := s.Catalog.GetService(ctx, businessID, in.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, notFound("Service not found")
		}
		log.Error("failed to load service", zap.Error(err))
		return nil, internal(err)
	}

	req, err := s.build(ctx, biz, svc, in)
	if err != nil {
		return nil, err
	}

	if in.TotalPrice != 0 && math.Abs(in.TotalPrice-req.TotalPrice) > 0.005 {
		log.Warn("client total differs from catalog total",
			zap.Float64("clientTotal", in.TotalPrice), zap.Float64("total", req.TotalPrice))
	}

	if err := s.checkQuota(ctx, biz); err != nil {
		return nil, err
	}

	if err := s.Requests.Create(ctx, req); err != nil {
		log.Error("failed to persist service request", zap.Error(err))
		return nil, internal(err)
	}
	log.Info("service request created", zap.String("requestID", req.ID), zap.Float64("total", req.TotalPrice))

	if s.Notifier != nil {
		if err := s.Notifier.NotifyNewRequest(ctx, biz, req); err != nil {
			log.Warn("failed to notify business", zap.String("requestID", req.ID), zap.Error(err))
		}
	}
	return req, nil
}

func (s *DefaultRequestService) Get(ctx context.Context, businessID, requestID string) (*models.ServiceRequest, error) {
	return s.Requests.GetByID(ctx, businessID, requestID)
}

func (s *DefaultRequestService) build(ctx context.Context, biz *models.Business, svc *models.Service, in models.ServiceRequestInput) (*models.ServiceRequest, error) {
	customer, err := validateCustomer(in.Customer)
	if err != nil {
		return nil, err
	}

	agg := models.RequestAggregate{}
	for id, sel := range in.Items {
		item, ok := svc.ItemByID(id)
		if !ok {
			return nil, invalid("Unknown service item", id)
		}
		if sel.Quantity < 0 {
			return nil, invalid("Quantity must not be negative", id)
		}
		agg.SetItemQuantity(id, item, sel.Quantity)
	}
	for id, sel := range in.Extras {
		extra, ok := svc.ExtraByID(id)
		if !ok {
			return nil, invalid("Unknown extra", id)
		}
		if sel.Quantity < 0 || (extra.MaxQuantity > 0 && sel.Quantity > extra.MaxQuantity) {
			return nil, invalid("Extra quantity out of range", fmt.Sprintf("%s allows at most %d", extra.Name, extra.MaxQuantity))
		}
		agg.SetExtraQuantity(id, extra, sel.Quantity)
	}

	for _, r := range svc.Requirements {
		if r.Required && !in.ConfirmedRequirements[r.ID] {
			return nil, invalid("Requirement not confirmed", r.Title)
		}
	}
	responses := make(map[string][]string, len(in.QuestionResponses))
	for _, q := range svc.Questions {
		ans, ok := in.QuestionResponses[q.ID]
		if !ok || ans.Empty() {
			if q.Required {
				return nil, invalid("Missing answer", q.Prompt)
			}
			continue
		}
		if ans.IsMulti() {
			responses[q.ID] = ans.Choices
		} else {
			responses[q.ID] = []string{ans.Text}
		}
	}

	duration := svc.Duration
	if in.EventID != "" {
		ev, err := s.Catalog.GetEvent(ctx, biz.ID, in.EventID)
		if err != nil || ev.ServiceID != svc.ID {
			return nil, invalid("Unknown event", in.EventID)
		}
		if ev.Duration > 0 {
			duration = ev.Duration
		}
	}

	dateTimes := make([]time.Time, 0, len(in.DateTimes))
	for _, raw := range in.DateTimes {
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
		if err != nil {
			return nil, invalid("Invalid date-time", raw)
		}
		dateTimes = append(dateTimes, t.UTC())
	}
	if svc.ActiveBooking && len(dateTimes) == 0 {
		return nil, invalid("A date and time is required", "")
	}

	now := s.now()
	id := uuid.New().String()
	currency := svc.Currency
	if currency == "" {
		currency = biz.Currency
	}
	return &models.ServiceRequest{
		ID:                    id,
		BusinessID:            biz.ID,
		ServiceID:             svc.ID,
		EventID:               in.EventID,
		Items:                 agg.Items,
		Extras:                agg.Extras,
		ConfirmedRequirements: in.ConfirmedRequirements,
		QuestionResponses:     responses,
		DateTimes:             dateTimes,
		Duration:              duration,
		Customer:              *customer,
		TotalPrice:            agg.TotalPrice(),
		Currency:              currency,
		Status:                models.RequestStatusPending,
		ConfirmationPageURL:   s.confirmationURL(biz.ID, id),
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

// checkQuota rejects the request once the business has used its monthly allowance.
func (s *DefaultRequestService) checkQuota(ctx context.Context, biz *models.Business) error {
	limit := models.MonthlyRequestQuota(biz.Plan)
	if limit == 0 {
		return nil
	}
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	count, err := s.Requests.CountSince(ctx, biz.ID, monthStart)
	if err != nil {
		s.logger().Error("failed to count requests", zap.String("businessID", biz.ID), zap.Error(err))
		return internal(err)
	}
	if count >= limit {
		return &models.SubmissionError{
			Message:   "This business cannot accept more requests this month",
			Details:   fmt.Sprintf("monthly limit of %d requests reached", limit),
			ErrorType: ErrorTypeUsageLimit,
			Usage:     &models.UsageInfo{Current: count, Limit: limit},
			Status:    http.StatusForbidden,
		}
	}
	return nil
}

func (s *DefaultRequestService) confirmationURL(businessID, requestID string) string {
	u, err := url.JoinPath(s.ConfirmationBaseURL, "businesses", businessID, "requests", requestID, "confirmation")
	if err != nil {
		return "/businesses/" + businessID + "/requests/" + requestID + "/confirmation"
	}
	return u
}

func validateCustomer(c models.CustomerDetails) (*models.CustomerDetails, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Name == "" {
		return nil, invalid("Name is required", "")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return nil, invalid("A valid email is required", c.Email)
	}
	return &c, nil
}

func invalid(msg, details string) *models.SubmissionError {
	return &models.SubmissionError{Message: msg, Details: details, ErrorType: ErrorTypeValidation, Status: http.StatusBadRequest}
}

func notFound(msg string) *models.SubmissionError {
	return &models.SubmissionError{Message: msg, ErrorType: ErrorTypeNotFound, Status: http.StatusNotFound}
}

func internal(err error) *models.SubmissionError {
	return &models.SubmissionError{Message: "Failed to submit request", Details: err.Error(), Status: http.StatusInternalServerError}
}

func (s *DefaultRequestService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultRequestService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
