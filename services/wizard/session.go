package wizard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bizhub/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Open creates a session on the overview step for the given service.
func (s *DefaultWizardService) Open(ctx context.Context, businessID, serviceID string) (*models.WizardSession, error) {
	svc, err := s.Catalog.GetService(ctx, businessID, serviceID)
	if err != nil {
		return nil, &FetchError{Op: "service", Err: err}
	}

	now := time.Now()
	sess := &models.WizardSession{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		ServiceID:  serviceID,
		Step:       models.StepServiceOverview,
		Service:    models.ToSelectedService(*svc),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	s.logger().Info("wizard session opened",
		zap.String("sessionID", sess.ID), zap.String("businessID", businessID), zap.String("serviceID", serviceID))
	return sess, nil
}

// Get returns the current state of a session.
func (s *DefaultWizardService) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	return s.Store.Get(ctx, sessionID)
}

// Next validates and merges the current step's partial result, then advances.
// Customer details is terminal: its data is merged and Submit finishes the flow.
func (s *DefaultWizardService) Next(ctx context.Context, sessionID string, in StepInput) (*models.WizardSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if in.Step != 0 && in.Step != sess.Step {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrStepMismatch, sess.Step, in.Step)
	}

	if sess.Step == models.StepServiceOverview {
		if err := s.captureTopology(ctx, sess); err != nil {
			return nil, s.fail(ctx, sess, err)
		}
		return s.advance(ctx, sess)
	}

	if sess.Step == models.StepCustomerDetails {
		customer, err := checkCustomer(in.Customer)
		if err != nil {
			return nil, err
		}
		sess.Aggregate.Customer = customer
		sess.Error = ""
		if err := s.save(ctx, sess); err != nil {
			return nil, err
		}
		return sess, nil
	}

	if sess.Step == models.StepDateTimeSelection {
		dt, err := checkDateTimes(in.DateTimes)
		if err != nil {
			return nil, err
		}
		sess.Aggregate.DateTime = dt
		return s.advance(ctx, sess)
	}

	if sess.Step == models.StepEventSelection {
		if !hasEvent(sess.Events, in.EventID) {
			return nil, stepError(sess.Step, "eventId", "pick one of the available events")
		}
		sess.Aggregate.EventID = in.EventID
		return s.advance(ctx, sess)
	}

	svc, err := s.Catalog.GetService(ctx, sess.BusinessID, sess.ServiceID)
	if err != nil {
		return nil, s.fail(ctx, sess, &FetchError{Op: "service details", Err: err})
	}

	switch sess.Step {
	case models.StepServiceItems:
		items, err := buildItems(svc, in.Items)
		if err != nil {
			return nil, err
		}
		if len(in.Items) > 0 || sess.Aggregate.Items == nil {
			sess.Aggregate.Items = items
		}
	case models.StepServiceExtras:
		extras, err := buildExtras(svc, in.Extras)
		if err != nil {
			return nil, err
		}
		if len(in.Extras) > 0 || sess.Aggregate.Extras == nil {
			sess.Aggregate.Extras = extras
		}
	case models.StepRequirements:
		confirmed, err := checkRequirements(svc, in.ConfirmedRequirements)
		if err != nil {
			return nil, err
		}
		sess.Aggregate.ConfirmedRequirements = confirmed
	case models.StepQuestions:
		responses, err := checkQuestions(svc, in.QuestionResponses)
		if err != nil {
			return nil, err
		}
		sess.Aggregate.QuestionResponses = responses
	}
	return s.advance(ctx, sess)
}

// Skip advances past the current step without merging any data for it.
func (s *DefaultWizardService) Skip(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !skippable[sess.Step] || sess.Topology == nil {
		return nil, ErrNotSkippable
	}
	if sess.Step == models.StepRequirements || sess.Step == models.StepQuestions {
		svc, err := s.Catalog.GetService(ctx, sess.BusinessID, sess.ServiceID)
		if err != nil {
			return nil, s.fail(ctx, sess, &FetchError{Op: "service details", Err: err})
		}
		if hasRequired(svc, sess.Step) {
			return nil, ErrNotSkippable
		}
	}
	return s.advance(ctx, sess)
}

// Back returns to the previous step of the topology captured on the way in.
func (s *DefaultWizardService) Back(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Topology == nil {
		return nil, ErrAtFirstStep
	}
	prev, ok := PreviousStep(sess.Step, *sess.Topology)
	if !ok {
		return nil, ErrAtFirstStep
	}
	sess.Step = prev
	sess.Error = ""
	sess.SubmissionError = nil
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SetItemQuantity updates one item of the aggregate. Zero removes it.
func (s *DefaultWizardService) SetItemQuantity(ctx context.Context, sessionID, itemID string, qty int) (*models.WizardSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	svc, err := s.Catalog.GetService(ctx, sess.BusinessID, sess.ServiceID)
	if err != nil {
		return nil, s.fail(ctx, sess, &FetchError{Op: "service items", Err: err})
	}
	item, ok := svc.ItemByID(itemID)
	if !ok {
		return nil, stepError(models.StepServiceItems, itemID, "unknown service item")
	}
	if qty < 0 {
		return nil, stepError(models.StepServiceItems, itemID, "quantity must not be negative")
	}
	sess.Aggregate.SetItemQuantity(itemID, item, qty)
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SetExtraQuantity updates one extra of the aggregate. Zero removes it.
func (s *DefaultWizardService) SetExtraQuantity(ctx context.Context, sessionID, extraID string, qty int) (*models.WizardSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	svc, err := s.Catalog.GetService(ctx, sess.BusinessID, sess.ServiceID)
	if err != nil {
		return nil, s.fail(ctx, sess, &FetchError{Op: "service extras", Err: err})
	}
	extra, ok := svc.ExtraByID(extraID)
	if !ok {
		return nil, stepError(models.StepServiceExtras, extraID, "unknown extra")
	}
	if err := checkExtraQuantity(extra, qty); err != nil {
		return nil, err
	}
	sess.Aggregate.SetExtraQuantity(extraID, extra, qty)
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Submit sends the aggregate as one service request. On failure the session
// keeps every entered value and records the error so the call can be retried.
func (s *DefaultWizardService) Submit(ctx context.Context, sessionID string) (*SubmitResult, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Step != models.StepCustomerDetails || sess.Aggregate.Customer == nil {
		return nil, ErrNotReady
	}

	req, err := s.Requests.Create(ctx, sess.BusinessID, buildRequestInput(sess))
	if err != nil {
		var subErr *models.SubmissionError
		if !errors.As(err, &subErr) {
			subErr = &models.SubmissionError{
				Message: "failed to submit service request",
				Details: err.Error(),
				Status:  http.StatusInternalServerError,
			}
		}
		sess.SubmissionError = subErr
		if saveErr := s.save(ctx, sess); saveErr != nil {
			s.logger().Error("failed to record submission error", zap.String("sessionID", sessionID), zap.Error(saveErr))
		}
		s.logger().Warn("service request submission failed", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, subErr
	}

	if err := s.Store.Delete(ctx, sessionID); err != nil {
		s.logger().Warn("failed to clear submitted wizard session", zap.String("sessionID", sessionID), zap.Error(err))
	}
	s.logger().Info("service request submitted", zap.String("sessionID", sessionID), zap.String("requestID", req.ID))
	return &SubmitResult{
		RequestID:           req.ID,
		ConfirmationPageURL: req.ConfirmationPageURL,
		TotalPrice:          req.TotalPrice,
	}, nil
}

// Cancel discards the session and everything collected in it.
func (s *DefaultWizardService) Cancel(ctx context.Context, sessionID string) error {
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to cancel wizard session: %w", err)
	}
	return nil
}

func (s *DefaultWizardService) captureTopology(ctx context.Context, sess *models.WizardSession) error {
	svc, err := s.Catalog.GetService(ctx, sess.BusinessID, sess.ServiceID)
	if err != nil {
		return &FetchError{Op: "service details", Err: err}
	}
	var events []models.Event
	if svc.ActiveBooking {
		events, err = s.Catalog.GetEvents(ctx, sess.BusinessID, sess.ServiceID)
		if err != nil {
			return &FetchError{Op: "service events", Err: err}
		}
	}
	topo := TopologyOf(*svc, events)
	sess.Topology = &topo
	sess.Events = events
	sess.Service = models.ToSelectedService(*svc)
	return nil
}

func (s *DefaultWizardService) advance(ctx context.Context, sess *models.WizardSession) (*models.WizardSession, error) {
	next, ok := NextStep(sess.Step, *sess.Topology)
	if !ok {
		return nil, ErrNotReady
	}
	if sess.Step == models.StepQuestions && next == models.StepDateTimeSelection && len(sess.Events) == 1 {
		sess.Aggregate.EventID = sess.Events[0].ID
	}
	sess.Step = next
	sess.Error = ""
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// fail records a fetch failure on the session without moving it.
func (s *DefaultWizardService) fail(ctx context.Context, sess *models.WizardSession, err error) error {
	sess.Error = err.Error()
	if saveErr := s.save(ctx, sess); saveErr != nil {
		s.logger().Error("failed to record wizard error", zap.String("sessionID", sess.ID), zap.Error(saveErr))
	}
	s.logger().Warn("wizard step halted", zap.String("sessionID", sess.ID), zap.Stringer("step", sess.Step), zap.Error(err))
	return err
}

func (s *DefaultWizardService) save(ctx context.Context, sess *models.WizardSession) error {
	sess.StepName = sess.Step.String()
	sess.UpdatedAt = time.Now()
	if err := s.Store.Save(ctx, sess); err != nil {
		return fmt.Errorf("failed to store wizard session: %w", err)
	}
	return nil
}

func (s *DefaultWizardService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func buildRequestInput(sess *models.WizardSession) models.ServiceRequestInput {
	agg := sess.Aggregate
	in := models.ServiceRequestInput{
		ServiceID:             sess.ServiceID,
		EventID:               agg.EventID,
		Items:                 agg.Items,
		Extras:                agg.Extras,
		ConfirmedRequirements: agg.ConfirmedRequirements,
		QuestionResponses:     agg.QuestionResponses,
		TotalPrice:            agg.TotalPrice(),
	}
	if agg.DateTime != nil {
		in.DateTimes = agg.DateTime.DateTimes
	}
	if agg.Customer != nil {
		in.Customer = *agg.Customer
	}
	return in
}

func hasEvent(events []models.Event, id string) bool {
	if id == "" {
		return false
	}
	for _, e := range events {
		if e.ID == id {
			return true
		}
	}
	return false
}
