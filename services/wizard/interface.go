package wizard

import (
	"context"

	"bizhub/models"

	"go.uber.org/zap"
)

// WizardService drives the multi-step service request flow.
type WizardService interface {
	Open(ctx context.Context, businessID, serviceID string) (*models.WizardSession, error)
	Get(ctx context.Context, sessionID string) (*models.WizardSession, error)
	Next(ctx context.Context, sessionID string, in StepInput) (*models.WizardSession, error)
	Skip(ctx context.Context, sessionID string) (*models.WizardSession, error)
	Back(ctx context.Context, sessionID string) (*models.WizardSession, error)
	SetItemQuantity(ctx context.Context, sessionID, itemID string, qty int) (*models.WizardSession, error)
	SetExtraQuantity(ctx context.Context, sessionID, extraID string, qty int) (*models.WizardSession, error)
	Submit(ctx context.Context, sessionID string) (*SubmitResult, error)
	Cancel(ctx context.Context, sessionID string) error
}

// Catalog is the subset of the catalog service the wizard fetches from.
type Catalog interface {
	GetService(ctx context.Context, businessID, serviceID string) (*models.Service, error)
	GetEvents(ctx context.Context, businessID, serviceID string) ([]models.Event, error)
}

// RequestCreator persists a submitted request.
type RequestCreator interface {
	Create(ctx context.Context, businessID string, in models.ServiceRequestInput) (*models.ServiceRequest, error)
}

// SessionStore keeps wizard sessions between calls.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.WizardSession, error)
	Save(ctx context.Context, sess *models.WizardSession) error
	Delete(ctx context.Context, sessionID string) error
}

// StepInput is the partial result a step hands to the orchestrator.
// Only the keys owned by the current step are read.
type StepInput struct {
	Step                  models.WizardStep        `json:"step"`
	Items                 map[string]int           `json:"items,omitempty"`
	Extras                map[string]int           `json:"extras,omitempty"`
	ConfirmedRequirements map[string]bool          `json:"confirmedRequirements,omitempty"`
	QuestionResponses     map[string]models.Answer `json:"questionResponses,omitempty"`
	EventID               string                   `json:"eventId,omitempty"`
	DateTimes             []string                 `json:"dateTimes,omitempty"`
	Customer              *models.CustomerDetails  `json:"customer,omitempty"`
}

// SubmitResult is returned after a successful submission.
type SubmitResult struct {
	RequestID           string  `json:"requestId"`
	ConfirmationPageURL string  `json:"confirmationPageUrl"`
	TotalPrice          float64 `json:"totalPrice"`
}

// DefaultWizardService implements WizardService.
type DefaultWizardService struct {
	Catalog  Catalog
	Requests RequestCreator
	Store    SessionStore
	Logger   *zap.Logger
}
