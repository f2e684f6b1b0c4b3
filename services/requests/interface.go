package requests

import (
	"context"
	"time"

	businessRepo "bizhub/database/repository/business"
	catalogRepo "bizhub/database/repository/catalog"
	requestsRepo "bizhub/database/repository/requests"
	"bizhub/models"
	"bizhub/services/notification"

	"go.uber.org/zap"
)

// Error types carried by SubmissionError.
const (
	ErrorTypeValidation = "validation"
	ErrorTypeNotFound   = "not_found"
	ErrorTypeUsageLimit = "usage_limit"
)

// RequestService accepts service requests from customers.
type RequestService interface {
	Create(ctx context.Context, businessID string, in models.ServiceRequestInput) (*models.ServiceRequest, error)
	Get(ctx context.Context, businessID, requestID string) (*models.ServiceRequest, error)
}

// DefaultRequestService implements RequestService.
type DefaultRequestService struct {
	Businesses          businessRepo.BusinessRepository
	Catalog             catalogRepo.CatalogRepository
	Requests            requestsRepo.RequestRepository
	Notifier            notification.NotificationService
	ConfirmationBaseURL string
	Now                 func() time.Time
	Logger              *zap.Logger
}
