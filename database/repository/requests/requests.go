package requestsRepo

import (
	"context"
	"errors"
	"time"

	"bizhub/models"
)

var ErrRequestNotFound = errors.New("service request not found")

// RequestRepository defines data access for submitted service requests.
type RequestRepository interface {
	Create(ctx context.Context, req *models.ServiceRequest) error
	GetByID(ctx context.Context, businessID, id string) (*models.ServiceRequest, error)
	// CountSince counts the requests a business received at or after since.
	CountSince(ctx context.Context, businessID string, since time.Time) (int, error)
	// ListBooked returns accepted or pending requests with a date-time inside [from, to).
	ListBooked(ctx context.Context, businessID string, from, to time.Time) ([]models.ServiceRequest, error)
}
