package catalogRepo

import (
	"context"
	"errors"

	"bizhub/models"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrEventNotFound   = errors.New("event not found")
)

// CatalogRepository defines data access for services and their events.
type CatalogRepository interface {
	// GetService retrieves a service of a business, including items, extras,
	// requirements and questions.
	GetService(ctx context.Context, businessID, serviceID string) (*models.Service, error)
	// ListServices retrieves every service of a business.
	ListServices(ctx context.Context, businessID string) ([]models.Service, error)
	// CreateService inserts a new service.
	CreateService(ctx context.Context, service *models.Service) error
	// GetEvents retrieves the events of a service.
	GetEvents(ctx context.Context, businessID, serviceID string) ([]models.Event, error)
	// GetEvent retrieves one event of a business.
	GetEvent(ctx context.Context, businessID, eventID string) (*models.Event, error)
	// CreateEvent inserts a new event.
	CreateEvent(ctx context.Context, event *models.Event) error
}
