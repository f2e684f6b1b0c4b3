package catalog

import (
	"context"

	businessRepo "bizhub/database/repository/business"
	catalogRepo "bizhub/database/repository/catalog"
	"bizhub/models"

	"go.uber.org/zap"
)

// CatalogService exposes the read side of a business catalog.
type CatalogService interface {
	GetBusiness(ctx context.Context, businessID string) (*models.Business, error)
	GetService(ctx context.Context, businessID, serviceID string) (*models.Service, error)
	GetDetails(ctx context.Context, businessID, serviceID string) (*models.ServiceDetails, error)
	GetExtras(ctx context.Context, businessID, serviceID string) ([]models.Extra, error)
	GetEvents(ctx context.Context, businessID, serviceID string) ([]models.Event, error)
	PaymentMethods(ctx context.Context, businessID string) ([]models.PaymentMethod, error)
	Platforms(ctx context.Context, businessID string) ([]models.Platform, error)
}

// DefaultCatalogService implements CatalogService on top of the repositories.
type DefaultCatalogService struct {
	Businesses businessRepo.BusinessRepository
	Catalog    catalogRepo.CatalogRepository
	Logger     *zap.Logger
}
