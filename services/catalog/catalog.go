package catalog

import (
	"context"
	"errors"
	"fmt"

	businessRepo "bizhub/database/repository/business"
	catalogRepo "bizhub/database/repository/catalog"
	"bizhub/models"

	"go.uber.org/zap"
)

var (
	ErrBusinessNotFound = businessRepo.ErrBusinessNotFound
	ErrServiceNotFound  = catalogRepo.ErrServiceNotFound
)

func (s *DefaultCatalogService) GetBusiness(ctx context.Context, businessID string) (*models.Business, error) {
	biz, err := s.Businesses.GetByID(ctx, businessID)
	if err != nil {
		if !errors.Is(err, ErrBusinessNotFound) {
			s.logger().Error("failed to load business", zap.String("businessID", businessID), zap.Error(err))
		}
		return nil, err
	}
	return biz, nil
}

func (s *DefaultCatalogService) GetService(ctx context.Context, businessID, serviceID string) (*models.Service, error) {
	svc, err := s.Catalog.GetService(ctx, businessID, serviceID)
	if err != nil {
		if !errors.Is(err, ErrServiceNotFound) {
			s.logger().Error("failed to load service",
				zap.String("businessID", businessID), zap.String("serviceID", serviceID), zap.Error(err))
		}
		return nil, err
	}
	return svc, nil
}

// GetDetails returns the service with its requirement blocks, questions and items.
func (s *DefaultCatalogService) GetDetails(ctx context.Context, businessID, serviceID string) (*models.ServiceDetails, error) {
	svc, err := s.GetService(ctx, businessID, serviceID)
	if err != nil {
		return nil, err
	}
	details := &models.ServiceDetails{
		Service:      *svc,
		Requirements: svc.Requirements,
		Questions:    svc.Questions,
		ServiceItems: svc.Items,
	}
	if details.Requirements == nil {
		details.Requirements = []models.Requirement{}
	}
	if details.Questions == nil {
		details.Questions = []models.Question{}
	}
	if details.ServiceItems == nil || !svc.HasItems {
		details.ServiceItems = []models.ServiceItem{}
	}
	return details, nil
}

func (s *DefaultCatalogService) GetExtras(ctx context.Context, businessID, serviceID string) ([]models.Extra, error) {
	svc, err := s.GetService(ctx, businessID, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.HasExtras || svc.Extras == nil {
		return []models.Extra{}, nil
	}
	return svc.Extras, nil
}

// GetEvents lists the events of a service. Services without active booking have none.
func (s *DefaultCatalogService) GetEvents(ctx context.Context, businessID, serviceID string) ([]models.Event, error) {
	svc, err := s.GetService(ctx, businessID, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.ActiveBooking {
		return []models.Event{}, nil
	}
	events, err := s.Catalog.GetEvents(ctx, businessID, serviceID)
	if err != nil {
		s.logger().Error("failed to load events", zap.String("serviceID", serviceID), zap.Error(err))
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	return events, nil
}

// PaymentMethods returns the enabled payment methods of a business.
func (s *DefaultCatalogService) PaymentMethods(ctx context.Context, businessID string) ([]models.PaymentMethod, error) {
	biz, err := s.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	out := []models.PaymentMethod{}
	for _, m := range biz.PaymentMethods {
		if m.Enabled {
			out = append(out, m)
		}
	}
	return out, nil
}

// Platforms returns the enabled meeting platforms of a business.
func (s *DefaultCatalogService) Platforms(ctx context.Context, businessID string) ([]models.Platform, error) {
	biz, err := s.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	out := []models.Platform{}
	for _, p := range biz.Platforms {
		if p.Enabled {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *DefaultCatalogService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
