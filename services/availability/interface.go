package availability

import (
	"context"
	"errors"
	"time"

	businessRepo "bizhub/database/repository/business"
	catalogRepo "bizhub/database/repository/catalog"
	requestsRepo "bizhub/database/repository/requests"
	"bizhub/models"

	"go.uber.org/zap"
)

const (
	dateLayout    = "2006-01-02"
	maxRangeDays  = 92
	defaultWindow = 30 * time.Minute
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidRange = errors.New("invalid date range")
)

// AvailabilityService computes free dates and start times for a business.
type AvailabilityService interface {
	Overview(ctx context.Context, businessID, startDate, endDate string, duration int, eventID string) (*models.AvailabilityOverview, error)
	Slots(ctx context.Context, businessID, date string, duration int) ([]models.AvailableSlot, error)
}

// DefaultAvailabilityService implements AvailabilityService.
type DefaultAvailabilityService struct {
	Businesses businessRepo.BusinessRepository
	Events     catalogRepo.CatalogRepository
	Requests   requestsRepo.RequestRepository
	Interval   time.Duration
	Now        func() time.Time
	Logger     *zap.Logger
}
