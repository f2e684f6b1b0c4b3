package catalog

import (
	"context"
	"testing"

	memoryRepo "bizhub/database/repository/memory"
	"bizhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *DefaultCatalogService {
	t.Helper()
	ctx := context.Background()
	cat := memoryRepo.NewCatalog()
	require.NoError(t, cat.CreateService(ctx, &models.Service{
		ID: "svc-1", BusinessID: "biz-1", Name: "Cleaning",
		HasItems: true, HasExtras: true, ActiveBooking: true,
		Items:  []models.ServiceItem{{ID: "room", PriceBase: 10}},
		Extras: []models.Extra{{ID: "oven", Price: 25}},
	}))
	require.NoError(t, cat.CreateService(ctx, &models.Service{
		ID: "svc-2", BusinessID: "biz-1", Name: "Quote",
		Items: []models.ServiceItem{{ID: "ignored", PriceBase: 1}},
	}))
	require.NoError(t, cat.CreateEvent(ctx, &models.Event{ID: "ev-1", BusinessID: "biz-1", ServiceID: "svc-1"}))
	require.NoError(t, cat.CreateEvent(ctx, &models.Event{ID: "ev-2", BusinessID: "biz-1", ServiceID: "svc-2"}))

	biz := models.Business{
		ID: "biz-1",
		PaymentMethods: []models.PaymentMethod{
			{ID: "card", Label: "Card", Enabled: true},
			{ID: "cash", Label: "Cash", Enabled: false},
		},
		Platforms: []models.Platform{{ID: "zoom", Name: "Zoom", Enabled: true}, {ID: "skype", Name: "Skype"}},
	}
	return &DefaultCatalogService{Businesses: memoryRepo.NewBusinesses(biz), Catalog: cat}
}

func TestGetDetails(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	details, err := svc.GetDetails(ctx, "biz-1", "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "Cleaning", details.Service.Name)
	assert.Len(t, details.ServiceItems, 1)
	assert.NotNil(t, details.Requirements)
	assert.NotNil(t, details.Questions)

	details, err = svc.GetDetails(ctx, "biz-1", "svc-2")
	require.NoError(t, err)
	assert.Empty(t, details.ServiceItems, "items are hidden when the service has none enabled")

	_, err = svc.GetDetails(ctx, "biz-1", "missing")
	assert.ErrorIs(t, err, ErrServiceNotFound)
	_, err = svc.GetDetails(ctx, "biz-2", "svc-1")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetExtrasAndEvents(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	extras, err := svc.GetExtras(ctx, "biz-1", "svc-1")
	require.NoError(t, err)
	assert.Len(t, extras, 1)

	extras, err = svc.GetExtras(ctx, "biz-1", "svc-2")
	require.NoError(t, err)
	assert.NotNil(t, extras)
	assert.Empty(t, extras)

	events, err := svc.GetEvents(ctx, "biz-1", "svc-1")
	require.NoError(t, err)
	assert.Len(t, events, 1)

	events, err = svc.GetEvents(ctx, "biz-1", "svc-2")
	require.NoError(t, err)
	assert.Empty(t, events, "services without active booking have no events")
}

func TestEnabledOptionsOnly(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	methods, err := svc.PaymentMethods(ctx, "biz-1")
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, "card", methods[0].ID)

	platforms, err := svc.Platforms(ctx, "biz-1")
	require.NoError(t, err)
	require.Len(t, platforms, 1)
	assert.Equal(t, "zoom", platforms[0].ID)

	_, err = svc.PaymentMethods(ctx, "nope")
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}
