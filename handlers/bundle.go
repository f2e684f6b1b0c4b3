package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers for route registration.
type HandlerBundle struct {
	// Catalog endpoints
	GetServiceDetailsHandler gin.HandlerFunc
	GetExtrasHandler         gin.HandlerFunc
	GetEventsHandler         gin.HandlerFunc
	GetPaymentMethodsHandler gin.HandlerFunc
	GetPlatformsHandler      gin.HandlerFunc

	// Availability endpoints
	AvailabilityOverviewHandler gin.HandlerFunc
	AvailableSlotsHandler       gin.HandlerFunc

	// Service request endpoints
	CreateServiceRequestHandler gin.HandlerFunc

	// Wizard endpoints
	OpenWizardHandler       gin.HandlerFunc
	GetWizardHandler        gin.HandlerFunc
	NextStepHandler         gin.HandlerFunc
	SkipStepHandler         gin.HandlerFunc
	BackStepHandler         gin.HandlerFunc
	SetItemQuantityHandler  gin.HandlerFunc
	SetExtraQuantityHandler gin.HandlerFunc
	SubmitWizardHandler     gin.HandlerFunc
	CancelWizardHandler     gin.HandlerFunc

	// Service board endpoints
	ListActionTypesHandler    gin.HandlerFunc
	GetActionFormHandler      gin.HandlerFunc
	ValidateActionFormHandler gin.HandlerFunc
	CreateActionHandler       gin.HandlerFunc
	ListActionsHandler        gin.HandlerFunc
	GetActionHandler          gin.HandlerFunc
	UploadDocumentHandler     gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle collects the handler methods of each group.
func NewHandlerBundle(cat *CatalogHandler, avail *AvailabilityHandler, req *RequestHandler, wiz *WizardHandler, brd *BoardHandler) *HandlerBundle {
	return &HandlerBundle{
		GetServiceDetailsHandler: cat.GetServiceDetailsHandler,
		GetExtrasHandler:         cat.GetExtrasHandler,
		GetEventsHandler:         cat.GetEventsHandler,
		GetPaymentMethodsHandler: cat.GetPaymentMethodsHandler,
		GetPlatformsHandler:      cat.GetPlatformsHandler,

		AvailabilityOverviewHandler: avail.OverviewHandler,
		AvailableSlotsHandler:       avail.SlotsHandler,

		CreateServiceRequestHandler: req.CreateServiceRequestHandler,

		OpenWizardHandler:       wiz.OpenHandler,
		GetWizardHandler:        wiz.GetHandler,
		NextStepHandler:         wiz.NextHandler,
		SkipStepHandler:         wiz.SkipHandler,
		BackStepHandler:         wiz.BackHandler,
		SetItemQuantityHandler:  wiz.SetItemQuantityHandler,
		SetExtraQuantityHandler: wiz.SetExtraQuantityHandler,
		SubmitWizardHandler:     wiz.SubmitHandler,
		CancelWizardHandler:     wiz.CancelHandler,

		ListActionTypesHandler:    brd.ListActionTypesHandler,
		GetActionFormHandler:      brd.GetActionFormHandler,
		ValidateActionFormHandler: brd.ValidateActionFormHandler,
		CreateActionHandler:       brd.CreateActionHandler,
		ListActionsHandler:        brd.ListActionsHandler,
		GetActionHandler:          brd.GetActionHandler,
		UploadDocumentHandler:     brd.UploadDocumentHandler,

		HealthHandler: HealthHandler,
	}
}
