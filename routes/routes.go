package routes

import (
	"strings"
	"time"

	"bizhub/config"
	"bizhub/handlers"
	"bizhub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes registers the public service catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/businesses/:businessID")
	{
		api.GET("/services/:serviceID/details", hb.GetServiceDetailsHandler)
		api.GET("/services/:serviceID/extras", hb.GetExtrasHandler)
		api.GET("/services/:serviceID/events", hb.GetEventsHandler)
		api.GET("/platforms", hb.GetPlatformsHandler)
		api.GET("/availability/overview", hb.AvailabilityOverviewHandler)
		api.GET("/availability/slots", hb.AvailableSlotsHandler)
		api.POST("/service-requests", hb.CreateServiceRequestHandler)
	}
	// Payment methods live under the singular prefix.
	r.GET("/api/business/:businessID/payment-methods", hb.GetPaymentMethodsHandler)
}

// RegisterWizardRoutes registers the service request wizard.
func RegisterWizardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/wizard")
	{
		api.POST("/sessions", hb.OpenWizardHandler)
		api.GET("/sessions/:sessionID", hb.GetWizardHandler)
		api.POST("/sessions/:sessionID/next", hb.NextStepHandler)
		api.POST("/sessions/:sessionID/skip", hb.SkipStepHandler)
		api.POST("/sessions/:sessionID/back", hb.BackStepHandler)
		api.PUT("/sessions/:sessionID/items/:itemID", hb.SetItemQuantityHandler)
		api.PUT("/sessions/:sessionID/extras/:extraID", hb.SetExtraQuantityHandler)
		api.POST("/sessions/:sessionID/submit", hb.SubmitWizardHandler)
		api.DELETE("/sessions/:sessionID", hb.CancelWizardHandler)
	}
}

// RegisterBoardRoutes registers action forms and service board actions.
func RegisterBoardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/action-types", hb.ListActionTypesHandler)

	forms := r.Group("/api/businesses/:businessID/action-forms")
	{
		forms.GET("/:actionType", hb.GetActionFormHandler)
		forms.POST("/:actionType/validate", hb.ValidateActionFormHandler)
	}

	owner := r.Group("/api")
	owner.Use(middleware.JWTAuthOwnerMiddleware())
	{
		owner.POST("/businesses/:businessID/service-boards/:boardRef/actions", hb.CreateActionHandler)
		owner.GET("/businesses/:businessID/service-boards/:boardRef/actions", hb.ListActionsHandler)
		owner.GET("/service-board/actions/:actionID", hb.GetActionHandler)
		owner.POST("/service-board/actions/:actionID/document-upload", hb.UploadDocumentHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// CORSConfig allows the configured origins. Credentials are only allowed for
// an explicit origin list.
func CORSConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "Accept-Language", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	var allowed []string
	for _, o := range origins {
		switch o = strings.TrimSpace(o); o {
		case "*":
			cfg.AllowAllOrigins = true
			return cfg
		case "":
		default:
			allowed = append(allowed, o)
		}
	}
	if len(allowed) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = allowed
	cfg.AllowCredentials = true
	return cfg
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(CORSConfig(config.AppConfig.CORSOrigins)))

	RegisterCatalogRoutes(r, hb)
	RegisterWizardRoutes(r, hb)
	RegisterBoardRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
