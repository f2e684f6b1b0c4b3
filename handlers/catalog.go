package handlers

import (
	"net/http"

	"bizhub/services/catalog"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves service details and the dynamic option sources.
type CatalogHandler struct {
	Catalog catalog.CatalogService
}

func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: svc}
}

// GetServiceDetailsHandler returns {service, requirements, questions, serviceItems}.
func (h *CatalogHandler) GetServiceDetailsHandler(c *gin.Context) {
	details, err := h.Catalog.GetDetails(c.Request.Context(), c.Param("businessID"), c.Param("serviceID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *CatalogHandler) GetExtrasHandler(c *gin.Context) {
	extras, err := h.Catalog.GetExtras(c.Request.Context(), c.Param("businessID"), c.Param("serviceID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"extras": extras})
}

func (h *CatalogHandler) GetEventsHandler(c *gin.Context) {
	events, err := h.Catalog.GetEvents(c.Request.Context(), c.Param("businessID"), c.Param("serviceID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *CatalogHandler) GetPaymentMethodsHandler(c *gin.Context) {
	methods, err := h.Catalog.PaymentMethods(c.Request.Context(), c.Param("businessID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paymentMethods": methods})
}

func (h *CatalogHandler) GetPlatformsHandler(c *gin.Context) {
	platforms, err := h.Catalog.Platforms(c.Request.Context(), c.Param("businessID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"platforms": platforms})
}
